package models

import "time"

type JobCreateRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
}

type JobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	CandidateCount int64     `json:"candidate_count"`
}

type CandidateSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type ApplyResponse struct {
	Message     string `json:"message"`
	CandidateID string `json:"candidate_id"`
}

type ChatRequest struct {
	Message    string `json:"message" validate:"required"`
	ResumeText string `json:"resume_text"`
	JDText     string `json:"jd_text"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type SimilarCandidate struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Score       float32 `json:"score"`
}

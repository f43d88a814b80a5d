package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"nikhilsahni/resume-radar/internal/apperrors"
	"nikhilsahni/resume-radar/internal/models"
	"nikhilsahni/resume-radar/internal/repositories"
)

const (
	chatTemperature     = 0.0
	chatMaxOutputTokens = 300
)

// JobStat is one job's slice of the aggregate snapshot handed to the
// assistant as plain text context.
type JobStat struct {
	ID             string
	Title          string
	ApplicantCount int64
	TopCandidate   *models.Candidate
}

type ChatService interface {
	Respond(ctx context.Context, message, resumeText, jdText string) (string, error)
}

type chatService struct {
	gemini        GeminiService
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	dashboardURL  string
}

func NewChatService(
	gemini GeminiService,
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	dashboardURL string,
) ChatService {
	return &chatService{
		gemini:        gemini,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		dashboardURL:  dashboardURL,
	}
}

// Respond implements ChatService.
func (s *chatService) Respond(ctx context.Context, message, resumeText, jdText string) (string, error) {
	// The assistant can still answer resume/JD questions without stats, but it
	// must not be handed a fabricated empty snapshot: leaving the context blank
	// makes the prompt say no data is available instead of "zero jobs".
	dbContext := ""
	if stats, err := s.collectJobStats(); err != nil {
		log.Printf("⚠️  Failed to collect database context: %v", err)
	} else {
		dbContext = FormatDatabaseContext(stats, s.dashboardURL)
	}

	systemPrompt := BuildChatSystemPrompt(resumeText, jdText, dbContext)

	response, err := s.gemini.GenerateText(ctx, systemPrompt, message, chatTemperature, chatMaxOutputTokens)
	if err != nil {
		return "", apperrors.Wrap(
			apperrors.KindScoringUnavailable,
			"The assistant is currently unavailable. Please try again later.",
			err,
		)
	}

	return strings.TrimSpace(response), nil
}

func (s *chatService) collectJobStats() ([]JobStat, error) {
	jobs, err := s.jobRepo.FindAll(0, 100)
	if err != nil {
		return nil, err
	}

	stats := make([]JobStat, 0, len(jobs))
	for _, job := range jobs {
		count, err := s.jobRepo.CountCandidates(job.ID)
		if err != nil {
			return nil, err
		}

		stat := JobStat{
			ID:             job.ID.String(),
			Title:          job.Title,
			ApplicantCount: count,
		}

		if count > 0 {
			top, err := s.candidateRepo.TopByJobID(job.ID)
			if err != nil {
				return nil, err
			}
			stat.TopCandidate = top
		}

		stats = append(stats, stat)
	}

	return stats, nil
}

// FormatDatabaseContext renders the aggregate snapshot the assistant reasons
// over: job count, per-job applicant counts, and the top-scoring candidate
// per job with a dashboard link.
func FormatDatabaseContext(stats []JobStat, dashboardURL string) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Total Active Jobs: %d", len(stats)))

	for _, stat := range stats {
		lines = append(lines, fmt.Sprintf("- Job: %s (ID: %s) | Applicants: %d",
			stat.Title, stat.ID, stat.ApplicantCount))

		if stat.TopCandidate != nil {
			lines = append(lines, fmt.Sprintf("  * Top Candidate: %s (Score: %g)",
				stat.TopCandidate.Name, stat.TopCandidate.Score))
			lines = append(lines, fmt.Sprintf("    - Link to Analysis: %s/dashboard/candidate/%s",
				dashboardURL, stat.TopCandidate.ID))
		}
	}

	return strings.Join(lines, "\n")
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Circle is the qualitative match band on the radar visualization,
// derived from the overall similarity score.
type Circle string

const (
	CircleInner  Circle = "Inner"
	CircleMiddle Circle = "Middle"
	CircleOuter  Circle = "Outer"
)

// ScoreResult is the scoring contract shared with the external model and the
// dashboard. Field names and nesting are load-bearing: the radar chart and the
// interview-question list consume this shape as-is.
type ScoreResult struct {
	SimilarityScore      float64            `json:"similarity_score"`
	UploadSummary        string             `json:"upload_summary"`
	Scores               map[string]float64 `json:"scores"`
	DimensionDefinitions map[string]string  `json:"dimension_definitions"`
	Analysis             Analysis           `json:"analysis"`
	InterviewQuestions   InterviewQuestions `json:"interview_questions"`

	// Attached by the orchestration layer after a successful analysis so the
	// chat endpoint and the dashboard can show the underlying documents.
	ResumeText string `json:"resume_text,omitempty"`
	JDText     string `json:"jd_text,omitempty"`
}

type Analysis struct {
	Circle     Circle          `json:"circle"`
	Strengths  []string        `json:"strengths"`
	Weaknesses []string        `json:"weaknesses"`
	Reasons    AnalysisReasons `json:"reasons"`
}

type AnalysisReasons struct {
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

type InterviewQuestions struct {
	Easy   []string `json:"easy"`
	Medium []string `json:"medium"`
	Hard   []string `json:"hard"`
}

// Value lets gorm store the full analysis as a jsonb column.
func (r ScoreResult) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score result: %w", err)
	}
	return string(data), nil
}

func (r *ScoreResult) Scan(value interface{}) error {
	if value == nil {
		*r = ScoreResult{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for score result: %T", value)
	}

	if err := json.Unmarshal(data, r); err != nil {
		return fmt.Errorf("failed to unmarshal score result: %w", err)
	}
	return nil
}

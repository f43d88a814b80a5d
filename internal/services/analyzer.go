package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"nikhilsahni/resume-radar/internal/apperrors"
	"nikhilsahni/resume-radar/internal/models"
)

// Bands for the radar circle, derived from the overall 0-100 similarity score.
// The model also reports a circle but it is re-derived here rather than
// trusted, since the two can disagree.
const (
	innerCircleFloor  = 70.0
	middleCircleFloor = 40.0

	analysisTemperature = 0.1

	// Scoring upper bound when the strengths fallback fires.
	fallbackScoreCeiling = 5.0
)

// scoreResultSchema is the structural contract for the model's JSON output.
// Cardinality of the dimension maps is enforced here; cross-field checks live
// in validateResult.
const scoreResultSchema = `{
	"type": "object",
	"required": ["similarity_score", "upload_summary", "scores", "dimension_definitions", "analysis", "interview_questions"],
	"properties": {
		"similarity_score": {"type": "number"},
		"upload_summary": {"type": "string"},
		"scores": {
			"type": "object",
			"minProperties": 4,
			"maxProperties": 4,
			"additionalProperties": {"type": "number"}
		},
		"dimension_definitions": {
			"type": "object",
			"minProperties": 4,
			"maxProperties": 4,
			"additionalProperties": {"type": "string"}
		},
		"analysis": {
			"type": "object",
			"required": ["circle", "strengths", "weaknesses", "reasons"],
			"properties": {
				"circle": {"type": "string", "enum": ["Inner", "Middle", "Outer"]},
				"strengths": {"type": "array", "items": {"type": "string"}},
				"weaknesses": {"type": "array", "items": {"type": "string"}},
				"reasons": {
					"type": "object",
					"required": ["strengths", "weaknesses"],
					"properties": {
						"strengths": {"type": "string"},
						"weaknesses": {"type": "string"}
					}
				}
			}
		},
		"interview_questions": {
			"type": "object",
			"required": ["easy", "medium", "hard"],
			"properties": {
				"easy": {"type": "array", "items": {"type": "string"}},
				"medium": {"type": "array", "items": {"type": "string"}},
				"hard": {"type": "array", "items": {"type": "string"}}
			}
		}
	}
}`

type AnalyzerService interface {
	Analyze(ctx context.Context, resumeText, jdText string) (*models.ScoreResult, error)
}

type analyzerService struct {
	gemini GeminiService
	schema *gojsonschema.Schema
}

func NewAnalyzerService(gemini GeminiService) (AnalyzerService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(scoreResultSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile score result schema: %w", err)
	}

	return &analyzerService{
		gemini: gemini,
		schema: schema,
	}, nil
}

// Analyze implements AnalyzerService. A non-conforming response is retried
// once with the same prompt before surfacing, since an occasional compliance
// glitch is far more common than a persistent fault. Transport failures are
// not retried here; the caller may retry later.
func (a *analyzerService) Analyze(ctx context.Context, resumeText, jdText string) (*models.ScoreResult, error) {
	userContent := BuildAnalysisUserContent(resumeText, jdText)

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		response, err := a.gemini.GenerateJSON(ctx, analysisSystemPrompt, userContent, analysisTemperature)
		if err != nil {
			return nil, apperrors.Wrap(
				apperrors.KindScoringUnavailable,
				"The scoring service is currently unavailable. Please try again later.",
				err,
			)
		}

		result, err := a.parseResult(response)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if attempt == 1 {
			log.Printf("⚠️  Scoring response invalid, retrying once: %v", err)
		}
	}

	return nil, apperrors.Wrap(
		apperrors.KindScoringResponseInvalid,
		"The scoring service returned a malformed result.",
		lastErr,
	)
}

func (a *analyzerService) parseResult(response string) (*models.ScoreResult, error) {
	jsonStr := extractJSON(response)

	validation, err := a.schema.Validate(gojsonschema.NewStringLoader(jsonStr))
	if err != nil {
		return nil, fmt.Errorf("failed to validate response: %w", err)
	}
	if !validation.Valid() {
		var problems []string
		for _, desc := range validation.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("response does not match score schema: %s", strings.Join(problems, "; "))
	}

	var result models.ScoreResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score result: %w", err)
	}

	if err := validateResult(&result); err != nil {
		return nil, err
	}

	normalizeResult(&result)
	return &result, nil
}

// validateResult enforces the cross-field invariants the schema cannot
// express: identical dimension key sets and the 3/3/3 question split.
func validateResult(result *models.ScoreResult) error {
	if len(result.Scores) != 4 || len(result.DimensionDefinitions) != 4 {
		return fmt.Errorf("expected exactly 4 scoring dimensions, got %d scores and %d definitions",
			len(result.Scores), len(result.DimensionDefinitions))
	}

	for dimension := range result.Scores {
		if _, ok := result.DimensionDefinitions[dimension]; !ok {
			return fmt.Errorf("dimension %q is scored but has no definition", dimension)
		}
	}

	questions := result.InterviewQuestions
	if len(questions.Easy) != 3 || len(questions.Medium) != 3 || len(questions.Hard) != 3 {
		return fmt.Errorf("expected 3/3/3 interview questions, got %d/%d/%d",
			len(questions.Easy), len(questions.Medium), len(questions.Hard))
	}

	return nil
}

// normalizeResult clamps scores into their documented ranges, applies the
// strengths fallback, and re-derives the circle from the similarity score.
func normalizeResult(result *models.ScoreResult) {
	result.SimilarityScore = clamp(result.SimilarityScore, 0, 100)
	for dimension, score := range result.Scores {
		result.Scores[dimension] = clamp(score, 0, 10)
	}

	if len(result.Analysis.Strengths) == 0 {
		result.Analysis.Strengths = []string{FallbackStrength}
		result.Analysis.Reasons.Strengths = FallbackStrengthReason
		result.SimilarityScore = clamp(result.SimilarityScore, 0, fallbackScoreCeiling)
	}

	result.Analysis.Circle = deriveCircle(result.SimilarityScore)
}

func deriveCircle(similarityScore float64) models.Circle {
	switch {
	case similarityScore >= innerCircleFloor:
		return models.CircleInner
	case similarityScore >= middleCircleFloor:
		return models.CircleMiddle
	default:
		return models.CircleOuter
	}
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// extractJSON strips the markdown fences the model sometimes wraps its output
// in and returns the outermost JSON object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

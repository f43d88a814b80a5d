package services

import (
	"context"
	"log"

	"nikhilsahni/resume-radar/internal/apperrors"
	"nikhilsahni/resume-radar/internal/models"
)

// ScreeningService runs the upload pipeline: extraction, content gates, then
// the paid scoring call. Strictly sequential per request; a failed gate stops
// the pipeline before any model call is spent.
type ScreeningService interface {
	// Analyze screens an ad-hoc resume/JD pair; both documents are validated.
	Analyze(ctx context.Context, filename string, content []byte, jdText string) (*models.ScoreResult, error)
	// ScoreAgainstJob screens an application against a stored job description,
	// which was already vetted at job creation time.
	ScoreAgainstJob(ctx context.Context, filename string, content []byte, jdText string) (*models.ScoreResult, error)
}

type screeningService struct {
	extractor ExtractorService
	analyzer  AnalyzerService
}

func NewScreeningService(extractor ExtractorService, analyzer AnalyzerService) ScreeningService {
	return &screeningService{
		extractor: extractor,
		analyzer:  analyzer,
	}
}

// Analyze implements ScreeningService.
func (s *screeningService) Analyze(ctx context.Context, filename string, content []byte, jdText string) (*models.ScoreResult, error) {
	resumeText, err := s.extractResume(filename, content)
	if err != nil {
		return nil, err
	}

	if valid, reason := ValidateJDContent(jdText); !valid {
		return nil, apperrors.New(apperrors.KindValidationFailed, reason)
	}

	result, err := s.analyzer.Analyze(ctx, resumeText, jdText)
	if err != nil {
		return nil, err
	}

	result.ResumeText = resumeText
	return result, nil
}

// ScoreAgainstJob implements ScreeningService.
func (s *screeningService) ScoreAgainstJob(ctx context.Context, filename string, content []byte, jdText string) (*models.ScoreResult, error) {
	resumeText, err := s.extractResume(filename, content)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.Analyze(ctx, resumeText, jdText)
	if err != nil {
		return nil, err
	}

	result.ResumeText = resumeText
	result.JDText = jdText
	return result, nil
}

func (s *screeningService) extractResume(filename string, content []byte) (string, error) {
	resumeText, err := s.extractor.ExtractText(filename, content)
	if err != nil {
		return "", err
	}

	log.Printf("📄 Extracted %d characters from %s", len(resumeText), filename)

	if valid, reason := ValidateResumeContent(resumeText); !valid {
		return "", apperrors.New(apperrors.KindValidationFailed, reason)
	}

	return resumeText, nil
}

package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nikhilsahni/resume-radar/internal/apperrors"
	"nikhilsahni/resume-radar/internal/models"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(string, []byte) (string, error) {
	return s.text, s.err
}

type stubAnalyzer struct {
	result *models.ScoreResult
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(context.Context, string, string) (*models.ScoreResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	result := *s.result
	return &result, nil
}

func plausibleResume() string {
	return strings.Repeat("built shipped maintained scaled ", 15) +
		"education skills university"
}

func plausibleJD() string {
	return "We are hiring a backend engineer with experience in Go and Postgres " +
		"The requirements include API design and solid database knowledge " +
		"The candidate should communicate clearly"
}

func TestScreeningAnalyzeHappyPath(t *testing.T) {
	analyzer := &stubAnalyzer{result: &models.ScoreResult{SimilarityScore: 75}}
	screening := NewScreeningService(&stubExtractor{text: plausibleResume()}, analyzer)

	result, err := screening.Analyze(context.Background(), "resume.pdf", []byte("bytes"), plausibleJD())
	require.NoError(t, err)

	assert.Equal(t, 75.0, result.SimilarityScore)
	assert.Equal(t, plausibleResume(), result.ResumeText)
	assert.Empty(t, result.JDText, "ad-hoc analysis does not echo the JD back")
	assert.Equal(t, 1, analyzer.calls)
}

func TestScreeningAnalyzeRejectsBadResumeBeforeScoring(t *testing.T) {
	analyzer := &stubAnalyzer{result: &models.ScoreResult{}}
	screening := NewScreeningService(&stubExtractor{text: "too short"}, analyzer)

	_, err := screening.Analyze(context.Background(), "resume.pdf", []byte("bytes"), plausibleJD())
	require.Error(t, err)

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidationFailed))
	assert.Equal(t, 0, analyzer.calls, "no paid scoring call is spent on rejected input")
}

func TestScreeningAnalyzeRejectsBadJDBeforeScoring(t *testing.T) {
	analyzer := &stubAnalyzer{result: &models.ScoreResult{}}
	screening := NewScreeningService(&stubExtractor{text: plausibleResume()}, analyzer)

	_, err := screening.Analyze(context.Background(), "resume.pdf", []byte("bytes"), "short jd")
	require.Error(t, err)

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidationFailed))
	assert.Equal(t, 0, analyzer.calls)
}

func TestScreeningAnalyzePropagatesExtractionFailure(t *testing.T) {
	extractErr := apperrors.New(apperrors.KindCorruptDocument, "bad file")
	analyzer := &stubAnalyzer{result: &models.ScoreResult{}}
	screening := NewScreeningService(&stubExtractor{err: extractErr}, analyzer)

	_, err := screening.Analyze(context.Background(), "resume.pdf", []byte("bytes"), plausibleJD())
	require.Error(t, err)

	assert.True(t, apperrors.IsKind(err, apperrors.KindCorruptDocument))
	assert.Equal(t, 0, analyzer.calls)
}

func TestScoreAgainstJobAttachesBothDocuments(t *testing.T) {
	analyzer := &stubAnalyzer{result: &models.ScoreResult{SimilarityScore: 42}}
	screening := NewScreeningService(&stubExtractor{text: plausibleResume()}, analyzer)

	result, err := screening.ScoreAgainstJob(context.Background(), "resume.docx", []byte("bytes"), "stored job description")
	require.NoError(t, err)

	assert.Equal(t, plausibleResume(), result.ResumeText)
	assert.Equal(t, "stored job description", result.JDText)
}

func TestScoreAgainstJobSkipsJDValidation(t *testing.T) {
	// The stored description was vetted at creation time; a terse one must
	// not block applications.
	analyzer := &stubAnalyzer{result: &models.ScoreResult{}}
	screening := NewScreeningService(&stubExtractor{text: plausibleResume()}, analyzer)

	_, err := screening.ScoreAgainstJob(context.Background(), "resume.pdf", []byte("bytes"), "terse")
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.calls)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nikhilsahni/resume-radar/internal/models"
)

type stubJobRepo struct {
	jobs   []models.Job
	counts map[uuid.UUID]int64
}

func (s *stubJobRepo) Create(*models.Job) error { return nil }

func (s *stubJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return &s.jobs[i], nil
		}
	}
	return nil, nil
}

func (s *stubJobRepo) FindAll(int, int) ([]models.Job, error) {
	return s.jobs, nil
}

func (s *stubJobRepo) CountCandidates(jobID uuid.UUID) (int64, error) {
	return s.counts[jobID], nil
}

func (s *stubJobRepo) Delete(uuid.UUID) error { return nil }

type stubCandidateRepo struct {
	top map[uuid.UUID]*models.Candidate
}

func (s *stubCandidateRepo) Create(*models.Candidate) error { return nil }

func (s *stubCandidateRepo) FindByID(uuid.UUID) (*models.Candidate, error) {
	return nil, nil
}

func (s *stubCandidateRepo) FindByJobID(uuid.UUID) ([]models.Candidate, error) {
	return nil, nil
}

func (s *stubCandidateRepo) TopByJobID(jobID uuid.UUID) (*models.Candidate, error) {
	return s.top[jobID], nil
}

func TestChatRespondIncludesDatabaseContext(t *testing.T) {
	backendJob := models.Job{ID: uuid.New(), Title: "Backend Engineer"}
	designJob := models.Job{ID: uuid.New(), Title: "Product Designer"}
	topCandidate := &models.Candidate{ID: uuid.New(), Name: "Priya", Score: 88.5, JobID: backendJob.ID}

	jobRepo := &stubJobRepo{
		jobs: []models.Job{backendJob, designJob},
		counts: map[uuid.UUID]int64{
			backendJob.ID: 3,
			designJob.ID:  0,
		},
	}
	candidateRepo := &stubCandidateRepo{
		top: map[uuid.UUID]*models.Candidate{backendJob.ID: topCandidate},
	}

	stub := &stubGemini{responses: []string{"  There are 2 active jobs.  "}}
	chat := NewChatService(stub, jobRepo, candidateRepo, "http://localhost:3000")

	response, err := chat.Respond(context.Background(), "how many jobs are open?", "", "")
	require.NoError(t, err)

	assert.Equal(t, "There are 2 active jobs.", response)
	assert.Equal(t, "how many jobs are open?", stub.lastUser)

	assert.Contains(t, stub.lastSystem, "Total Active Jobs: 2")
	assert.Contains(t, stub.lastSystem, "Backend Engineer")
	assert.Contains(t, stub.lastSystem, "Applicants: 3")
	assert.Contains(t, stub.lastSystem, "Top Candidate: Priya (Score: 88.5)")
	assert.Contains(t, stub.lastSystem, "http://localhost:3000/dashboard/candidate/"+topCandidate.ID.String())
	assert.Contains(t, stub.lastSystem, "RESUME: Not provided")
}

func TestChatRespondPassesDocumentsThrough(t *testing.T) {
	stub := &stubGemini{responses: []string{"ok"}}
	chat := NewChatService(stub, &stubJobRepo{}, &stubCandidateRepo{}, "http://localhost:3000")

	_, err := chat.Respond(context.Background(), "does the resume mention Go?", "resume body", "jd body")
	require.NoError(t, err)

	assert.Contains(t, stub.lastSystem, "RESUME: resume body")
	assert.Contains(t, stub.lastSystem, "JOB DESCRIPTION: jd body")
}

type failingJobRepo struct {
	stubJobRepo
}

func (f *failingJobRepo) FindAll(int, int) ([]models.Job, error) {
	return nil, errors.New("connection refused")
}

func TestChatRespondAdmitsMissingStats(t *testing.T) {
	// A stats failure must not masquerade as an empty database.
	stub := &stubGemini{responses: []string{"ok"}}
	chat := NewChatService(stub, &failingJobRepo{}, &stubCandidateRepo{}, "http://localhost:3000")

	_, err := chat.Respond(context.Background(), "how many jobs are open?", "", "")
	require.NoError(t, err)

	assert.Contains(t, stub.lastSystem, "No database context provided.")
	assert.NotContains(t, stub.lastSystem, "Total Active Jobs")
}

func TestFormatDatabaseContextEmpty(t *testing.T) {
	dbContext := FormatDatabaseContext(nil, "http://localhost:3000")
	assert.Equal(t, "Total Active Jobs: 0", dbContext)
}

func TestFormatDatabaseContextSkipsTopCandidateWhenAbsent(t *testing.T) {
	stats := []JobStat{{ID: "j1", Title: "Backend Engineer", ApplicantCount: 0}}
	dbContext := FormatDatabaseContext(stats, "http://localhost:3000")

	assert.Contains(t, dbContext, "- Job: Backend Engineer (ID: j1) | Applicants: 0")
	assert.NotContains(t, dbContext, "Top Candidate")
}

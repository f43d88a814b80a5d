package handlers

import (
	"fmt"
	"io"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nikhilsahni/resume-radar/internal/apperrors"
	"nikhilsahni/resume-radar/internal/models"
	"nikhilsahni/resume-radar/internal/repositories"
	"nikhilsahni/resume-radar/internal/services"
)

type JobHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	screening     services.ScreeningService
	gemini        services.GeminiService
	qdrant        services.QdrantService
	validate      *validator.Validate
	maxFileSize   int64
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	screening services.ScreeningService,
	gemini services.GeminiService,
	qdrant services.QdrantService,
	maxFileSize int64,
) *JobHandler {
	return &JobHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		screening:     screening,
		gemini:        gemini,
		qdrant:        qdrant,
		validate:      validator.New(),
		maxFileSize:   maxFileSize,
	}
}

type applyForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid job: %v", err),
		})
	}

	// The stored description is vetted once here; the apply flow trusts it and
	// never re-validates.
	if valid, reason := services.ValidateJDContent(req.Description); !valid {
		return apperrors.New(apperrors.KindValidationFailed, reason)
	}

	job := &models.Job{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(h.toJobResponse(job, 0))
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	jobs, err := h.jobRepo.FindAll(skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	responses := make([]models.JobResponse, 0, len(jobs))
	for i := range jobs {
		count, err := h.jobRepo.CountCandidates(jobs[i].ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to count candidates",
			})
		}
		responses = append(responses, h.toJobResponse(&jobs[i], count))
	}

	return c.JSON(responses)
}

// HandleGetJob handles GET /jobs/:id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	count, err := h.jobRepo.CountCandidates(job.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count candidates",
		})
	}

	return c.JSON(h.toJobResponse(job, count))
}

// HandleDeleteJob handles DELETE /jobs/:id. The relational delete cascades to
// candidates in one transaction; the vector index is cleaned up afterwards.
func (h *JobHandler) HandleDeleteJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if err := h.jobRepo.Delete(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	if h.qdrant != nil {
		if err := h.qdrant.DeleteByJob(c.UserContext(), jobID.String()); err != nil {
			log.Printf("⚠️  Failed to delete job vectors: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Job and associated candidates deleted successfully",
	})
}

// HandleApply handles POST /jobs/:id/apply: the full screening pipeline run
// synchronously, with the result persisted on success.
func (h *JobHandler) HandleApply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	form := applyForm{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
	}
	if err := h.validate.Struct(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name and a valid email are required",
		})
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file is too large. Maximum size is %dMB.", h.maxFileSize/(1024*1024)),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	result, err := h.screening.ScoreAgainstJob(c.UserContext(), fileHeader.Filename, content, job.Description)
	if err != nil {
		return err
	}

	candidate := &models.Candidate{
		ID:             uuid.New(),
		Name:           form.Name,
		Email:          form.Email,
		ResumeFilename: fileHeader.Filename,
		Score:          result.SimilarityScore,
		Analysis:       *result,
		JobID:          job.ID,
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save candidate",
		})
	}

	h.indexCandidate(c, candidate, result.ResumeText)

	return c.Status(fiber.StatusCreated).JSON(models.ApplyResponse{
		Message:     "Application submitted successfully",
		CandidateID: candidate.ID.String(),
	})
}

// indexCandidate upserts the resume embedding. Best effort: the application
// is already persisted, so an indexing failure only degrades similarity
// search.
func (h *JobHandler) indexCandidate(c *fiber.Ctx, candidate *models.Candidate, resumeText string) {
	if h.gemini == nil || h.qdrant == nil {
		return
	}

	embedding, err := h.gemini.GenerateEmbedding(c.UserContext(), resumeText)
	if err != nil {
		log.Printf("⚠️  Failed to embed resume for candidate %s: %v", candidate.ID, err)
		return
	}

	err = h.qdrant.UpsertCandidate(
		c.UserContext(),
		candidate.ID.String(),
		candidate.JobID.String(),
		candidate.Name,
		embedding,
	)
	if err != nil {
		log.Printf("⚠️  Failed to index candidate %s: %v", candidate.ID, err)
	}
}

// HandleListCandidates handles GET /jobs/:id/candidates
func (h *JobHandler) HandleListCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	candidates, err := h.candidateRepo.FindByJobID(jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidates",
		})
	}

	summaries := make([]models.CandidateSummary, 0, len(candidates))
	for _, candidate := range candidates {
		summaries = append(summaries, models.CandidateSummary{
			ID:        candidate.ID.String(),
			Name:      candidate.Name,
			Email:     candidate.Email,
			Score:     candidate.Score,
			CreatedAt: candidate.CreatedAt,
		})
	}

	return c.JSON(summaries)
}

// HandleGetCandidate handles GET /candidates/:id and returns the full stored
// analysis for the dashboard.
func (h *JobHandler) HandleGetCandidate(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.JSON(candidate.Analysis)
}

// HandleSimilarCandidates handles GET /jobs/:id/candidates/similar?text=
func (h *JobHandler) HandleSimilarCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	query := c.Query("text")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text query parameter is required",
		})
	}

	limit := c.QueryInt("limit", 5)

	embedding, err := h.gemini.GenerateEmbedding(c.UserContext(), query)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Failed to embed search query",
		})
	}

	matches, err := h.qdrant.SearchSimilar(c.UserContext(), embedding, jobID.String(), limit)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Failed to search candidates",
		})
	}

	results := make([]models.SimilarCandidate, 0, len(matches))
	for _, match := range matches {
		results = append(results, models.SimilarCandidate{
			CandidateID: match.CandidateID,
			Name:        match.Name,
			Score:       match.Score,
		})
	}

	return c.JSON(results)
}

func (h *JobHandler) toJobResponse(job *models.Job, candidateCount int64) models.JobResponse {
	return models.JobResponse{
		ID:             job.ID.String(),
		Title:          job.Title,
		Description:    job.Description,
		CreatedAt:      job.CreatedAt,
		CandidateCount: candidateCount,
	}
}

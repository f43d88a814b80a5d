package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nikhilsahni/resume-radar/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	FindAll(offset, limit int) ([]models.Job, error)
	CountCandidates(jobID uuid.UUID) (int64, error)
	Delete(id uuid.UUID) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// FindAll implements JobRepository.
func (r *jobRepository) FindAll(offset, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// CountCandidates implements JobRepository.
func (r *jobRepository) CountCandidates(jobID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Candidate{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}

// Delete implements JobRepository. Candidates are removed in the same
// transaction as the job so a partial delete can never be observed.
func (r *jobRepository) Delete(id uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Candidate{}).Error; err != nil {
			return fmt.Errorf("failed to delete candidates: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Job{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete job: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("job not found")
	}
	return err
}

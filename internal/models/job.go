package models

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:text;not null;index" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Candidates []Candidate `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

type Candidate struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string      `gorm:"type:text;not null;index" json:"name"`
	Email          string      `gorm:"type:text;not null;index" json:"email"`
	ResumeFilename string      `gorm:"type:text" json:"resume_filename"`
	Score          float64     `gorm:"type:decimal(5,2)" json:"score"`
	Analysis       ScoreResult `gorm:"type:jsonb" json:"analysis"`
	JobID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"job_id"`
	CreatedAt      time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}

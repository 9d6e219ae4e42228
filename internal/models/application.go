package models

import "time"

const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is a student's application to a job. One per (job, student).
type Application struct {
	Base

	JobID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_student" json:"job_id"`
	StudentID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_student;index" json:"student_id"`
	CompanyID string `gorm:"type:varchar(36);not null;index" json:"company_id"`

	Job     Job  `gorm:"foreignKey:JobID" json:"job"`
	Student User `gorm:"foreignKey:StudentID" json:"student"`
	Company User `gorm:"foreignKey:CompanyID" json:"company"`

	Status          string     `gorm:"index;not null" json:"status"`
	CoverLetter     string     `gorm:"type:text" json:"cover_letter"`
	ResumeURL       string     `json:"resume_url"`
	MatchPercentage int        `json:"match_percentage"`
	AppliedAt       time.Time  `gorm:"index" json:"applied_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	Notes           string     `gorm:"type:text" json:"notes"`
}

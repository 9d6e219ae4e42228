package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeInternship = "Internship"
	JobTypeContract   = "Contract"

	JobStatusOpen   = "Open"
	JobStatusClosed = "Closed"
	JobStatusDraft  = "Draft"
)

type Salary struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

func (s Salary) IsZero() bool {
	return s.Min == 0 && s.Max == 0 && s.Currency == ""
}

type Job struct {
	Base

	CompanyID string `gorm:"type:varchar(36);index;not null" json:"company_id"`
	// Association: needs Preload("Company")
	Company User `gorm:"foreignKey:CompanyID" json:"company"`

	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Location     string                      `gorm:"index;not null" json:"location"`
	Type         string                      `gorm:"index;not null" json:"type"`
	Status       string                      `gorm:"index;not null" json:"status"`
	Requirements datatypes.JSONSlice[string] `json:"requirements"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Salary       datatypes.JSONType[Salary]  `json:"salary"`
	Image        string                      `json:"image"`
	Hint         string                      `json:"hint"`

	ApplicantCount int `gorm:"not null" json:"applicant_count"`
	LikeCount      int `gorm:"not null" json:"like_count"`
	CommentCount   int `gorm:"not null" json:"comment_count"`
}

// JobLike records that a user liked a job; the composite key makes it a set.
type JobLike struct {
	JobID     string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);primaryKey;index"`
	CreatedAt time.Time
}

type JobComment struct {
	Base

	JobID   string `gorm:"type:varchar(36);index;not null" json:"job_id"`
	UserID  string `gorm:"type:varchar(36);not null" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Comment string `gorm:"type:text;not null" json:"comment"`
}

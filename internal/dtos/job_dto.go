package dtos

import (
	"time"

	"github.com/justsurfingit/govconnect/internal/models"
)

type JobExtractionRequest struct {
	RawHTML string `json:"rawHtml" binding:"required"`
	URL     string `json:"url" binding:"omitempty,url"`
}

type SalaryInput struct {
	Min      int    `json:"min" binding:"gte=0"`
	Max      int    `json:"max" binding:"gte=0"`
	Currency string `json:"currency"`
}

type JobCreationRequest struct {
	Title        string       `json:"title" binding:"required"`
	Description  string       `json:"description" binding:"required"`
	Location     string       `json:"location" binding:"required"`
	Type         string       `json:"type" binding:"required,oneof=Full-time Part-time Internship Contract"`
	Status       string       `json:"status" binding:"omitempty,oneof=Open Closed Draft"`
	Requirements []string     `json:"requirements"`
	Skills       []string     `json:"skills"`
	Salary       *SalaryInput `json:"salary"`
	Image        string       `json:"image"`
	Hint         string       `json:"hint"`
}

// JobUpdateRequest only touches the fields that are present.
type JobUpdateRequest struct {
	Title        *string      `json:"title" binding:"omitempty,min=1"`
	Description  *string      `json:"description" binding:"omitempty,min=1"`
	Location     *string      `json:"location" binding:"omitempty,min=1"`
	Type         *string      `json:"type" binding:"omitempty,oneof=Full-time Part-time Internship Contract"`
	Status       *string      `json:"status" binding:"omitempty,oneof=Open Closed Draft"`
	Requirements []string     `json:"requirements"`
	Skills       []string     `json:"skills"`
	Salary       *SalaryInput `json:"salary"`
	Image        *string      `json:"image"`
	Hint         *string      `json:"hint"`
}

type JobListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Type     string `form:"type"`
	Location string `form:"location"`
}

type ApplyRequest struct {
	CoverLetter string `json:"coverLetter"`
	ResumeURL   string `json:"resumeUrl"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required,max=2000"`
}

// JobSummary is a job as it appears in listings.
type JobSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Company     string    `json:"company"`
	Followers   int       `json:"followers"`
	Applicants  int       `json:"applicants"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

type JobView struct {
	ID           string         `json:"id"`
	CompanyID    string         `json:"companyId"`
	Company      string         `json:"company"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Location     string         `json:"location"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	Requirements []string       `json:"requirements"`
	Skills       []string       `json:"skills"`
	Salary       *models.Salary `json:"salary,omitempty"`
	Image        string         `json:"image"`
	Hint         string         `json:"hint"`
	Applicants   int            `json:"applicants"`
	Likes        int            `json:"likes"`
	Comments     int            `json:"comments"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// JobDetail is the single-job view with its engagement lists resolved.
type JobDetail struct {
	JobView
	CompanyProfile Person        `json:"companyProfile"`
	ApplicantList  []Person      `json:"applicantList"`
	LikedBy        []Person      `json:"likedBy"`
	CommentList    []CommentView `json:"commentList"`
}

type ApplyResult struct {
	ID              string    `json:"id"`
	MatchPercentage int       `json:"matchPercentage"`
	Status          string    `json:"status"`
	AppliedAt       time.Time `json:"appliedAt"`
}

// JobDraft is the structured job posting extracted from a scraped page.
type JobDraft struct {
	CompanyName  string   `json:"companyName" describe:"name of the hiring organisation, empty if unknown"`
	Title        string   `json:"title" describe:"job title" validate:"required"`
	Location     string   `json:"location" describe:"job location or Remote"`
	Description  string   `json:"description" describe:"plain text summary of responsibilities and requirements" validate:"required"`
	Type         string   `json:"type" describe:"one of Full-time, Part-time, Internship, Contract"`
	Skills       []string `json:"skills" describe:"technologies and skills mentioned"`
	Requirements []string `json:"requirements" describe:"listed requirements"`
	SalaryRange  string   `json:"salaryRange" describe:"salary text if explicitly stated, otherwise empty"`
}

func NewJobSummary(job *models.Job) JobSummary {
	return JobSummary{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Type:        job.Type,
		Company:     companyName(&job.Company),
		Followers:   job.Company.Profile.Followers,
		Applicants:  job.ApplicantCount,
		Likes:       job.LikeCount,
		Comments:    job.CommentCount,
		Image:       job.Image,
		CreatedAt:   job.CreatedAt,
	}
}

func NewJobView(job *models.Job) JobView {
	view := JobView{
		ID:           job.ID,
		CompanyID:    job.CompanyID,
		Company:      companyName(&job.Company),
		Title:        job.Title,
		Description:  job.Description,
		Location:     job.Location,
		Type:         job.Type,
		Status:       job.Status,
		Requirements: nonNil(job.Requirements),
		Skills:       nonNil(job.Skills),
		Image:        job.Image,
		Hint:         job.Hint,
		Applicants:   job.ApplicantCount,
		Likes:        job.LikeCount,
		Comments:     job.CommentCount,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
	if salary := job.Salary.Data(); !salary.IsZero() {
		view.Salary = &salary
	}
	return view
}

func NewApplyResult(app *models.Application) ApplyResult {
	return ApplyResult{
		ID:              app.ID,
		MatchPercentage: app.MatchPercentage,
		Status:          app.Status,
		AppliedAt:       app.AppliedAt,
	}
}

package dtos

import (
	"time"

	"github.com/justsurfingit/govconnect/internal/models"
)

type ApplicationListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending reviewed accepted rejected"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed accepted rejected"`
	Notes  string `json:"notes" binding:"max=5000"`
}

type ApplicationJob struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Description  string   `json:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

type ApplicationStudent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ApplicationView struct {
	ID              string             `json:"id"`
	Job             ApplicationJob     `json:"job"`
	Student         ApplicationStudent `json:"student"`
	Company         Person             `json:"company"`
	Status          string             `json:"status"`
	MatchPercentage int                `json:"matchPercentage"`
	CoverLetter     string             `json:"coverLetter"`
	ResumeURL       string             `json:"resumeUrl"`
	AppliedAt       time.Time          `json:"appliedAt"`
	ReviewedAt      *time.Time         `json:"reviewedAt"`
	Notes           string             `json:"notes"`
}

// NewApplicationView projects an application. detailed adds the job body.
func NewApplicationView(app *models.Application, detailed bool) ApplicationView {
	job := ApplicationJob{
		ID:       app.JobID,
		Title:    app.Job.Title,
		Location: app.Job.Location,
		Type:     app.Job.Type,
	}
	if detailed {
		job.Description = app.Job.Description
		job.Requirements = nonNil(app.Job.Requirements)
		job.Skills = nonNil(app.Job.Skills)
	}

	student := NewPerson(&app.Student)
	company := NewPerson(&app.Company)
	company.Name = companyName(&app.Company)

	return ApplicationView{
		ID:              app.ID,
		Job:             job,
		Student:         ApplicationStudent{ID: app.StudentID, Name: student.Name, Email: app.Student.Email},
		Company:         company,
		Status:          app.Status,
		MatchPercentage: app.MatchPercentage,
		CoverLetter:     app.CoverLetter,
		ResumeURL:       app.ResumeURL,
		AppliedAt:       app.AppliedAt,
		ReviewedAt:      app.ReviewedAt,
		Notes:           app.Notes,
	}
}

func NewApplicationViews(apps []models.Application) []ApplicationView {
	out := make([]ApplicationView, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationView(&apps[i], false))
	}
	return out
}

package dtos

import (
	"time"

	"github.com/justsurfingit/govconnect/internal/models"
)

type ResumeView struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	FilePath     string    `json:"filePath"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	IsActive     bool      `json:"isActive"`
	HasText      bool      `json:"hasText"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

func NewResumeView(r *models.Resume) ResumeView {
	return ResumeView{
		ID:           r.ID,
		Filename:     r.Filename,
		OriginalName: r.OriginalName,
		FilePath:     r.FilePath,
		FileSize:     r.FileSize,
		MimeType:     r.MimeType,
		IsActive:     r.IsActive,
		HasText:      r.ExtractedText != "",
		UploadedAt:   r.UploadedAt,
	}
}

func NewResumeViews(resumes []models.Resume) []ResumeView {
	out := make([]ResumeView, 0, len(resumes))
	for i := range resumes {
		out = append(out, NewResumeView(&resumes[i]))
	}
	return out
}

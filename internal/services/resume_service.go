package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
	"github.com/justsurfingit/govconnect/internal/storage"
)

const resumeNotFound = "Resume not found"

// FileStore persists uploaded resume files.
type FileStore interface {
	SaveResume(originalName string, r io.Reader) (*storage.File, error)
	Remove(filePath string) error
}

type ResumeService struct {
	DB    *gorm.DB
	Files FileStore
	LLM   *LLMService
}

func NewResumeService(db *gorm.DB, files FileStore, llm *LLMService) *ResumeService {
	return &ResumeService{DB: db, Files: files, LLM: llm}
}

// Upload stores the file and makes it the user's only active resume.
func (s *ResumeService) Upload(ctx context.Context, userID, originalName string, r io.Reader) (*models.Resume, error) {
	file, err := s.Files.SaveResume(originalName, r)
	if err != nil {
		return nil, err
	}

	resume := &models.Resume{
		UserID:        userID,
		Filename:      file.Filename,
		OriginalName:  file.OriginalName,
		FilePath:      file.FilePath,
		FileSize:      file.Size,
		MimeType:      file.MimeType,
		IsActive:      true,
		ExtractedText: file.Text,
		UploadedAt:    time.Now(),
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Resume{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Create(resume).Error
	})
	if err != nil {
		if rmErr := s.Files.Remove(file.FilePath); rmErr != nil {
			slog.WarnContext(ctx, "failed to clean up upload", "path", file.FilePath, "error", rmErr)
		}
		return nil, fmt.Errorf("save resume: %w", err)
	}
	return resume, nil
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

// Delete removes an owned resume and its file. Deleting the active resume
// promotes the most recent remaining one.
func (s *ResumeService) Delete(ctx context.Context, userID, id string) error {
	var resume models.Resume
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error; err != nil {
			return notFound(err, resumeNotFound)
		}
		if err := tx.Delete(&resume).Error; err != nil {
			return err
		}
		if !resume.IsActive {
			return nil
		}

		var next models.Resume
		err := tx.Where("user_id = ?", userID).Order("uploaded_at DESC").Limit(1).Find(&next).Error
		if err != nil || next.ID == "" {
			return err
		}
		return tx.Model(&next).Update("is_active", true).Error
	})
	if err != nil {
		return err
	}

	if err := s.Files.Remove(resume.FilePath); err != nil {
		slog.WarnContext(ctx, "failed to remove resume file", "path", resume.FilePath, "error", err)
	}
	return nil
}

// Verify asks the model whether an uploaded resume looks genuine.
func (s *ResumeService) Verify(ctx context.Context, userID, id string) (*dtos.VerifyResumeResult, error) {
	var resume models.Resume
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&resume).Error; err != nil {
		return nil, notFound(err, resumeNotFound)
	}
	if resume.ExtractedText == "" {
		return nil, apperr.Validation("No text could be extracted from this resume")
	}
	return s.LLM.VerifyResume(ctx, resume.ExtractedText)
}

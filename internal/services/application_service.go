package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

const applicationNotFound = "Application not found"

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// scope restricts a query to the applications the viewer may see.
func (s *ApplicationService) scope(q *gorm.DB, viewer Viewer) (*gorm.DB, error) {
	switch viewer.Role {
	case auth.RoleStudent:
		return q.Where("student_id = ?", viewer.UserID), nil
	case auth.RoleCompany:
		return q.Where("company_id = ?", viewer.UserID), nil
	case auth.RoleAdmin:
		return q, nil
	default:
		return nil, apperr.Validation("Invalid user type")
	}
}

func (s *ApplicationService) List(ctx context.Context, viewer Viewer, status string) ([]models.Application, error) {
	q, err := s.scope(s.DB.WithContext(ctx).Model(&models.Application{}), viewer)
	if err != nil {
		return nil, err
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var apps []models.Application
	err = q.Preload("Job").Preload("Student").Preload("Company").
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *ApplicationService) Get(ctx context.Context, viewer Viewer, id string) (*models.Application, error) {
	q, err := s.scope(s.DB.WithContext(ctx).Model(&models.Application{}), viewer)
	if err != nil {
		return nil, err
	}

	var app models.Application
	err = q.Preload("Job").Preload("Student").Preload("Company").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, notFound(err, applicationNotFound)
	}
	return &app, nil
}

// UpdateStatus lets the owning company move an application through review.
func (s *ApplicationService) UpdateStatus(ctx context.Context, viewer Viewer, id string, req *dtos.ApplicationStatusRequest) (*models.Application, error) {
	if viewer.Role != auth.RoleCompany {
		return nil, apperr.Forbidden("Only companies can update application status")
	}

	now := time.Now()
	res := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("id = ? AND company_id = ?", id, viewer.UserID).
		Updates(map[string]any{
			"status":      req.Status,
			"notes":       req.Notes,
			"reviewed_at": now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Application not found or unauthorized")
	}
	return s.Get(ctx, viewer, id)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

const (
	updateNotFound = "Company update not found"
	updateNotOwned = "Company update not found or unauthorized"
)

type CompanyUpdateService struct {
	DB *gorm.DB
}

func NewCompanyUpdateService(db *gorm.DB) *CompanyUpdateService {
	return &CompanyUpdateService{DB: db}
}

func (s *CompanyUpdateService) List(ctx context.Context, companyID string, page Page) ([]models.CompanyUpdate, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.CompanyUpdate{})
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count updates: %w", err)
	}

	var updates []models.CompanyUpdate
	err := q.Preload("Company").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&updates).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list updates: %w", err)
	}
	return updates, total, nil
}

func (s *CompanyUpdateService) Get(ctx context.Context, id string) (*models.CompanyUpdate, error) {
	var u models.CompanyUpdate
	if err := s.DB.WithContext(ctx).Preload("Company").First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, updateNotFound)
	}
	return &u, nil
}

func (s *CompanyUpdateService) Create(ctx context.Context, companyID string, req *dtos.CompanyUpdateRequest) (*models.CompanyUpdate, error) {
	u := &models.CompanyUpdate{
		CompanyID: companyID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Image:     req.Image,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("create update: %w", err)
	}
	return s.Get(ctx, u.ID)
}

func (s *CompanyUpdateService) Update(ctx context.Context, companyID, id string, req *dtos.CompanyUpdatePatch) (*models.CompanyUpdate, error) {
	updates := map[string]any{}
	setString(updates, "title", req.Title)
	setString(updates, "content", req.Content)
	setString(updates, "image", req.Image)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.CompanyUpdate
		if err := tx.Where("id = ? AND company_id = ?", id, companyID).First(&u).Error; err != nil {
			return notFound(err, updateNotOwned)
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&u).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CompanyUpdateService) Delete(ctx context.Context, companyID, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND company_id = ?", id, companyID).Delete(&models.CompanyUpdate{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(updateNotOwned)
		}
		if err := tx.Where("update_id = ?", id).Delete(&models.CompanyUpdateLike{}).Error; err != nil {
			return err
		}
		return tx.Where("update_id = ?", id).Delete(&models.CompanyUpdateComment{}).Error
	})
}

func (s *CompanyUpdateService) ToggleLike(ctx context.Context, userID, id string) (bool, int, error) {
	var liked bool
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.CompanyUpdate{}, id, updateNotFound); err != nil {
			return err
		}
		var err error
		like := &models.CompanyUpdateLike{UpdateID: id, UserID: userID}
		liked, err = toggleLike(tx, &models.CompanyUpdate{}, id, like, "update_id", userID)
		if err != nil {
			return err
		}
		count, err = readCounter(tx, &models.CompanyUpdate{}, id, "like_count")
		return err
	})
	return liked, count, err
}

func (s *CompanyUpdateService) AddComment(ctx context.Context, userID, id, text string) (*models.CompanyUpdateComment, error) {
	comment := &models.CompanyUpdateComment{UpdateID: id, UserID: userID, Comment: strings.TrimSpace(text)}
	if comment.Comment == "" {
		return nil, apperr.Validation("Comment is required")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.CompanyUpdate{}, id, updateNotFound); err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return bumpCounter(tx, &models.CompanyUpdate{}, id, "comment_count", 1)
	})
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Preload("User").First(comment, "id = ?", comment.ID).Error; err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return comment, nil
}

func (s *CompanyUpdateService) ListComments(ctx context.Context, id string) ([]models.CompanyUpdateComment, error) {
	if err := mustExist(s.DB.WithContext(ctx), &models.CompanyUpdate{}, id, updateNotFound); err != nil {
		return nil, err
	}
	var comments []models.CompanyUpdateComment
	err := s.DB.WithContext(ctx).Preload("User").
		Where("update_id = ?", id).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Stats returns the dashboard counters for the viewer's role.
func (s *StatsService) Stats(ctx context.Context, viewer Viewer) (any, error) {
	switch viewer.Role {
	case auth.RoleStudent:
		return s.student(ctx, viewer.UserID)
	case auth.RoleCompany:
		return s.company(ctx, viewer.UserID)
	case auth.RoleAdmin:
		return s.admin(ctx)
	default:
		return nil, apperr.Validation("Invalid user type")
	}
}

func (s *StatsService) student(ctx context.Context, userID string) (*dtos.StudentStats, error) {
	var out dtos.StudentStats
	g, gctx := errgroup.WithContext(ctx)
	db := s.DB.WithContext(gctx)

	g.Go(func() error {
		return db.Model(&models.Application{}).Where("student_id = ?", userID).Count(&out.TotalApplications).Error
	})
	g.Go(func() error {
		var err error
		out.ApplicationsByStatus, err = s.byStatus(db.Where("student_id = ?", userID))
		return err
	})
	g.Go(func() error {
		return db.Model(&models.JobLike{}).Where("user_id = ?", userID).Count(&out.SavedJobs).Error
	})
	g.Go(func() error {
		return db.Model(&models.Resume{}).Where("user_id = ?", userID).Count(&out.Resumes).Error
	})
	g.Go(func() error {
		return db.Model(&models.Discussion{}).Where("author_id = ?", userID).Count(&out.DiscussionPosts).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("student stats: %w", err)
	}
	return &out, nil
}

func (s *StatsService) company(ctx context.Context, companyID string) (*dtos.CompanyStats, error) {
	var out dtos.CompanyStats
	g, gctx := errgroup.WithContext(ctx)
	db := s.DB.WithContext(gctx)

	g.Go(func() error {
		return db.Model(&models.Job{}).Where("company_id = ?", companyID).Count(&out.JobPosts).Error
	})
	g.Go(func() error {
		var company models.User
		if err := db.Select("profile_followers").First(&company, "id = ?", companyID).Error; err != nil {
			return notFound(err, "User not found")
		}
		out.Followers = company.Profile.Followers
		return nil
	})
	g.Go(func() error {
		var rows []struct {
			Type  string
			Count int64
		}
		err := db.Model(&models.Job{}).
			Select("type, COUNT(*) AS count").
			Where("company_id = ?", companyID).
			Group("type").
			Scan(&rows).Error
		if err != nil {
			return err
		}
		out.JobsByType = make(map[string]int64, len(rows))
		for _, row := range rows {
			out.JobsByType[row.Type] = row.Count
		}
		return nil
	})
	g.Go(func() error {
		return db.Model(&models.Job{}).
			Where("company_id = ? AND status = ?", companyID, models.JobStatusOpen).
			Count(&out.ActiveJobs).Error
	})
	g.Go(func() error {
		return db.Model(&models.Application{}).Where("company_id = ?", companyID).Count(&out.TotalApplications).Error
	})
	g.Go(func() error {
		var err error
		out.ApplicationsByStatus, err = s.byStatus(db.Where("company_id = ?", companyID))
		return err
	})
	g.Go(func() error {
		return db.Model(&models.CompanyUpdate{}).Where("company_id = ?", companyID).Count(&out.CompanyUpdates).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("company stats: %w", err)
	}
	return &out, nil
}

func (s *StatsService) admin(ctx context.Context) (*dtos.AdminStats, error) {
	var out dtos.AdminStats
	g, gctx := errgroup.WithContext(ctx)
	db := s.DB.WithContext(gctx)

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &out.Users},
		{&models.Job{}, &out.Jobs},
		{&models.Application{}, &out.Applications},
		{&models.Discussion{}, &out.Discussions},
		{&models.CompanyUpdate{}, &out.CompanyUpdates},
		{&models.Resume{}, &out.Resumes},
	}
	for _, c := range counts {
		g.Go(func() error {
			return db.Model(c.model).Count(c.dst).Error
		})
	}
	g.Go(func() error {
		var rows []struct {
			UserType string
			Count    int64
		}
		err := db.Model(&models.User{}).
			Select("user_type, COUNT(*) AS count").
			Group("user_type").
			Scan(&rows).Error
		if err != nil {
			return err
		}
		out.UsersByType = make(map[string]int64, len(rows))
		for _, row := range rows {
			out.UsersByType[row.UserType] = row.Count
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return &out, nil
}

// byStatus groups the scoped applications by status.
func (s *StatsService) byStatus(scoped *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := scoped.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[string]int64{
		models.ApplicationPending:  0,
		models.ApplicationReviewed: 0,
		models.ApplicationAccepted: 0,
		models.ApplicationRejected: 0,
	}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/database"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

const (
	jobNotFound          = "Job not found"
	jobNotOwned          = "Job not found or unauthorized"
	jobNotOpen           = "Job is not open for applications"
	alreadyAppliedToJob  = "You have already applied for this job"
	minMatchPercentage   = 65
	matchPercentageRange = 31
)

type JobService struct {
	DB *gorm.DB
	// match scores an application; placeholder until real matching exists.
	match func() int
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB:    db,
		match: func() int { return minMatchPercentage + rand.IntN(matchPercentageRange) },
	}
}

type JobFilter struct {
	Type     string
	Location string
}

// JobDetail is a job with its applicants, likers and comments loaded.
type JobDetail struct {
	Job        models.Job
	Applicants []models.User
	Likers     []models.User
	Comments   []models.JobComment
}

func (s *JobService) ListJobs(ctx context.Context, filter JobFilter, page Page) ([]models.Job, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Job{}).Where("status = ?", models.JobStatusOpen)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Location != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, containsPattern(filter.Location))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	var jobs []models.Job
	err := q.Preload("Company").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*JobDetail, error) {
	db := s.DB.WithContext(ctx)

	var detail JobDetail
	if err := db.Preload("Company").First(&detail.Job, "id = ?", id).Error; err != nil {
		return nil, notFound(err, jobNotFound)
	}

	err := db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN applications ON applications.student_id = users.id").
		Where("applications.job_id = ?", id).
		Order("applications.applied_at ASC").
		Find(&detail.Applicants).Error
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}

	err = db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN job_likes ON job_likes.user_id = users.id").
		Where("job_likes.job_id = ?", id).
		Find(&detail.Likers).Error
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}

	err = db.Preload("User").
		Where("job_id = ?", id).
		Order("created_at ASC").
		Find(&detail.Comments).Error
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return &detail, nil
}

func (s *JobService) CreateJob(ctx context.Context, companyID string, req *dtos.JobCreationRequest) (*models.Job, error) {
	job := &models.Job{
		CompanyID:    companyID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Location:     strings.TrimSpace(req.Location),
		Type:         req.Type,
		Status:       req.Status,
		Requirements: datatypes.NewJSONSlice(req.Requirements),
		Skills:       datatypes.NewJSONSlice(req.Skills),
		Image:        req.Image,
		Hint:         req.Hint,
	}
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	if req.Salary != nil {
		job.Salary = datatypes.NewJSONType(models.Salary(*req.Salary))
	}

	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return s.reload(ctx, job.ID)
}

// UpdateJob applies a partial update to a job the company owns.
func (s *JobService) UpdateJob(ctx context.Context, companyID, jobID string, req *dtos.JobUpdateRequest) (*models.Job, error) {
	updates := map[string]any{}
	setString(updates, "title", req.Title)
	setString(updates, "description", req.Description)
	setString(updates, "location", req.Location)
	setString(updates, "type", req.Type)
	setString(updates, "status", req.Status)
	setString(updates, "image", req.Image)
	setString(updates, "hint", req.Hint)
	if req.Requirements != nil {
		updates["requirements"] = datatypes.NewJSONSlice(req.Requirements)
	}
	if req.Skills != nil {
		updates["skills"] = datatypes.NewJSONSlice(req.Skills)
	}
	if req.Salary != nil {
		updates["salary"] = datatypes.NewJSONType(models.Salary(*req.Salary))
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Where("id = ? AND company_id = ?", jobID, companyID).First(&job).Error; err != nil {
			return notFound(err, jobNotOwned)
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&job).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, jobID)
}

// DeleteJob removes an owned job with its likes and comments. Applications are kept.
func (s *JobService) DeleteJob(ctx context.Context, companyID, jobID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND company_id = ?", jobID, companyID).Delete(&models.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(jobNotOwned)
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobLike{}).Error; err != nil {
			return err
		}
		return tx.Where("job_id = ?", jobID).Delete(&models.JobComment{}).Error
	})
}

// Apply records a student's application to an open job and bumps its applicant count.
func (s *JobService) Apply(ctx context.Context, studentID, jobID string, req *dtos.ApplyRequest) (*models.Application, error) {
	var app *models.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return notFound(err, jobNotFound)
		}
		if job.Status != models.JobStatusOpen {
			return apperr.Validation(jobNotOpen)
		}

		var existing int64
		err := tx.Model(&models.Application{}).
			Where("job_id = ? AND student_id = ?", jobID, studentID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return apperr.Validation(alreadyAppliedToJob)
		}

		app = &models.Application{
			JobID:           job.ID,
			StudentID:       studentID,
			CompanyID:       job.CompanyID,
			Status:          models.ApplicationPending,
			CoverLetter:     req.CoverLetter,
			ResumeURL:       req.ResumeURL,
			MatchPercentage: s.match(),
			AppliedAt:       time.Now(),
		}
		if err := tx.Create(app).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.Validation(alreadyAppliedToJob)
			}
			return err
		}
		return bumpCounter(tx, &models.Job{}, job.ID, "applicant_count", 1)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// ToggleLike likes or unlikes a job for the user and returns the new state and count.
func (s *JobService) ToggleLike(ctx context.Context, userID, jobID string) (bool, int, error) {
	var liked bool
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Job{}, jobID, jobNotFound); err != nil {
			return err
		}
		var err error
		liked, err = toggleLike(tx, &models.Job{}, jobID, &models.JobLike{JobID: jobID, UserID: userID}, "job_id", userID)
		if err != nil {
			return err
		}
		count, err = readCounter(tx, &models.Job{}, jobID, "like_count")
		return err
	})
	return liked, count, err
}

func (s *JobService) AddComment(ctx context.Context, userID, jobID, text string) (*models.JobComment, error) {
	comment := &models.JobComment{JobID: jobID, UserID: userID, Comment: strings.TrimSpace(text)}
	if comment.Comment == "" {
		return nil, apperr.Validation("Comment is required")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Job{}, jobID, jobNotFound); err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return bumpCounter(tx, &models.Job{}, jobID, "comment_count", 1)
	})
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Preload("User").First(comment, "id = ?", comment.ID).Error; err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return comment, nil
}

func (s *JobService) ListComments(ctx context.Context, jobID string) ([]models.JobComment, error) {
	if err := mustExist(s.DB.WithContext(ctx), &models.Job{}, jobID, jobNotFound); err != nil {
		return nil, err
	}
	var comments []models.JobComment
	err := s.DB.WithContext(ctx).Preload("User").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *JobService) reload(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).Preload("Company").First(&job, "id = ?", id).Error; err != nil {
		return nil, notFound(err, jobNotFound)
	}
	return &job, nil
}

func setString(updates map[string]any, column string, value *string) {
	if value != nil {
		updates[column] = strings.TrimSpace(*value)
	}
}

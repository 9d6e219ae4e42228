package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/models"
)

const (
	SearchAll         = "all"
	SearchJobs        = "jobs"
	SearchCompanies   = "companies"
	SearchDiscussions = "discussions"

	// perKindLimit caps each kind when searching everything at once.
	perKindLimit = 5
)

type SearchService struct {
	DB          *gorm.DB
	Discussions *DiscussionService
}

func NewSearchService(db *gorm.DB, discussions *DiscussionService) *SearchService {
	return &SearchService{DB: db, Discussions: discussions}
}

type SearchResult struct {
	Jobs        []models.Job
	Companies   []models.User
	Discussions []models.Discussion
	ReplyCounts map[string]int
	Total       int64
}

func (s *SearchService) Search(ctx context.Context, query, kind string, page Page) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("Search query is required")
	}
	if kind == "" {
		kind = SearchAll
	}

	limit, offset := page.Limit, page.Offset()
	if kind == SearchAll {
		limit, offset = perKindLimit, 0
	}
	pattern := containsPattern(query)

	var res SearchResult
	var jobTotal, companyTotal, discussionTotal int64
	g, gctx := errgroup.WithContext(ctx)

	if kind == SearchAll || kind == SearchJobs {
		g.Go(func() error {
			q := s.DB.WithContext(gctx).Model(&models.Job{}).
				Where("status = ?", models.JobStatusOpen).
				Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\')`, pattern, pattern, pattern)
			if err := q.Count(&jobTotal).Error; err != nil {
				return fmt.Errorf("count jobs: %w", err)
			}
			return q.Preload("Company").Order("created_at DESC").
				Offset(offset).Limit(limit).Find(&res.Jobs).Error
		})
	}

	if kind == SearchAll || kind == SearchCompanies {
		g.Go(func() error {
			q := s.DB.WithContext(gctx).Model(&models.User{}).
				Where("user_type = ?", models.UserTypeCompany).
				Where(`(LOWER(profile_company_name) LIKE ? ESCAPE '\' OR LOWER(profile_description) LIKE ? ESCAPE '\' OR LOWER(profile_location) LIKE ? ESCAPE '\')`, pattern, pattern, pattern)
			if err := q.Count(&companyTotal).Error; err != nil {
				return fmt.Errorf("count companies: %w", err)
			}
			return q.Order("profile_followers DESC").
				Offset(offset).Limit(limit).Find(&res.Companies).Error
		})
	}

	if kind == SearchAll || kind == SearchDiscussions {
		g.Go(func() error {
			q := s.DB.WithContext(gctx).Model(&models.Discussion{}).
				Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
			if err := q.Count(&discussionTotal).Error; err != nil {
				return fmt.Errorf("count discussions: %w", err)
			}
			if err := q.Preload("Author").Order("created_at DESC").
				Offset(offset).Limit(limit).Find(&res.Discussions).Error; err != nil {
				return err
			}
			counts, err := s.Discussions.replyCounts(gctx, res.Discussions)
			res.ReplyCounts = counts
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	res.Total = jobTotal + companyTotal + discussionTotal
	return &res, nil
}

// ValidSearchKind reports whether kind names a searchable collection.
func ValidSearchKind(kind string) bool {
	switch kind {
	case "", SearchAll, SearchJobs, SearchCompanies, SearchDiscussions:
		return true
	}
	return false
}

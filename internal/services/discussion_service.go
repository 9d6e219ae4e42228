package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

const (
	discussionNotFound = "Discussion not found"
	discussionNotOwned = "Discussion not found or unauthorized"
	replyNotFound      = "Reply not found"
	defaultCategory    = "general"
)

type DiscussionService struct {
	DB *gorm.DB
}

func NewDiscussionService(db *gorm.DB) *DiscussionService {
	return &DiscussionService{DB: db}
}

type DiscussionFilter struct {
	Category string
	Search   string
	Tag      string
}

// List returns discussions pinned first, newest first, with reply counts keyed by id.
func (s *DiscussionService) List(ctx context.Context, filter DiscussionFilter, page Page) ([]models.Discussion, map[string]int, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Discussion{})
	if filter.Category != "" && !strings.EqualFold(filter.Category, "all") {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if filter.Tag != "" {
		q = q.Where(datatypes.JSONArrayQuery("tags").Contains(normalizeTag(filter.Tag)))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, 0, fmt.Errorf("count discussions: %w", err)
	}

	var discussions []models.Discussion
	err := q.Preload("Author").
		Order("is_pinned DESC").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&discussions).Error
	if err != nil {
		return nil, nil, 0, fmt.Errorf("list discussions: %w", err)
	}

	counts, err := s.replyCounts(ctx, discussions)
	if err != nil {
		return nil, nil, 0, err
	}
	return discussions, counts, total, nil
}

func (s *DiscussionService) replyCounts(ctx context.Context, discussions []models.Discussion) (map[string]int, error) {
	counts := make(map[string]int, len(discussions))
	if len(discussions) == 0 {
		return counts, nil
	}
	ids := make([]string, 0, len(discussions))
	for _, d := range discussions {
		ids = append(ids, d.ID)
	}

	var rows []struct {
		DiscussionID string
		Count        int
	}
	err := s.DB.WithContext(ctx).Model(&models.DiscussionReply{}).
		Select("discussion_id, COUNT(*) AS count").
		Where("discussion_id IN ?", ids).
		Group("discussion_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count replies: %w", err)
	}
	for _, row := range rows {
		counts[row.DiscussionID] = row.Count
	}
	return counts, nil
}

// Get records a view and returns the discussion with replies and likers.
func (s *DiscussionService) Get(ctx context.Context, id string) (*models.Discussion, []models.User, error) {
	db := s.DB.WithContext(ctx)

	res := db.Model(&models.Discussion{}).Where("id = ?", id).UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return nil, nil, fmt.Errorf("record view: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil, apperr.NotFound(discussionNotFound)
	}

	var d models.Discussion
	err := db.Preload("Author").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Replies.Author").
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, nil, notFound(err, discussionNotFound)
	}

	var likers []models.User
	err = db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN discussion_likes ON discussion_likes.user_id = users.id").
		Where("discussion_likes.discussion_id = ?", id).
		Find(&likers).Error
	if err != nil {
		return nil, nil, fmt.Errorf("load likes: %w", err)
	}
	return &d, likers, nil
}

func (s *DiscussionService) Create(ctx context.Context, authorID string, req *dtos.DiscussionRequest) (*models.Discussion, error) {
	d := &models.Discussion{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		AuthorID: authorID,
		Category: req.Category,
		Tags:     datatypes.NewJSONSlice(normalizeTags(req.Tags)),
	}
	if d.Category == "" {
		d.Category = defaultCategory
	}
	if err := s.DB.WithContext(ctx).Create(d).Error; err != nil {
		return nil, fmt.Errorf("create discussion: %w", err)
	}
	return s.reload(ctx, d.ID)
}

// Update edits a discussion the caller authored.
func (s *DiscussionService) Update(ctx context.Context, authorID, id string, req *dtos.DiscussionUpdateRequest) (*models.Discussion, error) {
	updates := map[string]any{}
	setString(updates, "title", req.Title)
	setString(updates, "content", req.Content)
	setString(updates, "category", req.Category)
	if req.Tags != nil {
		updates["tags"] = datatypes.NewJSONSlice(normalizeTags(req.Tags))
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Discussion
		if err := tx.Where("id = ? AND author_id = ?", id, authorID).First(&d).Error; err != nil {
			return notFound(err, discussionNotOwned)
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&d).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

// Delete removes a discussion and everything hanging off it. Moderators may
// delete any discussion, other callers only their own.
func (s *DiscussionService) Delete(ctx context.Context, userID, id string, moderator bool) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ?", id)
		if !moderator {
			q = q.Where("author_id = ?", userID)
		}
		res := q.Delete(&models.Discussion{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(discussionNotOwned)
		}

		replyIDs := tx.Model(&models.DiscussionReply{}).Select("id").Where("discussion_id = ?", id)
		if err := tx.Where("reply_id IN (?)", replyIDs).Delete(&models.ReplyLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("discussion_id = ?", id).Delete(&models.DiscussionReply{}).Error; err != nil {
			return err
		}
		return tx.Where("discussion_id = ?", id).Delete(&models.DiscussionLike{}).Error
	})
}

func (s *DiscussionService) ToggleLike(ctx context.Context, userID, id string) (bool, int, error) {
	var liked bool
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Discussion{}, id, discussionNotFound); err != nil {
			return err
		}
		var err error
		like := &models.DiscussionLike{DiscussionID: id, UserID: userID}
		liked, err = toggleLike(tx, &models.Discussion{}, id, like, "discussion_id", userID)
		if err != nil {
			return err
		}
		count, err = readCounter(tx, &models.Discussion{}, id, "like_count")
		return err
	})
	return liked, count, err
}

// Reply appends a reply unless the discussion is locked.
func (s *DiscussionService) Reply(ctx context.Context, authorID, id, content string) (*models.DiscussionReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("Content is required")
	}

	db := s.DB.WithContext(ctx)
	var d models.Discussion
	if err := db.Select("id", "is_locked").First(&d, "id = ?", id).Error; err != nil {
		return nil, notFound(err, discussionNotFound)
	}
	if d.IsLocked {
		return nil, apperr.Forbidden("Discussion is locked")
	}

	reply := &models.DiscussionReply{DiscussionID: id, AuthorID: authorID, Content: content}
	if err := db.Create(reply).Error; err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	if err := db.Preload("Author").First(reply, "id = ?", reply.ID).Error; err != nil {
		return nil, fmt.Errorf("reload reply: %w", err)
	}
	return reply, nil
}

func (s *DiscussionService) ToggleReplyLike(ctx context.Context, userID, discussionID, replyID string) (bool, int, error) {
	var liked bool
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&models.DiscussionReply{}).
			Where("id = ? AND discussion_id = ?", replyID, discussionID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound(replyNotFound)
		}
		like := &models.ReplyLike{ReplyID: replyID, UserID: userID}
		liked, err = toggleLike(tx, &models.DiscussionReply{}, replyID, like, "reply_id", userID)
		if err != nil {
			return err
		}
		count, err = readCounter(tx, &models.DiscussionReply{}, replyID, "like_count")
		return err
	})
	return liked, count, err
}

// Moderate pins or locks a discussion.
func (s *DiscussionService) Moderate(ctx context.Context, id string, req *dtos.ModerationRequest) (*models.Discussion, error) {
	updates := map[string]any{}
	if req.IsPinned != nil {
		updates["is_pinned"] = *req.IsPinned
	}
	if req.IsLocked != nil {
		updates["is_locked"] = *req.IsLocked
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("Nothing to update")
	}

	res := s.DB.WithContext(ctx).Model(&models.Discussion{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("moderate discussion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(discussionNotFound)
	}
	return s.reload(ctx, id)
}

func (s *DiscussionService) reload(ctx context.Context, id string) (*models.Discussion, error) {
	var d models.Discussion
	err := s.DB.WithContext(ctx).Preload("Author").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Replies.Author").
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, discussionNotFound)
	}
	return &d, nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = normalizeTag(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

package dtos

import (
	"time"

	"github.com/justsurfingit/govconnect/internal/models"
)

type DiscussionListQuery struct {
	PageQuery
	Category string `form:"category"`
	Search   string `form:"search"`
	Tag      string `form:"tag"`
}

type DiscussionRequest struct {
	Title    string   `json:"title" binding:"required,min=5,max=200"`
	Content  string   `json:"content" binding:"required,min=10,max=10000"`
	Category string   `json:"category" binding:"omitempty,oneof=general jobs internships career-advice company-updates"`
	Tags     []string `json:"tags" binding:"max=10,dive,max=50"`
}

type DiscussionUpdateRequest struct {
	Title    *string  `json:"title" binding:"omitempty,min=5,max=200"`
	Content  *string  `json:"content" binding:"omitempty,min=10,max=10000"`
	Category *string  `json:"category" binding:"omitempty,oneof=general jobs internships career-advice company-updates"`
	Tags     []string `json:"tags" binding:"omitempty,max=10,dive,max=50"`
}

type ReplyRequest struct {
	Content string `json:"content" binding:"required,min=5,max=5000"`
}

type ModerationRequest struct {
	IsPinned *bool `json:"isPinned"`
	IsLocked *bool `json:"isLocked"`
}

type DiscussionSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Author    Person    `json:"author"`
	Likes     int       `json:"likes"`
	Replies   int       `json:"replies"`
	Views     int       `json:"views"`
	IsPinned  bool      `json:"isPinned"`
	IsLocked  bool      `json:"isLocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReplyView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    Person    `json:"author"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DiscussionDetail struct {
	DiscussionSummary
	LikedBy   []Person    `json:"likedBy"`
	ReplyList []ReplyView `json:"replyList"`
}

func NewDiscussionSummary(d *models.Discussion, replyCount int) DiscussionSummary {
	return DiscussionSummary{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		Tags:      nonNil(d.Tags),
		Author:    NewPerson(&d.Author),
		Likes:     d.LikeCount,
		Replies:   replyCount,
		Views:     d.Views,
		IsPinned:  d.IsPinned,
		IsLocked:  d.IsLocked,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func NewReplyView(r *models.DiscussionReply) ReplyView {
	return ReplyView{
		ID:        r.ID,
		Content:   r.Content,
		Author:    NewPerson(&r.Author),
		Likes:     r.LikeCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewDiscussionDetail(d *models.Discussion, likers []models.User) DiscussionDetail {
	replies := make([]ReplyView, 0, len(d.Replies))
	for i := range d.Replies {
		replies = append(replies, NewReplyView(&d.Replies[i]))
	}
	return DiscussionDetail{
		DiscussionSummary: NewDiscussionSummary(d, len(d.Replies)),
		LikedBy:           NewPeople(likers),
		ReplyList:         replies,
	}
}

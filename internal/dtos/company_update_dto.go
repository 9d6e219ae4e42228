package dtos

import (
	"time"

	"github.com/justsurfingit/govconnect/internal/models"
)

type CompanyUpdateListQuery struct {
	PageQuery
	CompanyID string `form:"companyId"`
}

type CompanyUpdateRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"max=10000"`
	Image   string `json:"image"`
}

type CompanyUpdatePatch struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" binding:"omitempty,min=1,max=10000"`
	Image   *string `json:"image"`
}

type CompanyUpdateView struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Company   string    `json:"company"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCompanyUpdateView(u *models.CompanyUpdate) CompanyUpdateView {
	return CompanyUpdateView{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Company:   companyName(&u.Company),
		Title:     u.Title,
		Content:   u.Content,
		Image:     u.Image,
		Likes:     u.LikeCount,
		Comments:  u.CommentCount,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewCompanyUpdateViews(updates []models.CompanyUpdate) []CompanyUpdateView {
	out := make([]CompanyUpdateView, 0, len(updates))
	for i := range updates {
		out = append(out, NewCompanyUpdateView(&updates[i]))
	}
	return out
}

func NewUpdateCommentViews(comments []models.CompanyUpdateComment) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		out = append(out, NewCommentView(c.ID, &c.User, c.Comment, c.CreatedAt))
	}
	return out
}

package dtos

import (
	"time"

	"github.com/justsurfingit/govconnect/internal/models"
)

const (
	unknownUser    = "Unknown User"
	unknownCompany = "Unknown Company"
)

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Person is the minimal public identity attached to content.
type Person struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserType string `json:"userType,omitempty"`
}

type CommentView struct {
	ID        string    `json:"id"`
	User      Person    `json:"user"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type LikeResult struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
	Likes   int    `json:"likes"`
}

func NewPerson(u *models.User) Person {
	if u == nil || u.ID == "" {
		return Person{Name: unknownUser}
	}
	name := u.DisplayName()
	if name == "" {
		name = unknownUser
	}
	return Person{ID: u.ID, Name: name, UserType: u.UserType}
}

func NewPeople(users []models.User) []Person {
	out := make([]Person, 0, len(users))
	for i := range users {
		out = append(out, NewPerson(&users[i]))
	}
	return out
}

func NewCommentView(id string, user *models.User, comment string, createdAt time.Time) CommentView {
	return CommentView{ID: id, User: NewPerson(user), Comment: comment, CreatedAt: createdAt}
}

func NewJobCommentViews(comments []models.JobComment) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		out = append(out, NewCommentView(c.ID, &c.User, c.Comment, c.CreatedAt))
	}
	return out
}

func companyName(u *models.User) string {
	if u == nil || u.ID == "" {
		return unknownCompany
	}
	if u.Profile.CompanyName != "" {
		return u.Profile.CompanyName
	}
	if name := u.DisplayName(); name != "" {
		return name
	}
	return unknownCompany
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// Snippet shortens text to max runes, marking the cut with an ellipsis.
func Snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

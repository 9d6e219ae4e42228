package models

import "time"

// CompanyUpdate is a news post published by a company account.
type CompanyUpdate struct {
	Base

	CompanyID string `gorm:"type:varchar(36);index;not null" json:"company_id"`
	Company   User   `gorm:"foreignKey:CompanyID" json:"company"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Image     string `json:"image"`

	LikeCount    int `gorm:"not null" json:"like_count"`
	CommentCount int `gorm:"not null" json:"comment_count"`
}

type CompanyUpdateLike struct {
	UpdateID  string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
}

type CompanyUpdateComment struct {
	Base

	UpdateID string `gorm:"type:varchar(36);index;not null" json:"update_id"`
	UserID   string `gorm:"type:varchar(36);not null" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	Comment  string `gorm:"type:text;not null" json:"comment"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type Discussion struct {
	Base

	Title    string                      `gorm:"not null" json:"title"`
	Content  string                      `gorm:"type:text;not null" json:"content"`
	AuthorID string                      `gorm:"type:varchar(36);index;not null" json:"author_id"`
	Author   User                        `gorm:"foreignKey:AuthorID" json:"author"`
	Category string                      `gorm:"index;not null" json:"category"`
	Tags     datatypes.JSONSlice[string] `json:"tags"`

	LikeCount int  `gorm:"not null" json:"like_count"`
	Views     int  `gorm:"not null" json:"views"`
	IsPinned  bool `gorm:"index;not null" json:"is_pinned"`
	IsLocked  bool `gorm:"not null" json:"is_locked"`

	Replies []DiscussionReply `gorm:"foreignKey:DiscussionID" json:"replies,omitempty"`
}

type DiscussionLike struct {
	DiscussionID string `gorm:"type:varchar(36);primaryKey"`
	UserID       string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt    time.Time
}

type DiscussionReply struct {
	Base

	DiscussionID string `gorm:"type:varchar(36);index;not null" json:"discussion_id"`
	AuthorID     string `gorm:"type:varchar(36);not null" json:"author_id"`
	Author       User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content      string `gorm:"type:text;not null" json:"content"`
	LikeCount    int    `gorm:"not null" json:"like_count"`
}

type ReplyLike struct {
	ReplyID   string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
}

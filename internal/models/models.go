package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the string primary key and timestamps shared by every record.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

const (
	UserTypeStudent = "student"
	UserTypeCompany = "company"
	UserTypeAdmin   = "admin"
)

type User struct {
	Base

	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	UserType     string  `gorm:"index;not null" json:"user_type"`
	Profile      Profile `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
}

const (
	WorkTypeOnSite = "On-site"
	WorkTypeHybrid = "Hybrid"
	WorkTypeRemote = "Remote"
)

// Profile is the public profile. Student and company fields share one row;
// the other type's fields stay empty.
type Profile struct {
	// student
	FullName   string `json:"fullName,omitempty"`
	FatherName string `json:"fatherName,omitempty"`
	MotherName string `json:"motherName,omitempty"`
	College    string `json:"college,omitempty"`
	Education  string `json:"education,omitempty"`
	Interest   string `json:"interest,omitempty"`
	LinkedIn   string `json:"linkedIn,omitempty"`
	Github     string `json:"github,omitempty"`

	// company
	CompanyName  string `gorm:"index" json:"companyName,omitempty"`
	Location     string `json:"location,omitempty"`
	WorkType     string `json:"workType,omitempty"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	CompanyImage string `json:"companyImage,omitempty"`
	Followers    int    `gorm:"not null" json:"followers"`
}

// DisplayName is the name shown next to content the user authored.
func (u *User) DisplayName() string {
	if u == nil || u.ID == "" {
		return ""
	}
	if u.UserType == UserTypeCompany && u.Profile.CompanyName != "" {
		return u.Profile.CompanyName
	}
	if u.Profile.FullName != "" {
		return u.Profile.FullName
	}
	return u.Profile.CompanyName
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Job{}, &JobLike{}, &JobComment{},
		&Application{},
		&Discussion{}, &DiscussionLike{}, &DiscussionReply{}, &ReplyLike{},
		&CompanyUpdate{}, &CompanyUpdateLike{}, &CompanyUpdateComment{},
		&Resume{},
	}
}

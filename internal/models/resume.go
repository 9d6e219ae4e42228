package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resume is an uploaded resume file. At most one per user is active.
type Resume struct {
	Base

	UserID        string                      `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Filename      string                      `gorm:"not null" json:"filename"`
	OriginalName  string                      `gorm:"not null" json:"original_name"`
	FilePath      string                      `gorm:"not null" json:"file_path"`
	FileSize      int64                       `gorm:"not null" json:"file_size"`
	MimeType      string                      `gorm:"not null" json:"mime_type"`
	IsActive      bool                        `gorm:"index;not null" json:"is_active"`
	ExtractedText string                      `gorm:"type:text" json:"-"`
	Skills        datatypes.JSONSlice[string] `json:"skills"`
	Experience    datatypes.JSONSlice[string] `json:"experience"`
	Education     datatypes.JSONSlice[string] `json:"education"`
	UploadedAt    time.Time                   `gorm:"index" json:"uploaded_at"`
}

package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/database"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "govconnect.db") + "?_busy_timeout=5000"
	db, err := database.Connect(database.Config{Driver: "sqlite", DSN: dsn, LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// seedUser inserts a user directly, skipping password hashing.
func seedUser(t *testing.T, db *gorm.DB, userType, name string) *models.User {
	t.Helper()
	u := &models.User{
		Email:        fmt.Sprintf("%s-%s@example.com", userType, name),
		PasswordHash: "x",
		UserType:     userType,
	}
	if userType == models.UserTypeCompany {
		u.Profile.CompanyName = name
		u.Profile.Followers = 12000
	} else {
		u.Profile.FullName = name
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedJob(t *testing.T, svc *JobService, companyID, title string) *models.Job {
	t.Helper()
	job, err := svc.CreateJob(context.Background(), companyID, &dtos.JobCreationRequest{
		Title:       title,
		Description: "Build services for " + title,
		Location:    "New Delhi",
		Type:        models.JobTypeFullTime,
		Skills:      []string{"go", "sql"},
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func expectKind(t *testing.T, err error, kind apperr.Kind, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %q, got nil", message)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("expected kind %v, got %v (%v)", kind, got, err)
	}
	if message != "" && err.Error() != message {
		t.Fatalf("expected message %q, got %q", message, err.Error())
	}
}

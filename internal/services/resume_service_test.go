package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms/fake"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/models"
	"github.com/justsurfingit/govconnect/internal/storage"
)

func newResumeService(t *testing.T, llm *LLMService) (*ResumeService, *storage.LocalStore) {
	t.Helper()
	db := newTestDB(t)
	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "uploads"), 5*1024*1024)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return NewResumeService(db, store, llm), store
}

func TestUploadKeepsSingleActiveResume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newResumeService(t, nil)
	student := seedUser(t, svc.DB, models.UserTypeStudent, "Asha")

	first, err := svc.Upload(ctx, student.ID, "cv-v1.txt", strings.NewReader("Asha, developer"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	second, err := svc.Upload(ctx, student.ID, "cv-v2.txt", strings.NewReader("Asha, senior developer"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	resumes, err := svc.List(ctx, student.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	active := 0
	for _, r := range resumes {
		if r.IsActive {
			active++
			if r.ID != second.ID {
				t.Fatalf("expected newest resume active")
			}
		}
	}
	if len(resumes) != 2 || active != 1 {
		t.Fatalf("expected 2 resumes with 1 active, got %d and %d", len(resumes), active)
	}

	if err := svc.Delete(ctx, student.ID, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "resumes", second.Filename)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}
	resumes, _ = svc.List(ctx, student.ID)
	if len(resumes) != 1 || resumes[0].ID != first.ID || !resumes[0].IsActive {
		t.Fatalf("expected first resume promoted to active, got %+v", resumes)
	}

	other := seedUser(t, svc.DB, models.UserTypeStudent, "Ravi")
	err = svc.Delete(ctx, other.ID, first.ID)
	expectKind(t, err, apperr.KindNotFound, "Resume not found")
}

func TestUploadRejectsBadFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newResumeService(t, nil)
	student := seedUser(t, svc.DB, models.UserTypeStudent, "Asha")

	_, err := svc.Upload(ctx, student.ID, "photo.png", strings.NewReader("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	expectKind(t, err, apperr.KindValidation, "Invalid file type. Only PDF, DOC, DOCX, and TXT files are allowed for resumes.")

	var count int64
	svc.DB.Model(&models.Resume{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no resume rows, got %d", count)
	}
}

func TestVerifyUploadedResume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	llm := NewLLMService(fake.NewFakeLLM([]string{`{"isGenuine": false, "feedback": "Contains lorem ipsum placeholder text."}`}))
	svc, _ := newResumeService(t, llm)
	student := seedUser(t, svc.DB, models.UserTypeStudent, "Asha")

	resume, err := svc.Upload(ctx, student.ID, "cv.txt", strings.NewReader("Lorem ipsum dolor sit amet"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	verdict, err := svc.Verify(ctx, student.ID, resume.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verdict.IsGenuine || !strings.Contains(verdict.Feedback, "lorem ipsum") {
		t.Fatalf("unexpected verdict %+v", verdict)
	}

	_, err = svc.Verify(ctx, "someone-else", resume.ID)
	expectKind(t, err, apperr.KindNotFound, "Resume not found")
}

func TestVerifyWithoutModelIsUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newResumeService(t, nil)
	student := seedUser(t, svc.DB, models.UserTypeStudent, "Asha")
	resume, err := svc.Upload(ctx, student.ID, "cv.txt", strings.NewReader("Real resume text"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	_, err = svc.Verify(ctx, student.ID, resume.ID)
	expectKind(t, err, apperr.KindUnavailable, "AI service is not configured")
}

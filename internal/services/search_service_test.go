package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

func TestSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	jobs := NewJobService(db)
	discussions := NewDiscussionService(db)
	svc := NewSearchService(db, discussions)

	railways := seedUser(t, db, models.UserTypeCompany, "Railway Board")
	seedUser(t, db, models.UserTypeCompany, "Postal Dept")
	asha := seedUser(t, db, models.UserTypeStudent, "Asha")

	for i := range 7 {
		seedJob(t, jobs, railways.ID, fmt.Sprintf("Railway Clerk %d", i))
	}
	closed := seedJob(t, jobs, railways.ID, "Railway Archive Clerk")
	db.Model(&models.Job{}).Where("id = ?", closed.ID).Update("status", models.JobStatusClosed)

	d, err := discussions.Create(ctx, asha.ID, &dtos.DiscussionRequest{Title: "Railway exam dates", Content: "When is the RRB exam?"})
	if err != nil {
		t.Fatalf("create discussion: %v", err)
	}
	if _, err := discussions.Reply(ctx, asha.ID, d.ID, "March"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	_, err = svc.Search(ctx, "   ", SearchAll, NewPage(1, 10))
	expectKind(t, err, apperr.KindValidation, "Search query is required")

	all, err := svc.Search(ctx, "RAILWAY", SearchAll, NewPage(3, 10))
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if len(all.Jobs) != perKindLimit {
		t.Fatalf("expected %d jobs when searching everything, got %d", perKindLimit, len(all.Jobs))
	}
	if len(all.Companies) != 1 || len(all.Discussions) != 1 {
		t.Fatalf("expected one company and one discussion, got %d and %d", len(all.Companies), len(all.Discussions))
	}
	if all.ReplyCounts[d.ID] != 1 {
		t.Fatalf("expected reply count 1, got %d", all.ReplyCounts[d.ID])
	}
	if all.Total != 9 {
		t.Fatalf("expected 7 open jobs + 1 company + 1 discussion, got %d", all.Total)
	}
	for _, job := range all.Jobs {
		if job.Status != models.JobStatusOpen {
			t.Fatalf("closed job %q leaked into results", job.Title)
		}
	}

	onlyJobs, err := svc.Search(ctx, "clerk", SearchJobs, NewPage(2, 5))
	if err != nil {
		t.Fatalf("search jobs: %v", err)
	}
	if len(onlyJobs.Jobs) != 2 || onlyJobs.Total != 7 || len(onlyJobs.Companies) != 0 {
		t.Fatalf("expected second page of 2 jobs out of 7, got %d of %d", len(onlyJobs.Jobs), onlyJobs.Total)
	}

	wild, err := svc.Search(ctx, "100%", SearchAll, NewPage(1, 10))
	if err != nil || wild.Total != 0 {
		t.Fatalf("expected literal percent to match nothing, got %d (%v)", wild.Total, err)
	}
}

func TestSearchCompaniesByProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewSearchService(db, NewDiscussionService(db))

	acme := seedUser(t, db, models.UserTypeCompany, "Acme")
	db.Model(&models.User{}).Where("id = ?", acme.ID).Updates(map[string]any{
		"profile_description": "Highway construction contractor",
		"profile_location":    "Nagpur",
	})
	seedUser(t, db, models.UserTypeCompany, "Globex")

	for _, q := range []string{"highway", "NAGPUR", "acme"} {
		res, err := svc.Search(ctx, q, SearchCompanies, NewPage(1, 10))
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(res.Companies) != 1 || res.Companies[0].ID != acme.ID {
			t.Fatalf("search %q: expected Acme only, got %+v", q, res.Companies)
		}
	}
}

func TestValidSearchKind(t *testing.T) {
	t.Parallel()
	for _, kind := range []string{"", "all", "jobs", "companies", "discussions"} {
		if !ValidSearchKind(kind) {
			t.Errorf("expected %q to be valid", kind)
		}
	}
	if ValidSearchKind("users") {
		t.Errorf("expected users to be invalid")
	}
}

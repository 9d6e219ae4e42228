package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

func TestApplicationsAreScopedByRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	jobs := NewJobService(db)
	apps := NewApplicationService(db)

	acme := seedUser(t, db, models.UserTypeCompany, "Acme")
	globex := seedUser(t, db, models.UserTypeCompany, "Globex")
	asha := seedUser(t, db, models.UserTypeStudent, "Asha")
	ravi := seedUser(t, db, models.UserTypeStudent, "Ravi")

	acmeJob := seedJob(t, jobs, acme.ID, "Acme Role")
	globexJob := seedJob(t, jobs, globex.ID, "Globex Role")

	ashaApp, err := jobs.Apply(ctx, asha.ID, acmeJob.ID, &dtos.ApplyRequest{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := jobs.Apply(ctx, ravi.ID, globexJob.ID, &dtos.ApplyRequest{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := jobs.Apply(ctx, asha.ID, globexJob.ID, &dtos.ApplyRequest{}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	tests := []struct {
		name   string
		viewer Viewer
		want   int
	}{
		{"student sees own", Viewer{UserID: asha.ID, Role: auth.RoleStudent}, 2},
		{"company sees received", Viewer{UserID: acme.ID, Role: auth.RoleCompany}, 1},
		{"admin sees all", Viewer{UserID: "admin", Role: auth.RoleAdmin}, 3},
	}
	for _, tt := range tests {
		got, err := apps.List(ctx, tt.viewer, "")
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(got) != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, len(got))
		}
	}

	_, err = apps.Get(ctx, Viewer{UserID: ravi.ID, Role: auth.RoleStudent}, ashaApp.ID)
	expectKind(t, err, apperr.KindNotFound, "Application not found")

	app, err := apps.Get(ctx, Viewer{UserID: acme.ID, Role: auth.RoleCompany}, ashaApp.ID)
	if err != nil {
		t.Fatalf("company get: %v", err)
	}
	view := dtos.NewApplicationView(app, true)
	if view.Job.Title != "Acme Role" || view.Student.Name != "Asha" || view.Company.Name != "Acme" {
		t.Fatalf("unexpected view %+v", view)
	}

	_, err = apps.List(ctx, Viewer{UserID: "x", Role: auth.Role("guest")}, "")
	expectKind(t, err, apperr.KindValidation, "Invalid user type")
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	jobs := NewJobService(db)
	apps := NewApplicationService(db)

	acme := seedUser(t, db, models.UserTypeCompany, "Acme")
	globex := seedUser(t, db, models.UserTypeCompany, "Globex")
	asha := seedUser(t, db, models.UserTypeStudent, "Asha")
	job := seedJob(t, jobs, acme.ID, "Role")
	app, err := jobs.Apply(ctx, asha.ID, job.ID, &dtos.ApplyRequest{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	req := &dtos.ApplicationStatusRequest{Status: models.ApplicationAccepted, Notes: "strong profile"}

	_, err = apps.UpdateStatus(ctx, Viewer{UserID: asha.ID, Role: auth.RoleStudent}, app.ID, req)
	expectKind(t, err, apperr.KindForbidden, "Only companies can update application status")

	_, err = apps.UpdateStatus(ctx, Viewer{UserID: globex.ID, Role: auth.RoleCompany}, app.ID, req)
	expectKind(t, err, apperr.KindNotFound, "Application not found or unauthorized")

	updated, err := apps.UpdateStatus(ctx, Viewer{UserID: acme.ID, Role: auth.RoleCompany}, app.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.ApplicationAccepted || updated.Notes != "strong profile" || updated.ReviewedAt == nil {
		t.Fatalf("unexpected application %+v", updated)
	}

	accepted, err := apps.List(ctx, Viewer{UserID: asha.ID, Role: auth.RoleStudent}, models.ApplicationAccepted)
	if err != nil || len(accepted) != 1 {
		t.Fatalf("expected status filter to match, got %d (%v)", len(accepted), err)
	}
}

package auth

import (
	"testing"

	"github.com/justsurfingit/govconnect/internal/apperr"
)

func TestPermissionTable(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleStudent, JobApply, true},
		{RoleStudent, JobRead, true},
		{RoleStudent, JobCreate, false},
		{RoleStudent, ApplicationUpdate, false},
		{RoleStudent, ResumeUpload, true},
		{RoleStudent, DiscussionDelete, false},
		{RoleStudent, CompanyUpdateCreate, false},
		{RoleCompany, JobCreate, true},
		{RoleCompany, JobApply, false},
		{RoleCompany, ApplicationUpdate, true},
		{RoleCompany, ResumeUpload, false},
		{RoleCompany, ResumeRead, true},
		{RoleCompany, CompanyUpdateDelete, true},
		{RoleCompany, DiscussionModerate, false},
		{Role("guest"), JobRead, false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestAdminHoldsEveryPermission(t *testing.T) {
	for _, perm := range AllPermissions() {
		if !HasPermission(RoleAdmin, perm) {
			t.Errorf("admin is missing %s", perm)
		}
	}
}

func TestRequirePermissionMessage(t *testing.T) {
	err := RequirePermission(RoleStudent, JobCreate)
	if err == nil {
		t.Fatalf("expected denial")
	}
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden kind, got %v", apperr.KindOf(err))
	}
	if err.Error() != "Access denied. Required permission: job:create" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := RequirePermission(RoleCompany, JobCreate); err != nil {
		t.Fatalf("expected company to create jobs: %v", err)
	}
}

func TestPermissionsReturnsCopy(t *testing.T) {
	perms := Permissions(RoleStudent)
	perms[0] = JobDelete
	if HasPermission(RoleStudent, JobDelete) {
		t.Fatalf("mutating the returned slice changed the table")
	}
}

func TestParseRole(t *testing.T) {
	if role, ok := ParseRole(" Company "); !ok || role != RoleCompany {
		t.Fatalf("expected company, got %q %v", role, ok)
	}
	if _, ok := ParseRole("moderator"); ok {
		t.Fatalf("unexpected role accepted")
	}
}

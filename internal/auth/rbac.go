package auth

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/govconnect/internal/apperr"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// ParseRole accepts the three known roles, case-insensitively.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case RoleStudent, RoleCompany, RoleAdmin:
		return role, true
	default:
		return "", false
	}
}

type Permission struct {
	Resource string
	Action   string
}

func (p Permission) String() string {
	return p.Resource + ":" + p.Action
}

var (
	JobCreate = Permission{Resource: "job", Action: "create"}
	JobRead   = Permission{Resource: "job", Action: "read"}
	JobUpdate = Permission{Resource: "job", Action: "update"}
	JobDelete = Permission{Resource: "job", Action: "delete"}
	JobApply  = Permission{Resource: "job", Action: "apply"}

	ApplicationRead   = Permission{Resource: "application", Action: "read"}
	ApplicationUpdate = Permission{Resource: "application", Action: "update"}

	ResumeUpload = Permission{Resource: "resume", Action: "upload"}
	ResumeRead   = Permission{Resource: "resume", Action: "read"}
	ResumeDelete = Permission{Resource: "resume", Action: "delete"}

	DiscussionCreate   = Permission{Resource: "discussion", Action: "create"}
	DiscussionRead     = Permission{Resource: "discussion", Action: "read"}
	DiscussionUpdate   = Permission{Resource: "discussion", Action: "update"}
	DiscussionDelete   = Permission{Resource: "discussion", Action: "delete"}
	DiscussionModerate = Permission{Resource: "discussion", Action: "moderate"}

	CompanyUpdateCreate = Permission{Resource: "company_update", Action: "create"}
	CompanyUpdateRead   = Permission{Resource: "company_update", Action: "read"}
	CompanyUpdateUpdate = Permission{Resource: "company_update", Action: "update"}
	CompanyUpdateDelete = Permission{Resource: "company_update", Action: "delete"}
)

// AllPermissions lists every permission the system knows about.
func AllPermissions() []Permission {
	return []Permission{
		JobCreate, JobRead, JobUpdate, JobDelete, JobApply,
		ApplicationRead, ApplicationUpdate,
		ResumeUpload, ResumeRead, ResumeDelete,
		DiscussionCreate, DiscussionRead, DiscussionUpdate, DiscussionDelete, DiscussionModerate,
		CompanyUpdateCreate, CompanyUpdateRead, CompanyUpdateUpdate, CompanyUpdateDelete,
	}
}

var rolePermissions = map[Role][]Permission{
	RoleStudent: {
		JobRead,
		JobApply,
		ApplicationRead,
		ResumeUpload,
		ResumeRead,
		ResumeDelete,
		DiscussionCreate,
		DiscussionRead,
		DiscussionUpdate,
		CompanyUpdateRead,
	},
	RoleCompany: {
		JobCreate,
		JobRead,
		JobUpdate,
		JobDelete,
		ApplicationRead,
		ApplicationUpdate,
		ResumeRead,
		DiscussionCreate,
		DiscussionRead,
		DiscussionUpdate,
		CompanyUpdateCreate,
		CompanyUpdateRead,
		CompanyUpdateUpdate,
		CompanyUpdateDelete,
	},
	RoleAdmin: AllPermissions(),
}

// Permissions returns a copy of the role's permission set. Unknown roles have none.
func Permissions(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func RequirePermission(role Role, permission Permission) error {
	if !HasPermission(role, permission) {
		return apperr.Forbidden(fmt.Sprintf("Access denied. Required permission: %s", permission))
	}
	return nil
}

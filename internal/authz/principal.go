package authz

import (
	"github.com/SAP-F-2025/school-service/internal/models"
)

// Principal is the authenticated caller of one request. It is built by the
// auth middleware from a verified token plus a fresh user lookup: role,
// school binding and root flag always reflect current database state, never
// stale token claims. It lives for the request and is never persisted.
type Principal struct {
	ID       string
	Role     models.UserRole
	SchoolID *string // nil for the system admin role
	IsRoot   bool
}

// IsAdmin reports whether the principal carries the cross-school role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// Scope is the data partition a principal may touch. A nil SchoolID means
// the scope is unbounded (system admin only).
type Scope struct {
	SchoolID    *string
	PrincipalID string
	Role        models.UserRole
}

// Unbounded reports whether no school filter applies.
func (s Scope) Unbounded() bool {
	return s.SchoolID == nil
}

// ScopeFor resolves the scope a principal is confined to. Admins are
// unscoped; every other role is pinned to its own school.
func ScopeFor(p Principal) (Scope, error) {
	if p.IsAdmin() {
		return Scope{PrincipalID: p.ID, Role: p.Role}, nil
	}
	if p.SchoolID == nil || *p.SchoolID == "" {
		return Scope{}, forbidden("role %q requires a school binding", p.Role)
	}
	return Scope{SchoolID: p.SchoolID, PrincipalID: p.ID, Role: p.Role}, nil
}

// CheckSameSchool denies unless the target user belongs to the principal's
// school. System-admin targets are untouchable across tenants regardless of
// caller, and admin principals pass any school check.
func CheckSameSchool(p Principal, target *models.User) error {
	if target.Role == models.RoleAdmin {
		return forbidden("system admin accounts are not managed through school routes")
	}
	if p.IsAdmin() {
		return nil
	}
	if p.SchoolID == nil || target.SchoolID == nil || *p.SchoolID != *target.SchoolID {
		return forbidden("target user belongs to another school")
	}
	return nil
}

// CheckSchoolID denies unless the given entity school id matches the
// principal's scope. Used by services to re-validate every read and write
// of a scoped entity (defense in depth behind the middleware).
func CheckSchoolID(scope Scope, schoolID string) error {
	if scope.Unbounded() {
		return nil
	}
	if schoolID != *scope.SchoolID {
		return forbidden("resource belongs to another school")
	}
	return nil
}

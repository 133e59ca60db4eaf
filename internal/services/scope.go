package services

import (
	"fmt"

	"github.com/SAP-F-2025/school-service/internal/authz"
)

// resolveSchoolID pins a scoped operation to one school. School-level
// principals always operate on their own school regardless of what the
// request carries; admins must name the school explicitly.
func resolveSchoolID(actor *authz.Principal, requested string) (string, error) {
	if actor.IsAdmin() {
		if requested == "" {
			return "", fmt.Errorf("school id is required: %w", ErrBadRequest)
		}
		return requested, nil
	}

	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return "", err
	}
	if requested != "" && requested != *scope.SchoolID {
		return "", NewPermissionError(actor.ID, "school", "access", "resource belongs to another school")
	}
	return *scope.SchoolID, nil
}

// scopeSchoolFilter forces a list query into the actor's school unless the
// actor is unscoped.
func scopeSchoolFilter(actor *authz.Principal, schoolID **string) {
	if !actor.IsAdmin() {
		*schoolID = actor.SchoolID
	}
}

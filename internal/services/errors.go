package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/school-service/internal/authz"
)

// General errors shared by all services. Forbidden and Conflict alias the
// authorization package sentinels so errors.Is works across layers.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTokenExpired     = errors.New("token expired")
	ErrForbidden        = authz.ErrForbidden
	ErrConflict         = authz.ErrConflict
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Not-found errors per entity
var (
	ErrSchoolNotFound     = errors.New("school not found")
	ErrYearNotFound       = errors.New("academic year not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrPersonnelNotFound  = errors.New("personnel record not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrUserNotFound       = errors.New("user not found")
)

// Conflict errors. Each wraps ErrConflict so a single errors.Is check in
// handlers can map them all to 409.
var (
	ErrSchoolCodeExists     = fmt.Errorf("school code already in use: %w", ErrConflict)
	ErrYearSpanExists       = fmt.Errorf("academic year span already exists for this school: %w", ErrConflict)
	ErrActiveYearExists     = fmt.Errorf("an active academic year already exists for this school: %w", ErrConflict)
	ErrNoActiveYear         = fmt.Errorf("school has no active academic year: %w", ErrConflict)
	ErrRootAlreadyExists    = fmt.Errorf("school already has a root account: %w", ErrConflict)
	ErrEmailExists          = fmt.Errorf("email already in use: %w", ErrConflict)
	ErrDepartmentCodeExists = fmt.Errorf("department code already exists in this academic year: %w", ErrConflict)
)

// PermissionError carries the who/what/why of a denied operation.
type PermissionError struct {
	UserID   string
	Resource string
	Action   string
	Reason   string
}

func NewPermissionError(userID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

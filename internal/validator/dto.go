package validator

import (
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/school-service/internal/models"
)

// SchoolCreateRequest represents the request structure for creating schools
type SchoolCreateRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=200"`
	Code    string  `json:"code" validate:"required,school_code"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
}

// SchoolUpdateRequest represents the request structure for updating schools
type SchoolUpdateRequest struct {
	Name    *string              `json:"name" validate:"omitempty,min=2,max=200"`
	Address *string              `json:"address" validate:"omitempty,max=500"`
	Phone   *string              `json:"phone" validate:"omitempty,max=20"`
	Status  *models.SchoolStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

// AcademicYearCreateRequest represents the request structure for creating
// academic years. ToYear must be FromYear+1; the business validator enforces it.
type AcademicYearCreateRequest struct {
	FromYear  int            `json:"from_year" validate:"required,year_value"`
	ToYear    int            `json:"to_year" validate:"required,year_value"`
	Semesters datatypes.JSON `json:"semesters"`
}

// AcademicYearUpdateRequest represents the request structure for updating
// academic years. Status changes and structural edits travel in the same
// payload and are gated separately by the lifecycle rules.
type AcademicYearUpdateRequest struct {
	FromYear  *int               `json:"from_year" validate:"omitempty,year_value"`
	ToYear    *int               `json:"to_year" validate:"omitempty,year_value"`
	Status    *models.YearStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Semesters datatypes.JSON     `json:"semesters"`
}

// DepartmentCreateRequest represents the request structure for creating departments
type DepartmentCreateRequest struct {
	Name   string  `json:"name" validate:"required,min=2,max=200"`
	Code   string  `json:"code" validate:"required,min=1,max=20"`
	HeadID *string `json:"head_id" validate:"omitempty,max=100"`
}

// DepartmentUpdateRequest represents the request structure for updating departments
type DepartmentUpdateRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=200"`
	Code   *string `json:"code" validate:"omitempty,min=1,max=20"`
	HeadID *string `json:"head_id" validate:"omitempty,max=100"`
}

// ClassCreateRequest represents the request structure for creating classes
type ClassCreateRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Grade     int     `json:"grade" validate:"required,min=1,max=12"`
	Capacity  int     `json:"capacity" validate:"omitempty,min=1,max=100"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,max=100"`
}

// ClassUpdateRequest represents the request structure for updating classes
type ClassUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Grade     *int    `json:"grade" validate:"omitempty,min=1,max=12"`
	Capacity  *int    `json:"capacity" validate:"omitempty,min=1,max=100"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,max=100"`
}

// PersonnelCreateRequest represents the request structure for creating personnel records
type PersonnelCreateRequest struct {
	UserID       string     `json:"user_id" validate:"required,max=100"`
	Position     string     `json:"position" validate:"required,min=2,max=200"`
	DepartmentID *uint      `json:"department_id"`
	HiredAt      *time.Time `json:"hired_at"`
	Note         *string    `json:"note" validate:"omitempty,max=1000"`
}

// PersonnelUpdateRequest represents the request structure for updating personnel records
type PersonnelUpdateRequest struct {
	Position     *string    `json:"position" validate:"omitempty,min=2,max=200"`
	DepartmentID *uint      `json:"department_id"`
	HiredAt      *time.Time `json:"hired_at"`
	Note         *string    `json:"note" validate:"omitempty,max=1000"`
}

// EvaluationCreateRequest represents the request structure for creating
// personnel evaluations. The evaluation always attaches to the currently
// active academic year; the year is never part of the payload.
type EvaluationCreateRequest struct {
	PersonnelRecordID uint                   `json:"personnel_record_id" validate:"required"`
	Grade             models.EvaluationGrade `json:"grade" validate:"required,evaluation_grade"`
	Criteria          datatypes.JSON         `json:"criteria"`
	Comment           *string                `json:"comment" validate:"omitempty,max=2000"`
}

// EvaluationUpdateRequest represents the request structure for updating evaluations
type EvaluationUpdateRequest struct {
	Grade    *models.EvaluationGrade `json:"grade" validate:"omitempty,evaluation_grade"`
	Criteria datatypes.JSON          `json:"criteria"`
	Comment  *string                 `json:"comment" validate:"omitempty,max=2000"`
}

// UserCreateRequest represents the request structure for creating users.
// The school a new user belongs to is taken from the caller's own scope,
// never from the payload.
type UserCreateRequest struct {
	ID       string          `json:"id" validate:"required,max=100"`
	FullName string          `json:"full_name" validate:"required,min=2,max=200"`
	Email    string          `json:"email" validate:"required,email"`
	Role     models.UserRole `json:"role" validate:"required,school_role"`
	IsRoot   bool            `json:"is_root"`
	Phone    *string         `json:"phone" validate:"omitempty,max=20"`
}

// UserUpdateRequest represents the request structure for updating users
type UserUpdateRequest struct {
	FullName  *string            `json:"full_name" validate:"omitempty,min=2,max=200"`
	Role      *models.UserRole   `json:"role" validate:"omitempty,school_role"`
	IsRoot    *bool              `json:"is_root"`
	Status    *models.UserStatus `json:"status" validate:"omitempty,oneof=active disabled"`
	Phone     *string            `json:"phone" validate:"omitempty,max=20"`
	AvatarURL *string            `json:"avatar_url" validate:"omitempty,max=500"`
}

// ProfileUpdateRequest is the self-service subset of user updates. It can
// never carry role, root, or status fields.
type ProfileUpdateRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
}

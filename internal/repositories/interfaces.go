package repositories

import (
	"github.com/SAP-F-2025/school-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// Every list query carries the resolved school scope. A nil SchoolID means
// the caller is unscoped (system admin); services never leave it nil for
// school-level principals.

type UserFilters struct {
	SchoolID *string            `json:"school_id"`
	Role     *models.UserRole   `json:"role"`
	Status   *models.UserStatus `json:"status"`
	IsRoot   *bool              `json:"is_root"`
	Query    string             `json:"query"` // name or email search
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
	SortBy   string             `json:"sort_by"`    // "created_at", "full_name", "email"
	SortOrder string            `json:"sort_order"` // "asc", "desc"
}

type SchoolFilters struct {
	Status    *models.SchoolStatus `json:"status"`
	Query     string               `json:"query"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`
	SortOrder string               `json:"sort_order"`
}

type AcademicYearFilters struct {
	SchoolID  *string            `json:"school_id"`
	Status    *models.YearStatus `json:"status"`
	FromYear  *int               `json:"from_year"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"` // "from_year", "created_at"
	SortOrder string             `json:"sort_order"`
}

type DepartmentFilters struct {
	SchoolID       *string `json:"school_id"`
	AcademicYearID *uint   `json:"academic_year_id"`
	Query          string  `json:"query"`
	Limit          int     `json:"limit"`
	Offset         int     `json:"offset"`
}

type ClassFilters struct {
	SchoolID       *string `json:"school_id"`
	AcademicYearID *uint   `json:"academic_year_id"`
	Grade          *int    `json:"grade"`
	TeacherID      *string `json:"teacher_id"`
	Limit          int     `json:"limit"`
	Offset         int     `json:"offset"`
}

type PersonnelFilters struct {
	SchoolID     *string `json:"school_id"`
	DepartmentID *uint   `json:"department_id"`
	UserID       *string `json:"user_id"`
	Query        string  `json:"query"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
}

type EvaluationFilters struct {
	SchoolID          *string                 `json:"school_id"`
	AcademicYearID    *uint                   `json:"academic_year_id"`
	PersonnelRecordID *uint                   `json:"personnel_record_id"`
	Grade             *models.EvaluationGrade `json:"grade"`
	Limit             int                     `json:"limit"`
	Offset            int                     `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type SchoolStats struct {
	UserCount       int64 `json:"user_count"`
	DepartmentCount int64 `json:"department_count"`
	ClassCount      int64 `json:"class_count"`
	EvaluationCount int64 `json:"evaluation_count"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type YearStatus string

const (
	YearActive   YearStatus = "active"
	YearInactive YearStatus = "inactive"
)

// AcademicYear belongs to exactly one school. At most one active year may
// exist per school at any time; a partial unique index on
// (school_id) WHERE status = 'active' is the authoritative guarantee and
// the service-level check only produces a friendlier Conflict error.
type AcademicYear struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	SchoolID string `json:"school_id" gorm:"not null;size:255;index:idx_years_school_span,unique,composite:span"`

	FromYear int `json:"from_year" gorm:"not null;index:idx_years_school_span,unique,composite:span" validate:"required,min=1990,max=2100"`
	ToYear   int `json:"to_year" gorm:"not null" validate:"required"`

	Status YearStatus `json:"status" gorm:"not null;default:active;size:16;index"`

	// IsConfig flips to true the first time a dependent entity is created
	// under this year. From then on the only legal edit is retiring the
	// year, and the year can never be deleted.
	IsConfig bool `json:"is_config" gorm:"not null;default:false"`

	// Semesters holds the per-year semester layout (names, date ranges).
	// Structural edits to it are gated by the lifecycle state machine.
	Semesters datatypes.JSON `json:"semesters" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (AcademicYear) TableName() string {
	return "academic_years"
}

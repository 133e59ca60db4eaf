package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PersonnelRecord is the HR profile of a school employee. It is scoped to a
// school but, unlike evaluations, not bound to an academic year.
type PersonnelRecord struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	SchoolID string `json:"school_id" gorm:"not null;size:255;index"`
	UserID   string `json:"user_id" gorm:"not null;size:255;index"`

	Position     string     `json:"position" gorm:"not null;size:100" validate:"required,max=100"`
	DepartmentID *uint      `json:"department_id" gorm:"index"`
	HiredAt      *time.Time `json:"hired_at"`
	Note         *string    `json:"note" gorm:"type:text" validate:"omitempty,max=2000"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (PersonnelRecord) TableName() string {
	return "personnel_records"
}

type EvaluationGrade string

const (
	GradeExcellent EvaluationGrade = "xuat_sac"
	GradeGood      EvaluationGrade = "tot"
	GradeAverage   EvaluationGrade = "dat"
	GradePoor      EvaluationGrade = "chua_dat"
)

// PersonnelEvaluation is a per-year performance review of one personnel
// record. Writes are only permitted while the referenced academic year is
// active, checked at operation time.
type PersonnelEvaluation struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	SchoolID          string `json:"school_id" gorm:"not null;size:255;index"`
	AcademicYearID    uint   `json:"academic_year_id" gorm:"not null;index"`
	PersonnelRecordID uint   `json:"personnel_record_id" gorm:"not null;index"`

	Grade       EvaluationGrade `json:"grade" gorm:"not null;size:16" validate:"required,oneof=xuat_sac tot dat chua_dat"`
	EvaluatorID string          `json:"evaluator_id" gorm:"not null;size:255"`

	// Criteria holds the scored evaluation sheet.
	Criteria datatypes.JSON `json:"criteria" gorm:"type:jsonb"`
	Comment  *string        `json:"comment" gorm:"type:text" validate:"omitempty,max=2000"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	AcademicYear    AcademicYear    `json:"-" gorm:"foreignKey:AcademicYearID"`
	PersonnelRecord PersonnelRecord `json:"-" gorm:"foreignKey:PersonnelRecordID"`
}

func (PersonnelEvaluation) TableName() string {
	return "personnel_evaluations"
}

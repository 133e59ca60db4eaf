package models

import (
	"time"

	"gorm.io/gorm"
)

// Class is a homeroom class within one academic year.
type Class struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	SchoolID       string `json:"school_id" gorm:"not null;size:255;index"`
	AcademicYearID uint   `json:"academic_year_id" gorm:"not null;index"`

	Name     string  `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Grade    int     `json:"grade" gorm:"not null" validate:"required,min=1,max=12"`
	Capacity int     `json:"capacity" gorm:"not null;default:40" validate:"min=1,max=60"`
	TeacherID *string `json:"teacher_id" gorm:"size:255"` // homeroom teacher

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	AcademicYear AcademicYear `json:"-" gorm:"foreignKey:AcademicYearID"`
}

func (Class) TableName() string {
	return "classes"
}

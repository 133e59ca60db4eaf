package models

import (
	"time"

	"gorm.io/gorm"
)

// Department is a subject group (to chuyen mon) within one academic year.
// Creating the first department under a year marks the year as configured.
type Department struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	SchoolID       string `json:"school_id" gorm:"not null;size:255;index"`
	AcademicYearID uint   `json:"academic_year_id" gorm:"not null;index"`

	Name   string  `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Code   string  `json:"code" gorm:"not null;size:32" validate:"required,min=1,max=32"`
	HeadID *string `json:"head_id" gorm:"size:255"` // to_truong user

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	AcademicYear AcademicYear `json:"-" gorm:"foreignKey:AcademicYearID"`
}

func (Department) TableName() string {
	return "departments"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type SchoolStatus string

const (
	SchoolActive   SchoolStatus = "active"
	SchoolInactive SchoolStatus = "inactive"
)

// School is the tenant boundary. Every scoped entity carries its ID.
type School struct {
	ID      string       `json:"id" gorm:"primaryKey;size:255"`
	Name    string       `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Code    string       `json:"code" gorm:"uniqueIndex;not null;size:32" validate:"required,min=2,max=32"`
	Address *string      `json:"address" gorm:"size:500" validate:"omitempty,max=500"`
	Phone   *string      `json:"phone" gorm:"size:20"`
	Status  SchoolStatus `json:"status" gorm:"not null;default:active;size:16"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (School) TableName() string {
	return "schools"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	// RoleAdmin is the cross-school system administrator. Its permissions
	// live in a separate namespace and it is never bound to a school.
	RoleAdmin UserRole = "admin"

	// School-level roles.
	RoleBanGiamHieu UserRole = "ban_giam_hieu" // school board, root account lives here
	RoleToTruong    UserRole = "to_truong"     // department head
	RoleGiaoVien    UserRole = "giao_vien"     // teacher
	RoleNhanVien    UserRole = "nhan_vien"     // staff
	RolePhuHuynh    UserRole = "phu_huynh"     // parent
)

// SchoolRoles lists every role that is bound to a school.
var SchoolRoles = []UserRole{
	RoleBanGiamHieu,
	RoleToTruong,
	RoleGiaoVien,
	RoleNhanVien,
	RolePhuHuynh,
}

// IsSchoolRole reports whether the role is confined to a single school.
func (r UserRole) IsSchoolRole() bool {
	for _, role := range SchoolRoles {
		if r == role {
			return true
		}
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
)

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:32;index" validate:"required,oneof=admin ban_giam_hieu to_truong giao_vien nhan_vien phu_huynh"`

	// Tenant binding. NULL for the system admin role only.
	SchoolID *string `json:"school_id" gorm:"size:255;index"`

	// IsRoot marks the single most-privileged ban_giam_hieu account of a
	// school. Uniqueness is guaranteed by a partial unique index, see
	// pkg.InitDatabase.
	IsRoot bool `json:"is_root" gorm:"not null;default:false"`

	Status UserStatus `json:"status" gorm:"not null;default:active;size:16"`

	// Profile info
	Phone     *string `json:"phone" gorm:"size:20"`
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

package models

import "time"

type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleSubAdmin   AdminRole = "sub_admin"
)

const (
	AdminStatusActive   = "Active"
	AdminStatusInactive = "Inactive"
)

// Admin is a back-office account. Sub-admins are created and managed by a
// super admin only.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Email     string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Mobile    string    `gorm:"size:15;not null;uniqueIndex" json:"mobile"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      AdminRole `gorm:"type:varchar(20);not null;default:'sub_admin'" json:"role"`
	Language  string    `gorm:"size:50" json:"language"`
	Status    string    `gorm:"size:10;not null;default:'Active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_on"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_on"`
}

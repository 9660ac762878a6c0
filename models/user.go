package models

import "time"

type UserRole string

const (
	RoleReader UserRole = "reader" // active immediately after registration
	RoleWriter UserRole = "writer" // must be approved by an admin before authenticating
)

// User is a platform account. The same email may register once per role,
// hence the composite unique index instead of a plain unique email.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FullName   string    `gorm:"size:100;not null" json:"full_name"`
	Email      string    `gorm:"size:100;not null;uniqueIndex:uniq_users_email_role" json:"email"`
	Mobile     string    `gorm:"size:15" json:"mobile"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	Role       UserRole  `gorm:"type:varchar(20);not null;uniqueIndex:uniq_users_email_role" json:"role"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_on"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_on"`

	Stories []Story `gorm:"foreignKey:WrittenBy" json:"-"`
	Poems   []Poem  `gorm:"foreignKey:WrittenBy" json:"-"`
}

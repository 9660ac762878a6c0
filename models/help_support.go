package models

import "time"

const (
	HelpStatusPending  = "Pending"
	HelpStatusResolved = "Resolved"
	HelpStatusRejected = "Rejected"
)

// HelpSupport is a support ticket raised by a user and closed by an admin
// with a mandatory note.
type HelpSupport struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SupportType string    `gorm:"size:100;not null" json:"support_type"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Status      string    `gorm:"size:10;not null;default:'Pending'" json:"status"`
	AdminNote   string    `gorm:"type:text" json:"admin_note"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_on"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_on"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

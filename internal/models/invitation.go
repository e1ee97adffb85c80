package models

import (
	"time"

	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationStatusActive InvitationStatus = "active"
)

// Invitation is a time-boxed organization invite code. Codes stay reusable
// until they expire; acceptance creates a membership without mutating the
// invitation row.
type Invitation struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	OrganizationID uint64           `gorm:"not null;index" json:"organization_id"`
	InviterID      uint64           `gorm:"not null" json:"inviter_id"`
	Code           string           `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	ExpiresAt      time.Time        `gorm:"not null" json:"expires_at"`
	Status         InvitationStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Inviter      User         `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
}

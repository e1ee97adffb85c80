package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleLeader MemberRole = "leader"
	RoleMember MemberRole = "member"
	RoleTemp   MemberRole = "temp"
)

type WageType string

const (
	WageTypeDay   WageType = "day"
	WageTypeMonth WageType = "month"
	WageTypeHour  WageType = "hour"
)

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "active"
	MemberStatusRemoved MemberStatus = "removed"
)

// OrganizationMember is a user's membership within one organization, carrying
// the org-scoped role and wage configuration. Work records snapshot the wage
// fields at creation time, so editing them here never rewrites history.
type OrganizationMember struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	OrganizationID uint64          `gorm:"not null;index:idx_org_members_org_user" json:"organization_id"`
	UserID         uint64          `gorm:"index:idx_org_members_org_user" json:"user_id"`
	Name           string          `gorm:"type:varchar(100)" json:"name"`
	Role           MemberRole      `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	WageType       WageType        `gorm:"type:varchar(20);not null;default:'day'" json:"wage_type"`
	WageAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"wage_amount"`
	Status         MemberStatus    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	JoinedAt       time.Time       `json:"joined_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

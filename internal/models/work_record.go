package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkRecord is one dated work entry of a member on a project.
//
// Duration is always stored in hours: callers submit days for day/month wage
// members and hours for hourly members, and the day values are multiplied by
// HoursPerDay before storage. WageSnapshot and WageTypeSnapshot are fixed at
// creation time and never updated when the member's wage changes later.
type WorkRecord struct {
	ID               uint64          `gorm:"primarykey" json:"id"`
	ProjectID        uint64          `gorm:"not null;index" json:"project_id"`
	MemberID         uint64          `gorm:"not null;index" json:"member_id"`
	WorkDate         string          `gorm:"type:varchar(10);not null;index" json:"work_date"`
	Duration         float64         `gorm:"not null" json:"duration"`
	WageSnapshot     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"wage_snapshot"`
	WageTypeSnapshot WageType        `gorm:"type:varchar(20);not null" json:"wage_type_snapshot"`
	Content          string          `gorm:"type:text" json:"content"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Project Project            `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Member  OrganizationMember `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// HoursPerDay is the fixed conversion factor between day-wage units and the
// stored hour units.
const HoursPerDay = 8.0

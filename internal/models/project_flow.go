package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FlowType string

const (
	FlowTypeIncome  FlowType = "income"
	FlowTypeExpense FlowType = "expense"
)

// ProjectFlow is a free-form ledger entry on a project. No balance invariant
// is enforced across entries.
type ProjectFlow struct {
	ID              uint64          `gorm:"primarykey" json:"id"`
	ProjectID       uint64          `gorm:"not null;index" json:"project_id"`
	Type            FlowType        `gorm:"type:varchar(20);not null" json:"type"`
	Category        string          `gorm:"type:varchar(100)" json:"category"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	FlowDate        string          `gorm:"type:varchar(10);not null;index" json:"flow_date"`
	Remark          string          `gorm:"type:text" json:"remark"`
	RelatedMemberID *uint64         `json:"related_member_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

package models

import "time"

// WorkSummaryDaily is a small, query-friendly aggregate of work records.
//
// Grain: (organization_id, project_id, member_id, work_date). The table is
// derived data, maintained incrementally alongside work record writes on a
// best-effort basis, and can drift from the records under partial failure.
// Stats queries prefer it and fall back to the raw records when it is off.
type WorkSummaryDaily struct {
	OrganizationID uint64  `gorm:"primaryKey;autoIncrement:false" json:"organization_id"`
	ProjectID      uint64  `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	MemberID       uint64  `gorm:"primaryKey;autoIncrement:false" json:"member_id"`
	WorkDate       string  `gorm:"primaryKey;type:varchar(10)" json:"work_date"`
	TotalDuration  float64 `gorm:"not null;default:0" json:"total_duration"`
	RecordCount    int     `gorm:"not null;default:0" json:"record_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workrec/workhour-api/internal/models"
)

// WorkRecordDTO represents a work record in API responses. Duration stays in
// stored hour units; stats endpoints do the wage-unit conversion.
type WorkRecordDTO struct {
	ID               uint64          `json:"id"`
	ProjectID        uint64          `json:"project_id"`
	MemberID         uint64          `json:"member_id"`
	MemberName       string          `json:"member_name"`
	WorkDate         string          `json:"work_date"`
	Duration         float64         `json:"duration"`
	WageSnapshot     decimal.Decimal `json:"wage_snapshot"`
	WageTypeSnapshot models.WageType `json:"wage_type_snapshot"`
	Content          string          `json:"content"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MemberStatDTO is one per-member aggregation row. TotalDuration is expressed
// in the member's natural wage unit: days for day/month wage members, hours
// for hourly ones.
type MemberStatDTO struct {
	MemberID      uint64          `json:"member_id"`
	Name          string          `json:"name"`
	WageType      models.WageType `json:"wage_type"`
	TotalDuration float64         `json:"total_duration"`
	RecordCount   int64           `json:"record_count"`
}

// ToWorkRecordDTO converts a work record to DTO
func ToWorkRecordDTO(record models.WorkRecord) WorkRecordDTO {
	name := record.Member.Name
	if name == "" {
		name = record.Member.User.Name
	}
	if name == "" {
		name = record.Member.User.Phone
	}

	return WorkRecordDTO{
		ID:               record.ID,
		ProjectID:        record.ProjectID,
		MemberID:         record.MemberID,
		MemberName:       name,
		WorkDate:         record.WorkDate,
		Duration:         record.Duration,
		WageSnapshot:     record.WageSnapshot,
		WageTypeSnapshot: record.WageTypeSnapshot,
		Content:          record.Content,
		CreatedAt:        record.CreatedAt,
	}
}

package repository

import (
	"github.com/workrec/workhour-api/internal/database"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkRecordRepository is a GORM implementation of WorkRecordRepository
type GormWorkRecordRepository struct {
	db *gorm.DB
}

// NewWorkRecordRepository creates a new WorkRecordRepository
func NewWorkRecordRepository(db *gorm.DB) WorkRecordRepository {
	return &GormWorkRecordRepository{db: db}
}

// Create creates a work record
func (r *GormWorkRecordRepository) Create(record *models.WorkRecord) error {
	return r.db.Create(record).Error
}

// CreateBatch inserts records within a single transaction
func (r *GormWorkRecordRepository) CreateBatch(records []models.WorkRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

// FindByID finds a work record by ID
func (r *GormWorkRecordRepository) FindByID(id uint64) (*models.WorkRecord, error) {
	var record models.WorkRecord
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List retrieves records of a project with date/month filtering and pagination
func (r *GormWorkRecordRepository) List(filter WorkRecordFilter) ([]models.WorkRecord, int64, error) {
	query := r.db.Model(&models.WorkRecord{}).Where("project_id = ?", filter.ProjectID)

	if filter.Date != "" {
		query = query.Where("work_date = ?", filter.Date)
	} else if filter.Month != "" {
		query = query.Where("work_date LIKE ?", filter.Month+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.WorkRecord
	params := utils.PaginationParams{
		Page:   filter.Page,
		Limit:  filter.PageSize,
		Offset: (filter.Page - 1) * filter.PageSize,
	}
	if err := query.
		Preload("Member").Preload("Member.User").
		Order("work_date DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Update saves a work record
func (r *GormWorkRecordRepository) Update(record *models.WorkRecord) error {
	return r.db.Save(record).Error
}

// Delete soft deletes a work record
func (r *GormWorkRecordRepository) Delete(id uint64) error {
	return r.db.Delete(&models.WorkRecord{}, id).Error
}

// ApplySummaryDelta upserts the daily summary bucket, adjusting total_duration
// and record_count by the signed deltas. The conflict clause keeps concurrent
// increments atomic at the row level.
func (r *GormWorkRecordRepository) ApplySummaryDelta(orgID, projectID, memberID uint64, date string, durationDelta float64, countDelta int) error {
	bucket := models.WorkSummaryDaily{
		OrganizationID: orgID,
		ProjectID:      projectID,
		MemberID:       memberID,
		WorkDate:       date,
		TotalDuration:  durationDelta,
		RecordCount:    countDelta,
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "organization_id"},
				{Name: "project_id"},
				{Name: "member_id"},
				{Name: "work_date"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_duration": gorm.Expr("total_duration + ?", durationDelta),
				"record_count":   gorm.Expr("record_count + ?", countDelta),
			}),
		}).
		Create(&bucket).Error
}

// FindSummary loads one summary bucket
func (r *GormWorkRecordRepository) FindSummary(orgID, projectID, memberID uint64, date string) (*models.WorkSummaryDaily, error) {
	var bucket models.WorkSummaryDaily
	if err := r.db.Where(
		"organization_id = ? AND project_id = ? AND member_id = ? AND work_date = ?",
		orgID, projectID, memberID, date,
	).First(&bucket).Error; err != nil {
		return nil, err
	}
	return &bucket, nil
}

// SummaryStats aggregates per-member totals from the summary table
func (r *GormWorkRecordRepository) SummaryStats(scope StatsScope) ([]MemberDuration, error) {
	query := r.db.Model(&models.WorkSummaryDaily{}).
		Select("member_id, SUM(total_duration) AS total_duration, SUM(record_count) AS record_count")

	switch {
	case scope.ProjectID != nil:
		query = query.Where("project_id = ?", *scope.ProjectID)
	case scope.OrgID != nil:
		query = query.Where("organization_id = ?", *scope.OrgID)
	}
	query = applyRangeFilter(query, scope, "work_date")

	var rows []MemberDuration
	if err := query.Group("member_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RecordStats aggregates per-member totals from the raw records, used when
// the summary table is missing data.
func (r *GormWorkRecordRepository) RecordStats(scope StatsScope) ([]MemberDuration, error) {
	query := r.db.Model(&models.WorkRecord{}).
		Select("work_records.member_id AS member_id, SUM(work_records.duration) AS total_duration, COUNT(work_records.id) AS record_count")

	switch {
	case scope.ProjectID != nil:
		query = query.Where("work_records.project_id = ?", *scope.ProjectID)
	case scope.OrgID != nil:
		query = query.
			Joins("JOIN projects ON projects.id = work_records.project_id").
			Where("projects.organization_id = ?", *scope.OrgID)
	}
	query = applyRangeFilter(query, scope, "work_records.work_date")

	var rows []MemberDuration
	if err := query.Group("work_records.member_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func applyRangeFilter(query *gorm.DB, scope StatsScope, dateColumn string) *gorm.DB {
	if scope.Start != "" {
		query = query.Where(dateColumn+" >= ?", scope.Start)
	}
	if scope.End != "" {
		query = query.Where(dateColumn+" <= ?", scope.End)
	}
	if len(scope.MemberIDs) > 0 {
		query = query.Where("member_id IN ?", scope.MemberIDs)
	}
	return query
}

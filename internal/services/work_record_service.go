package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/samber/lo"
	"github.com/workrec/workhour-api/internal/dto"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"github.com/workrec/workhour-api/internal/utils"
	"gorm.io/gorm"
)

var ErrWorkRecordNotFound = errors.New("work record not found")

// WorkRecordService manages work-hour entries and the incrementally
// maintained daily summary buckets.
type WorkRecordService struct {
	recordRepo  repository.WorkRecordRepository
	memberRepo  repository.MemberRepository
	projectRepo repository.ProjectRepository
}

// NewWorkRecordService creates a new WorkRecordService.
func NewWorkRecordService(recordRepo repository.WorkRecordRepository, memberRepo repository.MemberRepository, projectRepo repository.ProjectRepository) *WorkRecordService {
	return &WorkRecordService{
		recordRepo:  recordRepo,
		memberRepo:  memberRepo,
		projectRepo: projectRepo,
	}
}

// WorkRecordResult carries the primary mutation outcome together with the
// best-effort summary maintenance outcome. SummaryErr never propagates to the
// API response; it exists for logging and tests.
type WorkRecordResult struct {
	Record     *models.WorkRecord
	SummaryErr error
}

// CreateWorkRecordInput represents one work entry. Duration arrives in the
// member's wage unit: days for day/month members, hours for hourly members.
type CreateWorkRecordInput struct {
	ProjectID uint64
	MemberID  uint64
	Date      string
	Duration  float64
	Content   string
}

// CreateWorkRecord inserts a record with the member's wage snapshotted, then
// bumps the matching summary bucket best-effort.
func (s *WorkRecordService) CreateWorkRecord(input CreateWorkRecordInput) (*WorkRecordResult, error) {
	member, err := s.memberRepo.FindByID(input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	record := &models.WorkRecord{
		ProjectID:        input.ProjectID,
		MemberID:         input.MemberID,
		WorkDate:         input.Date,
		Duration:         normalizeDuration(member.WageType, input.Duration),
		WageSnapshot:     member.WageAmount,
		WageTypeSnapshot: member.WageType,
		Content:          input.Content,
	}

	if err := s.recordRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create work record: %w", err)
	}

	summaryErr := s.applySummaryDelta(member.OrganizationID, record.ProjectID, record.MemberID, record.WorkDate, record.Duration, 1)

	return &WorkRecordResult{Record: record, SummaryErr: summaryErr}, nil
}

// ListWorkRecords pages through a project's records, filtered by exact date
// or by month prefix.
func (s *WorkRecordService) ListWorkRecords(projectID uint64, date, month string, page, pageSize int) ([]dto.WorkRecordDTO, int64, utils.PaginationParams, error) {
	params := utils.NormalizePagination(page, pageSize)

	records, total, err := s.recordRepo.List(repository.WorkRecordFilter{
		ProjectID: projectID,
		Date:      date,
		Month:     month,
		Page:      params.Page,
		PageSize:  params.Limit,
	})
	if err != nil {
		return nil, 0, params, fmt.Errorf("failed to list work records: %w", err)
	}

	list := lo.Map(records, func(r models.WorkRecord, _ int) dto.WorkRecordDTO {
		return dto.ToWorkRecordDTO(r)
	})

	return list, total, params, nil
}

// GetStats aggregates per-member totals for a project, preferring the summary
// table and falling back to the raw records when it has nothing usable.
// Totals come back in the member's natural wage unit.
func (s *WorkRecordService) GetStats(projectID uint64) ([]dto.MemberStatDTO, error) {
	return s.statsForScope(repository.StatsScope{ProjectID: &projectID})
}

// RangeStatsInput bounds a cross-project aggregation. Scope resolution order:
// explicit project, explicit org, then the caller's current org.
type RangeStatsInput struct {
	ProjectID *uint64
	OrgID     *uint64
	Start     string
	End       string
	MemberIDs []uint64
}

// GetSummaryByRange aggregates per-member totals over an inclusive date range.
func (s *WorkRecordService) GetSummaryByRange(input RangeStatsInput, callerOrgID uint64) ([]dto.MemberStatDTO, error) {
	scope := repository.StatsScope{
		Start:     input.Start,
		End:       input.End,
		MemberIDs: input.MemberIDs,
	}

	switch {
	case input.ProjectID != nil:
		scope.ProjectID = input.ProjectID
	case input.OrgID != nil:
		scope.OrgID = input.OrgID
	default:
		scope.OrgID = &callerOrgID
	}

	return s.statsForScope(scope)
}

// WorkRecordUpdate enumerates the mutable work record fields. Duration is in
// the record's wage unit, like on create.
type WorkRecordUpdate struct {
	Date     *string
	Duration *float64
	Content  *string
}

// UpdateWorkRecord applies the patch and keeps the summary buckets consistent
// with the delta: same-date edits adjust the bucket in place, date moves
// decrement the old bucket and increment the new one.
func (s *WorkRecordService) UpdateWorkRecord(id uint64, patch WorkRecordUpdate) (*WorkRecordResult, error) {
	record, err := s.recordRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkRecordNotFound
		}
		return nil, fmt.Errorf("failed to find work record: %w", err)
	}

	orgID, err := s.orgIDForProject(record.ProjectID)
	if err != nil {
		return nil, err
	}

	oldDate := record.WorkDate
	oldDuration := record.Duration

	if patch.Date != nil {
		record.WorkDate = *patch.Date
	}
	if patch.Duration != nil {
		record.Duration = normalizeDuration(record.WageTypeSnapshot, *patch.Duration)
	}
	if patch.Content != nil {
		record.Content = *patch.Content
	}

	if err := s.recordRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update work record: %w", err)
	}

	var summaryErr error
	if record.WorkDate == oldDate {
		if record.Duration != oldDuration {
			summaryErr = s.applySummaryDelta(orgID, record.ProjectID, record.MemberID, oldDate, record.Duration-oldDuration, 0)
		}
	} else {
		summaryErr = s.applySummaryDelta(orgID, record.ProjectID, record.MemberID, oldDate, -oldDuration, -1)
		if err := s.applySummaryDelta(orgID, record.ProjectID, record.MemberID, record.WorkDate, record.Duration, 1); err != nil && summaryErr == nil {
			summaryErr = err
		}
	}

	return &WorkRecordResult{Record: record, SummaryErr: summaryErr}, nil
}

// DeleteWorkRecord removes the record and decrements its summary bucket.
func (s *WorkRecordService) DeleteWorkRecord(id uint64) (*WorkRecordResult, error) {
	record, err := s.recordRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkRecordNotFound
		}
		return nil, fmt.Errorf("failed to find work record: %w", err)
	}

	orgID, err := s.orgIDForProject(record.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.recordRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete work record: %w", err)
	}

	summaryErr := s.applySummaryDelta(orgID, record.ProjectID, record.MemberID, record.WorkDate, -record.Duration, -1)

	return &WorkRecordResult{Record: record, SummaryErr: summaryErr}, nil
}

// BatchEntry is one member/duration pair of a batch insert.
type BatchEntry struct {
	MemberID uint64
	Duration float64
	Content  string
}

// BatchCreateInput inserts many records for one project and date.
type BatchCreateInput struct {
	ProjectID uint64
	Date      string
	Records   []BatchEntry
}

// BatchCreate resolves all referenced members in one query, silently drops
// entries pointing at unknown members, inserts the rest in a single
// transaction, then updates the affected summary buckets best-effort.
func (s *WorkRecordService) BatchCreate(input BatchCreateInput) ([]models.WorkRecord, error) {
	memberIDs := lo.Uniq(lo.Map(input.Records, func(e BatchEntry, _ int) uint64 {
		return e.MemberID
	}))

	members, err := s.memberRepo.FindByIDs(memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve members: %w", err)
	}
	byID := lo.KeyBy(members, func(m models.OrganizationMember) uint64 { return m.ID })

	var records []models.WorkRecord
	for _, entry := range input.Records {
		member, ok := byID[entry.MemberID]
		if !ok {
			continue
		}

		records = append(records, models.WorkRecord{
			ProjectID:        input.ProjectID,
			MemberID:         entry.MemberID,
			WorkDate:         input.Date,
			Duration:         normalizeDuration(member.WageType, entry.Duration),
			WageSnapshot:     member.WageAmount,
			WageTypeSnapshot: member.WageType,
			Content:          entry.Content,
		})
	}

	if err := s.recordRepo.CreateBatch(records); err != nil {
		return nil, fmt.Errorf("failed to batch create work records: %w", err)
	}

	for _, record := range records {
		member := byID[record.MemberID]
		_ = s.applySummaryDelta(member.OrganizationID, record.ProjectID, record.MemberID, record.WorkDate, record.Duration, 1)
	}

	return records, nil
}

// normalizeDuration converts a caller-supplied duration into stored hours.
func normalizeDuration(wageType models.WageType, duration float64) float64 {
	if wageType == models.WageTypeDay || wageType == models.WageTypeMonth {
		return duration * models.HoursPerDay
	}
	return duration
}

// presentDuration is the inverse of normalizeDuration for reporting paths.
func presentDuration(wageType models.WageType, hours float64) float64 {
	if wageType == models.WageTypeDay || wageType == models.WageTypeMonth {
		return hours / models.HoursPerDay
	}
	return hours
}

func (s *WorkRecordService) statsForScope(scope repository.StatsScope) ([]dto.MemberStatDTO, error) {
	rows, err := s.recordRepo.SummaryStats(scope)
	if err != nil || len(rows) == 0 {
		if err != nil {
			log.Printf("work records: summary stats failed, falling back to raw records: %v", err)
		}
		rows, err = s.recordRepo.RecordStats(scope)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate work records: %w", err)
		}
	}

	members, err := s.memberRepo.FindByIDs(lo.Map(rows, func(r repository.MemberDuration, _ int) uint64 {
		return r.MemberID
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve members: %w", err)
	}
	byID := lo.KeyBy(members, func(m models.OrganizationMember) uint64 { return m.ID })

	return lo.Map(rows, func(r repository.MemberDuration, _ int) dto.MemberStatDTO {
		stat := dto.MemberStatDTO{
			MemberID:      r.MemberID,
			TotalDuration: r.TotalDuration,
			RecordCount:   r.RecordCount,
		}
		if member, ok := byID[r.MemberID]; ok {
			stat.WageType = member.WageType
			stat.TotalDuration = presentDuration(member.WageType, r.TotalDuration)
			stat.Name = member.Name
			if stat.Name == "" {
				stat.Name = member.User.Name
			}
		}
		return stat
	}), nil
}

// applySummaryDelta is the best-effort half of every work record mutation:
// failures are logged and reported to the caller's result, never surfaced.
func (s *WorkRecordService) applySummaryDelta(orgID, projectID, memberID uint64, date string, durationDelta float64, countDelta int) error {
	err := s.recordRepo.ApplySummaryDelta(orgID, projectID, memberID, date, durationDelta, countDelta)
	if err != nil {
		log.Printf("work records: summary maintenance failed for org=%d project=%d member=%d date=%s: %v",
			orgID, projectID, memberID, date, err)
	}
	return err
}

func (s *WorkRecordService) orgIDForProject(projectID uint64) (uint64, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProjectNotFound
		}
		return 0, fmt.Errorf("failed to find project: %w", err)
	}
	return project.OrganizationID, nil
}

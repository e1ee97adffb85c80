package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/workrec/workhour-api/internal/middleware"
	"github.com/workrec/workhour-api/internal/response"
	"github.com/workrec/workhour-api/internal/services"
)

// WorkRecordHandler coordinates work record HTTP handlers.
type WorkRecordHandler struct {
	recordService *services.WorkRecordService
}

// NewWorkRecordHandler creates a new WorkRecordHandler.
func NewWorkRecordHandler(recordService *services.WorkRecordService) *WorkRecordHandler {
	return &WorkRecordHandler{
		recordService: recordService,
	}
}

// Create records one work entry. Duration arrives in the member's wage unit.
func (h *WorkRecordHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		ProjectID uint64  `json:"project_id" binding:"required"`
		MemberID  uint64  `json:"member_id" binding:"required"`
		Date      string  `json:"date" binding:"required"`
		Duration  float64 `json:"duration" binding:"required"`
		Content   string  `json:"content"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	result, err := h.recordService.CreateWorkRecord(services.CreateWorkRecordInput{
		ProjectID: req.ProjectID,
		MemberID:  req.MemberID,
		Date:      req.Date,
		Duration:  req.Duration,
		Content:   req.Content,
	})
	if err != nil {
		respondWorkRecordError(c, err)
		return
	}

	response.Success(c, result.Record)
}

// List pages through a project's records, filtered by date or month.
func (h *WorkRecordHandler) List(c *gin.Context) {
	type ListRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Date      string `json:"date"`
		Month     string `json:"month"`
		Page      int    `json:"page"`
		PageSize  int    `json:"page_size"`
	}

	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	list, total, params, err := h.recordService.ListWorkRecords(req.ProjectID, req.Date, req.Month, req.Page, req.PageSize)
	if err != nil {
		respondWorkRecordError(c, err)
		return
	}

	response.SuccessPage(c, list, total, params.Page, params.Limit)
}

// Stats returns per-member duration totals for a project, in each member's
// natural wage unit.
func (h *WorkRecordHandler) Stats(c *gin.Context) {
	type StatsRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
	}

	var req StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	stats, err := h.recordService.GetStats(req.ProjectID)
	if err != nil {
		respondWorkRecordError(c, err)
		return
	}

	response.SuccessList(c, stats)
}

// Range aggregates per-member totals over an inclusive date range, scoped to
// a project, an org, or the caller's current org.
func (h *WorkRecordHandler) Range(c *gin.Context) {
	type RangeRequest struct {
		ProjectID *uint64  `json:"project_id"`
		OrgID     *uint64  `json:"org_id"`
		Start     string   `json:"start"`
		End       string   `json:"end"`
		MemberIDs []uint64 `json:"member_ids"`
	}

	var req RangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	stats, err := h.recordService.GetSummaryByRange(services.RangeStatsInput{
		ProjectID: req.ProjectID,
		OrgID:     req.OrgID,
		Start:     req.Start,
		End:       req.End,
		MemberIDs: req.MemberIDs,
	}, middleware.GetOrgID(c))
	if err != nil {
		respondWorkRecordError(c, err)
		return
	}

	response.SuccessList(c, stats)
}

// Update patches a record and keeps its summary buckets consistent.
func (h *WorkRecordHandler) Update(c *gin.Context) {
	type UpdateRequest struct {
		ID       uint64   `json:"id" binding:"required"`
		Date     *string  `json:"date"`
		Duration *float64 `json:"duration"`
		Content  *string  `json:"content"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	result, err := h.recordService.UpdateWorkRecord(req.ID, services.WorkRecordUpdate{
		Date:     req.Date,
		Duration: req.Duration,
		Content:  req.Content,
	})
	if err != nil {
		respondWorkRecordError(c, err)
		return
	}

	response.Success(c, result.Record)
}

// Delete removes a record and decrements its summary bucket.
func (h *WorkRecordHandler) Delete(c *gin.Context) {
	type DeleteRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	if _, err := h.recordService.DeleteWorkRecord(req.ID); err != nil {
		respondWorkRecordError(c, err)
		return
	}

	response.Success(c)
}

// Batch inserts one day's records for many members at once. Entries pointing
// at unknown members are dropped silently.
func (h *WorkRecordHandler) Batch(c *gin.Context) {
	type BatchEntryRequest struct {
		MemberID uint64  `json:"member_id" binding:"required"`
		Duration float64 `json:"duration" binding:"required"`
		Content  string  `json:"content"`
	}
	type BatchRequest struct {
		ProjectID uint64              `json:"project_id" binding:"required"`
		Date      string              `json:"date" binding:"required"`
		Records   []BatchEntryRequest `json:"records" binding:"required"`
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	entries := make([]services.BatchEntry, len(req.Records))
	for i, r := range req.Records {
		entries[i] = services.BatchEntry{
			MemberID: r.MemberID,
			Duration: r.Duration,
			Content:  r.Content,
		}
	}

	records, err := h.recordService.BatchCreate(services.BatchCreateInput{
		ProjectID: req.ProjectID,
		Date:      req.Date,
		Records:   entries,
	})
	if err != nil {
		respondWorkRecordError(c, err)
		return
	}

	response.SuccessList(c, records)
}

func respondWorkRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkRecordNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		response.Error(c, err.Error())
	default:
		response.Error(c, "internal server error")
	}
}

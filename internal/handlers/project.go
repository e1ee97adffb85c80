package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/workrec/workhour-api/internal/middleware"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/response"
	"github.com/workrec/workhour-api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create creates a project inside an organization.
func (h *ProjectHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		OrgID       uint64 `json:"org_id"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	orgID := req.OrgID
	if orgID == 0 {
		orgID = middleware.GetOrgID(c)
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		OrgID:       orgID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.Success(c, project)
}

// List returns an organization's projects with derived stats.
func (h *ProjectHandler) List(c *gin.Context) {
	type ListRequest struct {
		OrgID uint64 `json:"org_id"`
	}

	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	orgID := req.OrgID
	if orgID == 0 {
		orgID = middleware.GetOrgID(c)
	}

	projects, err := h.projectService.ListProjects(orgID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.SuccessList(c, projects)
}

// Detail returns one project with derived stats.
func (h *ProjectHandler) Detail(c *gin.Context) {
	type DetailRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	project, err := h.projectService.GetProject(req.ID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.Success(c, project)
}

// AddMembers adds organization members to the project roster, skipping pairs
// that already exist.
func (h *ProjectHandler) AddMembers(c *gin.Context) {
	type AddMembersRequest struct {
		ID        uint64   `json:"id" binding:"required"`
		MemberIDs []uint64 `json:"member_ids" binding:"required"`
	}

	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	if err := h.projectService.AddMembers(req.ID, req.MemberIDs); err != nil {
		respondProjectError(c, err)
		return
	}

	response.Success(c)
}

// ListMembers returns the project roster.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	type ListMembersRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req ListMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	members, err := h.projectService.GetMembers(req.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.SuccessList(c, members)
}

// AddFlow appends a ledger entry to the project.
func (h *ProjectHandler) AddFlow(c *gin.Context) {
	type AddFlowRequest struct {
		ID              uint64          `json:"id" binding:"required"`
		Type            models.FlowType `json:"type" binding:"required"`
		Category        string          `json:"category"`
		Amount          decimal.Decimal `json:"amount" binding:"required"`
		Date            string          `json:"date" binding:"required"`
		Remark          string          `json:"remark"`
		RelatedMemberID *uint64         `json:"related_member_id"`
	}

	var req AddFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	flow, err := h.projectService.AddFlow(req.ID, services.AddFlowInput{
		Type:            req.Type,
		Category:        req.Category,
		Amount:          req.Amount,
		Date:            req.Date,
		Remark:          req.Remark,
		RelatedMemberID: req.RelatedMemberID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.Success(c, flow)
}

// ListFlows returns the project ledger, newest first.
func (h *ProjectHandler) ListFlows(c *gin.Context) {
	type ListFlowsRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req ListFlowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	flows, err := h.projectService.GetFlows(req.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.SuccessList(c, flows)
}

// Update patches a project.
func (h *ProjectHandler) Update(c *gin.Context) {
	type UpdateRequest struct {
		ID          uint64  `json:"id" binding:"required"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(req.ID, services.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.Success(c, project)
}

// Delete removes a project with its roster and ledger.
func (h *ProjectHandler) Delete(c *gin.Context) {
	type DeleteRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	if err := h.projectService.DeleteProject(req.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	response.Success(c)
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrInvalidProjectName):
		response.Error(c, err.Error())
	default:
		response.Error(c, "internal server error")
	}
}

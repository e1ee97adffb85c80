package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/workrec/workhour-api/internal/middleware"
	"github.com/workrec/workhour-api/internal/response"
	"github.com/workrec/workhour-api/internal/services"
)

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// Create creates an organization owned by the caller.
func (h *OrganizationHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	response.Success(c, org)
}

// List returns the caller's organizations with their role in each.
func (h *OrganizationHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	orgs, err := h.orgService.ListOrganizationsForUser(userID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	response.SuccessList(c, orgs)
}

// Detail returns one organization with members and projects.
func (h *OrganizationHandler) Detail(c *gin.Context) {
	type DetailRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	org, err := h.orgService.GetOrganization(req.ID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	response.Success(c, org)
}

// Update patches an organization. Owner only.
func (h *OrganizationHandler) Update(c *gin.Context) {
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

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	org, err := h.orgService.UpdateOrganization(req.ID, userID, services.OrganizationUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	response.Success(c, org)
}

// Delete removes an organization. Owner only.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	type DeleteRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	if err := h.orgService.DeleteOrganization(req.ID, userID); err != nil {
		respondOrganizationError(c, err)
		return
	}

	response.Success(c)
}

// Leave removes the caller's own membership.
func (h *OrganizationHandler) Leave(c *gin.Context) {
	type LeaveRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req LeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	if err := h.orgService.LeaveOrganization(req.ID, userID); err != nil {
		respondOrganizationError(c, err)
		return
	}

	response.Success(c)
}

// Switch changes the caller's current organization. The client must fetch a
// fresh token afterwards.
func (h *OrganizationHandler) Switch(c *gin.Context) {
	type SwitchRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	if err := h.orgService.SwitchToOrg(userID, req.ID); err != nil {
		respondOrganizationError(c, err)
		return
	}

	response.Success(c)
}

func respondOrganizationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrInvalidOrganizationName),
		errors.Is(err, services.ErrOnlyOwnerCanUpdate),
		errors.Is(err, services.ErrOnlyOwnerCanDelete),
		errors.Is(err, services.ErrOwnerCannotLeave),
		errors.Is(err, services.ErrNotOrganizationMember):
		response.Error(c, err.Error())
	default:
		response.Error(c, "internal server error")
	}
}

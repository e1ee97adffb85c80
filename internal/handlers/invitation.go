package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/workrec/workhour-api/internal/middleware"
	"github.com/workrec/workhour-api/internal/response"
	"github.com/workrec/workhour-api/internal/services"
)

// InvitationHandler coordinates invitation HTTP handlers.
type InvitationHandler struct {
	invitationService *services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// Create issues an invite code for an organization.
func (h *InvitationHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		OrgID uint64 `json:"org_id"`
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

	orgID := req.OrgID
	if orgID == 0 {
		orgID = middleware.GetOrgID(c)
	}

	invitation, err := h.invitationService.CreateInvitation(orgID, userID)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	response.Success(c, invitation)
}

// Detail resolves an invite code into org and inviter details.
func (h *InvitationHandler) Detail(c *gin.Context) {
	type DetailRequest struct {
		Code string `json:"code" binding:"required"`
	}

	var req DetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	invitation, err := h.invitationService.GetInvitation(req.Code)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	response.Success(c, invitation)
}

// Accept joins the caller to the invitation's organization.
func (h *InvitationHandler) Accept(c *gin.Context) {
	type AcceptRequest struct {
		Code string `json:"code" binding:"required"`
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	org, err := h.invitationService.AcceptInvitation(req.Code, userID)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	response.Success(c, org)
}

func respondInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrInvitationExpired),
		errors.Is(err, services.ErrAlreadyOrganizationMember),
		errors.Is(err, services.ErrOrganizationNotFound):
		response.Error(c, err.Error())
	default:
		response.Error(c, "internal server error")
	}
}

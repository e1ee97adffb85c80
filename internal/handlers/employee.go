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

// EmployeeHandler coordinates organization membership HTTP handlers.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	authService     *services.AuthService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService, authService *services.AuthService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		authService:     authService,
	}
}

// Create adds a member to an organization, creating the backing user when the
// phone is unknown.
func (h *EmployeeHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		OrgID      uint64            `json:"org_id"`
		Phone      string            `json:"phone" binding:"required"`
		Name       string            `json:"name"`
		Role       models.MemberRole `json:"role"`
		WageType   models.WageType   `json:"wage_type"`
		WageAmount decimal.Decimal   `json:"wage_amount"`
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

	member, err := h.employeeService.CreateEmployee(services.CreateEmployeeInput{
		OrgID:      orgID,
		Phone:      req.Phone,
		Name:       req.Name,
		Role:       req.Role,
		WageType:   req.WageType,
		WageAmount: req.WageAmount,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	response.Success(c, member)
}

// List returns the active members of an organization.
func (h *EmployeeHandler) List(c *gin.Context) {
	type ListRequest struct {
		OrgID uint64 `json:"org_id"`
	}

	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	orgID := req.OrgID
	if orgID == 0 {
		orgID = middleware.GetOrgID(c)
	}

	members, err := h.employeeService.ListEmployees(orgID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	response.SuccessList(c, members)
}

// Detail returns one membership with the linked user's public fields.
func (h *EmployeeHandler) Detail(c *gin.Context) {
	type DetailRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	member, err := h.employeeService.GetEmployee(req.ID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	response.Success(c, member)
}

// Update patches a membership.
func (h *EmployeeHandler) Update(c *gin.Context) {
	type UpdateRequest struct {
		ID         uint64               `json:"id" binding:"required"`
		Name       *string              `json:"name"`
		Role       *models.MemberRole   `json:"role"`
		WageType   *models.WageType     `json:"wage_type"`
		WageAmount *decimal.Decimal     `json:"wage_amount"`
		Status     *models.MemberStatus `json:"status"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	member, err := h.employeeService.UpdateEmployee(req.ID, services.EmployeeUpdate{
		Name:       req.Name,
		Role:       req.Role,
		WageType:   req.WageType,
		WageAmount: req.WageAmount,
		Status:     req.Status,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	response.Success(c, member)
}

// Delete removes a membership. Historical work records stay.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	type DeleteRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	if err := h.employeeService.RemoveEmployee(req.ID); err != nil {
		respondEmployeeError(c, err)
		return
	}

	response.Success(c)
}

// TransferOwnership hands the organization to the target member's user and
// returns a fresh token for the caller so their role change takes effect.
func (h *EmployeeHandler) TransferOwnership(c *gin.Context) {
	type TransferRequest struct {
		MemberID uint64 `json:"member_id" binding:"required"`
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	if err := h.employeeService.TransferOwnership(req.MemberID, userID); err != nil {
		respondEmployeeError(c, err)
		return
	}

	accessToken, err := h.authService.IssueToken(userID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	response.Success(c, gin.H{"access_token": accessToken})
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrMemberAlreadyExists),
		errors.Is(err, services.ErrPhoneRequired),
		errors.Is(err, services.ErrOnlyOwnerCanTransfer),
		errors.Is(err, services.ErrTransferTargetNoUser),
		errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrNotOrganizationMember),
		errors.Is(err, services.ErrUserNotFound):
		response.Error(c, err.Error())
	default:
		response.Error(c, "internal server error")
	}
}

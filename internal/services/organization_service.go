package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/workrec/workhour-api/internal/dto"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrOnlyOwnerCanUpdate      = errors.New("only the owner can update the organization")
	ErrOnlyOwnerCanDelete      = errors.New("only the owner can delete the organization")
	ErrOwnerCannotLeave        = errors.New("the owner cannot leave the organization")
	ErrNotOrganizationMember   = errors.New("not a member of this organization")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// CreateOrganization creates an organization and its owner membership in one
// transaction.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*dto.OrganizationWithRoleDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganizationName
	}

	org := &models.Organization{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}
	owner := &models.OrganizationMember{
		UserID:   input.OwnerID,
		Role:     models.RoleOwner,
		WageType: models.WageTypeDay,
		Status:   models.MemberStatusActive,
		JoinedAt: time.Now(),
	}

	if err := s.orgRepo.CreateWithOwner(org, owner); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return &dto.OrganizationWithRoleDTO{
		OrganizationDTO: dto.ToOrganizationDTO(*org),
		Role:            models.RoleOwner,
	}, nil
}

// ListOrganizationsForUser returns the orgs the user belongs to, annotated
// with that membership's role.
func (s *OrganizationService) ListOrganizationsForUser(userID uint64) ([]dto.OrganizationWithRoleDTO, error) {
	memberships, err := s.orgRepo.ListMembershipsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	return lo.Map(memberships, func(m models.OrganizationMember, _ int) dto.OrganizationWithRoleDTO {
		return dto.ToOrganizationWithRoleDTO(m)
	}), nil
}

// GetOrganization returns an organization with its members and projects.
func (s *OrganizationService) GetOrganization(orgID uint64) (*dto.OrganizationDetailDTO, error) {
	org, err := s.orgRepo.FindByIDWithDetails(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	detail := &dto.OrganizationDetailDTO{
		OrganizationDTO: dto.ToOrganizationDTO(*org),
		Members: lo.Map(org.Members, func(m models.OrganizationMember, _ int) dto.MemberDTO {
			return dto.ToMemberDTO(m)
		}),
		Projects: lo.Map(org.Projects, func(p models.Project, _ int) dto.ProjectDTO {
			return dto.ToProjectDTO(p, "")
		}),
	}

	return detail, nil
}

// OrganizationUpdate enumerates the mutable organization fields.
type OrganizationUpdate struct {
	Name        *string
	Description *string
}

// UpdateOrganization applies the patch. Owner only.
func (s *OrganizationService) UpdateOrganization(orgID, userID uint64, patch OrganizationUpdate) (*dto.OrganizationDTO, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if org.OwnerID != userID {
		return nil, ErrOnlyOwnerCanUpdate
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, ErrInvalidOrganizationName
		}
		org.Name = *patch.Name
	}
	if patch.Description != nil {
		org.Description = *patch.Description
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	result := dto.ToOrganizationDTO(*org)
	return &result, nil
}

// DeleteOrganization removes an organization with its memberships and
// projects. Owner only.
func (s *OrganizationService) DeleteOrganization(orgID, userID uint64) error {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if org.OwnerID != userID {
		return ErrOnlyOwnerCanDelete
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	return nil
}

// LeaveOrganization removes the caller's own membership. The owner must
// transfer or delete instead.
func (s *OrganizationService) LeaveOrganization(orgID, userID uint64) error {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if org.OwnerID == userID {
		return ErrOwnerCannotLeave
	}

	member, err := s.orgRepo.FindMember(orgID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotOrganizationMember
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if err := s.orgRepo.DeleteMembership(member.ID); err != nil {
		return fmt.Errorf("failed to leave organization: %w", err)
	}

	return nil
}

// SwitchToOrg points the user's current org at the target. The client must
// request a fresh token afterwards; the switch alone does not re-sign it.
func (s *OrganizationService) SwitchToOrg(userID, orgID uint64) error {
	if _, err := s.orgRepo.FindMember(orgID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotOrganizationMember
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if err := s.userRepo.UpdateCurrentOrg(userID, orgID); err != nil {
		return fmt.Errorf("failed to switch organization: %w", err)
	}

	return nil
}

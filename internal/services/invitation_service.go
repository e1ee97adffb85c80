package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/workrec/workhour-api/internal/constants"
	"github.com/workrec/workhour-api/internal/dto"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"github.com/workrec/workhour-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationExpired         = errors.New("invitation has expired")
	ErrAlreadyOrganizationMember = errors.New("user is already a member of this organization")
	ErrCodeGenerationFailed      = errors.New("failed to generate invitation code")
)

// InvitationService manages time-boxed organization invite codes. A code is
// reusable until expiry; accepting never mutates the invitation row.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
	memberRepo     repository.MemberRepository
	orgRepo        repository.OrganizationRepository
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(invitationRepo repository.InvitationRepository, memberRepo repository.MemberRepository, orgRepo repository.OrganizationRepository) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		memberRepo:     memberRepo,
		orgRepo:        orgRepo,
	}
}

// CreateInvitation issues a fresh invite code for the org.
func (s *InvitationService) CreateInvitation(orgID, inviterID uint64) (*dto.InvitationDTO, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrCodeGenerationFailed
	}

	invitation := &models.Invitation{
		OrganizationID: org.ID,
		InviterID:      inviterID,
		Code:           code,
		ExpiresAt:      time.Now().AddDate(0, 0, constants.InvitationValidityDays),
		Status:         models.InvitationStatusActive,
	}

	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	invitation.Organization = *org
	result := dto.ToInvitationDTO(*invitation)
	return &result, nil
}

// GetInvitation resolves a code into its org and inviter details.
func (s *InvitationService) GetInvitation(code string) (*dto.InvitationDTO, error) {
	invitation, err := s.invitationRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	result := dto.ToInvitationDTO(*invitation)
	return &result, nil
}

// AcceptInvitation joins the caller to the invitation's organization.
func (s *InvitationService) AcceptInvitation(code string, userID uint64) (*dto.OrganizationDTO, error) {
	invitation, err := s.invitationRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if time.Now().After(invitation.ExpiresAt) {
		return nil, ErrInvitationExpired
	}

	if _, err := s.memberRepo.FindActive(invitation.OrganizationID, userID); err == nil {
		return nil, ErrAlreadyOrganizationMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.OrganizationMember{
		OrganizationID: invitation.OrganizationID,
		UserID:         userID,
		Role:           models.RoleMember,
		WageType:       models.WageTypeDay,
		Status:         models.MemberStatusActive,
		JoinedAt:       time.Now(),
	}

	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to join organization: %w", err)
	}

	org := dto.ToOrganizationDTO(invitation.Organization)
	return &org, nil
}

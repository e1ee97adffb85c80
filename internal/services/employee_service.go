package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/workrec/workhour-api/internal/dto"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberAlreadyExists  = errors.New("user is already a member of this organization")
	ErrOnlyOwnerCanTransfer = errors.New("only the owner can transfer ownership")
	ErrTransferTargetNoUser = errors.New("target member has no linked user")
)

// EmployeeService manages organization memberships.
type EmployeeService struct {
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository
	orgRepo    repository.OrganizationRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(memberRepo repository.MemberRepository, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *EmployeeService {
	return &EmployeeService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
		orgRepo:    orgRepo,
	}
}

// CreateEmployeeInput represents parameters to add a member to an org.
type CreateEmployeeInput struct {
	OrgID      uint64
	Phone      string
	Name       string
	Role       models.MemberRole
	WageType   models.WageType
	WageAmount decimal.Decimal
}

// CreateEmployee finds or creates a user by phone and adds them to the org,
// so the phone can later log in and see this membership. User creation and
// membership insert share one transaction.
func (s *EmployeeService) CreateEmployee(input CreateEmployeeInput) (*dto.MemberDTO, error) {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	user, err := s.userRepo.FindByPhone(phone)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		user = &models.User{Phone: phone, Name: input.Name}
	}

	if user.ID != 0 {
		if _, err := s.memberRepo.FindActive(input.OrgID, user.ID); err == nil {
			return nil, ErrMemberAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to verify membership: %w", err)
		}
	}

	member := &models.OrganizationMember{
		OrganizationID: input.OrgID,
		Name:           input.Name,
		Role:           defaultRole(input.Role),
		WageType:       defaultWageType(input.WageType),
		WageAmount:     input.WageAmount,
		Status:         models.MemberStatusActive,
		JoinedAt:       time.Now(),
	}

	if err := s.memberRepo.CreateWithUser(user, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	member.User = *user
	result := dto.ToMemberDTO(*member)
	return &result, nil
}

// ListEmployees lists active members of an organization.
func (s *EmployeeService) ListEmployees(orgID uint64) ([]dto.MemberDTO, error) {
	members, err := s.memberRepo.ListByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return lo.Map(members, func(m models.OrganizationMember, _ int) dto.MemberDTO {
		return dto.ToMemberDTO(m)
	}), nil
}

// GetEmployee returns one membership with the linked user's public fields.
func (s *EmployeeService) GetEmployee(id uint64) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	result := dto.ToMemberDTO(*member)
	return &result, nil
}

// EmployeeUpdate enumerates the mutable membership fields.
type EmployeeUpdate struct {
	Name       *string
	Role       *models.MemberRole
	WageType   *models.WageType
	WageAmount *decimal.Decimal
	Status     *models.MemberStatus
}

// UpdateEmployee applies the patch to a membership. Wage changes never touch
// the snapshots on existing work records.
func (s *EmployeeService) UpdateEmployee(id uint64, patch EmployeeUpdate) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if patch.Name != nil {
		member.Name = *patch.Name
	}
	if patch.Role != nil {
		member.Role = *patch.Role
	}
	if patch.WageType != nil {
		member.WageType = *patch.WageType
	}
	if patch.WageAmount != nil {
		member.WageAmount = *patch.WageAmount
	}
	if patch.Status != nil {
		member.Status = *patch.Status
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	result := dto.ToMemberDTO(*member)
	return &result, nil
}

// RemoveEmployee deletes the membership row. The member's work records and
// project memberships stay behind as history.
func (s *EmployeeService) RemoveEmployee(id uint64) error {
	if _, err := s.memberRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.memberRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// TransferOwnership reassigns the organization to the target member's user:
// the org owner changes, the former owner's membership drops to member, the
// target's rises to owner, all in one transaction.
func (s *EmployeeService) TransferOwnership(targetMemberID, requestingUserID uint64) error {
	target, err := s.memberRepo.FindByID(targetMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	org, err := s.orgRepo.FindByID(target.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if org.OwnerID != requestingUserID {
		return ErrOnlyOwnerCanTransfer
	}

	// A placeholder membership without a linked user can never own the org.
	if target.UserID == 0 {
		return ErrTransferTargetNoUser
	}

	ownerMember, err := s.orgRepo.FindMember(org.ID, requestingUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotOrganizationMember
		}
		return fmt.Errorf("failed to find owner membership: %w", err)
	}

	if err := s.orgRepo.TransferOwnership(org, target.UserID, ownerMember.ID, target.ID); err != nil {
		return fmt.Errorf("failed to transfer ownership: %w", err)
	}

	return nil
}

func defaultRole(role models.MemberRole) models.MemberRole {
	if role == "" {
		return models.RoleMember
	}
	return role
}

func defaultWageType(wageType models.WageType) models.WageType {
	if wageType == "" {
		return models.WageTypeDay
	}
	return wageType
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workrec/workhour-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrganizationWithRoleDTO represents an organization with the user's role
type OrganizationWithRoleDTO struct {
	OrganizationDTO
	Role models.MemberRole `json:"role"`
}

// MemberDTO represents an organization member joined with the linked user's
// public fields.
type MemberDTO struct {
	ID             uint64              `json:"id"`
	OrganizationID uint64              `json:"organization_id"`
	UserID         uint64              `json:"user_id"`
	Name           string              `json:"name"`
	Phone          string              `json:"phone"`
	Avatar         string              `json:"avatar"`
	Role           models.MemberRole   `json:"role"`
	WageType       models.WageType     `json:"wage_type"`
	WageAmount     decimal.Decimal     `json:"wage_amount"`
	Status         models.MemberStatus `json:"status"`
	JoinedAt       time.Time           `json:"joined_at"`
}

// OrganizationDetailDTO represents detailed organization information
type OrganizationDetailDTO struct {
	OrganizationDTO
	Members  []MemberDTO  `json:"members"`
	Projects []ProjectDTO `json:"projects"`
}

// ToOrganizationDTO converts an organization to DTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		OwnerID:     org.OwnerID,
		CreatedAt:   org.CreatedAt,
	}
}

// ToOrganizationWithRoleDTO converts a membership to an org DTO with role
func ToOrganizationWithRoleDTO(member models.OrganizationMember) OrganizationWithRoleDTO {
	return OrganizationWithRoleDTO{
		OrganizationDTO: ToOrganizationDTO(member.Organization),
		Role:            member.Role,
	}
}

// ToMemberDTO converts a membership to DTO. The member's display name falls
// back to the linked user's name, then their phone.
func ToMemberDTO(member models.OrganizationMember) MemberDTO {
	name := member.Name
	if name == "" {
		name = member.User.Name
	}
	if name == "" {
		name = member.User.Phone
	}

	return MemberDTO{
		ID:             member.ID,
		OrganizationID: member.OrganizationID,
		UserID:         member.UserID,
		Name:           name,
		Phone:          member.User.Phone,
		Avatar:         member.User.Avatar,
		Role:           member.Role,
		WageType:       member.WageType,
		WageAmount:     member.WageAmount,
		Status:         member.Status,
		JoinedAt:       member.JoinedAt,
	}
}

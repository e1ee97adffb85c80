package dto

import (
	"time"

	"github.com/workrec/workhour-api/internal/models"
)

// InvitationDTO represents an invite code and the org it opens.
type InvitationDTO struct {
	ID               uint64    `json:"id"`
	Code             string    `json:"code"`
	OrganizationID   uint64    `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	InviterName      string    `json:"inviter_name"`
	ExpiresAt        time.Time `json:"expires_at"`
	Expired          bool      `json:"expired"`
}

// ToInvitationDTO converts an invitation to DTO
func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	inviterName := invitation.Inviter.Name
	if inviterName == "" {
		inviterName = invitation.Inviter.Phone
	}

	return InvitationDTO{
		ID:               invitation.ID,
		Code:             invitation.Code,
		OrganizationID:   invitation.OrganizationID,
		OrganizationName: invitation.Organization.Name,
		InviterName:      inviterName,
		ExpiresAt:        invitation.ExpiresAt,
		Expired:          time.Now().After(invitation.ExpiresAt),
	}
}

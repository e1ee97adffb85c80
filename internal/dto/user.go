package dto

import "github.com/workrec/workhour-api/internal/models"

// UserDTO represents a user in API responses. The password hash never leaves
// the model layer.
type UserDTO struct {
	ID           uint64 `json:"id"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	CurrentOrgID uint64 `json:"current_org_id"`
}

// ProfileDTO is the assembled login profile: the user, their current org and
// the role derived from the membership matching current_org_id.
type ProfileDTO struct {
	UserDTO
	Role          string                    `json:"role"`
	CurrentOrg    *OrganizationDTO          `json:"current_org,omitempty"`
	Organizations []OrganizationWithRoleDTO `json:"organizations"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Phone:        user.Phone,
		Name:         user.Name,
		Avatar:       user.Avatar,
		CurrentOrgID: user.CurrentOrgID,
	}
}

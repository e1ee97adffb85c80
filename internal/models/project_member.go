package models

import "time"

// ProjectMember links an organization member to a project. The composite
// unique index makes repeated adds of the same pair a no-op at the service
// layer rather than a second row.
type ProjectMember struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	ProjectID uint64     `gorm:"not null;uniqueIndex:idx_project_members_pair" json:"project_id"`
	MemberID  uint64     `gorm:"not null;uniqueIndex:idx_project_members_pair" json:"member_id"`
	Role      MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	Project Project            `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Member  OrganizationMember `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

package dto

import (
	"time"

	"github.com/workrec/workhour-api/internal/models"
)

// ProjectDTO represents a project with its derived presentation fields.
// TotalDaysHours is the summed hour-equivalents of day/month-wage records;
// clients divide by the day factor to display day counts.
type ProjectDTO struct {
	ID             uint64            `json:"id"`
	OrganizationID uint64            `json:"organization_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	MemberCount    int               `json:"member_count"`
	Role           models.MemberRole `json:"role"`
	TotalHours     float64           `json:"total_hours"`
	TotalDaysHours float64           `json:"total_days_hours"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ProjectMemberDTO represents one roster entry of a project
type ProjectMemberDTO struct {
	ID       uint64            `json:"id"`
	MemberID uint64            `json:"member_id"`
	Name     string            `json:"name"`
	Avatar   string            `json:"avatar"`
	Role     models.MemberRole `json:"role"`
	WageType models.WageType   `json:"wage_type"`
}

// ToProjectDTO converts a project to DTO, deriving member count, the caller's
// role and the wage-type-split duration totals from the preloaded relations.
func ToProjectDTO(project models.Project, role models.MemberRole) ProjectDTO {
	var totalHours, totalDaysHours float64
	for _, record := range project.WorkRecords {
		if record.WageTypeSnapshot == models.WageTypeHour {
			totalHours += record.Duration
		} else {
			totalDaysHours += record.Duration
		}
	}

	return ProjectDTO{
		ID:             project.ID,
		OrganizationID: project.OrganizationID,
		Name:           project.Name,
		Description:    project.Description,
		MemberCount:    len(project.Members),
		Role:           role,
		TotalHours:     totalHours,
		TotalDaysHours: totalDaysHours,
		CreatedAt:      project.CreatedAt,
	}
}

// ToProjectMemberDTO converts a roster entry to DTO with display fallbacks:
// name falls back to the user's phone, avatar to the empty string.
func ToProjectMemberDTO(pm models.ProjectMember) ProjectMemberDTO {
	name := pm.Member.Name
	if name == "" {
		name = pm.Member.User.Name
	}
	if name == "" {
		name = pm.Member.User.Phone
	}

	return ProjectMemberDTO{
		ID:       pm.ID,
		MemberID: pm.MemberID,
		Name:     name,
		Avatar:   pm.Member.User.Avatar,
		Role:     pm.Role,
		WageType: pm.Member.WageType,
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/workrec/workhour-api/internal/dto"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name cannot be empty")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	orgRepo     repository.OrganizationRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, orgRepo repository.OrganizationRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
	}
}

// CreateProjectInput represents parameters to create a project.
type CreateProjectInput struct {
	OrgID       uint64
	Name        string
	Description string
}

// CreateProject creates a project inside an organization.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*dto.ProjectDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{
		OrganizationID: input.OrgID,
		Name:           input.Name,
		Description:    input.Description,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	result := dto.ToProjectDTO(*project, models.RoleMember)
	return &result, nil
}

// ListProjects lists an organization's projects with derived member counts,
// duration totals and the caller's per-project role.
func (s *ProjectService) ListProjects(orgID, userID uint64) ([]dto.ProjectDTO, error) {
	projects, err := s.projectRepo.ListByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	orgRole, orgMemberID := s.callerMembership(orgID, userID)

	return lo.Map(projects, func(p models.Project, _ int) dto.ProjectDTO {
		return dto.ToProjectDTO(p, s.deriveProjectRole(p, orgRole, orgMemberID))
	}), nil
}

// GetProject loads one project with its derived fields.
func (s *ProjectService) GetProject(id, userID uint64) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.FindByID(id, "Members", "WorkRecords")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	orgRole, orgMemberID := s.callerMembership(project.OrganizationID, userID)

	result := dto.ToProjectDTO(*project, s.deriveProjectRole(*project, orgRole, orgMemberID))
	return &result, nil
}

// AddMembers inserts roster rows for each member ID. Pairs that already exist
// are skipped, so the call is idempotent per row.
func (s *ProjectService) AddMembers(projectID uint64, memberIDs []uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	for _, memberID := range memberIDs {
		if _, err := s.projectRepo.FindMember(projectID, memberID); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check project member: %w", err)
		}

		pm := &models.ProjectMember{
			ProjectID: projectID,
			MemberID:  memberID,
			Role:      models.RoleMember,
		}
		// The insert ignores conflicts on the pair index, so a concurrent
		// duplicate add lands here without an error.
		if err := s.projectRepo.AddMember(pm); err != nil {
			return fmt.Errorf("failed to add project member: %w", err)
		}
	}

	return nil
}

// GetMembers returns the project roster with user display fields.
func (s *ProjectService) GetMembers(projectID uint64) ([]dto.ProjectMemberDTO, error) {
	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return lo.Map(members, func(pm models.ProjectMember, _ int) dto.ProjectMemberDTO {
		return dto.ToProjectMemberDTO(pm)
	}), nil
}

// AddFlowInput represents one ledger entry.
type AddFlowInput struct {
	Type            models.FlowType
	Category        string
	Amount          decimal.Decimal
	Date            string
	Remark          string
	RelatedMemberID *uint64
}

// AddFlow appends a ledger entry to the project.
func (s *ProjectService) AddFlow(projectID uint64, input AddFlowInput) (*models.ProjectFlow, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	flow := &models.ProjectFlow{
		ProjectID:       projectID,
		Type:            input.Type,
		Category:        input.Category,
		Amount:          input.Amount,
		FlowDate:        input.Date,
		Remark:          input.Remark,
		RelatedMemberID: input.RelatedMemberID,
	}

	if err := s.projectRepo.CreateFlow(flow); err != nil {
		return nil, fmt.Errorf("failed to create flow: %w", err)
	}

	return flow, nil
}

// GetFlows lists the project ledger, newest first.
func (s *ProjectService) GetFlows(projectID uint64) ([]models.ProjectFlow, error) {
	flows, err := s.projectRepo.ListFlows(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}
	return flows, nil
}

// ProjectUpdate enumerates the mutable project fields.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// UpdateProject applies the patch.
func (s *ProjectService) UpdateProject(id uint64, patch ProjectUpdate) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes the project with its roster and ledger.
func (s *ProjectService) DeleteProject(id uint64) error {
	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// callerMembership resolves the caller's org-level role and membership ID.
// Missing membership degrades to an empty role rather than an error.
func (s *ProjectService) callerMembership(orgID, userID uint64) (models.MemberRole, uint64) {
	member, err := s.orgRepo.FindMember(orgID, userID)
	if err != nil {
		return "", 0
	}
	return member.Role, member.ID
}

// deriveProjectRole prefers an owner-role roster entry of the caller and
// falls back to their org-level role.
func (s *ProjectService) deriveProjectRole(project models.Project, orgRole models.MemberRole, orgMemberID uint64) models.MemberRole {
	if orgMemberID != 0 {
		for _, pm := range project.Members {
			if pm.MemberID == orgMemberID && pm.Role == models.RoleOwner {
				return models.RoleOwner
			}
		}
	}
	return orgRole
}

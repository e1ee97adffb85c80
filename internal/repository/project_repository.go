package repository

import (
	"github.com/workrec/workhour-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListByOrg lists projects of an organization with members and records preloaded
func (r *GormProjectRepository) ListByOrg(organizationID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Preload("Members").
		Preload("WorkRecords").
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project with its members and flows in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectFlow{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a member to the project. An existing (project, member) pair
// is left untouched, so concurrent duplicate adds are a no-op.
func (r *GormProjectRepository) AddMember(pm *models.ProjectMember) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "member_id"}},
			DoNothing: true,
		}).
		Create(pm).Error
}

// FindMember finds a specific project member
func (r *GormProjectRepository) FindMember(projectID, memberID uint64) (*models.ProjectMember, error) {
	var pm models.ProjectMember
	if err := r.db.Where("project_id = ? AND member_id = ?", projectID, memberID).
		First(&pm).Error; err != nil {
		return nil, err
	}
	return &pm, nil
}

// ListMembers lists the project roster with member users preloaded
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("Member").Preload("Member.User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CreateFlow inserts a ledger entry
func (r *GormProjectRepository) CreateFlow(flow *models.ProjectFlow) error {
	return r.db.Create(flow).Error
}

// ListFlows lists ledger entries ordered by date descending
func (r *GormProjectRepository) ListFlows(projectID uint64) ([]models.ProjectFlow, error) {
	var flows []models.ProjectFlow
	if err := r.db.Where("project_id = ?", projectID).
		Order("flow_date DESC").
		Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

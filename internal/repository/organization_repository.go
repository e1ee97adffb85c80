package repository

import (
	"github.com/workrec/workhour-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithOwner creates an organization and its owner membership atomically
func (r *GormOrganizationRepository) CreateWithOwner(org *models.Organization, owner *models.OrganizationMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		owner.OrganizationID = org.ID
		return tx.Create(owner).Error
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByIDWithDetails loads an organization with members and projects
func (r *GormOrganizationRepository) FindByIDWithDetails(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.
		Preload("Members", "status = ?", models.MemberStatusActive).
		Preload("Members.User").
		Preload("Projects").
		First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organization and all related data in a transaction
func (r *GormOrganizationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint64
		if err := tx.Model(&models.Project{}).Where("organization_id = ?", id).
			Pluck("id", &projectIDs).Error; err != nil {
			return err
		}

		if len(projectIDs) > 0 {
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.ProjectMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.ProjectFlow{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.WorkRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.WorkSummaryDaily{}).Error; err != nil {
				return err
			}
			if err := tx.Where("organization_id = ?", id).Delete(&models.Project{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("organization_id = ?", id).Delete(&models.OrganizationMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Organization{}, id).Error
	})
}

// ListMembershipsByUser lists a user's active memberships with orgs preloaded
func (r *GormOrganizationRepository) ListMembershipsByUser(userID uint64) ([]models.OrganizationMember, error) {
	var memberships []models.OrganizationMember
	if err := r.db.Preload("Organization").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusActive).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// FindMember finds a user's active membership in an organization
func (r *GormOrganizationRepository) FindMember(organizationID, userID uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Where("organization_id = ? AND user_id = ? AND status = ?",
		organizationID, userID, models.MemberStatusActive).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteMembership removes a single membership row
func (r *GormOrganizationRepository) DeleteMembership(id uint64) error {
	return r.db.Delete(&models.OrganizationMember{}, id).Error
}

// TransferOwnership reassigns the org owner and swaps the two membership roles
// in one transaction, so the org never ends up with zero or two owners.
func (r *GormOrganizationRepository) TransferOwnership(org *models.Organization, newOwnerUserID, oldOwnerMemberID, newOwnerMemberID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Organization{}).Where("id = ?", org.ID).
			Update("owner_id", newOwnerUserID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.OrganizationMember{}).Where("id = ?", oldOwnerMemberID).
			Update("role", models.RoleMember).Error; err != nil {
			return err
		}

		return tx.Model(&models.OrganizationMember{}).Where("id = ?", newOwnerMemberID).
			Update("role", models.RoleOwner).Error
	})
}

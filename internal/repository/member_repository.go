package repository

import (
	"github.com/workrec/workhour-api/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a membership row
func (r *GormMemberRepository) Create(member *models.OrganizationMember) error {
	return r.db.Create(member).Error
}

// CreateWithUser creates the linked user (when user.ID is zero) and the
// membership within a single transaction, so a failed membership insert never
// leaves an orphaned user behind.
func (r *GormMemberRepository) CreateWithUser(user *models.User, member *models.OrganizationMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if user.ID == 0 {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
		}

		member.UserID = user.ID
		return tx.Create(member).Error
	})
}

// FindByID finds a membership with its user preloaded
func (r *GormMemberRepository) FindByID(id uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Preload("User").First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByOrg lists active memberships of an organization with users preloaded
func (r *GormMemberRepository) ListByOrg(organizationID uint64) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	if err := r.db.Preload("User").
		Where("organization_id = ? AND status = ?", organizationID, models.MemberStatusActive).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindActive finds a user's active membership in an organization
func (r *GormMemberRepository) FindActive(organizationID, userID uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Where("organization_id = ? AND user_id = ? AND status = ?",
		organizationID, userID, models.MemberStatusActive).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByIDs loads memberships by primary key
func (r *GormMemberRepository) FindByIDs(ids []uint64) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	if len(ids) == 0 {
		return members, nil
	}
	if err := r.db.Preload("User").Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Update saves a membership
func (r *GormMemberRepository) Update(member *models.OrganizationMember) error {
	return r.db.Save(member).Error
}

// Delete removes a membership row. The member's work records and project
// memberships are retained on purpose.
func (r *GormMemberRepository) Delete(id uint64) error {
	return r.db.Delete(&models.OrganizationMember{}, id).Error
}

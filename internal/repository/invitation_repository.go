package repository

import (
	"github.com/workrec/workhour-api/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates an invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindByCode finds an invitation by code with org and inviter preloaded
func (r *GormInvitationRepository) FindByCode(code string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Organization").Preload("Inviter").
		Where("code = ?", code).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workrec/workhour-api/internal/database"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type organizationServiceTestEnv struct {
	db      *gorm.DB
	service *OrganizationService
	owner   models.User
}

func setupOrganizationServiceTestEnv(t *testing.T) organizationServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ProjectFlow{},
		&models.WorkRecord{},
		&models.WorkSummaryDaily{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	owner := models.User{Phone: "13800138000", Name: "Boss"}
	require.NoError(t, db.Create(&owner).Error)

	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	service := NewOrganizationService(orgRepo, userRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return organizationServiceTestEnv{
		db:      db,
		service: service,
		owner:   owner,
	}
}

func TestCreateOrganization_OwnerMembership(t *testing.T) {
	env := setupOrganizationServiceTestEnv(t)

	org, err := env.service.CreateOrganization(CreateOrganizationInput{
		Name:    "Site Crew A",
		OwnerID: env.owner.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, org.Role)

	var member models.OrganizationMember
	err = env.db.Where("organization_id = ? AND user_id = ?", org.ID, env.owner.ID).
		First(&member).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, member.Role)
}

func TestCreateOrganization_EmptyName(t *testing.T) {
	env := setupOrganizationServiceTestEnv(t)

	_, err := env.service.CreateOrganization(CreateOrganizationInput{
		Name:    "  ",
		OwnerID: env.owner.ID,
	})
	require.ErrorIs(t, err, ErrInvalidOrganizationName)
}

func TestUpdateOrganization_NonOwnerRejected(t *testing.T) {
	env := setupOrganizationServiceTestEnv(t)

	org, err := env.service.CreateOrganization(CreateOrganizationInput{
		Name:    "Site Crew A",
		OwnerID: env.owner.ID,
	})
	require.NoError(t, err)

	stranger := models.User{Phone: "13900139000"}
	require.NoError(t, env.db.Create(&stranger).Error)

	newName := "Renamed"
	_, err = env.service.UpdateOrganization(org.ID, stranger.ID, OrganizationUpdate{
		Name: &newName,
	})
	require.ErrorIs(t, err, ErrOnlyOwnerCanUpdate)
}

func TestDeleteOrganization_Cascades(t *testing.T) {
	env := setupOrganizationServiceTestEnv(t)

	org, err := env.service.CreateOrganization(CreateOrganizationInput{
		Name:    "Site Crew A",
		OwnerID: env.owner.ID,
	})
	require.NoError(t, err)

	project := models.Project{OrganizationID: org.ID, Name: "north site"}
	require.NoError(t, env.db.Create(&project).Error)

	member := models.OrganizationMember{
		OrganizationID: org.ID,
		Name:           "Li Si",
		Role:           models.RoleMember,
		WageType:       models.WageTypeDay,
		Status:         models.MemberStatusActive,
	}
	require.NoError(t, env.db.Create(&member).Error)

	require.NoError(t, env.db.Create(&models.WorkRecord{
		ProjectID:        project.ID,
		MemberID:         member.ID,
		WorkDate:         "2026-08-01",
		Duration:         8,
		WageTypeSnapshot: models.WageTypeDay,
	}).Error)

	require.NoError(t, env.service.DeleteOrganization(org.ID, env.owner.ID))

	_, err = env.service.GetOrganization(org.ID)
	require.ErrorIs(t, err, ErrOrganizationNotFound)

	var projectCount int64
	require.NoError(t, env.db.Model(&models.Project{}).
		Where("organization_id = ?", org.ID).Count(&projectCount).Error)
	require.EqualValues(t, 0, projectCount)

	var memberCount int64
	require.NoError(t, env.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ?", org.ID).Count(&memberCount).Error)
	require.EqualValues(t, 0, memberCount)

	var recordCount int64
	require.NoError(t, env.db.Model(&models.WorkRecord{}).
		Where("project_id = ?", project.ID).Count(&recordCount).Error)
	require.EqualValues(t, 0, recordCount)
}

func TestDeleteOrganization_NonOwnerRejected(t *testing.T) {
	env := setupOrganizationServiceTestEnv(t)

	org, err := env.service.CreateOrganization(CreateOrganizationInput{
		Name:    "Site Crew A",
		OwnerID: env.owner.ID,
	})
	require.NoError(t, err)

	stranger := models.User{Phone: "13900139000"}
	require.NoError(t, env.db.Create(&stranger).Error)

	err = env.service.DeleteOrganization(org.ID, stranger.ID)
	require.ErrorIs(t, err, ErrOnlyOwnerCanDelete)
}

func TestSwitchToOrg_UpdatesCurrentOrg(t *testing.T) {
	env := setupOrganizationServiceTestEnv(t)

	org, err := env.service.CreateOrganization(CreateOrganizationInput{
		Name:    "Site Crew A",
		OwnerID: env.owner.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.service.SwitchToOrg(env.owner.ID, org.ID))

	var user models.User
	require.NoError(t, env.db.First(&user, env.owner.ID).Error)
	require.Equal(t, org.ID, user.CurrentOrgID)
}

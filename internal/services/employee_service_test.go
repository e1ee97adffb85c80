package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/workrec/workhour-api/internal/database"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type employeeTestEnv struct {
	db      *gorm.DB
	service *EmployeeService
	owner   models.User
	org     models.Organization
}

func setupEmployeeTestEnv(t *testing.T) employeeTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.WorkRecord{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	owner := models.User{Phone: "13800138000", Name: "Boss"}
	require.NoError(t, db.Create(&owner).Error)

	org := models.Organization{Name: "crew", OwnerID: owner.ID}
	require.NoError(t, db.Create(&org).Error)

	require.NoError(t, db.Create(&models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         owner.ID,
		Role:           models.RoleOwner,
		WageType:       models.WageTypeDay,
		Status:         models.MemberStatusActive,
	}).Error)

	memberRepo := repository.NewMemberRepository(db)
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	service := NewEmployeeService(memberRepo, userRepo, orgRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return employeeTestEnv{
		db:      db,
		service: service,
		owner:   owner,
		org:     org,
	}
}

func TestCreateEmployee_NewPhoneCreatesUser(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	member, err := env.service.CreateEmployee(CreateEmployeeInput{
		OrgID:      env.org.ID,
		Phone:      "13900139000",
		Name:       "Li Si",
		WageAmount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	require.Equal(t, "Li Si", member.Name)
	require.Equal(t, models.RoleMember, member.Role)
	require.Equal(t, models.WageTypeDay, member.WageType)
	require.Equal(t, models.MemberStatusActive, member.Status)

	// The phone now resolves to a user linked to the membership.
	var user models.User
	require.NoError(t, env.db.Where("phone = ?", "13900139000").First(&user).Error)
	require.Equal(t, user.ID, member.UserID)
}

func TestCreateEmployee_ExistingPhoneLinksUser(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	existing := models.User{Phone: "13900139000", Name: "Li Si"}
	require.NoError(t, env.db.Create(&existing).Error)

	member, err := env.service.CreateEmployee(CreateEmployeeInput{
		OrgID: env.org.ID,
		Phone: "13900139000",
		Name:  "Li Si",
	})
	require.NoError(t, err)
	require.Equal(t, existing.ID, member.UserID)

	var userCount int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&userCount).Error)
	require.EqualValues(t, 2, userCount)
}

func TestCreateEmployee_DuplicateMembership(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	_, err := env.service.CreateEmployee(CreateEmployeeInput{
		OrgID: env.org.ID,
		Phone: "13900139000",
		Name:  "Li Si",
	})
	require.NoError(t, err)

	_, err = env.service.CreateEmployee(CreateEmployeeInput{
		OrgID: env.org.ID,
		Phone: "13900139000",
		Name:  "Li Si again",
	})
	require.ErrorIs(t, err, ErrMemberAlreadyExists)
}

func TestUpdateEmployee_WageChangeKeepsRecordSnapshots(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	member, err := env.service.CreateEmployee(CreateEmployeeInput{
		OrgID:      env.org.ID,
		Phone:      "13900139000",
		Name:       "Li Si",
		WageAmount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	record := models.WorkRecord{
		ProjectID:        1,
		MemberID:         member.ID,
		WorkDate:         "2026-08-01",
		Duration:         8,
		WageSnapshot:     decimal.NewFromInt(300),
		WageTypeSnapshot: models.WageTypeDay,
	}
	require.NoError(t, env.db.Create(&record).Error)

	newWage := decimal.NewFromInt(500)
	newWageType := models.WageTypeHour
	updated, err := env.service.UpdateEmployee(member.ID, EmployeeUpdate{
		WageAmount: &newWage,
		WageType:   &newWageType,
	})
	require.NoError(t, err)
	require.True(t, updated.WageAmount.Equal(newWage))
	require.Equal(t, models.WageTypeHour, updated.WageType)

	var unchanged models.WorkRecord
	require.NoError(t, env.db.First(&unchanged, record.ID).Error)
	require.True(t, unchanged.WageSnapshot.Equal(decimal.NewFromInt(300)))
	require.Equal(t, models.WageTypeDay, unchanged.WageTypeSnapshot)
}

func TestRemoveEmployee_KeepsWorkRecords(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	member, err := env.service.CreateEmployee(CreateEmployeeInput{
		OrgID: env.org.ID,
		Phone: "13900139000",
		Name:  "Li Si",
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Create(&models.WorkRecord{
		ProjectID:        1,
		MemberID:         member.ID,
		WorkDate:         "2026-08-01",
		Duration:         8,
		WageTypeSnapshot: models.WageTypeDay,
	}).Error)

	require.NoError(t, env.service.RemoveEmployee(member.ID))

	_, err = env.service.GetEmployee(member.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)

	var recordCount int64
	require.NoError(t, env.db.Model(&models.WorkRecord{}).Count(&recordCount).Error)
	require.EqualValues(t, 1, recordCount)
}

func TestTransferOwnership(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	target, err := env.service.CreateEmployee(CreateEmployeeInput{
		OrgID: env.org.ID,
		Phone: "13900139000",
		Name:  "Li Si",
	})
	require.NoError(t, err)

	err = env.service.TransferOwnership(target.ID, env.owner.ID)
	require.NoError(t, err)

	var org models.Organization
	require.NoError(t, env.db.First(&org, env.org.ID).Error)
	require.Equal(t, target.UserID, org.OwnerID)

	// Exactly one owner membership remains, and it is the target's.
	var owners []models.OrganizationMember
	err = env.db.Where("organization_id = ? AND role = ?", env.org.ID, models.RoleOwner).
		Find(&owners).Error
	require.NoError(t, err)
	require.Len(t, owners, 1)
	require.Equal(t, target.ID, owners[0].ID)

	var oldOwner models.OrganizationMember
	err = env.db.Where("organization_id = ? AND user_id = ?", env.org.ID, env.owner.ID).
		First(&oldOwner).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, oldOwner.Role)
}

func TestTransferOwnership_TargetWithoutUser(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	// A membership created without a phone-linked user cannot own the org.
	placeholder := models.OrganizationMember{
		OrganizationID: env.org.ID,
		Name:           "temp worker",
		Role:           models.RoleTemp,
		WageType:       models.WageTypeDay,
		Status:         models.MemberStatusActive,
	}
	require.NoError(t, env.db.Create(&placeholder).Error)

	err := env.service.TransferOwnership(placeholder.ID, env.owner.ID)
	require.ErrorIs(t, err, ErrTransferTargetNoUser)

	var org models.Organization
	require.NoError(t, env.db.First(&org, env.org.ID).Error)
	require.Equal(t, env.owner.ID, org.OwnerID)
}

func TestTransferOwnership_NotOwner(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	target, err := env.service.CreateEmployee(CreateEmployeeInput{
		OrgID: env.org.ID,
		Phone: "13900139000",
		Name:  "Li Si",
	})
	require.NoError(t, err)

	err = env.service.TransferOwnership(target.ID, target.UserID)
	require.ErrorIs(t, err, ErrOnlyOwnerCanTransfer)
}

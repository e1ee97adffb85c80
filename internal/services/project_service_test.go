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

type projectTestEnv struct {
	db      *gorm.DB
	service *ProjectService
	owner   models.User
	org     models.Organization
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
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

	projectRepo := repository.NewProjectRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	service := NewProjectService(projectRepo, orgRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return projectTestEnv{
		db:      db,
		service: service,
		owner:   owner,
		org:     org,
	}
}

func (env projectTestEnv) createOrgMember(t *testing.T, name string) models.OrganizationMember {
	t.Helper()

	member := models.OrganizationMember{
		OrganizationID: env.org.ID,
		Name:           name,
		Role:           models.RoleMember,
		WageType:       models.WageTypeDay,
		Status:         models.MemberStatusActive,
	}
	require.NoError(t, env.db.Create(&member).Error)
	return member
}

func TestCreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)

	project, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "north site",
	})
	require.NoError(t, err)
	require.Equal(t, "north site", project.Name)
	require.Equal(t, env.org.ID, project.OrganizationID)
}

func TestCreateProject_EmptyName(t *testing.T) {
	env := setupProjectTestEnv(t)

	_, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "   ",
	})
	require.ErrorIs(t, err, ErrInvalidProjectName)
}

func TestAddMembers_Idempotent(t *testing.T) {
	env := setupProjectTestEnv(t)

	project, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "north site",
	})
	require.NoError(t, err)

	m1 := env.createOrgMember(t, "Li Si")
	m2 := env.createOrgMember(t, "Wang Wu")
	m3 := env.createOrgMember(t, "Zhao Liu")

	require.NoError(t, env.service.AddMembers(project.ID, []uint64{m1.ID, m2.ID}))
	require.NoError(t, env.service.AddMembers(project.ID, []uint64{m1.ID, m2.ID, m3.ID}))

	roster, err := env.service.GetMembers(project.ID)
	require.NoError(t, err)
	require.Len(t, roster, 3)
}

func TestAddMember_RepositoryDuplicateIsNoOp(t *testing.T) {
	env := setupProjectTestEnv(t)

	project, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "north site",
	})
	require.NoError(t, err)

	member := env.createOrgMember(t, "Li Si")

	// Two racing adds both reach the insert; the second hits the pair index
	// and must come back clean instead of failing the whole request.
	projectRepo := repository.NewProjectRepository(env.db)
	require.NoError(t, projectRepo.AddMember(&models.ProjectMember{
		ProjectID: project.ID,
		MemberID:  member.ID,
		Role:      models.RoleMember,
	}))
	require.NoError(t, projectRepo.AddMember(&models.ProjectMember{
		ProjectID: project.ID,
		MemberID:  member.ID,
		Role:      models.RoleMember,
	}))

	roster, err := env.service.GetMembers(project.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
}

func TestGetProject_TotalsSplitByWageType(t *testing.T) {
	env := setupProjectTestEnv(t)

	project, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "north site",
	})
	require.NoError(t, err)

	dayMember := env.createOrgMember(t, "Li Si")
	hourMember := env.createOrgMember(t, "Wang Wu")

	require.NoError(t, env.db.Create(&models.WorkRecord{
		ProjectID:        project.ID,
		MemberID:         dayMember.ID,
		WorkDate:         "2026-08-01",
		Duration:         8,
		WageTypeSnapshot: models.WageTypeDay,
	}).Error)
	require.NoError(t, env.db.Create(&models.WorkRecord{
		ProjectID:        project.ID,
		MemberID:         hourMember.ID,
		WorkDate:         "2026-08-01",
		Duration:         5,
		WageTypeSnapshot: models.WageTypeHour,
	}).Error)

	detail, err := env.service.GetProject(project.ID, env.owner.ID)
	require.NoError(t, err)
	require.Equal(t, 8.0, detail.TotalDaysHours)
	require.Equal(t, 5.0, detail.TotalHours)
	require.Equal(t, models.RoleOwner, detail.Role)
}

func TestGetProject_RolePrefersProjectOwner(t *testing.T) {
	env := setupProjectTestEnv(t)

	project, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "north site",
	})
	require.NoError(t, err)

	leadUser := models.User{Phone: "13900139000", Name: "Li Si"}
	require.NoError(t, env.db.Create(&leadUser).Error)
	lead := models.OrganizationMember{
		OrganizationID: env.org.ID,
		UserID:         leadUser.ID,
		Name:           "Li Si",
		Role:           models.RoleMember,
		WageType:       models.WageTypeDay,
		Status:         models.MemberStatusActive,
	}
	require.NoError(t, env.db.Create(&lead).Error)

	require.NoError(t, env.db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		MemberID:  lead.ID,
		Role:      models.RoleOwner,
	}).Error)

	detail, err := env.service.GetProject(project.ID, leadUser.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, detail.Role)
}

func TestProjectFlows(t *testing.T) {
	env := setupProjectTestEnv(t)

	project, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "north site",
	})
	require.NoError(t, err)

	_, err = env.service.AddFlow(project.ID, AddFlowInput{
		Type:     models.FlowTypeExpense,
		Category: "materials",
		Amount:   decimal.NewFromInt(1200),
		Date:     "2026-08-01",
	})
	require.NoError(t, err)

	_, err = env.service.AddFlow(project.ID, AddFlowInput{
		Type:   models.FlowTypeIncome,
		Amount: decimal.NewFromInt(5000),
		Date:   "2026-08-10",
	})
	require.NoError(t, err)

	flows, err := env.service.GetFlows(project.ID)
	require.NoError(t, err)
	require.Len(t, flows, 2)
	require.Equal(t, "2026-08-10", flows[0].FlowDate)
	require.Equal(t, models.FlowTypeIncome, flows[0].Type)
}

func TestDeleteProject_RemovesRosterAndFlows(t *testing.T) {
	env := setupProjectTestEnv(t)

	project, err := env.service.CreateProject(CreateProjectInput{
		OrgID: env.org.ID,
		Name:  "north site",
	})
	require.NoError(t, err)

	member := env.createOrgMember(t, "Li Si")
	require.NoError(t, env.service.AddMembers(project.ID, []uint64{member.ID}))

	_, err = env.service.AddFlow(project.ID, AddFlowInput{
		Type:   models.FlowTypeExpense,
		Amount: decimal.NewFromInt(100),
		Date:   "2026-08-01",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteProject(project.ID))

	_, err = env.service.GetProject(project.ID, env.owner.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	var rosterCount int64
	require.NoError(t, env.db.Model(&models.ProjectMember{}).
		Where("project_id = ?", project.ID).Count(&rosterCount).Error)
	require.EqualValues(t, 0, rosterCount)

	var flowCount int64
	require.NoError(t, env.db.Model(&models.ProjectFlow{}).
		Where("project_id = ?", project.ID).Count(&flowCount).Error)
	require.EqualValues(t, 0, flowCount)
}

package repository

import (
	"github.com/workrec/workhour-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithDefaultOrganization creates a user, their default organization,
	// and the owner membership within a single transaction.
	CreateWithDefaultOrganization(user *models.User, org *models.Organization, member *models.OrganizationMember) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByPhone finds a user by phone number
	FindByPhone(phone string) (*models.User, error)

	// UpdateCurrentOrg sets the user's current organization
	UpdateCurrentOrg(userID, orgID uint64) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// CreateWithOwner creates an organization and its owner membership atomically
	CreateWithOwner(org *models.Organization, owner *models.OrganizationMember) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByIDWithDetails loads an organization with members and projects
	FindByIDWithDetails(id uint64) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// Delete deletes an organization with its memberships and projects
	Delete(id uint64) error

	// ListMembershipsByUser lists a user's active memberships with orgs preloaded
	ListMembershipsByUser(userID uint64) ([]models.OrganizationMember, error)

	// FindMember finds a user's active membership in an organization
	FindMember(organizationID, userID uint64) (*models.OrganizationMember, error)

	// DeleteMembership removes a single membership row
	DeleteMembership(id uint64) error

	// TransferOwnership reassigns the org owner and swaps the two membership
	// roles in one transaction.
	TransferOwnership(org *models.Organization, newOwnerUserID, oldOwnerMemberID, newOwnerMemberID uint64) error
}

// MemberRepository defines the interface for organization membership data access
type MemberRepository interface {
	// Create creates a membership row
	Create(member *models.OrganizationMember) error

	// CreateWithUser creates the linked user (when user.ID is zero) and the
	// membership within a single transaction.
	CreateWithUser(user *models.User, member *models.OrganizationMember) error

	// FindByID finds a membership with its user preloaded
	FindByID(id uint64) (*models.OrganizationMember, error)

	// ListByOrg lists active memberships of an organization with users preloaded
	ListByOrg(organizationID uint64) ([]models.OrganizationMember, error)

	// FindActive finds a user's active membership in an organization
	FindActive(organizationID, userID uint64) (*models.OrganizationMember, error)

	// FindByIDs loads memberships by primary key
	FindByIDs(ids []uint64) ([]models.OrganizationMember, error)

	// Update saves a membership
	Update(member *models.OrganizationMember) error

	// Delete removes a membership row. Work records and project memberships of
	// the member are deliberately retained.
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListByOrg lists projects of an organization with members and records preloaded
	ListByOrg(organizationID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project with its members and flows
	Delete(id uint64) error

	// AddMember adds a member to the project
	AddMember(pm *models.ProjectMember) error

	// FindMember finds a specific project member
	FindMember(projectID, memberID uint64) (*models.ProjectMember, error)

	// ListMembers lists the project roster with member users preloaded
	ListMembers(projectID uint64) ([]models.ProjectMember, error)

	// CreateFlow inserts a ledger entry
	CreateFlow(flow *models.ProjectFlow) error

	// ListFlows lists ledger entries ordered by date descending
	ListFlows(projectID uint64) ([]models.ProjectFlow, error)
}

// WorkRecordFilter holds filtering options for listing work records
type WorkRecordFilter struct {
	ProjectID uint64
	Date      string
	Month     string
	Page      int
	PageSize  int
}

// StatsScope bounds an aggregation query. Exactly one of ProjectID or OrgID
// is set; Start/End form an inclusive date range when present.
type StatsScope struct {
	ProjectID *uint64
	OrgID     *uint64
	Start     string
	End       string
	MemberIDs []uint64
}

// MemberDuration is one aggregation row of a stats query.
type MemberDuration struct {
	MemberID      uint64
	TotalDuration float64
	RecordCount   int64
}

// WorkRecordRepository defines the interface for work record data access
type WorkRecordRepository interface {
	// Create creates a work record
	Create(record *models.WorkRecord) error

	// CreateBatch inserts records within a single transaction
	CreateBatch(records []models.WorkRecord) error

	// FindByID finds a work record by ID
	FindByID(id uint64) (*models.WorkRecord, error)

	// List retrieves records of a project with date/month filtering and pagination
	List(filter WorkRecordFilter) ([]models.WorkRecord, int64, error)

	// Update saves a work record
	Update(record *models.WorkRecord) error

	// Delete soft deletes a work record
	Delete(id uint64) error

	// ApplySummaryDelta upserts the daily summary bucket, adjusting
	// total_duration and record_count by the signed deltas.
	ApplySummaryDelta(orgID, projectID, memberID uint64, date string, durationDelta float64, countDelta int) error

	// FindSummary loads one summary bucket
	FindSummary(orgID, projectID, memberID uint64, date string) (*models.WorkSummaryDaily, error)

	// SummaryStats aggregates per-member totals from the summary table
	SummaryStats(scope StatsScope) ([]MemberDuration, error)

	// RecordStats aggregates per-member totals from the raw records
	RecordStats(scope StatsScope) ([]MemberDuration, error)
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates an invitation
	Create(invitation *models.Invitation) error

	// FindByCode finds an invitation by code with org and inviter preloaded
	FindByCode(code string) (*models.Invitation, error)
}

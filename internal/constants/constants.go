package constants

// Context keys populated by the auth middleware.
const (
	ContextKeyUserID = "user_id"
	ContextKeyOrgID  = "org_id"
	ContextKeyPhone  = "phone"
)

// Pagination bounds for list endpoints.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	MinPasswordLength = 6

	// TokenValidityHours is the JWT lifetime. Org switches require an explicit
	// token reissue; role changes inside that window are not reflected until
	// the next reissue.
	TokenValidityHours = 24 * 7

	// InvitationValidityDays is how long an invite code stays usable.
	InvitationValidityDays = 7

	// DefaultOrganizationName is the name of the org created for new users.
	DefaultOrganizationName = "default organization"
)

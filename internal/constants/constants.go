package constants

// Session
const (
	SessionCookieName = "workhive_session"
	ContextKeyUserID  = "user_id"
)

// Context keys populated by the organization/task access middleware
const (
	ContextKeyOrganization       = "organization"
	ContextKeyOrganizationMember = "organization_member"
	ContextKeyTask               = "task"
)

// Auth
const (
	MinPasswordLength = 8
)

// Organization PIN
const (
	PinLength = 4
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AI
const (
	MaxAIGeneratedTasks = 20
)

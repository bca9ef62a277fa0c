package constants

// Session
const (
	SessionCookieName = "toodles_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DueTimeLayout is the wire and storage format for a task's due time of day.
const DueTimeLayout = "15:04"

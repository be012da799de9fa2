package constants

import "time"

// Session
const (
	SessionCookieName = "property_session"
	SessionMaxAge     = 86400 * 7

	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Accounts
const (
	MinPasswordLength = 6
)

// Connection codes
const (
	ConnectionCodeLength   = 6
	ConnectionCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ConnectionCodeTTL      = 7 * 24 * time.Hour

	// Attempts to find an unused code before giving up.
	MaxCodeGenerationAttempts = 5
)

// Tenancy
const (
	DefaultRentPeriod    = 30 * 24 * time.Hour
	DefaultPropertyType  = "apartment"
	DefaultTotalUnits    = 1
	DefaultPaymentMethod = "cash"
	DefaultReminderType  = "general"
)

// Dashboards
const (
	RecentMaintenanceLimit = 5
	RecentTenantsLimit     = 5
)

// Pagination
const (
	MinPage         = 1
	MaxPage         = 100000
	DefaultPageSize = 20
	MaxPageSize     = 100
)

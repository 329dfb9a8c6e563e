package constants

import "time"

// Context keys
const (
	ContextKeyUserID      = "user_id"
	ContextKeySessionUser = "session_user"
)

// SessionHeader carries the opaque session token on every authenticated request.
const SessionHeader = "X-Session-ID"

// DefaultSessionTTL is used when SESSION_TTL is not configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Auth
const (
	MinPasswordLength = 8
	SessionTokenBytes = 32
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// LeaderboardLimit bounds the number of ranked entries returned.
const LeaderboardLimit = 20

// KgPerLb is the fixed pounds to kilograms factor.
const KgPerLb = 0.453592

// MaxWeightKg bounds every stored body weight.
const MaxWeightKg = 700

// Media
const (
	MaxMediaSizeBytes = 25 << 20
	MediaFormField    = "file"
)

// DateLayout is the wire and storage format for calendar days.
const DateLayout = "2006-01-02"

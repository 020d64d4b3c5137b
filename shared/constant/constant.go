package constant

import "time"

const (
	Empty   = ""
	Asterix = "*"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

// Roles, as stored in users.role and carried in access tokens.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// Actors written to created_by/modified_by when no user is behind a change.
const (
	ContextGuest  = "guest"
	ContextSystem = "system"
)

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	DateFormat  = time.RFC3339
	DayFormat   = time.DateOnly
	ClockFormat = "15:04"
)

const (
	RequestParamID      = "id"
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamDate    = "date"
	RequestParamFrom    = "from"
	RequestParamTo      = "to"
	RequestParamHours   = "hours"
	RequestParamPackage = "package_id"

	RequestMaxMemory = 10 << 20
)

const (
	DefaultValuePage   = 1
	DefaultValueLimit  = 10
	DefaultValueSortBy = "created_at"
	MaxValueLimit      = 100
)

const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// SQLSTATE codes that mean another transaction won the race.
const (
	PqErrorCodeExclusionViolation   = "23P01"
	PqErrorCodeSerializationFailure = "40001"
	PqErrorCodeDeadlockDetected     = "40P01"
)

const MinutesToSeconds = 60

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
)

const ContentTypeJSON = "application/json"

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert messages
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: repeated failed authentication"
	SecurityAlertHighRate   = "SECURITY ALERT: blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgBadTrustedProxy  = "Ignoring invalid trusted proxy"
)

// Log field keys
const (
	LogFieldAddr       = "addr"
	LogFieldIP         = "ip"
	LogFieldCount      = "count"
	LogFieldWindow     = "window"
	LogFieldMethod     = "method"
	LogFieldPath       = "path"
	LogFieldRemoteAddr = "remote_addr"
	LogFieldHasKey     = "has_key"
	LogFieldStatus     = "status"
	LogFieldDurationMS = "duration_ms"
	LogFieldHeaders    = "headers"
	LogFieldUserAgent  = "user_agent"
	LogFieldLength     = "content_length"
	LogFieldProxy      = "proxy"
	LogFieldRoute      = "route"
	LogFieldBytes      = "bytes"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRequestID      = "X-Request-ID"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCacheControl   = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
	HeaderValueNoStore              = "no-store"
)

// Rate and alert thresholds per client IP
const (
	DefaultActivityWindow   = 5 * time.Minute
	DefaultMaxRequests      = 1000
	DefaultFailedAuthAlert  = 5
	highRateLogEvery        = 100
	maxIncomingRequestIDLen = 64
)

// Server timeouts
const (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 15 * time.Second
	WriteTimeout      = 30 * time.Second
	IdleTimeout       = 60 * time.Second
)

// PublicPaths bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// quietPaths are probed often and are not request-logged
var quietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"

package constants

import (
	"time"
)

// API configuration
const (
	// DefaultBaseURL - the backend used when no override is configured.
	// Override order: --api-url flag > CANVAS_API_BASE_URL env > config file.
	DefaultBaseURL = "https://dev-api.aiscreen.io"

	// BaseURLEnvVar - the single environment variable that overrides the base URL
	BaseURLEnvVar = "CANVAS_API_BASE_URL"
)

// API endpoints
const (
	// LoginEndpoint - credential exchange, returns access_token or token
	LoginEndpoint = "/api/v1/login"

	// TemplatesEndpoint - canvas template collection
	TemplatesEndpoint = "/api/v1/canvas_templates"

	// TemplateTagsEndpoint - tag listing (non-critical, failures degrade to empty)
	TemplateTagsEndpoint = "/api/v1/canvas_templates/tags/list"
)

// Session
const (
	// MinTokenLength - tokens at or below this length fail the local sanity
	// check in IsAuthenticated. This is a heuristic, not a server-side
	// verification; see session.Manager.ValidateToken.
	MinTokenLength = 10

	// TokenFileName - name of the token file under the config directory
	TokenFileName = "token"
)

// HTTP client
const (
	// RequestTimeout - per-request timeout for API calls
	RequestTimeout = 10 * time.Second

	// RetryMax - maximum retries for transient transport errors
	RetryMax = 3

	// RetryWaitMin - initial delay before first retry
	RetryWaitMin = 500 * time.Millisecond

	// RetryWaitMax - maximum delay between retries
	RetryWaitMax = 5 * time.Second

	// HTTPIdleConnTimeout - how long to keep idle connections open
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPTLSHandshakeTimeout - timeout for TLS handshake
	HTTPTLSHandshakeTimeout = 10 * time.Second
)

// Pagination defaults
const (
	// DefaultPage - first page number
	DefaultPage = 1

	// DefaultPageLimit - templates per page when the backend omits per_page
	DefaultPageLimit = 12
)

// Template form validation bounds
const (
	// NameMinLength - minimum template name length
	NameMinLength = 3

	// NameMaxLength - maximum template name length
	NameMaxLength = 100

	// DescriptionMaxLength - maximum description length
	DescriptionMaxLength = 500

	// DimensionMax - maximum width/height in pixels
	DimensionMax = 10000

	// MaxTags - maximum number of tags per template
	MaxTags = 10

	// TagMaxLength - maximum length of a single tag
	TagMaxLength = 50

	// PasswordMinLength - minimum login password length
	PasswordMinLength = 6

	// PreviewImageMaxSize - maximum preview image upload size (5 MB)
	PreviewImageMaxSize = 5 * 1024 * 1024
)

// Notifications
const (
	// ToastDefaultDuration - how long a toast stays visible by default
	ToastDefaultDuration = 5 * time.Second

	// DispatcherBuffer - buffer size for notification subscriber channels
	DispatcherBuffer = 64
)

// Search
const (
	// SearchDebounceInterval - delay applied to rapid repeated search input.
	// Superseded requests are not cancelled, so callers debounce instead.
	SearchDebounceInterval = 300 * time.Millisecond
)

package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 11000-11999: Request shape errors (content type, payload)
// 12000-12999: Challenge server errors
// 13000-13999: Validator errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002
	NotFound            ErrorCode = 10003
	Unauthorized        ErrorCode = 10004
	TooManyRequests     ErrorCode = 10006
	ServiceUnavailable  ErrorCode = 10007
	Timeout             ErrorCode = 10008

	// Database errors (10100-10199)
	DatabaseError  ErrorCode = 10100
	RecordNotFound ErrorCode = 10101

	// Cache errors (10200-10299)
	CacheError     ErrorCode = 10200
	CacheMiss      ErrorCode = 10201
	CacheSetFailed ErrorCode = 10202

	// Validation errors (10300-10399)
	ValidationFailed ErrorCode = 10300
	InvalidFormat    ErrorCode = 10301
	InvalidValue     ErrorCode = 10302

	// ========== Request Shape Errors (11000-11999) ==========

	UnsupportedMediaType ErrorCode = 11000
	Unprocessable        ErrorCode = 11001
	PayloadTooLarge      ErrorCode = 11002

	// ========== Challenge Server Errors (12000-12999) ==========

	// Manifests (12000-12099)
	InvalidManifest     ErrorCode = 12000
	MagicKeywordMissing ErrorCode = 12001

	// Milk bucket (12100-12199)
	NoMilkAvailable ErrorCode = 12100

	// Board game (12200-12299)
	GameOver   ErrorCode = 12200
	ColumnFull ErrorCode = 12201

	// Gifts (12300-12399)
	TokenInvalid     ErrorCode = 12300
	SignatureInvalid ErrorCode = 12301
	KeyNotConfigured ErrorCode = 12302

	// Quotes (12400-12499)
	QuoteNotFound     ErrorCode = 12400
	PageTokenUnknown  ErrorCode = 12401
	QuoteStoreFailure ErrorCode = 12402

	// Decorations (12500-12599)
	Teapot ErrorCode = 12500

	// Lookups (12600-12699)
	UpstreamFailed ErrorCode = 12600

	// ========== Validator Errors (13000-13999) ==========

	ChallengeUnsupported ErrorCode = 13000
	InvalidChallengeURL  ErrorCode = 13001
	NoChallengeSelected  ErrorCode = 13002
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	NotFound:            "Resource not found",
	Unauthorized:        "Unauthorized access",
	TooManyRequests:     "Too many requests, please try again later",
	ServiceUnavailable:  "Service temporarily unavailable",
	Timeout:             "Request timeout",

	// Database
	DatabaseError:  "Database operation failed",
	RecordNotFound: "Record not found in database",

	// Cache
	CacheError:     "Cache operation failed",
	CacheMiss:      "Cache miss",
	CacheSetFailed: "Failed to set cache",

	// Validation
	ValidationFailed: "Validation failed",
	InvalidFormat:    "Invalid format",
	InvalidValue:     "Invalid value",

	// Request shape
	UnsupportedMediaType: "Unsupported media type",
	Unprocessable:        "Unprocessable entity",
	PayloadTooLarge:      "Payload too large",

	// Manifests
	InvalidManifest:     "Invalid manifest",
	MagicKeywordMissing: "Magic keyword not provided",

	// Milk
	NoMilkAvailable: "No milk available\n",

	// Board game
	GameOver:   "Game is over",
	ColumnFull: "Column is full",

	// Gifts
	TokenInvalid:     "Invalid token",
	SignatureInvalid: "Invalid signature",
	KeyNotConfigured: "Signing key is not configured",

	// Quotes
	QuoteNotFound:     "Quote not found",
	PageTokenUnknown:  "Unknown page token",
	QuoteStoreFailure: "Quote store failure",

	// Decorations
	Teapot: "I'm a teapot",

	// Lookups
	UpstreamFailed: "Upstream lookup failed",

	// Validator
	ChallengeUnsupported: "Challenge is not supported",
	InvalidChallengeURL:  "Invalid base URL",
	NoChallengeSelected:  "No challenge selected",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// HTTPStatus returns the recommended HTTP status code for the error code
func (c ErrorCode) HTTPStatus() int {
	switch {
	case c == Success:
		return 200
	case c == Unauthorized, c == SignatureInvalid:
		return 401
	case c == NotFound, c == RecordNotFound, c == QuoteNotFound:
		return 404
	case c == Teapot:
		return 418
	case c == UpstreamFailed:
		return 502
	case c == PayloadTooLarge:
		return 413
	case c == UnsupportedMediaType:
		return 415
	case c == Unprocessable:
		return 422
	case c == TooManyRequests, c == NoMilkAvailable:
		return 429
	case c == ServiceUnavailable, c == GameOver, c == ColumnFull, c == KeyNotConfigured:
		return 503
	case c >= 10300 && c < 10400: // Validation errors
		return 400
	case c == InvalidParams, c == TokenInvalid, c == PageTokenUnknown:
		return 400
	case c == InvalidManifest, c == MagicKeywordMissing:
		return 400
	case c >= 13000 && c < 14000: // Validator errors surface as usage errors
		return 400
	default:
		return 500
	}
}

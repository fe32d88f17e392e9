package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID = "user_id"
	ContextKeyViewer = "viewer"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)

package resputil

type ErrorCode int

const (
	OK ErrorCode = 0

	// General
	InvalidRequest ErrorCode = 40001

	// Token
	TokenExpired ErrorCode = 40101
	TokenInvalid ErrorCode = 40102

	// Login
	InvalidCredentials ErrorCode = 40106

	// User is not allowed to access the resource
	UserNotAllowed ErrorCode = 40301

	// Document workflow
	DocumentNotFound ErrorCode = 40401
	// The document was finalized or handed off since the actor last read it.
	DocumentProcessed ErrorCode = 40901
	// No roster member holds the rank required for the next stage.
	NoEligibleApprover ErrorCode = 42201

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)

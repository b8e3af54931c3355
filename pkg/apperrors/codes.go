package apperrors

// ErrorCode classifies application errors.
type ErrorCode string

const (
	// System errors
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	CodeCorruptPayload     ErrorCode = "CORRUPT_PAYLOAD"

	// Business-logic errors
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
)

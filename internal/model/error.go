package model

// Standard error codes for API responses
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeStorageUnavailable   = "STORAGE_UNAVAILABLE"
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	ErrCodeTimeout              = "TIMEOUT"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a user-correctable validation error with a
// field-specific message, suitable for re-rendering a form.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrConflict             = NewDomainError(ErrCodeConflict, "A record with these values already exists")
	ErrUnsupportedMediaType = NewDomainError(ErrCodeUnsupportedMediaType, "Only JPG, PNG, and WEBP images are allowed")
	ErrPayloadTooLarge      = NewDomainError(ErrCodePayloadTooLarge, "Uploaded file exceeds the maximum allowed size")
	ErrStorageUnavailable   = NewDomainError(ErrCodeStorageUnavailable, "Image storage is currently unavailable")
	ErrAuthenticationFailed = NewDomainError(ErrCodeAuthenticationFailed, "Invalid username or password")
	ErrTimeout              = NewDomainError(ErrCodeTimeout, "The request timed out waiting for a database connection")
	ErrProductNotFound      = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrPreparationNotFound  = NewDomainError(ErrCodeNotFound, "Preparation not found")
	ErrUserNotFound         = NewDomainError(ErrCodeNotFound, "User not found")
)

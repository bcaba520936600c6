package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError represents a failed fetch against the form-collection service.
// Any required fetch that fails aborts the derived-state computation, so the
// status and form id travel with the error for the handler to surface.
type UpstreamError struct {
	FormID     string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("form %s fetch failed: status=%d body=%s", e.FormID, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("form %s fetch failed: %s", e.FormID, e.Body)
}

// Entity Not Found Errors
var (
	ErrToolNotFound     = &NotFoundError{Entity: "tool"}
	ErrFormNotFound     = &NotFoundError{Entity: "form"}
	ErrQuestionNotFound = &NotFoundError{Entity: "question"}
)

// Domain Validation Errors
var (
	ErrUnknownMaturity         = errors.New("unrecognized tool maturity variant")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
	ErrInvalidDateRange        = errors.New("invalid date range")
	ErrInvalidCategory         = errors.New("unknown submission category")
)

// Authentication Errors
var (
	ErrEmailNotCoordinator = &AuthenticationError{Message: "email not registered as a coordinator"}
	ErrEmailNotInContext   = &AuthenticationError{Message: "coordinator email not found in context"}
	ErrInvalidSessionToken = &AuthenticationError{Message: "invalid or expired session token"}
)

// Configuration Errors
var (
	ErrKoboConfigMissing     = &ConfigurationError{Message: "kobo configuration missing: KOBO_BASE_URL"}
	ErrScoringConfigMissing  = &ConfigurationError{Message: "scoring trigger endpoint is not configured"}
	ErrNotifyConfigMissing   = &ConfigurationError{Message: "notification flow endpoint is not configured"}
	ErrFeedbackConfigMissing = &ConfigurationError{Message: "feedback flow endpoint is not configured"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsUpstream checks if an error is an UpstreamError
func IsUpstream(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(formID string, statusCode int, body string) error {
	return &UpstreamError{FormID: formID, StatusCode: statusCode, Body: body}
}

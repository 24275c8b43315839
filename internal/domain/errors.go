package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"

	// AI provider errors
	ErrAIUnavailable   ErrorCode = "AI_UNAVAILABLE"
	ErrRetrieval       ErrorCode = "RETRIEVAL_ERROR"
	ErrLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
	ErrSafetyBlocked   ErrorCode = "SAFETY_BLOCKED"

	// Knowledge base errors
	ErrDocumentLoad     ErrorCode = "DOCUMENT_LOAD_ERROR"
	ErrKnowledgeLoading ErrorCode = "KNOWLEDGE_LOADING"

	// Chat specific errors
	ErrSendInProgress  ErrorCode = "SEND_IN_PROGRESS"
	ErrSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrNoActiveSession ErrorCode = "NO_ACTIVE_SESSION"

	// Assessment specific errors
	ErrResultNotFound ErrorCode = "RESULT_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err carries a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewAIUnavailableError(reason string) *DomainError {
	return NewError(ErrAIUnavailable, fmt.Sprintf("AI features are disabled: %s", reason), nil)
}

func NewRetrievalError(err error) *DomainError {
	return NewError(ErrRetrieval, "Failed to retrieve knowledge base context", err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewSafetyBlockedError(err error) *DomainError {
	return NewError(ErrSafetyBlocked, "Response was blocked by the provider's safety filter", err)
}

func NewDocumentLoadError(name string, err error) *DomainError {
	return NewError(ErrDocumentLoad, fmt.Sprintf("failed to load %s", name), err)
}

func NewKnowledgeLoadingError() *DomainError {
	return NewError(ErrKnowledgeLoading, "The knowledge base is still loading, please try again shortly", nil)
}

func NewSendInProgressError(sessionID string) *DomainError {
	return NewError(ErrSendInProgress, fmt.Sprintf("A message is already being processed for session %s", sessionID), nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(ErrSessionNotFound, fmt.Sprintf("Chat session not found with ID: %s", sessionID), nil)
}

func NewNoActiveSessionError() *DomainError {
	return NewError(ErrNoActiveSession, "There is no active chat session", nil)
}

func NewResultNotFoundError(resultID string) *DomainError {
	return NewError(ErrResultNotFound, fmt.Sprintf("Assessment result not found with ID: %s", resultID), nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field-level problem of one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}

// Package errors provides standardized error handling for the tara service.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Transport failures are absorbed with fallback data at the
	// intelligence-client boundary and never escape to callers; the code
	// exists for logging and metrics.
	ErrCodeTransportFailure ErrorCode = "TRANSPORT_FAILURE"

	ErrCodeUserInput        ErrorCode = "USER_INPUT_ERROR"
	ErrCodeVisaFreeCheck    ErrorCode = "VISA_FREE_CHECK_FAILED"
	ErrCodeWorkflowState    ErrorCode = "WORKFLOW_STATE_INVALID"
	ErrCodeWorkflowAborted  ErrorCode = "WORKFLOW_ABORTED"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeFeedFetchFailed  ErrorCode = "FEED_FETCH_FAILED"
	ErrCodeRequestInvalid   ErrorCode = "REQUEST_VALIDATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUserInputError reports a missing or invalid user selection. The
// triggering action is blocked locally; no network call is issued.
func NewUserInputError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserInput,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkflowStateError reports an operation attempted in the wrong wizard
// state.
func NewWorkflowStateError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowState,
		Message:   "Operation not valid in current workflow state",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkflowAbortedError reports a failed goal-creation attempt. Partial
// results are discarded; the wizard returns to its prior interactive state.
func NewWorkflowAbortedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowAborted,
		Message:   "Error initializing pathway",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVisaFreeCheckError reports a failed visa-free eligibility lookup.
func NewVisaFreeCheckError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVisaFreeCheck,
		Message:   "Visa-free eligibility check failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError reports a failed read or write on the local
// key-value store.
func NewStoreUnavailableError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Local store operation failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFeedFetchError reports a news source whose feed could not be
// fetched or parsed. Other sources proceed independently.
func NewFeedFetchError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFeedFetchFailed,
		Message:   "News feed fetch failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestValidationError reports an API payload that failed schema
// validation.
func NewRequestValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportFailure records an absorbed intelligence-service failure for
// logging purposes.
func NewTransportFailure(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailure,
		Message:   fmt.Sprintf("External service '%s' unreachable, using fallback data", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

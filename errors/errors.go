package errors

import (
	"fmt"
	"net/http"
)

// AppError is the error type returned by pipeline stages and handlers.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail entry.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New builds an AppError, deriving Retryable from the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- pipeline errors ---

// NoAudio is returned when the multipart upload lacks the audio field.
func NoAudio() *AppError {
	return New(ErrCodeNoAudio, "No audio file provided", http.StatusBadRequest)
}

// TranscriptionFailed is returned when the transcriber produced no text.
// cause may be nil.
func TranscriptionFailed(cause error) *AppError {
	return New(ErrCodeTranscriptionFailed, "Transcription failed or empty", http.StatusInternalServerError).WithCause(cause)
}

// NoJSON is returned when the model answer has no brace-delimited span.
func NoJSON() *AppError {
	return New(ErrCodeNoJSON, "No valid JSON found in the response.", http.StatusInternalServerError)
}

// GenerationFailed wraps any failure while producing the document.
func GenerationFailed(cause error) *AppError {
	msg := "Error occurred"
	if cause != nil {
		msg = "Error occurred: " + cause.Error()
	}
	return New(ErrCodeGenerationFailed, msg, http.StatusInternalServerError).WithCause(cause)
}

// --- generic errors ---

// InvalidInput reports a bad request field.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, fmt.Sprintf("Invalid input: %s", reason), http.StatusBadRequest)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// PayloadTooLarge reports a request body over limit bytes.
func PayloadTooLarge(limit int64) *AppError {
	return New(ErrCodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge).
		WithDetail("limit_bytes", limit)
}

// NotFound reports a missing resource.
func NotFound(resource, id string) *AppError {
	e := New(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource), http.StatusNotFound).
		WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// Timeout reports an operation that ran past its deadline.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, fmt.Sprintf("%s timed out", operation), http.StatusGatewayTimeout).
		WithDetail("operation", operation)
}

// ServiceUnavailable reports a dependency that is not ready.
func ServiceUnavailable(service string) *AppError {
	return New(ErrCodeServiceUnavailable, fmt.Sprintf("The %s is temporarily unavailable.", service), http.StatusServiceUnavailable).
		WithDetail("service", service)
}

// ExternalServiceError wraps a failure from a third-party API.
func ExternalServiceError(service string, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("The %s service returned an error.", service), http.StatusBadGateway).
		WithDetail("service", service).
		WithCause(cause)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.", http.StatusInternalServerError).WithCause(cause)
}

package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Pipeline stages.
const (
	ErrCodeNoAudio             ErrorCode = "NO_AUDIO"
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	ErrCodeNoJSON              ErrorCode = "NO_JSON"
	ErrCodeGenerationFailed    ErrorCode = "GENERATION_FAILED"
)

// Generic codes.
const (
	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrCodePayloadTooLarge    ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeExternalService    ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Codes a client may retry. The service itself never retries.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:            true,
	ErrCodeServiceUnavailable: true,
	ErrCodeExternalService:    true,
}

// IsRetryableCode returns true for codes a client may retry.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

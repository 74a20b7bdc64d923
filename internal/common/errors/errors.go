package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// Generic errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	// Airdrop errors
	ErrCodeAirdropNotFound ErrorCode = "AIRDROP_NOT_FOUND"
	ErrCodeTaskNotFound    ErrorCode = "TASK_NOT_FOUND"
	ErrCodeNotOwner        ErrorCode = "NOT_OWNER"

	// Import/export errors
	ErrCodeHeaderMismatch ErrorCode = "HEADER_MISMATCH"
	ErrCodeSheetsAPI      ErrorCode = "SHEETS_API_ERROR"

	// External collaborator errors
	ErrCodeAIAPI       ErrorCode = "AI_API_ERROR"
	ErrCodeExternalAPI ErrorCode = "EXTERNAL_API_ERROR"

	// Storage errors
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	ErrCodeCache   ErrorCode = "CACHE_ERROR"
)

// AppError is the typed application error carried up to the HTTP layer.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Stack     []string               `json:"stack,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the error is any kind of "not found".
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound ||
		e.Code == ErrCodeAirdropNotFound ||
		e.Code == ErrCodeTaskNotFound
}

// IsValidation reports whether the error came from input validation.
func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest || e.Code == ErrCodeHeaderMismatch
}

// IsExternal reports whether the error originated in an external collaborator.
func (e *AppError) IsExternal() bool {
	return e.Code == ErrCodeSheetsAPI || e.Code == ErrCodeAIAPI || e.Code == ErrCodeExternalAPI
}

// WithDetail attaches a key/value to the error payload.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRequestID stamps the request id onto the error.
func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with formatting.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

// NewValidationError reports a failed field validation.
func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// NewAirdropNotFoundError reports a missing airdrop record.
func NewAirdropNotFoundError(airdropID string) *AppError {
	return New(ErrCodeAirdropNotFound, fmt.Sprintf("Airdrop not found: %s", airdropID)).
		WithDetail("airdrop_id", airdropID)
}

// NewTaskNotFoundError reports a missing task within an airdrop.
func NewTaskNotFoundError(airdropID, taskID string) *AppError {
	return New(ErrCodeTaskNotFound, fmt.Sprintf("Task not found: %s", taskID)).
		WithDetail("airdrop_id", airdropID).
		WithDetail("task_id", taskID)
}

// NewUnauthorizedError reports a failed authentication.
func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

// NewForbiddenError reports an access violation.
func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s", reason)).
		WithDetail("reason", reason)
}

// NewStorageError reports a failed repository operation.
func NewStorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorage, fmt.Sprintf("Storage operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewSheetsAPIError reports a failed Google Sheets call.
func NewSheetsAPIError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeSheetsAPI, fmt.Sprintf("Sheets API operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewAIAPIError reports a failed model-provider call.
func NewAIAPIError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeAIAPI, fmt.Sprintf("AI provider operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewExternalAPIError reports any other failed external call.
func NewExternalAPIError(service string, err error) *AppError {
	return Wrap(err, ErrCodeExternalAPI, fmt.Sprintf("External API call failed: %s", service)).
		WithDetail("service", service)
}

// AsAppError extracts an AppError from err or anywhere in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified library error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Contract indicates the error reports a caller bug.
	Contract bool `json:"contract"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic contract detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Contract: IsContractCode(code),
	}
}

// --- Common Error Constructors ---

// ShapeMismatch creates a new AppError for an input with too few elements.
func ShapeMismatch(op string, want, got int) *AppError {
	return &AppError{
		Code: ErrCodeShapeMismatch, Message: fmt.Sprintf("%s needs %d elements, got %d", op, want, got),
		Contract: true,
		Details:  map[string]any{"operation": op, "want": want, "got": got},
	}
}

// ArityMismatch creates a new AppError for a call with an unsupported argument count.
func ArityMismatch(op string, got int, allowed ...int) *AppError {
	return &AppError{
		Code: ErrCodeArityMismatch, Message: fmt.Sprintf("%s called with %d arguments (allowed: %v)", op, got, allowed),
		Contract: true,
		Details:  map[string]any{"operation": op, "got": got, "allowed": allowed},
	}
}

// TypeMismatch creates a new AppError for a value of an unexpected type.
func TypeMismatch(op string, want string, got any) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("%s expects %s, got %T", op, want, got),
		Contract: true,
		Details:  map[string]any{"operation": op, "want": want, "got": fmt.Sprintf("%T", got)},
	}
}

// NotIterable creates a new AppError for a value that is not a sequence.
func NotIterable(op string, got any) *AppError {
	return &AppError{
		Code: ErrCodeNotIterable, Message: fmt.Sprintf("%s cannot iterate over %T", op, got),
		Contract: true,
		Details:  map[string]any{"operation": op, "got": fmt.Sprintf("%T", got)},
	}
}

// InvalidStage creates a new AppError for an unusable pipeline stage.
func InvalidStage(op string, index int) *AppError {
	return &AppError{
		Code: ErrCodeInvalidStage, Message: fmt.Sprintf("%s: stage %d is nil", op, index),
		Contract: true,
		Details:  map[string]any{"operation": op, "index": index},
	}
}

// EmptyInput creates a new AppError for an aggregate over no values.
func EmptyInput(op string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyInput, Message: fmt.Sprintf("%s of an empty sequence is undefined", op),
		Details: map[string]any{"operation": op},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
	}
}

// InvalidConfig creates a new AppError for a configuration that failed to load or validate.
func InvalidConfig(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: reason,
	}
}

// Internal creates a new AppError wrapping an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "internal error",
		Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError carrying code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

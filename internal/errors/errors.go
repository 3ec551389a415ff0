package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is a user-facing failure with a stable machine-readable code
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError without a cause
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap adds context to err, keeping the code of the nearest AppError in
// the chain or INTERNAL_ERROR when there is none
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: GetCode(err), Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode replaces the code of err, wrapping plain errors
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{Code: code, Message: appErr.Message, Cause: appErr.Cause}
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

// As returns the nearest AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// GetCode returns the code of the nearest AppError in err's chain
func GetCode(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternalError
}

const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeFileRead        = "FILE_READ"
	CodeFileTooLarge    = "FILE_TOO_LARGE"
	CodeParseError      = "PARSE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// FileRead reports an unreadable upload stream.
func FileRead(cause error) *AppError {
	return &AppError{Code: CodeFileRead, Message: "Failed to read file", Cause: cause}
}

// FileTooLarge reports an upload over the size cap.
func FileTooLarge(limit int64) *AppError {
	return New(CodeFileTooLarge, fmt.Sprintf("File size too large. Please upload a file smaller than %dMB", limit/(1024*1024)))
}

// ParseFailure wraps every decode or validation failure of an upload.
func ParseFailure(cause error) *AppError {
	return &AppError{Code: CodeParseError, Message: "Failed to parse Excel file", Cause: cause}
}

// ValidationError reports a well-formed request the data cannot satisfy,
// such as an axis not allowed for the chart type.
func ValidationError(cause error) *AppError {
	return &AppError{Code: CodeValidationError, Message: "Invalid chart selection", Cause: cause}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// InvalidInput reports a request that could not be read at all.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

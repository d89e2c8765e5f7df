package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"
	ErrManifestLoad   ErrorCode = "MANIFEST_LOAD"
	ErrUnknownBackend ErrorCode = "UNKNOWN_BACKEND"

	// Command execution errors
	ErrCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCommandStart    ErrorCode = "COMMAND_START"
	ErrNonZeroExit     ErrorCode = "NON_ZERO_EXIT"

	// Package state errors
	ErrSystemUpdate        ErrorCode = "SYSTEM_UPDATE"
	ErrBaselineInstall     ErrorCode = "BASELINE_INSTALL"
	ErrAuditFailure        ErrorCode = "AUDIT_FAILURE"
	ErrVerificationFailure ErrorCode = "VERIFICATION_FAILURE"
	ErrPackagesUnavailable ErrorCode = "PACKAGES_UNAVAILABLE"
	ErrPackagesMissing     ErrorCode = "PACKAGES_MISSING"

	// FileSystem errors
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileAccess ErrorCode = "FILE_ACCESS"

	// Pipeline errors
	ErrPhaseTransition ErrorCode = "PHASE_TRANSITION"
)

// Detail keys shared by producers and consumers of ProvisionError details
const (
	DetailCommand    = "command"
	DetailExitStatus = "exit_status"
	DetailStderr     = "stderr"
	DetailPath       = "path"
	DetailPackages   = "packages"
	DetailPhase      = "phase"
)

// ProvisionError represents a structured error with code and details
type ProvisionError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ProvisionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ProvisionError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ProvisionError) Is(target error) bool {
	var targetErr *ProvisionError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ProvisionError with the given code and message
func New(code ErrorCode, message string) *ProvisionError {
	return &ProvisionError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ProvisionError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ProvisionError {
	return &ProvisionError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ProvisionError.
// Returns nil when err is nil; callers must only assign the result to an
// error variable after checking err themselves.
func Wrap(err error, code ErrorCode, message string) *ProvisionError {
	if err == nil {
		return nil
	}
	return &ProvisionError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ProvisionError {
	if err == nil {
		return nil
	}
	return &ProvisionError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ProvisionError) WithDetail(key string, value interface{}) *ProvisionError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ProvisionError) WithDetails(details map[string]interface{}) *ProvisionError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var provErr *ProvisionError
		if !errors.As(err, &provErr) {
			return false
		}
		if provErr.Code == code {
			return true
		}
		err = provErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a ProvisionError
func GetErrorCode(err error) ErrorCode {
	var provErr *ProvisionError
	if errors.As(err, &provErr) {
		return provErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ProvisionError
func GetErrorDetails(err error) map[string]interface{} {
	var provErr *ProvisionError
	if errors.As(err, &provErr) {
		return provErr.Details
	}
	return nil
}

// GetDetail looks up a detail key through the whole error chain, outermost first
func GetDetail(err error, key string) (interface{}, bool) {
	for err != nil {
		var provErr *ProvisionError
		if !errors.As(err, &provErr) {
			return nil, false
		}
		if v, ok := provErr.Details[key]; ok {
			return v, true
		}
		err = provErr.Wrapped
	}
	return nil, false
}

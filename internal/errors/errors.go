// Package errors provides typed errors for Encrypty submissions.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when the backend rejects a request without saying why.
const FallbackMessage = "An error occurred"

// Sentinel errors for common error conditions.
// Use errors.Is(err, errors.ErrNoFiles) to check for specific errors.
var (
	// Input validation errors
	ErrNoFiles        = errors.New("no files selected")
	ErrEmptyDirectory = errors.New("directory path is empty")
	ErrInvalidAction  = errors.New("invalid action")

	// Submission errors
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// Backend errors
	ErrFileNotFound = errors.New("file not found")
	ErrNotJSON      = errors.New("response is not JSON")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError represents an input validation error.
// It short-circuits a submission before any network call.
type ValidationError struct {
	Field   string // Field name that failed validation: "files", "directory", "action"
	Message string // Human-readable message shown to the user
	Err     error  // Sentinel describing the failure, may be nil
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// NetworkError represents a transport-level failure: connection refused,
// reset, a cancelled request or a response body that could not be read as JSON.
type NetworkError struct {
	Op  string // Operation: "encrypt", "process-directory", "download"
	Err error  // Underlying error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: request failed", e.Op)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// BackendError represents a non-2xx response from the backend.
type BackendError struct {
	Status  int    // HTTP status code
	Message string // Server-supplied error string, may be empty
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Text())
}

// Text returns the server message or FallbackMessage when there was none.
func (e *BackendError) Text() string {
	if e.Message == "" {
		return FallbackMessage
	}
	return e.Message
}

// NewBackendError creates a new BackendError.
func NewBackendError(status int, message string) *BackendError {
	return &BackendError{Status: status, Message: message}
}

// FileError represents an error during local file operations.
type FileError struct {
	Op   string // Operation: "open", "stat", "create", "write"
	Path string // File path
	Err  error  // Underlying error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// UserMessage maps an error to the text shown in the error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Text()
	}

	var networkErr *NetworkError
	if errors.As(err, &networkErr) {
		if networkErr.Err != nil {
			return "Network error: " + networkErr.Err.Error()
		}
		return "Network error: request failed"
	}

	return err.Error()
}

// Is checks if target matches any of our sentinel errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}

// IsBackend reports whether err is a BackendError.
func IsBackend(err error) bool {
	var b *BackendError
	return errors.As(err, &b)
}

// Kind names the class of a submission failure for log fields:
// "validation", "network", "backend", "busy" or "other".
func Kind(err error) string {
	switch {
	case IsValidation(err):
		return "validation"
	case IsNetwork(err):
		return "network"
	case IsBackend(err):
		return "backend"
	case errors.Is(err, ErrSubmissionInFlight):
		return "busy"
	default:
		return "other"
	}
}

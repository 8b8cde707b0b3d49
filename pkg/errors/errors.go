// Package errors provides custom error types for the fontmap system.
// These errors let callers tell a bad repository payload apart from a failed
// download or a half-finished uninstall, so the CLI can report a precise
// per-font outcome.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join forward to the standard library so callers only need one import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the fontmap system
var (
	// ErrNotFound indicates that a requested family or repository was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNetwork indicates that a transfer failed
	ErrNetwork = errors.New("network failure")

	// ErrParse indicates a malformed payload or file
	ErrParse = errors.New("parse failure")

	// ErrDateParse indicates a malformed last-modified date
	ErrDateParse = errors.New("malformed date")

	// ErrIO indicates a local file operation failed
	ErrIO = errors.New("io failure")

	// ErrPartialUninstall indicates that some files of a font could not be removed
	ErrPartialUninstall = errors.New("partial uninstall")

	// ErrNoRepository indicates that a family has no repository to install from
	ErrNoRepository = errors.New("no repository available")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NetworkError represents a failed transfer from a repository or download URL.
type NetworkError struct {
	Repository string // repository name, empty for font file downloads
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	target := e.URL
	if e.Repository != "" {
		target = e.Repository
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error from %s (status %d): %s", target, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("network error from %s: %s", target, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(repository, url string, statusCode int, message string, err error) *NetworkError {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &NetworkError{
		Repository: repository,
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats.
// A ParseError with Format "json" coming out of a repository fetch is what
// the loader treats as a catalog parse failure.
type ParseError struct {
	Format  string // "json", "toml", "font"
	File    string // file name, repository name or URL
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// DateParseError reports a repository entry whose last-modified date is not YYYY-MM-DD.
type DateParseError struct {
	Repository string
	Family     string
	Value      string
	Err        error
}

// Error implements the error interface
func (e *DateParseError) Error() string {
	return fmt.Sprintf("repository %s: family %s: date %q not in YYYY-MM-DD", e.Repository, e.Family, e.Value)
}

// Unwrap implements errors.Unwrap
func (e *DateParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "stat"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// InstallError reports a failed install of one family.
type InstallError struct {
	Family     string
	Repository string
	Location   string
	Written    []string // files written before the failure, not rolled back
	Err        error
}

// Error implements the error interface
func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s from %s to %s: %v", e.Family, e.Repository, e.Location, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *InstallError) Unwrap() error {
	return e.Err
}

// UninstallError reports an uninstall that stopped before every file was removed.
type UninstallError struct {
	Family    string
	Location  string
	Removed   []string
	Remaining []string
	Err       error
}

// Error implements the error interface
func (e *UninstallError) Error() string {
	return fmt.Sprintf("uninstall %s from %s: %d file(s) remain (%s): %v",
		e.Family, e.Location, len(e.Remaining), strings.Join(e.Remaining, ", "), e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UninstallError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *UninstallError) Is(target error) bool {
	return target == ErrPartialUninstall
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNetwork checks if an error is a transfer failure
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsParse checks if an error is a payload parse failure
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsIO checks if an error is a local file failure
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapNetwork wraps an error as a NetworkError
func WrapNetwork(repository, url string, err error) error {
	if err == nil {
		return nil
	}
	return NewNetworkError(repository, url, 0, "", err)
}

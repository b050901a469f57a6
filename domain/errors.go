package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scan pipeline
var (
	// ErrNoFiles indicates no JavaScript/TypeScript files were found
	ErrNoFiles = errors.New("no JavaScript/TypeScript files found")

	// ErrNoPaths indicates the request carried no input paths
	ErrNoPaths = errors.New("no paths specified")
)

// ErrorKind categorizes domain errors
type ErrorKind string

const (
	ErrorKindConfig ErrorKind = "config"
	ErrorKindParse  ErrorKind = "parse"
	ErrorKindIO     ErrorKind = "io"
)

// DomainError wraps an underlying error with a category and message
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error
func NewConfigError(message string, err error) *DomainError {
	return &DomainError{Kind: ErrorKindConfig, Message: message, Err: err}
}

// NewParseError creates a parse error
func NewParseError(message string, err error) *DomainError {
	return &DomainError{Kind: ErrorKindParse, Message: message, Err: err}
}

// NewIOError creates an IO error
func NewIOError(message string, err error) *DomainError {
	return &DomainError{Kind: ErrorKindIO, Message: message, Err: err}
}

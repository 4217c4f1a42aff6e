package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an error so callers can map it to behavior
// (HTTP status, retry decision) without string matching.
type ErrorKind string

const (
	ErrKindValidation   ErrorKind = "validation"
	ErrKindUnauthorized ErrorKind = "unauthorized"
	ErrKindNotFound     ErrorKind = "not_found"
	ErrKindUpstream     ErrorKind = "upstream"
	ErrKindPersistence  ErrorKind = "persistence"
)

// Error is the taxonomy error carried across the sync layer. StatusCode
// preserves the upstream HTTP status for upstream errors and the intended
// response status for the rest.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or malformed input.
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrKindValidation, StatusCode: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError reports a failed credential check.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: ErrKindUnauthorized, StatusCode: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError reports an absent user or site.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrKindNotFound, StatusCode: http.StatusNotFound, Message: message}
}

// NewUpstreamError wraps a non-2xx Webflow response. statusCode defaults to
// 500 when the upstream status is unknown.
func NewUpstreamError(statusCode int, message string, err error) *Error {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	return &Error{Kind: ErrKindUpstream, StatusCode: statusCode, Message: message, Err: err}
}

// NewPersistenceError wraps a failed repository operation.
func NewPersistenceError(message string, err error) *Error {
	return &Error{Kind: ErrKindPersistence, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.StatusCode
	}
	return http.StatusInternalServerError
}

// KindOf returns the taxonomy kind of err, or persistence for unknown errors.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ErrKindPersistence
}

package services

import (
	"errors"
	"strings"
)

type ErrorCode string

const (
	ErrorInvalid         ErrorCode = "invalid"
	ErrorNotFound        ErrorCode = "not_found"
	ErrorTooShort        ErrorCode = "too_short"
	ErrorTooLong         ErrorCode = "too_long"
	ErrorIndexOutOfRange ErrorCode = "index_out_of_range"
	ErrorExportFailed    ErrorCode = "export_failed"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewIndexError(msg string) error {
	return &ServiceError{Code: ErrorIndexOutOfRange, Message: msg}
}
func NewExportError(msg string) error { return &ServiceError{Code: ErrorExportFailed, Message: msg} }

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ValidationError carries every unmet length constraint of a rejected
// Advance. The session is left untouched; the respondent edits and retries.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.Message)
	}
	return strings.Join(msgs, "; ")
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

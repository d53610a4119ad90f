package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Detail     string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, detail string, status int) *DomainError {
	return &DomainError{Code: code, Detail: detail, HTTPStatus: status}
}

// NewMalformedRequest wraps a body-parse failure; the parse error text is
// surfaced to the caller.
func NewMalformedRequest(err error) error {
	detail := "malformed request body"
	if err != nil {
		detail = err.Error()
	}
	return &DomainError{
		Code:       "MALFORMED_REQUEST",
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewUnauthorized(detail string) error {
	return NewDomainError("UNAUTHORIZED", detail, http.StatusUnauthorized)
}

func NewNotFound() error {
	return NewDomainError("NOT_FOUND", "Not found", http.StatusNotFound)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Detail:     "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Detail:     "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

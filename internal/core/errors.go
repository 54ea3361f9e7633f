// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// ValidationError carries the aggregated, user-facing message produced by the
// domain validators: every violated rule, joined with "; ". The message is
// surfaced verbatim to the caller and must never be re-wrapped.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Message: strings.Join(violations, "; ")}
}

// NotFoundError identifies a referenced entity that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NotFoundErrorf(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// BusinessLogicError wraps a downstream store or identity-provider failure
// with a human-readable prefix identifying the operation that failed.
type BusinessLogicError struct {
	Prefix string
	Err    error
}

func (e *BusinessLogicError) Error() string {
	if e.Err == nil {
		return e.Prefix
	}
	return e.Prefix + ": " + e.Err.Error()
}

func (e *BusinessLogicError) Unwrap() error {
	return e.Err
}

func NewBusinessError(prefix string, err error) *BusinessLogicError {
	return &BusinessLogicError{Prefix: prefix, Err: err}
}

// WrapBusiness re-wraps err as a BusinessLogicError unless it already is one
// of the domain error types; ValidationError and NotFoundError travel to the
// caller unchanged so their field-specific messages stay intact.
func WrapBusiness(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var nf *NotFoundError
	var be *BusinessLogicError
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &be) {
		return err
	}
	return NewBusinessError(prefix, err)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// Package apperr defines the error kinds returned by the catalog services.
//
// Every rule violation that leaves the service layer is an *Error carrying a
// Kind, so the HTTP layer can map it to a status code with errors.As.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindReferentialIntegrity Kind = "referential_integrity"
	KindConflict             Kind = "conflict"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Validation reports a missing required field or a value outside its declared bounds.
func Validation(msg string, details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}

// NotFound reports a reference to an entity identifier that does not exist.
func NotFound(resource string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// ReferentialIntegrity reports a delete blocked by rows that still reference the target.
func ReferentialIntegrity(msg string) *Error {
	return &Error{Kind: KindReferentialIntegrity, Message: msg}
}

// Conflict reports a write that would duplicate an existing entity.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsValidation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindValidation
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

func IsReferentialIntegrity(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindReferentialIntegrity
}

func IsConflict(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindConflict
}

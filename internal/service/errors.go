// Package service provides the business logic of the CMS: administrator
// credentials, login sessions, article publishing and contact notifications.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
)

var (
	// ErrNotFound is returned when a requested article or administrator does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with a unique username or email
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials is returned by Login for any unknown user or wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated is returned when a management operation has no valid session
	ErrUnauthenticated = errors.New("authentication required")
	// ErrRotationRequired is returned while the session's administrator must change their password
	ErrRotationRequired = errors.New("password change required")
	// ErrDispatch is returned when a contact notification could not be delivered
	ErrDispatch = errors.New("notification could not be sent")
	// ErrDispatchTimeout wraps ErrDispatch when the relay did not answer in time
	ErrDispatchTimeout = fmt.Errorf("%w: timed out", ErrDispatch)
	// ErrDispatchRejected wraps ErrDispatch when the relay refused the message
	ErrDispatchRejected = fmt.Errorf("%w: rejected", ErrDispatch)
)

// ValidationError reports malformed input as a field → message map
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k].Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the underlying ozzo errors
func (e *ValidationError) Unwrap() error {
	return e.Fields
}

// Messages returns the field errors as plain strings
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		out[k] = v.Error()
	}
	return out
}

// newValidationError wraps the result of an ozzo validation. Internal rule
// errors are returned unchanged.
func newValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: validation.Errors{field: errors.New(message)}}
}

// storeError maps database sentinels onto the service taxonomy
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrDuplicate):
		return ErrConflict
	default:
		return err
	}
}

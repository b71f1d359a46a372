// Package app holds the application services and business logic.
package app

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers missing, invalid or expired tokens and bad
	// credentials. Deliberately a single generic signal.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates a resource that is absent or not owned by the
	// caller. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername indicates a registration against a taken username.
	ErrDuplicateUsername = errors.New("the username already exists")
	// ErrInvalidReference indicates a folder or tag reference that does not
	// exist or belongs to a different owner.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrNameTaken indicates a folder or tag name already in use by the owner.
	ErrNameTaken = errors.New("name already exists")
)

// reasonError carries a client-facing message on top of a sentinel cause.
type reasonError struct {
	msg   string
	cause error
}

func (e *reasonError) Error() string { return e.msg }
func (e *reasonError) Unwrap() error { return e.cause }

func wrapReason(cause error, msg string) error {
	return &reasonError{msg: msg, cause: cause}
}

// FieldError reports a rejected input field with enough detail for
// client-side correction.
type FieldError struct {
	Location string
	Message  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Validation messages kept stable for API clients.
const (
	msgMissingField  = "Missing field"
	msgUntrimmed     = "Please remove whitespace at beginning or end of field"
	msgMissingTitle  = "Missing `title` in request body"
	msgInvalidFolder = "The `folderId` is not valid"
	msgInvalidTags   = "Your `tags` are not valid"
)

// MissingField reports a required field absent from the request body.
func MissingField(location string) *FieldError {
	return &FieldError{Location: location, Message: msgMissingField}
}

func fieldTooShort(location string, min int) *FieldError {
	return &FieldError{Location: location, Message: fmt.Sprintf("Must be at least %d characters long", min)}
}

func fieldTooLong(location string, max int) *FieldError {
	return &FieldError{Location: location, Message: fmt.Sprintf("Must be at most %d characters long", max)}
}

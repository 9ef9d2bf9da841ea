package gift

import (
	"errors"
	"fmt"
)

var (
	// Validation
	ErrMissingField = errors.New("missing required field")

	// Media
	ErrMediaUploadFailed = errors.New("media upload failed")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnsupported       = errors.New("media capture unsupported")
	ErrNotAnImage        = errors.New("not an image")

	// Persistence / lookup
	ErrNotFound    = errors.New("gift not found")
	ErrNoReference = errors.New("no gift reference")
)

// ValidationError names the first required field found blank.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingField
}

// MediaError reports a failed capture or upload of one asset ("photo" or
// "voice"). The rest of the draft is unaffected.
type MediaError struct {
	Asset string
	Err   error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("%s: %v", e.Asset, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed store write. Partial is set when the
// gift record exists but its photo association did not land.
type PersistenceError struct {
	Op      string
	Partial bool
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Partial {
		return fmt.Sprintf("%s failed after gift was created: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NotFoundError is the reveal-side load failure. Err keeps the underlying
// cause (missing record, transport error, bad reference).
type NotFoundError struct {
	Ref Reference
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Ref.Preview || e.Ref.ID == "" {
		return fmt.Sprintf("%v: %v", ErrNotFound, e.Err)
	}
	return fmt.Sprintf("%v (id=%s): %v", ErrNotFound, e.Ref.ID, e.Err)
}

// Unwrap exposes both ErrNotFound and the cause to errors.Is.
func (e *NotFoundError) Unwrap() []error {
	return []error{ErrNotFound, e.Err}
}

package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedField marks a single value that could not be parsed. The
	// normalizer always recovers from it with a safe default.
	ErrMalformedField = errors.New("malformed field")

	// ErrSourceUnavailable marks a row source or rate source that could not
	// be reached or returned unreadable data.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrInvariantViolation marks a record that must not be written.
	ErrInvariantViolation = errors.New("invariant violation")
)

// FieldError describes a value the normalizer replaced with a default.
type FieldError struct {
	Row   int
	Field string
	Raw   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d: field %q: cannot parse %q", e.Row, e.Field, e.Raw)
}

func (e *FieldError) Unwrap() error { return ErrMalformedField }

// ValidationError describes why a record was rejected before reaching the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvariantViolation }

// ValidationErrors collects every problem found on one record.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msg := "invalid record"
	for i, e := range v {
		if i == 0 {
			msg += ": "
		} else {
			msg += "; "
		}

		msg += e.Error()
	}

	return msg
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}

	return errs
}

package errors

import "errors"

var (
	ErrUnknownField = errors.New("field is not declared by the form")

	ErrUnknownCategory = errors.New("unknown booking category")

	ErrSubmissionInFlight = errors.New("a submission is already being processed")

	ErrAlreadySubmitted = errors.New("booking already completed, reset the form to book again")

	ErrNotSubmitted = errors.New("no submission is in flight")

	// ErrStaleOutcome is returned for outcomes whose request ID does not match
	// the in-flight submission.
	ErrStaleOutcome = errors.New("outcome does not match the in-flight submission")

	ErrConstraintViolation = errors.New("form has constraint violations")

	ErrNotFound = errors.New("form state not found")

	// ErrVersionConflict is returned by repositories when a save lost an
	// optimistic versioning race.
	ErrVersionConflict = errors.New("form state was modified concurrently")
)

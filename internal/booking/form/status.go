package form

import (
	"time"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/pkg/model"
)

// Loading is true exactly while a submission is in flight.
func Loading(s model.Status) bool {
	return s.State == model.StateSubmitting
}

// Begin moves an idle or failed form to submitting under requestID.
func Begin(s model.Status, requestID string, now time.Time) (model.Status, error) {
	switch s.State {
	case model.StateSubmitting:
		return s, bookingerrors.ErrSubmissionInFlight
	case model.StateSucceeded:
		return s, bookingerrors.ErrAlreadySubmitted
	}
	return model.Status{
		State:     model.StateSubmitting,
		RequestID: requestID,
		UpdatedAt: now,
	}, nil
}

func Succeed(s model.Status, requestID, reference string, now time.Time) (model.Status, error) {
	if err := checkInFlight(s, requestID); err != nil {
		return s, err
	}
	return model.Status{
		State:     model.StateSucceeded,
		RequestID: requestID,
		Reference: reference,
		UpdatedAt: now,
	}, nil
}

func Fail(s model.Status, requestID, reason string, now time.Time) (model.Status, error) {
	if err := checkInFlight(s, requestID); err != nil {
		return s, err
	}
	return model.Status{
		State:     model.StateFailed,
		RequestID: requestID,
		Reason:    reason,
		UpdatedAt: now,
	}, nil
}

// Outcome applies an asynchronous result from the booking backend.
func Outcome(s model.Status, o model.SubmissionOutcome, now time.Time) (model.Status, error) {
	if o.Outcome == model.OutcomeConfirmed {
		return Succeed(s, o.RequestID, o.Reference, now)
	}
	reason := o.Reason
	if reason == "" {
		reason = "Booking was rejected"
	}
	return Fail(s, o.RequestID, reason, now)
}

func Idle(now time.Time) model.Status {
	return model.Status{State: model.StateIdle, UpdatedAt: now}
}

func checkInFlight(s model.Status, requestID string) error {
	if s.State != model.StateSubmitting {
		return bookingerrors.ErrNotSubmitted
	}
	if s.RequestID != requestID {
		return bookingerrors.ErrStaleOutcome
	}
	return nil
}

// Package form implements one visitor's booking form and the view model
// rendered from it.
package form

import (
	"errors"
	"sync"
	"time"

	apperrors "securebook/pkg/errors"
	"securebook/pkg/model"
)

const defaultFailureReason = "Booking could not be completed. Please try again."

// Checker runs the native constraint check on a draft.
type Checker interface {
	Validate(spec *model.FormSpec, draft model.Draft, today time.Time) error
}

// Form is a single session's form for one category. It is safe for
// concurrent use; the submit callback runs without holding the lock.
type Form struct {
	mu      sync.Mutex
	spec    *model.FormSpec
	checker Checker
	draft   model.Draft
	status  model.Status
	now     func() time.Time
}

func New(spec *model.FormSpec, checker Checker) *Form {
	return Restore(spec, checker, NewDraft(spec), model.Status{State: model.StateIdle})
}

// Restore rebuilds a form from persisted state.
func Restore(spec *model.FormSpec, checker Checker, draft model.Draft, status model.Status) *Form {
	if status.State == "" {
		status.State = model.StateIdle
	}
	return &Form{
		spec:    spec,
		checker: checker,
		draft:   Snapshot(spec, draft),
		status:  status,
		now:     time.Now,
	}
}

func (f *Form) Spec() *model.FormSpec {
	return f.spec
}

func (f *Form) EditField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := ApplyEdit(f.spec, f.draft, name, value)
	if err != nil {
		return err
	}
	f.draft = next
	return nil
}

// Draft returns a copy of the current values.
func (f *Form) Draft() model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Clone()
}

func (f *Form) Status() model.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Begin is the first half of a submission: it rejects a disabled submit, runs the
// constraint check and moves to submitting. The returned snapshot is what
// must be dispatched under requestID.
func (f *Form) Begin(today time.Time, requestID string) (model.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := Begin(f.status, requestID, f.now())
	if err != nil {
		return nil, err
	}
	if err := f.checker.Validate(f.spec, f.draft, today); err != nil {
		return nil, err
	}

	f.status = next
	return Snapshot(f.spec, f.draft), nil
}

// Complete records the result of dispatching requestID. A pending receipt
// keeps the form submitting until ApplyOutcome.
func (f *Form) Complete(requestID string, receipt *model.SubmissionReceipt, dispatchErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		next model.Status
		err  error
	)
	switch {
	case dispatchErr != nil:
		next, err = Fail(f.status, requestID, failureReason(dispatchErr), f.now())
	case receipt != nil && receipt.Pending:
		return checkInFlight(f.status, requestID)
	default:
		reference := requestID
		if receipt != nil && receipt.Reference != "" {
			reference = receipt.Reference
		}
		next, err = Succeed(f.status, requestID, reference, f.now())
	}
	if err != nil {
		return err
	}
	f.status = next
	return nil
}

func (f *Form) ApplyOutcome(o model.SubmissionOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := Outcome(f.status, o, f.now())
	if err != nil {
		return err
	}
	f.status = next
	return nil
}

// failureReason is the text shown in the failed status panel. Only
// AppErrors that are not internal carry a message meant for visitors.
func failureReason(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != apperrors.CodeInternal {
		return appErr.Message
	}
	return defaultFailureReason
}

package form

import (
	"errors"
	"testing"
	"time"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/pkg/model"
)

func TestStatusTransitions(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    model.Status
		apply   func(model.Status) (model.Status, error)
		want    model.SubmissionState
		wantErr error
	}{
		{
			name:  "idle to submitting",
			from:  model.Status{State: model.StateIdle},
			apply: func(s model.Status) (model.Status, error) { return Begin(s, "r1", now) },
			want:  model.StateSubmitting,
		},
		{
			name:  "zero status counts as idle",
			from:  model.Status{},
			apply: func(s model.Status) (model.Status, error) { return Begin(s, "r1", now) },
			want:  model.StateSubmitting,
		},
		{
			name:  "failed retries",
			from:  model.Status{State: model.StateFailed, RequestID: "r0", Reason: "backend down"},
			apply: func(s model.Status) (model.Status, error) { return Begin(s, "r1", now) },
			want:  model.StateSubmitting,
		},
		{
			name:    "in flight",
			from:    model.Status{State: model.StateSubmitting, RequestID: "r1"},
			apply:   func(s model.Status) (model.Status, error) { return Begin(s, "r2", now) },
			want:    model.StateSubmitting,
			wantErr: bookingerrors.ErrSubmissionInFlight,
		},
		{
			name:    "already submitted",
			from:    model.Status{State: model.StateSucceeded, RequestID: "r1"},
			apply:   func(s model.Status) (model.Status, error) { return Begin(s, "r2", now) },
			want:    model.StateSucceeded,
			wantErr: bookingerrors.ErrAlreadySubmitted,
		},
		{
			name:  "submitting to succeeded",
			from:  model.Status{State: model.StateSubmitting, RequestID: "r1"},
			apply: func(s model.Status) (model.Status, error) { return Succeed(s, "r1", "BK-1", now) },
			want:  model.StateSucceeded,
		},
		{
			name:  "submitting to failed",
			from:  model.Status{State: model.StateSubmitting, RequestID: "r1"},
			apply: func(s model.Status) (model.Status, error) { return Fail(s, "r1", "no seats", now) },
			want:  model.StateFailed,
		},
		{
			name:    "stale outcome",
			from:    model.Status{State: model.StateSubmitting, RequestID: "r2"},
			apply:   func(s model.Status) (model.Status, error) { return Succeed(s, "r1", "BK-1", now) },
			want:    model.StateSubmitting,
			wantErr: bookingerrors.ErrStaleOutcome,
		},
		{
			name:    "outcome after reset",
			from:    model.Status{State: model.StateIdle},
			apply:   func(s model.Status) (model.Status, error) { return Fail(s, "r1", "late", now) },
			want:    model.StateIdle,
			wantErr: bookingerrors.ErrNotSubmitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got.State != tt.want {
				t.Errorf("expected state %s, got %s", tt.want, got.State)
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	now := time.Now()
	inFlight := model.Status{State: model.StateSubmitting, RequestID: "r1"}

	confirmed, err := Outcome(inFlight, model.SubmissionOutcome{RequestID: "r1", Outcome: model.OutcomeConfirmed, Reference: "BK-9"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed.State != model.StateSucceeded || confirmed.Reference != "BK-9" {
		t.Errorf("unexpected status %+v", confirmed)
	}

	rejected, err := Outcome(inFlight, model.SubmissionOutcome{RequestID: "r1", Outcome: model.OutcomeRejected}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.State != model.StateFailed || rejected.Reason == "" {
		t.Errorf("expected failed status with a reason, got %+v", rejected)
	}
}

func TestLoading(t *testing.T) {
	for _, s := range []model.SubmissionState{model.StateIdle, model.StateSucceeded, model.StateFailed} {
		if Loading(model.Status{State: s}) {
			t.Errorf("Loading() true in state %s", s)
		}
	}
	if !Loading(model.Status{State: model.StateSubmitting}) {
		t.Error("Loading() false while submitting")
	}
}

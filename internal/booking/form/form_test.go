package form

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/internal/booking/validator"
	"securebook/internal/catalog"
	apperrors "securebook/pkg/errors"
	"securebook/pkg/logger"
	"securebook/pkg/model"

	"github.com/google/uuid"
)

var today = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func newTestForm(t *testing.T, c catalog.Category) *Form {
	t.Helper()
	return New(mustSpec(t, c), validator.NewFormValidator(logger.Discard()))
}

func edit(t *testing.T, f *Form, name, value string) {
	t.Helper()
	if err := f.EditField(name, value); err != nil {
		t.Fatalf("edit %s: %v", name, err)
	}
}

type dispatchFunc func(ctx context.Context, requestID string, snapshot model.Draft) (*model.SubmissionReceipt, error)

// submit runs Begin, dispatch and Complete in the order the booking service
// does, without the persistence between them.
func submit(f *Form, dispatch dispatchFunc) error {
	requestID := uuid.NewString()

	snapshot, err := f.Begin(today, requestID)
	if err != nil {
		return err
	}

	receipt, dispatchErr := dispatch(context.Background(), requestID, snapshot)
	if err := f.Complete(requestID, receipt, dispatchErr); err != nil {
		return err
	}
	return dispatchErr
}

func fillSports(t *testing.T, f *Form) {
	edit(t, f, "fullName", "Kabir Singh")
	edit(t, f, "email", "kabir@example.com")
	edit(t, f, "phone", "98765 43210")
	edit(t, f, "state", "Delhi")
	edit(t, f, "facilityName", "Jawaharlal Nehru Stadium")
	edit(t, f, "sportType", catalog.SportTypes()[0])
	edit(t, f, "bookingDate", "2026-10-21")
	edit(t, f, "visitTime", catalog.TimeSlots(catalog.Sports)[1])
	edit(t, f, "duration", catalog.Durations()[0])
	edit(t, f, "numberOfPlayers", "4")
}

func TestForm_LibraryCascadingSelect(t *testing.T) {
	f := newTestForm(t, catalog.Library)

	edit(t, f, "state", "Delhi")
	view := f.View(today, nil)
	venue := findField(t, view, "library")

	want := []string{"National Library of India", "Delhi Public Library", "Nehru Memorial Library", "American Library"}
	if len(venue.Options) != len(want) {
		t.Fatalf("expected %d venues, got %v", len(want), venue.Options)
	}
	for i := range want {
		if venue.Options[i] != want[i] {
			t.Errorf("venue %d: expected %q, got %q", i, want[i], venue.Options[i])
		}
	}
	if venue.Disabled {
		t.Error("venue select disabled with a populated region")
	}

	edit(t, f, "library", "Delhi Public Library")
	edit(t, f, "state", "Karnataka")

	if got := f.Draft()["library"]; got != "" {
		t.Errorf("expected venue reset, got %q", got)
	}
	venue = findField(t, f.View(today, nil), "library")
	if venue.Options[0] != "State Central Library Bangalore" {
		t.Errorf("expected Karnataka venues, got %v", venue.Options)
	}
}

func TestForm_VenueDisabledWithoutRegion(t *testing.T) {
	f := newTestForm(t, catalog.Park)

	venue := findField(t, f.View(today, nil), "parkName")
	if !venue.Disabled || venue.Placeholder != "Select State First" {
		t.Errorf("expected disabled venue with %q, got disabled=%v %q", "Select State First", venue.Disabled, venue.Placeholder)
	}

	edit(t, f, "state", "Goa")
	venue = findField(t, f.View(today, nil), "parkName")
	if !venue.Disabled {
		t.Error("expected venue disabled for a region with no parks")
	}
	if venue.Placeholder != "Select Park" {
		t.Errorf("unexpected placeholder %q", venue.Placeholder)
	}
}

func TestForm_SportsSubmitDispatchesSnapshot(t *testing.T) {
	f := newTestForm(t, catalog.Sports)
	fillSports(t, f)

	var calls int
	var got model.Draft
	err := submit(f, func(_ context.Context, requestID string, snapshot model.Draft) (*model.SubmissionReceipt, error) {
		calls++
		got = snapshot
		return &model.SubmissionReceipt{Reference: "BK-" + requestID[:8]}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected exactly one callback, got %d", calls)
	}
	if got["numberOfPlayers"] != "4" {
		t.Errorf("expected numberOfPlayers 4, got %q", got["numberOfPlayers"])
	}
	if len(got) != 10 {
		t.Errorf("expected 10 fields in snapshot, got %d", len(got))
	}

	status := f.Status()
	if status.State != model.StateSucceeded || status.Reference == "" {
		t.Errorf("expected succeeded with reference, got %+v", status)
	}

	err = submit(f, func(context.Context, string, model.Draft) (*model.SubmissionReceipt, error) {
		t.Fatal("callback must not run after success")
		return nil, nil
	})
	if !errors.Is(err, bookingerrors.ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestForm_ViolationsBlockCallback(t *testing.T) {
	f := newTestForm(t, catalog.Sports)
	fillSports(t, f)
	edit(t, f, "numberOfPlayers", "21")

	err := submit(f, func(context.Context, string, model.Draft) (*model.SubmissionReceipt, error) {
		t.Fatal("callback must not run with violations")
		return nil, nil
	})

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if verrs.ByField()["numberOfPlayers"] != "Value must be less than or equal to 20." {
		t.Errorf("unexpected violations %v", verrs)
	}
	if f.Status().State != model.StateIdle {
		t.Errorf("expected idle after violations, got %s", f.Status().State)
	}
}

func TestForm_SubmitRejectedWhileInFlight(t *testing.T) {
	f := newTestForm(t, catalog.Sports)
	fillSports(t, f)

	release := make(chan struct{})
	entered := make(chan struct{})
	var calls int32

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan error, 1)
	go func() {
		defer wg.Done()
		done <- submit(f, func(context.Context, string, model.Draft) (*model.SubmissionReceipt, error) {
			atomic.AddInt32(&calls, 1)
			close(entered)
			<-release
			return &model.SubmissionReceipt{Reference: "BK-1"}, nil
		})
	}()
	select {
	case <-entered:
	case err := <-done:
		t.Fatalf("submit returned before dispatch: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the dispatch to start")
	}

	view := f.View(today, nil)
	if !view.Loading || view.SubmitLabel != "Processing..." {
		t.Errorf("expected loading view, got loading=%v label=%q", view.Loading, view.SubmitLabel)
	}

	err := submit(f, func(context.Context, string, model.Draft) (*model.SubmissionReceipt, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})
	if !errors.Is(err, bookingerrors.ErrSubmissionInFlight) {
		t.Errorf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected one dispatch, got %d", n)
	}
	if f.View(today, nil).SubmitLabel != "Complete Booking" {
		t.Error("expected submit label restored after completion")
	}
}

func TestForm_FailureAllowsRetry(t *testing.T) {
	f := newTestForm(t, catalog.Sports)
	fillSports(t, f)

	backendErr := apperrors.SubmissionFailed("Facility is closed for maintenance", nil)
	err := submit(f, func(context.Context, string, model.Draft) (*model.SubmissionReceipt, error) {
		return nil, backendErr
	})
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected dispatch error, got %v", err)
	}

	status := f.Status()
	if status.State != model.StateFailed || status.Reason != "Facility is closed for maintenance" {
		t.Errorf("unexpected status %+v", status)
	}

	err = submit(f, func(context.Context, string, model.Draft) (*model.SubmissionReceipt, error) {
		return nil, errors.New("connection reset")
	})
	if err == nil {
		t.Fatal("expected dispatch error")
	}
	if f.Status().Reason != defaultFailureReason {
		t.Errorf("internal errors must not leak, got %q", f.Status().Reason)
	}
}

func TestForm_PendingReceiptAndOutcome(t *testing.T) {
	f := newTestForm(t, catalog.Sports)
	fillSports(t, f)

	var requestID string
	err := submit(f, func(_ context.Context, id string, _ model.Draft) (*model.SubmissionReceipt, error) {
		requestID = id
		return &model.SubmissionReceipt{Pending: true}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Loading(f.Status()) {
		t.Fatal("expected form to stay submitting on a pending receipt")
	}

	stale := model.SubmissionOutcome{RequestID: "other", Outcome: model.OutcomeConfirmed}
	if err := f.ApplyOutcome(stale); !errors.Is(err, bookingerrors.ErrStaleOutcome) {
		t.Errorf("expected ErrStaleOutcome, got %v", err)
	}

	outcome := model.SubmissionOutcome{RequestID: requestID, Outcome: model.OutcomeConfirmed, Reference: "BK-77"}
	if err := f.ApplyOutcome(outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := f.Status(); s.State != model.StateSucceeded || s.Reference != "BK-77" {
		t.Errorf("unexpected status %+v", s)
	}
}

func TestView_Attributes(t *testing.T) {
	f := newTestForm(t, catalog.Museum)
	view := f.View(today, map[string]string{"email": "Please enter an email address."})

	date := findField(t, view, "bookingDate")
	if date.Min != "2026-10-14" || date.Kind != "date" {
		t.Errorf("unexpected date control %+v", date)
	}

	count := findField(t, view, "numberOfTickets")
	if count.Min != "1" || count.Max != "50" || count.Value != "1" {
		t.Errorf("unexpected count control %+v", count)
	}

	email := findField(t, view, "email")
	if email.Error != "Please enter an email address." {
		t.Errorf("expected violation on email, got %q", email.Error)
	}

	needs := findField(t, view, "specialNeeds")
	if needs.Required || !needs.IsTextarea() {
		t.Errorf("unexpected optional control %+v", needs)
	}

	if view.Loading || view.SubmitLabel != "Complete Booking" {
		t.Errorf("unexpected idle view loading=%v label=%q", view.Loading, view.SubmitLabel)
	}
}

func findField(t *testing.T, view View, name string) FieldView {
	t.Helper()
	for _, f := range view.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %s not in view", name)
	return FieldView{}
}

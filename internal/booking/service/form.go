package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/internal/booking/form"
	"securebook/internal/booking/repository"
	"securebook/internal/booking/submitter"
	"securebook/internal/booking/validator"
	"securebook/internal/catalog"
	"securebook/pkg/config"
	apperrors "securebook/pkg/errors"
	"securebook/pkg/model"

	"github.com/google/uuid"
)

// maxSaveAttempts bounds the optimistic retry loop of a single mutation.
const maxSaveAttempts = 5

type FormService interface {
	Open(ctx context.Context, sessionID, category string) (*form.View, error)
	EditField(ctx context.Context, sessionID, category, name, value string) (*form.View, error)
	// ApplyForm applies the posted region first, then the other values in
	// field order. A posted venue the resulting region does not offer is
	// dropped. Keys that are not fields of the form are ignored.
	ApplyForm(ctx context.Context, sessionID, category string, values map[string]string) (*form.View, error)
	// Submit returns the rendered view alongside any error, so callers can
	// show violations or the failed status.
	Submit(ctx context.Context, sessionID, category string) (*form.View, error)
	Reset(ctx context.Context, sessionID, category string) (*form.View, error)
	ApplyOutcome(ctx context.Context, outcome model.SubmissionOutcome) error
}

type formService struct {
	repo      repository.DraftRepository
	submitter submitter.Submitter
	checker   form.Checker
	cfg       *config.Config
	today     func() time.Time
	now       func() time.Time
}

func NewFormService(
	repo repository.DraftRepository,
	sub submitter.Submitter,
	checker form.Checker,
	cfg *config.Config,
) FormService {
	return &formService{
		repo:      repo,
		submitter: sub,
		checker:   checker,
		cfg:       cfg,
		today:     cfg.Today,
		now:       time.Now,
	}
}

func (s *formService) Open(ctx context.Context, sessionID, category string) (*form.View, error) {
	spec, state, err := s.load(ctx, sessionID, category, true)
	if err != nil {
		return nil, err
	}

	if state.Version == 0 {
		state.UpdatedAt = s.now().UTC()
		if err := s.repo.Save(ctx, state); err != nil && !errors.Is(err, bookingerrors.ErrVersionConflict) {
			return nil, apperrors.Internal("Failed to create booking form", err)
		}
	}

	view := form.BuildView(spec, state.Draft, state.Status, s.today(), nil)
	return &view, nil
}

func (s *formService) EditField(ctx context.Context, sessionID, category, name, value string) (*form.View, error) {
	f, err := s.mutate(ctx, sessionID, category, true, func(f *form.Form) error {
		return f.EditField(name, value)
	})
	if err != nil {
		return nil, err
	}
	return s.view(f, nil), nil
}

func (s *formService) ApplyForm(ctx context.Context, sessionID, category string, values map[string]string) (*form.View, error) {
	f, err := s.mutate(ctx, sessionID, category, true, func(f *form.Form) error {
		spec := f.Spec()
		if region, ok := values[spec.RegionField]; ok {
			if err := f.EditField(spec.RegionField, region); err != nil {
				return err
			}
		}
		offered := form.SelectableVenues(f.Draft()[spec.RegionField], spec.Venues)

		for _, name := range spec.FieldNames() {
			value, ok := values[name]
			if !ok || name == spec.RegionField {
				continue
			}
			if name == spec.VenueField && !slices.Contains(offered, value) {
				value = ""
			}
			if err := f.EditField(name, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(f, nil), nil
}

func (s *formService) Submit(ctx context.Context, sessionID, category string) (*form.View, error) {
	requestID := uuid.NewString()
	today := s.today()

	var snapshot model.Draft
	var violations map[string]string
	f, err := s.mutate(ctx, sessionID, category, true, func(f *form.Form) error {
		var err error
		snapshot, err = f.Begin(today, requestID)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			violations = verrs.ByField()
		}
		return err
	})
	if violations != nil {
		view := f.View(today, violations)
		return &view, err
	}
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking submission started",
		"session_id", sessionID,
		"category", category,
		"request_id", requestID,
	)

	dispatchCtx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
	defer cancel()
	req := submitter.BuildRequest(requestID, sessionID, category, snapshot, s.now())
	receipt, dispatchErr := s.submitter.Submit(dispatchCtx, req)

	f, err = s.mutate(ctx, sessionID, category, false, func(f *form.Form) error {
		return f.Complete(requestID, receipt, dispatchErr)
	})
	if err != nil {
		if isSuperseded(err) {
			s.cfg.Log.Info("Form moved on before the submission completed",
				"session_id", sessionID,
				"category", category,
				"request_id", requestID,
			)
			return s.Open(ctx, sessionID, category)
		}
		return nil, err
	}

	status := f.Status()
	s.cfg.Log.Info("Booking submission recorded",
		"session_id", sessionID,
		"category", category,
		"request_id", requestID,
		"state", status.State,
		"reference", status.Reference,
	)

	if dispatchErr != nil {
		return s.view(f, nil), apperrors.AsAppError(dispatchErr)
	}
	return s.view(f, nil), nil
}

// Reset drops the stored form and opens a fresh one. A submission still in
// flight finds no form to complete and is discarded.
func (s *formService) Reset(ctx context.Context, sessionID, category string) (*form.View, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("Session ID cannot be empty")
	}
	spec, err := specFor(category)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, sessionID, spec.Category); err != nil {
		return nil, apperrors.Internal("Failed to reset booking form", err)
	}

	s.cfg.Log.Info("Booking form reset", "session_id", sessionID, "category", category)
	return s.Open(ctx, sessionID, category)
}

func (s *formService) ApplyOutcome(ctx context.Context, outcome model.SubmissionOutcome) error {
	f, err := s.mutate(ctx, outcome.SessionID, outcome.Category, false, func(f *form.Form) error {
		return f.ApplyOutcome(outcome)
	})
	if err != nil {
		return err
	}

	status := f.Status()
	s.cfg.Log.Info("Booking outcome applied",
		"session_id", outcome.SessionID,
		"category", outcome.Category,
		"request_id", outcome.RequestID,
		"state", status.State,
	)
	return nil
}

func (s *formService) view(f *form.Form, violations map[string]string) *form.View {
	view := f.View(s.today(), violations)
	return &view
}

// load returns the stored state, or a fresh unsaved one (version 0) when
// create is set and nothing is stored.
func (s *formService) load(ctx context.Context, sessionID, category string, create bool) (*model.FormSpec, *model.FormState, error) {
	if sessionID == "" {
		return nil, nil, apperrors.InvalidInput("Session ID cannot be empty")
	}

	spec, err := specFor(category)
	if err != nil {
		return nil, nil, err
	}

	state, err := s.repo.Get(ctx, sessionID, spec.Category)
	switch {
	case err == nil:
		return spec, state, nil
	case errors.Is(err, bookingerrors.ErrNotFound) && create:
		return spec, &model.FormState{
			ID:        model.FormStateID(sessionID, spec.Category),
			SessionID: sessionID,
			Category:  spec.Category,
			Draft:     form.NewDraft(spec),
			Status:    form.Idle(s.now().UTC()),
		}, nil
	case errors.Is(err, bookingerrors.ErrNotFound):
		return nil, nil, apperrors.Wrap(err, apperrors.CodeNotFound, "Booking form not found", http.StatusNotFound)
	default:
		return nil, nil, apperrors.Internal("Failed to load booking form", err)
	}
}

// mutate applies fn to the stored form and saves it, reloading and
// reapplying fn when another writer saved first.
func (s *formService) mutate(ctx context.Context, sessionID, category string, create bool, fn func(f *form.Form) error) (*form.Form, error) {
	for attempt := 1; ; attempt++ {
		spec, state, err := s.load(ctx, sessionID, category, create)
		if err != nil {
			return nil, err
		}

		f := form.Restore(spec, s.checker, state.Draft, state.Status)
		if err := fn(f); err != nil {
			return f, mapFormError(err)
		}

		state.Draft = f.Draft()
		state.Status = f.Status()
		state.UpdatedAt = s.now().UTC()

		err = s.repo.Save(ctx, state)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, bookingerrors.ErrVersionConflict) {
			return nil, apperrors.Internal("Failed to save booking form", err)
		}
		if attempt == maxSaveAttempts {
			s.cfg.Log.Warn("Giving up on contended booking form",
				"session_id", sessionID,
				"category", category,
				"attempts", attempt,
			)
			return nil, apperrors.Wrap(err, apperrors.CodeConflict, "Booking form is being updated, please retry", http.StatusConflict)
		}
	}
}

func specFor(category string) (*model.FormSpec, error) {
	c, err := catalog.ParseCategory(category)
	if err != nil {
		return nil, apperrors.Wrap(bookingerrors.ErrUnknownCategory, apperrors.CodeNotFound,
			fmt.Sprintf("Unknown booking category: %s", category), http.StatusNotFound)
	}
	spec, err := catalog.FormSpec(c)
	if err != nil {
		return nil, apperrors.Wrap(bookingerrors.ErrUnknownCategory, apperrors.CodeNotFound,
			fmt.Sprintf("Unknown booking category: %s", category), http.StatusNotFound)
	}
	return spec, nil
}

func mapFormError(err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		details := make(map[string]any, len(verrs))
		for field, msg := range verrs.ByField() {
			details[field] = msg
		}
		return apperrors.Wrap(bookingerrors.ErrConstraintViolation, apperrors.CodeValidation,
			"Please correct the highlighted fields", http.StatusUnprocessableEntity).WithDetails(details)
	case errors.Is(err, bookingerrors.ErrUnknownField):
		return apperrors.Wrap(err, apperrors.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	case errors.Is(err, bookingerrors.ErrSubmissionInFlight),
		errors.Is(err, bookingerrors.ErrAlreadySubmitted),
		errors.Is(err, bookingerrors.ErrStaleOutcome),
		errors.Is(err, bookingerrors.ErrNotSubmitted):
		return apperrors.Wrap(err, apperrors.CodeConflict, capitalize(err.Error()), http.StatusConflict)
	default:
		return apperrors.Internal("Failed to update booking form", err)
	}
}

func isSuperseded(err error) bool {
	return errors.Is(err, bookingerrors.ErrStaleOutcome) ||
		errors.Is(err, bookingerrors.ErrNotSubmitted) ||
		errors.Is(err, bookingerrors.ErrNotFound)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

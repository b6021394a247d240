package submitter

import (
	"context"
	"errors"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/pkg/kafka"
	"securebook/pkg/logger"
	"securebook/pkg/model"
)

// OutcomeApplier is satisfied by the form service.
type OutcomeApplier interface {
	ApplyOutcome(ctx context.Context, outcome model.SubmissionOutcome) error
}

// ResultsHandler turns booking.result events into form outcomes. Events for
// forms that moved on (reset, expired, retried) are acknowledged and dropped.
func ResultsHandler(applier OutcomeApplier, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		if eventType := msg.GetEventType(); eventType != "" && eventType != EventBookingResult {
			log.Debug("ignoring event", "event_type", eventType, "key", msg.Key)
			return nil
		}

		var outcome model.SubmissionOutcome
		if err := msg.DecodeValue(&outcome); err != nil {
			return kafka.NewPermanentError("decode booking result", err)
		}
		if outcome.RequestID == "" || outcome.SessionID == "" || outcome.Category == "" {
			return kafka.NewPermanentError("booking result lacks identifiers", nil).
				WithDetail("offset", msg.Offset)
		}

		err := applier.ApplyOutcome(ctx, outcome)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bookingerrors.ErrStaleOutcome),
			errors.Is(err, bookingerrors.ErrNotSubmitted),
			errors.Is(err, bookingerrors.ErrNotFound):
			log.Info("dropping booking result",
				"request_id", outcome.RequestID,
				"session_id", outcome.SessionID,
				"category", outcome.Category,
				"reason", err.Error(),
			)
			return nil
		case errors.Is(err, bookingerrors.ErrUnknownCategory):
			return kafka.NewPermanentError("booking result names an unknown category", err)
		default:
			return kafka.NewTransientError("apply booking result", err)
		}
	}
}

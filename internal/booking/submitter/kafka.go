package submitter

import (
	"context"

	apperrors "securebook/pkg/errors"
	"securebook/pkg/kafka"
	"securebook/pkg/logger"
	"securebook/pkg/model"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaSubmitter publishes booking.requested events keyed by session and
// leaves the form submitting until a booking.result event arrives.
type KafkaSubmitter struct {
	publisher Publisher
	logger    *logger.Logger
}

func NewKafkaSubmitter(publisher Publisher, log *logger.Logger) *KafkaSubmitter {
	return &KafkaSubmitter{publisher: publisher, logger: log}
}

func (s *KafkaSubmitter) Submit(ctx context.Context, req *model.SubmissionRequest) (*model.SubmissionReceipt, error) {
	msg, err := kafka.NewMessage().
		WithKey(req.SessionID).
		WithValue(req).
		WithEventID("").
		WithEventType(EventBookingRequested).
		WithCorrelationID(req.ID).
		WithSessionID(req.SessionID).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		return nil, apperrors.Internal("failed to encode booking request", err)
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.Error("failed to publish booking request",
			"request_id", req.ID,
			"session_id", req.SessionID,
			"error", err,
		)
		return nil, apperrors.Unavailable("Booking queue")
	}

	s.logger.Info("booking request published",
		"request_id", req.ID,
		"session_id", req.SessionID,
		"event_id", msg.GetEventID(),
	)
	return &model.SubmissionReceipt{Pending: true}, nil
}

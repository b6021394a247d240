package submitter

import (
	"context"
	"errors"
	"time"

	"securebook/pkg/client"
	apperrors "securebook/pkg/errors"
	"securebook/pkg/logger"
	"securebook/pkg/model"
)

const (
	BookingsPath      = "/api/v1/bookings"
	IdempotencyHeader = "Idempotency-Key"
)

// HTTPSubmitter posts requests to the booking backend's REST API.
type HTTPSubmitter struct {
	client *client.HttpClient
	logger *logger.Logger
}

func NewHTTPSubmitter(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPSubmitter {
	return &HTTPSubmitter{
		client: client.NewHttpClient(baseURL, timeout),
		logger: log,
	}
}

type bookingCreated struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (s *HTTPSubmitter) Submit(ctx context.Context, req *model.SubmissionRequest) (*model.SubmissionReceipt, error) {
	resp, err := s.client.PostWithHeaders(ctx, BookingsPath, req, map[string]string{
		IdempotencyHeader: req.ID,
	})
	if err != nil {
		s.logger.Error("booking backend request failed",
			"request_id", req.ID,
			"category", req.Category,
			"error", err,
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Timeout("Booking service did not respond in time. Please try again.")
		}
		return nil, apperrors.Unavailable("Booking service")
	}

	if !resp.IsSuccess() {
		reason := client.GetErrorMessage(resp)
		s.logger.Warn("booking backend rejected submission",
			"request_id", req.ID,
			"category", req.Category,
			"status", resp.StatusCode,
			"reason", reason,
		)
		return nil, apperrors.SubmissionFailed(reason, nil)
	}

	var created bookingCreated
	if err := resp.DecodeJSON(&created); err != nil {
		s.logger.Warn("booking backend returned an unreadable body",
			"request_id", req.ID,
			"error", err,
		)
	}

	reference := created.Data.ID
	if reference == "" {
		reference = req.ID
	}
	return &model.SubmissionReceipt{Reference: reference}, nil
}

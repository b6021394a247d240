package submitter

import (
	"context"

	"securebook/pkg/logger"
	"securebook/pkg/model"
)

// LogSubmitter records the request and confirms it on the spot. Used when
// no booking backend is configured.
type LogSubmitter struct {
	logger *logger.Logger
}

func NewLogSubmitter(log *logger.Logger) *LogSubmitter {
	return &LogSubmitter{logger: log}
}

func (s *LogSubmitter) Submit(_ context.Context, req *model.SubmissionRequest) (*model.SubmissionReceipt, error) {
	s.logger.Info("booking submitted",
		"request_id", req.ID,
		"session_id", req.SessionID,
		"category", req.Category,
		"fields", req.Fields,
		"contact_email", req.Contact.Email,
	)
	return &model.SubmissionReceipt{Reference: req.ID}, nil
}

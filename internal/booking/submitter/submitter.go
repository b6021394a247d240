// Package submitter hands completed booking drafts to the external booking
// handler. Three transports are available: log, http and kafka.
package submitter

import (
	"context"
	"time"

	"securebook/pkg/model"
	"securebook/pkg/sanitizer"
)

const (
	EventBookingRequested = "booking.requested"
	EventBookingResult    = "booking.result"
	SchemaVersion         = "1"
	Source                = "securebook"
)

type Submitter interface {
	// Submit dispatches req. A nil error with a pending receipt means the
	// outcome arrives later as a SubmissionOutcome.
	Submit(ctx context.Context, req *model.SubmissionRequest) (*model.SubmissionReceipt, error)
}

// BuildRequest wraps a draft snapshot for dispatch. The snapshot is carried
// unmodified; only the contact block is normalized.
func BuildRequest(requestID, sessionID, category string, snapshot model.Draft, now time.Time) *model.SubmissionRequest {
	return &model.SubmissionRequest{
		ID:          requestID,
		SessionID:   sessionID,
		Category:    category,
		Fields:      snapshot.Clone(),
		Contact:     contactOf(snapshot),
		SubmittedAt: now.UTC(),
	}
}

func contactOf(d model.Draft) model.Contact {
	return model.Contact{
		Name:  sanitizer.NormalizeName(d["fullName"]),
		Email: sanitizer.NormalizeEmail(d["email"]),
		Phone: sanitizer.NormalizePhone(d["phone"]),
	}
}

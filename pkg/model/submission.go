package model

import "time"

type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSucceeded  SubmissionState = "succeeded"
	StateFailed     SubmissionState = "failed"
)

type Status struct {
	State     SubmissionState `json:"state" bson:"state"`
	RequestID string          `json:"request_id,omitempty" bson:"request_id,omitempty"`
	Reference string          `json:"reference,omitempty" bson:"reference,omitempty"`
	Reason    string          `json:"reason,omitempty" bson:"reason,omitempty"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// FormState is what the draft repository persists for one session and
// category. Version increases on every successful save.
type FormState struct {
	ID        string    `json:"-" bson:"_id"`
	SessionID string    `json:"session_id" bson:"session_id"`
	Category  string    `json:"category" bson:"category"`
	Draft     Draft     `json:"draft" bson:"draft"`
	Status    Status    `json:"status" bson:"status"`
	Version   int64     `json:"version" bson:"version"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func FormStateID(sessionID, category string) string {
	return sessionID + ":" + category
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// SubmissionRequest is the payload handed to the external booking handler.
// Fields is the unmodified draft snapshot.
type SubmissionRequest struct {
	ID          string    `json:"request_id"`
	SessionID   string    `json:"session_id"`
	Category    string    `json:"category"`
	Fields      Draft     `json:"fields"`
	Contact     Contact   `json:"contact"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmissionReceipt is returned by a submitter. A pending receipt leaves the
// form submitting until a SubmissionOutcome arrives.
type SubmissionReceipt struct {
	Reference string `json:"reference,omitempty"`
	Pending   bool   `json:"pending"`
}

const (
	OutcomeConfirmed = "confirmed"
	OutcomeRejected  = "rejected"
)

type SubmissionOutcome struct {
	RequestID string `json:"request_id"`
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	Outcome   string `json:"outcome"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

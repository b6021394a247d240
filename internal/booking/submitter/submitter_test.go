package submitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingerrors "securebook/internal/booking/errors"
	apperrors "securebook/pkg/errors"
	"securebook/pkg/kafka"
	"securebook/pkg/logger"
	"securebook/pkg/model"
)

func sampleRequest() *model.SubmissionRequest {
	snapshot := model.Draft{
		"fullName":        "  Asha   Rao ",
		"email":           " Asha@Example.COM ",
		"phone":           "098765 43210",
		"state":           "Karnataka",
		"facilityName":    "Kanteerava Stadium",
		"sportType":       "Football",
		"bookingDate":     "2026-10-20",
		"visitTime":       "06:00 AM - 08:00 AM",
		"duration":        "2 Hours",
		"numberOfPlayers": "4",
	}
	return BuildRequest("req-1", "session-1", "sports", snapshot, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
}

func TestBuildRequest(t *testing.T) {
	snapshot := model.Draft{"fullName": "  Asha   Rao ", "email": " Asha@Example.COM ", "phone": "098765 43210"}
	req := BuildRequest("req-1", "session-1", "museum", snapshot, time.Now())

	if req.Fields["fullName"] != "  Asha   Rao " {
		t.Errorf("expected the draft to be forwarded unmodified, got %q", req.Fields["fullName"])
	}
	if req.Contact.Name != "Asha Rao" {
		t.Errorf("expected normalized name, got %q", req.Contact.Name)
	}
	if req.Contact.Email != "asha@example.com" {
		t.Errorf("expected normalized email, got %q", req.Contact.Email)
	}
	if req.Contact.Phone != "+919876543210" {
		t.Errorf("expected E.164 phone, got %q", req.Contact.Phone)
	}

	snapshot["fullName"] = "changed"
	if req.Fields["fullName"] == "changed" {
		t.Error("expected the request to hold its own copy of the snapshot")
	}
}

func TestLogSubmitter(t *testing.T) {
	receipt, err := NewLogSubmitter(logger.Discard()).Submit(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Pending || receipt.Reference != "req-1" {
		t.Errorf("expected a final receipt referencing the request, got %+v", receipt)
	}
}

func TestHTTPSubmitter(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantRef  string
		wantCode string
		wantMsg  string
	}{
		{
			name:    "created",
			status:  http.StatusCreated,
			body:    `{"data":{"id":"BK-1001"}}`,
			wantRef: "BK-1001",
		},
		{
			name:    "created without id",
			status:  http.StatusOK,
			body:    `{}`,
			wantRef: "req-1",
		},
		{
			name:     "rejected",
			status:   http.StatusUnprocessableEntity,
			body:     `{"error":"Facility is closed on that date","code":"VALIDATION_ERROR"}`,
			wantCode: apperrors.CodeSubmissionFailed,
			wantMsg:  "Facility is closed on that date",
		},
		{
			name:     "plain failure",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantCode: apperrors.CodeSubmissionFailed,
			wantMsg:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.SubmissionRequest
			var idempotencyKey string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != BookingsPath {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				idempotencyKey = r.Header.Get(IdempotencyHeader)
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			s := NewHTTPSubmitter(server.URL+"/", time.Second, logger.Discard())
			receipt, err := s.Submit(context.Background(), sampleRequest())

			if idempotencyKey != "req-1" {
				t.Errorf("expected idempotency key req-1, got %q", idempotencyKey)
			}
			if got.Fields["numberOfPlayers"] != "4" || got.Contact.Email != "asha@example.com" {
				t.Errorf("unexpected payload %+v", got)
			}

			if tt.wantCode != "" {
				appErr := apperrors.AsAppError(err)
				if err == nil || appErr.Code != tt.wantCode || appErr.Message != tt.wantMsg {
					t.Fatalf("expected %s %q, got %v", tt.wantCode, tt.wantMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if receipt.Reference != tt.wantRef || receipt.Pending {
				t.Errorf("expected reference %s, got %+v", tt.wantRef, receipt)
			}
		})
	}
}

func TestHTTPSubmitter_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPSubmitter(url, time.Second, logger.Discard()).Submit(context.Background(), sampleRequest())
	if appErr := apperrors.AsAppError(err); err == nil || appErr.Code != apperrors.CodeUnavailable {
		t.Errorf("expected an unavailable error, got %v", err)
	}
}

type fakePublisher struct {
	err      error
	messages []kafka.Message
}

func (p *fakePublisher) Publish(_ context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func TestKafkaSubmitter(t *testing.T) {
	pub := &fakePublisher{}
	receipt, err := NewKafkaSubmitter(pub, logger.Discard()).Submit(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !receipt.Pending {
		t.Error("expected a pending receipt")
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(pub.messages))
	}

	msg := pub.messages[0]
	if msg.Key != "session-1" {
		t.Errorf("expected session key, got %q", msg.Key)
	}
	if msg.GetEventType() != EventBookingRequested || msg.GetCorrelationID() != "req-1" || msg.GetEventID() == "" {
		t.Errorf("unexpected headers %v", msg.Headers)
	}

	var decoded model.SubmissionRequest
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != "req-1" || decoded.Fields["facilityName"] != "Kanteerava Stadium" {
		t.Errorf("unexpected payload %+v", decoded)
	}
}

func TestKafkaSubmitter_PublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("leader not available")}
	_, err := NewKafkaSubmitter(pub, logger.Discard()).Submit(context.Background(), sampleRequest())

	appErr := apperrors.AsAppError(err)
	if err == nil || appErr.Code != apperrors.CodeUnavailable {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
}

type applierFunc func(ctx context.Context, o model.SubmissionOutcome) error

func (f applierFunc) ApplyOutcome(ctx context.Context, o model.SubmissionOutcome) error {
	return f(ctx, o)
}

func resultMessage(t *testing.T, eventType string, v any) kafka.Message {
	t.Helper()
	b := kafka.NewMessage().WithKey("session-1").WithEventType(eventType)
	if raw, ok := v.(string); ok {
		b.WithRawValue([]byte(raw))
	} else {
		b.WithValue(v)
	}
	msg, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return msg
}

func TestResultsHandler(t *testing.T) {
	valid := model.SubmissionOutcome{
		RequestID: "req-1",
		SessionID: "session-1",
		Category:  "sports",
		Outcome:   model.OutcomeConfirmed,
		Reference: "BK-7",
	}

	tests := []struct {
		name       string
		eventType  string
		value      any
		applyErr   error
		wantApply  bool
		wantErr    bool
		wantErrTyp kafka.ErrorType
	}{
		{name: "applied", eventType: EventBookingResult, value: valid, wantApply: true},
		{name: "other event", eventType: "booking.cancelled", value: valid},
		{name: "malformed", eventType: EventBookingResult, value: "{not json", wantErr: true, wantErrTyp: kafka.ErrorTypePermanent},
		{name: "missing ids", eventType: EventBookingResult, value: model.SubmissionOutcome{Outcome: "confirmed"}, wantErr: true, wantErrTyp: kafka.ErrorTypePermanent},
		{name: "stale", eventType: EventBookingResult, value: valid, applyErr: fmt.Errorf("apply: %w", bookingerrors.ErrStaleOutcome), wantApply: true},
		{name: "form gone", eventType: EventBookingResult, value: valid, applyErr: bookingerrors.ErrNotFound, wantApply: true},
		{name: "unknown category", eventType: EventBookingResult, value: valid, applyErr: bookingerrors.ErrUnknownCategory, wantApply: true, wantErr: true, wantErrTyp: kafka.ErrorTypePermanent},
		{name: "store down", eventType: EventBookingResult, value: valid, applyErr: errors.New("server selection timeout"), wantApply: true, wantErr: true, wantErrTyp: kafka.ErrorTypeTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied := false
			handler := ResultsHandler(applierFunc(func(_ context.Context, o model.SubmissionOutcome) error {
				applied = true
				if o.RequestID != "req-1" || o.Reference != "BK-7" {
					t.Errorf("unexpected outcome %+v", o)
				}
				return tt.applyErr
			}), logger.Discard())

			err := handler(context.Background(), resultMessage(t, tt.eventType, tt.value))
			if applied != tt.wantApply {
				t.Errorf("expected applied=%v, got %v", tt.wantApply, applied)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if err != nil && kafka.ClassifyError(err) != tt.wantErrTyp {
				t.Errorf("expected error type %d, got %d", tt.wantErrTyp, kafka.ClassifyError(err))
			}
		})
	}
}

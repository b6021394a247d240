package validator

import (
	"errors"
	"testing"
	"time"

	"securebook/internal/catalog"
	"securebook/pkg/logger"
	"securebook/pkg/model"
)

var today = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestValidator() *FormValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewFormValidator(log)
}

func validLibraryDraft() model.Draft {
	return model.Draft{
		"fullName":       "Asha Rao",
		"email":          "asha@example.com",
		"bookingDate":    "2026-10-20",
		"visitTime":      "09:00 AM - 11:00 AM",
		"numberOfPeople": "2",
		"state":          "Karnataka",
		"library":        "KPSC Library",
	}
}

func librarySpec(t *testing.T) *model.FormSpec {
	t.Helper()
	spec, err := catalog.FormSpec(catalog.Library)
	if err != nil {
		t.Fatalf("library spec: %v", err)
	}
	return spec
}

func TestValidate_ValidDraft(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(librarySpec(t), validLibraryDraft(), today); err != nil {
		t.Fatalf("expected no violations, got %v", err)
	}
}

func TestValidate_NativeMessages(t *testing.T) {
	v := newTestValidator()
	spec := librarySpec(t)

	tests := []struct {
		name    string
		field   string
		value   string
		want    string
		touched map[string]string
	}{
		{name: "empty text", field: "fullName", value: "", want: "Please fill out this field."},
		{name: "whitespace text is filled", field: "fullName", value: "  ", want: ""},
		{name: "empty email", field: "email", value: "", want: "Please fill out this field."},
		{name: "malformed email", field: "email", value: "asha-at-example", want: "Please enter an email address."},
		{name: "padded email", field: "email", value: " asha@example.com ", want: ""},
		{name: "empty select", field: "visitTime", value: "", want: "Please select an item in the list."},
		{name: "unoffered slot", field: "visitTime", value: "10:00 PM - 11:00 PM", want: "Please select an item in the list."},
		{name: "not a number", field: "numberOfPeople", value: "two", want: "Please enter a number."},
		{name: "fraction", field: "numberOfPeople", value: "2.5", want: "Please enter a number."},
		{name: "below min", field: "numberOfPeople", value: "0", want: "Value must be greater than or equal to 1."},
		{name: "above max", field: "numberOfPeople", value: "11", want: "Value must be less than or equal to 10."},
		{name: "at max", field: "numberOfPeople", value: "10", want: ""},
		{name: "bad date", field: "bookingDate", value: "20/10/2026", want: "Please enter a valid date."},
		{name: "past date", field: "bookingDate", value: "2026-10-13", want: "Value must be 2026-10-14 or later."},
		{name: "today", field: "bookingDate", value: "2026-10-14", want: ""},
		{name: "venue outside region", field: "library", value: "Delhi Public Library", want: "Please select an item in the list."},
		{name: "empty venue", field: "library", value: "", want: "Please select an item in the list."},
		{name: "unknown region", field: "state", value: "Atlantis", want: "Please select an item in the list."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validLibraryDraft()
			draft[tt.field] = tt.value

			err := v.Validate(spec, draft, today)
			got := ""
			if err != nil {
				var verrs ValidationErrors
				if !errors.As(err, &verrs) {
					t.Fatalf("expected ValidationErrors, got %T", err)
				}
				got = verrs.ByField()[tt.field]
			}
			if got != tt.want {
				t.Errorf("field %s = %q: got message %q, want %q", tt.field, tt.value, got, tt.want)
			}
		})
	}
}

func TestValidate_OptionalFieldsMayBeEmpty(t *testing.T) {
	v := newTestValidator()
	spec, _ := catalog.FormSpec(catalog.Museum)

	draft := model.Draft{
		"fullName":        "Ravi Kumar",
		"email":           "ravi@example.com",
		"phone":           "not checked",
		"state":           "Delhi",
		"museumName":      "National Museum",
		"bookingDate":     "2026-11-01",
		"visitTime":       "10:00 AM - 12:00 PM",
		"ticketType":      "Adult",
		"numberOfTickets": "3",
		"specialNeeds":    "",
	}
	draft["museumName"] = spec.Venues["Delhi"][0]
	draft["visitTime"] = catalog.TimeSlots(catalog.Museum)[0]

	if err := v.Validate(spec, draft, today); err != nil {
		t.Fatalf("expected no violations, got %v", err)
	}
}

func TestValidate_ReportsInFieldOrder(t *testing.T) {
	v := newTestValidator()
	spec := librarySpec(t)

	draft := model.Draft{}
	err := v.Validate(spec, draft, today)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	// numberOfPeople is empty too, so every field is reported.
	if len(verrs) != len(spec.Fields) {
		t.Fatalf("expected %d violations, got %d", len(spec.Fields), len(verrs))
	}
	for i, f := range spec.Fields {
		if verrs[i].Field != f.Name {
			t.Errorf("violation %d: expected field %s, got %s", i, f.Name, verrs[i].Field)
		}
	}
}

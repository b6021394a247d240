package form

import (
	"errors"
	"testing"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/internal/catalog"
	"securebook/pkg/model"
)

func mustSpec(t *testing.T, c catalog.Category) *model.FormSpec {
	t.Helper()
	spec, err := catalog.FormSpec(c)
	if err != nil {
		t.Fatalf("form spec %s: %v", c, err)
	}
	return spec
}

func TestNewDraft_Defaults(t *testing.T) {
	tests := []struct {
		category catalog.Category
		count    string
	}{
		{category: catalog.Library, count: "numberOfPeople"},
		{category: catalog.Museum, count: "numberOfTickets"},
		{category: catalog.Park, count: "numberOfPeople"},
		{category: catalog.Sports, count: "numberOfPlayers"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			spec := mustSpec(t, tt.category)
			draft := NewDraft(spec)

			if len(draft) != len(spec.Fields) {
				t.Fatalf("expected %d keys, got %d", len(spec.Fields), len(draft))
			}
			for _, f := range spec.Fields {
				want := ""
				if f.Name == tt.count {
					want = "1"
				}
				if got, ok := draft[f.Name]; !ok || got != want {
					t.Errorf("field %s: expected %q, got %q (present %v)", f.Name, want, got, ok)
				}
			}
		})
	}
}

func TestApplyEdit_SetsOnlyNamedField(t *testing.T) {
	spec := mustSpec(t, catalog.Museum)
	before := NewDraft(spec)

	after, err := ApplyEdit(spec, before, "fullName", "Meera Iyer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after["fullName"] != "Meera Iyer" {
		t.Errorf("expected fullName to be set, got %q", after["fullName"])
	}
	if before["fullName"] != "" {
		t.Error("input draft was mutated")
	}
	for k, v := range before {
		if k != "fullName" && after[k] != v {
			t.Errorf("field %s changed from %q to %q", k, v, after[k])
		}
	}
}

func TestApplyEdit_UnknownField(t *testing.T) {
	spec := mustSpec(t, catalog.Library)
	draft := NewDraft(spec)

	_, err := ApplyEdit(spec, draft, "ticketType", "Adult")
	if !errors.Is(err, bookingerrors.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestApplyEdit_RegionChangeResetsVenue(t *testing.T) {
	for _, c := range catalog.Bookable() {
		t.Run(string(c), func(t *testing.T) {
			spec := mustSpec(t, c)
			draft := NewDraft(spec)

			draft, _ = ApplyEdit(spec, draft, spec.RegionField, "Delhi")
			venue := spec.Venues["Delhi"][0]
			draft, _ = ApplyEdit(spec, draft, spec.VenueField, venue)

			same, _ := ApplyEdit(spec, draft, spec.RegionField, "Delhi")
			if same[spec.VenueField] != venue {
				t.Errorf("re-selecting the same region cleared the venue")
			}

			moved, _ := ApplyEdit(spec, draft, spec.RegionField, "Karnataka")
			if moved[spec.VenueField] != "" {
				t.Errorf("expected venue to reset, got %q", moved[spec.VenueField])
			}
			if moved[spec.RegionField] != "Karnataka" {
				t.Errorf("expected region Karnataka, got %q", moved[spec.RegionField])
			}
		})
	}
}

func TestSelectableVenues(t *testing.T) {
	table := catalog.VenueTable(catalog.Library)

	tests := []struct {
		name   string
		region string
		want   int
	}{
		{name: "populated", region: "Karnataka", want: 4},
		{name: "unpopulated region", region: "Goa", want: 0},
		{name: "unset", region: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectableVenues(tt.region, table)
			if got == nil {
				t.Fatal("expected non-nil list")
			}
			if len(got) != tt.want {
				t.Errorf("expected %d venues, got %d", tt.want, len(got))
			}
		})
	}

	got := SelectableVenues("Karnataka", table)
	if got[0] != "State Central Library Bangalore" {
		t.Errorf("expected table order, got %v", got)
	}
	got[0] = "changed"
	if table["Karnataka"][0] == "changed" {
		t.Error("SelectableVenues returned the table's own slice")
	}
}

func TestVenuePlaceholder(t *testing.T) {
	if got := VenuePlaceholder("", "Library"); got != "Select State First" {
		t.Errorf("unexpected placeholder %q", got)
	}
	if got := VenuePlaceholder("Delhi", "Library"); got != "Select Library" {
		t.Errorf("unexpected placeholder %q", got)
	}
}

func TestSnapshot_FillsMissingFields(t *testing.T) {
	spec := mustSpec(t, catalog.Park)
	snap := Snapshot(spec, model.Draft{"fullName": "Dev", "stray": "x"})

	if len(snap) != len(spec.Fields) {
		t.Fatalf("expected %d keys, got %d", len(spec.Fields), len(snap))
	}
	if _, ok := snap["stray"]; ok {
		t.Error("undeclared key leaked into snapshot")
	}
	if v, ok := snap["equipmentNeeded"]; !ok || v != "" {
		t.Errorf("expected empty optional field, got %q (present %v)", v, ok)
	}
}

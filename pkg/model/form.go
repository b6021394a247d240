package model

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindDate     FieldKind = "date"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindTextarea FieldKind = "textarea"
)

// FieldSpec declares one input of a booking form. Min, Max and MinToday are
// the native control attributes; they are enforced only the way a browser
// enforces them before letting a form submit.
type FieldSpec struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Default     string    `json:"default,omitempty"`
	Min         *int      `json:"min,omitempty"`
	Max         *int      `json:"max,omitempty"`
	MinToday    bool      `json:"min_today,omitempty"`
	Options     []string  `json:"options,omitempty"`
	DependsOn   string    `json:"depends_on,omitempty"`
}

func (f FieldSpec) IsSelect() bool {
	return f.Kind == KindSelect
}

// FormSpec is the configuration object from which every category form is
// built. Venues maps a region name to its ordered venue names; regions that
// are missing from the map offer no venues.
type FormSpec struct {
	Category    string              `json:"category"`
	Title       string              `json:"title"`
	RegionField string              `json:"region_field"`
	VenueField  string              `json:"venue_field"`
	VenueNoun   string              `json:"venue_noun"`
	Fields      []FieldSpec         `json:"fields"`
	Venues      map[string][]string `json:"venues"`
}

func (s *FormSpec) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func (s *FormSpec) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

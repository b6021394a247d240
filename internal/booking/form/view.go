package form

import (
	"strconv"
	"time"

	"securebook/pkg/model"
)

const (
	SubmitLabel        = "Complete Booking"
	SubmitLabelLoading = "Processing..."
)

// FieldView is one rendered control.
type FieldView struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Disabled    bool     `json:"disabled"`
	Min         string   `json:"min,omitempty"`
	Max         string   `json:"max,omitempty"`
	Options     []string `json:"options,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func (v FieldView) IsSelect() bool   { return v.Kind == string(model.KindSelect) }
func (v FieldView) IsTextarea() bool { return v.Kind == string(model.KindTextarea) }

type View struct {
	Category    string       `json:"category"`
	Title       string       `json:"title"`
	Fields      []FieldView  `json:"fields"`
	Status      model.Status `json:"status"`
	Loading     bool         `json:"loading"`
	SubmitLabel string       `json:"submit_label"`
}

func (v View) Succeeded() bool { return v.Status.State == model.StateSucceeded }
func (v View) Failed() bool    { return v.Status.State == model.StateFailed }

// View renders the form for today. violations maps field names to the
// message shown next to the control.
func (f *Form) View(today time.Time, violations map[string]string) View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return BuildView(f.spec, f.draft, f.status, today, violations)
}

func BuildView(spec *model.FormSpec, draft model.Draft, status model.Status, today time.Time, violations map[string]string) View {
	loading := Loading(status)

	view := View{
		Category:    spec.Category,
		Title:       spec.Title,
		Fields:      make([]FieldView, 0, len(spec.Fields)),
		Status:      status,
		Loading:     loading,
		SubmitLabel: SubmitLabel,
	}
	if loading {
		view.SubmitLabel = SubmitLabelLoading
	}

	for _, field := range spec.Fields {
		fv := FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Kind:        string(field.Kind),
			Value:       draft[field.Name],
			Placeholder: field.Placeholder,
			Required:    field.Required,
			Options:     field.Options,
			Error:       violations[field.Name],
		}
		if field.Min != nil {
			fv.Min = strconv.Itoa(*field.Min)
		}
		if field.Max != nil {
			fv.Max = strconv.Itoa(*field.Max)
		}
		if field.MinToday {
			fv.Min = today.Format("2006-01-02")
		}
		if field.DependsOn != "" {
			fv.Options = venueOptions(spec, draft)
			fv.Placeholder = VenuePlaceholder(draft[field.DependsOn], spec.VenueNoun)
			fv.Disabled = len(fv.Options) == 0
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

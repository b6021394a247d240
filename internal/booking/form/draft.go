package form

import (
	"fmt"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/pkg/model"
)

// NewDraft holds every declared field, at its default or "".
func NewDraft(spec *model.FormSpec) model.Draft {
	draft := make(model.Draft, len(spec.Fields))
	for _, f := range spec.Fields {
		draft[f.Name] = f.Default
	}
	return draft
}

// ApplyEdit returns a copy of draft with name set to value. Moving the region
// to a different value also clears the venue, so a venue can never belong to
// a region other than the selected one. draft is not modified.
func ApplyEdit(spec *model.FormSpec, draft model.Draft, name, value string) (model.Draft, error) {
	if _, ok := spec.Field(name); !ok {
		return nil, fmt.Errorf("%w: %q", bookingerrors.ErrUnknownField, name)
	}

	next := draft.Clone()
	if name == spec.RegionField && spec.VenueField != "" && next[name] != value {
		next[spec.VenueField] = ""
	}
	next[name] = value
	return next, nil
}

// Snapshot fills in any declared field missing from draft, so the handler
// always receives the complete field set.
func Snapshot(spec *model.FormSpec, draft model.Draft) model.Draft {
	out := make(model.Draft, len(spec.Fields))
	for _, f := range spec.Fields {
		out[f.Name] = draft[f.Name]
	}
	return out
}

package form

import (
	"fmt"

	"securebook/pkg/model"
)

const noRegionPlaceholder = "Select State First"

// SelectableVenues lists the venues of region in table order. It is never
// nil; an unset or unknown region yields an empty list.
func SelectableVenues(region string, table map[string][]string) []string {
	venues := table[region]
	out := make([]string, len(venues))
	copy(out, venues)
	return out
}

func VenuePlaceholder(region, noun string) string {
	if region == "" {
		return noRegionPlaceholder
	}
	return fmt.Sprintf("Select %s", noun)
}

// venueOptions is what the dependent venue select offers for a draft.
func venueOptions(spec *model.FormSpec, draft model.Draft) []string {
	return SelectableVenues(draft[spec.RegionField], spec.Venues)
}

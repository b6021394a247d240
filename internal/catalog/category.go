// Package catalog holds the read-only reference data behind the booking
// forms. Accessors always return copies.
package catalog

import (
	"fmt"

	"securebook/pkg/model"
)

type Category string

const (
	Library Category = "library"
	Museum  Category = "museum"
	Park    Category = "park"
	Sports  Category = "sports"
	Theater Category = "theater"
	Room    Category = "room"
)

// RegionField is the draft key of the region selector on every form.
const RegionField = "state"

var bookable = []Category{Library, Museum, Park, Sports}

var listed = []Category{Library, Sports, Museum, Park, Theater, Room}

// Bookable returns the categories that have a booking form.
func Bookable() []Category {
	out := make([]Category, len(bookable))
	copy(out, bookable)
	return out
}

// Listed returns every category shown on the landing page, in display order.
func Listed() []Category {
	out := make([]Category, len(listed))
	copy(out, listed)
	return out
}

func (c Category) Title() string {
	switch c {
	case Library:
		return "Library"
	case Museum:
		return "Museum"
	case Park:
		return "Park"
	case Sports:
		return "Sports"
	case Theater:
		return "Theater"
	case Room:
		return "Room"
	}
	return string(c)
}

func (c Category) IsBookable() bool {
	for _, b := range bookable {
		if b == c {
			return true
		}
	}
	return false
}

// ParseCategory accepts only bookable categories.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsBookable() {
		return "", fmt.Errorf("unknown booking category: %q", s)
	}
	return c, nil
}

// VenueTable returns a copy of the region to venue table of a category.
func VenueTable(c Category) map[string][]string {
	switch c {
	case Library:
		return cloneTable(librariesByState)
	case Museum:
		return cloneTable(museumsByState)
	case Park:
		return cloneTable(parksByState)
	case Sports:
		return cloneTable(sportsFacilitiesByState)
	}
	return map[string][]string{}
}

func TimeSlots(c Category) []string {
	switch c {
	case Library:
		return cloneStrings(libraryVisitTimes)
	case Museum:
		return cloneStrings(museumVisitTimes)
	case Park:
		return cloneStrings(parkVisitTimes)
	case Sports:
		return cloneStrings(sportsVisitTimes)
	}
	return []string{}
}

func TicketTypes() []string   { return cloneStrings(ticketTypes) }
func ActivityTypes() []string { return cloneStrings(activityTypes) }
func SportTypes() []string    { return cloneStrings(sportTypes) }
func Durations() []string     { return cloneStrings(durations) }

// FormSpec builds the configuration object of a bookable category.
func FormSpec(c Category) (*model.FormSpec, error) {
	switch c {
	case Library:
		return librarySpec(), nil
	case Museum:
		return museumSpec(), nil
	case Park:
		return parkSpec(), nil
	case Sports:
		return sportsSpec(), nil
	}
	return nil, fmt.Errorf("category %q has no booking form", c)
}

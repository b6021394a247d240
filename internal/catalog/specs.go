package catalog

import "securebook/pkg/model"

func bound(n int) *int {
	return &n
}

func fullNameField() model.FieldSpec {
	return model.FieldSpec{Name: "fullName", Label: "Full Name *", Kind: model.KindText, Required: true}
}

func emailField() model.FieldSpec {
	return model.FieldSpec{Name: "email", Label: "Email *", Kind: model.KindEmail, Required: true}
}

func phoneField() model.FieldSpec {
	return model.FieldSpec{Name: "phone", Label: "Phone Number *", Kind: model.KindTel, Required: true}
}

func dateField(label string) model.FieldSpec {
	return model.FieldSpec{Name: "bookingDate", Label: label, Kind: model.KindDate, Required: true, MinToday: true}
}

func regionField() model.FieldSpec {
	return model.FieldSpec{
		Name:        RegionField,
		Label:       "State *",
		Kind:        model.KindSelect,
		Required:    true,
		Placeholder: "Select State",
		Options:     Regions(),
	}
}

func venueField(name, label string) model.FieldSpec {
	return model.FieldSpec{Name: name, Label: label, Kind: model.KindSelect, Required: true, DependsOn: RegionField}
}

func selectField(name, label, placeholder string, options []string) model.FieldSpec {
	return model.FieldSpec{Name: name, Label: label, Kind: model.KindSelect, Required: true, Placeholder: placeholder, Options: options}
}

func countField(name, label string, max int) model.FieldSpec {
	return model.FieldSpec{Name: name, Label: label, Kind: model.KindNumber, Required: true, Default: "1", Min: bound(1), Max: bound(max)}
}

func librarySpec() *model.FormSpec {
	return &model.FormSpec{
		Category:    string(Library),
		Title:       "Library Booking",
		RegionField: RegionField,
		VenueField:  "library",
		VenueNoun:   "Library",
		Venues:      VenueTable(Library),
		Fields: []model.FieldSpec{
			fullNameField(),
			emailField(),
			dateField("Booking Date *"),
			selectField("visitTime", "Visit Time *", "Select Visit Time", TimeSlots(Library)),
			countField("numberOfPeople", "Number of People *", 10),
			regionField(),
			venueField("library", "Library *"),
		},
	}
}

func museumSpec() *model.FormSpec {
	return &model.FormSpec{
		Category:    string(Museum),
		Title:       "Museum Booking",
		RegionField: RegionField,
		VenueField:  "museumName",
		VenueNoun:   "Museum",
		Venues:      VenueTable(Museum),
		Fields: []model.FieldSpec{
			fullNameField(),
			emailField(),
			phoneField(),
			regionField(),
			venueField("museumName", "Museum Name *"),
			dateField("Visit Date *"),
			selectField("visitTime", "Visit Time *", "Select Visit Time", TimeSlots(Museum)),
			selectField("ticketType", "Ticket Type *", "Select Ticket Type", TicketTypes()),
			countField("numberOfTickets", "Number of Tickets *", 50),
			{
				Name:        "specialNeeds",
				Label:       "Special Accessibility Needs (Optional)",
				Kind:        model.KindTextarea,
				Placeholder: "E.g., wheelchair access, audio guide needed",
			},
		},
	}
}

func parkSpec() *model.FormSpec {
	return &model.FormSpec{
		Category:    string(Park),
		Title:       "Park Booking",
		RegionField: RegionField,
		VenueField:  "parkName",
		VenueNoun:   "Park",
		Venues:      VenueTable(Park),
		Fields: []model.FieldSpec{
			fullNameField(),
			emailField(),
			phoneField(),
			regionField(),
			venueField("parkName", "Park Name *"),
			dateField("Visit Date *"),
			selectField("visitTime", "Visit Time *", "Select Visit Time", TimeSlots(Park)),
			selectField("activityType", "Activity Type *", "Select Activity", ActivityTypes()),
			countField("numberOfPeople", "Number of People *", 100),
			{
				Name:        "equipmentNeeded",
				Label:       "Equipment/Facilities Needed (Optional)",
				Kind:        model.KindTextarea,
				Placeholder: "E.g., tables, chairs, BBQ grill, gazebo",
			},
		},
	}
}

func sportsSpec() *model.FormSpec {
	return &model.FormSpec{
		Category:    string(Sports),
		Title:       "Sports Facility Booking",
		RegionField: RegionField,
		VenueField:  "facilityName",
		VenueNoun:   "Facility",
		Venues:      VenueTable(Sports),
		Fields: []model.FieldSpec{
			fullNameField(),
			emailField(),
			phoneField(),
			regionField(),
			venueField("facilityName", "Facility Name *"),
			selectField("sportType", "Sport Type *", "Select Sport", SportTypes()),
			dateField("Booking Date *"),
			selectField("visitTime", "Visit Time *", "Select Visit Time", TimeSlots(Sports)),
			selectField("duration", "Duration *", "Select Duration", Durations()),
			countField("numberOfPlayers", "Number of Players *", 20),
		},
	}
}

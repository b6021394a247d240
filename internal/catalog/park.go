package catalog

var parksByState = map[string][]string{
	"Delhi":         {"Lodhi Garden", "India Gate Gardens", "Garden of Five Senses", "Nehru Park"},
	"Maharashtra":   {"Sanjay Gandhi National Park", "Shivaji Park", "Kamala Nehru Park", "Hanging Gardens"},
	"Karnataka":     {"Cubbon Park", "Lalbagh Botanical Garden", "Bannerghatta National Park", "Freedom Park"},
	"Tamil Nadu":    {"Marina Beach Park", "Guindy National Park", "Semmozhi Poonga", "Anna Nagar Tower Park"},
	"West Bengal":   {"Victoria Memorial Gardens", "Eco Park", "Central Park Kolkata", "Millennium Park"},
	"Kerala":        {"Napier Museum Park", "Kovalam Beach Park", "Thekkady Wildlife Park", "Marine Drive Park"},
	"Gujarat":       {"Sabarmati Riverfront", "Kankaria Lakefront", "Law Garden", "Victoria Garden"},
	"Rajasthan":     {"Central Park Jaipur", "Nahargarh Biological Park", "Ram Niwas Garden", "Saheliyon ki Bari"},
	"Uttar Pradesh": {"Ambedkar Park", "Janeshwar Mishra Park", "Lohia Park", "Taj Nature Walk"},
	"Punjab":        {"Rock Garden", "Rose Garden Chandigarh", "Sukhna Lake Park", "Rambagh Garden"},
}

var activityTypes = []string{
	"Picnic",
	"Photography",
	"Bird Watching",
	"Nature Walk",
	"Camping",
	"Family Gathering",
	"Corporate Event",
	"Sports Activity",
}

var parkVisitTimes = []string{
	"06:00 AM - 09:00 AM",
	"10:00 AM - 01:00 PM",
	"02:00 PM - 05:00 PM",
	"05:00 PM - 08:00 PM",
}

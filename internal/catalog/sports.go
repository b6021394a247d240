package catalog

var sportsFacilitiesByState = map[string][]string{
	"Delhi":         {"Jawaharlal Nehru Stadium", "Thyagaraj Sports Complex", "Siri Fort Sports Complex", "Dr. SPM Swimming Pool Complex"},
	"Maharashtra":   {"DY Patil Stadium", "Andheri Sports Complex", "Shivaji Park", "Balewadi Sports Complex"},
	"Karnataka":     {"Sree Kanteerava Stadium", "Bangalore Football Stadium", "KPSC Sports Complex", "Cubbon Park Sports Arena"},
	"Tamil Nadu":    {"MA Chidambaram Stadium", "Nehru Stadium Chennai", "YMCA Sports Complex", "Anna Stadium"},
	"West Bengal":   {"Eden Gardens", "Salt Lake Stadium", "Netaji Indoor Stadium", "Rabindra Sarobar Complex"},
	"Kerala":        {"Jawaharlal Nehru Stadium Kochi", "Greenfield Stadium", "Jimmy George Indoor Stadium", "Calicut Sports Hub"},
	"Gujarat":       {"Narendra Modi Stadium", "Sardar Patel Stadium", "Ahmedabad Sports Club", "Trans Stadia Complex"},
	"Rajasthan":     {"Sawai Mansingh Stadium", "SMS Stadium Indoor Complex", "Jaipur Sports Academy", "Udaipur Sports Center"},
	"Uttar Pradesh": {"Green Park Stadium", "Buddha International Circuit", "Lucknow Sports Complex", "Agra Sports Hub"},
	"Punjab":        {"PCA Stadium", "Guru Nanak Stadium", "Ludhiana Sports Complex", "Amritsar Sports Academy"},
}

var sportTypes = []string{
	"Cricket", "Football", "Badminton", "Tennis", "Basketball",
	"Swimming", "Table Tennis", "Squash", "Volleyball", "Hockey",
}

var sportsVisitTimes = []string{
	"06:00 AM - 08:00 AM",
	"10:00 AM - 12:00 PM",
	"02:00 PM - 04:00 PM",
	"06:00 PM - 08:00 PM",
}

var durations = []string{
	"1 Hour",
	"2 Hours",
	"3 Hours",
	"4 Hours",
}

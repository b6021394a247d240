package catalog

var museumsByState = map[string][]string{
	"Delhi":         {"National Museum", "National Gallery of Modern Art", "Red Fort Archaeological Museum", "Gandhi Smriti Museum"},
	"Maharashtra":   {"Chhatrapati Shivaji Museum", "Dr. Bhau Daji Lad Museum", "Raja Dinkar Kelkar Museum", "Salar Jung Museum"},
	"Karnataka":     {"Government Museum Bangalore", "Visvesvaraya Industrial Museum", "National Gallery of Modern Art Bangalore", "HAL Aerospace Museum"},
	"Tamil Nadu":    {"Government Museum Chennai", "National Art Gallery", "Fort Museum", "DakshinaChitra Museum"},
	"West Bengal":   {"Indian Museum Kolkata", "Victoria Memorial", "Marble Palace", "Asutosh Museum"},
	"Kerala":        {"Napier Museum", "Kerala Folklore Museum", "Hill Palace Museum", "Indo-Portuguese Museum"},
	"Gujarat":       {"Calico Museum of Textiles", "Sardar Vallabhbhai Patel Museum", "Baroda Museum", "Kutch Museum"},
	"Rajasthan":     {"City Palace Museum Jaipur", "Albert Hall Museum", "Government Museum Bharatpur", "Umaid Bhawan Palace Museum"},
	"Uttar Pradesh": {"State Museum Lucknow", "Allahabad Museum", "Sarnath Museum", "Mathura Museum"},
	"Punjab":        {"Punjab State War Heroes Museum", "Partition Museum", "Government Museum Chandigarh", "Maharaja Ranjit Singh Museum"},
}

var museumVisitTimes = []string{
	"10:00 AM - 12:00 PM",
	"12:00 PM - 02:00 PM",
	"02:00 PM - 04:00 PM",
	"04:00 PM - 06:00 PM",
}

var ticketTypes = []string{"Adult", "Child (5-12 years)", "Senior Citizen", "Student", "Group (10+)"}

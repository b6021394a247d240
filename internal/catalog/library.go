package catalog

var librariesByState = map[string][]string{
	"Delhi":         {"National Library of India", "Delhi Public Library", "Nehru Memorial Library", "American Library"},
	"Maharashtra":   {"Asiatic Society Library", "Mumbai University Library", "Pune Central Library", "British Council Library"},
	"Karnataka":     {"State Central Library Bangalore", "Bangalore City Central Library", "Mysore Regional Library", "KPSC Library"},
	"Tamil Nadu":    {"Connemara Public Library", "Anna Centenary Library", "Madras Literary Society", "Chennai City Library"},
	"West Bengal":   {"National Library Kolkata", "Ramakrishna Mission Library", "Calcutta Public Library", "Alipore Public Library"},
	"Kerala":        {"State Central Library Trivandrum", "Calicut Public Library", "Kochi Public Library", "Ernakulam District Library"},
	"Gujarat":       {"Gujarat Vidyapith Library", "Ahmedabad Public Library", "Baroda Central Library", "Surat City Library"},
	"Rajasthan":     {"Rajasthan State Archives", "Jaipur Public Library", "Udaipur City Library", "Jodhpur Public Library"},
	"Uttar Pradesh": {"Lucknow Public Library", "Allahabad Public Library", "Varanasi Library", "Agra Public Library"},
	"Punjab":        {"Punjab State Library", "Chandigarh Public Library", "Patiala State Library", "Ludhiana District Library"},
}

var libraryVisitTimes = []string{
	"09:00 AM - 11:00 AM",
	"12:00 PM - 02:00 PM",
	"03:00 PM - 05:00 PM",
	"06:00 PM - 08:00 PM",
}

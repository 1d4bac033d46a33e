package config

import (
	"sort"
	"strings"
)

// StateLanguages maps an Indian state or union territory to the languages
// commonly spoken there, most common first. English is always reachable
// through the tables even where not listed.
var StateLanguages = map[string][]string{
	"Andhra Pradesh":    {"Telugu", "English"},
	"Arunachal Pradesh": {"English", "Hindi"},
	"Assam":             {"Assamese", "English"},
	"Bihar":             {"Hindi", "English"},
	"Chhattisgarh":      {"Hindi", "English"},
	"Goa":               {"Konkani", "Marathi", "English"},
	"Gujarat":           {"Gujarati", "English"},
	"Haryana":           {"Hindi", "English"},
	"Himachal Pradesh":  {"Hindi", "English"},
	"Jharkhand":         {"Hindi", "English"},
	"Karnataka":         {"Kannada", "English"},
	"Kerala":            {"Malayalam", "English"},
	"Madhya Pradesh":    {"Hindi", "English"},
	"Maharashtra":       {"Marathi", "English"},
	"Manipur":           {"Manipuri", "English"},
	"Meghalaya":         {"English", "Khasi"},
	"Mizoram":           {"Mizo", "English"},
	"Nagaland":          {"English"},
	"Odisha":            {"Odia", "English"},
	"Punjab":            {"Punjabi", "English"},
	"Rajasthan":         {"Hindi", "English"},
	"Sikkim":            {"Nepali", "English"},
	"Tamil Nadu":        {"Tamil", "English"},
	"Telangana":         {"Telugu", "English"},
	"Tripura":           {"Bengali", "English"},
	"Uttar Pradesh":     {"Hindi", "English"},
	"Uttarakhand":       {"Hindi", "English"},
	"West Bengal":       {"Bengali", "English"},
	"Delhi":             {"Hindi", "English"},
	"Jammu and Kashmir": {"Urdu", "Hindi", "English"},
	"Ladakh":            {"Ladakhi", "English"},
}

// StateNames lists the keys of StateLanguages in sorted order, for lookups
// that must scan the table deterministically.
var StateNames = func() []string {
	names := make([]string, 0, len(StateLanguages))
	for name := range StateLanguages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// canonicalStates holds the standardized spelling of every state and union
// territory name, keyed by its lowercase form. Upstream geocoding services
// occasionally return variant casings or spacings.
var canonicalStates = func() map[string]string {
	names := []string{
		"Andaman and Nicobar Islands",
		"Andhra Pradesh",
		"Arunachal Pradesh",
		"Assam",
		"Bihar",
		"Chandigarh",
		"Chhattisgarh",
		"Dadra and Nagar Haveli",
		"Daman and Diu",
		"Delhi",
		"Goa",
		"Gujarat",
		"Haryana",
		"Himachal Pradesh",
		"Jammu and Kashmir",
		"Jharkhand",
		"Karnataka",
		"Kerala",
		"Ladakh",
		"Lakshadweep",
		"Madhya Pradesh",
		"Maharashtra",
		"Manipur",
		"Meghalaya",
		"Mizoram",
		"Nagaland",
		"Odisha",
		"Puducherry",
		"Punjab",
		"Rajasthan",
		"Sikkim",
		"Tamil Nadu",
		"Telangana",
		"Tripura",
		"Uttar Pradesh",
		"Uttarakhand",
		"West Bengal",
	}
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[strings.ToLower(n)] = n
	}
	return m
}()

// CanonicalState normalizes a state name returned by an upstream service to
// its standardized spelling. Unrecognized names pass through unchanged.
func CanonicalState(name string) string {
	if canonical, ok := canonicalStates[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return name
}

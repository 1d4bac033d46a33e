package models

// Location is the normalized result of a geolocation lookup. It exists only
// for the lifetime of a request and is never persisted on its own.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	District    string  `json:"district"`
	State       string  `json:"state"`
	StateCode   string  `json:"stateCode"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
}

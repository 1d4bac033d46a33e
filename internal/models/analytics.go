package models

import "time"

// LocationSnapshot is the subset of a Location stored with an analytics event.
type LocationSnapshot struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	City      string  `bson:"city" json:"city"`
	District  string  `bson:"district" json:"district"`
	State     string  `bson:"state" json:"state"`
	Country   string  `bson:"country" json:"country"`
}

// AnalyticsEvent is an append-only usage record, written once per dashboard
// request and read only in aggregate.
type AnalyticsEvent struct {
	IPAddress         string           `bson:"ipAddress" json:"ipAddress"`
	Location          LocationSnapshot `bson:"location" json:"location"`
	DetectedLanguages []string         `bson:"detectedLanguages" json:"detectedLanguages"`
	Views             int64            `bson:"views" json:"views"`
	UserAgent         string           `bson:"userAgent" json:"userAgent"`
	CreatedAt         time.Time        `bson:"createdAt" json:"createdAt"`
}

// CacheEntry is a generic short-lived key/value record. The collection
// carries a TTL index on ExpiresAt so entries disappear on their own.
type CacheEntry struct {
	Key       string    `bson:"key" json:"key"`
	Data      []byte    `bson:"data" json:"data"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

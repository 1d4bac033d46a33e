package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mgnrega/server/config"
	"mgnrega/server/internal/models"

	"github.com/sirupsen/logrus"
)

const userAgent = "MGNREGA-Made-Easy/1.0"

// Resolver turns coordinates or an IP address into a normalized location.
// Resolution is best-effort: every failure path returns the fixed default
// location so the rest of the pipeline is never blocked.
type Resolver struct {
	logger       *logrus.Logger
	nominatimURL string
	ipapiURL     string
	geoClient    *http.Client
	ipClient     *http.Client
}

func NewResolver(cfg *config.Config, logger *logrus.Logger) *Resolver {
	return &Resolver{
		logger:       logger,
		nominatimURL: cfg.Location.NominatimURL,
		ipapiURL:     strings.TrimRight(cfg.Location.IPAPIURL, "/"),
		geoClient:    &http.Client{Timeout: time.Duration(cfg.Location.GeocodeTimeout) * time.Second},
		ipClient:     &http.Client{Timeout: time.Duration(cfg.Location.IPLookupTimeout) * time.Second},
	}
}

// DefaultLocation is the New Delhi placeholder used whenever lookups fail.
func DefaultLocation() models.Location {
	return models.Location{
		Latitude:    28.6139,
		Longitude:   77.2090,
		City:        "New Delhi",
		District:    "New Delhi",
		State:       "Delhi",
		StateCode:   "DL",
		Country:     "India",
		CountryCode: "IN",
	}
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	CityDistrict string `json:"city_district"`
	County       string `json:"county"`
	District     string `json:"district"`
	State        string `json:"state"`
	StateCode    string `json:"state_code"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

type nominatimResponse struct {
	Address *nominatimAddress `json:"address"`
}

// ResolveCoordinates reverse-geocodes a latitude/longitude pair. Range
// validation is the caller's responsibility.
func (r *Resolver) ResolveCoordinates(ctx context.Context, lat, lon float64) models.Location {
	log := r.logger.WithFields(logrus.Fields{"latitude": lat, "longitude": lon})
	log.Info("Resolving location from coordinates")

	params := url.Values{
		"lat":            []string{fmt.Sprintf("%f", lat)},
		"lon":            []string{fmt.Sprintf("%f", lon)},
		"format":         []string{"json"},
		"addressdetails": []string{"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.nominatimURL, nil)
	if err != nil {
		log.WithError(err).Error("Failed to build reverse-geocoding request")
		return DefaultLocation()
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.geoClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Reverse-geocoding request failed")
		return DefaultLocation()
	}
	defer resp.Body.Close()

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to parse reverse-geocoding response")
		return DefaultLocation()
	}
	if result.Address == nil {
		log.Warn("Reverse-geocoding response carried no address")
		return DefaultLocation()
	}

	addr := result.Address
	loc := models.Location{
		Latitude:    lat,
		Longitude:   lon,
		City:        firstNonEmpty(addr.City, addr.Town, addr.Village, "Unknown"),
		District:    firstNonEmpty(addr.CityDistrict, addr.County, addr.District, addr.City, "Unknown"),
		State:       config.CanonicalState(firstNonEmpty(addr.State, "Unknown")),
		StateCode:   addr.StateCode,
		Country:     firstNonEmpty(addr.Country, "India"),
		CountryCode: firstNonEmpty(strings.ToUpper(addr.CountryCode), "IN"),
	}

	log.WithFields(logrus.Fields{"district": loc.District, "state": loc.State}).Info("Location resolved from coordinates")
	return loc
}

type ipapiResponse struct {
	Error       bool    `json:"error"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	District    string  `json:"district"`
	Region      string  `json:"region"`
	RegionCode  string  `json:"region_code"`
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
}

// ResolveIP looks up a client IP address with the IP-geolocation service.
func (r *Resolver) ResolveIP(ctx context.Context, ip string) models.Location {
	log := r.logger.WithField("ip", ip)
	log.Info("Resolving location from IP")

	lookupURL := fmt.Sprintf("%s/%s/json/", r.ipapiURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		log.WithError(err).Error("Failed to build IP lookup request")
		return DefaultLocation()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.ipClient.Do(req)
	if err != nil {
		log.WithError(err).Error("IP lookup request failed")
		return DefaultLocation()
	}
	defer resp.Body.Close()

	var result ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to parse IP lookup response")
		return DefaultLocation()
	}
	if result.Error {
		log.Warn("IP lookup service reported an error")
		return DefaultLocation()
	}

	loc := models.Location{
		Latitude:    result.Latitude,
		Longitude:   result.Longitude,
		City:        firstNonEmpty(result.City, "Unknown"),
		District:    firstNonEmpty(result.District, result.City, "Unknown"),
		State:       config.CanonicalState(firstNonEmpty(result.Region, "Unknown")),
		StateCode:   result.RegionCode,
		Country:     firstNonEmpty(result.CountryName, "India"),
		CountryCode: firstNonEmpty(result.CountryCode, "IN"),
	}

	log.WithFields(logrus.Fields{"district": loc.District, "state": loc.State}).Info("Location resolved from IP")
	return loc
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

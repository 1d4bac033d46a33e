package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mgnrega/server/config"
	"mgnrega/server/internal/generative"
	"mgnrega/server/internal/models"
	"mgnrega/server/internal/store"

	"github.com/sirupsen/logrus"
)

// govDataCacheTTL bounds how often the upstream API is re-queried per
// district and resource.
const govDataCacheTTL = 6 * time.Hour

// DistrictSeed identifies one district the collector maintains.
type DistrictSeed struct {
	DistrictCode string
	DistrictName string
	StateCode    string
	StateName    string
	Latitude     float64
	Longitude    float64
}

// SampleDistricts are the districts seeded when the store is empty.
var SampleDistricts = []DistrictSeed{
	{DistrictCode: "IN-DL-ND", DistrictName: "New Delhi", StateCode: "IN-DL", StateName: "Delhi", Latitude: 28.6139, Longitude: 77.2090},
	{DistrictCode: "IN-MH-MU", DistrictName: "Mumbai", StateCode: "IN-MH", StateName: "Maharashtra", Latitude: 19.0760, Longitude: 72.8777},
	{DistrictCode: "IN-KA-BG", DistrictName: "Bangalore", StateCode: "IN-KA", StateName: "Karnataka", Latitude: 12.9716, Longitude: 77.5946},
	{DistrictCode: "IN-TN-CN", DistrictName: "Chennai", StateCode: "IN-TN", StateName: "Tamil Nadu", Latitude: 13.0827, Longitude: 80.2707},
	{DistrictCode: "IN-GJ-AH", DistrictName: "Ahmedabad", StateCode: "IN-GJ", StateName: "Gujarat", Latitude: 23.0225, Longitude: 72.5714},
}

var resourceIDs = map[string]string{
	"employment":  "mgnrega-employment-data",
	"expenditure": "mgnrega-expenditure-data",
	"works":       "mgnrega-works-data",
}

// Collector creates and refreshes district records. Real government-data
// ingestion is out of scope; when the upstream API yields nothing usable the
// collector synthesizes a plausible twelve-month series.
type Collector struct {
	logger     *logrus.Logger
	districts  *store.DistrictStore
	cache      *store.CacheStore
	generative *generative.Client
	baseURL    string
	apiKey     string
	client     *http.Client
}

func NewCollector(cfg *config.Config, districts *store.DistrictStore, cache *store.CacheStore, gen *generative.Client, logger *logrus.Logger) *Collector {
	return &Collector{
		logger:     logger,
		districts:  districts,
		cache:      cache,
		generative: gen,
		baseURL:    strings.TrimRight(cfg.Collector.DataGovURL, "/"),
		apiKey:     cfg.Collector.DataGovAPIKey,
		client:     &http.Client{Timeout: time.Duration(cfg.Collector.Timeout) * time.Second},
	}
}

// CollectAll runs one collection pass over every sample district. Failures
// are logged per district and do not abort the run.
func (c *Collector) CollectAll(ctx context.Context) {
	c.logger.Info("Starting data collection")
	for _, seed := range SampleDistricts {
		if err := c.CollectDistrict(ctx, seed); err != nil {
			c.logger.WithError(err).WithField("district", seed.DistrictName).Error("Failed to collect district data")
		}
	}
	c.logger.Info("Data collection completed")
}

// CollectDistrict creates the district record when absent and appends any
// genuinely new months otherwise.
func (c *Collector) CollectDistrict(ctx context.Context, seed DistrictSeed) error {
	log := c.logger.WithField("district", seed.DistrictName)
	log.Info("Collecting district data")

	points := c.fetchDataPoints(ctx, seed)
	if len(points) == 0 {
		points = c.generateSampleData()
	}

	existing, err := c.districts.FindByCode(ctx, seed.DistrictCode)
	if err != nil {
		return err
	}

	if existing != nil {
		added, err := c.districts.UpsertMonths(ctx, seed.DistrictCode, points)
		if err != nil {
			return err
		}
		log.WithField("new_months", added).Info("Updated district")
		return nil
	}

	record := &models.DistrictRecord{
		DistrictCode: seed.DistrictCode,
		DistrictName: seed.DistrictName,
		StateCode:    seed.StateCode,
		StateName:    seed.StateName,
		Latitude:     seed.Latitude,
		Longitude:    seed.Longitude,
		DataPoints:   points,
		LastUpdated:  time.Now(),
	}

	if c.generative.Enabled() {
		languages := c.generative.DetectLanguages(ctx, seed.Latitude, seed.Longitude, seed.StateName, seed.DistrictName)
		record.CommonLanguages = languages
		record.RegionalLanguages = c.generative.TranslateDistrictName(ctx, seed.DistrictName, seed.StateName, languages)
	}

	if err := c.districts.Insert(ctx, record); err != nil {
		return err
	}
	log.WithField("months", len(points)).Info("Created district")
	return nil
}

type govResponse struct {
	Records []map[string]any `json:"records"`
}

// fetchDataPoints queries the government open-data API for a district,
// caching raw responses in the TTL cache. The upstream resource schema is
// not finalized, so an empty result is the normal outcome and callers fall
// back to synthesized data.
func (c *Collector) fetchDataPoints(ctx context.Context, seed DistrictSeed) []models.MonthlyDataPoint {
	for kind, resourceID := range resourceIDs {
		cacheKey := fmt.Sprintf("datagov:%s:%s", resourceID, seed.DistrictCode)

		var cached govResponse
		if c.cache.Get(ctx, cacheKey, &cached) {
			continue
		}

		body, err := c.fetchResource(ctx, resourceID, seed.DistrictCode)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"resource": kind,
				"district": seed.DistrictCode,
			}).Warn("Government API request failed, falling back to sample data")
			continue
		}

		var response govResponse
		if err := json.Unmarshal(body, &response); err != nil || len(response.Records) == 0 {
			continue
		}

		if err := c.cache.Set(ctx, cacheKey, response, govDataCacheTTL); err != nil {
			c.logger.WithError(err).Warn("Failed to cache government API response")
		}
	}

	return nil
}

func (c *Collector) fetchResource(ctx context.Context, resourceID, districtCode string) ([]byte, error) {
	params := url.Values{
		"api-key":                []string{c.apiKey},
		"format":                 []string{"json"},
		"filters[district_code]": []string{districtCode},
		"limit":                  []string{"100"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, resourceID), nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("government API returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// generateSampleData synthesizes a plausible trailing twelve-month series.
func (c *Collector) generateSampleData() []models.MonthlyDataPoint {
	points := make([]models.MonthlyDataPoint, 0, 12)
	now := time.Now()

	for i := 11; i >= 0; i-- {
		date := now.AddDate(0, -i, 0)

		baseDemand := 5000 + rand.Intn(10000)
		demanded := int64(float64(baseDemand) * (0.7 + rand.Float64()*0.3))

		employmentRate := 0.75 + rand.Float64()*0.2
		employed := int64(float64(demanded) * employmentRate)

		avgWage := float64(200 + rand.Intn(50))
		wages := float64(employed) * avgWage

		totalExpenditure := wages * (1.3 + rand.Float64()*0.3)
		materialExpenditure := totalExpenditure * (0.15 + rand.Float64()*0.1)
		adminExpenditure := totalExpenditure * (0.05 + rand.Float64()*0.05)

		totalWorks := 50 + rand.Intn(100)
		completed := int(float64(totalWorks) * (0.4 + rand.Float64()*0.4))

		points = append(points, models.MonthlyDataPoint{
			Month:                     date.Format("2006-01"),
			Year:                      date.Year(),
			PersonsDemanded:           demanded,
			PersonsEmployed:           employed,
			HouseholdsProvidedWork:    int64(float64(employed) * 0.4),
			TotalHouseholds:           int64(float64(demanded) * 0.45),
			TotalExpenditure:          totalExpenditure,
			AverageWagePaid:           avgWage,
			WagesPaid:                 wages,
			MaterialExpenditure:       materialExpenditure,
			AdministrativeExpenditure: adminExpenditure,
			TotalWorks:                totalWorks,
			CompletedWorks:            completed,
			InProgressWorks:           totalWorks - completed,
		})
	}
	return points
}

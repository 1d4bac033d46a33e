package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mgnrega/server/internal/explain"
	"mgnrega/server/internal/models"

	"github.com/sirupsen/logrus"
)

// DefaultDistrictCode is the fixed fallback district when neither matching
// nor nearest-neighbor selection finds a record.
const DefaultDistrictCode = "IN-DL-ND"

// ErrNoData means no district record could be selected at all, including the
// fallback. Surfaced to clients as a 404.
var ErrNoData = errors.New("no district data found, run data collection first")

// LocationResolver resolves a request origin into a normalized location.
type LocationResolver interface {
	ResolveCoordinates(ctx context.Context, lat, lon float64) models.Location
	ResolveIP(ctx context.Context, ip string) models.Location
}

// DistrictFinder is the slice of the district store the aggregator needs.
type DistrictFinder interface {
	FindByNameOrState(ctx context.Context, district, state string) (*models.DistrictRecord, error)
	FindNearest(ctx context.Context, lat, lon float64) (*models.DistrictRecord, error)
	FindByCode(ctx context.Context, code string) (*models.DistrictRecord, error)
	SeedLanguages(ctx context.Context, code, districtName string, languages []string) error
}

// LanguageDetector maps a state to its commonly spoken languages.
type LanguageDetector interface {
	ForState(stateName string) []string
}

// AnalyticsRecorder appends usage events.
type AnalyticsRecorder interface {
	Record(ctx context.Context, event *models.AnalyticsEvent) error
}

// Request carries the raw per-request inputs of a dashboard build.
type Request struct {
	Lat       string
	Lon       string
	ClientIP  string
	UserAgent string
}

// Aggregator orchestrates one dashboard request: resolve location, select a
// district record, detect languages, and assemble the response payload.
type Aggregator struct {
	logger    *logrus.Logger
	resolver  LocationResolver
	districts DistrictFinder
	languages LanguageDetector
	analytics AnalyticsRecorder
}

func NewAggregator(resolver LocationResolver, districts DistrictFinder, languages LanguageDetector, analytics AnalyticsRecorder, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		logger:    logger,
		resolver:  resolver,
		districts: districts,
		languages: languages,
		analytics: analytics,
	}
}

// Build runs the aggregation pipeline for one request.
func (a *Aggregator) Build(ctx context.Context, req Request) (*models.Dashboard, error) {
	location := a.resolveLocation(ctx, req)
	a.logger.WithFields(logrus.Fields{
		"district": location.District,
		"state":    location.State,
	}).Info("User location resolved")

	record, err := a.selectDistrict(ctx, location)
	if err != nil {
		return nil, err
	}

	// Languages come from the resolved location's state, not from whatever
	// the record has stored; the response always reflects where the user is.
	detected := a.languages.ForState(location.State)

	if len(record.CommonLanguages) == 0 {
		if err := a.districts.SeedLanguages(ctx, record.DistrictCode, record.DistrictName, detected); err != nil {
			a.logger.WithError(err).WithField("district", record.DistrictCode).Warn("Failed to seed district languages")
		} else {
			record.CommonLanguages = detected
			record.RegionalLanguages = placeholderNames(record.DistrictName, detected)
		}
	}

	a.recordView(ctx, req, location, detected)

	summary, historical := buildSummary(record, detected)

	latest := explain.Metrics{}
	if n := len(record.DataPoints); n > 0 {
		dp := record.DataPoints[n-1]
		rate, _ := strconv.ParseFloat(summary.Employment.EmploymentRate, 64)
		latest = explain.Metrics{
			PersonsDemanded:     dp.PersonsDemanded,
			PersonsEmployed:     dp.PersonsEmployed,
			EmploymentRate:      rate,
			TotalExpenditure:    dp.TotalExpenditure,
			WagesPaid:           dp.WagesPaid,
			MaterialExpenditure: dp.MaterialExpenditure,
			TotalWorks:          dp.TotalWorks,
			CompletedWorks:      dp.CompletedWorks,
			InProgressWorks:     dp.InProgressWorks,
		}
	}

	explanations := models.Explanations{
		Employment:  explain.Explain(explain.KindEmployment, latest),
		Expenditure: explain.Explain(explain.KindExpenditure, latest),
		Works:       explain.Explain(explain.KindWorks, latest),
	}

	return &models.Dashboard{
		Success:          true,
		DetectedLocation: location,
		Data: models.DashboardData{
			Summary:           summary,
			DetectedLanguages: detected,
			Explanations:      map[string]models.Explanations{"English": explanations},
			PageContent:       map[string]models.PageContent{"English": englishPageContent()},
			Historical:        historical,
		},
	}, nil
}

// resolveLocation prefers valid browser coordinates and falls back to IP
// resolution, including when coordinates are present but invalid.
func (a *Aggregator) resolveLocation(ctx context.Context, req Request) models.Location {
	if req.Lat != "" && req.Lon != "" {
		lat, errLat := strconv.ParseFloat(req.Lat, 64)
		lon, errLon := strconv.ParseFloat(req.Lon, 64)
		if errLat == nil && errLon == nil && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180 {
			a.logger.Info("Using browser geolocation coordinates")
			return a.resolver.ResolveCoordinates(ctx, lat, lon)
		}
		a.logger.Warn("Invalid coordinates, falling back to IP detection")
	}
	return a.resolver.ResolveIP(ctx, req.ClientIP)
}

// selectDistrict tries name/state match, then nearest-neighbor, then the
// fixed default district.
func (a *Aggregator) selectDistrict(ctx context.Context, location models.Location) (*models.DistrictRecord, error) {
	record, err := a.districts.FindByNameOrState(ctx, location.District, location.State)
	if err != nil {
		return nil, fmt.Errorf("district lookup failed: %w", err)
	}

	if record == nil && location.Latitude != 0 && location.Longitude != 0 {
		record, err = a.districts.FindNearest(ctx, location.Latitude, location.Longitude)
		if err != nil {
			return nil, fmt.Errorf("nearest-district lookup failed: %w", err)
		}
	}

	if record == nil {
		record, err = a.districts.FindByCode(ctx, DefaultDistrictCode)
		if err != nil {
			return nil, fmt.Errorf("default-district lookup failed: %w", err)
		}
	}

	if record == nil {
		return nil, ErrNoData
	}
	return record, nil
}

// recordView appends the analytics event. Best-effort: failures are logged,
// never surfaced.
func (a *Aggregator) recordView(ctx context.Context, req Request, location models.Location, languages []string) {
	event := &models.AnalyticsEvent{
		IPAddress: req.ClientIP,
		Location: models.LocationSnapshot{
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
			City:      location.City,
			District:  location.District,
			State:     location.State,
			Country:   location.Country,
		},
		DetectedLanguages: languages,
		UserAgent:         req.UserAgent,
	}
	if err := a.analytics.Record(ctx, event); err != nil {
		a.logger.WithError(err).Warn("Failed to record analytics event")
	}
}

// employmentRate renders employed/demanded as a percentage with one decimal,
// or "0" when nobody demanded work.
func employmentRate(employed, demanded int64) string {
	if demanded <= 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(employed)/float64(demanded)*100)
}

func placeholderNames(districtName string, languages []string) []models.RegionalName {
	names := make([]models.RegionalName, len(languages))
	for i, lang := range languages {
		names[i] = models.RegionalName{Language: lang, Name: districtName}
	}
	return names
}

// buildSummary derives the headline summary and the trailing twelve-month
// historical series from a district record.
func buildSummary(record *models.DistrictRecord, detected []string) (models.Summary, []models.HistoricalPoint) {
	recent := record.DataPoints
	if len(recent) > 12 {
		recent = recent[len(recent)-12:]
	}

	summary := models.Summary{
		DistrictName:             record.DistrictName,
		DistrictNameTranslations: record.RegionalLanguages,
		StateName:                record.StateName,
		DetectedLanguages:        detected,
		LastUpdated:              record.LastUpdated,
		Employment:               models.EmploymentSummary{EmploymentRate: "0"},
	}

	if len(recent) > 0 {
		latest := recent[len(recent)-1]
		summary.CurrentMonth = latest.Month
		summary.Employment = models.EmploymentSummary{
			PersonsDemanded: latest.PersonsDemanded,
			PersonsEmployed: latest.PersonsEmployed,
			EmploymentRate:  employmentRate(latest.PersonsEmployed, latest.PersonsDemanded),
		}
		summary.Expenditure = models.ExpenditureSummary{
			Total:    latest.TotalExpenditure,
			Wages:    latest.WagesPaid,
			Material: latest.MaterialExpenditure,
			Admin:    latest.AdministrativeExpenditure,
		}
		summary.Works = models.WorksSummary{
			Total:      latest.TotalWorks,
			Completed:  latest.CompletedWorks,
			InProgress: latest.InProgressWorks,
		}
	}

	historical := make([]models.HistoricalPoint, len(recent))
	for i, dp := range recent {
		historical[i] = models.HistoricalPoint{
			Month: dp.Month,
			Year:  dp.Year,
			Employment: models.HistoricalEmployment{
				Demanded: dp.PersonsDemanded,
				Employed: dp.PersonsEmployed,
				Rate:     employmentRate(dp.PersonsEmployed, dp.PersonsDemanded),
			},
			Expenditure: dp.TotalExpenditure,
			Works: models.HistoricalWorks{
				Total:     dp.TotalWorks,
				Completed: dp.CompletedWorks,
			},
		}
	}

	return summary, historical
}

func englishPageContent() models.PageContent {
	return models.PageContent{
		Title:                  "MGNREGA Made Easy",
		Tagline:                "Know Where Your Region Stands",
		WelcomeText:            "Welcome to Your District Dashboard",
		EmploymentTitle:        "Employment Status",
		ExpenditureTitle:       "Money Spent Analysis",
		WorksTitle:             "Works Progress",
		TrendTitle:             "Employment Trends (Last 12 Months)",
		StatsTitle:             "Key Statistics",
		ChooseLanguage:         "Choose Language:",
		EmploymentRateLabel:    "Employment Rate",
		GotWorkLabel:           "Got Work",
		TotalPeopleLabel:       "Total People Employed",
		ThisMonthLabel:         "This Month",
		TotalMoneyLabel:        "Total Money Spent",
		TotalProjectsLabel:     "Total Projects",
		OngoingLabel:           "Ongoing",
		CompletedProjectsLabel: "Completed Projects",
		FinishedLabel:          "Finished",
		AverageWageLabel:       "Average Wage",
		PerDayLabel:            "Per Day",
	}
}

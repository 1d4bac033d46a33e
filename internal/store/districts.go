package store

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"mgnrega/server/internal/database"
	"mgnrega/server/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DistrictStore persists the per-district time series.
type DistrictStore struct {
	db     *database.Database
	logger *logrus.Logger
}

func NewDistrictStore(db *database.Database, logger *logrus.Logger) *DistrictStore {
	return &DistrictStore{db: db, logger: logger}
}

// FindByNameOrState returns the first district whose name or state contains
// the given values, case-insensitively. Matches are ordered by district code
// so ties resolve deterministically. Returns nil when nothing matches.
func (s *DistrictStore) FindByNameOrState(ctx context.Context, district, state string) (*models.DistrictRecord, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"districtName": primitive.Regex{Pattern: regexp.QuoteMeta(district), Options: "i"}},
		bson.M{"stateName": primitive.Regex{Pattern: regexp.QuoteMeta(state), Options: "i"}},
	}}
	opts := options.FindOne().SetSort(bson.D{{Key: "districtCode", Value: 1}})

	var record models.DistrictRecord
	err := s.db.Districts().FindOne(ctx, filter, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find district: %w", err)
	}
	return &record, nil
}

// FindByCode returns the district with the given code, or nil when absent.
func (s *DistrictStore) FindByCode(ctx context.Context, code string) (*models.DistrictRecord, error) {
	var record models.DistrictRecord
	err := s.db.Districts().FindOne(ctx, bson.M{"districtCode": code}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find district by code: %w", err)
	}
	return &record, nil
}

// FindNearest returns the district closest to the given coordinates among
// records with known (non-zero) coordinates, or nil when no candidate exists.
func (s *DistrictStore) FindNearest(ctx context.Context, lat, lon float64) (*models.DistrictRecord, error) {
	cursor, err := s.db.Districts().Find(ctx, bson.M{
		"latitude":  bson.M{"$ne": 0},
		"longitude": bson.M{"$ne": 0},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []models.DistrictRecord
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode districts: %w", err)
	}

	return nearestDistrict(candidates, lat, lon), nil
}

// nearestDistrict selects the candidate with the minimum great-circle
// distance to the query point. Zero-coordinate records never qualify.
func nearestDistrict(candidates []models.DistrictRecord, lat, lon float64) *models.DistrictRecord {
	from := orb.Point{lon, lat}

	var nearest *models.DistrictRecord
	minDistance := 0.0
	for i := range candidates {
		c := &candidates[i]
		if c.Latitude == 0 && c.Longitude == 0 {
			continue
		}
		d := geo.DistanceHaversine(from, orb.Point{c.Longitude, c.Latitude})
		if nearest == nil || d < minDistance {
			nearest = c
			minDistance = d
		}
	}
	return nearest
}

// mergeDataPoints appends the points whose month keys are not yet present and
// returns the re-sorted series along with the number of months added.
// Existing months are never overwritten.
func mergeDataPoints(existing, incoming []models.MonthlyDataPoint) ([]models.MonthlyDataPoint, int) {
	seen := make(map[string]bool, len(existing))
	for _, dp := range existing {
		seen[dp.Month] = true
	}

	merged := append([]models.MonthlyDataPoint{}, existing...)
	added := 0
	for _, dp := range incoming {
		if seen[dp.Month] {
			continue
		}
		seen[dp.Month] = true
		merged = append(merged, dp)
		added++
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Month < merged[j].Month
	})
	return merged, added
}

// UpsertMonths merges new monthly points into the district's series by month
// key and refreshes lastUpdated. Applying the same batch twice adds nothing.
func (s *DistrictStore) UpsertMonths(ctx context.Context, code string, points []models.MonthlyDataPoint) (int, error) {
	record, err := s.FindByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, fmt.Errorf("district %s not found", code)
	}

	merged, added := mergeDataPoints(record.DataPoints, points)

	update := bson.M{"$set": bson.M{
		"dataPoints":  merged,
		"lastUpdated": time.Now(),
	}}
	if _, err := s.db.Districts().UpdateOne(ctx, bson.M{"districtCode": code}, update); err != nil {
		return 0, fmt.Errorf("failed to update district %s: %w", code, err)
	}
	return added, nil
}

// Insert creates a new district record.
func (s *DistrictStore) Insert(ctx context.Context, record *models.DistrictRecord) error {
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}
	if _, err := s.db.Districts().InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert district %s: %w", record.DistrictCode, err)
	}
	return nil
}

// SeedLanguages stores the detected languages on a district that has none
// yet, with the English district name as a placeholder localized name for
// each language. The filter makes the write idempotent, so concurrent
// requests racing on a fresh record converge on the same result.
func (s *DistrictStore) SeedLanguages(ctx context.Context, code, districtName string, languages []string) error {
	regional := make([]models.RegionalName, len(languages))
	for i, lang := range languages {
		regional[i] = models.RegionalName{Language: lang, Name: districtName}
	}

	filter := bson.M{
		"districtCode": code,
		"$or": bson.A{
			bson.M{"commonLanguages": bson.M{"$exists": false}},
			bson.M{"commonLanguages": bson.M{"$size": 0}},
		},
	}
	update := bson.M{"$set": bson.M{
		"commonLanguages":   languages,
		"regionalLanguages": regional,
	}}

	if _, err := s.db.Districts().UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to seed languages for %s: %w", code, err)
	}
	return nil
}

// List returns a light projection of every district, sorted by name.
func (s *DistrictStore) List(ctx context.Context) ([]models.DistrictInfo, error) {
	opts := options.Find().
		SetProjection(bson.M{
			"districtName": 1,
			"stateName":    1,
			"latitude":     1,
			"longitude":    1,
			"lastUpdated":  1,
		}).
		SetSort(bson.D{{Key: "districtName", Value: 1}})

	cursor, err := s.db.Districts().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer cursor.Close(ctx)

	districts := []models.DistrictInfo{}
	if err := cursor.All(ctx, &districts); err != nil {
		return nil, fmt.Errorf("failed to decode districts: %w", err)
	}
	return districts, nil
}

// Count returns the number of district records.
func (s *DistrictStore) Count(ctx context.Context) (int64, error) {
	return s.db.Districts().CountDocuments(ctx, bson.M{})
}

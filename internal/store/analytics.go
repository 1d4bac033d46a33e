package store

import (
	"context"
	"fmt"
	"time"

	"mgnrega/server/internal/database"
	"mgnrega/server/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// AnalyticsStore appends usage events and answers aggregate view counts.
type AnalyticsStore struct {
	db     *database.Database
	logger *logrus.Logger
}

func NewAnalyticsStore(db *database.Database, logger *logrus.Logger) *AnalyticsStore {
	return &AnalyticsStore{db: db, logger: logger}
}

// Record appends one event. Events are write-once and never updated.
func (s *AnalyticsStore) Record(ctx context.Context, event *models.AnalyticsEvent) error {
	if event.Views == 0 {
		event.Views = 1
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if _, err := s.db.Analytics().InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to record analytics event: %w", err)
	}
	return nil
}

// TotalViews sums the views field across all events.
func (s *AnalyticsStore) TotalViews(ctx context.Context) (int64, error) {
	pipeline := bson.A{
		bson.M{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$views"},
		}},
	}

	cursor, err := s.db.Analytics().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate views: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode view totals: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// TodayViews counts events created since local midnight.
func (s *AnalyticsStore) TodayViews(ctx context.Context) (int64, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.db.Analytics().CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": midnight},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count today's views: %w", err)
	}
	return count, nil
}

package store

import (
	"context"
	"encoding/json"
	"time"

	"mgnrega/server/internal/database"
	"mgnrega/server/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CacheStore is a generic short-lived key/value store backed by the cache
// collection. Mongo's TTL monitor removes expired entries; Get additionally
// checks expiry because the monitor only runs periodically.
type CacheStore struct {
	db     *database.Database
	logger *logrus.Logger
}

func NewCacheStore(db *database.Database, logger *logrus.Logger) *CacheStore {
	return &CacheStore{db: db, logger: logger}
}

// Get unmarshals the cached payload for key into v. Returns false on a miss,
// an expired entry, or any lookup error; cache failures are never fatal.
func (s *CacheStore) Get(ctx context.Context, key string, v any) bool {
	var entry models.CacheEntry
	err := s.db.Cache().FindOne(ctx, bson.M{"key": key}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return false
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache lookup failed")
		return false
	}
	if time.Now().After(entry.ExpiresAt) {
		return false
	}
	if err := json.Unmarshal(entry.Data, v); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to decode cache entry")
		return false
	}
	return true
}

// Set stores v under key for the given time to live, replacing any previous
// entry.
func (s *CacheStore) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	entry := models.CacheEntry{
		Key:       key,
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	}

	opts := options.Replace().SetUpsert(true)
	_, err = s.db.Cache().ReplaceOne(ctx, bson.M{"key": key}, entry, opts)
	return err
}

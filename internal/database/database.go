package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DistrictsCollection = "districts"
	AnalyticsCollection = "analytics"
	CacheCollection     = "cache"
)

// Database wraps the Mongo client and the collections used by the service.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logrus.Logger
}

func NewDatabase(uri, name string, connectTimeout time.Duration, logger *logrus.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	d := &Database{
		client: client,
		db:     client.Database(name),
		logger: logger,
	}

	if err := d.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.WithField("database", name).Info("Connected to MongoDB")
	return d, nil
}

// ensureIndexes creates the unique district-code index and the TTL index
// that lets Mongo expire cache entries on its own.
func (d *Database) ensureIndexes(ctx context.Context) error {
	_, err := d.Districts().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "districtCode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "latitude", Value: 1}, {Key: "longitude", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create district indexes: %w", err)
	}

	_, err = d.Analytics().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create analytics index: %w", err)
	}

	_, err = d.Cache().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create cache indexes: %w", err)
	}

	return nil
}

func (d *Database) Districts() *mongo.Collection {
	return d.db.Collection(DistrictsCollection)
}

func (d *Database) Analytics() *mongo.Collection {
	return d.db.Collection(AnalyticsCollection)
}

func (d *Database) Cache() *mongo.Collection {
	return d.db.Collection(CacheCollection)
}

func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

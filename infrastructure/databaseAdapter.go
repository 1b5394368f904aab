package infrastructure

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	bloodPressureCollectionName  = "blood_pressure"
	bloodSugarCollectionName     = "blood_sugar"
	weightCollectionName         = "weight"
	medicationsCollectionName    = "medications"
	medicationLogsCollectionName = "medication_logs"
	chatsCollectionName          = "chats"
	symptomsCollectionName       = "symptom_analyses"
)

// MongoConfig connection settings for the store client
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// healthmateIndexes created at startup, per collection
var healthmateIndexes = map[string][]mongo.IndexModel{
	bloodPressureCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}}},
	},
	bloodSugarCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}}},
	},
	weightCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}}},
	},
	medicationsCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	medicationLogsCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}}},
	},
	chatsCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "sessionId", Value: 1}, {Key: "createdAt", Value: 1}}},
	},
	symptomsCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
}

// StoreClient owns the mongo client lifecycle shared by the repositories
type StoreClient struct {
	client *mongo.Client
	config *MongoConfig
	logger *logrus.Logger
}

// NewStoreClient builds the client without connecting, Start does the rest
func NewStoreClient(config *MongoConfig, logger *logrus.Logger) (*StoreClient, error) {
	client, err := mongo.NewClient(options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, err
	}
	return &StoreClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Start connects, pings and creates the collection indexes
func (c *StoreClient) Start(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	if err := c.client.Connect(ctx); err != nil {
		return err
	}
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}
	for name, indexes := range healthmateIndexes {
		if _, err := c.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	c.logger.Printf("connected to mongo database %s", c.config.Database)
	return nil
}

func (c *StoreClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *StoreClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *StoreClient) Collection(name string) *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(name)
}

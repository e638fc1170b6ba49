package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"veriflow/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

var connMu sync.Mutex

// InitDB initializes the MongoDB connection at startup and fails fast on error.
func InitDB() {
	if _, err := Connect(); err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB successfully!")
}

// Connect returns the cached MongoDB client, establishing the connection on
// first use. A failed connection attempt is never cached: the client is only
// stored after a successful ping, so a later call retries from scratch.
func Connect() (*mongo.Client, error) {
	connMu.Lock()
	defer connMu.Unlock()

	if MongoClient != nil {
		return MongoClient, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	return MongoClient, nil
}

// GetDatabase returns a handle to the configured database, connecting lazily.
func GetDatabase() (*mongo.Database, error) {
	client, err := Connect()
	if err != nil {
		return nil, err
	}
	return client.Database(config.AppConfig.DatabaseName), nil
}

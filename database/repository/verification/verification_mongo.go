package verificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veriflow/config"
	"veriflow/database"
	"veriflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "user_verifications"

// MongoVerificationRepo implements VerificationRepository using MongoDB.
type MongoVerificationRepo struct {
	coll *mongo.Collection
}

// NewMongoVerificationRepo creates a new VerificationRepository backed by MongoDB.
func NewMongoVerificationRepo() VerificationRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection(collectionName)
	repo := &MongoVerificationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique email index the upsert protocol relies on.
func (r *MongoVerificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "lastUpdated", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByEmail retrieves the full record for an email, or (nil, nil) when no
// record exists yet.
func (r *MongoVerificationRepo) GetByEmail(email string) (*models.VerificationRecord, error) {
	return r.GetByEmailWithProjection(email, nil)
}

// GetByEmailWithProjection retrieves a record by email using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoVerificationRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.VerificationRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	findOpts := options.FindOne()
	if projection != nil {
		findOpts.SetProjection(projection)
	}

	var rec models.VerificationRecord
	err := r.coll.FindOne(ctx, bson.M{"email": email}, findOpts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch verification record for %s: %w", email, err)
	}
	return &rec, nil
}

// FindStalePending returns pending records whose last update predates the cutoff.
func (r *MongoVerificationRepo) FindStalePending(cutoff time.Time, limit int64) ([]models.VerificationRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":      models.StatusPending,
		"lastUpdated": bson.M{"$lt": cutoff},
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query stale pending records: %w", err)
	}
	defer cur.Close(ctx)

	var recs []models.VerificationRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode stale pending records: %w", err)
	}
	return recs, nil
}

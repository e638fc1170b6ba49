// File: database/repository/verification/verificationMongoCrud.go
package verificationRepo

import (
	"fmt"
	"time"

	"veriflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertStatus applies a reconciliation write keyed by email. The fields map
// is written via $set; createdAt is set only when the document is inserted,
// never overwritten on later webhooks. The single-document upsert is atomic
// at the storage layer, which is the only ordering guarantee the protocol
// provides (last-write-wins).
func (r *MongoVerificationRepo) UpsertStatus(email string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"email": email}
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"createdAt": time.Now(), "email": email},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert verification record for %s: %w", email, err)
	}
	return nil
}

// SaveRegistration persists registration data, creating the record in a
// pending state when it does not exist. A repeated registration for the same
// email updates the registration fields but leaves status and createdAt
// untouched, so an already-running verification is not reset.
func (r *MongoVerificationRepo) SaveRegistration(rec *models.VerificationRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"email": rec.Email}
	update := bson.M{
		"$set": bson.M{
			"passwordHash": rec.PasswordHash,
			"fullName":     rec.FullName,
			"photoFrontId": rec.PhotoFrontID,
			"lastUpdated":  now,
		},
		"$setOnInsert": bson.M{
			"email":     rec.Email,
			"status":    models.StatusPending,
			"createdAt": now,
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save registration for %s: %w", rec.Email, err)
	}
	return nil
}

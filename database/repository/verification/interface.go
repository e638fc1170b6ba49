package verificationRepo

import (
	"time"

	"veriflow/models"

	"go.mongodb.org/mongo-driver/bson"
)

// VerificationRepository defines data access for the per-user verification
// record collection. All writes are single-document upserts keyed by email,
// so concurrent webhooks for different users never interfere and repeated
// webhooks for the same user serialize to last-write-wins.
type VerificationRepository interface {
	// UpsertStatus applies a reconciliation write for the given email.
	// The fields map is applied via $set; createdAt is only set on insert.
	UpsertStatus(email string, fields bson.M) error
	// SaveRegistration persists registration data for the email, creating
	// the record with a pending status when it does not exist yet.
	SaveRegistration(rec *models.VerificationRecord) error
	// GetByEmail retrieves the full record, or (nil, nil) when absent.
	GetByEmail(email string) (*models.VerificationRecord, error)
	// GetByEmailWithProjection retrieves the record with a projection
	// applied. Pass nil for the full document.
	GetByEmailWithProjection(email string, projection bson.M) (*models.VerificationRecord, error)
	// FindStalePending returns records still pending whose last update is
	// older than the cutoff, for the background reconciler.
	FindStalePending(cutoff time.Time, limit int64) ([]models.VerificationRecord, error)
}

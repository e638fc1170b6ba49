package verification

import (
	"errors"

	"veriflow/models"
)

// ErrNoVendorData means the webhook payload carried no resolvable user
// identifier. The handler acknowledges such payloads without persisting
// anything, so the provider does not retry a payload the system cannot act
// on.
var ErrNoVendorData = errors.New("webhook payload carries no resolvable user identifier")

// VerificationService reconciles asynchronous provider callbacks with the
// persisted per-user verification record and serves status lookups.
type VerificationService interface {
	// ProcessWebhook resolves the user identifier from a verified payload
	// and applies the reconciliation upsert. It returns the resolved email.
	ProcessWebhook(payload *models.VeriffWebhookPayload) (string, error)
	// GetStatus looks up the current status for an email. found is false
	// when no record exists yet (first webhook still outstanding).
	GetStatus(email string) (status models.VerificationStatus, found bool, err error)
	// GetDetails returns the full sanitized record with the credential hash
	// stripped, or (nil, nil) when no record exists.
	GetDetails(email string) (*models.VerificationRecord, error)
}

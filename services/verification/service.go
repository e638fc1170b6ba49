package verification

import (
	"fmt"
	"time"

	verificationRepo "veriflow/database/repository/verification"
	"veriflow/models"
	"veriflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultVerificationService is the production implementation.
type DefaultVerificationService struct {
	Repo verificationRepo.VerificationRepository
}

// ProcessWebhook reconciles a verified webhook payload into the status store.
// The caller must have verified the payload signature already; this method
// places full trust in its input.
func (s *DefaultVerificationService) ProcessWebhook(payload *models.VeriffWebhookPayload) (string, error) {
	logger := utils.GetLogger()

	if payload == nil || payload.Verification == nil {
		return "", ErrNoVendorData
	}
	v := payload.Verification

	if v.ID == "" {
		logger.Warn("Webhook payload missing verification ID")
	}
	if v.Status == "" {
		logger.Warn("Webhook payload missing status")
	}

	email := resolveEmail(v)
	if email == "" {
		return "", ErrNoVendorData
	}

	fields := bson.M{
		"status":         v.Status,
		"verificationId": v.ID,
		"lastUpdated":    time.Now(),
	}

	// Personal and document attributes are only trusted on approval. Fields
	// absent from the payload are written as explicit nulls so a record never
	// carries a value contradicting the provider's latest payload.
	if v.Status == models.StatusApproved {
		if v.Person != nil {
			fields["firstName"] = nullable(v.Person.FirstName)
			fields["lastName"] = nullable(v.Person.LastName)
			fields["dateOfBirth"] = nullable(v.Person.DateOfBirth)
		}
		if v.Document != nil {
			fields["documentType"] = nullable(v.Document.Type)
			fields["documentNumber"] = nullable(v.Document.Number)
			// validUntil is the document expiry date.
			fields["documentExpiry"] = nullable(v.Document.ValidUntil)
			fields["documentCountry"] = nullable(v.Document.Country)
		}
	}

	if err := s.Repo.UpsertStatus(email, fields); err != nil {
		return email, fmt.Errorf("failed to reconcile webhook for %s: %w", email, err)
	}

	logger.Info("Reconciled verification webhook",
		zap.String("email", email),
		zap.String("verificationId", v.ID),
		zap.String("status", string(v.Status)))
	return email, nil
}

// resolveEmail returns the user identifier for a payload, trying vendorData
// first and then the fallback locations the provider is known to use.
func resolveEmail(v *models.VeriffVerification) string {
	if v.VendorData != "" {
		return string(v.VendorData)
	}
	if v.Person != nil && v.Person.Email != "" {
		return string(v.Person.Email)
	}
	if v.AdditionalData != nil && v.AdditionalData.Email != "" {
		return string(v.AdditionalData.Email)
	}
	return ""
}

// nullable maps an absent provider field to an explicit BSON null.
func nullable(f models.FlexString) interface{} {
	if f == "" {
		return nil
	}
	return string(f)
}

// GetStatus looks up the current verification status for an email.
func (s *DefaultVerificationService) GetStatus(email string) (models.VerificationStatus, bool, error) {
	rec, err := s.Repo.GetByEmailWithProjection(email, bson.M{"email": 1, "status": 1})
	if err != nil {
		return "", false, err
	}
	if rec == nil {
		return "", false, nil
	}
	return rec.Status, true, nil
}

// GetDetails returns the sanitized record for an email. The credential hash
// is stripped at the query level, never loaded into memory.
func (s *DefaultVerificationService) GetDetails(email string) (*models.VerificationRecord, error) {
	rec, err := s.Repo.GetByEmailWithProjection(email, bson.M{"passwordHash": 0})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if rec.Status == "" {
		rec.Status = models.StatusUnknown
	}
	return rec, nil
}

// models/verification.go
package models

import "time"

// VerificationStatus is the status reported by the KYC provider for a
// verification session. The store accepts whatever the provider reports;
// clients decide which statuses are terminal.
type VerificationStatus string

const (
	StatusPending     VerificationStatus = "pending"
	StatusApproved    VerificationStatus = "approved"
	StatusDeclined    VerificationStatus = "declined"
	StatusExpired     VerificationStatus = "expired"
	StatusAbandoned   VerificationStatus = "abandoned"
	StatusResubmitted VerificationStatus = "resubmitted"
	StatusUnknown     VerificationStatus = "unknown"
)

// IsTerminal reports whether no further status changes are expected.
func (s VerificationStatus) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusDeclined, StatusExpired, StatusAbandoned:
		return true
	}
	return false
}

// VerificationRecord is the single persisted record per end user, keyed by
// email. Personal and document fields are only trustworthy when status is
// approved; a webhook that omits them writes explicit nulls so the record
// never contradicts the provider's latest payload.
type VerificationRecord struct {
	Email          string             `bson:"email" json:"email"`
	Status         VerificationStatus `bson:"status" json:"status"`
	VerificationID string             `bson:"verificationId" json:"verificationId"`

	FirstName   *FlexString `bson:"firstName,omitempty" json:"firstName"`
	LastName    *FlexString `bson:"lastName,omitempty" json:"lastName"`
	DateOfBirth *FlexString `bson:"dateOfBirth,omitempty" json:"dateOfBirth"`

	DocumentType    *FlexString `bson:"documentType,omitempty" json:"documentType"`
	DocumentNumber  *FlexString `bson:"documentNumber,omitempty" json:"documentNumber"`
	DocumentExpiry  *FlexString `bson:"documentExpiry,omitempty" json:"documentExpiry"`
	DocumentCountry *FlexString `bson:"documentCountry,omitempty" json:"documentCountry"`

	// Registration data saved before the provider flow starts.
	FullName     string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	PasswordHash string `bson:"passwordHash,omitempty" json:"-"`
	PhotoFrontID string `bson:"photoFrontId,omitempty" json:"photoFrontId,omitempty"`

	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}

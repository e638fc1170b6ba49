// models/webhook.go
package models

// VeriffWebhookPayload is the decision payload Veriff POSTs to the webhook
// endpoint once a verification session reaches a reportable state.
type VeriffWebhookPayload struct {
	Verification *VeriffVerification `json:"verification"`
}

// VeriffVerification carries the session outcome. VendorData echoes back the
// opaque string chosen at session-creation time (the user's email here), so
// the callback can be correlated to a record without an extra lookup.
type VeriffVerification struct {
	ID             string                `json:"id"`
	Status         VerificationStatus    `json:"status"`
	VendorData     FlexString            `json:"vendorData"`
	Person         *VeriffPerson         `json:"person,omitempty"`
	Document       *VeriffDocument       `json:"document,omitempty"`
	AdditionalData *VeriffAdditionalData `json:"additionalData,omitempty"`
}

type VeriffPerson struct {
	FirstName   FlexString `json:"firstName"`
	LastName    FlexString `json:"lastName"`
	DateOfBirth FlexString `json:"dateOfBirth"`
	Email       FlexString `json:"email"`
}

type VeriffDocument struct {
	Type       FlexString `json:"type"`
	Number     FlexString `json:"number"`
	ValidUntil FlexString `json:"validUntil"`
	Country    FlexString `json:"country"`
}

// VeriffAdditionalData is a fallback location for the user's email when
// vendorData is absent from the payload.
type VeriffAdditionalData struct {
	Email FlexString `json:"email"`
}

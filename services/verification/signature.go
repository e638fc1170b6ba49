package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Signature failure classes are distinct so the webhook handler can map them
// to different responses and security monitoring can tell a misconfigured
// caller apart from a forgery attempt.
var (
	ErrMissingSignature = errors.New("signature header is missing")
	ErrEmptyBody        = errors.New("request body is empty")
	ErrInvalidSignature = errors.New("invalid signature")
)

// SignatureVerifier authenticates webhook payloads with an HMAC-SHA256 keyed
// hash over the exact raw body bytes. The body must be captured before any
// JSON parsing; re-serialization can change the bytes and break matching.
type SignatureVerifier struct {
	secret []byte
}

// NewSignatureVerifier creates a verifier for the given shared secret.
func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(secret)}
}

// Verify checks the hex-encoded signature against the raw body. It is a pure
// function over its inputs; the comparison is constant-time.
func (v *SignatureVerifier) Verify(rawBody []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}
	if len(rawBody) == 0 {
		return ErrEmptyBody
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the hex-encoded HMAC-SHA256 signature for a body. Used by
// tests and the synthetic-webhook tooling.
func (v *SignatureVerifier) Sign(rawBody []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

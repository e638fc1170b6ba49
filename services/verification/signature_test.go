package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureVerifier_Valid(t *testing.T) {
	secret := "top-secret"
	body := []byte(`{"verification":{"id":"v1","status":"approved","vendorData":"a@b.com"}}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	v := NewSignatureVerifier(secret)
	require.NoError(t, v.Verify(body, sig))
}

func TestSignatureVerifier_WrongSecret(t *testing.T) {
	body := []byte(`{"verification":{"id":"v1"}}`)
	sig := NewSignatureVerifier("wrong-secret").Sign(body)

	err := NewSignatureVerifier("right-secret").Verify(body, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSignatureVerifier_MissingSignature(t *testing.T) {
	v := NewSignatureVerifier("secret")
	err := v.Verify([]byte(`{}`), "")
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestSignatureVerifier_EmptyBody(t *testing.T) {
	v := NewSignatureVerifier("secret")
	err := v.Verify(nil, "deadbeef")
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestSignatureVerifier_TamperedBody(t *testing.T) {
	v := NewSignatureVerifier("secret")
	sig := v.Sign([]byte(`{"a":1}`))

	err := v.Verify([]byte(`{"a":2}`), sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSignatureVerifier_SignRoundTrip(t *testing.T) {
	v := NewSignatureVerifier("secret")
	body := []byte("payload bytes")
	require.NoError(t, v.Verify(body, v.Sign(body)))
}

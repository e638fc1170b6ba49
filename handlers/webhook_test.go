package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"veriflow/config"
	"veriflow/models"
	"veriflow/services/verification"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockVerificationSvc struct{ mock.Mock }

func (m *mockVerificationSvc) ProcessWebhook(payload *models.VeriffWebhookPayload) (string, error) {
	args := m.Called(payload)
	return args.String(0), args.Error(1)
}

func (m *mockVerificationSvc) GetStatus(email string) (models.VerificationStatus, bool, error) {
	args := m.Called(email)
	return args.Get(0).(models.VerificationStatus), args.Bool(1), args.Error(2)
}

func (m *mockVerificationSvc) GetDetails(email string) (*models.VerificationRecord, error) {
	args := m.Called(email)
	if r, _ := args.Get(0).(*models.VerificationRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

const testSecret = "test-webhook-secret"

func setupWebhookRouter(svc verification.VerificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.AppConfig.VeriffSecretKey = testSecret
	config.AppConfig.VeriffSignatureHeader = "x-hmac-signature"

	r := gin.New()
	h := NewWebhookHandler(svc)
	r.POST("/api/webhooks/veriff", h.VeriffWebhookHandler)
	return r
}

func signedRequest(t *testing.T, body []byte, secret string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/veriff", bytes.NewReader(body))
	sig := verification.NewSignatureVerifier(secret).Sign(body)
	req.Header.Set("x-hmac-signature", sig)
	return req
}

// --- tests ---

func TestVeriffWebhook_ValidPayload(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)

	body := []byte(`{"verification":{"id":"v1","status":"approved","vendorData":"a@b.com","person":{"firstName":"Jane"}}}`)
	svc.On("ProcessWebhook", mock.Anything).Return("a@b.com", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, body, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)

	// The handler hands the service the parsed payload, not a re-shaped one.
	payload := svc.Calls[0].Arguments.Get(0).(*models.VeriffWebhookPayload)
	require.NotNil(t, payload.Verification)
	assert.Equal(t, "v1", payload.Verification.ID)
	assert.Equal(t, models.FlexString("a@b.com"), payload.Verification.VendorData)
	assert.Equal(t, models.FlexString("Jane"), payload.Verification.Person.FirstName)
}

func TestVeriffWebhook_WrongSecretRejectedWithoutWrite(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)

	body := []byte(`{"verification":{"id":"v1","status":"approved","vendorData":"a@b.com"}}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, body, "some-other-secret"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "ProcessWebhook", mock.Anything)
}

func TestVeriffWebhook_MissingSignature(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/veriff", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ProcessWebhook", mock.Anything)
}

func TestVeriffWebhook_MalformedJSON(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)

	body := []byte(`{"verification":`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, body, testSecret))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ProcessWebhook", mock.Anything)
}

func TestVeriffWebhook_MissingVendorDataAcknowledged(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)

	body := []byte(`{"verification":{"id":"v1","status":"approved"}}`)
	svc.On("ProcessWebhook", mock.Anything).Return("", verification.ErrNoVendorData)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, body, testSecret))

	// Acknowledged so the provider stops retrying, but nothing persisted.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "missing vendorData")
}

func TestVeriffWebhook_StoreFailureReturns500(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)

	body := []byte(`{"verification":{"id":"v1","status":"approved","vendorData":"a@b.com"}}`)
	svc.On("ProcessWebhook", mock.Anything).Return("a@b.com", assert.AnError)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, body, testSecret))

	// 500 triggers the provider's retry mechanism.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVeriffWebhook_MissingSecretFailsClosed(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)
	config.AppConfig.VeriffSecretKey = ""
	defer func() { config.AppConfig.VeriffSecretKey = testSecret }()

	body := []byte(`{"verification":{"id":"v1"}}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, body, testSecret))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertNotCalled(t, "ProcessWebhook", mock.Anything)
}

func TestVeriffWebhook_WrappedVendorDataShape(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupWebhookRouter(svc)

	body := []byte(`{"verification":{"id":"v1","status":"approved","vendorData":{"value":"a@b.com"}}}`)
	svc.On("ProcessWebhook", mock.Anything).Return("a@b.com", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, body, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	payload := svc.Calls[0].Arguments.Get(0).(*models.VeriffWebhookPayload)
	assert.Equal(t, models.FlexString("a@b.com"), payload.Verification.VendorData)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"veriflow/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStatusRouter(svc *mockVerificationSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStatusHandler(svc)
	r.GET("/api/verification/status", h.GetVerificationStatusHandler)
	r.GET("/api/verification/details", h.GetUserDetailsHandler)
	return r
}

func TestGetVerificationStatus_MissingEmail(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupStatusRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/verification/status", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetStatus")
}

func TestGetVerificationStatus_NotFoundThenFound(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupStatusRouter(svc)

	// No webhook yet: the poller sees a distinguishable not_found.
	svc.On("GetStatus", "a@b.com").Return(models.VerificationStatus(""), false, nil).Once()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/verification/status?email=a@b.com", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["status"])

	// Webhook landed: the same lookup now resolves.
	svc.On("GetStatus", "a@b.com").Return(models.StatusApproved, true, nil).Once()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/verification/status?email=a@b.com", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "approved", body["status"])
	svc.AssertExpectations(t)
}

func TestGetVerificationStatus_RepoErrorIs500(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupStatusRouter(svc)

	svc.On("GetStatus", "a@b.com").Return(models.VerificationStatus(""), false, assert.AnError)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/verification/status?email=a@b.com", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetUserDetails_SanitizedRecord(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupStatusRouter(svc)

	rec := &models.VerificationRecord{
		Email:          "a@b.com",
		Status:         models.StatusApproved,
		VerificationID: "v1",
		PasswordHash:   "$2a$10$should-never-leak",
		FirstName:      models.Flex("Jane"),
	}
	svc.On("GetDetails", "a@b.com").Return(rec, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/verification/details?email=a@b.com", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approved"`)
	assert.Contains(t, w.Body.String(), `"Jane"`)
	assert.NotContains(t, w.Body.String(), "should-never-leak")
}

func TestGetUserDetails_NotFound(t *testing.T) {
	svc := new(mockVerificationSvc)
	r := setupStatusRouter(svc)

	svc.On("GetDetails", "nobody@b.com").Return(nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/verification/details?email=nobody@b.com", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

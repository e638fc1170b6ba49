package handlers

import (
	"net/http"

	"veriflow/services/verification"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusHandler serves read-only verification status lookups for the client
// poller.
type StatusHandler struct {
	Service verification.VerificationService
}

// NewStatusHandler creates a new StatusHandler instance.
func NewStatusHandler(svc verification.VerificationService) *StatusHandler {
	return &StatusHandler{Service: svc}
}

// GetVerificationStatusHandler handles GET /api/verification/status?email=...
// A missing record is a distinguishable 404 rather than an error, so the
// poller can tell "still waiting for the first webhook" apart from a genuine
// failure.
func (h *StatusHandler) GetVerificationStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	status, found, err := h.Service.GetStatus(email)
	if err != nil {
		logger.Error("Failed to fetch verification status", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"status": "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetUserDetailsHandler handles GET /api/verification/details?email=...
// It returns the full sanitized record: the credential hash is stripped and
// provider wrapped-value shapes are normalized by the model unmarshalers.
func (h *StatusHandler) GetUserDetailsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	rec, err := h.Service.GetDetails(email)
	if err != nil {
		logger.Error("Failed to fetch user details", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "not_found"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

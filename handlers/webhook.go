package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"veriflow/config"
	"veriflow/models"
	"veriflow/services/verification"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler ingests asynchronous decision callbacks from the KYC
// provider and reconciles them into the status store.
type WebhookHandler struct {
	Service verification.VerificationService
}

// NewWebhookHandler creates a new WebhookHandler instance.
func NewWebhookHandler(svc verification.VerificationService) *WebhookHandler {
	return &WebhookHandler{Service: svc}
}

// VeriffWebhookHandler handles POST callbacks from Veriff. The route is
// registered without any body-binding middleware: the raw bytes are read
// here, before parsing, because the signature is computed over the exact
// bytes received.
func (h *WebhookHandler) VeriffWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	secret := config.AppConfig.VeriffSecretKey
	if secret == "" {
		logger.Error("VERIFF_SECRET_KEY is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "configuration missing"})
		return
	}

	rawBody, err := c.GetRawData()
	if err != nil {
		logger.Warn("Failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	signature := c.GetHeader(config.AppConfig.VeriffSignatureHeader)
	verifier := verification.NewSignatureVerifier(secret)
	if err := verifier.Verify(rawBody, signature); err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidSignature):
			// Distinguished from the missing-header case for security monitoring.
			logger.Warn("Webhook signature mismatch")
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
		default:
			logger.Warn("Webhook missing signature or body", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing signature or body"})
		}
		return
	}

	var payload models.VeriffWebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		logger.Warn("Failed to parse webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	email, err := h.Service.ProcessWebhook(&payload)
	if err != nil {
		if errors.Is(err, verification.ErrNoVendorData) {
			// Acknowledge so the provider stops retrying a payload we cannot
			// correlate; the omission stays observable in the logs.
			logger.Warn("Webhook payload missing vendorData, acknowledged without persisting")
			c.JSON(http.StatusOK, gin.H{"status": "acknowledged", "warning": "missing vendorData"})
			return
		}
		// A store failure returns 500 so the provider's retry re-delivers.
		logger.Error("Failed to reconcile webhook", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database operation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	verificationRepo "veriflow/database/repository/verification"
	"veriflow/models"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// TestDataHandler seeds synthetic verification records for manual testing of
// the polling flow. Only registered outside production.
type TestDataHandler struct {
	Repo verificationRepo.VerificationRepository
}

// NewTestDataHandler creates a new TestDataHandler instance.
func NewTestDataHandler(repo verificationRepo.VerificationRepository) *TestDataHandler {
	return &TestDataHandler{Repo: repo}
}

// InsertTestVerificationHandler handles GET /api/dev/insert-verification?email=...&status=...
func (h *TestDataHandler) InsertTestVerificationHandler(c *gin.Context) {
	logger := utils.GetLogger()

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}
	status := models.VerificationStatus(c.DefaultQuery("status", string(models.StatusApproved)))

	fields := bson.M{
		"status":          status,
		"verificationId":  fmt.Sprintf("test-%d", time.Now().UnixMilli()),
		"lastUpdated":     time.Now(),
		"firstName":       "Test",
		"lastName":        "User",
		"documentType":    "PASSPORT",
		"documentNumber":  "TEST123456",
		"documentExpiry":  "2030-01-01",
		"documentCountry": "US",
	}

	if err := h.Repo.UpsertStatus(email, fields); err != nil {
		logger.Error("Failed to insert test verification", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "email": email, "status": status})
}

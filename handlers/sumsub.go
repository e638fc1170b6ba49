package handlers

import (
	"fmt"
	"net/http"

	"veriflow/services/sumsub"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SumsubHandler fronts the Sumsub API for the client: WebSDK access tokens,
// applicant status, and extracted ID details.
type SumsubHandler struct {
	Client *sumsub.Client
}

// NewSumsubHandler creates a new SumsubHandler instance. Client may be nil
// when credentials are not configured; the handlers then fail closed.
func NewSumsubHandler(client *sumsub.Client) *SumsubHandler {
	return &SumsubHandler{Client: client}
}

func (h *SumsubHandler) clientOrFail(c *gin.Context) *sumsub.Client {
	if h.Client == nil {
		utils.GetLogger().Error("Sumsub credentials are not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error"})
		return nil
	}
	return h.Client
}

// AccessTokenHandler handles POST /api/sumsub/token. The external user ID is
// taken from the request when the caller is already registered, otherwise a
// fresh one is generated; it doubles as the vendor-data correlation key.
func (h *SumsubHandler) AccessTokenHandler(c *gin.Context) {
	client := h.clientOrFail(c)
	if client == nil {
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	// Body is optional.
	_ = c.ShouldBindJSON(&req)
	if req.UserID == "" {
		req.UserID = fmt.Sprintf("user_%s", uuid.New().String())
	}

	token, err := client.CreateAccessToken(c.Request.Context(), req.UserID)
	if err != nil {
		utils.GetLogger().Error("Failed to create Sumsub access token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate verification token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token, "userId": req.UserID})
}

// ApplicantStatusHandler handles GET /api/sumsub/status?applicantId=...
func (h *SumsubHandler) ApplicantStatusHandler(c *gin.Context) {
	client := h.clientOrFail(c)
	if client == nil {
		return
	}

	applicantID := c.Query("applicantId")
	if applicantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing applicant ID"})
		return
	}

	status, err := client.GetApplicantStatus(c.Request.Context(), applicantID)
	if err != nil {
		utils.GetLogger().Error("Failed to check applicant status", zap.String("applicantId", applicantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check applicant status"})
		return
	}

	c.Data(http.StatusOK, "application/json", status)
}

// IDDetailsHandler handles POST /api/sumsub/id-details. It resolves the
// applicant from the external user ID, then fetches the extracted document
// data.
func (h *SumsubHandler) IDDetailsHandler(c *gin.Context) {
	client := h.clientOrFail(c)
	if client == nil {
		return
	}

	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user ID"})
		return
	}

	applicantID, err := client.FindApplicantID(c.Request.Context(), req.UserID)
	if err != nil {
		utils.GetLogger().Warn("Applicant not found", zap.String("userId", req.UserID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "applicant not found"})
		return
	}

	info, err := client.GetApplicantInfo(c.Request.Context(), applicantID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch applicant info", zap.String("applicantId", applicantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch applicant info"})
		return
	}

	c.Data(http.StatusOK, "application/json", info)
}

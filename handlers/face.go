package handlers

import (
	"net/http"

	"veriflow/services/face"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FaceHandler compares a captured ID photo against a selfie.
type FaceHandler struct {
	Matcher face.Matcher
}

// NewFaceHandler creates a new FaceHandler instance.
func NewFaceHandler(matcher face.Matcher) *FaceHandler {
	return &FaceHandler{Matcher: matcher}
}

// VerifyFaceHandler handles POST /api/face/verify.
func (h *FaceHandler) VerifyFaceHandler(c *gin.Context) {
	logger := utils.GetLogger()

	if h.Matcher == nil {
		logger.Error("Face matcher is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error"})
		return
	}

	var req struct {
		IDImage string `json:"idImage" binding:"required"`
		Selfie  string `json:"selfie" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both idImage and selfie are required"})
		return
	}

	match, err := h.Matcher.Compare(c.Request.Context(), req.IDImage, req.Selfie)
	if err != nil {
		logger.Error("Face verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "face verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}

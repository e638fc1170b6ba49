package handlers

import (
	"net/http"

	"veriflow/services/extract"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExtractHandler reads identity fields off a captured ID card image with a
// vision model.
type ExtractHandler struct {
	Extractor extract.Extractor
}

// NewExtractHandler creates a new ExtractHandler instance.
func NewExtractHandler(extractor extract.Extractor) *ExtractHandler {
	return &ExtractHandler{Extractor: extractor}
}

// ExtractIDHandler handles POST /api/extract-id.
func (h *ExtractHandler) ExtractIDHandler(c *gin.Context) {
	logger := utils.GetLogger()

	if h.Extractor == nil {
		logger.Error("ID extraction provider is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error"})
		return
	}

	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image data is required"})
		return
	}

	details, err := h.Extractor.ExtractID(c.Request.Context(), req.Image)
	if err != nil {
		logger.Error("ID extraction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to extract ID details"})
		return
	}

	c.JSON(http.StatusOK, details)
}

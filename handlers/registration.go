package handlers

import (
	"net/http"

	"veriflow/models"
	"veriflow/services/registration"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegistrationHandler persists registration data submitted by the client
// form before the provider verification flow starts.
type RegistrationHandler struct {
	Service registration.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler instance.
func NewRegistrationHandler(svc registration.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Service: svc}
}

// SaveRegistrationHandler handles POST /api/registration.
func (h *RegistrationHandler) SaveRegistrationHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input models.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warn("Invalid registration payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	auth, err := h.Service.SaveRegistration(input)
	if err != nil {
		logger.Error("Failed to save registration", zap.String("email", input.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": auth.Token})
}

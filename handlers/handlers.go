package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all route handlers for registration in routes/.
type HandlerBundle struct {
	// Webhook endpoint (provider -> application).
	VeriffWebhookHandler gin.HandlerFunc

	// Status query endpoints (client poller -> application).
	GetVerificationStatusHandler gin.HandlerFunc
	GetUserDetailsHandler        gin.HandlerFunc

	// Registration save endpoint.
	SaveRegistrationHandler gin.HandlerFunc

	// Sumsub endpoints.
	SumsubAccessTokenHandler gin.HandlerFunc
	SumsubStatusHandler      gin.HandlerFunc
	SumsubIDDetailsHandler   gin.HandlerFunc

	// Capture support endpoints.
	VerifyFaceHandler     gin.HandlerFunc
	ExtractIDHandler      gin.HandlerFunc
	UploadDocumentHandler gin.HandlerFunc

	// Dev-only endpoints.
	InsertTestVerificationHandler gin.HandlerFunc
}

package routes

import (
	"net/http"
	"time"

	"veriflow/config"
	"veriflow/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes registers the provider callback endpoint. No binding
// middleware runs on this group: the handler reads the raw body itself for
// signature verification.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/webhooks")
	{
		api.POST("/veriff", hb.VeriffWebhookHandler)
	}
}

// RegisterVerificationRoutes registers the status query endpoints used by
// the client poller.
func RegisterVerificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/verification")
	{
		api.GET("/status", hb.GetVerificationStatusHandler)
		api.GET("/details", hb.GetUserDetailsHandler)
	}
}

// RegisterRegistrationRoutes registers the registration save endpoint.
func RegisterRegistrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/registration")
	{
		api.POST("", hb.SaveRegistrationHandler)
	}
}

// RegisterSumsubRoutes registers the Sumsub-facing endpoints.
func RegisterSumsubRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sumsub")
	{
		api.POST("/token", hb.SumsubAccessTokenHandler)
		api.GET("/status", hb.SumsubStatusHandler)
		api.POST("/id-details", hb.SumsubIDDetailsHandler)
	}
}

// RegisterCaptureRoutes registers the document-capture support endpoints.
func RegisterCaptureRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/face/verify", hb.VerifyFaceHandler)
		api.POST("/extract-id", hb.ExtractIDHandler)
		api.POST("/storage/kyc/:bucket", hb.UploadDocumentHandler)
	}
}

// RegisterDevRoutes registers development-only seeding endpoints.
func RegisterDevRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dev")
	{
		api.GET("/insert-verification", hb.InsertTestVerificationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Veriflow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWebhookRoutes(r, hb)
	RegisterVerificationRoutes(r, hb)
	RegisterRegistrationRoutes(r, hb)
	RegisterSumsubRoutes(r, hb)
	RegisterCaptureRoutes(r, hb)
	RegisterHealthRoute(r)

	if !config.IsProduction() {
		RegisterDevRoutes(r, hb)
	}
}

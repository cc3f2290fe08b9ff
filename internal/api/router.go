package api

import (
	"log"
	"net/http"

	"sakima-api/internal/config"
	"sakima-api/internal/store"
	"sakima-api/internal/surge"
	"sakima-api/internal/token"
	"sakima-api/internal/webhook"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the full HTTP surface. All collaborators are created
// once at process start and passed in; handlers hold no other state.
func NewRouter(cfg *config.Config, st store.SubmissionStore, client *surge.Client, signer *token.Signer) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		log.Printf("Recovered from panic: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(corsMiddleware(cfg))

	intakeHandler := NewIntakeHandler(client, st)
	adminHandler := NewAdminHandler(cfg, signer)
	webhookHandler := webhook.NewHandler(cfg, client)

	r.GET("/", handleHealth)
	r.POST("/signup", intakeHandler.HandleSignup)
	r.POST("/vip", intakeHandler.HandleVIP)
	r.POST("/offer", intakeHandler.HandleOffer)
	r.POST("/webhooks/surge", webhookHandler.HandleEvent)
	r.POST("/admin/token", adminHandler.HandleToken)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "sakima-api"})
}

// corsMiddleware reflects the origin back only for the fixed site origins
// plus one configured fallback. OPTIONS preflights short-circuit with 204.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := map[string]bool{
		"https://sakima.co": true,
		"http://sakima.co":  true,
	}
	if cfg.AllowedOrigin != "" {
		allowed[cfg.AllowedOrigin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

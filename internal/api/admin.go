package api

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"sakima-api/internal/config"
	"sakima-api/internal/token"

	"github.com/gin-gonic/gin"
)

// adminTokenTTL is the fixed lifetime of a minted admin token.
const adminTokenTTL = 3600 * time.Second

type AdminHandler struct {
	Config *config.Config
	Signer *token.Signer

	// swappable for tests
	Now func() time.Time
}

func NewAdminHandler(cfg *config.Config, signer *token.Signer) *AdminHandler {
	return &AdminHandler{Config: cfg, Signer: signer, Now: time.Now}
}

type tokenRequest struct {
	Password string `json:"password"`
}

// HandleToken mints a fresh short-lived admin token when the configured
// password matches. Tokens are never stored.
func (h *AdminHandler) HandleToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if !h.passwordMatches(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if h.Config.AdminUserID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin user not configured"})
		return
	}
	if h.Signer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signing key not configured"})
		return
	}

	tok, err := h.Signer.Sign(h.Config.AdminUserID, adminTokenTTL)
	if err != nil {
		log.Printf("Error signing admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token signing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      tok,
		"expires_at": h.Now().Add(adminTokenTTL).Unix(),
	})
}

// passwordMatches accepts either a bcrypt hash or a plaintext value in
// config. An empty configured password never authenticates.
func (h *AdminHandler) passwordMatches(supplied string) bool {
	configured := h.Config.AdminPassword
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2") {
		return bcryptCompare(configured, supplied)
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(supplied)) == 1
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intothestar/session-booking-backend/internal/auth"
)

// AuthHandler serves the single-operator admin login.
type AuthHandler struct {
	credential *auth.AdminCredential
	jwtManager *auth.JWTManager
}

func NewAuthHandler(credential *auth.AdminCredential, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		credential: credential,
		jwtManager: jwtManager,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.credential.Verify(body.Username, body.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(body.Username, auth.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

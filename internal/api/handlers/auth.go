package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"academic_records/internal/middleware"
	"academic_records/internal/service"
	"academic_records/internal/utils"
)

// AuthHandler handles register, login, logout and the current user
type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func tokenResponse(message string, token *utils.IssuedToken) gin.H {
	return gin.H{
		"message":      message,
		"access_token": token.Token,
		"token_type":   "Bearer",
	}
}

// Register creates an account and returns its first token
func (h *AuthHandler) Register(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	_, token, err := h.authService.Register(c.Request.Context(), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse("User registered successfully", token))
}

// Login exchanges credentials for a token
func (h *AuthHandler) Login(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	_, token, err := h.authService.Login(c.Request.Context(), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse("Login successful", token))
}

// Logout revokes the token the request came with
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.TokenIDFrom(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user with roles
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.UserFrom(c)
	if user == nil {
		respondError(c, h.logger, service.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, user)
}

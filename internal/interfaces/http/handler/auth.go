package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/auth"
)

// AuthHandler handles operator login
type AuthHandler struct {
	BaseHandler
	verifier   *auth.CredentialVerifier
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier *auth.CredentialVerifier, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		verifier:   verifier,
		jwtService: jwtService,
	}
}

// LoginRequest represents an operator login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// Login verifies operator credentials and issues a session token.
// Wrong username and wrong password are indistinguishable in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.verifier.Verify(req.Username, req.Password); err != nil {
		h.Unauthorized(c, "Invalid credentials")
		return
	}

	session, err := h.jwtService.GenerateSession(req.Username)
	if err != nil {
		h.InternalError(c, "Failed to create session")
		return
	}

	h.Success(c, session)
}

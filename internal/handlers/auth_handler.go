package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"storefront-admin-service/internal/config"
	"storefront-admin-service/internal/middleware"
	"storefront-admin-service/internal/models"
	"storefront-admin-service/internal/sessions"
)

type AuthHandler struct {
	cfg   *config.Config
	store sessions.Store
}

func NewAuthHandler(cfg *config.Config, store sessions.Store) *AuthHandler {
	return &AuthHandler{
		cfg:   cfg,
		store: store,
	}
}

// Login verifies admin credentials and issues a session token. The token is
// set as an HTTP-only cookie and also returned in the body for non-browser
// clients.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Username and password are required",
			},
		})
		return
	}

	if !h.credentialsValid(req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_CREDENTIALS",
				Message: "Invalid username or password",
			},
		})
		return
	}

	session, err := h.store.Create(c.Request.Context(), h.cfg.AdminDisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_FAILED",
				Message: "Failed to create session",
			},
		})
		return
	}

	c.SetCookie(middleware.SessionCookieName, session.Token,
		int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.Environment == "production", true)

	c.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		Token:   session.Token,
		Name:    session.Name,
	})
}

// Logout revokes the caller's session and clears the cookie. Logging out
// with an unknown token still succeeds.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// The cookie is cleared unconditionally so the browser forgets the
	// session even when the store is unreachable.
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cfg.Environment == "production", true)

	token := middleware.ExtractToken(c)
	if token != "" {
		if err := h.store.Delete(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "SESSION_FAILED",
					Message: "Failed to revoke session",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Logged out"),
	})
}

// GetSession reports whether the caller holds a live session.
// GET /api/v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), middleware.ExtractToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UNAUTHORIZED",
				Message: "A valid admin session is required",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Success: true,
		Name:    session.Name,
	})
}

// credentialsValid checks the submitted credentials against configuration.
// A bcrypt hash takes precedence; the plain-text password is a local
// development fallback compared in constant time.
func (h *AuthHandler) credentialsValid(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.AdminUsername)) != 1 {
		return false
	}

	if h.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	if h.cfg.AdminPassword != "" {
		return subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.AdminPassword)) == 1
	}
	return false
}

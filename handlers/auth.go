package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neerajjagga/auth/internal/auth"
	"github.com/neerajjagga/auth/internal/config"
	"github.com/neerajjagga/auth/internal/sessions"
	"github.com/neerajjagga/auth/pkg/logger"
	"github.com/neerajjagga/auth/pkg/middleware"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler maps HTTP requests and cookies onto the session manager and
// its results back onto statuses and Set-Cookie headers. It is the only
// place domain errors become status codes.
type AuthHandler struct {
	cfg *config.Config
	svc *auth.Service
}

func NewAuthHandler(cfg *config.Config, svc *auth.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, svc: svc}
}

// Register routes under /auth. requireAuth guards the profile endpoint.
func (h *AuthHandler) Register(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/signup", h.Signup)
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
	a.POST("/refresh-token", h.Refresh)
	a.GET("/profile", requireAuth, h.Profile)
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, pair auth.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookie, pair.Access, int(pair.AccessTTL.Seconds()), "/", "", h.cfg.Cookie.Secure, true)
	c.SetCookie(refreshCookie, pair.Refresh, int(pair.RefreshTTL.Seconds()), "/", "", h.cfg.Cookie.Secure, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookie, "", -1, "/", "", h.cfg.Cookie.Secure, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.cfg.Cookie.Secure, true)
}

// writeError is the single mapping from domain errors to HTTP statuses.
// Unexpected errors are logged in full and surfaced as a generic 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, auth.ErrAlreadyLoggedOut):
		c.JSON(http.StatusBadRequest, gin.H{"message": "You are already logged out"})
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "User already present with these credentials"})
	case errors.Is(err, auth.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token missing. Please log in again."})
	case errors.Is(err, auth.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token expired. Please log in again."})
	case errors.Is(err, auth.ErrSessionRevoked):
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid refresh token. Please login again"})
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
	case errors.Is(err, sessions.ErrStoreUnavailable):
		logger.Errorf("session store unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Service temporarily unavailable. Please retry."})
	default:
		logger.Errorf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email or password is required"})
		return
	}
	u, pair, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	h.setAuthCookies(c, pair)
	c.JSON(http.StatusCreated, gin.H{"user": u, "message": "User created successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email or password is required"})
		return
	}
	u, pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"user": u, "message": "User loggedIn successfully"})
}

// Logout clears both cookies whether or not the presented tokens verify;
// only the "no cookies at all" case is an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	access, _ := c.Cookie(accessCookie)
	refresh, _ := c.Cookie(refreshCookie)
	if err := h.svc.Logout(c.Request.Context(), access, refresh); err != nil {
		writeError(c, err)
		return
	}
	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, _ := c.Cookie(refreshCookie)
	pair, err := h.svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		writeError(c, err)
		return
	}
	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"message": "Tokens refreshed successfully"})
}

// Profile returns the identity already attached by RequireAuth.
func (h *AuthHandler) Profile(c *gin.Context) {
	u := middleware.UserFromContext(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token missing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

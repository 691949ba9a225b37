package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divvyhq/divvy/internal/auth"
	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/middleware"
	"github.com/divvyhq/divvy/internal/storage"
)

// AuthService handles registration, login and profile endpoints.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

type registerRequest struct {
	Email             string `json:"email" binding:"required,email"`
	DisplayName       string `json:"displayName" binding:"required"`
	Password          string `json:"password" binding:"required"`
	PreferredCurrency string `json:"preferredCurrency"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PreferredCurrency == "" {
		req.PreferredCurrency = currency.USD
	}
	if !currency.IsSupported(req.PreferredCurrency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported currency: " + req.PreferredCurrency})
		return
	}

	user, err := s.authenticator.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password, req.PreferredCurrency)
	if err != nil {
		slog.Warn("registration failed", "email", req.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.authenticator.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(c *gin.Context) {
	user, err := s.store.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		slog.Error("failed to load profile", "user_id", middleware.UserID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateCurrencyRequest struct {
	PreferredCurrency string `json:"preferredCurrency" binding:"required"`
}

// UpdateCurrency changes the authenticated user's preferred display currency.
func (s *AuthService) UpdateCurrency(c *gin.Context) {
	var req updateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !currency.IsSupported(req.PreferredCurrency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported currency: " + req.PreferredCurrency})
		return
	}

	userID := middleware.UserID(c)
	if err := s.store.UpdateUserCurrency(c.Request.Context(), userID, req.PreferredCurrency); err != nil {
		slog.Error("failed to update currency", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update currency"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferredCurrency": req.PreferredCurrency})
}

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/auth"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

// UserStore is the slice of the storage layer the auth handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, username, hashedPassword string) error
}

type AuthHandler struct {
	store  UserStore
	issuer *auth.TokenIssuer
	hasher *auth.Hasher
	logger *slog.Logger
}

func NewAuthHandler(store UserStore, issuer *auth.TokenIssuer, hasher *auth.Hasher, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{store: store, issuer: issuer, hasher: hasher, logger: logger}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	hashedAnswer, err := h.hasher.Hash(normalizeAnswer(req.SecurityAnswer))
	if err != nil {
		h.logger.Error("hash security answer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	user := &models.User{
		Name:                 req.Name,
		Username:             req.Username,
		HashedPassword:       hashedPassword,
		SecurityQuestion:     req.SecurityQuestion,
		HashedSecurityAnswer: hashedAnswer,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		respondStoreError(c, err)
		return
	}

	h.logger.Info("user registered", "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{"message": "user created"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondStoreError(c, err)
		return
	}
	if !h.hasher.Compare(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Username)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Token:    token,
	})
}

// SecurityQuestion returns the question on file so the reset form can show
// it. It deliberately does not reveal whether the answer will match.
func (h *AuthHandler) SecurityQuestion(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"security_question": user.SecurityQuestion})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "verification failed"})
			return
		}
		respondStoreError(c, err)
		return
	}
	if !h.hasher.Compare(normalizeAnswer(req.SecurityAnswer), user.HashedSecurityAnswer) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "verification failed"})
		return
	}

	hashedPassword, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if err := h.store.UpdateUserPassword(c.Request.Context(), user.Username, hashedPassword); err != nil {
		respondStoreError(c, err)
		return
	}

	h.logger.Info("password reset", "username", user.Username)
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nabinkhair42/pocket-due/internal/auth"
	"github.com/nabinkhair42/pocket-due/internal/models"
	"github.com/nabinkhair42/pocket-due/internal/models/dto"
	"github.com/nabinkhair42/pocket-due/internal/storage"
)

// AuthService implements registration, login, and account management.
// Emails are lowercased and trimmed before every lookup so uniqueness is
// case-insensitive.
type AuthService struct {
	store  storage.Store
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(store storage.Store, tokens *auth.TokenManager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password and issues a token.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: normalizeEmail(req.Email),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return nil, Internal("failed to hash password")
	}
	user.PasswordHash = string(hash)

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, BadRequest("User already exists")
		}
		slog.Error("Failed to create user", "error", err)
		return nil, Internal("failed to create user")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "error", err, "user_id", user.ID)
		return nil, Internal("failed to generate token")
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &dto.AuthResponse{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "error", err, "user_id", user.ID)
		return nil, Internal("failed to generate token")
	}

	slog.Info("User logged in", "user_id", user.ID)
	return &dto.AuthResponse{User: user, Token: token}, nil
}

// GetCurrentUser resolves the authenticated user id to its record.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFound("User not found")
		}
		slog.Error("Failed to get user", "error", err, "user_id", userID)
		return nil, Internal("failed to get user")
	}
	return user, nil
}

// UpdateProfile applies a partial name/email edit.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, BadRequest("Email already in use")
		case errors.Is(err, storage.ErrNotFound):
			return nil, NotFound("User not found")
		}
		slog.Error("Failed to update profile", "error", err, "user_id", userID)
		return nil, Internal("failed to update profile")
	}

	slog.Info("User profile updated", "user_id", userID)
	return user, nil
}

// ChangePassword verifies the current password before overwriting the hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return BadRequest("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return Internal("failed to hash password")
	}

	if err := s.store.UpdateUserPassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NotFound("User not found")
		}
		slog.Error("Failed to change password", "error", err, "user_id", userID)
		return Internal("failed to change password")
	}

	slog.Info("User password changed", "user_id", userID)
	return nil
}

// DeleteAccount verifies the password, then deletes the user. The store
// cascades the delete to the user's payments so no orphaned rows remain.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return BadRequest("Password is incorrect")
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NotFound("User not found")
		}
		slog.Error("Failed to delete account", "error", err, "user_id", userID)
		return Internal("failed to delete account")
	}

	slog.Info("User account deleted", "user_id", userID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

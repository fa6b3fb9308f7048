package handlers

import (
	"net/http"

	"github.com/nabinkhair42/pocket-due/internal/http/respond"
	"github.com/nabinkhair42/pocket-due/internal/middleware"
	"github.com/nabinkhair42/pocket-due/internal/models/dto"
	"github.com/nabinkhair42/pocket-due/internal/service"
	"github.com/nabinkhair42/pocket-due/internal/validate"
)

// AuthHandler owns the /auth routes.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register attaches auth routes to the mux. The limit middleware guards the
// credential endpoints; requireAuth guards the account endpoints.
func (h *AuthHandler) Register(mux *http.ServeMux, limit, requireAuth Middleware) {
	mux.Handle("POST /auth/register", limit(http.HandlerFunc(h.handleRegister)))
	mux.Handle("POST /auth/login", limit(http.HandlerFunc(h.handleLogin)))
	mux.HandleFunc("POST /auth/logout", h.handleLogout)
	mux.Handle("GET /auth/me", requireAuth(http.HandlerFunc(h.handleMe)))
	mux.Handle("PUT /auth/profile", requireAuth(http.HandlerFunc(h.handleUpdateProfile)))
	mux.Handle("PUT /auth/password", requireAuth(http.HandlerFunc(h.handleChangePassword)))
	mux.Handle("DELETE /auth/account", requireAuth(http.HandlerFunc(h.handleDeleteAccount)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeAndValidate(r, validate.RegisterRules, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "User registered successfully", result)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeAndValidate(r, validate.LoginRules, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Login successful", result)
}

// handleLogout exists for client symmetry only: tokens are stateless, so
// logging out is the client discarding its token.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetCurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "User retrieved successfully", map[string]any{"user": user})
}

func (h *AuthHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := decodeAndValidate(r, validate.ProfileRules, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Profile updated successfully", map[string]any{"user": user})
}

func (h *AuthHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := decodeAndValidate(r, validate.PasswordChangeRules, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), middleware.GetUserID(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteAccountRequest
	if err := decodeAndValidate(r, nil, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), middleware.GetUserID(r.Context()), req.Password); err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Account deleted successfully", nil)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/session"
	"github.com/Aarya06/Bookwizard/internal/user"
)

type AuthHandler struct {
	users    *user.Service
	sessions *session.Store
	logger   *zap.Logger
}

func NewAuthHandler(users *user.Service, sessions *session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

type RegisterRequestDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponseDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Verified  bool   `json:"verified"`
	Admin     bool   `json:"admin"`
}

func toUserResponse(u *user.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Verified:  u.Verified,
		Admin:     u.Admin,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "email_taken", "an account with this email already exists")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "login failed")
		return
	}

	if err := h.sessions.SetUser(r.Context(), getSessionID(r.Context()), u.ID); err != nil {
		h.logger.Error("failed to bind session user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "login failed")
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(u))
}

// Logout drops the user binding. The session's cart stays.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearUser(r.Context(), getSessionID(r.Context())); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "logout failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	u, err := h.users.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, user.ErrTokenNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "verification link is invalid or already used")
			return
		}
		h.logger.Error("verification failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "verification failed")
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "unauthorized", "account no longer exists")
			return
		}
		h.logger.Error("failed to load account", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(u))
}

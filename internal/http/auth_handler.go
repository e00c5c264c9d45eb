package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/auth"
	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthHandler struct {
	users   UserStore
	timeout time.Duration
}

func NewAuthHandler(users UserStore, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		users:   users,
		timeout: timeout,
	}
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req RegisterRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" || len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "invalid_request",
			"name, email and a password of at least 6 characters are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not register")
		return
	}

	id, err := h.users.CreateUser(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		respondError(w, http.StatusConflict, "email_taken", "this email is already registered")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not register")
		return
	}

	respondJSON(w, http.StatusCreated, UserResponse{ID: id, Name: name, Email: email})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		respondError(w, http.StatusUnauthorized, "bad_credentials", "email or password is wrong")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not log in")
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "bad_credentials", "email or password is wrong")
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

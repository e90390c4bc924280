package authhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string, role auth.Role) (auth.Identity, error)
}

type Handler struct {
	Auth   Authenticator
	Secret string
	TTL    time.Duration
}

func NewHandler(authenticator Authenticator, secret string, ttl time.Duration) *Handler {
	return &Handler{Auth: authenticator, Secret: secret, TTL: ttl}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Identity  auth.Identity `json:"identity"`
}

// RegisterRoutes mounts login behind limiter, which may be nil.
func (h *Handler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	login := chi.Chain()
	if limiter != nil {
		login = chi.Chain(limiter)
	}
	r.With(login...).Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Get("/me", h.handleMe)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := api.Decode(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	role, err := auth.ParseRole(payload.Role)
	if err != nil {
		api.FailError(w, apperr.Validation("role", "must be Admin, HR or Employee"), reqID)
		return
	}
	id, err := h.Auth.Authenticate(r.Context(), payload.Username, payload.Password, role)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	token, err := auth.GenerateToken(h.Secret, id, h.TTL)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, loginResponse{Token: token, ExpiresAt: time.Now().Add(h.TTL).UTC(), Identity: id}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.GetIdentity(r.Context())
	api.Success(w, id, middleware.GetRequestID(r.Context()))
}

package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/user"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
)

type Handler struct {
	Users     user.StoreAPI
	JWTSecret string
}

func NewHandler(users user.StoreAPI, jwtSecret string) *Handler {
	return &Handler{Users: users, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
}

type loginResponse struct {
	Token    string           `json:"token"`
	Identity identityResponse `json:"identity"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", requestID)
		return
	}

	account, err := h.Users.GetByEmail(r.Context(), payload.Email)
	if err != nil || !account.Active {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}
	if err := auth.CheckPassword(account.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:     account.ID,
		Email:      account.Email,
		FullName:   account.FullName,
		Role:       account.Role,
		EmployeeID: account.EmployeeID,
	}, auth.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", requestID)
		return
	}
	if err := h.Users.TouchLastLogin(r.Context(), account.ID); err != nil {
		slog.Warn("touch last login failed", "err", err, "userId", account.ID)
	}

	api.Success(w, loginResponse{
		Token: token,
		Identity: identityResponse{
			ID:         account.ID,
			Email:      account.Email,
			FullName:   account.FullName,
			Role:       account.Role,
			EmployeeID: account.EmployeeID,
		},
	}, requestID)
}

// handleLogout exists so clients have a symmetric endpoint to call. Tokens
// are stateless; teardown happens client side.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged out"}, middleware.GetRequestID(r.Context()))
}

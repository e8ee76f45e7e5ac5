package assistanthandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/assistant"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
)

type Handler struct {
	Service *assistant.Service
}

func NewHandler(service *assistant.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ai", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/ask-question", h.handleAsk)
		r.Get("/my-salary-insights", h.handleMySalaryInsights)
		r.Get("/my-tax-advice", h.handleMyTaxAdvice)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/salary-insights/{employeeID}", h.handleSalaryInsights)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/tax-advice/{employeeID}", h.handleTaxAdvice)
	})
}

type askRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Answer string `json:"answer"`
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record for this account", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return *user.EmployeeID, true
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload askRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	answer, err := h.Service.Ask(r.Context(), payload.Question)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, answerResponse{Answer: answer}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMySalaryInsights(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	answer, err := h.Service.SalaryInsights(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, answerResponse{Answer: answer}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMyTaxAdvice(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	answer, err := h.Service.TaxAdvice(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, answerResponse{Answer: answer}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSalaryInsights(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	answer, err := h.Service.SalaryInsights(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, answerResponse{Answer: answer}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTaxAdvice(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	answer, err := h.Service.TaxAdvice(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, answerResponse{Answer: answer}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, assistant.ErrEmptyQuestion):
		api.Fail(w, http.StatusBadRequest, "invalid_input", "question is required", requestID)
	case errors.Is(err, assistant.ErrNotConfigured):
		api.Fail(w, http.StatusServiceUnavailable, "assistant_unavailable", "assistant is not configured", requestID)
	case errors.Is(err, assistant.ErrUpstream):
		api.Fail(w, http.StatusBadGateway, "assistant_failed", "assistant is temporarily unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "assistant_failed", "failed to answer question", requestID)
	}
}

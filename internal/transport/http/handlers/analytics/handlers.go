package analyticshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/analytics"
	"payroll/internal/domain/compliance"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
)

type Handler struct {
	Analytics  *analytics.Service
	Compliance *compliance.Service
}

func NewHandler(analyticsSvc *analytics.Service, complianceSvc *compliance.Service) *Handler {
	return &Handler{Analytics: analyticsSvc, Compliance: complianceSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/summary", h.handleSummary)
		r.Get("/departments", h.handleDepartments)
		r.Get("/payroll/{year}", h.handleMonthlyPayroll)
	})
	r.Route("/compliance", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/report/{year}", h.handleComplianceReport)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.Summary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load analytics summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	shares, err := h.Analytics.DepartmentShares(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load department shares", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, shares, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_year", "invalid year", middleware.GetRequestID(r.Context()))
		return
	}
	rows, err := h.Analytics.MonthlyPayroll(r.Context(), year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load monthly payroll", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleComplianceReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_year", "invalid year", middleware.GetRequestID(r.Context()))
		return
	}
	report, err := h.Compliance.Report(r.Context(), year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "compliance_failed", "failed to build compliance report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

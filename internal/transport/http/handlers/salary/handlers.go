package salaryhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/salary"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
)

type Handler struct {
	Service *salary.Service
}

func NewHandler(service *salary.Service) *Handler {
	return &Handler{Service: service}
}

// Static segments are registered before the numeric {employeeID} routes so
// chi matches "unprocessed", "month" and "my-salary" literally.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/my-salary", h.handleMine)
		r.Get("/my-salary/{month}/{year}", h.handleMineByMonth)
		r.Get("/my-payslip/{month}/{year}", h.handleMyPayslip)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Get("/unprocessed", h.handleUnprocessed)
			r.Get("/month/{month}/year/{year}", h.handleByPeriod)
			r.Get("/year/{year}", h.handleByYear)
			r.Post("/{employeeID}", h.handleUpsert)
			r.Get("/{employeeID}", h.handleHistory)
			r.Get("/{employeeID}/{month}/{year}", h.handleByMonth)
			r.Get("/{employeeID}/payslip/{month}/{year}", h.handlePayslip)
			r.Post("/{salaryID}/process", h.handleProcess)
			r.Delete("/{salaryID}", h.handleDelete)
		})
	})
}

func pathInt(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func pathPeriod(r *http.Request) (month, year int, err error) {
	m, err := pathInt(r, "month")
	if err != nil {
		return 0, 0, err
	}
	y, err := pathInt(r, "year")
	if err != nil {
		return 0, 0, err
	}
	return int(m), int(y), nil
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record for this account", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return *user.EmployeeID, true
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathInt(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	var input salary.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	rec, err := h.Service.Upsert(r.Context(), employeeID, input)
	if err != nil {
		h.fail(w, r, err, "salary_upsert_failed", "failed to save salary record")
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathInt(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	records, err := h.Service.History(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_history_failed", "failed to load salary history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleByMonth(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathInt(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	month, year, err := pathPeriod(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "invalid month or year", middleware.GetRequestID(r.Context()))
		return
	}
	rec, err := h.Service.ForEmployeeMonth(r.Context(), employeeID, month, year)
	if err != nil {
		h.fail(w, r, err, "salary_get_failed", "failed to load salary record")
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleByPeriod(w http.ResponseWriter, r *http.Request) {
	month, year, err := pathPeriod(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "invalid month or year", middleware.GetRequestID(r.Context()))
		return
	}
	records, err := h.Service.ForMonth(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salary records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleByYear(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "invalid year", middleware.GetRequestID(r.Context()))
		return
	}
	records, err := h.Service.ForYear(r.Context(), int(year))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salary records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnprocessed(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.Unprocessed(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salary records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "salaryID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid salary id", middleware.GetRequestID(r.Context()))
		return
	}
	rec, err := h.Service.Process(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "salary_process_failed", "failed to process salary record")
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "salaryID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid salary id", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "salary_delete_failed", "failed to delete salary record")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	records, err := h.Service.History(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_history_failed", "failed to load salary history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMineByMonth(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	month, year, err := pathPeriod(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "invalid month or year", middleware.GetRequestID(r.Context()))
		return
	}
	rec, err := h.Service.ForEmployeeMonth(r.Context(), employeeID, month, year)
	if err != nil {
		h.fail(w, r, err, "salary_get_failed", "failed to load salary record")
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathInt(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	h.writePayslip(w, r, employeeID)
}

func (h *Handler) handleMyPayslip(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	h.writePayslip(w, r, employeeID)
}

func (h *Handler) writePayslip(w http.ResponseWriter, r *http.Request, employeeID int64) {
	month, year, err := pathPeriod(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "invalid month or year", middleware.GetRequestID(r.Context()))
		return
	}
	rec, err := h.Service.ForEmployeeMonth(r.Context(), employeeID, month, year)
	if err != nil {
		h.fail(w, r, err, "payslip_failed", "failed to load salary record")
		return
	}
	pdf, err := salary.PayslipPDF(rec)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("payslip-%d-%02d-%d.pdf", employeeID, month, year)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, salary.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "salary record not found", requestID)
	case errors.Is(err, salary.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_input", "invalid salary input", requestID)
	case errors.Is(err, salary.ErrAlreadyProcessed):
		api.Fail(w, http.StatusConflict, "already_processed", "salary already processed", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}

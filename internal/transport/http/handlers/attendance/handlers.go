package attendancehandler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/attendance"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
)

type Handler struct {
	Store attendance.StoreAPI
	Now   func() time.Time
}

func NewHandler(store attendance.StoreAPI) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/clock-in", h.handleClockIn)
		r.Post("/clock-out", h.handleClockOut)
		r.Get("/me", h.handleMine)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/employee/{employeeID}", h.handleForEmployee)
	})
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record for this account", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return *user.EmployeeID, true
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	rec, err := h.Store.ClockIn(r.Context(), employeeID, h.Now())
	if errors.Is(err, attendance.ErrAlreadyClockedIn) {
		api.Fail(w, http.StatusConflict, "already_clocked_in", "already clocked in today", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "clock_in_failed", "failed to clock in", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	rec, err := h.Store.ClockOut(r.Context(), employeeID, h.Now())
	if errors.Is(err, attendance.ErrNotClockedIn) {
		api.Fail(w, http.StatusConflict, "not_clocked_in", "not clocked in today", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "clock_out_failed", "failed to clock out", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	records, err := h.Store.ListForEmployee(r.Context(), employeeID, 0)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to list attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	records, err := h.Store.ListForEmployee(r.Context(), employeeID, 0)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to list attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

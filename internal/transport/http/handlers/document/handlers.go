package documenthandler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/document"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
)

type Handler struct {
	Service *document.Service
}

func NewHandler(service *document.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.handleUpload)
		r.Get("/me", h.handleMine)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/employee/{employeeID}", h.handleForEmployee)
		r.Get("/{documentID}/download", h.handleDownload)
		r.Delete("/{documentID}", h.handleDelete)
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

// canAccess restricts non-admins to their own documents.
func canAccess(user middleware.UserContext, doc document.Document) bool {
	if user.Role == auth.RoleAdmin {
		return true
	}
	return user.EmployeeID != nil && *user.EmployeeID == doc.EmployeeID
}

type uploadRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	var payload uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	content, err := base64.StdEncoding.DecodeString(payload.Content)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "content must be base64", middleware.GetRequestID(r.Context()))
		return
	}
	doc, err := h.Service.Upload(r.Context(), employeeID, document.Input{
		Name:     payload.Name,
		Category: payload.Category,
		Content:  content,
	})
	if err != nil {
		h.fail(w, r, err, "document_upload_failed", "failed to upload document")
		return
	}
	api.Created(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	docs, err := h.Service.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "documents_failed", "failed to list documents", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	docs, err := h.Service.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "documents_failed", "failed to list documents", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	doc, content, err := h.Service.Content(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		h.fail(w, r, err, "document_download_failed", "failed to download document")
		return
	}
	if !canAccess(user, doc) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	doc, err := h.Service.Get(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		h.fail(w, r, err, "document_delete_failed", "failed to delete document")
		return
	}
	if !canAccess(user, doc) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.Delete(r.Context(), doc.ID); err != nil {
		h.fail(w, r, err, "document_delete_failed", "failed to delete document")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, document.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "document not found", requestID)
	case errors.Is(err, document.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_input", "document name and content are required", requestID)
	case errors.Is(err, document.ErrTooLarge):
		api.Fail(w, http.StatusRequestEntityTooLarge, "too_large", "document exceeds size limit", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}

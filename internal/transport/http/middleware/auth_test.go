package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"payroll/internal/auth"
)

const testSecret = "test-secret"

func token(t *testing.T, role string) string {
	t.Helper()
	employeeID := int64(5)
	tok, err := auth.GenerateToken(testSecret, auth.Claims{
		UserID: 1, Email: "u@x.y", FullName: "U", Role: role, EmployeeID: &employeeID,
	}, auth.TokenTTL)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	return tok
}

func protected(t *testing.T, wrap func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("handler reached without user in context")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"role": user.Role})
	})
	return Auth(testSecret)(wrap(inner))
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	handler := protected(t, func(next http.Handler) http.Handler { return RequireAuth(next) })

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	handler := protected(t, func(next http.Handler) http.Handler { return RequireAuth(next) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthPassesValidToken(t *testing.T) {
	handler := protected(t, func(next http.Handler) http.Handler { return RequireAuth(next) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, auth.RoleEmployee))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	handler := protected(t, RequireRole(auth.RoleAdmin))

	// No identity at all: 401, the client tears the session down.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}

	// Wrong role: 403, the session survives.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, auth.RoleEmployee))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", rec.Code)
	}

	// Exact role: pass.
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, auth.RoleAdmin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestGetUserCarriesClaims(t *testing.T) {
	var got UserContext
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUser(r.Context())
	})
	handler := Auth(testSecret)(RequireAuth(inner))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, auth.RoleEmployee))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != 1 || got.Role != auth.RoleEmployee {
		t.Fatalf("claims not carried: %+v", got)
	}
	if got.EmployeeID == nil || *got.EmployeeID != 5 {
		t.Fatalf("employee id not carried: %v", got.EmployeeID)
	}
}

package authhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/user"
)

type fakeUsers struct {
	account   user.User
	lastLogin int64
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	if email != f.account.Email {
		return user.User{}, user.ErrNotFound
	}
	return f.account, nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id int64) error {
	f.lastLogin = id
	return nil
}

func testRouter(t *testing.T, users user.StoreAPI) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		NewHandler(users, "test-secret").RegisterRoutes(r)
	})
	return router
}

func adminAccount(t *testing.T) user.User {
	t.Helper()
	hash, err := auth.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	employeeID := int64(9)
	return user.User{
		ID: 3, Email: "admin@payroll.local", FullName: "Admin",
		Role: auth.RoleAdmin, PasswordHash: hash, EmployeeID: &employeeID, Active: true,
	}
}

func postLogin(t *testing.T, router http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginIssuesTokenAndIdentity(t *testing.T) {
	users := &fakeUsers{account: adminAccount(t)}
	router := testRouter(t, users)

	rec := postLogin(t, router, "admin@payroll.local", "correct-password")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token    string `json:"token"`
			Identity struct {
				ID         int64  `json:"id"`
				Email      string `json:"email"`
				FullName   string `json:"fullName"`
				Role       string `json:"role"`
				EmployeeID *int64 `json:"employeeId"`
			} `json:"identity"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !envelope.Success || envelope.Data.Token == "" {
		t.Fatalf("expected success with token, got %s", rec.Body.String())
	}
	if envelope.Data.Identity.Role != auth.RoleAdmin || envelope.Data.Identity.Email != "admin@payroll.local" {
		t.Fatalf("identity mismatch: %+v", envelope.Data.Identity)
	}
	if envelope.Data.Identity.EmployeeID == nil || *envelope.Data.Identity.EmployeeID != 9 {
		t.Fatalf("employee id mismatch: %v", envelope.Data.Identity.EmployeeID)
	}

	claims, err := auth.ParseToken("test-secret", envelope.Data.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != 3 || claims.Role != auth.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if users.lastLogin != 3 {
		t.Fatalf("expected last login touched for user 3, got %d", users.lastLogin)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := testRouter(t, &fakeUsers{account: adminAccount(t)})
	rec := postLogin(t, router, "admin@payroll.local", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	router := testRouter(t, &fakeUsers{account: adminAccount(t)})
	rec := postLogin(t, router, "nobody@payroll.local", "correct-password")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	account := adminAccount(t)
	account.Active = false
	router := testRouter(t, &fakeUsers{account: account})
	rec := postLogin(t, router, "admin@payroll.local", "correct-password")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive account, got %d", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	router := testRouter(t, &fakeUsers{account: adminAccount(t)})
	rec := postLogin(t, router, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	router := testRouter(t, &fakeUsers{account: adminAccount(t)})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

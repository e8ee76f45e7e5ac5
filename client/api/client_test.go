package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"payroll/client/session"
	"payroll/client/storage"
)

func authedStore(t *testing.T) *session.Store {
	t.Helper()
	kv := storage.InMemory()
	kv.Set("token", "valid-token")
	identity := session.Identity{ID: 1, Email: "a@b.c", FullName: "A", Role: session.RoleAdmin}
	raw, err := json.Marshal(identity)
	require.NoError(t, err)
	kv.Set("user", string(raw))

	store := session.New(kv)
	store.Bootstrap()
	require.Equal(t, session.StateAuthenticated, store.State())
	return store
}

func envelopeOK(data any) []byte {
	raw, _ := json.Marshal(map[string]any{"success": true, "data": data})
	return raw
}

func envelopeErr(code, message string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
	return raw
}

func TestGetAttachesBearerToken(t *testing.T) {
	store := authedStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer valid-token", r.Header.Get("Authorization"))
		_, _ = w.Write(envelopeOK(map[string]int{"count": 7}))
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, store)
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, client.Get(context.Background(), "/api/admin/statistics/employees/count", &out))
	require.Equal(t, 7, out.Count)
}

func TestConcurrent401InvalidatesOnce(t *testing.T) {
	store := authedStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write(envelopeErr("unauthorized", "authentication required"))
	}))
	t.Cleanup(server.Close)

	var mu sync.Mutex
	redirects := 0
	client := New(server.URL, store, WithUnauthorizedHandler(func() {
		mu.Lock()
		redirects++
		mu.Unlock()
	}))

	const concurrent = 8
	var wg sync.WaitGroup
	errs := make(chan error, concurrent)
	for range [concurrent]int{} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- client.Get(context.Background(), "/api/admin/employees", nil)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		var unauthorized *UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
	}

	require.Equal(t, 1, redirects, "401 teardown must fire exactly once")
	require.Equal(t, session.StateAnonymous, store.State())
}

func TestForbiddenKeepsSession(t *testing.T) {
	store := authedStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write(envelopeErr("forbidden", "insufficient permissions"))
	}))
	t.Cleanup(server.Close)

	notices := 0
	client := New(server.URL, store, WithForbiddenHandler(func(string) { notices++ }))

	err := client.Get(context.Background(), "/api/analytics/summary", nil)
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	require.Equal(t, "insufficient permissions", forbidden.Message)
	require.Equal(t, 1, notices)
	require.Equal(t, session.StateAuthenticated, store.State(), "403 must not tear the session down")
}

func TestServerErrorIsTransient(t *testing.T) {
	store := authedStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, store)
	err := client.Get(context.Background(), "/api/admin/employees", nil)
	var transient *TransientError
	require.ErrorAs(t, err, &transient)
	require.Equal(t, session.StateAuthenticated, store.State())
}

func TestNetworkFailureIsTransient(t *testing.T) {
	store := authedStore(t)
	client := New("http://127.0.0.1:1", store)
	err := client.Get(context.Background(), "/api/admin/employees", nil)
	var transient *TransientError
	require.ErrorAs(t, err, &transient)
}

func TestClientErrorIsRequestError(t *testing.T) {
	store := authedStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write(envelopeErr("duplicate_email", "email already in use"))
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, store)
	err := client.Post(context.Background(), "/api/admin/employees", map[string]string{}, nil)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusConflict, reqErr.Status)
	require.Equal(t, "duplicate_email", reqErr.Code)
}

func TestAuthenticateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "admin@payroll.local", payload["email"])
		_, _ = w.Write(envelopeOK(map[string]any{
			"token": "issued-token",
			"identity": map[string]any{
				"id": 1, "email": "admin@payroll.local", "fullName": "Admin", "role": "ADMIN",
			},
		}))
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, session.New(storage.InMemory()))
	identity, token, err := client.Authenticate(context.Background(), "admin@payroll.local", "pw")
	require.NoError(t, err)
	require.Equal(t, "issued-token", token)
	require.Equal(t, session.RoleAdmin, identity.Role)
}

func TestAuthenticateFailureIsAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write(envelopeErr("invalid_credentials", "invalid email or password"))
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, session.New(storage.InMemory()))
	_, _, err := client.Authenticate(context.Background(), "a@b.c", "wrong")
	var authErr *session.AuthError
	require.True(t, errors.As(err, &authErr))
	require.Equal(t, "invalid email or password", authErr.Message)
}

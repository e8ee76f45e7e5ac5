package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"payroll/internal/domain/analytics"
	"payroll/internal/domain/assistant"
	"payroll/internal/domain/attendance"
	"payroll/internal/domain/compliance"
	"payroll/internal/domain/department"
	"payroll/internal/domain/document"
	"payroll/internal/domain/employee"
	"payroll/internal/domain/leave"
	"payroll/internal/domain/salary"
	"payroll/internal/domain/user"
	"payroll/internal/platform/config"
	"payroll/internal/platform/db"
	analyticshandler "payroll/internal/transport/http/handlers/analytics"
	assistanthandler "payroll/internal/transport/http/handlers/assistant"
	attendancehandler "payroll/internal/transport/http/handlers/attendance"
	authhandler "payroll/internal/transport/http/handlers/auth"
	departmenthandler "payroll/internal/transport/http/handlers/department"
	documenthandler "payroll/internal/transport/http/handlers/document"
	employeehandler "payroll/internal/transport/http/handlers/employee"
	leavehandler "payroll/internal/transport/http/handlers/leave"
	salaryhandler "payroll/internal/transport/http/handlers/salary"
	"payroll/internal/transport/http/middleware"
)

func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg, pool),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("payroll server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// NewRouter assembles the full middleware chain and API surface. Split out
// from Run so tests can mount the router without a listener.
func NewRouter(cfg config.Config, pool *db.Pool) http.Handler {
	salaryService := salary.NewService(salary.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler)
	router.Use(middleware.NewRateLimit(cfg.RateLimitRPM, cfg.AuthRateLimitRPM).Handler)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(user.NewStore(pool), cfg.JWTSecret).RegisterRoutes(r)
		employeehandler.NewHandler(employee.NewService(employee.NewStore(pool))).RegisterRoutes(r)
		departmenthandler.NewHandler(department.NewService(department.NewStore(pool))).RegisterRoutes(r)
		attendancehandler.NewHandler(attendance.NewStore(pool)).RegisterRoutes(r)
		leavehandler.NewHandler(leave.NewService(leave.NewStore(pool), cfg.LeaveEntitlement)).RegisterRoutes(r)
		documenthandler.NewHandler(document.NewService(document.NewStore(pool))).RegisterRoutes(r)
		salaryhandler.NewHandler(salaryService).RegisterRoutes(r)
		analyticshandler.NewHandler(
			analytics.NewService(analytics.NewStore(pool)),
			compliance.NewService(compliance.NewStore(pool)),
		).RegisterRoutes(r)
		assistanthandler.NewHandler(
			assistant.NewService(cfg.AssistantURL, cfg.AssistantAPIKey, cfg.AssistantModel, salaryService),
		).RegisterRoutes(r)
	})

	return router
}

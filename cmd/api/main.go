package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/dealflow/internal/application"
	"github.com/bryanwahyu/dealflow/internal/application/intake"
	"github.com/bryanwahyu/dealflow/internal/config"
	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
	openaigen "github.com/bryanwahyu/dealflow/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/dealflow/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/dealflow/internal/infra/db/postgres"
	"github.com/bryanwahyu/dealflow/internal/infra/extract"
	"github.com/bryanwahyu/dealflow/internal/infra/httpserver"
	"github.com/bryanwahyu/dealflow/internal/infra/notify"
	minioStore "github.com/bryanwahyu/dealflow/internal/infra/storage"
	"github.com/bryanwahyu/dealflow/internal/middleware"
	"github.com/bryanwahyu/dealflow/internal/observability"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(observability.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	ctx := context.Background()

	// connect the project registry
	var db *sql.DB
	var registry domain.Registry
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connect error")
		}
		registry = postgresp.NewProjectRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatal().Err(err).Msg("mysql connect error")
		}
		registry = mysqlp.NewProjectRepository(db)
	}
	defer db.Close()

	// init minio organizer
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("minio init error")
	}

	// init workflow coordinator
	svc := &intake.Service{
		Registry:   registry,
		Organizer:  store,
		Extractor:  extract.New(),
		Generator:  openaigen.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model),
		Notifier:   notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From),
		Clock:      application.SystemClock{},
		Log:        log,
		Company:    cfg.Company.Name,
		SupportURL: cfg.Company.SupportURL,
		Internal:   cfg.Notify.InternalRecipients,
		Signature: intake.Signature{
			Name:  cfg.Company.SignatureName,
			Title: cfg.Company.SignatureTitle,
			Phone: cfg.Company.PhoneNumber,
		},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware(log))
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	capacity, refill := cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate
	if capacity <= 0 {
		capacity = 10
	}
	if refill <= 0 {
		refill = 1
	}
	mux.Use(middleware.NewRateLimiter(capacity, refill).Middleware)

	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  middleware.CheckFunc(store.Check),
	}))
	mux.Mount("/", httpserver.NewRouter(svc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
		// AI generation holds the request open; allow slow writes
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

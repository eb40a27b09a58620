package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/portfolio-report/internal/application"
	appreports "github.com/bryanwahyu/portfolio-report/internal/application/reports"
	"github.com/bryanwahyu/portfolio-report/internal/config"
	domai "github.com/bryanwahyu/portfolio-report/internal/domain/ai"
	domain "github.com/bryanwahyu/portfolio-report/internal/domain/report"
	"github.com/bryanwahyu/portfolio-report/internal/infra/ai/gemini"
	"github.com/bryanwahyu/portfolio-report/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/portfolio-report/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/portfolio-report/internal/infra/db/postgres"
	"github.com/bryanwahyu/portfolio-report/internal/infra/httpserver"
	"github.com/bryanwahyu/portfolio-report/internal/infra/pdf"
	"github.com/bryanwahyu/portfolio-report/internal/infra/profilefetch"
	minioStore "github.com/bryanwahyu/portfolio-report/internal/infra/storage"
	"github.com/bryanwahyu/portfolio-report/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// connect database, driver picked by config
	var (
		db   *sql.DB
		repo domain.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			logger.Fatal("postgres connect error", zap.Error(err))
		}
		repo = postgresp.NewReportRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			logger.Fatal("mysql connect error", zap.Error(err))
		}
		repo = mysqlp.NewReportRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logger.Fatal("minio init error", zap.Error(err))
	}

	// one analyzer per configured provider
	providers := make(map[domai.Provider]domai.Analyzer)
	if key := cfg.Providers.Gemini.APIKey; key != "" {
		g, err := gemini.NewClient(ctx, key, cfg.Providers.Gemini.Model)
		if err != nil {
			logger.Fatal("gemini init error", zap.Error(err))
		}
		providers[domai.ProviderGemini] = g
	}
	if key := cfg.Providers.OpenAI.APIKey; key != "" {
		providers[domai.ProviderOpenAI] = openai.NewClient(key, cfg.Providers.OpenAI.Model)
	}
	if key := cfg.Providers.DeepSeek.APIKey; key != "" {
		providers[domai.ProviderDeepSeek] = openai.NewCompatClient(key, cfg.Providers.DeepSeek.Model, cfg.Providers.DeepSeek.BaseURL)
	}
	if len(providers) == 0 {
		logger.Warn("no AI providers configured, every generation request will be rejected")
	}

	svc := &appreports.Service{
		Fetcher:   profilefetch.New(30 * time.Second),
		Providers: providers,
		Renderer:  pdf.NewChromeRenderer(cfg.Chrome.Path),
		Artifacts: store,
		Repo:      repo,
		Clock:     application.SystemClock{},
		Log:       logger,
	}

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  middleware.CheckFunc(store.Check),
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Logging(logger))
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.Tokens) > 0 {
		mux.Use(middleware.BearerAuth(cfg.Auth.Tokens))
	}
	if cfg.Server.RateLimit > 0 {
		mux.Use(middleware.RateLimit(cfg.Server.RateLimitBurst, cfg.Server.RateLimit))
	}
	mux.Mount("/", httpserver.NewRouter(svc, cfg.RequestTimeout(), checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// writes stay open for the whole synchronous pipeline
		WriteTimeout: cfg.RequestTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

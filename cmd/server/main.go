package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"speakeradmin/config"
	_ "speakeradmin/docs"
	adapterauth "speakeradmin/internal/adapters/auth"
	"speakeradmin/internal/adapters/media"
	"speakeradmin/internal/adapters/sanitize"
	delivery "speakeradmin/internal/delivery/http"
	"speakeradmin/internal/delivery/http/controllers"
	"speakeradmin/internal/delivery/http/middleware"
	"speakeradmin/internal/repository/postgres"
	"speakeradmin/internal/services"
)

const (
	bcryptCost     = 10
	serviceTimeout = 5 * time.Second
)

// @title Speaker Admin API
// @version 1.0
// @description Admin backend for managing conference speaker profiles.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	recordRepo := postgres.NewRecordRepository(db)
	metaRepo := postgres.NewMetaRepository(db)
	termRepo := postgres.NewTermRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	tokens := adapterauth.NewJWTManager(cfg.JWTSecret)
	nonces := adapterauth.NewHMACNonceManager(cfg.NonceSecret, cfg.NonceLifetime)
	hasher := adapterauth.NewBcryptHasher(bcryptCost)
	authorizer := adapterauth.NewRoleAuthorizer(roleRepo)

	store, err := media.NewStore(media.StoreConfig{
		Provider:     cfg.Media.Provider,
		LocalDir:     cfg.Media.UploadDir,
		LocalBaseURL: cfg.Media.UploadBaseURL,
		S3: media.S3Config{
			Region:          cfg.Media.AWSRegion,
			AccessKeyID:     cfg.Media.AWSAccessKeyID,
			SecretAccessKey: cfg.Media.AWSSecretKey,
			Bucket:          cfg.Media.S3Bucket,
			PublicBaseURL:   cfg.Media.S3PublicBaseURL,
		},
	})
	if err != nil {
		logger.Error("failed to create media store", "err", err)
		os.Exit(1)
	}

	speakerService := services.NewSpeakerService(recordRepo, metaRepo, termRepo, store, authorizer, sanitize.New(), serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, serviceTimeout)

	speakerController := controllers.NewSpeakerController(logger, speakerService, nonces)
	authController := controllers.NewAuthController(logger, authService)

	mux := delivery.NewRouter(speakerController, authController, middleware.RequireAuth(tokens, logger))
	if cfg.Media.Provider == "local" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Media.UploadDir))))
	}
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

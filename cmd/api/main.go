package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/site-builder-backend/config"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/auth"
	authmw "github.com/GoSim-25-26J-441/site-builder-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
)

const serviceName = "site-builder-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.Init(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logging.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer app.Close()

	authHandler, err := buildAuth(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialise auth", zap.Error(err))
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Auth:        authHandler,
		App:         app,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return app.Sweeper.Start(gctx, cfg.Sweeper.Schedule)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server exited gracefully")
}

// buildAuth verifies Firebase ID tokens when credentials are configured and
// otherwise trusts the X-User-Id header.
func buildAuth(ctx context.Context, cfg *config.Config) (gin.HandlerFunc, error) {
	if cfg.Firebase.CredentialsPath == "" {
		logging.L().Warn("FIREBASE_CREDENTIALS_PATH not set, using X-User-Id header (development only)")
		return auth.OptionalUser(), nil
	}
	client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}
	return authmw.FirebaseAuthMiddleware(client), nil
}

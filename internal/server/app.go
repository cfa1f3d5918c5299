// Package server initializes and runs the Rentafind backend. It opens the
// database, applies migrations, selects the image storage backend, wires the
// services to the REST router, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rentafind/rentafind/internal/logging"
	"github.com/rentafind/rentafind/internal/server/config"
	"github.com/rentafind/rentafind/internal/server/httpapi"
	"github.com/rentafind/rentafind/internal/server/repositories/houses"
	"github.com/rentafind/rentafind/internal/server/repositories/users"
	"github.com/rentafind/rentafind/internal/server/services"
	"github.com/rentafind/rentafind/internal/server/storage"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	authService  *services.AuthService
	userService  *services.UserService
	houseService *services.HouseService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := openDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userRepo := users.NewPostgresRepository(db)
	houseRepo := houses.NewPostgresRepository(db)

	images, err := newImageStore(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	as := services.NewAuthService(userRepo, []byte(cfg.SecretKey), cfg.TokenValidity)
	us := services.NewUserService(userRepo)
	hs := services.NewHouseService(houseRepo, images)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		authService:  as,
		userService:  us,
		houseService: hs,
	}, nil
}

// newImageStore picks the image backend per configuration. Images live in
// Postgres by default; an S3-compatible bucket is used when configured.
func newImageStore(ctx context.Context, cfg *config.Config, db *sql.DB) (storage.ImageStore, error) {
	switch cfg.ImageStore {
	case "", "postgres":
		return storage.NewPostgresStore(db), nil
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Config{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown image store: %s", cfg.ImageStore)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := httpapi.NewRouter(app.logger, app.authService, app.userService, app.houseService, httpapi.RouterOptions{
		Prefix:    app.config.APIPrefix,
		StaticDir: app.config.StaticDir,
	})

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/agrokalk/internal/blobstore"
	"github.com/Simplici0/agrokalk/internal/catalog"
	"github.com/Simplici0/agrokalk/internal/config"
	"github.com/Simplici0/agrokalk/internal/db"
	"github.com/Simplici0/agrokalk/internal/importer"
	"github.com/Simplici0/agrokalk/internal/metrics"
	"github.com/Simplici0/agrokalk/internal/migrations"
	"github.com/Simplici0/agrokalk/internal/scheduler"
	"github.com/Simplici0/agrokalk/internal/seed"
	"github.com/Simplici0/agrokalk/pkg/logger"
)

type server struct {
	auth     *authService
	store    *catalog.Store
	importer *importer.Importer
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	base := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = base.Sync() }()

	for _, w := range cfg.Warnings() {
		base.Warn(w)
	}

	if err := run(cfg, base); err != nil {
		base.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, base *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.Admin.Email,
		AdminPassword: cfg.Admin.Password,
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	base.Info("startup seed completed", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))

	blobs, err := blobstore.Open(ctx, blobstore.Options{
		Driver:     cfg.Store.Driver,
		SQL:        database,
		BadgerPath: cfg.Store.BadgerPath,
		MongoURI:   cfg.Store.MongoURI,
		MongoDB:    cfg.Store.MongoDBName,
	})
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	defer blobs.Close()

	store := catalog.NewStore(blobs, logger.Named(base, "catalog"))
	store.Load(ctx)

	m := metrics.New(store)
	opts := []importer.Option{importer.WithObserver(m)}
	if cfg.Sheets.Enabled() {
		sheets, err := importer.NewGoogleSheets(ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID, logger.Named(base, "sheets"))
		if err != nil {
			return err
		}
		opts = append(opts, importer.WithSheets(sheets))
	}
	imp := importer.New(store, logger.Named(base, "importer"), opts...)

	if cfg.Sync.CronSchedule != "" {
		sched := scheduler.New(cfg.Sync.CronSchedule, imp, producerRanges(cfg.Sheets), logger.Named(base, "scheduler"))
		if err := sched.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	srv, err := newServer(database, cfg.Admin, store, imp, m, logger.Named(base, "http"))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		base.Info("listening", zap.String("addr", httpServer.Addr), zap.String("store", cfg.Store.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	base.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newServer(database *sql.DB, admin config.AdminConfig, store *catalog.Store, imp *importer.Importer, m *metrics.Metrics, log *zap.Logger) (*server, error) {
	auth, err := newAuthService(database, admin)
	if err != nil {
		return nil, err
	}
	return &server{
		auth:     auth,
		store:    store,
		importer: imp,
		metrics:  m,
		logger:   log,
		now:      time.Now,
	}, nil
}

func producerRanges(cfg config.SheetsConfig) map[catalog.Producer]string {
	out := make(map[catalog.Producer]string)
	for name, sheetRange := range cfg.Ranges() {
		if p, err := catalog.ParseProducer(name); err == nil {
			out[p] = sheetRange
		}
	}
	return out
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/producers", s.handleProducers)
		r.Get("/producers/{producer}/types", s.handleTypes)
		r.Get("/producers/{producer}/machines", s.handleModels)
		r.Post("/quote", s.handleQuote)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/machines", s.handleAdminList)
			r.Put("/machines", s.handleAdminReplace)
			r.Post("/machines", s.handleAdminAdd)
			r.Patch("/machines/{id}", s.handleAdminEdit)
			r.Delete("/machines/{id}", s.handleAdminDelete)
			r.Post("/import/{producer}", s.handleImportXLSX)
			r.Post("/import/{producer}/sheets", s.handleImportSheet)
		})
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/coinlist/backend/internal/auth"
	"github.com/ayush/coinlist/backend/internal/catalog"
	"github.com/ayush/coinlist/backend/internal/config"
	"github.com/ayush/coinlist/backend/internal/logging"
	"github.com/ayush/coinlist/backend/internal/middleware"
	"github.com/ayush/coinlist/backend/internal/store"
)

type deps struct {
	verifier auth.Verifier
	sessions auth.SessionStore
	catalog  catalog.Store
	files    catalog.FileStore
	users    catalog.UserCounter
	closers  []func()
}

// close releases backing clients, newest first.
func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

func main() {
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "mode", cfg.Mode, "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	var (
		d   *deps
		err error
	)
	if cfg.Live() {
		d, err = connectLive(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("startup: %w", err)
		}
	} else {
		d = mockDeps()
	}
	defer d.close()

	admin, err := auth.NewAdminVerifier(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin verifier: %w", err)
	}
	manager := auth.NewManager(d.verifier, admin, d.sessions, cfg.AuthDelay, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, log, manager, catalog.NewHandler(d.catalog, d.files, d.users, log)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Info("starting", "mode", cfg.Mode)
	return serve(ctx, srv, log)
}

// serve runs srv until ctx is cancelled or the listener fails. Listener
// errors are returned to the caller so deferred cleanup still runs.
func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func newRouter(cfg *config.Config, log *slog.Logger, manager *auth.Manager, catalogHandler *catalog.Handler) http.Handler {
	authHandler := auth.NewHandler(manager)
	requireAuth := middleware.RequireAuth(manager)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/admin/login", authHandler.AdminLogin)
		r.Post("/logout", authHandler.Logout)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/api/coins", func(r chi.Router) {
		r.Get("/", catalogHandler.ListCoins)
		r.Get("/promoted", catalogHandler.PromotedCoins)
		r.Get("/{id}", catalogHandler.GetCoin)
	})

	r.Route("/api/submissions", func(r chi.Router) {
		r.Use(requireAuth)
		r.With(middleware.RequireAdmin).Get("/", catalogHandler.ListSubmissions)
		r.Post("/", catalogHandler.CreateSubmission)
		r.Put("/{id}/logo", catalogHandler.UploadLogo)
		r.Get("/{id}/logo", catalogHandler.DownloadLogo)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireAdmin)
		r.Get("/dashboard", catalogHandler.Dashboard)
	})

	return r
}

func mockDeps() *deps {
	return &deps{
		verifier: auth.MockVerifier{},
		sessions: auth.NewMemorySessionStore(),
		catalog:  store.NewMemoryStore(catalog.SeedCoins(), catalog.SeedSubmissions()),
		files:    store.NewMemoryFiles(),
		users:    catalog.StaticUserCount(catalog.MockUserCount),
	}
}

func connectLive(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *deps, err error) {
	d := &deps{}
	defer func() {
		if err != nil {
			d.close()
		}
	}()

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	d.closers = append(d.closers, pgPool.Close)
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}
	d.verifier = auth.NewPostgresVerifier(pgStore)
	d.users = pgStore

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	d.closers = append(d.closers, func() { mongoClient.Disconnect(context.Background()) })
	mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
	if err := mongoStore.Seed(ctx, catalog.SeedCoins()); err != nil {
		return nil, fmt.Errorf("mongo seed: %w", err)
	}
	d.catalog = mongoStore

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	d.closers = append(d.closers, func() { rdb.Close() })
	d.sessions = auth.NewRedisSessionStore(rdb)

	// ── MinIO ────────────────────────────────────────────────
	d.files, err = store.NewMinioStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	log.Info("connected to backing stores", "mongo_db", cfg.MongoDB, "bucket", cfg.MinioBucket)
	return d, nil
}

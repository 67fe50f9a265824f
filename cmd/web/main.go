package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jirorimi/cup-registration/internal/config"
	"github.com/jirorimi/cup-registration/internal/db"
	"github.com/jirorimi/cup-registration/internal/metrics"
	"github.com/jirorimi/cup-registration/internal/middleware"
	"github.com/jirorimi/cup-registration/internal/service"
	"github.com/jirorimi/cup-registration/internal/store"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	setupLogger(cfg)

	database, err := db.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	middleware.InitAuth(cfg.Discord, cfg.Session.Secret, cfg.IsProduction())

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Secure = cfg.IsProduction()
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	// Postgres deployments keep sessions in memory; the sessions table is sqlite only.
	if cfg.Database.Driver == db.DriverSQLite {
		sessionManager.Store = sqlite3store.New(database.DB)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []service.Option{service.WithMetrics(metrics.New(registry))}
	if !cfg.Database.AtomicWrites {
		opts = append(opts, service.WithDiscreteWrites())
	}

	app := &application{
		cfg:            cfg,
		sessionManager: sessionManager,
		tournaments:    service.NewTournamentService(database, store.NewTournamentStore(database), opts...),
		users:          service.NewUserService(database, store.NewUserStore(database)),
		registry:       registry,
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("server starting", "addr", cfg.HTTP.Addr, "env", cfg.App.Env, "atomic_writes", cfg.Database.AtomicWrites)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"

	"github.com/csg33k/salesproj/internal/adapters/api"
	"github.com/csg33k/salesproj/internal/adapters/directory"
	sqliteadapter "github.com/csg33k/salesproj/internal/adapters/sqlite"
	"github.com/csg33k/salesproj/internal/config"
	"github.com/csg33k/salesproj/internal/handlers"
	"github.com/csg33k/salesproj/internal/locale"
	"github.com/csg33k/salesproj/internal/ports"
	"github.com/csg33k/salesproj/internal/telemetry"
)

const serviceName = "salesproj"

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Settings{
		ServiceName: serviceName,
		Endpoint:    cfg.OTelEndpoint,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}

	loc, _ := cfg.Location()

	var dir ports.Directory
	switch cfg.DirectorySource {
	case config.DirectorySQLite:
		repo, err := sqliteadapter.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer repo.Close()
		dir = repo
	default:
		dir = directory.NewStatic(nil)
	}

	h := handlers.New(handlers.Deps{
		Directory:         dir,
		API:               api.New(cfg.APIBaseURL, api.WithTimeout(cfg.APITimeout), api.WithLocation(loc)),
		Formatter:         locale.New(cfg.Locale, loc),
		NotificationDelay: cfg.NotificationDelay,
		SessionTTL:        cfg.SessionTTL,
		SecureCookies:     cfg.SecureCookies,
		Logger:            logger,
	})

	var root http.Handler = h.Routes()
	if cfg.CSRFKey != "" {
		protect := csrf.Protect([]byte(cfg.CSRFKey),
			csrf.Secure(cfg.SecureCookies),
			csrf.Path("/"),
			csrf.RequestHeader("X-CSRF-Token"),
		)
		root = protect(root)
		if !cfg.SecureCookies {
			// gorilla/csrf assumes TLS unless told otherwise.
			next := root
			root = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
			})
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Sales projections running on http://localhost:%s", cfg.Port)
	log.Printf("Projections API: %s", cfg.APIBaseURL)
	if cfg.DirectorySource == config.DirectorySQLite {
		log.Printf("Database: %s", cfg.DBPath)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		slog.Warn("flush traces", "err", err)
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"google.golang.org/api/option"

	"github.com/danielhkuo/sponsor-eval/auth"
	"github.com/danielhkuo/sponsor-eval/cliparse"
	"github.com/danielhkuo/sponsor-eval/db"
	"github.com/danielhkuo/sponsor-eval/evaluation"
	"github.com/danielhkuo/sponsor-eval/middleware"
	"github.com/danielhkuo/sponsor-eval/roster"
	"github.com/danielhkuo/sponsor-eval/router"
	"github.com/danielhkuo/sponsor-eval/submission"
)

func main() {
	var err error

	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level, _ := cliparse.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Open the session cache
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	ctx := context.Background()

	source, err := newRosterSource(ctx, cfg)
	if err != nil {
		slog.Error("roster source setup failed", "source", cfg.RosterSource, "error", err)
		os.Exit(1)
	}
	loader := roster.NewLoader(source)

	// A failed boot load is retried lazily on the first identity submission
	if _, err := loader.Load(ctx); err != nil {
		slog.Warn("initial roster load failed", "error", err)
	}

	client := submission.NewClient(cfg.SubmitURL, http.DefaultClient)
	manager := evaluation.NewManager(loader, client, db.NewSessionCache(dbConn), func(id string) string {
		return auth.CacheKey(id, cfg.SessionSalt)
	})

	mux := router.NewRouter(manager, loader, cfg)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port, "roster_source", cfg.RosterSource)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func newRosterSource(ctx context.Context, cfg cliparse.Config) (roster.Source, error) {
	if cfg.RosterSource == cliparse.RosterSourceSheets {
		return roster.NewSheetSource(ctx, cfg.SheetsID, cfg.SheetsRange, option.WithCredentialsFile(cfg.SheetsCredentials))
	}
	return roster.NewHTTPSource(cfg.RosterURL, http.DefaultClient), nil
}

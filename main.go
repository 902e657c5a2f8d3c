package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bubble-server/bot"
	"bubble-server/config"
	"bubble-server/handlers"
	"bubble-server/middleware"
	"bubble-server/reminders"
	"bubble-server/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var envFile string

	cmd := &cobra.Command{
		Use:           "bubble-server",
		Short:         "Bubble chat relay with the Sylvester reply bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel, cfg.LogFormat)
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cfg, logger); err != nil {
				logger.Error("server exited", "err", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
	flags.String("port", "", "HTTP listen port (env PORT)")
	flags.String("db-driver", "", "Database driver: sqlite3 or pgx (env DB_DRIVER)")
	flags.String("db-dsn", "", "Database DSN or SQLite path (env DB_DSN)")
	flags.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	for _, name := range []string{"port", "db-driver", "db-dsn", "log-level"} {
		_ = v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}

	return cmd
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	s, err := store.New(store.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDsn,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer s.Close()

	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}
	tokens, err := middleware.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	// Chat core: hub, bot and reminder scheduler share one reminder store.
	pending := reminders.NewStore()
	hub := handlers.NewHub(pending, logger)
	hub.SetResponder(bot.NewEngine(pending, hub,
		bot.WithTypingDelay(cfg.TypingDelay),
		bot.WithLogger(logger),
	))

	scheduler, err := reminders.NewScheduler(pending, hub, cfg.ReminderSchedule, logger)
	if err != nil {
		return err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	scheduler.Start()
	defer scheduler.Stop()

	authHandler := handlers.NewAuthHandler(s, tokens, logger)
	serverHandler := handlers.NewServerHandler(s, hub)
	userHandler := handlers.NewUserHandler(s)
	reminderHandler := handlers.NewReminderHandler(pending, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", serverHandler.Index)
	mux.HandleFunc("GET /health", serverHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /ws", hub.HandleWebSocket)

	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/me", tokens.Require(authHandler.Me))

	// Users
	mux.HandleFunc("GET /api/users/{id}", tokens.Require(userHandler.Get))
	mux.HandleFunc("PUT /api/users/me", tokens.Require(userHandler.UpdateProfile))

	// Reminders, keyed by the connection id from the welcome frame
	mux.HandleFunc("GET /api/reminders/{connID}", reminderHandler.List)
	mux.HandleFunc("POST /api/reminders/{connID}", reminderHandler.Create)
	mux.HandleFunc("DELETE /api/reminders/{connID}", reminderHandler.Clear)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bubble server starting", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/pokerledger/internal/auth"
	"github.com/mmynk/pokerledger/internal/config"
	"github.com/mmynk/pokerledger/internal/middleware"
	"github.com/mmynk/pokerledger/internal/notify"
	"github.com/mmynk/pokerledger/internal/service"
	"github.com/mmynk/pokerledger/internal/storage/sqlstore"
	"github.com/mmynk/pokerledger/pkg/api/apiconnect"
	"github.com/mmynk/pokerledger/pkg/logging"
)

// apiPrefix is the path prefix shared by every Connect procedure.
const apiPrefix = "/pokerledger.v1."

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.JWTSecret == config.DevJWTSecret {
		slog.Warn("JWT_SECRET is not set; using the development key")
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	notifier := buildNotifier(cfg, logger)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.AdminEmails...)

	// Auth runs first so the logging interceptor sees the actor.
	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
		middleware.LoggingInterceptor(logger),
		middleware.MetricsInterceptor(),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(
		service.NewGroupService(store, notifier, logger), interceptors))
	mux.Handle(apiconnect.NewTableServiceHandler(
		service.NewTableService(store, notifier, logger), interceptors))
	mux.Handle(apiconnect.NewPlayerServiceHandler(
		service.NewPlayerService(store, logger), interceptors))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	// Serve static files from frontend/static
	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	server := &http.Server{
		Addr:              addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// openStore connects to the configured database and applies the schema.
func openStore(cfg *config.Config) (*sqlstore.SQLStore, error) {
	if cfg.DBDriver == "postgres" {
		return sqlstore.Open(sqlstore.Postgres, cfg.DatabaseURL)
	}
	return sqlstore.New(cfg.DBPath)
}

// buildNotifier always logs group events and adds Telegram when a token and
// chat id are configured. Delivery happens off the request path.
func buildNotifier(cfg *config.Config, logger *slog.Logger) notify.Notifier {
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			// A bad token should not keep the ledger down
			slog.Error("Telegram notifications disabled", "error", err)
		} else {
			slog.Info("Telegram notifications enabled", "chat_id", cfg.TelegramChatID)
			notifiers = append(notifiers, tg)
		}
	}
	return notify.NewAsync(notifiers, cfg.NotifyTimeout, logger)
}

// staticHandler serves the frontend. Unknown paths fall back to index.html.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown Connect procedures must not get the SPA page
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Ledger-Total-Buy-Ins, Ledger-Settled-Out, Ledger-Difference")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

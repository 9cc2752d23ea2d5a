package app

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

	"github.com/spf13/viper"

	"triage-chat/internal/api"
	"triage-chat/internal/auth"
	"triage-chat/internal/config"
	"triage-chat/internal/interfaces"
	"triage-chat/internal/model"
	"triage-chat/internal/service"
	"triage-chat/internal/triage"
	"triage-chat/internal/view"
)

// App is the wired application.
type App struct {
	Server *http.Server
	Pages  *service.PageStore
	API    triage.Analyzer
}

// NewApp builds every component from cfg. It performs no network calls.
func NewApp(cfg *config.Config) (*App, error) {
	loc := cfg.Location()
	client := triage.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	ids := service.NewIDSource(time.Now)

	pages := service.NewPageStore(cfg.SessionTTL, func() interfaces.ChatPage {
		return service.NewChatPage(client, ids, service.WithLocation(loc))
	})

	renderer, err := view.NewRenderer(triage.AcceptedExtensions)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(&model.User{Name: cfg.UserName}, nil)
	chatHandler := api.NewChatHandler(pages, renderer, api.PageOptions{
		Location:       loc,
		DateLayout:     cfg.DateLayout,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	emailHandler := api.NewEmailHandler(service.NewEmailService(client), renderer, cfg.MaxUploadBytes)
	router := api.NewRouter(chatHandler, emailHandler, session, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for analysis requests and the event stream
		IdleTimeout:       120 * time.Second,
	}

	return &App{Server: server, Pages: pages, API: client}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	application, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go checkTriageAPI(ctx, application.API, cfg.APIBaseURL, 5)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "api_base_url", cfg.APIBaseURL)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			slog.Error("Server failed", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		return 1
	}
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// checkTriageAPI reports whether the triage API answers. The server starts
// regardless; pages show failures per request when the API is down.
func checkTriageAPI(ctx context.Context, analyzer triage.Analyzer, url string, attempts int) bool {
	slog.Info("Checking the triage API...", "url", url)
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := analyzer.Ping(pingCtx)
		cancel()
		if err == nil {
			slog.Info("Triage API is reachable.")
			return true
		}
		slog.Debug("Triage API not ready yet, retrying in 3 seconds...", "attempt", i, "url", url, "error", err)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(3 * time.Second):
		}
	}
	slog.Warn("Triage API is not reachable; requests will fail until it is up.", "url", url)
	return false
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/identity-service/api"
	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/auth"
	authPostgres "github.com/frahmantamala/identity-service/internal/auth/postgres"
	"github.com/frahmantamala/identity-service/internal/company"
	companyPostgres "github.com/frahmantamala/identity-service/internal/company/postgres"
	"github.com/frahmantamala/identity-service/internal/core/database"
	"github.com/frahmantamala/identity-service/internal/core/events"
	"github.com/frahmantamala/identity-service/internal/credential"
	"github.com/frahmantamala/identity-service/internal/transport"
	"github.com/frahmantamala/identity-service/internal/transport/middleware"
	"github.com/frahmantamala/identity-service/internal/transport/rest"
	"github.com/frahmantamala/identity-service/internal/user"
	userPostgres "github.com/frahmantamala/identity-service/internal/user/postgres"
	"github.com/frahmantamala/identity-service/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server",
		"address", addr,
		"driver", deps.Config.Database.Driver,
		"password_hasher", deps.Config.Security.PasswordHasher,
		"basic_auth", deps.Config.Security.RequireBasicAuth)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return logger.Into(context.Background(), deps.Logger)
		},
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.EventBus.Wait()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	opts := rest.Options{
		AllowedOrigins:   deps.Config.Server.Origins(),
		RequireBasicAuth: deps.Config.Security.RequireBasicAuth,
		MaxBodyBytes:     deps.Config.Server.MaxBodyBytes,
		OpenAPISpec:      api.OpenAPISpec,
		Logger:           deps.Logger,
	}

	if deps.Config.Server.ValidateRequests {
		doc, err := middleware.LoadOpenAPI(context.Background(), api.OpenAPISpec)
		if err != nil {
			return err
		}
		validator, err := middleware.OpenAPIValidator(doc, transport.NewBaseHandler(deps.Logger))
		if err != nil {
			return err
		}
		opts.RequestValidator = validator
	}

	rest.RegisterAllRoutes(deps.Router, deps.Handlers, opts)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.L()

	db, gdb, err := database.Open(config.Database, config.Observability.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	hasher, err := credential.New(config.Security.PasswordHasher, config.Security.BCryptCost)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to build password hasher: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	events.RegisterAuditHandlers(eventBus, lg)

	base := transport.NewBaseHandler(lg)
	userService := user.NewService(userPostgres.NewStore(gdb), hasher, eventBus, lg)
	authService := auth.NewService(authPostgres.NewRepository(gdb), hasher, lg)
	companyService := company.NewService(companyPostgres.NewCompanyRepository(gdb), lg)

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		EventBus: eventBus,
		Handlers: rest.Handlers{
			Health:  rest.NewHealthHandler(db, config.Database.Driver),
			Auth:    auth.NewHandler(authService),
			User:    user.NewHandler(userService),
			Company: company.NewHandler(base, companyService),
		},
	}, nil
}

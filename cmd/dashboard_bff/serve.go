package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/workspace_dashboard/internal/adapters/remote"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/workspace_dashboard/internal/core/services"
	"github.com/SscSPs/workspace_dashboard/internal/handlers"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
	"github.com/SscSPs/workspace_dashboard/internal/platform/config"
	"github.com/SscSPs/workspace_dashboard/internal/repositories/cache/redisstore"
	"github.com/SscSPs/workspace_dashboard/internal/repositories/database/pgsql"
	"github.com/SscSPs/workspace_dashboard/internal/utils"
	"github.com/SscSPs/workspace_dashboard/pkg/database"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		// Initialize structured logger
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		migrateOnStart, _ := cmd.Flags().GetBool("migrate")
		if err := serve(logger, migrateOnStart); err != nil {
			logger.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", true, "Apply pending migrations before serving when a database is configured")
	rootCmd.AddCommand(serveCmd)
}

func serve(logger *slog.Logger, migrateOnStart bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	client, err := remote.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	if err != nil {
		return err
	}
	repos := portsrepo.RepositoryProvider{Remote: client}

	// Drafts survive restarts only when a database is configured.
	if cfg.DatabaseURL != "" {
		if migrateOnStart {
			if err := runMigrations(cfg.DatabaseURL, logger, 0, false); err != nil {
				return err
			}
		}
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(dbPool)
		repos.Drafts = pgsql.NewDraftRepository(dbPool)
		logger.Info("Draft persistence enabled")
	} else {
		logger.Warn("PGSQL_URL not set, unsynced table edits are kept in memory only")
	}

	if cfg.RedisURL != "" {
		listCache, err := redisstore.NewWorkspaceListCache(cfg.RedisURL, cfg.WorkspaceListCacheTTL)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := listCache.Close(); cerr != nil {
				logger.Error("Error closing redis connection", slog.String("error", cerr.Error()))
			}
		}()
		repos.ListCache = listCache
		logger.Info("Workspace list cache enabled", slog.Duration("ttl", cfg.WorkspaceListCacheTTL))
	}

	analytics := utils.NewAnalyticsClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	deps := handlers.RouteDeps{Analytics: analytics}
	if cfg.AIRateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(cfg.AIRateLimit)
		if err != nil {
			logger.Warn("Invalid AI_RATE_LIMIT, assistant endpoint is not throttled", slog.String("value", cfg.AIRateLimit))
		} else {
			deps.AskLimiter = limiter.New(memory.NewStore(), rate)
		}
	}

	container := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, container, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pulsevault/pulsevault/internal/config"
	"github.com/pulsevault/pulsevault/internal/domain/anonymization"
	"github.com/pulsevault/pulsevault/internal/domain/dashboard"
	"github.com/pulsevault/pulsevault/internal/domain/familyhistory"
	"github.com/pulsevault/pulsevault/internal/domain/genomic"
	"github.com/pulsevault/pulsevault/internal/domain/records"
	"github.com/pulsevault/pulsevault/internal/domain/vitals"
	"github.com/pulsevault/pulsevault/internal/domain/wearable"
	"github.com/pulsevault/pulsevault/internal/platform/auth"
	"github.com/pulsevault/pulsevault/internal/platform/db"
	"github.com/pulsevault/pulsevault/internal/platform/middleware"
	"github.com/pulsevault/pulsevault/internal/platform/privacy"
)

// vitalSinkAdapter adapts the vitals service to the wearable.Sink interface,
// avoiding a circular import between the wearable and vitals packages.
type vitalSinkAdapter struct {
	svc *vitals.Service
}

func (a *vitalSinkAdapter) IngestBatch(ctx context.Context, userID, deviceID uuid.UUID, ms []wearable.Measurement) error {
	batch := make([]*vitals.VitalSign, len(ms))
	for i, m := range ms {
		did := deviceID
		batch[i] = &vitals.VitalSign{
			UserID:     userID,
			Type:       m.Type,
			Value:      m.Value,
			Unit:       m.Unit,
			MeasuredAt: m.MeasuredAt,
			DeviceID:   &did,
		}
	}
	return a.svc.CreateBatch(ctx, batch)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pulsevault-server",
		Short: "PulseVault personal health data API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the PulseVault API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Privacy engine
	pseudonymizer := privacy.NewPseudonymizer(cfg.AnonymizationSalt, logger)
	generalizer := privacy.NewGeneralizer(nil)
	laplace := privacy.NewLaplaceMechanism(nil)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	// Access log middleware
	e.Use(middleware.AccessLog(logger))

	// API group
	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	// Domain services
	vitalSvc := vitals.NewService(vitals.NewRepoPG(pool))
	vitals.NewHandler(vitalSvc).RegisterRoutes(apiV1)

	recordSvc := records.NewService(records.NewRepoPG(pool))
	records.NewHandler(recordSvc).RegisterRoutes(apiV1)

	genomicSvc := genomic.NewService(genomic.NewRepoPG(pool))
	genomic.NewHandler(genomicSvc).RegisterRoutes(apiV1)

	familySvc := familyhistory.NewService(familyhistory.NewRepoPG(pool))
	familyhistory.NewHandler(familySvc).RegisterRoutes(apiV1)

	wearableSvc := wearable.NewService(wearable.NewRepoPG(pool), &vitalSinkAdapter{svc: vitalSvc})
	wearable.NewHandler(wearableSvc).RegisterRoutes(apiV1)

	dashboardSvc := dashboard.NewService(vitalSvc, recordSvc)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(apiV1)

	anonSvc := anonymization.NewService(
		anonymization.NewLogRepoPG(pool),
		anonymization.NewRecordSourcePG(pool),
		pseudonymizer,
		generalizer,
		laplace,
		cfg.DPEpsilon,
		logger,
	)
	anonymization.NewHandler(anonSvc).RegisterRoutes(apiV1)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":       "ok",
			"version":      "0.1.0",
			"default_salt": pseudonymizer.UsingDefaultSalt(),
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

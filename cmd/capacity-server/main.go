package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lowermainland/capacity/internal/config"
	"github.com/lowermainland/capacity/internal/domain/patient"
	"github.com/lowermainland/capacity/internal/domain/reference"
	"github.com/lowermainland/capacity/internal/domain/scenario"
	"github.com/lowermainland/capacity/internal/platform/db"
	"github.com/lowermainland/capacity/internal/platform/middleware"
	"github.com/lowermainland/capacity/internal/synth"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "capacity-server",
		Short: "Hospital capacity planning API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the capacity planning API server",
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
			if !cfg.UseDatabase() {
				return fmt.Errorf("DATABASE_URL is required for migrations")
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
			if !cfg.UseDatabase() {
				return fmt.Errorf("DATABASE_URL is required for migrations")
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

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic dataset as CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			seed, _ := cmd.Flags().GetUint64("seed")
			output, _ := cmd.Flags().GetString("output")
			baselineYear, _ := cmd.Flags().GetInt("baseline-year")

			ds := synth.Generate(synth.Config{
				Patients:     patients,
				Seed:         seed,
				BaselineYear: baselineYear,
			})
			if err := synth.WriteAll(ds, output); err != nil {
				return err
			}

			fmt.Printf("Generated %d patients, %d ED encounters, %d IP stays in %s\n",
				len(ds.Patients), len(ds.EDEncounters), len(ds.IPStays), output)
			return nil
		},
	}
	cmd.Flags().Int("patients", 1000, "Number of synthetic patients")
	cmd.Flags().Uint64("seed", 42, "Random seed")
	cmd.Flags().String("output", "data", "Output directory for CSV files")
	cmd.Flags().Int("baseline-year", 2022, "Year the encounters and stays are dated in")
	return cmd
}

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Generate the synthetic dataset and load it into Postgres",
		Long: "Regenerates the dataset from the given seed and bulk-loads it into the " +
			"migrated schema. Generation is deterministic, so the same flags produce " +
			"the same rows the generate command writes as CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			seed, _ := cmd.Flags().GetUint64("seed")
			baselineYear, _ := cmd.Flags().GetInt("baseline-year")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UseDatabase() {
				return fmt.Errorf("DATABASE_URL is required to load data")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			ds := synth.Generate(synth.Config{
				Patients:     patients,
				Seed:         seed,
				BaselineYear: baselineYear,
			})
			total, err := synth.NewLoader(pool).Load(ctx, ds)
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}

			fmt.Printf("Loaded %d rows (%d patients, %d ED encounters, %d IP stays).\n",
				total, len(ds.Patients), len(ds.EDEncounters), len(ds.IPStays))
			return nil
		},
	}
	cmd.Flags().Int("patients", 1000, "Number of synthetic patients")
	cmd.Flags().Uint64("seed", 42, "Random seed")
	cmd.Flags().Int("baseline-year", 2022, "Year the encounters and stays are dated in")
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a generated data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")

			report := synth.Validate(dataDir)
			for _, f := range report.Files {
				status := "ok"
				if !f.Passed {
					status = "FAIL"
				}
				fmt.Printf("%-28s %-6s %d records\n", f.File, status, f.RecordCount)
				for _, e := range f.Errors {
					fmt.Printf("    %s\n", e)
				}
			}
			if !report.Passed {
				return fmt.Errorf("validation failed")
			}
			fmt.Println("All files passed validation.")
			return nil
		},
	}
	cmd.Flags().String("data-dir", "data", "Data directory to validate")
	return cmd
}

// repositories bundles the storage implementations, either Postgres-backed
// or CSV-backed depending on configuration.
type repositories struct {
	reference reference.Repository
	scenario  scenario.ReferenceData
	patient   patient.Repository
}

func newRepositories(cfg *config.Config, pool *pgxpool.Pool) repositories {
	if pool != nil {
		return repositories{
			reference: reference.NewRepo(pool),
			scenario:  scenario.NewRefData(pool),
			patient:   patient.NewRepo(pool),
		}
	}
	return repositories{
		reference: reference.NewCSVRepo(cfg.DataDir),
		scenario:  scenario.NewCSVRefData(cfg.DataDir),
		patient:   patient.NewCSVRepo(cfg.DataDir),
	}
}

// buildServer assembles the echo instance with all middleware and routes.
// The pool is nil when running CSV-backed.
func buildServer(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	api := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))
	api.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))
	api.Use(middleware.BodyLimit("1M"))

	repos := newRepositories(cfg, pool)

	referenceHandler := reference.NewHandler(reference.NewService(repos.reference), cfg.DefaultSchedule)
	referenceHandler.RegisterRoutes(api.Group("/reference"))

	scenarioHandler := scenario.NewHandler(
		scenario.NewService(repos.scenario, cfg.DefaultSchedule),
		scenario.NewStore(cfg.SavedDir),
	)
	scenarioHandler.RegisterRoutes(api.Group("/scenarios"))

	patientHandler := patient.NewHandler(patient.NewService(repos.patient))
	patientHandler.RegisterRoutes(api)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	return e
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// The pool is caller-owned: opened here, passed down, closed on exit.
	var pool *pgxpool.Pool
	if cfg.UseDatabase() {
		ctx := context.Background()
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
	} else {
		logger.Info().Str("data_dir", cfg.DataDir).Msg("running CSV-backed, no database configured")
	}

	e := buildServer(cfg, logger, pool)

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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ergolife/storefront/internal/infrastructure/config"
	"github.com/ergolife/storefront/internal/infrastructure/logger"
	"github.com/ergolife/storefront/internal/infrastructure/migration"
	"github.com/ergolife/storefront/internal/infrastructure/persistence"
	"github.com/ergolife/storefront/migrations"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrationsDir string
	logLevel      string

	log *zap.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Schema migrations and seed data for the Ergolife storefront",
	Long: `migrate applies the SQL migrations compiled into the binary to the
configured PostgreSQL database. With database.driver=sqlite the schema is
created from the GORM models instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()

		var err error
		log, err = logger.New(&logger.Config{
			Level:      logLevel,
			Format:     "console",
			Output:     "stdout",
			TimeFormat: "2006-01-02 15:04:05",
		})
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		if cmd.Annotations["offline"] == "true" {
			return nil
		}
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if log != nil {
			logger.Sync(log)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "path", "migrations", "Migrations directory used by create")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, versionCmd, forceCmd, createCmd, listCmd, seedCmd)

	seedCmd.Flags().Bool("demo", false, "Also generate demo customers, vouchers and orders")
	seedCmd.Flags().Int("customers", 25, "Number of demo customers")
	seedCmd.Flags().Uint64("seed", 42, "Random seed for demo data")
}

// withMigrator opens the PostgreSQL database and runs fn against the migrator
func withMigrator(fn func(m *migration.Migrator) error) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("versioned migrations need database.driver=%s, got %s", config.DriverPostgres, cfg.Database.Driver)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return fn(m)
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(*cobra.Command, []string) error {
		if cfg.Database.Driver == config.DriverSQLite {
			db, err := persistence.NewDatabase(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := persistence.AutoMigrate(db.DB); err != nil {
				return err
			}
			log.Info("SQLite schema migrated", zap.String("path", cfg.Database.SQLitePath))
			return nil
		}
		return withMigrator((*migration.Migrator).Up)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(*cobra.Command, []string) error {
		return withMigrator((*migration.Migrator).Down)
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps N",
	Short: "Apply N migrations (negative N rolls back)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(*cobra.Command, []string) error {
		return withMigrator(func(m *migration.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Set the schema version without running migrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Force(version) })
	},
}

var createCmd = &cobra.Command{
	Use:         "create NAME",
	Short:       "Create an empty up/down migration pair",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"offline": "true"},
	RunE: func(_ *cobra.Command, args []string) error {
		mf, err := migration.CreateMigration(migrationsDir, args[0], time.Now())
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:         "list",
	Short:       "List the migrations compiled into this binary",
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		entries, err := migration.ListMigrations(migrations.FS)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			log.Info("No migrations found")
			return nil
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			down := ""
			if !e.HasDown {
				down = " (no down)"
			}
			fmt.Fprintf(out, "  %06d %s%s\n", e.Version, e.Name, down)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account, starter catalog and demo accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		seeder := persistence.NewSeeder(db.DB, log)
		if err := seeder.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			return err
		}
		if err := seeder.SeedCatalog(ctx); err != nil {
			return err
		}
		if err := seeder.SeedDemoUsers(ctx); err != nil {
			return err
		}

		demo, _ := cmd.Flags().GetBool("demo")
		if !demo {
			return nil
		}
		customers, _ := cmd.Flags().GetInt("customers")
		seed, _ := cmd.Flags().GetUint64("seed")
		return seeder.SeedDemo(ctx, customers, seed)
	},
}

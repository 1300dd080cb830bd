package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/landing/contacto-api/internal/config"
	"github.com/landing/contacto-api/internal/infra/database"
)

type migrateOptions struct {
	driver  string
	dsn     string
	print   bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &migrateOptions{}

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Create or upgrade the contactos table",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.print {
				_, err := fmt.Fprint(cmd.OutOrStdout(), database.Schema)
				return err
			}
			return runMigrate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.driver, "driver", "", "database/sql driver: postgres or pgx (default DB_DRIVER)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "connection string (default DATABASE_URL or DB_* variables)")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print the DDL instead of applying it")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "migration timeout")

	return cmd
}

func runMigrate(ctx context.Context, opts *migrateOptions) error {
	_ = godotenv.Load()

	pool := database.PoolConfig{Driver: opts.driver, DSN: opts.dsn, MaxConns: 1}
	if pool.DSN == "" || pool.Driver == "" {
		cfg, err := config.FromEnv()
		if err != nil && pool.DSN == "" {
			return fmt.Errorf("resolve database location: %w", err)
		}
		if cfg != nil {
			if pool.DSN == "" {
				pool.DSN = cfg.DB.DSN()
			}
			if pool.Driver == "" {
				pool.Driver = cfg.DB.Driver
			}
		}
	}

	db, err := database.NewDBConnection(pool)
	if err != nil {
		return err
	}
	defer db.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	if err := database.CreateSchema(ctx, db); err != nil {
		return err
	}
	slog.Info("schema applied", "driver", pool.Driver)
	return nil
}

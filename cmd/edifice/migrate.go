package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haiderali9-9/edifice/internal/config"
	"github.com/haiderali9-9/edifice/internal/db"
	"github.com/haiderali9-9/edifice/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var (
		configPath string
		adminID    string
		adminEmail string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database schema",
		Long:  "Creates or updates all Edifice tables and optionally seeds an admin profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, configPath, adminID, adminEmail)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "edifice.yaml", "path to Edifice config file")
	cmd.Flags().StringVar(&adminID, "admin-id", "usr-admin", "profile ID for the seeded admin")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "email for the seeded admin (skip when empty)")
	return cmd
}

func runMigrate(cmd *cobra.Command, configPath, adminID, adminEmail string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !cfg.StoreConfigured() {
		return &store.ConfigurationError{Missing: missingStoreKeys(cfg)}
	}

	gormDB, err := db.Connect(cfg.Store.Host, cfg.Store.Port, cfg.Store.User, cfg.Store.Password, cfg.Store.Database)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Store.Database, err)
	}
	fmt.Fprintf(out, "Connected to %s at %s:%d\n", cfg.Store.Database, cfg.Store.Host, cfg.Store.Port)

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if adminEmail != "" {
		if err := db.SeedAdmin(gormDB, adminID, adminEmail); err != nil {
			return err
		}
		fmt.Fprintf(out, "Seeded admin profile %s (%s)\n", adminID, adminEmail)
	}

	fmt.Fprintln(out, "Edifice database ready.")
	return nil
}

func missingStoreKeys(cfg *config.Config) []string {
	var missing []string
	if cfg.Store.Host == "" {
		missing = append(missing, "host")
	}
	if cfg.Store.Database == "" {
		missing = append(missing, "database")
	}
	return missing
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haiderali9-9/edifice/internal/config"
	"github.com/haiderali9-9/edifice/internal/db"
	"github.com/haiderali9-9/edifice/internal/functions"
	"github.com/haiderali9-9/edifice/internal/notify"
	"github.com/haiderali9-9/edifice/internal/server"
	"github.com/haiderali9-9/edifice/internal/store"
	"github.com/haiderali9-9/edifice/internal/sweep"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Serves the REST API, the function endpoints, and the completion sweep.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "edifice.yaml", "path to Edifice config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "API port (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Server.Port
	}

	s := openStore(cfg)
	if !s.Ready() {
		fmt.Fprintln(out, "Store not configured; data operations will fail until it is")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	notifier := notify.New(cfg.Slack.WebhookURL)

	// Function endpoints on their own listener, as deployed.
	fns := &functions.Handler{
		Store:      s,
		Secret:     cfg.Auth.Secret,
		BaseURL:    cfg.Invite.BaseURL,
		ExpiryDays: cfg.Invite.ExpiryDays,
		Notifier:   notifier,
	}
	go func() {
		if err := functions.Start(ctx, fns, cfg.Server.FunctionsPort, out); err != nil {
			fmt.Fprintf(out, "functions server error: %v\n", err)
		}
	}()

	if cfg.Sweep.Schedule != "" {
		go func() {
			if err := sweep.Run(ctx, sweep.Opts{Store: s, Schedule: cfg.Sweep.Schedule, Notifier: notifier, Out: out}); err != nil {
				fmt.Fprintf(out, "sweep error: %v\n", err)
			}
		}()
	}

	return server.Start(ctx, server.StartOpts{
		Store: s,
		Port:  port,
		Out:   out,
	})
}

// openStore builds the store handle from config. Missing settings
// degrade the handle instead of failing startup.
func openStore(cfg *config.Config) *store.Store {
	return store.Open(db.Connect,
		cfg.Store.Host, cfg.Store.Port, cfg.Store.User, cfg.Store.Password, cfg.Store.Database)
}

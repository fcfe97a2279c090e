package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haiderali9-9/edifice/internal/config"
	"github.com/haiderali9-9/edifice/internal/functions"
	"github.com/haiderali9-9/edifice/internal/notify"
)

func newFunctionsCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "functions",
		Short: "Start the function endpoints only",
		Long:  "Serves the invite and admin-emails endpoints without the REST API, mirroring the standalone deployment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunctions(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "edifice.yaml", "path to Edifice config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "functions port (overrides config)")
	return cmd
}

func runFunctions(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Server.FunctionsPort
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

	h := &functions.Handler{
		Store:      s,
		Secret:     cfg.Auth.Secret,
		BaseURL:    cfg.Invite.BaseURL,
		ExpiryDays: cfg.Invite.ExpiryDays,
		Notifier:   notify.New(cfg.Slack.WebhookURL),
	}
	return functions.Start(ctx, h, port, out)
}

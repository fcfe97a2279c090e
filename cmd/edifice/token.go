package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/haiderali9-9/edifice/internal/auth"
	"github.com/haiderali9-9/edifice/internal/config"
)

func newTokenCmd() *cobra.Command {
	var (
		configPath string
		subject    string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the function endpoints",
		Long:  "Signs a token for a profile ID using the configured secret. Prompts for the secret when none is configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, configPath, subject, ttl)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "edifice.yaml", "path to Edifice config file")
	cmd.Flags().StringVarP(&subject, "user", "u", "", "profile ID the token identifies")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTTL, "token lifetime")
	return cmd
}

func runToken(cmd *cobra.Command, configPath, subject string, ttl time.Duration) error {
	if subject == "" {
		return fmt.Errorf("token: --user is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	secret := cfg.Auth.Secret
	if secret == "" {
		secret, err = promptSecret(cmd)
		if err != nil {
			return err
		}
	}

	token, err := auth.Mint(subject, secret, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// promptSecret reads the signing secret without echoing when stdin is a
// terminal, falling back to a plain line read otherwise.
func promptSecret(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Signing secret: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("token: read secret: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	var line string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
		return "", fmt.Errorf("token: read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

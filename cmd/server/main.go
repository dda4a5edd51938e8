package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-ircd/internal/app"
	"github.com/vovakirdan/wirechat-ircd/internal/auth"
	"github.com/vovakirdan/wirechat-ircd/internal/config"
	"github.com/vovakirdan/wirechat-ircd/internal/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "wirechat-ircd",
		Short:        "IRC server with channel operators and an admin API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newHashPasswordCmd(), newTokenCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the IRC and HTTP listeners",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, resolved, err := config.Load(nil, configPath)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(overrides)

			logger := log.New(cfg.LogLevel, cfg.LogFormat)
			logger.Info().Str("config", resolved).Msg("configuration loaded")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(&cfg, logger)
			if err != nil {
				logger.Error().Err(err).Msg("failed to initialize app")
				return err
			}

			logger.Info().Str("irc_addr", cfg.IRCAddr).Str("http_addr", cfg.HTTPAddr).Msg("starting wirechat ircd")
			if err := application.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("server exited with error")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml")
	flags.StringVar(&overrides.IRCAddr, "irc-addr", "", "IRC listen address")
	flags.StringVar(&overrides.HTTPAddr, "http-addr", "", "HTTP listen address")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for server_password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		configPath string
		subject    string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin API token signed with jwt_secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := config.Load(nil, configPath)
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = cfg.JWTTTL
			}

			token, err := auth.GenerateToken(&auth.JWTConfig{
				Secret:   []byte(cfg.JWTSecret),
				Issuer:   cfg.JWTIssuer,
				Audience: cfg.JWTAudience,
				TTL:      ttl,
			}, subject)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml")
	flags.StringVar(&subject, "subject", "", "token subject")
	flags.DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to jwt_ttl)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

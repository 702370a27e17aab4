package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sujalbistaa/zevina/internal/config"
	"github.com/sujalbistaa/zevina/internal/logging"
)

// newRootCmd loads defaults, .env and the environment before flags are
// registered, so each flag's default is the environment value.
func newRootCmd() (*cobra.Command, error) {
	cfg, dotenv, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logger *zap.Logger
	root := &cobra.Command{
		Use:          "zevina",
		Short:        "ZEVINA student wellness server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			l, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger = l
			if !dotenv {
				logger.Debug("No .env file found, reading from environment")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg, logger)
		},
	}
	cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg, logger)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "chat",
		Short: "Talk to Zevi, the wellness bot, in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg.ChatReplyDelay)
		},
	})
	return root, nil
}

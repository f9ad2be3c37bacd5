package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/config"
)

// cliOptions holds values shared by every subcommand.
type cliOptions struct {
	configPath string
	backendURL string
	token      string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "gdssctl",
		Short:         "Inspect GDSS rankings and check criterion weights from the terminal.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.backendURL != "" {
				cfg.Backend.URL = opts.backendURL
			}
			if opts.token == "" {
				opts.token = cfg.Backend.Token
			}
			opts.cfg = cfg
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.backendURL, "backend-url", "", "GDSS backend base URL (overrides config)")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token for backend calls (defaults to backend.token)")

	root.AddCommand(newRankingCmd(opts), newWeightsCmd(opts), newMigrateCmd(opts))
	return root
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

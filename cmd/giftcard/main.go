package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MarkoPoloResearchLab/giftcard/internal/console"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagLogLevel    = "log-level"
	flagLogEncoding = "log-encoding"
	flagIDSeed      = "id-seed"
	envPrefix       = "GIFTCARD"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "giftcard: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := console.Config{}
	cmd := &cobra.Command{
		Use:           "giftcard",
		Short:         "Interactive in-memory gift card ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			err := console.Run(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().String(flagLogLevel, "info", "log level (debug, info, warn, error)")
	cmd.Flags().String(flagLogEncoding, "console", "log encoding (console or json)")
	cmd.Flags().Uint64(flagIDSeed, 0, "seed for reproducible card numbers (0 draws randomly)")

	return cmd
}

func loadConfig(cmd *cobra.Command, cfg *console.Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, flagName := range []string{flagLogLevel, flagLogEncoding, flagIDSeed} {
		if err := v.BindPFlag(flagName, cmd.Flags().Lookup(flagName)); err != nil {
			return err
		}
	}

	cfg.LogLevel = strings.TrimSpace(v.GetString(flagLogLevel))
	cfg.LogEncoding = strings.TrimSpace(v.GetString(flagLogEncoding))
	cfg.IDSeed = v.GetUint64(flagIDSeed)

	return cfg.Validate()
}

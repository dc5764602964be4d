// Package cmd defines and implements the CLI commands for the hostharvest
// executable.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/probelab/hostharvest/internal/logging"
	"github.com/probelab/hostharvest/pkg/config"
)

var (
	cfgFile string
	logger  *zap.Logger
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostharvest",
		Short: "Bulk-fetch one resource path from a large list of hosts.",
		Long: `hostharvest fetches a single configured path (for example /ads.txt or a
.well-known file) from every host in a newline-delimited list, bounded to a
configured number of concurrent fetches, persisting successful responses
into a bucketed file tree and skipping hosts whose output is still fresh
from a prior run.`,

		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := config.InitConfig(cfgFile); err != nil {
				return err
			}
			l, err := logging.New(viper.GetBool("log.development"))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = l
			return nil
		},

		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., /etc/hostharvest, $HOME/.hostharvest)")
	cmd.AddCommand(newHarvestCmd())

	return cmd
}

// Execute is the main entry point.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

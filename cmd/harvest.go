package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/probelab/hostharvest/internal/api"
	"github.com/probelab/hostharvest/internal/clock/system"
	"github.com/probelab/hostharvest/internal/harvest"
)

// newHarvestCmd creates the 'harvest' subcommand, which runs one complete
// pass over the configured host list.
func newHarvestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest",
		Short: "Run one fetch pass over the host list",
		Long: `Reads the configured host list, fetches the configured request path from
every valid host with bounded concurrency, and writes successful responses
into the output tree. Hosts whose output file is younger than the grace
period are skipped without any network activity.`,

		RunE: runHarvestCommand,
	}
}

func runHarvestCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := harvest.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load harvest config: %w", err)
	}

	runLogger := logger.With(zap.String("run_id", uuid.NewString()))

	fs := afero.NewOsFs()
	source, err := harvest.OpenHostSource(fs, cfg.HostFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			runLogger.Warn("Failed to close host source", zap.Error(cerr))
		}
	}()

	sink, err := harvest.NewFileSystemSink(fs, cfg.OutputRoot, runLogger)
	if err != nil {
		return fmt.Errorf("init sink: %w", err)
	}

	clk := system.New()
	transport := harvest.NewCollyTransport(cfg, clk, runLogger)
	worker := harvest.NewFetchWorker(cfg, transport, sink, clk, runLogger)
	scheduler := harvest.NewScheduler(cfg, source, worker, clk, runLogger)

	if cfg.MetricsAddr != "" {
		stop := startMetricsServer(cfg.MetricsAddr, runLogger)
		defer stop()
	}

	result, err := scheduler.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run harvest: %w", err)
	}

	fmt.Printf("harvested %d hosts in %.1fs (%d saved, %d skipped, %d aborted, %d rejected lines)\n",
		result.Dispatched, result.Elapsed.Seconds(),
		result.Saved, result.Skipped, result.Aborted, result.Rejected)
	return nil
}

// startMetricsServer serves /healthz, /readyz and /metrics until the run
// ends. A listener failure is logged, never fatal to the run.
func startMetricsServer(addr string, logger *zap.Logger) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Metrics listener failed", zap.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"indra/pkg/cli"
	"indra/pkg/config"
	"indra/pkg/monsoon"
	"indra/pkg/oracle"
	"indra/pkg/research"
	"indra/pkg/server"
	"indra/pkg/telemetry/health"
	"indra/pkg/telemetry/logging"
	"indra/pkg/telemetry/metrics"
	"indra/pkg/tracks"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Indra API server",
	Long: `Start the Indra API server with the specified configuration.

The server loads the baseline track dataset and monsoon scenario file,
starts the scheduled hazard monitor, and serves the analysis stream and
monsoon endpoints on the configured address.

Examples:
  # Start with default config
  indra run

  # Start with custom config
  indra run --config /etc/indra/config.yaml

  # Override listen address
  indra run --listen 0.0.0.0:8080

  # Validate config without starting server
  indra run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	// Metrics collector (nil when disabled keeps the handlers no-op safe)
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(metrics.Config{Enabled: true}, nil)
	}

	// Baseline track dataset. A missing file degrades to an empty
	// collection so analysis still runs without mitigation output.
	baseline := tracks.Load(cfg.Baseline.Path, logger)
	fmt.Printf("✓ Baseline loaded (%d tracks)\n", baseline.Len())

	// Literature search client
	arxiv := research.NewArxivClient(research.ArxivConfig{
		BaseURL: cfg.Research.BaseURL,
		Timeout: cfg.Research.Timeout,
	}, logger)

	// Analysis pipeline
	pipeline := oracle.New(baseline, arxiv, oracle.Config{
		StageDelay:         cfg.Pipeline.StageDelay,
		ResearchMaxResults: cfg.Research.MaxResults,
	}, logger, collectorOrNil(collector))

	// Monsoon scenario provider
	provider, err := monsoon.NewFileProvider(monsoon.FileProviderConfig{
		Path: cfg.Monsoon.DataPath,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to load monsoon scenario data: %w", err)
	}
	defer provider.Stop()

	if cfg.Monsoon.WatchData {
		if err := provider.Watch(); err != nil {
			logger.Warn("scenario file watch unavailable", "error", err)
		}
	}
	fmt.Printf("✓ Monsoon scenarios loaded (%d years)\n", len(provider.Years()))

	// Historical archive, seeded from the scenario snapshot so the
	// historical endpoint answers from the first request.
	var archive *monsoon.Archive
	if cfg.Monsoon.ArchivePath != "" {
		archive, err = monsoon.NewArchive(monsoon.ArchiveConfig{
			DBPath: cfg.Monsoon.ArchivePath,
		})
		if err != nil {
			return fmt.Errorf("failed to open monsoon archive: %w", err)
		}
		defer archive.Close()

		seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := archive.Seed(seedCtx, provider.Snapshot()); err != nil {
			logger.Warn("archive seed incomplete", "error", err)
		}
		seedCancel()
		fmt.Println("✓ Historical archive initialized")
	}

	monitor := monsoon.NewMonitor(provider, cfg.Monsoon.DefaultYear, logger)

	ctx := cli.SetupSignalHandler()

	// Background scan loop. Each scan feeds scan and alert gauges, and
	// archives the scanned packet for the focus year.
	scheduler := monsoon.NewScheduler(monitor, cfg.Monsoon.ScanSchedule, func(res *monsoon.ScanResult) {
		if archive != nil && res.Metrics != nil {
			putCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := archive.Put(putCtx, res.Metrics); err != nil {
				logger.Warn("failed to archive scan result", "error", err)
			}
			cancel()
		}
		if collector != nil {
			var deviation float64
			var delay int
			if res.Metrics != nil {
				deviation = res.Metrics.DeviationPercent
				delay = res.Metrics.OnsetDelayDays()
			}
			collector.RecordMonsoonScan(res.Status, deviation, delay, len(res.Alerts))
		}
	}, logger)
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start monsoon scheduler: %w", err)
	}
	defer scheduler.Stop()
	if next := scheduler.NextRun(); next != nil {
		logger.Debug("monsoon scheduler started", "next_scan", next)
	}

	// Health checks
	checker := health.New(0)
	checker.RegisterCheck("monsoon_provider", provider.HealthCheck)
	checker.RegisterCheck("research", arxiv.HealthCheck)
	if archive != nil {
		checker.RegisterCheck("archive", func(ctx context.Context) error {
			_, err := archive.Years(ctx)
			return err
		})
	}

	srv := server.NewServer(&cfg.Server, &cfg.Telemetry.Metrics, server.Deps{
		Pipeline:  pipeline,
		Baseline:  baseline,
		Monitor:   monitor,
		Archive:   archive,
		Collector: collector,
		Checker:   checker,
		Logger:    logger,
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

// collectorOrNil avoids a typed-nil interface reaching the pipeline.
func collectorOrNil(c *metrics.Collector) oracle.MetricsRecorder {
	if c == nil {
		return nil
	}
	return c
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Indra v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")
	if cfg.Monsoon.ScanSchedule != "" {
		fmt.Printf("✓ Monsoon scan schedule: %s\n", cfg.Monsoon.ScanSchedule)
	}
}

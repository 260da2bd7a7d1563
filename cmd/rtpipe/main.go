package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rtpipe/internal/config"
	applog "rtpipe/internal/log"
	"rtpipe/internal/pipeline"
	"rtpipe/internal/rescuetime"
	"rtpipe/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", "config.yml", "path to configuration file")
		domain     = flag.String("domain", "", "process only this specific domain")
		group      = flag.String("group", "", "process only domains in this group")
		subgroup   = flag.String("subgroup", "", "process only domains in this subgroup")

		skipFetch     = flag.Bool("skip-fetch", false, "skip the data fetching phase")
		skipCombine   = flag.Bool("skip-combine", false, "skip the data combination phase")
		skipSubgroups = flag.Bool("skip-subgroups", false, "skip combining data by subgroup")
		skipGroups    = flag.Bool("skip-groups", false, "skip combining data by main group")
		skipAll       = flag.Bool("skip-all", false, "skip combining all domains together")
	)
	flag.Parse()

	// Load .env for local development (ignore errors when absent).
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	start := time.Now()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("configuration error", applog.FieldError, err, applog.FieldPath, *configPath)
		os.Exit(1)
	}
	logger.Info("pipeline configured",
		"domains", len(cfg.Domains),
		"groups", len(cfg.TopGroups()),
		"subgroups", len(cfg.Subgroups()),
		"start_date", cfg.Range().Start.String(),
		"end_date", cfg.Range().End.String())

	// The API key is only needed when fetching.
	var source rescuetime.ActivitySource
	if !*skipFetch {
		client, err := rescuetime.NewFromEnv()
		if err != nil {
			logger.Error("rescuetime client setup failed", applog.FieldError, err)
			os.Exit(1)
		}
		source = client
	}

	store := storage.NewStore(logger.WithComponent(applog.ComponentStorage))
	p := pipeline.New(cfg, source, store, logger.WithComponent(applog.ComponentPipeline))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := pipeline.Options{
		Domain:        *domain,
		Group:         *group,
		Subgroup:      *subgroup,
		SkipFetch:     *skipFetch,
		SkipCombine:   *skipCombine,
		SkipSubgroups: *skipSubgroups,
		SkipGroups:    *skipGroups,
		SkipAll:       *skipAll,
	}
	if err := p.Run(ctx, opts); err != nil {
		logger.Error("pipeline failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("pipeline complete", "elapsed", time.Since(start).Round(time.Millisecond).String())
}

// Package pipeline orchestrates the two batch phases: fetching per-domain
// activity datasets from an ActivitySource, and combining them into
// per-subgroup, per-group and all-domain aggregates.
package pipeline

import (
	"context"
	"errors"
	"time"

	"rtpipe/internal/config"
	applog "rtpipe/internal/log"
	"rtpipe/internal/rescuetime"
	"rtpipe/internal/storage"
)

// Options are the resolved CLI toggles. Skips are independent; any
// combination is legal, including skipping everything.
type Options struct {
	Domain   string
	Group    string
	Subgroup string

	SkipFetch     bool
	SkipCombine   bool
	SkipSubgroups bool
	SkipGroups    bool
	SkipAll       bool
}

type Pipeline struct {
	cfg    *config.Config
	source rescuetime.ActivitySource
	store  *storage.Store
	logger *applog.Logger

	// now stamps fetched rows; replaced in tests for stable output.
	now func() time.Time
}

var ErrNoSource = errors.New("no activity source configured")

func New(cfg *config.Config, source rescuetime.ActivitySource, store *storage.Store, logger *applog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		source: source,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Run executes the requested phases. Configuration-level problems (an
// unmatched filter, a missing source) are returned as errors; per-domain
// fetch or combine trouble is logged and the run continues best-effort.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	domains, err := SelectDomains(p.cfg, opts.Domain, opts.Group, opts.Subgroup)
	if err != nil {
		return err
	}

	if opts.SkipFetch {
		p.logger.Info("skipping fetch phase")
	} else {
		if p.source == nil {
			return ErrNoSource
		}
		fetched := p.FetchDomains(ctx, domains)
		p.logger.Info("fetch phase complete", "fetched", fetched, "domains", len(domains))
	}

	if opts.SkipCombine {
		p.logger.Info("skipping combine phase")
		return nil
	}
	p.Combine(opts)
	return nil
}

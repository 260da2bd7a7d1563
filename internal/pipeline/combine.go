package pipeline

import (
	"rtpipe/internal/config"
	"rtpipe/internal/core"
	applog "rtpipe/internal/log"
)

// Combine rebuilds the aggregate datasets from the per-domain files on
// disk. Each tier is independently skippable. Problems here are never
// fatal: a missing per-domain dataset is logged and that domain omitted.
func (p *Pipeline) Combine(opts Options) {
	p.logger.Info("starting combine phase")

	if opts.SkipSubgroups {
		p.logger.Info("skipping subgroup combination")
	} else {
		p.combineSubgroups()
	}

	switch {
	case opts.SkipGroups:
		p.logger.Info("skipping group combination")
	case !p.cfg.Settings.CombineByGroup:
		p.logger.Info("group combination disabled in settings")
	default:
		p.combineGroups()
	}

	switch {
	case opts.SkipAll:
		p.logger.Info("skipping all-domains combination")
	case !p.cfg.Settings.CombineAll:
		p.logger.Info("all-domains combination disabled in settings")
	default:
		p.combineAll()
	}
}

func (p *Pipeline) combineSubgroups() {
	for _, g := range p.cfg.Subgroups() {
		domains := p.cfg.DomainsInSubgroup(g.Name)
		if len(domains) == 0 {
			p.logger.Warn("no domains for subgroup, skipping", applog.FieldSubgroup, g.Name)
			continue
		}
		p.combineInto("subgroup", g, domains)
	}
}

func (p *Pipeline) combineGroups() {
	for _, g := range p.cfg.TopGroups() {
		// Domains matched by group cover the group's subgroups too, since
		// every subgrouped domain also names its parent group.
		domains := p.cfg.DomainsInGroup(g.Name)
		if len(domains) == 0 {
			p.logger.Warn("no domains for group, skipping", applog.FieldGroup, g.Name)
			continue
		}
		p.combineInto("group", g, domains)
	}
}

func (p *Pipeline) combineAll() {
	g, ok := p.cfg.AllGroup()
	if !ok {
		p.logger.Warn("no all group declared, skipping all-domains combination")
		return
	}
	p.combineInto("all", g, p.cfg.Domains)
}

// combineInto concatenates the per-domain datasets in config order and
// writes the aggregate, wholly replacing any previous output.
func (p *Pipeline) combineInto(tier string, g config.Group, domains []config.Domain) {
	log := p.logger.With("tier", tier, "name", g.Name)

	var combined core.Dataset
	found := 0
	for _, d := range domains {
		path := p.store.DomainPath(d)
		ds, err := p.store.ReadDataset(path)
		if err != nil {
			log.Warn("domain dataset unavailable, omitting",
				applog.FieldDomain, d.Name, applog.FieldPath, path, applog.FieldError, err)
			continue
		}
		found++
		combined = append(combined, ds...)
	}
	if found == 0 {
		log.Warn("no datasets to combine, skipping")
		return
	}

	out := g.OutputPath()
	if err := p.store.WriteDataset(out, combined); err != nil {
		log.Error("write aggregate failed", applog.FieldPath, out, applog.FieldError, err)
		return
	}
	log.Info("aggregate written",
		applog.FieldPath, out,
		applog.FieldRows, len(combined),
		"datasets", found)
	p.logSummary(log, combined)
}

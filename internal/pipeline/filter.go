package pipeline

import (
	"fmt"

	"rtpipe/internal/config"
)

// SelectDomains applies the CLI filters to the configured domain list as
// an intersection of constraints. Empty filters select everything. A
// filter that matches nothing is a configuration-level error.
func SelectDomains(cfg *config.Config, domain, group, subgroup string) ([]config.Domain, error) {
	var out []config.Domain
	for _, d := range cfg.Domains {
		if domain != "" && d.Name != domain {
			continue
		}
		if group != "" && d.Group != group {
			continue
		}
		if subgroup != "" && d.Subgroup != subgroup {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 && (domain != "" || group != "" || subgroup != "") {
		return nil, fmt.Errorf("no domains match filter (domain=%q, group=%q, subgroup=%q)", domain, group, subgroup)
	}
	return out, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rtpipe/internal/core"
)

// AllGroupName is the distinguished group aggregating every domain.
const AllGroupName = "all"

type (
	// Domain is one tracked domain and its place in the group taxonomy.
	// OutputDir is resolved at load time: the subgroup's directory when a
	// subgroup is set, the group's otherwise.
	Domain struct {
		Name      string `yaml:"name"`
		Group     string `yaml:"group"`
		Subgroup  string `yaml:"subgroup"`
		OutputDir string `yaml:"-"`
	}

	// Group is one declared taxonomy bucket. A non-empty Parent makes it a
	// subgroup of that parent group.
	Group struct {
		Name       string `yaml:"name"`
		Parent     string `yaml:"parent"`
		OutputDir  string `yaml:"output_dir"`
		OutputFile string `yaml:"output_file"`
	}

	// Settings are the pipeline toggles, with defaults applied at load.
	Settings struct {
		ChunkMonths    int
		DetailedData   bool
		CombineAll     bool
		CombineByGroup bool
	}

	// Config is the loaded, validated pipeline configuration. It is
	// read-only after Load.
	Config struct {
		Domains  []Domain
		Groups   []Group
		Settings Settings

		dateRange  core.DateRange
		groups     map[string]Group
		byGroup    map[string][]Domain
		bySubgroup map[string][]Domain
	}
)

// fileConfig mirrors the YAML document. Settings use pointers so absent
// keys can fall back to defaults instead of Go zero values.
type fileConfig struct {
	Dates struct {
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
	} `yaml:"dates"`
	Domains  []Domain `yaml:"domains"`
	Groups   []Group  `yaml:"groups"`
	Settings struct {
		ChunkMonths    *int  `yaml:"chunk_months"`
		DetailedData   *bool `yaml:"detailed_data"`
		CombineAll     *bool `yaml:"combine_all"`
		CombineByGroup *bool `yaml:"combine_by_group"`
	} `yaml:"settings"`
}

// Load reads, validates and indexes the YAML configuration at path.
// Any error here is fatal for the run: nothing downstream can proceed on
// a broken taxonomy.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		Domains: fc.Domains,
		Groups:  fc.Groups,
		Settings: Settings{
			ChunkMonths:    3,
			DetailedData:   true,
			CombineAll:     true,
			CombineByGroup: true,
		},
	}
	if fc.Settings.ChunkMonths != nil {
		cfg.Settings.ChunkMonths = *fc.Settings.ChunkMonths
	}
	if fc.Settings.DetailedData != nil {
		cfg.Settings.DetailedData = *fc.Settings.DetailedData
	}
	if fc.Settings.CombineAll != nil {
		cfg.Settings.CombineAll = *fc.Settings.CombineAll
	}
	if fc.Settings.CombineByGroup != nil {
		cfg.Settings.CombineByGroup = *fc.Settings.CombineByGroup
	}

	var errs []string

	cfg.dateRange, errs = parseDates(fc.Dates.StartDate, fc.Dates.EndDate, errs)

	if cfg.Settings.ChunkMonths < 1 {
		errs = append(errs, fmt.Sprintf("invalid chunk_months %d: must be at least 1", cfg.Settings.ChunkMonths))
	}

	errs = cfg.indexGroups(errs)
	errs = cfg.resolveDomains(errs)

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	// Synthesize the "all" group when combine_all is on and none is declared.
	if cfg.Settings.CombineAll {
		if _, ok := cfg.groups[AllGroupName]; !ok {
			all := Group{
				Name:       AllGroupName,
				OutputDir:  "rescuetime_data",
				OutputFile: "all_domains_history.parquet",
			}
			cfg.Groups = append(cfg.Groups, all)
			cfg.groups[AllGroupName] = all
		}
	}

	return cfg, nil
}

func parseDates(start, end string, errs []string) (core.DateRange, []string) {
	if start == "" || end == "" {
		return core.DateRange{}, append(errs, "missing start_date or end_date in dates section")
	}
	s, err := core.ParseDate(start)
	if err != nil {
		return core.DateRange{}, append(errs, "start_date: "+err.Error())
	}
	e, err := core.ParseDate(end)
	if err != nil {
		return core.DateRange{}, append(errs, "end_date: "+err.Error())
	}
	r := core.DateRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return core.DateRange{}, append(errs, err.Error())
	}
	return r, errs
}

func (c *Config) indexGroups(errs []string) []string {
	if len(c.Groups) == 0 {
		return append(errs, "at least one group must be declared")
	}
	c.groups = make(map[string]Group, len(c.Groups))
	for _, g := range c.Groups {
		if g.Name == "" {
			errs = append(errs, "each group must have a name")
			continue
		}
		if _, dup := c.groups[g.Name]; dup {
			errs = append(errs, fmt.Sprintf("duplicate group %q", g.Name))
			continue
		}
		if g.OutputDir == "" {
			errs = append(errs, fmt.Sprintf("group %q must have an output_dir", g.Name))
		}
		if g.OutputFile == "" {
			errs = append(errs, fmt.Sprintf("group %q must have an output_file", g.Name))
		}
		c.groups[g.Name] = g
	}
	for _, g := range c.Groups {
		if g.Parent == "" {
			continue
		}
		parent, ok := c.groups[g.Parent]
		if !ok {
			errs = append(errs, fmt.Sprintf("group %q references unknown parent group %q", g.Name, g.Parent))
			continue
		}
		if parent.Parent != "" {
			errs = append(errs, fmt.Sprintf("group %q has parent %q which is itself a subgroup", g.Name, g.Parent))
		}
	}
	return errs
}

func (c *Config) resolveDomains(errs []string) []string {
	if len(c.Domains) == 0 {
		return append(errs, "at least one domain must be declared")
	}
	c.byGroup = make(map[string][]Domain)
	c.bySubgroup = make(map[string][]Domain)
	seen := make(map[string]bool, len(c.Domains))
	for i, d := range c.Domains {
		if d.Name == "" {
			errs = append(errs, "each domain must have a name")
			continue
		}
		if seen[d.Name] {
			errs = append(errs, fmt.Sprintf("duplicate domain %q", d.Name))
			continue
		}
		seen[d.Name] = true

		group, ok := c.groups[d.Group]
		if d.Group == "" {
			errs = append(errs, fmt.Sprintf("domain %q must have a group", d.Name))
			continue
		} else if !ok {
			errs = append(errs, fmt.Sprintf("domain %q references unknown group %q", d.Name, d.Group))
			continue
		}
		c.Domains[i].OutputDir = group.OutputDir

		if d.Subgroup != "" {
			sub, ok := c.groups[d.Subgroup]
			if !ok {
				errs = append(errs, fmt.Sprintf("domain %q references unknown subgroup %q", d.Name, d.Subgroup))
				continue
			}
			if sub.Parent != d.Group {
				errs = append(errs, fmt.Sprintf("subgroup %q is not a child of group %q", d.Subgroup, d.Group))
				continue
			}
			c.Domains[i].OutputDir = sub.OutputDir
			c.bySubgroup[d.Subgroup] = append(c.bySubgroup[d.Subgroup], c.Domains[i])
		}
		c.byGroup[d.Group] = append(c.byGroup[d.Group], c.Domains[i])
	}
	return errs
}

// Range returns the configured fetch date range.
func (c *Config) Range() core.DateRange {
	return c.dateRange
}

// Group looks up a declared group or subgroup by name.
func (c *Config) Group(name string) (Group, bool) {
	g, ok := c.groups[name]
	return g, ok
}

// AllGroup returns the distinguished "all" group, if declared or synthesized.
func (c *Config) AllGroup() (Group, bool) {
	return c.Group(AllGroupName)
}

// Subgroups returns the declared subgroups in config order.
func (c *Config) Subgroups() []Group {
	var out []Group
	for _, g := range c.Groups {
		if g.IsSubgroup() {
			out = append(out, g)
		}
	}
	return out
}

// TopGroups returns the parentless groups in config order, excluding "all".
func (c *Config) TopGroups() []Group {
	var out []Group
	for _, g := range c.Groups {
		if !g.IsSubgroup() && g.Name != AllGroupName {
			out = append(out, g)
		}
	}
	return out
}

// DomainsInGroup returns the domains whose group matches, in config order.
func (c *Config) DomainsInGroup(name string) []Domain {
	return c.byGroup[name]
}

// DomainsInSubgroup returns the domains whose subgroup matches, in config order.
func (c *Config) DomainsInSubgroup(name string) []Domain {
	return c.bySubgroup[name]
}

func (g Group) IsSubgroup() bool {
	return g.Parent != ""
}

// OutputPath is the aggregate dataset location for this group or subgroup.
func (g Group) OutputPath() string {
	return filepath.Join(g.OutputDir, g.OutputFile)
}

// Base is the domain name up to the first dot, used to derive the
// per-domain dataset filename ("github.com" -> "github").
func (d Domain) Base() string {
	if i := strings.IndexByte(d.Name, '.'); i >= 0 {
		return d.Name[:i]
	}
	return d.Name
}

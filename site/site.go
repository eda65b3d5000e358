// Package site describes a static site to the host that builds it. It gathers the three things
// a host needs from a project: the configuration, the template filters, and the global data.
// Rendering, file discovery and output are left to the host.
//
// # Configuration
//
// A file "site.toml" at the project root holds settings. It is optional. When it is
// missing, the defaults are used, which read the site sources from "src":
//
//	[dir]
//	input = "src"          # site sources
//	includes = "_includes" # relative to input
//	layouts = ""           # relative to input, defaults to includes
//	data = "_data"         # relative to input
//	output = "_site"
//
//	markdownTemplateEngine = "liquid"
//	htmlTemplateEngine = "liquid"
//	templateFormats = ["md", "html"]
//
//	[data]
//	patterns = ["**/*.{json,toml,yaml,yml}"]
//	ignore = []
//
//	[cache]
//	size = 0        # bytes; 0 disables caching
//	expires = "0s"
//
// # Filters
//
// Filters are named functions the host offers to templates. Every site starts with:
//
//	date_ascending(items) []any
//		Sort items by date, earliest first
//	date_filter(items, date) []any
//		Keep items whose date is exactly date
//	date_keys(items) []string
//		Distinct dates of the items, earliest first. Only string dates
//		become keys, because date_filter compares the raw value.
//
// More filters can be given with WithFilter. There is no global registry; each Site
// owns its filters.
//
// # Global Data
//
// Files in the data folder are decoded by extension (JSON, TOML or YAML) and stored
// under their path without the extension. For example "acs_s21_orgn.json" is available
// as "acs_s21_orgn" and "talks/day1.yaml" as "talks.day1". Hidden files and folders
// (those starting with ".") are ignored.
package site

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
)

// Site ties a project's configuration, filters and data together.
type Site struct {
	root    fs.FS
	cfg     Config
	filters *Filters
	logger  *slog.Logger
}

// Option changes how a Site is built.
type Option func(*Site) error

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithFilters replaces the default filters. The set is copied.
func WithFilters(f *Filters) Option {
	return func(s *Site) error {
		if f == nil {
			return fmt.Errorf("WithFilters: %w: nil", ErrInvalidFilter)
		}
		s.filters = f.Clone()
		return nil
	}
}

// WithFilter adds one filter to the site.
func WithFilter(name string, fn any) Option {
	return func(s *Site) error {
		return s.filters.Add(name, fn)
	}
}

// New returns a Site for the project in root using cfg.
// A nil cfg means DefaultConfig.
func New(root fs.FS, cfg *Config, opts ...Option) (*Site, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	s := &Site{
		root:    cached(root, cfg.Cache),
		cfg:     *cfg,
		filters: DefaultFilters(),
		logger:  slog.Default(),
	}
	s.cfg.Dir.Input = path.Clean(s.cfg.Dir.Input)
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("New: %w", err)
		}
	}
	s.logger.Debug("site ready", "input", s.cfg.Dir.Input, "filters", s.filters.Names())
	return s, nil
}

// Open returns a Site for the project in dir, reading site.toml if present.
func Open(dir string, opts ...Option) (*Site, error) {
	root := os.DirFS(dir)
	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, fmt.Errorf("Open %q: %w", dir, err)
	}
	return New(root, cfg, opts...)
}

// Config returns a copy of the site configuration.
func (s *Site) Config() Config {
	return s.cfg
}

// Filters returns a copy of the site's filters.
func (s *Site) Filters() *Filters {
	return s.filters.Clone()
}

// FuncMap returns the filters for use with template.Funcs.
func (s *Site) FuncMap() template.FuncMap {
	return s.filters.FuncMap()
}

// Input returns the input folder as a file system.
func (s *Site) Input() (fs.FS, error) {
	fi, err := fs.Stat(s.root, s.cfg.Dir.Input)
	if err != nil {
		return nil, fmt.Errorf("Input: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("Input: %q is not a folder", s.cfg.Dir.Input)
	}
	sub, err := fs.Sub(s.root, s.cfg.Dir.Input)
	if err != nil {
		return nil, fmt.Errorf("Input: %w", err)
	}
	return sub, nil
}

// Data returns the global data. Files are read on each call, through the cache when one is configured.
func (s *Site) Data(ctx context.Context) (map[string]any, error) {
	data, err := loadData(ctx, s.root, s.cfg.DataDir(), s.cfg.Data, s.logger)
	if err != nil {
		return nil, fmt.Errorf("Data: %w", err)
	}
	return data, nil
}

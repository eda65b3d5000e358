package site

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the name of the configuration file at the project root.
const ConfigFile = "site.toml"

// ErrInvalidConfig is wrapped by errors returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Dirs holds the folders the host reads from and writes to.
// Includes, Layouts and Data are relative to Input.
type Dirs struct {
	Input    string `toml:"input"`    // Root of the site sources
	Includes string `toml:"includes"` // Partials and layouts
	Layouts  string `toml:"layouts"`  // Layouts, when kept apart from Includes
	Data     string `toml:"data"`     // Global data files
	Output   string `toml:"output"`   // Where the host writes the built site
}

// DataConfig selects the files loaded as global data.
type DataConfig struct {
	Patterns []string `toml:"patterns"` // doublestar patterns, relative to the data folder
	Ignore   []string `toml:"ignore"`   // doublestar patterns to skip
}

// CacheConfig controls caching of the input tree. A zero Size disables caching.
type CacheConfig struct {
	Size    int64    `toml:"size"`    // Cache size in bytes
	Expires Duration `toml:"expires"` // Entries are refreshed about this often; zero never expires
}

// Config contains configuration data from the site.toml file.
type Config struct {
	Dir                    Dirs        `toml:"dir"`
	MarkdownTemplateEngine string      `toml:"markdownTemplateEngine"`
	HTMLTemplateEngine     string      `toml:"htmlTemplateEngine"`
	TemplateFormats        []string    `toml:"templateFormats"`
	Data                   DataConfig  `toml:"data"`
	Cache                  CacheConfig `toml:"cache"`
}

// DefaultConfig returns the settings used when site.toml is absent.
// Only the input folder differs from the host defaults.
func DefaultConfig() *Config {
	return &Config{
		Dir: Dirs{
			Input:    "src",
			Includes: "_includes",
			Data:     "_data",
			Output:   "_site",
		},
		MarkdownTemplateEngine: "liquid",
		HTMLTemplateEngine:     "liquid",
		TemplateFormats:        []string{"md", "html"},
		Data: DataConfig{
			Patterns: []string{"**/*.{json,toml,yaml,yml}"},
		},
	}
}

// LoadConfig returns configuration from the site.toml file in fsys.
// Settings missing from the file keep their defaults.
// It is not an error if the file does not exist.
func LoadConfig(fsys fs.FS) (*Config, error) {
	cfg := DefaultConfig()
	cfgBytes, err := fs.ReadFile(fsys, ConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("Cannot read config file: %w", err)
	}
	err = toml.Unmarshal(cfgBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse config file: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LayoutsDir returns the layouts folder, which defaults to the includes folder.
func (c *Config) LayoutsDir() string {
	if c.Dir.Layouts != "" {
		return c.Dir.Layouts
	}
	return c.Dir.Includes
}

// DataDir returns the data folder as a path from the project root.
func (c *Config) DataDir() string {
	return path.Join(c.Dir.Input, c.Dir.Data)
}

// Validate checks that the folders are usable and the patterns are well formed.
func (c *Config) Validate() error {
	if c.Dir.Input == "" {
		return fmt.Errorf("%w: input folder is required", ErrInvalidConfig)
	}
	dirs := []struct{ name, dir string }{
		{"input", c.Dir.Input},
		{"includes", c.Dir.Includes},
		{"layouts", c.Dir.Layouts},
		{"data", c.Dir.Data},
		{"output", c.Dir.Output},
	}
	for _, d := range dirs {
		if d.dir == "" {
			continue
		}
		if !validDir(d.dir) {
			return fmt.Errorf("%w: %s folder %q must be a relative path inside the project", ErrInvalidConfig, d.name, d.dir)
		}
	}
	if c.Dir.Output != "" && c.Dir.Data != "" && within(path.Clean(c.Dir.Output), c.DataDir()) {
		return fmt.Errorf("%w: output folder %q is inside the data folder", ErrInvalidConfig, c.Dir.Output)
	}
	for _, p := range append(append([]string{}, c.Data.Patterns...), c.Data.Ignore...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: bad data pattern %q", ErrInvalidConfig, p)
		}
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("%w: cache size must not be negative", ErrInvalidConfig)
	}
	if c.Cache.Expires < 0 {
		return fmt.Errorf("%w: cache expiry must not be negative", ErrInvalidConfig)
	}
	return nil
}

// validDir reports whether dir stays inside the project.
func validDir(dir string) bool {
	dir = strings.TrimPrefix(path.Clean(dir), "./")
	return fs.ValidPath(dir)
}

// within reports whether name is dir or below it.
func within(name, dir string) bool {
	dir = path.Clean(dir)
	return name == dir || strings.HasPrefix(name, dir+"/")
}

package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrDataConflict is returned when two data files claim the same key.
var ErrDataConflict = errors.New("data key conflict")

// decoders maps data file extensions to their decoders.
var decoders = map[string]func([]byte, any) error{
	".json": json.Unmarshal,
	".toml": toml.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
}

// loadData reads the global data files below dir in fsys.
// A missing dir yields an empty map.
func loadData(ctx context.Context, fsys fs.FS, dir string, cfg DataConfig, logger *slog.Logger) (map[string]any, error) {
	data := make(map[string]any)
	folders := make(map[string]bool)
	fi, err := fs.Stat(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.IsDir()) {
		logger.Debug("no data folder", "dir", dir)
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loadData: %w", err)
	}
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("loadData: %w", err)
	}
	err = fs.WalkDir(sub, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if containsHiddenPart(name) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ok, err := selected(name, cfg)
		if err != nil {
			return err
		}
		if !ok {
			logger.Debug("skipping data file", "file", path.Join(dir, name))
			return nil
		}
		decode, ok := decoders[strings.ToLower(path.Ext(name))]
		if !ok {
			logger.Warn("no decoder for data file", "file", path.Join(dir, name))
			return nil
		}
		b, err := fs.ReadFile(sub, name)
		if err != nil {
			return err
		}
		var v any
		if err := decode(b, &v); err != nil {
			return fmt.Errorf("%s: %w", path.Join(dir, name), err)
		}
		if err := store(data, folders, dataKeys(name), v); err != nil {
			return fmt.Errorf("%s: %w", path.Join(dir, name), err)
		}
		logger.Debug("loaded data file", "file", path.Join(dir, name))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loadData: %w", err)
	}
	return data, nil
}

// selected reports whether name matches a pattern and no ignore pattern.
func selected(name string, cfg DataConfig) (bool, error) {
	match := func(patterns []string) (bool, error) {
		for _, p := range patterns {
			ok, err := doublestar.Match(p, name)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	ok, err := match(cfg.Patterns)
	if err != nil || !ok {
		return false, err
	}
	ignored, err := match(cfg.Ignore)
	return !ignored, err
}

// store places v in data under the nested keys. folders records the key
// paths that were created for folders, so file contents are never merged into.
func store(data map[string]any, folders map[string]bool, keys []string, v any) error {
	m := data
	for i, k := range keys[:len(keys)-1] {
		p := strings.Join(keys[:i+1], "/")
		child, ok := m[k]
		if !ok {
			next := make(map[string]any)
			m[k] = next
			folders[p] = true
			m = next
			continue
		}
		if !folders[p] {
			return fmt.Errorf("%w: %q", ErrDataConflict, strings.Join(keys, "."))
		}
		m = child.(map[string]any)
	}
	if _, ok := m[keys[len(keys)-1]]; ok {
		return fmt.Errorf("%w: %q", ErrDataConflict, strings.Join(keys, "."))
	}
	m[keys[len(keys)-1]] = v
	return nil
}

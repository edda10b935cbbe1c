package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "arttrace.toml"

type manifest struct {
	Path   string
	Root   string
	Config manifestConfig
	meta   toml.MetaData
}

type manifestConfig struct {
	Sort        sortConfig        `toml:"sort"`
	Output      outputConfig      `toml:"output"`
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Cache       cacheConfig       `toml:"cache"`
}

type sortConfig struct {
	Field string `toml:"field"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type diagnosticsConfig struct {
	Max    int  `toml:"max"`
	Strict bool `toml:"strict"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// defines reports whether the manifest sets the given key.
func (m *manifest) defines(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest reads an explicit path, or searches upwards from startDir
// when path is empty. A missing manifest is not an error.
func loadManifest(path, startDir string) (*manifest, error) {
	if path == "" {
		found, ok, err := findManifest(startDir)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}

	var cfg manifestConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max <= 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must be positive", path)
	}
	return &manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

// resolveRelative anchors a manifest-relative path at the manifest root.
func resolveRelative(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

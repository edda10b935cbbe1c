package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"arttrace/internal/diagfmt"
	"arttrace/internal/driver"
	"arttrace/internal/fact"
	"arttrace/internal/factfmt"
)

const (
	defaultMaxDiagnostics = 100
	cacheAppName          = "arttrace"
)

// settings are the effective options of a run: built-in defaults, then
// the manifest, then flags given on the command line.
type settings struct {
	colorMode  string
	quiet      bool
	timings    bool
	maxDiag    int
	strict     bool
	jobs       int
	useCache   bool
	cacheDir   string
	format     factfmt.Format
	diagFormat string
	pathMode   diagfmt.PathMode
	field      fact.TimeField
	ui         uiMode

	manifest *manifest
}

func resolveSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	s := &settings{
		colorMode:  "auto",
		maxDiag:    defaultMaxDiagnostics,
		format:     factfmt.FormatPretty,
		diagFormat: "pretty",
		field:      fact.TimeReceive,
	}

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	m, err := loadManifest(configPath, ".")
	if err != nil {
		return nil, err
	}
	s.manifest = m
	if err := s.applyManifest(m); err != nil {
		return nil, err
	}
	if err := s.applyFlags(cmd); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *settings) applyManifest(m *manifest) error {
	if m == nil {
		return nil
	}
	cfg := m.Config
	if m.defines("sort", "field") {
		field, err := fact.ParseTimeField(cfg.Sort.Field)
		if err != nil {
			return fmt.Errorf("%s: [sort].field: %w", m.Path, err)
		}
		s.field = field
	}
	if m.defines("output", "format") {
		format, err := factfmt.ParseFormat(cfg.Output.Format)
		if err != nil {
			return fmt.Errorf("%s: [output].format: %w", m.Path, err)
		}
		s.format = format
	}
	if m.defines("output", "color") {
		mode, err := readColorMode(cfg.Output.Color)
		if err != nil {
			return fmt.Errorf("%s: [output].color: %w", m.Path, err)
		}
		s.colorMode = mode
	}
	if m.defines("diagnostics", "max") {
		s.maxDiag = cfg.Diagnostics.Max
	}
	if m.defines("diagnostics", "strict") {
		s.strict = cfg.Diagnostics.Strict
	}
	if m.defines("cache", "enabled") {
		s.useCache = cfg.Cache.Enabled
	}
	if m.defines("cache", "dir") {
		s.cacheDir = resolveRelative(m.Root, cfg.Cache.Dir)
	}
	return nil
}

func (s *settings) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("color") {
		raw, _ := flags.GetString("color")
		if s.colorMode, err = readColorMode(raw); err != nil {
			return err
		}
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if flags.Changed("max-diagnostics") {
		if s.maxDiag, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("strict") {
		if s.strict, err = flags.GetBool("strict"); err != nil {
			return fmt.Errorf("failed to get strict flag: %w", err)
		}
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if flags.Changed("cache") {
		if s.useCache, err = flags.GetBool("cache"); err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if flags.Changed("format") {
		raw, _ := flags.GetString("format")
		if s.format, err = factfmt.ParseFormat(raw); err != nil {
			return err
		}
	}

	raw, err := flags.GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch strings.ToLower(raw) {
	case "pretty", "json":
		s.diagFormat = strings.ToLower(raw)
	default:
		return fmt.Errorf("invalid --diag-format value %q (expected pretty|json)", raw)
	}

	raw, err = flags.GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(raw)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", raw)
	}
	s.pathMode = mode

	raw, err = flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(raw); err != nil {
		return err
	}

	if flags.Changed("by") {
		raw, _ := flags.GetString("by")
		if s.field, err = fact.ParseTimeField(raw); err != nil {
			return err
		}
	}
	return nil
}

func readColorMode(value string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", "auto":
		return "auto", nil
	case "on", "off":
		return v, nil
	default:
		return "", fmt.Errorf("invalid color value %q (expected auto|on|off)", value)
	}
}

func (s *settings) useColor(w io.Writer) bool {
	switch s.colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(w)
	}
}

// driverOptions opens the parse cache when enabled.
func (s *settings) driverOptions() (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: s.maxDiag,
		Strict:         s.strict,
		Jobs:           s.jobs,
		Field:          s.field,
	}
	if !s.useCache {
		return opts, nil
	}
	var (
		cache *driver.FactCache
		err   error
	)
	if s.cacheDir != "" {
		cache, err = driver.OpenFactCacheAt(s.cacheDir)
	} else {
		cache, err = driver.OpenFactCache(cacheAppName)
	}
	if err != nil {
		return opts, fmt.Errorf("open cache: %w", err)
	}
	opts.Cache = cache
	return opts, nil
}

package factfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encode writes v in a structured format. Pretty falls back to indented JSON.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatPretty, FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %v", format)
	}
}

// WriteFiles renders parse results. A single file is written as an object,
// several as a list.
func WriteFiles(w io.Writer, files []FileRecord, opts Options) error {
	if opts.Format == FormatPretty {
		return writeFilesPretty(w, files, opts.Color)
	}
	if len(files) == 1 {
		return Encode(w, files[0], opts.Format)
	}
	return Encode(w, files, opts.Format)
}

// WriteSorted renders one materialized sort. Pretty output is the plain
// line sequence.
func WriteSorted(w io.Writer, path string, records []SortedRecord, opts Options) error {
	if opts.Format == FormatPretty {
		for _, rec := range records {
			if _, err := fmt.Fprintln(w, rec.Text); err != nil {
				return err
			}
		}
		return nil
	}
	return Encode(w, FileRecord{Path: path, Lines: len(records), Facts: []FactRecord{}, Sorted: records}, opts.Format)
}

// WriteConfig renders a trace configuration. Pretty and JSON both print
// the decoded values as JSON; nil prints "null".
func WriteConfig(w io.Writer, cfg *ConfigRecord, opts Options) error {
	if cfg == nil {
		return Encode(w, nil, opts.Format)
	}
	if opts.Format == FormatPretty || opts.Format == FormatJSON {
		return Encode(w, cfg.Values, FormatJSON)
	}
	return Encode(w, cfg, opts.Format)
}

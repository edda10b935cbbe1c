// Package factfmt renders parsed facts, trace configurations and sorted
// line sequences in the output formats of the command line tool.
package factfmt

import (
	"fmt"
	"strings"
)

type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatYAML
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag or manifest value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty", "text":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return FormatPretty, fmt.Errorf("unknown format %q (expected: pretty|json|yaml|msgpack)", s)
	}
}

// Binary reports whether the format writes non-text output.
func (f Format) Binary() bool { return f == FormatMsgpack }

// Options control rendering.
type Options struct {
	Format Format
	// Color enables ANSI colors in pretty output.
	Color bool
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"arttrace/internal/factfmt"
	"arttrace/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool" yaml:"tool" msgpack:"tool"`
	Version   string `json:"version" yaml:"version" msgpack:"version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty" msgpack:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty" msgpack:"build_date,omitempty"`
}

func newVersionCmd(a *app) *cobra.Command {
	var showFull bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show arttrace build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			format, err := factfmt.ParseFormat(raw)
			if err != nil {
				return err
			}
			if format == factfmt.FormatPretty {
				renderVersionPretty(a.stdout, showFull)
				return nil
			}
			return factfmt.Encode(a.stdout, collectVersion(showFull), format)
		},
	}
	cmd.Flags().BoolVar(&showFull, "full", false, "include commit and build date")
	return cmd
}

func collectVersion(full bool) versionPayload {
	payload := versionPayload{Tool: "arttrace", Version: version.Number}
	if full {
		payload.GitCommit = valueOrUnknown(strings.TrimSpace(version.GitCommit))
		payload.BuildDate = valueOrUnknown(strings.TrimSpace(version.BuildDate))
	}
	return payload
}

func renderVersionPretty(out io.Writer, full bool) {
	if full {
		fmt.Fprintln(out, version.String())
		return
	}
	fmt.Fprintf(out, "arttrace %s\n", version.Version)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

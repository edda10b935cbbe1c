package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arttrace/internal/diagfmt"
	"arttrace/internal/driver"
	"arttrace/internal/factfmt"
	"arttrace/internal/token"
)

func newTokenizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [flags] file.trace",
		Short: "Print the tokens of every line of a trace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokenize(cmd, args[0])
		},
	}
}

func (a *app) runTokenize(cmd *cobra.Command, path string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(path, s.maxDiag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := emitDiagnostics(a.stderr, s, result.Bag, result.FileSet); err != nil {
		return err
	}

	var toks []token.Token
	for _, line := range result.Lines {
		toks = append(toks, line.Tokens...)
	}
	switch s.format {
	case factfmt.FormatPretty:
		return diagfmt.FormatTokensPretty(a.stdout, toks)
	case factfmt.FormatJSON:
		return diagfmt.FormatTokensJSON(a.stdout, toks)
	default:
		return fmt.Errorf("tokenize supports pretty and json output, not %s", s.format)
	}
}

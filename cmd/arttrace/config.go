package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arttrace/internal/driver"
	"arttrace/internal/factfmt"
	"arttrace/internal/source"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [flags] file.trace",
		Short: "Print the trace configuration embedded in a trace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfig(cmd, args[0])
		},
	}
}

func (a *app) runConfig(cmd *cobra.Command, path string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	res, err := driver.ParseFile(cmd.Context(), fileSet, path, opts)
	if diagErr := emitDiagnostics(a.stderr, s, res.Bag, fileSet); diagErr != nil {
		return diagErr
	}
	if err != nil {
		return err
	}
	if res.Config == nil {
		return fmt.Errorf("%s: no trace configuration found", path)
	}
	return factfmt.WriteConfig(a.stdout, factfmt.FromConfig(res.Config), factfmt.Options{Format: s.format})
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the parse cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			s.useCache = true
			opts, err := s.driverOptions()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, opts.Cache.Dir())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove every cached parse result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			s.useCache = true
			opts, err := s.driverOptions()
			if err != nil {
				return err
			}
			if err := opts.Cache.DropAll(); err != nil {
				return fmt.Errorf("clean cache: %w", err)
			}
			if !s.quiet {
				fmt.Fprintf(a.stdout, "removed cached facts under %s\n", opts.Cache.Dir())
			}
			return nil
		},
	})
	return cmd
}

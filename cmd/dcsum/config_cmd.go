package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the dcsum configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "; %s\n", a.cfg.Path())
			_, err := a.cfg.WriteTo(a.stdout)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set key:value...",
		Short: "Set configuration values and save the file",
		Long: `Set one or more configuration values. Keys: default, hash_buffer, depth,
follow_symlinks, ignore, jobs, format, color, level, debug.`,
		Example: "  dcsum config set default:sha2-256 jobs:4 ignore:.git,node_modules",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ApplyOverrides(args); err != nil {
				return err
			}
			if err := a.cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Saved %s\n", a.cfg.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, a.cfg.Path())
			return nil
		},
	})

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/switchyard/internal/cli"
)

func newCleanCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the generated file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := opts.diagnostics()

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return opts.fail(d, err)
			}

			removed, err := cli.NewCleaner(cfg).CleanGeneratedFiles()
			if err != nil {
				return opts.fail(d, err)
			}
			if removed {
				d.Success("removed %s", cfg.Output)
			} else {
				d.Info("%s does not exist", cfg.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "generated file (default \"routes_gen.go\")")
	return cmd
}

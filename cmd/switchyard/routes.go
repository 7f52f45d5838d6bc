package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/switchyard/internal/cli"
)

func newRoutesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the discovered routing table without generating code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := opts.diagnostics()

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return opts.fail(d, err)
			}

			discovery, err := cli.NewGenerator(cfg, d).Discover()
			if err != nil {
				return opts.fail(d, err)
			}
			if discovery.Skipped {
				return nil
			}
			return cli.PrintRoutes(cmd.OutOrStdout(), discovery.Routes)
		},
	}

	addConfigFlags(cmd.Flags())
	return cmd
}

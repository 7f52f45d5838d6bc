package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toyz/switchyard/internal/cli"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the routing table",
		Long: `Scan the guards and routes directories and write the generated routing
table. The file is only rewritten when its content changes.

With --check nothing is written; the command fails when the file on disk
is missing or out of date.`,
		Example: `  switchyard generate
  switchyard generate --routes-dir api/routes --output api/routes_gen.go
  switchyard generate --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := opts.diagnostics()

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return opts.fail(d, err)
			}

			d.Header("generating routes")
			if cfg.ConfigFile != "" {
				d.Verbose("using config %s", cfg.ConfigFile)
			}

			gen := cli.NewGenerator(cfg, d)
			if err := gen.Generate(check); err != nil {
				return opts.fail(d, err)
			}

			summary := gen.GetSummary()
			if summary.Skipped {
				return nil
			}
			d.Indent()
			d.List("%d guards registered", summary.GuardsRegistered)
			d.List("%d routes found", summary.RoutesFound)
			if summary.UnresolvedGuards > 0 {
				d.List("%d guard references skipped", summary.UnresolvedGuards)
			}
			d.Unindent()
			d.Verbose("finished in %s", summary.Duration)

			name := filepath.Base(summary.Output)
			switch {
			case check:
				d.Success("%s is up to date", name)
			case summary.Written:
				d.GenerationComplete("wrote " + name)
			default:
				d.GenerationComplete(name + " unchanged")
			}
			return nil
		},
	}

	addConfigFlags(cmd.Flags())
	cmd.Flags().BoolVar(&check, "check", false, "fail instead of writing when the generated file is stale")
	return cmd
}

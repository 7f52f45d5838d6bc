package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toyz/switchyard/internal/cli"
	"github.com/toyz/switchyard/internal/utils"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configFile string
	envFile    string
	verbose    bool
	quiet      bool
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &globalOptions{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "switchyard",
		Short: "Route discovery and code generation for annotated Go handlers",
		Long: `switchyard scans a routes directory for handlers annotated with
//switchyard::get, post, put, patch or delete, resolves the guards they
reference against the functions registered with //switchyard::register_guard
under a guards directory, and generates one Go file that builds the
routing table.

Configuration is read from switchyard.yaml, a .env file, SWITCHYARD_*
environment variables and flags, in increasing precedence.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate("switchyard {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default: ./switchyard.yaml when present)")
	flags.StringVar(&opts.envFile, "env-file", "", "env file to load (default: ./.env when present)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only show errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(
		newGenerateCmd(opts),
		newRoutesCmd(opts),
		newCleanCmd(opts),
	)
	return root
}

// diagnostics builds the console reporter selected by --verbose and --quiet
func (o *globalOptions) diagnostics() *utils.DiagnosticSystem {
	var d *utils.DiagnosticSystem
	switch {
	case o.quiet:
		d = utils.NewQuietDiagnostics()
	case o.verbose:
		d = utils.NewVerboseDiagnostics()
	default:
		d = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if o.out != os.Stdout || o.errOut != os.Stderr {
		d.SetOutput(o.out, o.errOut)
	}
	return d
}

// loadConfig merges configuration with the flags of cmd
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*cli.Config, error) {
	return cli.LoadConfig(cli.LoadOptions{
		ConfigFile: o.configFile,
		EnvFile:    o.envFile,
		Flags:      cmd.Flags(),
	})
}

// reportedError marks an error already printed with its hints
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// fail reports err and hands it back for cobra to turn into an exit code
func (o *globalOptions) fail(d *utils.DiagnosticSystem, err error) error {
	cli.NewDiagnosticReporter(d).ReportError(err)
	return reportedError{err: err}
}

// addConfigFlags registers one flag per configuration key. Unset flags never
// override the config file or environment.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("routes-dir", "", "routes root directory (default \"routes\")")
	flags.String("guards-dir", "", "guards root directory (default \"guards\")")
	flags.StringP("output", "o", "", "generated file (default \"routes_gen.go\")")
	flags.String("package", "", "package clause of the generated file (default \"main\")")
	flags.String("func-name", "", "name of the generated constructor (default \"RegisterRoutes\")")
	flags.String("module", "", "module path used for imports (default: read from go.mod)")
	flags.String("runtime-import", "", "import path of the switchyard runtime")
	flags.String("state-type", "", "type of the state passed to stateful guards (default \"any\")")
	flags.String("state-import", "", "import path of the package declaring the state type")
	flags.StringSlice("index-files", nil, "per-directory files never scanned (default [doc.go])")
	flags.Bool("strict-guards", false, "fail when a guard reference does not resolve")
	flags.Bool("allow-guard-shadowing", false, "let later guards replace earlier ones with the same name")
}

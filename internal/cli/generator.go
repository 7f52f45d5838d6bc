package cli

import (
	stderrors "errors"
	"path/filepath"
	"time"

	"github.com/toyz/switchyard/internal/collector"
	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/generator"
	"github.com/toyz/switchyard/internal/models"
	"github.com/toyz/switchyard/internal/parser"
	"github.com/toyz/switchyard/internal/registry"
	"github.com/toyz/switchyard/internal/utils"
)

// GenerationSummary describes the outcome of a run
type GenerationSummary struct {
	GuardsRegistered int
	RoutesFound      int
	UnresolvedGuards int
	Output           string
	Written          bool // false when the file was already up to date or generation was skipped
	Skipped          bool // true when the routes directory does not exist
	Duration         time.Duration
}

// Discovery is the output of the scan phase
type Discovery struct {
	Guards     *registry.GuardRegistry
	Routes     []models.DiscoveredRoute
	Unresolved []models.UnresolvedGuard
	Skipped    bool
}

// Generator coordinates the CLI generation process
type Generator struct {
	config         *Config
	diagnostics    *utils.DiagnosticSystem
	moduleResolver *ModuleResolver
	parser         *parser.Parser
	summary        GenerationSummary
}

// NewGenerator creates a generator for cfg reporting through diagnostics
func NewGenerator(cfg *Config, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Generator{
		config:         cfg,
		diagnostics:    diagnostics,
		moduleResolver: NewModuleResolver(cfg.Module),
		parser:         parser.NewParser(),
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Discover builds the guard registry, then collects routes against it
func (g *Generator) Discover() (*Discovery, error) {
	guards, err := g.buildGuards()
	if err != nil {
		return nil, err
	}

	if !utils.DirExists(g.config.RoutesDir) {
		g.diagnostics.Warn("routes directory %s does not exist, nothing to generate", g.config.RoutesDir)
		return &Discovery{Guards: guards, Skipped: true}, nil
	}

	g.diagnostics.PhaseItem("Collecting routes from %s", g.config.RoutesDir)
	c := collector.New(guards,
		collector.WithStrictGuards(g.config.StrictGuards),
		collector.WithIndexFiles(g.config.IndexFiles),
		collector.WithExcludeFile(g.config.Output),
		collector.WithLogger(g.diagnostics),
		collector.WithParser(g.parser),
	)
	result, err := c.Discover(g.config.RoutesDir)
	if err != nil {
		return nil, err
	}

	return &Discovery{Guards: guards, Routes: result.Routes, Unresolved: result.Unresolved}, nil
}

func (g *Generator) buildGuards() (*registry.GuardRegistry, error) {
	if g.config.GuardsDir == "" {
		return registry.New(), nil
	}

	g.diagnostics.PhaseItem("Registering guards from %s", g.config.GuardsDir)
	guards, err := registry.Build(g.config.GuardsDir,
		registry.WithShadowing(g.config.AllowGuardShadowing),
		registry.WithIndexFiles(g.config.IndexFiles),
		registry.WithExcludeFile(g.config.Output),
		registry.WithLogger(g.diagnostics),
		registry.WithParser(g.parser),
	)
	if stderrors.Is(err, errors.ErrMissingDirectory) {
		g.diagnostics.Warn("guards directory %s does not exist, continuing without guards", g.config.GuardsDir)
		return registry.New(), nil
	}
	return guards, err
}

// Render produces the generated source for a discovery
func (g *Generator) Render(d *Discovery) ([]byte, error) {
	opts, err := g.generatorOptions(d)
	if err != nil {
		return nil, err
	}

	src, err := generator.New(opts).Render(d.Routes)
	if err != nil {
		return nil, err
	}
	return []byte(src), nil
}

func (g *Generator) generatorOptions(d *Discovery) (generator.Options, error) {
	opts := generator.Options{
		Package:       g.config.Package,
		FuncName:      g.config.FuncName,
		StateType:     g.config.StateType,
		StateImport:   g.config.StateImport,
		RuntimeImport: g.config.RuntimeImport,
		Filename:      filepath.Base(g.config.Output),
	}

	var err error
	if opts.SelfImport, err = g.moduleResolver.ImportPath(filepath.Dir(g.config.Output)); err != nil {
		return opts, err
	}
	if len(d.Routes) > 0 {
		if opts.RoutesImport, err = g.moduleResolver.ImportPath(g.config.RoutesDir); err != nil {
			return opts, err
		}
	}
	if d.Guards != nil && d.Guards.Len() > 0 {
		if opts.GuardsImport, err = g.moduleResolver.ImportPath(g.config.GuardsDir); err != nil {
			return opts, err
		}
	}

	g.diagnostics.Debug("routes import %q, guards import %q, self import %q", opts.RoutesImport, opts.GuardsImport, opts.SelfImport)
	return opts, nil
}

// Generate runs discovery and rendering, then writes the output file. With
// check set nothing is written and a stale file fails with errors.ErrStaleOutput.
func (g *Generator) Generate(check bool) error {
	start := time.Now()
	g.summary = GenerationSummary{Output: g.config.Output}
	defer func() { g.summary.Duration = time.Since(start) }()

	d, err := g.Discover()
	if err != nil {
		return err
	}
	g.summary.GuardsRegistered = d.Guards.Len()
	g.summary.RoutesFound = len(d.Routes)
	g.summary.UnresolvedGuards = len(d.Unresolved)
	if d.Skipped {
		g.summary.Skipped = true
		return nil
	}

	src, err := g.Render(d)
	if err != nil {
		return err
	}

	if check {
		changed, err := utils.FileChanged(g.config.Output, src)
		if err != nil {
			return errors.WrapFileSystemError("read", g.config.Output, err)
		}
		if changed {
			return errors.Newf(errors.GenerationErrorCode, "%s is out of date", g.config.Output).
				WithKind(errors.ErrStaleOutput).
				WithSuggestion("Run switchyard generate and commit the result")
		}
		return nil
	}

	if err := ensureGenerated(g.config.Output); err != nil {
		return err
	}

	written, err := utils.WriteIfChanged(g.config.Output, src)
	if err != nil {
		return errors.WrapFileSystemError("write", g.config.Output, err)
	}
	g.summary.Written = written
	if written {
		g.diagnostics.Verbose("wrote %s", g.config.Output)
	} else {
		g.diagnostics.Verbose("%s is up to date", g.config.Output)
	}
	return nil
}

// Package collector discovers annotated route handlers under a routes
// directory and resolves their guard chains against a guard registry.
package collector

import (
	"go/ast"

	"github.com/toyz/switchyard/internal/annotations"
	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/models"
	"github.com/toyz/switchyard/internal/modpath"
	"github.com/toyz/switchyard/internal/parser"
	"github.com/toyz/switchyard/internal/registry"
	"github.com/toyz/switchyard/internal/utils"
)

// Result is the outcome of one discovery pass
type Result struct {
	Routes     []models.DiscoveredRoute
	Unresolved []models.UnresolvedGuard
}

// Collector walks a routes directory
type Collector struct {
	guards registry.GuardLookup
	opts   *options
}

// New creates a collector resolving guard references against guards.
// A nil lookup behaves as an empty registry.
func New(guards registry.GuardLookup, opts ...Option) *Collector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.parser == nil {
		o.parser = parser.NewParser()
	}
	if guards == nil {
		guards = registry.New()
	}
	return &Collector{guards: guards, opts: o}
}

// Discover returns the routes declared under root, in lexicographic file
// order and declaration order within a file. A missing root yields no routes.
func (c *Collector) Discover(root string) (*Result, error) {
	result := &Result{}

	if !utils.DirExists(root) {
		c.opts.logger.Verbose("routes directory %s does not exist", root)
		return result, nil
	}

	files, err := utils.WalkSources(root, utils.WalkOptions{
		IndexFiles:  c.opts.indexFiles,
		ExcludeFile: c.opts.excludeFile,
		Logger:      c.opts.logger,
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", root, err)
	}

	violations := errors.NewMultipleErrors()
	for _, src := range files {
		c.opts.logger.Debug("scanning routes in %s", src.Rel)
		if err := c.collectFile(root, src, result, violations); err != nil {
			return nil, err
		}
	}

	if err := violations.ErrorOrNil(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Collector) collectFile(root string, src utils.SourceFile, result *Result, violations *errors.MultipleErrors) error {
	p := c.opts.parser

	file, err := p.ParseFile(src.Path)
	if err != nil {
		return err
	}

	for _, method := range parser.Methods(file) {
		anns, err := p.Extractor().Annotations(method)
		if err != nil {
			return err
		}
		if len(anns) > 0 {
			violations.Add(p.Reporter().AnnotatedMethodError(errors.ErrInvalidHandler, method.Name.Name, &anns[0]))
		}
	}

	for _, decl := range parser.Functions(file) {
		route, ok, err := c.collectDecl(root, src, decl, result, violations)
		if err != nil {
			return err
		}
		if ok {
			c.opts.logger.Verbose("discovered %s %s -> %s", route.Method, route.Path, route.ModulePath)
			result.Routes = append(result.Routes, route)
		}
	}
	return nil
}

func (c *Collector) collectDecl(root string, src utils.SourceFile, decl *ast.FuncDecl, result *Result, violations *errors.MultipleErrors) (models.DiscoveredRoute, bool, error) {
	p := c.opts.parser
	name := decl.Name.Name

	anns, err := p.Extractor().Annotations(decl)
	if err != nil {
		return models.DiscoveredRoute{}, false, err
	}

	var verbs, guardAnns []*annotations.Annotation
	for i := range anns {
		switch {
		case anns[i].IsVerb():
			verbs = append(verbs, &anns[i])
		case anns[i].Name == annotations.Guards:
			guardAnns = append(guardAnns, &anns[i])
		}
	}

	if len(verbs) == 0 {
		if len(guardAnns) > 0 {
			c.opts.logger.Warn("%s: '%s' has a guards annotation but no verb annotation; ignoring it", guardAnns[0].Location, name)
		}
		return models.DiscoveredRoute{}, false, nil
	}

	if len(verbs) > 1 {
		violations.Add(p.Reporter().DuplicateVerbError(name, verbs[0], verbs[1]))
		return models.DiscoveredRoute{}, false, nil
	}
	verb := verbs[0]

	if err := p.ValidateHandler(decl, verb); err != nil {
		violations.Add(err.(errors.SwitchyardError))
		return models.DiscoveredRoute{}, false, nil
	}

	path, err := verb.Path()
	if err != nil {
		violations.Add(err.(errors.SwitchyardError))
		return models.DiscoveredRoute{}, false, nil
	}

	mp, err := modpath.Construct(src.Path, root, modpath.RoutesNamespace, name)
	if err != nil {
		return models.DiscoveredRoute{}, false, err
	}

	route := models.DiscoveredRoute{
		Method:     verb.Method(),
		Path:       path,
		Handler:    name,
		ModulePath: mp,
		Guards:     []models.GuardRef{},
		Location:   p.Location(decl.Pos()),
	}

	if len(guardAnns) == 0 {
		return route, true, nil
	}
	for _, extra := range guardAnns[1:] {
		c.opts.logger.Warn("%s: only the first guards annotation on '%s' is used", extra.Location, name)
	}

	refs, err := guardAnns[0].GuardRefs()
	if err != nil {
		return models.DiscoveredRoute{}, false, err
	}

	for _, ref := range refs {
		guard, ok := c.guards.Get(ref.Name)
		if !ok {
			resErr := errors.NewResolutionError(guardAnns[0].Location, ref.Name, mp.String(), c.guards.Names())
			if c.opts.strict {
				violations.Add(resErr)
				continue
			}
			c.opts.logger.Warn("%s; dropping it from the chain", resErr.Error())
			result.Unresolved = append(result.Unresolved, models.UnresolvedGuard{
				Route:    mp.String(),
				Name:     ref.Name,
				Location: guardAnns[0].Location,
			})
			continue
		}
		route.Guards = append(route.Guards, models.GuardRef{Guard: guard, Args: ref.Args})
	}

	return route, true, nil
}

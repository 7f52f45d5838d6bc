// Package generator renders discovered routes into the Go source of a
// routing table constructor.
package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/models"
	"github.com/toyz/switchyard/internal/modpath"
	"github.com/toyz/switchyard/internal/templates"
	"github.com/toyz/switchyard/internal/utils"
)

const (
	DefaultPackage       = "main"
	DefaultFuncName      = "RegisterRoutes"
	DefaultStateType     = "any"
	DefaultRuntimeImport = "github.com/toyz/switchyard/pkg/switchyard"
	DefaultOutputFile    = "routes_gen.go"

	runtimeAlias = "switchyard"
)

// Options controls the shape of the generated file
type Options struct {
	Package       string // package clause of the generated file
	FuncName      string // name of the generated constructor
	StateType     string // type of the constructor's state parameter
	StateImport   string // import path providing StateType's package, if any
	RuntimeImport string // import path of the switchyard runtime
	RoutesImport  string // import path of the routes root directory
	GuardsImport  string // import path of the guards root directory
	SelfImport    string // import path of the generated file's own package
	Filename      string // file name used in formatting diagnostics
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.FuncName == "" {
		o.FuncName = DefaultFuncName
	}
	if o.StateType == "" {
		o.StateType = DefaultStateType
	}
	if o.RuntimeImport == "" {
		o.RuntimeImport = DefaultRuntimeImport
	}
	if o.Filename == "" {
		o.Filename = DefaultOutputFile
	}
	return o
}

// Generator renders route tables. It performs no I/O.
type Generator struct {
	opts      Options
	templates *templates.TemplateRegistry
}

// New creates a generator with opts, filling unset fields with defaults
func New(opts Options) *Generator {
	return &Generator{
		opts:      opts.withDefaults(),
		templates: templates.NewTemplateRegistry(),
	}
}

// Options returns the effective options
func (g *Generator) Options() Options {
	return g.opts
}

// Render returns the formatted source of the generated file. Identical
// inputs always produce byte-identical output.
func (g *Generator) Render(routes []models.DiscoveredRoute) (string, error) {
	im := templates.NewImportManager()
	runtime := im.AddPackageImport(runtimeAlias, g.opts.RuntimeImport)

	if len(routes) > 0 {
		im.AddImport("net/http")
	}

	stateType, err := g.stateType(im)
	if err != nil {
		return "", err
	}

	data := templates.FileData{
		Package:   g.opts.Package,
		FuncName:  g.opts.FuncName,
		StateType: stateType,
		Runtime:   runtime,
		Routes:    make([]templates.RouteData, 0, len(routes)),
	}

	for _, route := range routes {
		rd, err := g.routeData(im, runtime, route)
		if err != nil {
			return "", err
		}
		data.Routes = append(data.Routes, rd)
	}
	data.Imports = im.GenerateImports()

	src, err := g.templates.Execute(templates.FileTemplate, data)
	if err != nil {
		return "", errors.WrapGenerateError("routes file", err)
	}

	formatted, err := utils.FormatGoSource(g.opts.Filename, []byte(src))
	if err != nil {
		return "", errors.WrapGenerateError("routes file", err)
	}
	return string(formatted), nil
}

func (g *Generator) routeData(im *templates.ImportManager, runtime string, route models.DiscoveredRoute) (templates.RouteData, error) {
	method := route.Method.Constant()
	if method == "" {
		return templates.RouteData{}, errors.Newf(errors.GenerationErrorCode, "unsupported HTTP method %q", route.Method).
			WithLocation(route.Location)
	}

	handler, err := g.reference(im, g.opts.RoutesImport, route.ModulePath)
	if err != nil {
		return templates.RouteData{}, err.WithLocation(route.Location)
	}

	var inline, layers []string
	for _, ref := range route.Guards {
		expr, err := g.reference(im, g.opts.GuardsImport, ref.Guard.ModulePath)
		if err != nil {
			return templates.RouteData{}, err.WithLocation(ref.Guard.Location)
		}
		if ref.IsCall() {
			expr += "(" + strings.Join(ref.Args, ", ") + ")"
		}

		switch ref.Guard.Role {
		case models.PlainGuard:
			inline = append(inline, fmt.Sprintf("%s.FromFn(%s)", runtime, expr))
		case models.StatefulGuard:
			inline = append(inline, fmt.Sprintf("%s.FromFnWithState(state, %s)", runtime, expr))
		case models.Layer:
			layers = append(layers, expr)
		}
	}

	if len(inline) > 0 {
		handler = fmt.Sprintf("%s.Wrap(%s, %s)", runtime, handler, strings.Join(inline, ", "))
	}

	return templates.RouteData{
		Runtime: runtime,
		Method:  method,
		Path:    route.Path,
		Name:    route.ModulePath.String(),
		Guards:  route.GuardNames(),
		Handler: handler,
		Layers:  layers,
	}, nil
}

// reference returns the expression naming mp's leaf from the generated package
func (g *Generator) reference(im *templates.ImportManager, rootImport string, mp modpath.ModulePath) (string, *errors.BaseError) {
	if rootImport == "" {
		return "", errors.Newf(errors.GenerationErrorCode, "no import path configured for the %s directory", mp.Namespace()).
			WithSuggestion("Set module in the configuration or run inside a Go module")
	}

	path := mp.ImportPath(rootImport)
	if path == g.opts.SelfImport {
		return mp.Leaf(), nil
	}
	return im.AddPackageImport(mp.Alias(), path) + "." + mp.Leaf(), nil
}

var qualifierPattern = regexp.MustCompile(`^[\*\[\]]*([A-Za-z_][A-Za-z0-9_]*)\.`)

// stateType imports the package of a qualified state type and returns the
// type expression rewritten to the alias actually assigned
func (g *Generator) stateType(im *templates.ImportManager) (string, error) {
	stateType := g.opts.StateType
	m := qualifierPattern.FindStringSubmatchIndex(stateType)

	if m == nil {
		if g.opts.StateImport != "" {
			return "", errors.Newf(errors.ConfigurationErrorCode, "state_import is set but state type %q is not package-qualified", stateType)
		}
		return stateType, nil
	}

	if g.opts.StateImport == "" {
		return "", errors.Newf(errors.ConfigurationErrorCode, "state type %q needs state_import", stateType).
			WithSuggestion("Set state_import to the import path of the package declaring the state type")
	}

	qualifier := stateType[m[2]:m[3]]
	alias := im.AddPackageImport(qualifier, g.opts.StateImport)
	return stateType[:m[2]] + alias + stateType[m[3]:], nil
}

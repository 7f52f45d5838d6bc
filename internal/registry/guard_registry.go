package registry

import (
	"fmt"

	"github.com/toyz/switchyard/internal/annotations"
	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/models"
	"github.com/toyz/switchyard/internal/modpath"
	"github.com/toyz/switchyard/internal/parser"
	"github.com/toyz/switchyard/internal/utils"
)

// GuardRegistry maps guard names to the guards registered under the guards directory
type GuardRegistry struct {
	guards *utils.Registry[string, models.Guard]
}

// New creates an empty guard registry
func New() *GuardRegistry {
	return &GuardRegistry{
		guards: utils.NewRegistry[string, models.Guard](),
	}
}

// Build walks root and registers every annotated guard function.
// A missing root fails with errors.ErrMissingDirectory.
func Build(root string, opts ...Option) (*GuardRegistry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.parser == nil {
		o.parser = parser.NewParser()
	}

	if !utils.DirExists(root) {
		return nil, errors.NewMissingDirectoryError("guards", root)
	}

	files, err := utils.WalkSources(root, utils.WalkOptions{
		IndexFiles:  o.indexFiles,
		ExcludeFile: o.excludeFile,
		Logger:      o.logger,
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", root, err)
	}

	reg := New()
	violations := errors.NewMultipleErrors()

	for _, src := range files {
		o.logger.Debug("scanning guards in %s", src.Rel)

		file, err := o.parser.ParseFile(src.Path)
		if err != nil {
			return nil, err
		}

		for _, method := range parser.Methods(file) {
			ann, err := o.parser.Extractor().Find(method, annotations.RegisterGuard)
			if err != nil {
				return nil, err
			}
			if ann != nil {
				violations.Add(o.parser.Reporter().AnnotatedMethodError(errors.ErrInvalidGuard, method.Name.Name, ann))
			}
		}

		for _, decl := range parser.Functions(file) {
			name := decl.Name.Name
			loc := o.parser.Location(decl.Pos())

			ann, err := o.parser.Extractor().Find(decl, annotations.RegisterGuard)
			if err != nil {
				return nil, err
			}
			if ann == nil {
				violations.Add(o.parser.Reporter().MissingRoleError(name, loc))
				continue
			}

			role, err := ann.GuardType()
			if err != nil {
				if errors.CodeOf(err) == errors.StructuralErrorCode {
					return nil, err
				}
				violations.Add(err.(errors.SwitchyardError))
				continue
			}

			if err := o.parser.ValidateGuard(decl, role); err != nil {
				violations.Add(err.(errors.SwitchyardError))
				continue
			}

			mp, err := modpath.Construct(src.Path, root, modpath.GuardsNamespace, name)
			if err != nil {
				return nil, err
			}

			guard := models.Guard{Name: name, ModulePath: mp, Role: role, Location: loc}
			if prev, replaced := reg.guards.Register(name, guard); replaced {
				if !o.shadowing {
					reg.guards.Register(name, prev)
					violations.Add(o.parser.Reporter().DuplicateGuardError(name, prev.Location, loc))
					continue
				}
				o.logger.Warn("guard '%s' at %s shadows the one at %s", name, loc, prev.Location)
			}

			o.logger.Verbose("registered %s guard %s", role, mp)
		}
	}

	if err := violations.ErrorOrNil(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds a guard, failing with errors.ErrDuplicateGuard when the name is taken
func (r *GuardRegistry) Register(guard models.Guard) error {
	return r.guards.RegisterWithValidator(guard.Name, guard, func(name string, _ models.Guard, existing map[string]models.Guard) error {
		if prev, ok := existing[name]; ok {
			return parser.NewErrorReporter().DuplicateGuardError(name, prev.Location, guard.Location)
		}
		return nil
	})
}

// Get retrieves a guard by name
func (r *GuardRegistry) Get(name string) (models.Guard, bool) {
	return r.guards.Get(name)
}

// Exists reports whether a guard of that name is registered
func (r *GuardRegistry) Exists(name string) bool {
	return r.guards.Has(name)
}

// Len returns the number of registered guards
func (r *GuardRegistry) Len() int {
	return r.guards.Size()
}

// Names returns the registered guard names in ascending order
func (r *GuardRegistry) Names() []string {
	return r.guards.Keys()
}

// Guards returns the registered guards ordered by name
func (r *GuardRegistry) Guards() []models.Guard {
	return r.guards.Values()
}

// String summarizes the registry for diagnostics
func (r *GuardRegistry) String() string {
	return fmt.Sprintf("%d guards %v", r.Len(), r.Names())
}

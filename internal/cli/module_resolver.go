package cli

import (
	"fmt"
	"path/filepath"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/utils"
)

// ModuleResolver turns directories into Go import paths
type ModuleResolver struct {
	customModule string
	module       *utils.ModuleInfo
}

// NewModuleResolver creates a resolver. A non-empty customModule replaces
// the module path declared in go.mod.
func NewModuleResolver(customModule string) *ModuleResolver {
	return &ModuleResolver{customModule: customModule}
}

// Module locates the module enclosing dir, once
func (r *ModuleResolver) Module(dir string) (utils.ModuleInfo, error) {
	if r.module != nil {
		return *r.module, nil
	}

	info, err := utils.FindModule(dir)
	if err != nil {
		if r.customModule == "" {
			return utils.ModuleInfo{}, errors.Wrap(errors.ConfigurationErrorCode, "failed to determine module name", err).
				WithSuggestion("Run inside a Go module or set module in the configuration")
		}
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return utils.ModuleInfo{}, errors.WrapFileSystemError("resolve", dir, absErr)
		}
		info = utils.ModuleInfo{Dir: abs}
	}
	if r.customModule != "" {
		info.Path = r.customModule
	}

	r.module = &info
	return info, nil
}

// ImportPath returns the import path of the package in dir
func (r *ModuleResolver) ImportPath(dir string) (string, error) {
	info, err := r.Module(dir)
	if err != nil {
		return "", err
	}
	path, err := info.ImportPathFor(dir)
	if err != nil {
		return "", errors.Wrap(errors.ConfigurationErrorCode, fmt.Sprintf("cannot import %s", dir), err).
			WithSuggestion(fmt.Sprintf("Keep the routes, guards and output directories inside module %s", info.Path))
	}
	return path, nil
}

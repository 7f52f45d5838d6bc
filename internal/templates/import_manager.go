package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ImportManager handles import generation and deduplication
type ImportManager struct {
	standardImports map[string]bool
	packageImports  map[string]string // alias -> path
	aliasByPath     map[string]string // path -> alias
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		standardImports: make(map[string]bool),
		packageImports:  make(map[string]string),
		aliasByPath:     make(map[string]string),
	}
}

// AddImport adds a standard library import
func (im *ImportManager) AddImport(importPath string) {
	if importPath != "" {
		im.standardImports[importPath] = true
	}
}

// AddPackageImport adds an aliased import and returns the alias actually
// assigned. A path already imported keeps its alias; an alias already taken
// by another path gets a numeric suffix.
func (im *ImportManager) AddPackageImport(alias, path string) string {
	if existing, ok := im.aliasByPath[path]; ok {
		return existing
	}

	candidate := alias
	for n := 2; ; n++ {
		if _, taken := im.packageImports[candidate]; !taken {
			break
		}
		candidate = alias + strconv.Itoa(n)
	}

	im.packageImports[candidate] = path
	im.aliasByPath[path] = candidate
	return candidate
}

// Alias returns the alias assigned to path
func (im *ImportManager) Alias(path string) (string, bool) {
	alias, ok := im.aliasByPath[path]
	return alias, ok
}

// GenerateImports generates the import section: standard imports first,
// then aliased imports, each group sorted
func (im *ImportManager) GenerateImports() string {
	var std []string
	for imp := range im.standardImports {
		std = append(std, strconv.Quote(imp))
	}
	sort.Strings(std)

	aliases := make([]string, 0, len(im.packageImports))
	for alias := range im.packageImports {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		return im.packageImports[aliases[i]] < im.packageImports[aliases[j]]
	})

	var pkgs []string
	for _, alias := range aliases {
		pkgs = append(pkgs, fmt.Sprintf("%s %s", alias, strconv.Quote(im.packageImports[alias])))
	}

	total := len(std) + len(pkgs)
	switch {
	case total == 0:
		return ""
	case total == 1:
		return "import " + strings.Join(append(std, pkgs...), "") + "\n"
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, imp := range std {
		result.WriteString("\t" + imp + "\n")
	}
	if len(std) > 0 && len(pkgs) > 0 {
		result.WriteString("\n")
	}
	for _, imp := range pkgs {
		result.WriteString("\t" + imp + "\n")
	}
	result.WriteString(")\n")

	return result.String()
}

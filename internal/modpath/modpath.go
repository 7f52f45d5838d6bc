// Package modpath derives the symbolic address generated code uses to reach a
// declaration discovered under a routes or guards root.
//
// A ModulePath is the namespace label of the root, every directory between the
// root and the declaring file, the file name without its .go extension, and
// finally the declaration's own identifier:
//
//	<root>/users/get.go, func ListUsers  =>  routes.users.get.ListUsers
package modpath

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/toyz/switchyard/internal/errors"
)

const (
	// RoutesNamespace labels module paths built under the routes root
	RoutesNamespace = "routes"

	// GuardsNamespace labels module paths built under the guards root
	GuardsNamespace = "guards"

	// Separator joins segments in String()
	Separator = "."

	sourceExt = ".go"
)

// ModulePath is an immutable, non-empty sequence of path segments
type ModulePath struct {
	segments []string
}

// Construct builds the ModulePath of leaf declared in file under root.
// It fails with errors.ErrPathOutsideRoot when file is not lexically under root.
func Construct(file, root, namespace, leaf string) (ModulePath, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(file))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return ModulePath{}, errors.Newf(errors.FileSystemErrorCode, "'%s' must be under '%s'", file, root).
			WithKind(errors.ErrPathOutsideRoot)
	}

	components := strings.Split(filepath.ToSlash(rel), "/")
	segments := make([]string, 0, len(components)+2)
	segments = append(segments, namespace)

	for i, comp := range components {
		// only normal components; "." and empty never survive Rel but are skipped all the same
		if comp == "" || comp == "." {
			continue
		}
		if i == len(components)-1 {
			comp = strings.TrimSuffix(comp, sourceExt)
		}
		segments = append(segments, comp)
	}

	segments = append(segments, leaf)
	return ModulePath{segments: segments}, nil
}

// FromSegments rebuilds a ModulePath from segments, mainly for tests and fixtures
func FromSegments(segments ...string) ModulePath {
	return ModulePath{segments: append([]string(nil), segments...)}
}

// Segments returns a copy of all segments
func (m ModulePath) Segments() []string {
	return append([]string(nil), m.segments...)
}

// IsZero reports whether the path was never constructed
func (m ModulePath) IsZero() bool {
	return len(m.segments) == 0
}

// Namespace returns the root namespace label
func (m ModulePath) Namespace() string {
	if m.IsZero() {
		return ""
	}
	return m.segments[0]
}

// Leaf returns the declaration identifier
func (m ModulePath) Leaf() string {
	if m.IsZero() {
		return ""
	}
	return m.segments[len(m.segments)-1]
}

// File returns the declaring file's name without extension
func (m ModulePath) File() string {
	if len(m.segments) < 3 {
		return ""
	}
	return m.segments[len(m.segments)-2]
}

// Dirs returns the directory segments between the namespace and the file
func (m ModulePath) Dirs() []string {
	if len(m.segments) < 4 {
		return nil
	}
	return append([]string(nil), m.segments[1:len(m.segments)-2]...)
}

// PackageDir returns the slash separated package directory relative to the root
func (m ModulePath) PackageDir() string {
	return path.Join(m.Dirs()...)
}

// ImportPath returns the Go import path of the declaring package given the
// import path of the root directory
func (m ModulePath) ImportPath(rootImport string) string {
	dir := m.PackageDir()
	if dir == "" {
		return rootImport
	}
	return rootImport + "/" + dir
}

// Alias returns the identifier generated code imports the declaring package as.
// Directory names that are not valid identifiers are sanitized.
func (m ModulePath) Alias() string {
	parts := append([]string{m.Namespace()}, m.Dirs()...)
	for i, part := range parts {
		parts[i] = sanitizeIdent(part)
	}
	return strings.Join(parts, "_")
}

// Qualified returns the selector expression generated code uses, e.g. routes_users.ListUsers
func (m ModulePath) Qualified() string {
	return m.Alias() + "." + m.Leaf()
}

// Equal reports whether both paths have identical segments
func (m ModulePath) Equal(other ModulePath) bool {
	if len(m.segments) != len(other.segments) {
		return false
	}
	for i := range m.segments {
		if m.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// String joins the segments with Separator
func (m ModulePath) String() string {
	return strings.Join(m.segments, Separator)
}

// GoString implements fmt.GoStringer for readable test failures
func (m ModulePath) GoString() string {
	return fmt.Sprintf("modpath.ModulePath%q", m.segments)
}

func sanitizeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

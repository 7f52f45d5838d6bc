package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIndexFiles are the per-directory files that never declare routes or guards
var DefaultIndexFiles = []string{"doc.go"}

// WalkOptions configures which files a source walk yields
type WalkOptions struct {
	IndexFiles  []string // base names skipped in every directory
	ExcludeFile string   // absolute or root-relative path skipped, usually the generated output
	Logger      Logger   // receives a Verbose line per skipped directory, may be nil
}

// SourceFile is a Go file found under a walk root
type SourceFile struct {
	Path string // path as joined onto the root
	Rel  string // slash separated path relative to the root
}

// DirExists reports whether path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WalkSources returns the .go files under root sorted by relative path.
// Test files, index files, the excluded file and the contents of hidden,
// underscore-prefixed, vendor, testdata and node_modules directories are
// skipped, the same directories the go command ignores for package patterns.
func WalkSources(root string, opts WalkOptions) ([]SourceFile, error) {
	index := make(map[string]bool, len(opts.IndexFiles))
	for _, name := range opts.IndexFiles {
		index[name] = true
	}

	exclude := ""
	if opts.ExcludeFile != "" {
		if abs, err := filepath.Abs(opts.ExcludeFile); err == nil {
			exclude = abs
		}
	}

	var files []SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				if opts.Logger != nil {
					opts.Logger.Verbose("skipping directory %s", path)
				}
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || index[name] {
			return nil
		}
		if exclude != "" {
			if abs, err := filepath.Abs(path); err == nil && abs == exclude {
				return nil
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, SourceFile{Path: path, Rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Rel < files[j].Rel
	})
	return files, nil
}

func skipDir(name string) bool {
	switch name {
	case "vendor", "testdata", "node_modules":
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

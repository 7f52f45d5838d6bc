package cli

import (
	"os"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/templates"
	"github.com/toyz/switchyard/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	config *Config
}

// NewCleaner creates a new cleaner
func NewCleaner(cfg *Config) *Cleaner {
	return &Cleaner{config: cfg}
}

// CleanGeneratedFiles removes the generated output file. It reports whether a
// file was removed; a missing file is not an error. Files without the
// generated header are left untouched.
func (c *Cleaner) CleanGeneratedFiles() (bool, error) {
	if _, err := os.Stat(c.config.Output); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.WrapFileSystemError("check", c.config.Output, err)
	}

	if err := ensureGenerated(c.config.Output); err != nil {
		return false, err
	}

	if err := os.Remove(c.config.Output); err != nil {
		return false, errors.WrapFileSystemError("remove", c.config.Output, err)
	}
	return true, nil
}

// ensureGenerated fails when path exists and does not start with the
// generated header. A missing path is fine.
func ensureGenerated(path string) error {
	header, err := utils.ReadHeader(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapFileSystemError("read", path, err)
	}
	if header != templates.GeneratedHeader {
		return errors.Newf(errors.FileSystemErrorCode, "refusing to modify '%s': it is not a switchyard generated file", path).
			WithKind(errors.ErrNotGenerated).
			WithSuggestion("Point output at a dedicated file such as routes_gen.go, or delete the existing file yourself")
	}
	return nil
}

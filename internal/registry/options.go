package registry

import (
	"github.com/toyz/switchyard/internal/parser"
	"github.com/toyz/switchyard/internal/utils"
)

// Option configures Build
type Option func(*options)

type options struct {
	shadowing   bool
	indexFiles  []string
	excludeFile string
	logger      utils.Logger
	parser      *parser.Parser
}

func defaultOptions() *options {
	return &options{
		indexFiles: utils.DefaultIndexFiles,
		logger:     utils.NopLogger(),
	}
}

// WithShadowing lets a later guard replace an earlier one of the same name
func WithShadowing(enabled bool) Option {
	return func(o *options) { o.shadowing = enabled }
}

// WithIndexFiles sets the per-directory file names that are never scanned
func WithIndexFiles(names []string) Option {
	return func(o *options) { o.indexFiles = names }
}

// WithExcludeFile skips one file, usually the generated output
func WithExcludeFile(path string) Option {
	return func(o *options) { o.excludeFile = path }
}

// WithLogger sets the logger receiving warnings and progress
func WithLogger(logger utils.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithParser shares a parser, and therefore a file set, with other components
func WithParser(p *parser.Parser) Option {
	return func(o *options) { o.parser = p }
}

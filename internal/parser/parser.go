package parser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/toyz/switchyard/internal/annotations"
	"github.com/toyz/switchyard/internal/errors"
)

// Parser is the Go front end shared by the guard registry and the route collector
type Parser struct {
	fileSet   *token.FileSet
	extractor *annotations.Extractor
	reporter  *ErrorReporter
}

// NewParser creates a new parser with its own file set
func NewParser() *Parser {
	fset := token.NewFileSet()
	return &Parser{
		fileSet:   fset,
		extractor: annotations.NewExtractor(fset),
		reporter:  NewErrorReporter(),
	}
}

// FileSet returns the file set positions resolve against
func (p *Parser) FileSet() *token.FileSet {
	return p.fileSet
}

// Extractor returns the annotation extractor bound to the parser's file set
func (p *Parser) Extractor() *annotations.Extractor {
	return p.extractor
}

// Reporter returns the contract error reporter
func (p *Parser) Reporter() *ErrorReporter {
	return p.reporter
}

// ParseFile reads and parses a Go file with comments
func (p *Parser) ParseFile(path string) (*ast.File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return p.ParseSource(path, src)
}

// ParseSource parses Go source held in memory
func (p *Parser) ParseSource(filename string, src []byte) (*ast.File, error) {
	file, err := parser.ParseFile(p.fileSet, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}
	return file, nil
}

// Location converts a position into a source location
func (p *Parser) Location(pos token.Pos) errors.SourceLocation {
	position := p.fileSet.Position(pos)
	return errors.SourceLocation{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

// Functions returns the package-level function declarations of file in source
// order. Methods and init functions are not included.
func Functions(file *ast.File) []*ast.FuncDecl {
	var funcs []*ast.FuncDecl
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Name.Name == "init" {
			continue
		}
		funcs = append(funcs, fn)
	}
	return funcs
}

// Methods returns the method declarations of file in source order
func Methods(file *ast.File) []*ast.FuncDecl {
	var methods []*ast.FuncDecl
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil {
			methods = append(methods, fn)
		}
	}
	return methods
}

package annotations

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/switchyard/internal/errors"
)

// directive grammar:
//
//	Directive := Ident ( "(" ArgList? ")" | ArgList? )
//	ArgList   := Arg ( "," Arg )* ","?
//	Arg       := ( Ident "=" )? Value
//	Value     := String | Number | Call
//	Call      := Ident ( "." Ident )* ( "(" ( Value ( "," Value )* ","? )? ")" )?
type directiveAST struct {
	Name    string      `parser:"@Ident"`
	Wrapped *wrappedAST `parser:"( @@"`
	Bare    []*argAST   `parser:"| ( @@ ( ',' @@ )* ','? )? )"`
}

type wrappedAST struct {
	Open bool      `parser:"@'('"`
	Args []*argAST `parser:"( @@ ( ',' @@ )* ','? )? ')'"`
}

type argAST struct {
	Key   string    `parser:"( @Ident '=' )?"`
	Value *valueAST `parser:"@@"`
}

type valueAST struct {
	String *string  `parser:"  @String"`
	Number *string  `parser:"| @Number"`
	Call   *callAST `parser:"| @@"`
}

type callAST struct {
	Name   []string   `parser:"@Ident ( '.' @Ident )*"`
	Params *paramsAST `parser:"@@?"`
}

type paramsAST struct {
	Open   bool        `parser:"@'('"`
	Values []*valueAST `parser:"( @@ ( ',' @@ )* ','? )? ')'"`
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: "\"(\\\\.|[^\"\\\\])*\"|`[^`]*`"},
	{Name: "Number", Pattern: `[-+]?\d+(\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),=.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var directiveParser = participle.MustBuild[directiveAST](
	participle.Lexer(directiveLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseDirective parses the text following the switchyard:: prefix
func ParseDirective(text string, loc errors.SourceLocation) (*Annotation, error) {
	parsed, err := directiveParser.ParseString(loc.File, text)
	if err != nil {
		return nil, errors.NewAnnotationError(loc, fmt.Sprintf("malformed annotation '%s%s'", Prefix, text), err)
	}

	name := Name(parsed.Name)
	if !name.Known() {
		return nil, errors.NewAnnotationError(loc, fmt.Sprintf("unknown annotation '%s%s'", Prefix, parsed.Name), nil).
			WithSuggestion("Known annotations: get, post, put, patch, delete, register_guard, guards")
	}

	argASTs := parsed.Bare
	if parsed.Wrapped != nil {
		argASTs = parsed.Wrapped.Args
	}

	args := make([]Arg, 0, len(argASTs))
	for _, a := range argASTs {
		v, err := convertValue(a.Value)
		if err != nil {
			return nil, errors.NewAnnotationError(loc, fmt.Sprintf("invalid literal in '%s%s'", Prefix, text), err)
		}
		args = append(args, Arg{Key: a.Key, Value: v})
	}

	return &Annotation{
		Name:     name,
		Args:     args,
		Raw:      "//" + Prefix + text,
		Location: loc,
	}, nil
}

func convertValue(v *valueAST) (Value, error) {
	switch {
	case v.String != nil:
		s, err := unquote(*v.String)
		if err != nil {
			return Value{}, err
		}
		return Value{String: &s, raw: *v.String}, nil
	case v.Number != nil:
		n := *v.Number
		return Value{Number: &n, raw: n}, nil
	default:
		call := &Call{Name: strings.Join(v.Call.Name, ".")}
		raw := call.Name
		if v.Call.Params != nil {
			call.Params = make([]Value, 0, len(v.Call.Params.Values))
			parts := make([]string, 0, len(v.Call.Params.Values))
			for _, p := range v.Call.Params.Values {
				pv, err := convertValue(p)
				if err != nil {
					return Value{}, err
				}
				call.Params = append(call.Params, pv)
				parts = append(parts, pv.Raw())
			}
			raw += "(" + strings.Join(parts, ", ") + ")"
		}
		return Value{Call: call, raw: raw}, nil
	}
}

// Extractor reads switchyard annotations from function declarations
type Extractor struct {
	fset *token.FileSet
}

// NewExtractor creates an extractor resolving positions against fset
func NewExtractor(fset *token.FileSet) *Extractor {
	return &Extractor{fset: fset}
}

// Annotations returns every annotation in decl's doc comment, in source order
func (e *Extractor) Annotations(decl *ast.FuncDecl) ([]Annotation, error) {
	if decl.Doc == nil {
		return nil, nil
	}

	var out []Annotation
	for _, c := range decl.Doc.List {
		text, ok := directiveText(c.Text)
		if !ok {
			continue
		}

		pos := e.fset.Position(c.Slash)
		loc := errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}

		ann, err := ParseDirective(text, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, *ann)
	}
	return out, nil
}

// Find returns the first annotation on decl whose name is one of names, or nil
func (e *Extractor) Find(decl *ast.FuncDecl, names ...Name) (*Annotation, error) {
	all, err := e.Annotations(decl)
	if err != nil {
		return nil, err
	}
	for i := range all {
		for _, n := range names {
			if all[i].Name == n {
				return &all[i], nil
			}
		}
	}
	return nil, nil
}

// directiveText strips the comment marker and prefix from a line comment
func directiveText(comment string) (string, bool) {
	if !strings.HasPrefix(comment, "//") {
		return "", false
	}
	body := strings.TrimLeft(comment[2:], " \t")
	if !strings.HasPrefix(body, Prefix) {
		return "", false
	}
	return strings.TrimSpace(body[len(Prefix):]), true
}

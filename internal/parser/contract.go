package parser

import (
	"go/ast"
	"strings"

	"github.com/toyz/switchyard/internal/annotations"
	"github.com/toyz/switchyard/internal/models"
)

// ValidateHandler checks that decl can be referenced as a route handler by
// generated code: an exported, non-generic function without receiver whose
// signature is func(RequestContext) error.
func (p *Parser) ValidateHandler(decl *ast.FuncDecl, ann *annotations.Annotation) error {
	loc := p.Location(decl.Pos())
	name := decl.Name.Name

	switch {
	case decl.Recv != nil:
		return p.reporter.HandlerError(name, ann, loc, "handlers must be package-level functions, not methods", Signature(decl))
	case !ast.IsExported(name):
		return p.reporter.HandlerError(name, ann, loc, "handlers must be exported", Signature(decl))
	case decl.Type.TypeParams != nil && decl.Type.TypeParams.NumFields() > 0:
		return p.reporter.HandlerError(name, ann, loc, "handlers cannot have type parameters", Signature(decl))
	}

	params := decl.Type.Params
	if params.NumFields() != 1 || !isRequestContext(params.List[0].Type) {
		return p.reporter.HandlerError(name, ann, loc, "handlers must take exactly one RequestContext parameter", Signature(decl))
	}

	results := decl.Type.Results
	if results.NumFields() != 1 || !isError(results.List[0].Type) {
		return p.reporter.HandlerError(name, ann, loc, "handlers must return exactly one error", Signature(decl))
	}

	return nil
}

// ValidateGuard checks that decl can be referenced as a guard by generated code
func (p *Parser) ValidateGuard(decl *ast.FuncDecl, role models.GuardRole) error {
	loc := p.Location(decl.Pos())
	name := decl.Name.Name

	switch {
	case decl.Recv != nil:
		return p.reporter.GuardError(name, role, loc, "guards must be package-level functions, not methods")
	case !ast.IsExported(name):
		return p.reporter.GuardError(name, role, loc, "guards must be exported")
	case decl.Type.TypeParams != nil && decl.Type.TypeParams.NumFields() > 0:
		return p.reporter.GuardError(name, role, loc, "guards cannot have type parameters")
	}
	return nil
}

func isRequestContext(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name == RequestContextType
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok && t.Sel.Name == RequestContextType
	}
	return false
}

func isError(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "error"
}

// Signature renders the declared signature of decl for diagnostics
func Signature(decl *ast.FuncDecl) string {
	var b strings.Builder
	b.WriteString("func ")
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		b.WriteString("(" + TypeString(decl.Recv.List[0].Type) + ") ")
	}
	b.WriteString(decl.Name.Name)
	b.WriteString(fieldList(decl.Type.Params))

	if results := decl.Type.Results; results.NumFields() == 1 && len(results.List[0].Names) == 0 {
		b.WriteString(" " + TypeString(results.List[0].Type))
	} else if results.NumFields() > 0 {
		b.WriteString(" " + fieldList(results))
	}
	return b.String()
}

func fieldList(fields *ast.FieldList) string {
	if fields == nil {
		return "()"
	}
	var parts []string
	for _, f := range fields.List {
		typ := TypeString(f.Type)
		if len(f.Names) == 0 {
			parts = append(parts, typ)
			continue
		}
		for _, n := range f.Names {
			parts = append(parts, n.Name+" "+typ)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TypeString converts an AST type expression to a string representation
func TypeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + TypeString(t.X)
	case *ast.SelectorExpr:
		return TypeString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		return "[]" + TypeString(t.Elt)
	case *ast.MapType:
		return "map[" + TypeString(t.Key) + "]" + TypeString(t.Value)
	case *ast.Ellipsis:
		return "..." + TypeString(t.Elt)
	case *ast.ChanType:
		return "chan " + TypeString(t.Value)
	case *ast.IndexExpr:
		return TypeString(t.X) + "[" + TypeString(t.Index) + "]"
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"
	case *ast.FuncType:
		s := "func" + fieldList(t.Params)
		if t.Results.NumFields() > 0 {
			s += " " + fieldList(t.Results)
		}
		return s
	default:
		return "?"
	}
}

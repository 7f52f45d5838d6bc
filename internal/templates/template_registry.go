package templates

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

const (
	// FileTemplate renders a complete generated routes file
	FileTemplate = "routes-file"

	// RouteTemplate renders a switchyard.Route literal
	RouteTemplate = "route"
)

// GeneratedHeader marks generated files for go tooling
const GeneratedHeader = "// Code generated by switchyard. DO NOT EDIT."

// FileData feeds FileTemplate
type FileData struct {
	Package   string
	Imports   string
	FuncName  string
	StateType string
	Runtime   string // alias of the runtime package
	Routes    []RouteData
}

// RouteData feeds RouteTemplate
type RouteData struct {
	Runtime string
	Method  string // net/http constant name, e.g. MethodGet
	Path    string
	Name    string
	Guards  []string
	Handler string   // handler expression including inline guards
	Layers  []string // layer guard expressions in declared order
}

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
	parsed    *template.Template
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerFileTemplates()
	registry.registerRouteTemplates()

	root := template.New("switchyard").Funcs(template.FuncMap{
		"quote":     strconv.Quote,
		"quoteEach": quoteEach,
		"join":      strings.Join,
	})
	for name, text := range registry.templates {
		template.Must(root.New(name).Parse(text))
	}
	registry.parsed = root

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	text, exists := tr.templates[name]
	return text, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	text, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return text
}

// Execute renders the named template with data
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	if _, ok := tr.templates[name]; !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tr.parsed.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (tr *TemplateRegistry) registerFileTemplates() {
	tr.templates[FileTemplate] = GeneratedHeader + `

package {{.Package}}

{{.Imports}}
// {{.FuncName}} builds the routing table discovered under the routes directory.
func {{.FuncName}}(state {{.StateType}}) *{{.Runtime}}.Router {
	router := {{.Runtime}}.NewRouter()
{{range .Routes}}
{{- if .Layers}}
	router.Mount({{.Runtime}}.NewRouter().Add({{template "route" .}}){{range .Layers}}.Layer({{.}}){{end}})
{{- else}}
	router.Add({{template "route" .}})
{{- end}}
{{end}}
	return router
}
`
}

func (tr *TemplateRegistry) registerRouteTemplates() {
	tr.templates[RouteTemplate] = `{{.Runtime}}.Route{
		Method:  http.{{.Method}},
		Path:    {{quote .Path}},
		Name:    {{quote .Name}},
{{- if .Guards}}
		Guards:  []string{ {{- join (quoteEach .Guards) ", " -}} },
{{- end}}
		Handler: {{.Handler}},
	}`
}

func quoteEach(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strconv.Quote(s)
	}
	return out
}

package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/models"
	"github.com/toyz/switchyard/internal/utils"
)

// DiagnosticReporter renders generator errors with their hints
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
}

// NewDiagnosticReporter creates a reporter writing through diagnostics
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{diagnostics: diagnostics}
}

// ReportError prints err with its location and hints. Collected errors are
// printed one by one.
func (r *DiagnosticReporter) ReportError(err error) {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		r.diagnostics.Error("%d problems found", len(multi.Errors))
		r.diagnostics.Indent()
		for _, e := range multi.Errors {
			r.reportOne(e)
		}
		r.diagnostics.Unindent()
		return
	}
	r.reportOne(err)
}

func (r *DiagnosticReporter) reportOne(err error) {
	var se errors.SwitchyardError
	if !stderrors.As(err, &se) {
		r.diagnostics.Error("%v", err)
		return
	}

	r.diagnostics.Error("%s: %v", se.ErrorCode(), err)
	for _, hint := range se.Suggestions() {
		r.diagnostics.Hint("%s", hint)
	}
}

// PrintRoutes writes the routing table, one route per row
func PrintRoutes(w io.Writer, routes []models.DiscoveredRoute) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tHANDLER\tGUARDS")
	for _, route := range routes {
		guards := "-"
		if names := route.GuardNames(); len(names) > 0 {
			guards = strings.Join(names, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", route.Method, route.Path, route.ModulePath, guards)
	}
	return tw.Flush()
}

// Package ui renders generator output for the terminal: colored diagnostics
// and summary tables.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	generrors "github.com/crucible-vm/crucible/internal/subgen/errors"
)

// DiagnosticOptions configures diagnostic rendering
type DiagnosticOptions struct {
	NoColor bool
}

// FormatDiagnostic renders one diagnostic:
//
//	❌ [GEN601] Example.resolve
//	   derived identifier "Example_resolve_2" already claimed by Example.lookup
//	   → rename the method or change its arity
func FormatDiagnostic(e *generrors.GenError, opts DiagnosticOptions) string {
	var headerColor *color.Color
	var symbol string

	switch e.Severity {
	case generrors.SeverityError:
		headerColor = color.New(color.FgRed, color.Bold)
		symbol = "❌"
	default:
		headerColor = color.New(color.FgYellow, color.Bold)
		symbol = "⚠️"
	}
	if opts.NoColor {
		headerColor.DisableColor()
	}

	var b strings.Builder
	header := fmt.Sprintf("[%s]", e.Code)
	if e.Method != "" {
		header += " " + e.Method
	}
	b.WriteString(fmt.Sprintf("%s %s\n", symbol, headerColor.Sprint(header)))
	b.WriteString("   " + e.Message + "\n")
	if e.Suggestion != "" {
		b.WriteString("   → " + e.Suggestion + "\n")
	}
	return b.String()
}

// WriteDiagnostics renders a diagnostic list followed by a severity summary.
func WriteDiagnostics(w io.Writer, list generrors.List, opts DiagnosticOptions) {
	for _, e := range list {
		fmt.Fprintln(w, FormatDiagnostic(e, opts))
	}
	if len(list) > 0 {
		errCount, warnCount := list.Count()
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errCount, warnCount)
	}
}

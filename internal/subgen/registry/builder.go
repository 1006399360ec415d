// Package registry accumulates the aggregate collector artifact: one
// registration per emitted adapter, finalized by a single commit.
package registry

import (
	"fmt"
	"strings"

	"github.com/crucible-vm/crucible/internal/subgen/assemble"
)

// Builder assembles the collector source. It is exclusively owned by one
// generation pass: created at pass start, appended to on each successful
// emission, committed exactly once at pass end. Record after Commit is an
// error, never a silent no-op.
//
// No de-duplication happens here. If two adapters derived the same identifier
// the builder records two references to the same factory getter; catching
// that is the driver's job, before any emission.
type Builder struct {
	buf       strings.Builder
	count     int
	committed bool
}

// NewBuilder starts the collector artifact: header, package clause, the
// import of the calling convention package, the collector slice and its
// getter, and the opening of the registration block.
func NewBuilder(packageName string) *Builder {
	b := &Builder{}
	b.buf.WriteString(assemble.Header)
	b.buf.WriteString("\n")
	fmt.Fprintf(&b.buf, "package %s\n", packageName)
	b.buf.WriteString("\n")
	b.buf.WriteString("import (\n")
	fmt.Fprintf(&b.buf, "\t%q\n", assemble.SubstitutionImport)
	b.buf.WriteString(")\n")
	b.buf.WriteString("\n")
	b.buf.WriteString("// collector accumulates the factory of every generated substitutor.\n")
	b.buf.WriteString("var collector []substitution.Factory\n")
	b.buf.WriteString("\n")
	b.buf.WriteString("// GetCollector returns the factories of all generated substitutors, in\n")
	b.buf.WriteString("// generation order.\n")
	b.buf.WriteString("func GetCollector() []substitution.Factory {\n")
	b.buf.WriteString("\treturn collector\n")
	b.buf.WriteString("}\n")
	b.buf.WriteString("\n")
	b.buf.WriteString("func init() {\n")
	return b
}

// Record appends one registration referencing the factory of identifier.
func (b *Builder) Record(identifier string) error {
	if b.committed {
		return fmt.Errorf("registry: record %q after commit", identifier)
	}
	fmt.Fprintf(&b.buf, "\tcollector = append(collector, Factory_%s())\n", identifier)
	b.count++
	return nil
}

// Commit closes the registration block and returns the final collector
// source. Committing twice is an error.
func (b *Builder) Commit() (string, error) {
	if b.committed {
		return "", fmt.Errorf("registry: commit called twice")
	}
	b.committed = true
	b.buf.WriteString("}\n")
	return b.buf.String(), nil
}

// Count returns the number of recorded registrations.
func (b *Builder) Count() int { return b.count }

// Committed reports whether the builder was finalized.
func (b *Builder) Committed() bool { return b.committed }

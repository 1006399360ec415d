package assemble

import "strings"

// Section identifies one typed section of a generated adapter. The canonical
// emission order is the declaration order below; Render never deviates from
// it, so tests can assert per-section content independent of final layout.
type Section int

const (
	// SectionHeader is the static generated-code marker, identical for every
	// artifact in a pass.
	SectionHeader Section = iota
	// SectionPackage is the package clause.
	SectionPackage
	// SectionImports is the import block: fixed imports plus the
	// flavor-supplied set.
	SectionImports
	// SectionDoc links the adapter back to the originating target method and
	// its full classified signature. Informational only.
	SectionDoc
	// SectionType declares the adapter type embedding the shared base, with
	// one field per stub reference plus the context and profiler fields.
	SectionType
	// SectionFactory declares the factory type, its Create method, and the
	// singleton factory instance holding the static method descriptor.
	SectionFactory
	// SectionConstructor declares the unexported constructor binding every
	// stub handle eagerly and storing the context handle when injected.
	SectionConstructor
	// SectionGetter declares the public accessor for the singleton factory.
	SectionGetter
	// SectionSplit declares the ShouldSplit/Split pair; present only when
	// profiler injection is set.
	SectionSplit
	// SectionInvoke is the flavor-supplied invocation body.
	SectionInvoke

	numSections
)

func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionPackage:
		return "package"
	case SectionImports:
		return "imports"
	case SectionDoc:
		return "doc"
	case SectionType:
		return "type"
	case SectionFactory:
		return "factory"
	case SectionConstructor:
		return "constructor"
	case SectionGetter:
		return "getter"
	case SectionSplit:
		return "split"
	case SectionInvoke:
		return "invoke"
	}
	return "unknown"
}

// Unit is one assembled adapter: its derived identifier plus the ordered,
// typed sections. Sections are filled once by the assembler and rendered to
// the final text by Render.
type Unit struct {
	Name     string
	sections [numSections]string
}

// Section returns the text of one section; empty when the section is absent.
func (u *Unit) Section(s Section) string {
	return u.sections[s]
}

// Render joins the non-empty sections in canonical order. A blank line
// separates sections, except that the doc comment stays glued to the type
// declaration it documents.
func (u *Unit) Render() string {
	var b strings.Builder
	prev := Section(-1)
	for s := Section(0); s < numSections; s++ {
		text := u.sections[s]
		if text == "" {
			continue
		}
		if prev >= 0 && !(prev == SectionDoc && s == SectionType) {
			b.WriteString("\n")
		}
		b.WriteString(text)
		prev = s
	}
	return b.String()
}

// Package assemble builds the full source text of generated substitutors.
// The section order is fixed (see Section); flavors only supply the imports,
// the factory metadata encoding, and the invocation body.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crucible-vm/crucible/internal/subgen/model"
)

// Header is the static first line of every generated artifact. It carries no
// pass-specific state so re-running a pass on unchanged input is
// byte-identical.
const Header = "// Code generated by crucible subgen. DO NOT EDIT.\n"

// SubstitutionImport is the fixed import every adapter needs: the calling
// convention package.
const SubstitutionImport = "github.com/crucible-vm/crucible/pkg/substitution"

// targetAlias is the fixed local name of the package hosting the target
// method implementations.
const targetAlias = "targets"

// Options configure an Assembler for one generation pass.
type Options struct {
	// PackageName is the package the artifacts are generated into.
	PackageName string
	// TargetImport is the import path of the package hosting the target
	// method implementations, imported under the fixed alias "targets".
	TargetImport string
}

// Assembler composes adapter source text. All sections of one adapter are
// generated from the same method and classification snapshot.
type Assembler struct {
	flavor Flavor
	opts   Options
}

// New creates an assembler for the given flavor.
func New(flavor Flavor, opts Options) *Assembler {
	if opts.PackageName == "" {
		opts.PackageName = "substitutions"
	}
	return &Assembler{flavor: flavor, opts: opts}
}

// PackageName returns the package the assembler generates into.
func (a *Assembler) PackageName() string { return a.opts.PackageName }

// Assemble builds the adapter unit for one target method. The result is a
// pure function of the method: assembling the same method twice yields
// byte-identical text.
func (a *Assembler) Assemble(m *model.TargetMethod) *Unit {
	cls := model.Classify(m)
	name := model.AdapterNameFor(m)

	u := &Unit{Name: name}
	u.sections[SectionHeader] = Header
	u.sections[SectionPackage] = fmt.Sprintf("package %s\n", a.opts.PackageName)
	u.sections[SectionImports] = a.imports(m, cls)
	u.sections[SectionDoc] = docComment(name, m, cls)
	u.sections[SectionType] = typeDecl(name, cls)
	u.sections[SectionFactory] = a.factory(name, m, cls)
	u.sections[SectionConstructor] = constructor(name, cls)
	u.sections[SectionGetter] = getter(name)
	if cls.HasProfiler {
		u.sections[SectionSplit] = splitPair(name)
	}
	u.sections[SectionInvoke] = a.invoke(name, m, cls)
	return u
}

type importSpec struct {
	alias string
	path  string
}

// imports renders the import block: the substitution package, the targets
// package, and whatever the flavor adds, sorted by path.
func (a *Assembler) imports(m *model.TargetMethod, cls model.Classification) string {
	specs := []importSpec{
		{path: SubstitutionImport},
		{alias: targetAlias, path: a.opts.TargetImport},
	}
	for _, extra := range a.flavor.Imports(m, cls) {
		specs = append(specs, importSpec{path: extra})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].path < specs[j].path })

	var b strings.Builder
	b.WriteString("import (\n")
	for _, s := range specs {
		if s.alias != "" {
			fmt.Fprintf(&b, "\t%s %q\n", s.alias, s.path)
		} else {
			fmt.Fprintf(&b, "\t%q\n", s.path)
		}
	}
	b.WriteString(")\n")
	return b.String()
}

// docComment links the adapter back to its target method. The signature lists
// ordinary types in declared order, then one call handle per stub reference,
// then the context and profiler handles when injected — exactly the
// classification order. Informational only; nothing reads it back.
func docComment(name string, m *model.TargetMethod, cls model.Classification) string {
	sig := make([]string, 0, len(m.Params))
	for _, p := range cls.Ordinary {
		sig = append(sig, p.Type)
	}
	for range cls.Stubs {
		sig = append(sig, "*substitution.CallHandle")
	}
	if cls.HasContext {
		sig = append(sig, "*substitution.Context")
	}
	if cls.HasProfiler {
		sig = append(sig, "*substitution.Profiler")
	}
	return fmt.Sprintf("// %s is generated from %s.%s(%s).\n",
		name, m.DeclaringType, m.Method, strings.Join(sig, ", "))
}

// typeDecl declares the adapter: the embedded base, one bound call handle per
// stub reference, the context handle when any injection is present, and the
// profiler state when profiling.
func typeDecl(name string, cls model.Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n", name)
	b.WriteString("\tsubstitution.Base\n")
	if len(cls.Stubs) > 0 || cls.NeedsContextHandle() {
		b.WriteString("\n")
		for _, stub := range cls.Stubs {
			fmt.Fprintf(&b, "\t%s *substitution.CallHandle\n", stub.Name)
		}
		if cls.NeedsContextHandle() {
			b.WriteString("\tctx *substitution.Context\n")
		}
		if cls.HasProfiler {
			b.WriteString("\tprofiler substitution.Profiler\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// factory declares the factory type, its Create method, and the singleton
// instance carrying the flavor-encoded static descriptor.
func (a *Assembler) factory(name string, m *model.TargetMethod, cls model.Classification) string {
	meta := a.flavor.FactoryMeta(m, cls)

	var b strings.Builder
	fmt.Fprintf(&b, "type factory_%s struct {\n", name)
	b.WriteString("\tsubstitution.BaseFactory\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "func (f *factory_%s) Create(ctx *substitution.Context) substitution.Substitutor {\n", name)
	fmt.Fprintf(&b, "\treturn new%s(ctx)\n", name)
	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "var factoryInstance_%s substitution.Factory = &factory_%s{\n", name, name)
	b.WriteString("\tBaseFactory: substitution.NewBaseFactory(\n")
	fmt.Fprintf(&b, "\t\t%q,\n", meta.MethodName)
	fmt.Fprintf(&b, "\t\t%q,\n", meta.DeclaringType)
	fmt.Fprintf(&b, "\t\t%q,\n", meta.ReturnType)
	if len(meta.ParameterTypes) == 0 {
		b.WriteString("\t\t[]string{},\n")
	} else {
		b.WriteString("\t\t[]string{\n")
		for _, t := range meta.ParameterTypes {
			fmt.Fprintf(&b, "\t\t\t%q,\n", t)
		}
		b.WriteString("\t\t},\n")
	}
	fmt.Fprintf(&b, "\t\t%t,\n", meta.HasReceiver)
	b.WriteString("\t),\n")
	b.WriteString("}\n")
	return b.String()
}

// constructor binds every stub reference eagerly and stores the context
// handle when an injection flag is set. Unexported: only the factory
// constructs instances.
func constructor(name string, cls model.Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func new%s(ctx *substitution.Context) substitution.Substitutor {\n", name)
	fmt.Fprintf(&b, "\ts := &%s{}\n", name)
	for _, stub := range cls.Stubs {
		fmt.Fprintf(&b, "\ts.%s = ctx.ResolveCall(%q)\n", stub.Name, stub.Name)
	}
	if cls.NeedsContextHandle() {
		b.WriteString("\ts.ctx = ctx\n")
	}
	b.WriteString("\treturn s\n")
	b.WriteString("}\n")
	return b.String()
}

// getter is the public, stable accessor for the singleton factory.
func getter(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Factory_%s returns the singleton factory for %s.\n", name, name)
	fmt.Fprintf(&b, "func Factory_%s() substitution.Factory {\n", name)
	fmt.Fprintf(&b, "\treturn factoryInstance_%s\n", name)
	b.WriteString("}\n")
	return b.String()
}

// splitPair marks the adapter as specializable per call site and clones it
// through the factory. The clone shares the context handle but carries fresh
// profiling state.
func splitPair(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func (s *%s) ShouldSplit() bool {\n", name)
	b.WriteString("\treturn true\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "func (s *%s) Split() substitution.Substitutor {\n", name)
	fmt.Fprintf(&b, "\treturn factoryInstance_%s.Create(s.ctx)\n", name)
	b.WriteString("}\n")
	return b.String()
}

// invoke wraps the flavor-supplied body. A method with zero ordinary
// parameters gets a body that never touches the argument array.
func (a *Assembler) invoke(name string, m *model.TargetMethod, cls model.Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func (s *%s) Invoke(args []interface{}) interface{} {\n", name)
	for _, line := range a.flavor.InvokeBody(m, cls) {
		fmt.Fprintf(&b, "\t%s\n", line)
	}
	b.WriteString("}\n")
	return b.String()
}

// callExpr builds the forwarding call: ordinary arguments in declared order,
// then stub handles, context, and profiler, in that fixed order.
func callExpr(m *model.TargetMethod, cls model.Classification) string {
	args := make([]string, 0, len(m.Params))
	for i := range cls.Ordinary {
		args = append(args, fmt.Sprintf("arg%d", i))
	}
	for _, stub := range cls.Stubs {
		args = append(args, "s."+stub.Name)
	}
	if cls.HasContext {
		args = append(args, "s.ctx")
	}
	if cls.HasProfiler {
		args = append(args, "&s.profiler")
	}
	return fmt.Sprintf("%s.%s_%s(%s)", targetAlias, m.DeclaringType, m.Method, strings.Join(args, ", "))
}

// Package model defines the neutral description of a target method and its
// parameter classification. It is populated by the manifest loader and
// consumed by the assembler; it carries no behavior beyond read-only
// derivations, so a generation pass can re-compute any of it at will.
package model

// Injection identifies a special injected parameter kind.
type Injection string

const (
	// InjectNone marks an ordinary positional parameter.
	InjectNone Injection = ""
	// InjectContext marks the shared runtime context handle.
	InjectContext Injection = "context"
	// InjectProfiler marks the per-call-site profiler handle.
	InjectProfiler Injection = "profiler"
)

// Param is one declared parameter of a target method.
type Param struct {
	// Name is the declared parameter name.
	Name string
	// Type is the parameter type as declared, possibly qualified.
	Type string
	// Stub marks the parameter as a stub reference: a call handle bound to
	// another guest method, resolved once at adapter construction.
	Stub bool
	// Alias overrides the name under which a stub reference is exposed as
	// adapter state. Empty means the declared name is used.
	Alias string
	// Inject marks the parameter as an injected handle.
	Inject Injection
}

// TargetMethod describes one host method to be exposed through the uniform
// invocation contract. Immutable once extracted; owned by a single pass.
type TargetMethod struct {
	// DeclaringType is the name of the host type declaring the method.
	DeclaringType string
	// Method is the substituted method name.
	Method string
	// Params are the declared parameters in source order.
	Params []Param
	// Return is the declared return type name; "void" for no result.
	Return string
	// Receiver reports whether the substituted guest method has a receiver.
	Receiver bool
}

// QualifiedName returns "DeclaringType.method", used in diagnostics.
func (m *TargetMethod) QualifiedName() string {
	return m.DeclaringType + "." + m.Method
}

// Artifact is one generated source artifact, created exactly once per target
// method and handed to the output sink exactly once.
type Artifact struct {
	// Name is the artifact identifier the sink is keyed by.
	Name string
	// Source is the full generated text.
	Source string
}

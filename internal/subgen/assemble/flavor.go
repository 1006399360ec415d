package assemble

import "github.com/crucible-vm/crucible/internal/subgen/model"

// FactoryMeta is the static descriptor a flavor renders into the generated
// factory. Flavors are free to re-encode the declared type names; the native
// flavor maps them to native ABI type names.
type FactoryMeta struct {
	MethodName     string
	DeclaringType  string
	ReturnType     string
	ParameterTypes []string
	HasReceiver    bool
}

// Flavor supplies the three sections that vary across generator flavors:
// the extra imports, the factory metadata encoding, and the invocation body.
// Everything else about an adapter is fixed by the assembler.
type Flavor interface {
	// Name identifies the flavor in configuration and logs.
	Name() string

	// Imports returns flavor-specific import paths beyond the fixed set.
	// The set must be a pure function of the method and classification.
	Imports(m *model.TargetMethod, cls model.Classification) []string

	// FactoryMeta encodes the static descriptor stored in the factory.
	FactoryMeta(m *model.TargetMethod, cls model.Classification) FactoryMeta

	// InvokeBody returns the statements of the Invoke method, one line per
	// entry, without leading indentation. Ordinary arguments must be consumed
	// from the generic argument array in declared order; the assembler
	// guarantees stub, context, and profiler handles are available as
	// adapter state.
	InvokeBody(m *model.TargetMethod, cls model.Classification) []string
}

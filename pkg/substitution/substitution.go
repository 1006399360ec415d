// Package substitution defines the calling convention between the Crucible
// runtime and generated substitutors. Generated code links against this
// package; how substitutors are loaded and dispatched is up to the runtime.
package substitution

// Substitutor is the uniform, untyped invocation contract every generated
// adapter satisfies. Invoke receives the guest arguments as a generic array
// and returns a generic result (nil for void methods).
type Substitutor interface {
	Invoke(args []interface{}) interface{}

	// ShouldSplit reports whether the adapter wants a fresh copy per call
	// site. Profiled adapters answer true so profiling counters are never
	// shared across call sites reusing the same compiled adapter.
	ShouldSplit() bool

	// Split produces a fresh, independently profiled copy sharing the same
	// context handle. Only meaningful when ShouldSplit is true.
	Split() Substitutor
}

// Base provides the default non-splitting behavior. Generated adapters embed
// it and override the pair only when profiler injection is present.
type Base struct{}

// ShouldSplit reports false: plain adapters carry no per-call-site state.
func (Base) ShouldSplit() bool { return false }

// Split returns nil; adapters that never split are shared as-is.
func (Base) Split() Substitutor { return nil }

// Factory creates adapter instances and carries the static metadata of the
// substituted method. One singleton factory exists per generated adapter.
type Factory interface {
	MethodName() string
	DeclaringType() string
	ReturnType() string
	ParameterTypes() []string
	HasReceiver() bool

	// Create instantiates the adapter bound to the shared context handle.
	Create(ctx *Context) Substitutor
}

// BaseFactory carries the static descriptor of one substituted method.
// Generated factory types embed it and add Create.
type BaseFactory struct {
	methodName     string
	declaringType  string
	returnType     string
	parameterTypes []string
	hasReceiver    bool
}

// NewBaseFactory builds the static descriptor stored in a generated factory.
func NewBaseFactory(methodName, declaringType, returnType string, parameterTypes []string, hasReceiver bool) BaseFactory {
	return BaseFactory{
		methodName:     methodName,
		declaringType:  declaringType,
		returnType:     returnType,
		parameterTypes: parameterTypes,
		hasReceiver:    hasReceiver,
	}
}

// MethodName returns the substituted method name.
func (f BaseFactory) MethodName() string { return f.methodName }

// DeclaringType returns the name of the type declaring the target method.
func (f BaseFactory) DeclaringType() string { return f.declaringType }

// ReturnType returns the declared return type name.
func (f BaseFactory) ReturnType() string { return f.returnType }

// ParameterTypes returns the declared parameter type names in order.
func (f BaseFactory) ParameterTypes() []string { return f.parameterTypes }

// HasReceiver reports whether the substituted guest method has a receiver.
func (f BaseFactory) HasReceiver() bool { return f.hasReceiver }

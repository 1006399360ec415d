package model

// ParamKind is the classification of one declared parameter.
type ParamKind int

const (
	// KindOrdinary is a positional call argument.
	KindOrdinary ParamKind = iota
	// KindStubRef is a stub reference bound at adapter construction.
	KindStubRef
	// KindContext is the shared runtime context injection.
	KindContext
	// KindProfiler is the per-call-site profiler injection.
	KindProfiler
)

func (k ParamKind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindStubRef:
		return "stub"
	case KindContext:
		return "context"
	case KindProfiler:
		return "profiler"
	}
	return "unknown"
}

// StubRef is a named handle to another guest method, resolved once at adapter
// construction and held for the adapter instance's lifetime.
type StubRef struct {
	// Name is the name the handle is exposed under as adapter state: the
	// explicit alias when one was supplied, the declared parameter name
	// otherwise.
	Name string
	// Param is the index of the declaring parameter.
	Param int
}

// Classification partitions the declared parameters of a target method.
// It is a pure derivation of the TargetMethod and never mutates it.
type Classification struct {
	// Kinds holds one entry per declared parameter, in declaration order.
	Kinds []ParamKind
	// Ordinary is the subsequence of positional parameters, order preserved.
	// It is exactly the sequence consumed from the generic argument array.
	Ordinary []Param
	// Stubs are the stub references in declaration order.
	Stubs []StubRef
	// HasContext is true iff at least one parameter carries the context marker.
	HasContext bool
	// HasProfiler is true iff at least one parameter carries the profiler marker.
	HasProfiler bool
	// DuplicateInjections lists injection kinds declared more than once.
	// The reference behavior does not reject this; callers surface it as a
	// warning and only one handle is threaded through.
	DuplicateInjections []Injection
}

// NeedsContextHandle reports whether the adapter stores the shared context
// handle: any injection implies it, since a split must reuse the handle.
func (c Classification) NeedsContextHandle() bool {
	return c.HasContext || c.HasProfiler
}

// Classify partitions the declared parameters of m into ordinary and special
// kinds. Re-computable at any time; the result is a pure function of m.
func Classify(m *TargetMethod) Classification {
	c := Classification{
		Kinds: make([]ParamKind, len(m.Params)),
	}
	contextCount, profilerCount := 0, 0

	for i, p := range m.Params {
		switch {
		case p.Stub:
			c.Kinds[i] = KindStubRef
			name := p.Alias
			if name == "" {
				name = p.Name
			}
			c.Stubs = append(c.Stubs, StubRef{Name: name, Param: i})
		case p.Inject == InjectContext:
			c.Kinds[i] = KindContext
			c.HasContext = true
			contextCount++
		case p.Inject == InjectProfiler:
			c.Kinds[i] = KindProfiler
			c.HasProfiler = true
			profilerCount++
		default:
			c.Kinds[i] = KindOrdinary
			c.Ordinary = append(c.Ordinary, p)
		}
	}

	if contextCount > 1 {
		c.DuplicateInjections = append(c.DuplicateInjections, InjectContext)
	}
	if profilerCount > 1 {
		c.DuplicateInjections = append(c.DuplicateInjections, InjectProfiler)
	}
	return c
}

package substitution

import "testing"

func TestContext_ResolveCall(t *testing.T) {
	ctx := NewContext()
	ctx.Register("enqueue", func(args ...interface{}) interface{} {
		return len(args)
	})

	h := ctx.ResolveCall("enqueue")
	if h.Name() != "enqueue" {
		t.Errorf("Name() = %q, want %q", h.Name(), "enqueue")
	}
	if got := h.Call(1, 2, 3); got != 3 {
		t.Errorf("Call() = %v, want 3", got)
	}
}

func TestContext_ResolveUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("resolving an unregistered name must panic")
		}
	}()
	NewContext().ResolveCall("missing")
}

func TestRef_IsNull(t *testing.T) {
	if !NullRef.IsNull() {
		t.Error("NullRef.IsNull() must be true")
	}
	r := &Ref{Value: 42}
	if r.IsNull() {
		t.Error("a live reference is not null")
	}
}

func TestProfiler(t *testing.T) {
	var p Profiler
	if p.Hits(0) != 0 {
		t.Error("fresh profiler must report zero hits")
	}

	p.Profile(0)
	p.Profile(0)
	p.Profile(3)

	if p.Hits(0) != 2 {
		t.Errorf("Hits(0) = %d, want 2", p.Hits(0))
	}
	if p.Hits(3) != 1 {
		t.Errorf("Hits(3) = %d, want 1", p.Hits(3))
	}
	if p.Hits(1) != 0 {
		t.Errorf("Hits(1) = %d, want 0", p.Hits(1))
	}
	if p.Hits(100) != 0 {
		t.Error("out-of-range site must report zero, not grow")
	}
}

func TestBase_Defaults(t *testing.T) {
	var b Base
	if b.ShouldSplit() {
		t.Error("plain adapters never split")
	}
	if b.Split() != nil {
		t.Error("Split() on a plain adapter is nil")
	}
}

func TestBaseFactory_Descriptor(t *testing.T) {
	f := NewBaseFactory("resolve", "MethodHandles", "*substitution.Ref",
		[]string{"*substitution.Ref", "int32"}, true)

	if f.MethodName() != "resolve" {
		t.Errorf("MethodName() = %q", f.MethodName())
	}
	if f.DeclaringType() != "MethodHandles" {
		t.Errorf("DeclaringType() = %q", f.DeclaringType())
	}
	if f.ReturnType() != "*substitution.Ref" {
		t.Errorf("ReturnType() = %q", f.ReturnType())
	}
	if len(f.ParameterTypes()) != 2 || f.ParameterTypes()[1] != "int32" {
		t.Errorf("ParameterTypes() = %v", f.ParameterTypes())
	}
	if !f.HasReceiver() {
		t.Error("HasReceiver() = false, want true")
	}
}

// sleepAdapter mirrors the shape of a generated adapter so the contract the
// generator relies on is exercised from the consuming side.
type sleepAdapter struct {
	Base

	ctx      *Context
	profiler Profiler
}

func (s *sleepAdapter) Invoke(args []interface{}) interface{} {
	nanos := args[0].(int64)
	s.profiler.Profile(0)
	_ = nanos
	return nil
}

func (s *sleepAdapter) ShouldSplit() bool { return true }

func (s *sleepAdapter) Split() Substitutor {
	return &sleepAdapter{ctx: s.ctx}
}

func TestGeneratedAdapterContract(t *testing.T) {
	ctx := NewContext()
	var a Substitutor = &sleepAdapter{ctx: ctx}

	if got := a.Invoke([]interface{}{int64(5)}); got != nil {
		t.Errorf("void Invoke() = %v, want nil", got)
	}
	if !a.ShouldSplit() {
		t.Fatal("profiled adapter must split")
	}

	clone := a.Split()
	if clone == nil {
		t.Fatal("Split() returned nil")
	}
	// The clone shares the context handle but carries fresh profiling state.
	orig := a.(*sleepAdapter)
	split := clone.(*sleepAdapter)
	if split.ctx != orig.ctx {
		t.Error("split must share the context handle")
	}
	if split.profiler.Hits(0) != 0 {
		t.Error("split must start with fresh profiling state")
	}
	if orig.profiler.Hits(0) != 1 {
		t.Error("original profiling state must be untouched by the split")
	}
}

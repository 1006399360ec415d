package model

import (
	"reflect"
	"testing"
)

func TestClassify_OrdinaryOnly(t *testing.T) {
	m := &TargetMethod{
		DeclaringType: "Math",
		Method:        "pow",
		Return:        "float64",
		Params: []Param{
			{Name: "base", Type: "float64"},
			{Name: "exp", Type: "float64"},
		},
	}

	cls := Classify(m)

	wantKinds := []ParamKind{KindOrdinary, KindOrdinary}
	if !reflect.DeepEqual(cls.Kinds, wantKinds) {
		t.Errorf("Kinds = %v, want %v", cls.Kinds, wantKinds)
	}
	if len(cls.Ordinary) != 2 {
		t.Fatalf("Ordinary count = %d, want 2", len(cls.Ordinary))
	}
	if cls.Ordinary[0].Name != "base" || cls.Ordinary[1].Name != "exp" {
		t.Error("Ordinary must preserve declaration order")
	}
	if cls.HasContext || cls.HasProfiler {
		t.Error("no injections declared, flags must be false")
	}
	if cls.NeedsContextHandle() {
		t.Error("NeedsContextHandle() must be false without injections")
	}
	if len(cls.Stubs) != 0 {
		t.Errorf("Stubs = %v, want none", cls.Stubs)
	}
}

func TestClassify_AllKinds(t *testing.T) {
	m := &TargetMethod{
		DeclaringType: "MethodHandles",
		Method:        "resolve",
		Return:        "*substitution.Ref",
		Params: []Param{
			{Name: "self", Type: "*substitution.Ref"},
			{Name: "lookup", Type: "*substitution.Ref", Stub: true},
			{Name: "count", Type: "int32"},
			{Name: "ctx", Type: "*substitution.Context", Inject: InjectContext},
			{Name: "prof", Type: "*substitution.Profiler", Inject: InjectProfiler},
		},
	}

	cls := Classify(m)

	wantKinds := []ParamKind{KindOrdinary, KindStubRef, KindOrdinary, KindContext, KindProfiler}
	if !reflect.DeepEqual(cls.Kinds, wantKinds) {
		t.Errorf("Kinds = %v, want %v", cls.Kinds, wantKinds)
	}
	// Ordinary is the subsequence consumed from the argument array, gaps closed.
	if len(cls.Ordinary) != 2 || cls.Ordinary[0].Name != "self" || cls.Ordinary[1].Name != "count" {
		t.Errorf("Ordinary = %v, want [self count]", cls.Ordinary)
	}
	if len(cls.Stubs) != 1 || cls.Stubs[0].Name != "lookup" || cls.Stubs[0].Param != 1 {
		t.Errorf("Stubs = %v, want [{lookup 1}]", cls.Stubs)
	}
	if !cls.HasContext || !cls.HasProfiler {
		t.Error("context and profiler flags must be set")
	}
	if !cls.NeedsContextHandle() {
		t.Error("NeedsContextHandle() must be true with injections")
	}
	if len(cls.DuplicateInjections) != 0 {
		t.Errorf("DuplicateInjections = %v, want none", cls.DuplicateInjections)
	}
}

func TestClassify_StubAliasOverridesName(t *testing.T) {
	m := &TargetMethod{
		DeclaringType: "Ref",
		Method:        "get",
		Return:        "interface{}",
		Params: []Param{
			{Name: "clear0", Type: "*substitution.Ref", Stub: true, Alias: "clear"},
			{Name: "enqueue", Type: "*substitution.Ref", Stub: true},
		},
	}

	cls := Classify(m)

	if len(cls.Stubs) != 2 {
		t.Fatalf("Stubs count = %d, want 2", len(cls.Stubs))
	}
	if cls.Stubs[0].Name != "clear" {
		t.Errorf("Stubs[0].Name = %q, want alias %q", cls.Stubs[0].Name, "clear")
	}
	if cls.Stubs[1].Name != "enqueue" {
		t.Errorf("Stubs[1].Name = %q, want declared name %q", cls.Stubs[1].Name, "enqueue")
	}
}

func TestClassify_DuplicateInjections(t *testing.T) {
	m := &TargetMethod{
		DeclaringType: "Unsafe",
		Method:        "park",
		Return:        "void",
		Params: []Param{
			{Name: "a", Type: "*substitution.Context", Inject: InjectContext},
			{Name: "b", Type: "*substitution.Context", Inject: InjectContext},
			{Name: "p", Type: "*substitution.Profiler", Inject: InjectProfiler},
		},
	}

	cls := Classify(m)

	// Duplicates are recorded, never rejected.
	if len(cls.DuplicateInjections) != 1 || cls.DuplicateInjections[0] != InjectContext {
		t.Errorf("DuplicateInjections = %v, want [context]", cls.DuplicateInjections)
	}
	if !cls.HasContext || !cls.HasProfiler {
		t.Error("flags must still be set with duplicates present")
	}
}

func TestClassify_ZeroParams(t *testing.T) {
	m := &TargetMethod{DeclaringType: "System", Method: "gc", Return: "void"}

	cls := Classify(m)

	if len(cls.Kinds) != 0 || len(cls.Ordinary) != 0 || len(cls.Stubs) != 0 {
		t.Error("zero-parameter method must classify to empty partitions")
	}
	if cls.NeedsContextHandle() {
		t.Error("zero-parameter method needs no context handle")
	}
}

func TestClassify_IsPure(t *testing.T) {
	m := &TargetMethod{
		DeclaringType: "Thread",
		Method:        "yield",
		Return:        "void",
		Params: []Param{
			{Name: "ctx", Type: "*substitution.Context", Inject: InjectContext},
		},
	}

	first := Classify(m)
	second := Classify(m)
	if !reflect.DeepEqual(first, second) {
		t.Error("Classify must be a pure function of the method")
	}
	if m.Params[0].Inject != InjectContext {
		t.Error("Classify must not mutate the method")
	}
}

func TestParamKindString(t *testing.T) {
	tests := []struct {
		kind ParamKind
		want string
	}{
		{KindOrdinary, "ordinary"},
		{KindStubRef, "stub"},
		{KindContext, "context"},
		{KindProfiler, "profiler"},
		{ParamKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ParamKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

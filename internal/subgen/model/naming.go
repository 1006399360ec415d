package model

import "strconv"

// AdapterName derives the deterministic name of the generated adapter type
// from the declaring type, method name, and parameter count.
//
// The scheme distinguishes overloads that differ in arity, but not overloads
// with identical arity and different parameter types: two such target methods
// collide onto the same identifier. The collision is not detected here; the
// driver checks the full set of derived names before emitting anything.
func AdapterName(declaringType, method string, paramCount int) string {
	return declaringType + "_" + method + "_" + strconv.Itoa(paramCount)
}

// AdapterNameFor derives the adapter name for a target method. The count
// covers ordinary parameters only: stub references and injected handles are
// adapter plumbing, not part of the substituted signature.
func AdapterNameFor(m *TargetMethod) string {
	n := 0
	for _, p := range m.Params {
		if !p.Stub && p.Inject == InjectNone {
			n++
		}
	}
	return AdapterName(m.DeclaringType, m.Method, n)
}

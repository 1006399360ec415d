// Package interop provides the null-check facility used by natively flavored
// substitutors. Generated code imports it only when an adapter may receive a
// sentinel null reference.
package interop

import "github.com/crucible-vm/crucible/pkg/substitution"

// NonNil maps an absent generic argument to the guest null reference. The
// generic calling convention cannot distinguish "absent object" from "typed
// null", so reference-typed parameters go through this substitution.
func NonNil(v interface{}) interface{} {
	if v == nil {
		return substitution.NullRef
	}
	return v
}

// IsNull reports whether v is absent or the guest null reference.
func IsNull(v interface{}) bool {
	if v == nil {
		return true
	}
	r, ok := v.(*substitution.Ref)
	return ok && r.IsNull()
}

package assemble

import (
	"fmt"

	"github.com/crucible-vm/crucible/internal/subgen/model"
)

// InteropImport is the null-check facility imported by natively flavored
// adapters that may receive sentinel null references.
const InteropImport = "github.com/crucible-vm/crucible/pkg/interop"

// Native ABI type names used in factory descriptors of the native flavor.
// Unlisted types are word-sized references.
const (
	nativeSint8  = "sint8"
	nativeSint16 = "sint16"
	nativeSint32 = "sint32"
	nativeSint64 = "sint64"
	nativeFloat  = "float"
	nativeDouble = "double"
	nativeString = "string"
	nativeVoid   = "void"
)

var nativeTypes = map[string]string{
	"bool":    nativeSint8,
	"int8":    nativeSint8,
	"byte":    nativeSint8,
	"int16":   nativeSint16,
	"uint16":  nativeSint16,
	"rune":    nativeSint32,
	"int32":   nativeSint32,
	"int64":   nativeSint64,
	"float32": nativeFloat,
	"float64": nativeDouble,
	"string":  nativeString,
	"void":    nativeVoid,
}

// NativeType returns the native ABI name for a declared type name.
func NativeType(typ string) string {
	if n, ok := nativeTypes[typ]; ok {
		return n
	}
	return nativeSint64
}

// NativeFlavor generates adapters for native method bindings. The generic
// calling convention at the native boundary cannot distinguish an absent
// object from a typed null, so guest reference parameters go through the
// interop null-sentinel substitution, and factory descriptors carry native
// ABI type names.
type NativeFlavor struct {
	// RefType is the guest reference type receiving the null sentinel.
	RefType string
}

// NewNativeFlavor creates the native binding flavor with the default guest
// reference type.
func NewNativeFlavor() *NativeFlavor {
	return &NativeFlavor{RefType: "*substitution.Ref"}
}

// Name identifies the flavor.
func (*NativeFlavor) Name() string { return "native" }

// Imports adds the interop package only when an ordinary parameter may
// receive a sentinel null reference.
func (f *NativeFlavor) Imports(_ *model.TargetMethod, cls model.Classification) []string {
	for _, p := range cls.Ordinary {
		if p.Type == f.RefType {
			return []string{InteropImport}
		}
	}
	return nil
}

// FactoryMeta encodes parameter and return types as native ABI names.
func (f *NativeFlavor) FactoryMeta(m *model.TargetMethod, cls model.Classification) FactoryMeta {
	types := make([]string, 0, len(cls.Ordinary))
	for _, p := range cls.Ordinary {
		types = append(types, NativeType(p.Type))
	}
	return FactoryMeta{
		MethodName:     m.Method,
		DeclaringType:  m.DeclaringType,
		ReturnType:     NativeType(m.Return),
		ParameterTypes: types,
		HasReceiver:    m.Receiver,
	}
}

// InvokeBody casts positional arguments, substituting the guest null for
// absent reference arguments, and forwards to the target method.
func (f *NativeFlavor) InvokeBody(m *model.TargetMethod, cls model.Classification) []string {
	lines := make([]string, 0, len(cls.Ordinary)+2)
	for i, p := range cls.Ordinary {
		if p.Type == f.RefType {
			lines = append(lines, fmt.Sprintf("arg%d := interop.NonNil(args[%d]).(%s)", i, i, p.Type))
		} else {
			lines = append(lines, castLine(i, p.Type))
		}
	}
	call := callExpr(m, cls)
	if m.Return == "void" {
		lines = append(lines, call, "return nil")
	} else {
		lines = append(lines, "return "+call)
	}
	return lines
}

package assemble

import (
	"fmt"

	"github.com/crucible-vm/crucible/internal/subgen/model"
)

// GuestFlavor generates adapters for guest-level substitutions: arguments
// arrive as typed guest values and are cast directly to the declared
// parameter types.
type GuestFlavor struct{}

// NewGuestFlavor creates the guest substitution flavor.
func NewGuestFlavor() *GuestFlavor { return &GuestFlavor{} }

// Name identifies the flavor.
func (*GuestFlavor) Name() string { return "guest" }

// Imports adds nothing beyond the fixed set.
func (*GuestFlavor) Imports(*model.TargetMethod, model.Classification) []string {
	return nil
}

// FactoryMeta stores the declared type names verbatim.
func (*GuestFlavor) FactoryMeta(m *model.TargetMethod, cls model.Classification) FactoryMeta {
	types := make([]string, 0, len(cls.Ordinary))
	for _, p := range cls.Ordinary {
		types = append(types, p.Type)
	}
	return FactoryMeta{
		MethodName:     m.Method,
		DeclaringType:  m.DeclaringType,
		ReturnType:     m.Return,
		ParameterTypes: types,
		HasReceiver:    m.Receiver,
	}
}

// InvokeBody casts each positional argument to its declared type and forwards
// to the target method.
func (*GuestFlavor) InvokeBody(m *model.TargetMethod, cls model.Classification) []string {
	lines := make([]string, 0, len(cls.Ordinary)+2)
	for i, p := range cls.Ordinary {
		lines = append(lines, castLine(i, p.Type))
	}
	call := callExpr(m, cls)
	if m.Return == "void" {
		lines = append(lines, call, "return nil")
	} else {
		lines = append(lines, "return "+call)
	}
	return lines
}

// castLine casts one positional argument. The empty interface needs no
// assertion.
func castLine(i int, typ string) string {
	if typ == "interface{}" {
		return fmt.Sprintf("arg%d := args[%d]", i, i)
	}
	return fmt.Sprintf("arg%d := args[%d].(%s)", i, i, typ)
}

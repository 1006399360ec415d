package errors

import "fmt"

// Generator error codes
const (
	// ErrNameCollision indicates two target methods derived the same identifier
	ErrNameCollision ErrorCode = "GEN601"
	// ErrEmitFailed indicates the output sink rejected an artifact
	ErrEmitFailed ErrorCode = "GEN602"
	// ErrStateViolation indicates driver use after commit
	ErrStateViolation ErrorCode = "GEN603"
	// ErrDuplicateInjection indicates more than one marker of the same injection kind
	ErrDuplicateInjection ErrorCode = "GEN604"
)

// Manifest error codes (MAN001-099)
const (
	// ErrManifestUnreadable indicates the manifest could not be read or decoded
	ErrManifestUnreadable ErrorCode = "MAN001"
	// ErrManifestVersion indicates an unsupported manifest version
	ErrManifestVersion ErrorCode = "MAN002"
	// ErrManifestTarget indicates an invalid target method entry
	ErrManifestTarget ErrorCode = "MAN003"
	// ErrManifestMarker indicates an invalid parameter marker
	ErrManifestMarker ErrorCode = "MAN004"
)

// NewNameCollision creates a GEN601 error
func NewNameCollision(method, identifier, firstClaimant string) *GenError {
	return newError(
		ErrNameCollision,
		CategoryNaming,
		SeverityError,
		method,
		fmt.Sprintf("derived identifier %q already claimed by %s", identifier, firstClaimant),
	).WithSuggestion("rename the method or change its arity; same-arity overloads share one identifier")
}

// NewEmitFailed creates a GEN602 warning
func NewEmitFailed(method, identifier string, cause error) *GenError {
	return newError(
		ErrEmitFailed,
		CategoryEmission,
		SeverityWarning,
		method,
		fmt.Sprintf("could not emit artifact %q: %v", identifier, cause),
	).WithSuggestion("the method was skipped; the registry does not reference it")
}

// NewStateViolation creates a GEN603 error
func NewStateViolation(op string) *GenError {
	return newError(
		ErrStateViolation,
		CategoryDriver,
		SeverityError,
		"",
		fmt.Sprintf("%s called on a committed generation pass", op),
	)
}

// NewDuplicateInjection creates a GEN604 warning
func NewDuplicateInjection(method, kind string) *GenError {
	return newError(
		ErrDuplicateInjection,
		CategoryClassification,
		SeverityWarning,
		method,
		fmt.Sprintf("more than one %s injection marker; only one handle is threaded through", kind),
	)
}

// NewManifestUnreadable creates a MAN001 error
func NewManifestUnreadable(cause error) *GenError {
	return newError(
		ErrManifestUnreadable,
		CategoryManifest,
		SeverityError,
		"",
		fmt.Sprintf("cannot read manifest: %v", cause),
	)
}

// NewManifestVersion creates a MAN002 error
func NewManifestVersion(got, want int) *GenError {
	return newError(
		ErrManifestVersion,
		CategoryManifest,
		SeverityError,
		"",
		fmt.Sprintf("unsupported manifest version %d (want %d)", got, want),
	)
}

// NewManifestTarget creates a MAN003 error
func NewManifestTarget(method, reason string) *GenError {
	return newError(
		ErrManifestTarget,
		CategoryManifest,
		SeverityError,
		method,
		reason,
	)
}

// NewManifestMarker creates a MAN004 error
func NewManifestMarker(method, param, reason string) *GenError {
	return newError(
		ErrManifestMarker,
		CategoryManifest,
		SeverityError,
		method,
		fmt.Sprintf("parameter %q: %s", param, reason),
	)
}

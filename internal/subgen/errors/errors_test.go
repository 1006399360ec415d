package errors

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestErrorCodeUniqueness(t *testing.T) {
	codes := make(map[ErrorCode]string)

	generatorCodes := []ErrorCode{
		ErrNameCollision, ErrEmitFailed, ErrStateViolation, ErrDuplicateInjection,
	}
	for _, code := range generatorCodes {
		if prev, exists := codes[code]; exists {
			t.Errorf("Duplicate error code %s (previously used for %s)", code, prev)
		}
		codes[code] = "generator"
	}

	manifestCodes := []ErrorCode{
		ErrManifestUnreadable, ErrManifestVersion, ErrManifestTarget, ErrManifestMarker,
	}
	for _, code := range manifestCodes {
		if prev, exists := codes[code]; exists {
			t.Errorf("Duplicate error code %s (previously used for %s)", code, prev)
		}
		codes[code] = "manifest"
	}
}

func TestGenError_Error(t *testing.T) {
	withMethod := NewNameCollision("Math.abs", "Math_abs_1", "Math.abs")
	if !strings.Contains(withMethod.Error(), "[GEN601] Math.abs:") {
		t.Errorf("Error() = %q, want code and method prefix", withMethod.Error())
	}

	withoutMethod := NewStateViolation("Process")
	if !strings.HasPrefix(withoutMethod.Error(), "[GEN603]") {
		t.Errorf("Error() = %q, want code prefix", withoutMethod.Error())
	}
	if strings.Contains(withoutMethod.Error(), "[GEN603] :") {
		t.Errorf("Error() = %q, empty method must not leave a dangling colon", withoutMethod.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *GenError
		code     ErrorCode
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"collision", NewNameCollision("A.m", "A_m_1", "A.m"), ErrNameCollision, CategoryNaming, SeverityError},
		{"emit failed", NewEmitFailed("A.m", "A_m_1", nil), ErrEmitFailed, CategoryEmission, SeverityWarning},
		{"state violation", NewStateViolation("Commit"), ErrStateViolation, CategoryDriver, SeverityError},
		{"duplicate injection", NewDuplicateInjection("A.m", "context"), ErrDuplicateInjection, CategoryClassification, SeverityWarning},
		{"manifest unreadable", NewManifestUnreadable(nil), ErrManifestUnreadable, CategoryManifest, SeverityError},
		{"manifest version", NewManifestVersion(2, 1), ErrManifestVersion, CategoryManifest, SeverityError},
		{"manifest target", NewManifestTarget("A.m", "bad"), ErrManifestTarget, CategoryManifest, SeverityError},
		{"manifest marker", NewManifestMarker("A.m", "x", "bad"), ErrManifestMarker, CategoryManifest, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.Category != tt.category {
				t.Errorf("Category = %s, want %s", tt.err.Category, tt.category)
			}
			if tt.err.Severity != tt.severity {
				t.Errorf("Severity = %s, want %s", tt.err.Severity, tt.severity)
			}
		})
	}
}

func TestList_HasErrorsAndCount(t *testing.T) {
	var empty List
	if empty.HasErrors() {
		t.Error("empty list has no errors")
	}

	l := List{
		NewEmitFailed("A.m", "A_m_1", nil),
		NewDuplicateInjection("A.m", "context"),
	}
	if l.HasErrors() {
		t.Error("warnings only, HasErrors must be false")
	}
	errs, warns := l.Count()
	if errs != 0 || warns != 2 {
		t.Errorf("Count() = (%d, %d), want (0, 2)", errs, warns)
	}

	l = append(l, NewNameCollision("B.n", "B_n_0", "A.m"))
	if !l.HasErrors() {
		t.Error("list with an error-severity entry must report errors")
	}
	errs, warns = l.Count()
	if errs != 1 || warns != 2 {
		t.Errorf("Count() = (%d, %d), want (1, 2)", errs, warns)
	}
}

func TestList_Error(t *testing.T) {
	var empty List
	if empty.Error() != "no diagnostics" {
		t.Errorf("empty List.Error() = %q", empty.Error())
	}

	one := List{NewStateViolation("Commit")}
	if one.Error() != one[0].Error() {
		t.Errorf("single-entry List.Error() = %q", one.Error())
	}

	many := List{NewStateViolation("Commit"), NewStateViolation("Process")}
	if !strings.Contains(many.Error(), "and 1 more") {
		t.Errorf("multi-entry List.Error() = %q", many.Error())
	}
}

func TestList_ToJSON(t *testing.T) {
	l := List{NewNameCollision("Math.abs", "Math_abs_1", "Math.abs")}
	out, err := l.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(decoded))
	}
	if decoded[0]["code"] != "GEN601" {
		t.Errorf("code = %v, want GEN601", decoded[0]["code"])
	}
	if decoded[0]["severity"] != "error" {
		t.Errorf("severity = %v, want error", decoded[0]["severity"])
	}
	if _, ok := decoded[0]["suggestion"]; !ok {
		t.Error("collision diagnostic should carry a suggestion")
	}
}

func TestWithSuggestion(t *testing.T) {
	e := NewStateViolation("Process").WithSuggestion("commit once")
	if e.Suggestion != "commit once" {
		t.Errorf("Suggestion = %q", e.Suggestion)
	}
}

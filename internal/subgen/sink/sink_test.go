package sink

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFSSink_WritesSnakeCasedFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSSink(filepath.Join(dir, "build", "substitutions"))
	if err != nil {
		t.Fatalf("NewFSSink() error = %v", err)
	}

	if err := s.Create("MethodHandles_resolve_2", "package substitutions\n"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	path := filepath.Join(s.Dir(), "method_handles_resolve_2.go")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected artifact at %s: %v", path, err)
	}
	if string(data) != "package substitutions\n" {
		t.Errorf("artifact content = %q", string(data))
	}
}

func TestFSSink_LastWriteWinsByDefault(t *testing.T) {
	s, err := NewFSSink(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSSink() error = %v", err)
	}

	if err := s.Create("Math_abs_1", "first"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create("Math_abs_1", "second"); err != nil {
		t.Fatalf("duplicate Create() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), "math_abs_1.go"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want last write", string(data))
	}
}

func TestFSSink_ExclusiveRejectsDuplicates(t *testing.T) {
	s, err := NewFSSink(t.TempDir(), Exclusive())
	if err != nil {
		t.Fatalf("NewFSSink() error = %v", err)
	}

	if err := s.Create("Math_abs_1", "first"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create("Math_abs_1", "second"); err == nil {
		t.Error("exclusive sink must reject the duplicate create")
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), "math_abs_1.go"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Errorf("content = %q, want the first write preserved", string(data))
	}
}

func TestFSSink_CreateFailureReported(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSSink(dir)
	if err != nil {
		t.Fatalf("NewFSSink() error = %v", err)
	}
	// Make the directory unwritable so the write itself fails.
	if err := os.Chmod(dir, 0500); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(dir, 0755)

	if err := s.Create("Math_abs_1", "content"); err == nil {
		t.Skip("running as a user unaffected by directory permissions")
	}
}

func TestMemSink_PreservesOrder(t *testing.T) {
	s := NewMemSink()
	s.Create("b", "1")
	s.Create("a", "2")
	s.Create("c", "3")

	want := []string{"b", "a", "c"}
	if len(s.Order) != len(want) {
		t.Fatalf("Order = %v, want %v", s.Order, want)
	}
	for i := range want {
		if s.Order[i] != want[i] {
			t.Errorf("Order[%d] = %q, want %q", i, s.Order[i], want[i])
		}
	}
}

func TestMemSink_OverwriteKeepsPosition(t *testing.T) {
	s := NewMemSink()
	s.Create("a", "1")
	s.Create("b", "2")
	s.Create("a", "3")

	if len(s.Order) != 2 || s.Order[0] != "a" || s.Order[1] != "b" {
		t.Errorf("Order = %v, want [a b]", s.Order)
	}
	if s.Contents["a"] != "3" {
		t.Errorf("Contents[a] = %q, want last write", s.Contents["a"])
	}
}

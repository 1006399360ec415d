// Package sink writes generated artifacts to named output slots. The sink is
// the only external resource of a generation pass; every create is a single
// blocking write scoped so a failure never leaves a dangling handle.
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	stringsutil "github.com/crucible-vm/crucible/internal/util/strings"
)

// Sink receives generated artifacts keyed by identifier. Create may fail;
// such failure is non-fatal to the pass and is reported per artifact.
type Sink interface {
	// Create writes one artifact. The namespace is append-once per pass when
	// the sink enforces exclusivity; otherwise a later create with the same
	// name silently replaces the earlier one.
	Create(name, content string) error
}

// FSSink writes artifacts into a directory of a build tree, one file per
// artifact, named by the snake-cased identifier.
type FSSink struct {
	dir       string
	exclusive bool
	created   map[string]bool
}

// Option configures an FSSink.
type Option func(*FSSink)

// Exclusive makes duplicate creates within one pass fail instead of
// overwriting. The legacy behavior is last-write-wins.
func Exclusive() Option {
	return func(s *FSSink) { s.exclusive = true }
}

// NewFSSink creates a sink rooted at dir, creating it if needed.
func NewFSSink(dir string, opts ...Option) (*FSSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("sink: create output dir: %w", err)
	}
	s := &FSSink{dir: dir, created: make(map[string]bool)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the output directory.
func (s *FSSink) Dir() string { return s.dir }

// Create writes the artifact to <dir>/<snake_case_name>.go.
func (s *FSSink) Create(name, content string) error {
	if s.exclusive && s.created[name] {
		return fmt.Errorf("sink: artifact %q already created in this pass", name)
	}
	path := filepath.Join(s.dir, stringsutil.ArtifactFileName(name))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	s.created[name] = true
	return nil
}

// MemSink collects artifacts in memory, preserving creation order. Used in
// tests and by callers that post-process artifacts themselves.
type MemSink struct {
	Order    []string
	Contents map[string]string
}

// NewMemSink creates an empty in-memory sink.
func NewMemSink() *MemSink {
	return &MemSink{Contents: make(map[string]string)}
}

// Create stores the artifact. Duplicate names overwrite, keeping the original
// position in Order, matching the legacy last-write-wins cascade.
func (s *MemSink) Create(name, content string) error {
	if _, ok := s.Contents[name]; !ok {
		s.Order = append(s.Order, name)
	}
	s.Contents[name] = content
	return nil
}

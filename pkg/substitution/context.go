package substitution

import "fmt"

// Ref is an opaque guest object reference.
type Ref struct {
	// Value carries whatever representation the runtime gives guest objects.
	Value interface{}
}

// NullRef is the typed guest null. The generic calling convention passes nil
// for an absent object; adapters that accept guest references substitute
// NullRef so the target method always sees a typed reference.
var NullRef = &Ref{}

// IsNull reports whether r is the guest null reference.
func (r *Ref) IsNull() bool { return r == NullRef }

// CallHandle is a call target bound once at adapter construction and reused
// for the adapter instance's lifetime.
type CallHandle struct {
	name string
	fn   func(args ...interface{}) interface{}
}

// Name returns the guest method name the handle is bound to.
func (h *CallHandle) Name() string { return h.name }

// Call invokes the bound guest method.
func (h *CallHandle) Call(args ...interface{}) interface{} {
	return h.fn(args...)
}

// Context is the shared dependency handle made available to adapters that
// need it, passed in at construction. It resolves named guest methods into
// bound call handles.
type Context struct {
	calls map[string]func(args ...interface{}) interface{}
}

// NewContext creates an empty context handle.
func NewContext() *Context {
	return &Context{calls: make(map[string]func(args ...interface{}) interface{})}
}

// Register binds a guest method implementation under name.
func (c *Context) Register(name string, fn func(args ...interface{}) interface{}) {
	c.calls[name] = fn
}

// ResolveCall returns a bound handle for name. Resolution happens once per
// adapter instance; an unknown name is a wiring bug in the runtime image.
func (c *Context) ResolveCall(name string) *CallHandle {
	fn, ok := c.calls[name]
	if !ok {
		panic(fmt.Sprintf("substitution: no guest method registered under %q", name))
	}
	return &CallHandle{name: name, fn: fn}
}

// Profiler counts per-call-site invocation profiles. Each split adapter owns
// its own Profiler; counters are never shared across call sites.
type Profiler struct {
	hits []uint64
}

// Profile bumps the counter for the given profile site.
func (p *Profiler) Profile(site int) {
	for len(p.hits) <= site {
		p.hits = append(p.hits, 0)
	}
	p.hits[site]++
}

// Hits returns the counter for the given profile site.
func (p *Profiler) Hits(site int) uint64 {
	if site >= len(p.hits) {
		return 0
	}
	return p.hits[site]
}

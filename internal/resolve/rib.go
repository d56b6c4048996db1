package resolve

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
)

// RibKind distinguishes the crate-root frame, a module-bound frame, and a
// plain lexical frame: a plain lexical frame and the crate-root frame need
// telling apart from an ordinary mod-bound frame so that HIR lowering's
// owner stack can decide whether `self` is in scope
// without re-deriving it from the rib's bound module each time).
type RibKind uint8

const (
	RibRaw RibKind = iota
	RibRoot
	RibMod
)

// Rib is one lexical-scope frame pushed by the resolver.
// locals maps a symbol's textual spelling to the NodeId of the pattern
// that introduced it (IdentPat nodes double as their own local id).
// localBinding pairs a local's NodeId with the span that introduced it, so
// a duplicate-local diagnostic can point back at the first occurrence.
type localBinding struct {
	Node ast.NodeId
	Span source.Span
}

type Rib struct {
	Kind        RibKind
	locals      map[string]localBinding
	BoundModule *ModuleId // non-nil when this rib also contributes a module's namespace into lexical scope
}

func newRib(kind RibKind, boundModule *ModuleId) *Rib {
	return &Rib{Kind: kind, locals: make(map[string]localBinding), BoundModule: boundModule}
}

// Bind introduces name as a local bound to node, first seen at span. It
// reports a collision (a duplicate local within the same rib is reported
// with the prior definition's span) by returning the prior span and false.
func (r *Rib) Bind(name string, node ast.NodeId, span source.Span) (source.Span, bool) {
	if prev, exists := r.locals[name]; exists {
		return prev.Span, false
	}
	r.locals[name] = localBinding{Node: node, Span: span}
	return source.Span{}, true
}

// Lookup finds name among this rib's locals only.
func (r *Rib) Lookup(name string) (ast.NodeId, bool) {
	b, ok := r.locals[name]
	return b.Node, ok
}

// Stack is the resolver's rib stack: ribs are pushed on scope entry and
// popped in reverse order on exit, walked innermost-first on lookup.
type Stack struct {
	frames []*Rib
}

// Push opens a new rib of kind, optionally bound to a module, and returns
// it so the caller can bind locals into it directly.
func (s *Stack) Push(kind RibKind, boundModule *ModuleId) *Rib {
	r := newRib(kind, boundModule)
	s.frames = append(s.frames, r)
	return r
}

// Pop closes the innermost rib. Callers must pop in the reverse order
// they pushed.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// LookupLocal walks the stack innermost-first, returning the first local
// binding found for name. A rib's BoundModule (if any) is consulted by
// PathResolver directly, in the same innermost-first order, once this
// comes up empty.
func (s *Stack) LookupLocal(name string) (ast.NodeId, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if node, ok := s.frames[i].Lookup(name); ok {
			return node, true
		}
	}
	return ast.DummyNodeId, false
}

// Current returns the innermost rib, or nil if the stack is empty.
func (s *Stack) Current() *Rib {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Frames returns the rib stack innermost-first, for PathResolver's
// per-rib interleaved walk (locals, then bound module, at each frame
// before moving outward).
func (s *Stack) Frames() []*Rib {
	out := make([]*Rib, len(s.frames))
	for i, r := range s.frames {
		out[len(s.frames)-1-i] = r
	}
	return out
}

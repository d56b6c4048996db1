package resolve

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// Mode parameterizes PathResolver's single routine.
type Mode uint8

const (
	// ModeSpecific expects the final segment to bind in the requested
	// namespace; an overloaded function resolves via callSuffix if given,
	// or is returned as a bare FOSId otherwise.
	ModeSpecific Mode = iota
	// ModeDescend is used for `use`-tree prefix resolution: the final
	// segment may itself be a module, and the result reports which.
	ModeDescend
)

// FailureKind enumerates the PathResolver failure classes.
type FailureKind uint8

const (
	FailCannotFind FailureKind = iota
	FailInaccessible
	FailWrongNamespace
	FailAmbiguous
)

// Failure carries enough detail for the caller to build a diagnostic.
type Failure struct {
	Kind    FailureKind
	AltDefs []DefId // populated for FailWrongNamespace
}

// Result is the outcome of a single PathResolver.Resolve call.
type Result struct {
	Res      Res
	Module   ModuleId
	ModuleOK bool // true when Res names a definition that also scopes Module
	Failure  *Failure
}

// Segment is one path segment's textual name and span, extracted from
// either ast.Path (expression/type position, generics-bearing) or
// ast.SimplePath (use-trees and mod paths) so the resolution core below
// never needs to know which syntax produced it.
type Segment struct {
	Name string
	Span source.Span
}

// SegmentsOfPath extracts Segments from a generics-bearing Path.
func SegmentsOfPath(p ast.Path) (bool, []Segment) {
	segs := make([]Segment, len(p.Segments))
	for i, s := range p.Segments {
		segs[i] = Segment{Name: symbol.Get(s.Name.Sym), Span: s.Name.Span()}
	}
	return p.Absolute, segs
}

// SegmentsOfSimplePath extracts Segments from a SimplePath (`use` trees,
// `mod` paths).
func SegmentsOfSimplePath(p ast.SimplePath) (bool, []Segment) {
	segs := make([]Segment, len(p.Segments))
	for i, s := range p.Segments {
		segs[i] = Segment{Name: symbol.Get(s.Name.Sym), Span: s.Name.Span()}
	}
	return p.Absolute, segs
}

// PathResolver resolves a path against a starting module and a target
// namespace.
type PathResolver struct {
	Tree *Tree
	Defs *Table
}

// NewPathResolver returns a PathResolver over tree/defs.
func NewPathResolver(tree *Tree, defs *Table) *PathResolver {
	return &PathResolver{Tree: tree, Defs: defs}
}

func fail(kind FailureKind, alt ...DefId) Result {
	return Result{Failure: &Failure{Kind: kind, AltDefs: alt}}
}

// Resolve resolves segs (already absolute-flagged) in namespace ns using
// mode, starting lexical/ascent search at startModule. ribs is nil for
// ModeDescend;
// callSuffix, if non-empty, disambiguates a final-segment function
// overload set.
func (pr *PathResolver) Resolve(segs []Segment, absolute bool, ns Namespace, mode Mode, startModule ModuleId, ribs *Stack, callSuffix string) Result {
	if len(segs) == 0 {
		return fail(FailCannotFind)
	}

	curModule := startModule
	next := 0

	if absolute {
		curModule = pr.Tree.Root
	} else {
		switch segs[0].Name {
		case "party":
			curModule = pr.Tree.Root
			next = 1
		case "super":
			parent, ok := pr.ascendSuper(startModule)
			if !ok {
				return fail(FailCannotFind)
			}
			curModule = parent
			next = 1
		default:
			if res, ok := pr.resolveFirstLexical(segs, ns, mode, startModule, ribs, callSuffix); ok {
				return res
			}
			var found bool
			firstNs := ns
			if len(segs) > 1 {
				firstNs = NsType
			}
			curModule, found = pr.ascendToFirstHit(segs[0], firstNs, startModule)
			if !found {
				return pr.primitiveFallback(segs, ns, startModule)
			}
			next = 1
		}
	}

	return pr.descend(segs, next, ns, mode, curModule, startModule, callSuffix)
}

// resolveFirstLexical performs the lexical (rib-stack) half of first-
// segment lookup: at each rib, innermost first, check locals (only
// meaningful for a single-segment Value-namespace path), then the rib's
// bound module, stopping at the first hit.
func (pr *PathResolver) resolveFirstLexical(segs []Segment, ns Namespace, mode Mode, startModule ModuleId, ribs *Stack, callSuffix string) (Result, bool) {
	if ribs == nil {
		return Result{}, false
	}
	first := segs[0]
	for _, rib := range ribs.Frames() {
		if len(segs) == 1 && ns == NsValue {
			if node, ok := rib.Lookup(first.Name); ok {
				return Result{Res: LocalRes(node)}, true
			}
		}
		if rib.BoundModule != nil {
			if binding, ok := pr.Tree.Get(*rib.BoundModule).Lookup(ns, first.Name); ok {
				if len(segs) == 1 {
					return pr.finish(binding, mode, ns, callSuffix), true
				}
				return pr.descend(segs, 1, ns, mode, *rib.BoundModule, startModule, callSuffix), true
			}
		}
	}
	return Result{}, false
}

// ascendToFirstHit ascends the module tree from startModule looking up
// seg in ns, stopping at the first module containing a binding.
func (pr *PathResolver) ascendToFirstHit(seg Segment, ns Namespace, startModule ModuleId) (ModuleId, bool) {
	mod := startModule
	for {
		if _, ok := pr.Tree.Get(mod).Lookup(ns, seg.Name); ok {
			return mod, true
		}
		if mod == pr.Tree.Root {
			return 0, false
		}
		parent := pr.Tree.Get(mod).Parent
		if parent == NoModule {
			return 0, false
		}
		mod = parent
	}
}

// primitiveFallback applies the last fallback rule: a single-segment
// Type-namespace name that spells a primitive resolves to it, unless
// shadowed somewhere along the ascent from startModule.
func (pr *PathResolver) primitiveFallback(segs []Segment, ns Namespace, startModule ModuleId) Result {
	if ns != NsType || len(segs) != 1 {
		return fail(FailCannotFind)
	}
	prim, ok := LookupPrimType(segs[0].Name)
	if !ok {
		return fail(FailCannotFind)
	}
	mod := startModule
	for {
		if pr.Tree.Get(mod).ShadowsPrim(prim) {
			return fail(FailCannotFind)
		}
		if mod == pr.Tree.Root {
			break
		}
		parent := pr.Tree.Get(mod).Parent
		if parent == NoModule {
			break
		}
		mod = parent
	}
	return Result{Res: PrimRes(prim)}
}

// ascendSuper hops from startModule's nearest enclosing `mod` to that
// mod's own parent module.
func (pr *PathResolver) ascendSuper(startModule ModuleId) (ModuleId, bool) {
	nearestModModule, ok := pr.Tree.ModuleOf(pr.Tree.Get(startModule).NearestModDef)
	if !ok {
		return 0, false
	}
	parent := pr.Tree.Get(nearestModModule).Parent
	if parent == NoModule {
		return 0, false
	}
	return parent, true
}

// descend resolves segs[next:] strictly inside curModule (no further
// ascent): for non-first segments, look up only inside the prior
// segment's resolved module.
func (pr *PathResolver) descend(segs []Segment, next int, ns Namespace, mode Mode, curModule, startModule ModuleId, callSuffix string) Result {
	for ; next < len(segs); next++ {
		seg := segs[next]
		last := next == len(segs)-1

		wantNs := ns
		if !last {
			wantNs = NsType
		}

		binding, ok := pr.Tree.Get(curModule).Lookup(wantNs, seg.Name)
		if !ok {
			if alt, found := pr.lookupOtherNamespaces(curModule, wantNs, seg.Name); found {
				return fail(FailWrongNamespace, alt...)
			}
			return fail(FailCannotFind)
		}

		declModule := curModule
		if !pr.Tree.VisibleFrom(pr.visOf(binding), declModule, startModule) {
			return fail(FailInaccessible)
		}

		if last {
			return pr.finish(binding, mode, ns, callSuffix)
		}

		nextModule, ok := pr.Tree.ModuleOf(pr.Defs.UnwindDefId(binding.Def))
		if !ok {
			return fail(FailCannotFind)
		}
		curModule = nextModule
	}
	return fail(FailCannotFind)
}

// finish turns a located binding into a Result, applying the function-
// overload-set disambiguation rule and, for ModeDescend,
// reporting the Module the resolved definition scopes (if any).
func (pr *PathResolver) finish(binding NameBinding, mode Mode, ns Namespace, callSuffix string) Result {
	if binding.Kind == BindFOS {
		if callSuffix != "" {
			if defId, ok := pr.Defs.LookupSuffix(binding.FOS, callSuffix); ok {
				return pr.finishDef(pr.Defs.UnwindDefId(defId), mode)
			}
			return fail(FailCannotFind)
		}
		return Result{Res: FOSRes(binding.FOS)}
	}
	return pr.finishDef(pr.Defs.UnwindDefId(binding.Def), mode)
}

func (pr *PathResolver) finishDef(defId DefId, mode Mode) Result {
	res := Result{Res: DefRes(defId)}
	if mode == ModeDescend {
		if modId, ok := pr.Tree.ModuleOf(defId); ok {
			res.Module = modId
			res.ModuleOK = true
		}
	}
	return res
}

// visOf returns the declared visibility backing binding, unwinding an
// import alias to the original definition's visibility.
func (pr *PathResolver) visOf(binding NameBinding) ast.Vis {
	if binding.Kind == BindFOS {
		// Overload sets are visible if any member is; a conservative,
		// simple choice documented in DESIGN.md rather than per-suffix
		// visibility tracking.
		for _, defId := range pr.Defs.FOS(binding.FOS) {
			if pr.Defs.Vis(defId) == ast.VisPub {
				return ast.VisPub
			}
		}
		return ast.VisUnset
	}
	return pr.Defs.Vis(pr.Defs.UnwindDefId(binding.Def))
}

// lookupOtherNamespaces checks the remaining namespaces for name in mod,
// to back a FailWrongNamespace diagnostic's "did you mean" suggestion.
func (pr *PathResolver) lookupOtherNamespaces(mod ModuleId, exclude Namespace, name string) ([]DefId, bool) {
	var alt []DefId
	for ns := Namespace(0); ns < nsCount; ns++ {
		if ns == exclude {
			continue
		}
		if binding, ok := pr.Tree.Get(mod).Lookup(ns, name); ok && binding.Kind == BindDef {
			alt = append(alt, binding.Def)
		}
	}
	return alt, len(alt) > 0
}

package resolve

import "github.com/vellum-lang/vellum/internal/ast"

// ModuleId indexes the module arena.
type ModuleId int32

// NoModule is the sentinel "no parent" ModuleId, standing in for
// Option<ModuleId>::None.
const NoModule ModuleId = -1

// ModuleKind distinguishes a Def-backed module (an item that introduces a
// scope: the root, a mod, a struct/enum/trait/impl, a func/init) from a
// Block-backed one.
type ModuleKind uint8

const (
	ModuleDef ModuleKind = iota
	ModuleBlock
)

// BindingKind tags which half of NameBinding's union is populated.
type BindingKind uint8

const (
	BindDef BindingKind = iota
	BindFOS
)

// NameBinding is what a module's namespace map stores: either a DefId
// (any non-function definition) or an FOSId (function overload set) —
// never both.
type NameBinding struct {
	Kind BindingKind
	Def  DefId
	FOS  FOSId
}

// Module is one namespace scope.
type Module struct {
	Kind   ModuleKind
	NodeID ast.NodeId // valid when Kind == ModuleBlock
	DefID  DefId       // valid when Kind == ModuleDef

	Parent        ModuleId
	NearestModDef DefId // the nearest enclosing `mod` (or the crate root)

	bindings [nsCount]map[string]NameBinding // keyed by the identifier's string, not Symbol, so textual primitive names compare directly

	ShadowedPrims PrimType
}

func newModule(kind ModuleKind, nodeID ast.NodeId, defID DefId, parent ModuleId, nearestModDef DefId) Module {
	m := Module{Kind: kind, NodeID: nodeID, DefID: defID, Parent: parent, NearestModDef: nearestModDef}
	for ns := range m.bindings {
		m.bindings[ns] = make(map[string]NameBinding)
	}
	return m
}

// Bind inserts binding under (ns, name). If a binding already occupies
// that slot it is returned unchanged alongside ok=false so the caller can
// report a redefinition; the Module Tree Builder is responsible for the
// one exception (compatible FOS additions), which it handles by looking
// up the existing FOS binding itself rather than calling Bind again.
func (m *Module) Bind(ns Namespace, name string, binding NameBinding) (NameBinding, bool) {
	if prev, exists := m.bindings[ns][name]; exists {
		return prev, false
	}
	m.bindings[ns][name] = binding
	return NameBinding{}, true
}

// Lookup finds a binding for name in ns within this module only (no
// ascent to parents — that is PathResolver's job).
func (m *Module) Lookup(ns Namespace, name string) (NameBinding, bool) {
	b, ok := m.bindings[ns][name]
	return b, ok
}

// Names enumerates every binding in ns, for `use path::*` expansion.
func (m *Module) Names(ns Namespace) map[string]NameBinding {
	return m.bindings[ns]
}

// ShadowsPrim reports whether name has been rebound by a user type in
// this module, per the ShadowedPrims bitset.
func (m *Module) ShadowsPrim(p PrimType) bool { return m.ShadowedPrims&p != 0 }

// Tree is the arena owning every Module, indexed by ModuleId.
type Tree struct {
	modules   []Module
	Root      ModuleId
	defModule map[DefId]ModuleId // DefId -> the Module it scopes, for path descent
}

// NewTree allocates the arena with the party-root module pre-registered
// at index 0, backed by RootDefId.
func NewTree() *Tree {
	t := &Tree{defModule: make(map[DefId]ModuleId)}
	root := newModule(ModuleDef, ast.DummyNodeId, RootDefId, NoModule, RootDefId)
	t.modules = append(t.modules, root)
	t.Root = 0
	t.defModule[RootDefId] = t.Root
	return t
}

// NewDefModule allocates a Def-kind module and returns its id.
func (t *Tree) NewDefModule(defID DefId, parent ModuleId, nearestModDef DefId) ModuleId {
	id := ModuleId(len(t.modules))
	t.modules = append(t.modules, newModule(ModuleDef, ast.DummyNodeId, defID, parent, nearestModDef))
	t.defModule[defID] = id
	return id
}

// ModuleOf returns the Module that defID scopes (if it scopes one at
// all — leaf definitions like Const or Variant do not), used by
// PathResolver to descend into a multi-segment path.
func (t *Tree) ModuleOf(defID DefId) (ModuleId, bool) {
	id, ok := t.defModule[defID]
	return id, ok
}

// NewBlockModule allocates a Block-kind module and returns its id.
func (t *Tree) NewBlockModule(nodeID ast.NodeId, parent ModuleId, nearestModDef DefId) ModuleId {
	id := ModuleId(len(t.modules))
	t.modules = append(t.modules, newModule(ModuleBlock, nodeID, 0, parent, nearestModDef))
	return id
}

// Get returns a mutable pointer to the module at id. Out-of-range access
// is an ICE: every ModuleId in circulation came from this tree.
func (t *Tree) Get(id ModuleId) *Module {
	if int(id) < 0 || int(id) >= len(t.modules) {
		panic("resolve: ModuleTree.Get called with unknown ModuleId")
	}
	return &t.modules[id]
}

// Len reports how many modules exist.
func (t *Tree) Len() int { return len(t.modules) }

// VisibleFrom reports whether a binding with visibility vis, declared in
// declaringModule, is visible to code resolving from fromModule: a
// non-pub binding is accessible only to modules inside the same
// nearest `mod` definition.
// declaringModule, is visible to code resolving from fromModule.
func (t *Tree) VisibleFrom(vis ast.Vis, declaringModule, fromModule ModuleId) bool {
	if vis == ast.VisPub {
		return true
	}
	return t.Get(declaringModule).NearestModDef == t.Get(fromModule).NearestModDef
}

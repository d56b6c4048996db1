// Package resolve implements the module tree, the definition table, the
// importer, and the name resolver: the name-space model that sits
// between parsing and HIR lowering.
package resolve

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// DefId is a dense index into the definition table. The crate
// root is pre-allocated at index 0.
type DefId uint32

// RootDefId is the pre-allocated DefId of the party root module.
const RootDefId DefId = 0

// DefKind enumerates the kinds of definition the table can hold.
type DefKind uint8

const (
	DefConst DefKind = iota
	DefConstParam
	DefEnum
	DefFunc
	DefImpl
	DefImportAlias
	DefInit
	DefLifetime
	DefMod
	DefStruct
	DefTrait
	DefTypeAlias
	DefTypeParam
	DefVariant
	DefDefaultInit
)

// Def is one entry of the definition table: its id, kind and name. The
// table keeps the ancillary per-Def maps alongside it.
type Def struct {
	Id    DefId
	Kind  DefKind
	Ident symbol.Symbol
}

// Table is the definition table: one Def per DefId, plus the ancillary
// maps it keeps alongside (visibility, originating NodeId, the reverse
// NodeId→DefId map, name span) and the function-overload-set storage,
// a flat list of per-overload-set maps.
//
// getDef is made total by panicking on an out-of-range id (an internal
// consistency failure) rather than returning a zero Def silently.
type Table struct {
	defs          []Def
	vis           []ast.Vis
	originNode    []ast.NodeId
	nameSpan      []source.Span
	nodeToDef     map[ast.NodeId]DefId
	importAliases map[DefId]DefId // ImportAlias DefId -> target DefId (one hop)

	fosSets []map[string]DefId // FOSId -> suffix -> DefId
}

// NewTable returns a Table with the crate root pre-allocated at
// RootDefId: DefId 0 is always the crate root.
func NewTable() *Table {
	t := &Table{
		nodeToDef:     make(map[ast.NodeId]DefId),
		importAliases: make(map[DefId]DefId),
	}
	root := t.Define(ast.VisPub, ast.DummyNodeId, DefMod, symbol.FromKw(symbol.KwRoot))
	if root != RootDefId {
		panic("resolve: crate root did not receive DefId 0")
	}
	return t
}

// Define allocates a fresh DefId for (kind, ident), originating at node,
// with initial visibility vis. It never fails; redefinition detection is
// the Module Tree Builder's job, not the table's.
func (t *Table) Define(vis ast.Vis, node ast.NodeId, kind DefKind, ident symbol.Symbol) DefId {
	id := DefId(len(t.defs))
	t.defs = append(t.defs, Def{Id: id, Kind: kind, Ident: ident})
	t.vis = append(t.vis, vis)
	t.originNode = append(t.originNode, node)
	t.nameSpan = append(t.nameSpan, source.Dummy)
	if node != ast.DummyNodeId {
		t.nodeToDef[node] = id
	}
	return id
}

// SetNameSpan records the span of id's name-introducing token, used by
// diagnostics that point back at "previous definition here".
func (t *Table) SetNameSpan(id DefId, sp source.Span) {
	t.mustExist(id)
	t.nameSpan[id] = sp
}

// NameSpan returns the span recorded by SetNameSpan, or source.Dummy if
// none was ever set.
func (t *Table) NameSpan(id DefId) source.Span {
	t.mustExist(id)
	return t.nameSpan[id]
}

// GetDef returns the Def at id. Out-of-range access is an internal
// compiler error: every DefId a caller holds must have come from Define.
func (t *Table) GetDef(id DefId) Def {
	t.mustExist(id)
	return t.defs[id]
}

// Vis returns id's declared visibility.
func (t *Table) Vis(id DefId) ast.Vis {
	t.mustExist(id)
	return t.vis[id]
}

// OriginNode returns the NodeId that produced id, or DummyNodeId for
// synthetic definitions (the crate root, default inits).
func (t *Table) OriginNode(id DefId) ast.NodeId {
	t.mustExist(id)
	return t.originNode[id]
}

// DefOf is the reverse of OriginNode: the DefId a given NodeId produced,
// if any.
func (t *Table) DefOf(node ast.NodeId) (DefId, bool) {
	id, ok := t.nodeToDef[node]
	return id, ok
}

// Len reports how many definitions exist, usable by callers that want to
// range over 0..Len().
func (t *Table) Len() int { return len(t.defs) }

func (t *Table) mustExist(id DefId) {
	if int(id) >= len(t.defs) {
		panic("resolve: DefTable.GetDef called with non-existent DefId")
	}
}

// --- import aliases ---

// DefineImportAlias allocates a DefId of kind ImportAlias that stands for
// target, and records the one-hop mapping used by UnwindDefId.
func (t *Table) DefineImportAlias(vis ast.Vis, node ast.NodeId, ident symbol.Symbol, target DefId) DefId {
	id := t.Define(vis, node, DefImportAlias, ident)
	t.importAliases[id] = target
	return id
}

// UnwindDefId follows a chain of ImportAlias definitions to the definition
// they ultimately stand for. Non-alias ids are returned unchanged. Callers
// that need to preserve the alias chain for diagnostics
// should walk importAliases themselves instead of calling this.
func (t *Table) UnwindDefId(id DefId) DefId {
	seen := map[DefId]bool{}
	for {
		target, ok := t.importAliases[id]
		if !ok {
			return id
		}
		if seen[id] {
			// Cyclic alias chain: an ICE, never produced by a correct Importer.
			panic("resolve: cyclic import alias chain")
		}
		seen[id] = true
		id = target
	}
}

// AliasTarget returns the direct (one-hop) target of an ImportAlias DefId,
// used by diagnostics that want to say "imported here" without fully
// unwinding the chain.
func (t *Table) AliasTarget(id DefId) (DefId, bool) {
	target, ok := t.importAliases[id]
	return target, ok
}

// --- function overload sets ---

// FOSId indexes into the table's flat list of overload-set maps.
type FOSId uint32

// NewFOS allocates a fresh, empty overload set and returns its id.
func (t *Table) NewFOS() FOSId {
	id := FOSId(len(t.fosSets))
	t.fosSets = append(t.fosSets, make(map[string]DefId))
	return id
}

// FOS returns the suffix->DefId map backing fos. Callers may read it
// directly (e.g. to enumerate all overloads) but must mutate only through
// TryDefineFunc.
func (t *Table) FOS(fos FOSId) map[string]DefId {
	return t.fosSets[fos]
}

// TryDefineFunc inserts defId under suffix in fos. On success it returns
// (0, true). On a suffix collision it returns the DefId already occupying
// that suffix and false, leaving the set unchanged; the caller reports
// that DefId as the "previous definition" in a redefinition diagnostic.
func (t *Table) TryDefineFunc(fos FOSId, suffix string, defId DefId) (DefId, bool) {
	set := t.fosSets[fos]
	if prev, exists := set[suffix]; exists {
		return prev, false
	}
	set[suffix] = defId
	return 0, true
}

// LookupSuffix resolves suffix within fos, if present.
func (t *Table) LookupSuffix(fos FOSId, suffix string) (DefId, bool) {
	id, ok := t.fosSets[fos][suffix]
	return id, ok
}

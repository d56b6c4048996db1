package resolve

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// Importer expands every `use` tree collected by the Module Tree Builder
// into ImportAlias bindings in its declaring module. It
// runs as its own stage, after the tree is fully built, so that a `use`
// anywhere in a module can see every sibling definition regardless of
// declaration order.
type Importer struct {
	Tree *Tree
	Defs *Table
	PR   *PathResolver
	msgs *diagnostic.Holder
}

// NewImporter returns an Importer reporting into msgs.
func NewImporter(tree *Tree, defs *Table, msgs *diagnostic.Holder) *Importer {
	return &Importer{Tree: tree, Defs: defs, PR: NewPathResolver(tree, defs), msgs: msgs}
}

// ImportAll processes every collected `use` declaration.
func (im *Importer) ImportAll(decls []UseDeclRef) {
	for _, d := range decls {
		im.importTree(d.Module, d.Module, true, d.Decl.Tree, d.Decl.Vis)
	}
}

// importTree expands one UseTree. localModId is the module the resulting
// aliases are bound into (always the declaring module, even for deeply
// nested trees). baseModule is where tree.Prefix resolves relative to:
// for a top-level tree that is localModId itself, resolved with full
// PathResolver semantics (ascent, super, party); for a tree nested inside
// a Specific group, it is the already-resolved container module, and
// Prefix resolves by plain descent with no ascent.
func (im *Importer) importTree(localModId, baseModule ModuleId, topLevel bool, tree ast.UseTree, vis ast.Vis) {
	switch tree.Kind {
	case ast.UseTreeRaw:
		im.importLeaf(localModId, baseModule, topLevel, tree.Prefix, nil, vis)
	case ast.UseTreeRebind:
		im.importLeaf(localModId, baseModule, topLevel, tree.Prefix, tree.Rebind, vis)
	case ast.UseTreeAll:
		target, ok := im.resolvePrefixModule(localModId, baseModule, topLevel, tree.Prefix)
		if !ok {
			return
		}
		im.importGlob(localModId, target, vis, tree.Span())
	case ast.UseTreeSpecific:
		target, ok := im.resolvePrefixModule(localModId, baseModule, topLevel, tree.Prefix)
		if !ok {
			return
		}
		for _, nested := range tree.Nested {
			im.importTree(localModId, target, false, nested, vis)
		}
	}
}

// importLeaf handles UseTreeRaw ("bring the final segment in under its
// own name") and UseTreeRebind ("... under an explicit name"): resolve
// the full Prefix path in both the Value and Type namespaces (a name may
// legitimately exist in both, e.g. a tuple-struct's type and its
// constructor) and alias whichever namespaces it is found in.
func (im *Importer) importLeaf(localModId, baseModule ModuleId, topLevel bool, path ast.SimplePath, rebind *ast.Ident, vis ast.Vis) {
	absolute, segs := SegmentsOfSimplePath(path)
	if len(segs) == 0 {
		return
	}
	aliasName := segs[len(segs)-1].Name
	if rebind != nil {
		aliasName = symbol.Get(rebind.Sym)
	}

	imported := false
	for _, ns := range []Namespace{NsValue, NsType} {
		var res Result
		if topLevel {
			res = im.PR.Resolve(segs, absolute, ns, ModeSpecific, localModId, nil, "")
		} else {
			res = im.PR.descend(segs, 0, ns, ModeSpecific, baseModule, localModId, "")
		}
		if res.Failure != nil {
			continue
		}
		imported = true
		im.bindAlias(localModId, ns, aliasName, vis, res.Res, path.Span())
	}
	if !imported {
		im.msgs.Error("I001", fmt.Sprintf("unresolved import '%s'", aliasName)).
			Primary(path.Span(), "no item with this path exists").Emit()
	}
}

// resolvePrefixModule resolves tree.Prefix to the module it must name
// (the target of a glob or the container of a nested group).
func (im *Importer) resolvePrefixModule(localModId, baseModule ModuleId, topLevel bool, path ast.SimplePath) (ModuleId, bool) {
	absolute, segs := SegmentsOfSimplePath(path)
	if len(segs) == 0 {
		return baseModule, true
	}
	var res Result
	if topLevel {
		res = im.PR.Resolve(segs, absolute, NsType, ModeDescend, localModId, nil, "")
	} else {
		res = im.PR.descend(segs, 0, NsType, ModeDescend, baseModule, localModId, "")
	}
	if res.Failure != nil || !res.ModuleOK {
		im.msgs.Error("I002", "unresolved import path").
			Primary(path.Span(), "no module with this path exists").Emit()
		return 0, false
	}
	return res.Module, true
}

// importGlob binds an alias in localModId for every public Value- and
// Type-namespace binding in target.
func (im *Importer) importGlob(localModId, target ModuleId, vis ast.Vis, at source.Span) {
	for _, ns := range []Namespace{NsValue, NsType} {
		for name, binding := range im.Tree.Get(target).Names(ns) {
			if !im.isPublic(binding) {
				continue
			}
			im.bindAlias(localModId, ns, name, vis, bindingToRes(binding), at)
		}
	}
}

// bindAlias records binding res under name in localModId's ns, allocating
// a fresh ImportAlias DefId for a Def target (the alias inherits the use
// declaration's own visibility) or re-sharing the existing
// FOSId for a function overload set (no new DefId needed — the set itself
// is the thing being re-exported).
func (im *Importer) bindAlias(localModId ModuleId, ns Namespace, name string, vis ast.Vis, res Res, at source.Span) {
	mod := im.Tree.Get(localModId)
	var binding NameBinding
	switch res.Kind {
	case ResFOS:
		binding = NameBinding{Kind: BindFOS, FOS: res.FOS}
	case ResDef:
		aliasId := im.Defs.DefineImportAlias(vis, ast.DummyNodeId, symbol.Intern(name), res.Def)
		im.Defs.SetNameSpan(aliasId, at)
		binding = NameBinding{Kind: BindDef, Def: aliasId}
	default:
		return
	}
	if prev, existing := mod.Bind(ns, name, binding); !existing {
		if !compatibleFOSMerge(prev, binding, im.Defs) {
			im.msgs.Error("I003", fmt.Sprintf("import of '%s' conflicts with an existing binding", name)).
				Primary(at, "imported here").Emit()
		}
	}
}

// compatibleFOSMerge reports whether prev and incoming are both function
// overload sets that can coexist (their suffix sets are disjoint); if so
// the incoming overloads are merged into prev's set in place rather than
// reported as a conflict.
func compatibleFOSMerge(prev, incoming NameBinding, defs *Table) bool {
	if prev.Kind != BindFOS || incoming.Kind != BindFOS || prev.FOS == incoming.FOS {
		return false
	}
	clean := true
	for suffix, defId := range defs.FOS(incoming.FOS) {
		if _, ok := defs.TryDefineFunc(prev.FOS, suffix, defId); !ok {
			clean = false
		}
	}
	return clean
}

func (im *Importer) isPublic(b NameBinding) bool {
	if b.Kind == BindFOS {
		for _, id := range im.Defs.FOS(b.FOS) {
			if im.Defs.Vis(id) == ast.VisPub {
				return true
			}
		}
		return false
	}
	return im.Defs.Vis(im.Defs.UnwindDefId(b.Def)) == ast.VisPub
}

func bindingToRes(b NameBinding) Res {
	if b.Kind == BindFOS {
		return FOSRes(b.FOS)
	}
	return DefRes(b.Def)
}

package resolve

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// UseDeclRef pairs a parsed `use` declaration with the module it was
// declared in, so the Importer (a separate pass) can expand
// it after the tree is fully built.
type UseDeclRef struct {
	Module ModuleId
	Decl   *ast.UseDeclItem
}

// Builder performs the Module Tree Builder pass: a single
// walk over the AST that allocates a DefId for every named definition, a
// Module for every item introducing a namespace scope, and populates each
// module's per-namespace bindings.
type Builder struct {
	Defs *Table
	Tree *Tree
	msgs *diagnostic.Holder

	UseDecls []UseDeclRef

	// BlockModules maps the NodeId of a block-bearing node (a *BlockExpr,
	// or an IfExpr/LoopExpr/WhileExpr/ForExpr for its single raw Block
	// field) to the Block-kind module allocated for it, when that block
	// contains at least one ItemStmt. A block with no nested item
	// declarations never gets an entry: it needs no scope of its own.
	BlockModules map[ast.NodeId]ModuleId
}

// NewBuilder returns a Builder reporting into msgs.
func NewBuilder(defs *Table, tree *Tree, msgs *diagnostic.Holder) *Builder {
	return &Builder{Defs: defs, Tree: tree, msgs: msgs, BlockModules: make(map[ast.NodeId]ModuleId)}
}

// BuildParty walks every file reachable from party's entry file: the entry file's
// items first, descending into any other file a `mod m;` declaration
// points at.
func (b *Builder) BuildParty(party *ast.Party) {
	entry := party.Files[party.Entry]
	if entry == nil {
		return
	}
	b.buildItems(entry.Items, b.Tree.Root, RootDefId, party)
}

func (b *Builder) buildItems(items []ast.Item, modId ModuleId, nearestModDef DefId, party *ast.Party) {
	for _, it := range items {
		b.buildItem(it, modId, nearestModDef, party)
	}
}

func (b *Builder) buildItem(it ast.Item, modId ModuleId, nearestModDef DefId, party *ast.Party) {
	switch n := it.(type) {
	case *ast.EnumItem:
		b.buildEnum(n, modId, nearestModDef)
	case *ast.StructItem:
		b.buildStruct(n, modId, nearestModDef)
	case *ast.FuncItem:
		b.buildFunc(n, modId, nearestModDef, party)
	case *ast.InitItem:
		b.buildInit(n, modId, nearestModDef, party)
	case *ast.ImplItem:
		b.buildImpl(n, modId, nearestModDef, party)
	case *ast.ModItem:
		b.buildMod(n, modId, party)
	case *ast.TraitItem:
		b.buildTrait(n, modId, nearestModDef, party)
	case *ast.TypeAliasItem:
		b.buildTypeAlias(n, modId, nearestModDef)
	case *ast.UseDeclItem:
		b.UseDecls = append(b.UseDecls, UseDeclRef{Module: modId, Decl: n})
	case *ast.ConstItem:
		b.buildConst(n, modId)
	case *ast.ErrorNode:
		// Nothing to define: the parser already reported this span.
	default:
		panic(fmt.Sprintf("resolve: unhandled item variant %T", it))
	}
}

func (b *Builder) buildEnum(n *ast.EnumItem, modId ModuleId, nearestModDef DefId) {
	defId := b.Defs.Define(n.Vis, n.Id(), DefEnum, n.Name.Sym)
	b.Defs.SetNameSpan(defId, n.Name.Span())
	b.bindOrReport(b.Tree.Get(modId), NsType, symbol.Get(n.Name.Sym), NameBinding{Kind: BindDef, Def: defId}, n.Name.Span())

	enumMod := b.Tree.NewDefModule(defId, modId, nearestModDef)
	b.bindGenerics(enumMod, n.Generics)
	for _, v := range n.Variants {
		vDefId := b.Defs.Define(n.Vis, v.Id(), DefVariant, v.Name.Sym)
		b.Defs.SetNameSpan(vDefId, v.Name.Span())
		b.bindOrReport(b.Tree.Get(enumMod), NsType, symbol.Get(v.Name.Sym), NameBinding{Kind: BindDef, Def: vDefId}, v.Name.Span())
	}
}

func (b *Builder) buildStruct(n *ast.StructItem, modId ModuleId, nearestModDef DefId) {
	defId := b.Defs.Define(n.Vis, n.Id(), DefStruct, n.Name.Sym)
	b.Defs.SetNameSpan(defId, n.Name.Span())
	b.bindOrReport(b.Tree.Get(modId), NsType, symbol.Get(n.Name.Sym), NameBinding{Kind: BindDef, Def: defId}, n.Name.Span())

	structMod := b.Tree.NewDefModule(defId, modId, nearestModDef)
	b.bindGenerics(structMod, n.Generics)
}

func (b *Builder) buildFunc(n *ast.FuncItem, modId ModuleId, nearestModDef DefId, party *ast.Party) {
	baseName := symbol.Get(n.Name.Sym)
	suffix := n.Sig.Suffix(baseName)
	fos := b.getOrCreateFOS(modId, baseName)

	defId := b.Defs.Define(n.Vis, n.Id(), DefFunc, n.Name.Sym)
	b.Defs.SetNameSpan(defId, n.Name.Span())
	if prev, ok := b.Defs.TryDefineFunc(fos, suffix, defId); !ok {
		b.reportSuffixCollision(prev, n.Name.Span(), suffix)
	}

	funcMod := b.Tree.NewDefModule(defId, modId, nearestModDef)
	b.bindGenerics(funcMod, n.Sig.Generics)
	if n.Body != nil {
		b.buildBody(n.Body, funcMod, nearestModDef, party)
	}
}

func (b *Builder) buildInit(n *ast.InitItem, modId ModuleId, nearestModDef DefId, party *ast.Party) {
	const baseName = "init"
	suffix := n.Sig.Suffix(baseName)
	fos := b.getOrCreateFOS(modId, baseName)

	defId := b.Defs.Define(n.Vis, n.Id(), DefInit, symbol.Intern(baseName))
	if prev, ok := b.Defs.TryDefineFunc(fos, suffix, defId); !ok {
		b.reportSuffixCollision(prev, n.Span(), suffix)
	}

	initMod := b.Tree.NewDefModule(defId, modId, nearestModDef)
	b.bindGenerics(initMod, n.Sig.Generics)
	if n.Body != nil {
		b.buildBody(n.Body, initMod, nearestModDef, party)
	}
}

func (b *Builder) buildImpl(n *ast.ImplItem, modId ModuleId, nearestModDef DefId, party *ast.Party) {
	defId := b.Defs.Define(n.Vis, n.Id(), DefImpl, symbol.FromKw(symbol.KwEmpty))
	implMod := b.Tree.NewDefModule(defId, modId, nearestModDef)
	b.bindGenerics(implMod, n.Generics)
	b.buildItems(n.Items, implMod, nearestModDef, party)
}

func (b *Builder) buildMod(n *ast.ModItem, modId ModuleId, party *ast.Party) {
	defId := b.Defs.Define(n.Vis, n.Id(), DefMod, n.Name.Sym)
	b.Defs.SetNameSpan(defId, n.Name.Span())
	b.bindOrReport(b.Tree.Get(modId), NsType, symbol.Get(n.Name.Sym), NameBinding{Kind: BindDef, Def: defId}, n.Name.Span())

	childMod := b.Tree.NewDefModule(defId, modId, defId)
	switch {
	case n.Items != nil:
		b.buildItems(n.Items, childMod, defId, party)
	case n.FileRef != nil:
		if file := party.Files[n.FileRef.File]; file != nil {
			b.buildItems(file.Items, childMod, defId, party)
		}
	}
}

func (b *Builder) buildTrait(n *ast.TraitItem, modId ModuleId, nearestModDef DefId, party *ast.Party) {
	defId := b.Defs.Define(n.Vis, n.Id(), DefTrait, n.Name.Sym)
	b.Defs.SetNameSpan(defId, n.Name.Span())
	b.bindOrReport(b.Tree.Get(modId), NsType, symbol.Get(n.Name.Sym), NameBinding{Kind: BindDef, Def: defId}, n.Name.Span())

	traitMod := b.Tree.NewDefModule(defId, modId, nearestModDef)
	b.bindGenerics(traitMod, n.Generics)
	b.buildItems(n.Items, traitMod, nearestModDef, party)
}

func (b *Builder) buildTypeAlias(n *ast.TypeAliasItem, modId ModuleId, nearestModDef DefId) {
	defId := b.Defs.Define(n.Vis, n.Id(), DefTypeAlias, n.Name.Sym)
	b.Defs.SetNameSpan(defId, n.Name.Span())
	b.bindOrReport(b.Tree.Get(modId), NsType, symbol.Get(n.Name.Sym), NameBinding{Kind: BindDef, Def: defId}, n.Name.Span())

	aliasMod := b.Tree.NewDefModule(defId, modId, nearestModDef)
	b.bindGenerics(aliasMod, n.Generics)
}

func (b *Builder) buildConst(n *ast.ConstItem, modId ModuleId) {
	defId := b.Defs.Define(n.Vis, n.Id(), DefConst, n.Name.Sym)
	b.Defs.SetNameSpan(defId, n.Name.Span())
	b.bindOrReport(b.Tree.Get(modId), NsValue, symbol.Get(n.Name.Sym), NameBinding{Kind: BindDef, Def: defId}, n.Name.Span())
}

// bindGenerics allocates a definition for each generic parameter and
// binds it in mod's appropriate namespace.
func (b *Builder) bindGenerics(modId ModuleId, generics []ast.GenericParam) {
	mod := b.Tree.Get(modId)
	for _, g := range generics {
		var kind DefKind
		var ns Namespace
		switch g.Kind {
		case ast.GenericParamLifetime:
			kind, ns = DefLifetime, NsLifetime
		case ast.GenericParamType:
			kind, ns = DefTypeParam, NsType
		case ast.GenericParamConst:
			kind, ns = DefConstParam, NsValue
		}
		defId := b.Defs.Define(ast.VisUnset, g.Id(), kind, g.Name.Sym)
		b.Defs.SetNameSpan(defId, g.Name.Span())
		b.bindOrReport(mod, ns, symbol.Get(g.Name.Sym), NameBinding{Kind: BindDef, Def: defId}, g.Name.Span())
	}
}

// getOrCreateFOS returns the FOSId backing name in modId's value
// namespace, allocating one the first time a function with that base
// name is declared there. A pre-existing non-function binding under the
// same name is a redefinition, reported once.
func (b *Builder) getOrCreateFOS(modId ModuleId, name string) FOSId {
	mod := b.Tree.Get(modId)
	if binding, ok := mod.Lookup(NsValue, name); ok {
		if binding.Kind == BindFOS {
			return binding.FOS
		}
		b.msgs.Error("M003", fmt.Sprintf("redefinition of '%s': a non-function value already uses this name", name)).
			Primary(source.Dummy, "redefined here").Emit()
		return b.Defs.NewFOS()
	}
	fos := b.Defs.NewFOS()
	mod.Bind(NsValue, name, NameBinding{Kind: BindFOS, FOS: fos})
	return fos
}

func (b *Builder) bindOrReport(mod *Module, ns Namespace, name string, binding NameBinding, at source.Span) {
	if prev, ok := mod.Bind(ns, name, binding); !ok {
		prevSpan := source.Dummy
		if prev.Kind == BindDef {
			prevSpan = b.Defs.NameSpan(prev.Def)
		}
		b.msgs.Error("M001", fmt.Sprintf("the name '%s' is defined multiple times", name)).
			Primary(at, "redefined here").
			Aux(prevSpan, "previous definition here").
			Emit()
	}
}

func (b *Builder) reportSuffixCollision(prev DefId, at source.Span, suffix string) {
	b.msgs.Error("M002", fmt.Sprintf("function overload suffix '%s' is already defined", suffix)).
		Primary(at, "redefined here").
		Aux(b.Defs.NameSpan(prev), "previous definition here").
		Emit()
}

// --- block-scoped items ---
//
// A func/init body can itself declare items (a nested `func`, `struct`,
// etc., wrapped in an ItemStmt): these walks mirror the Resolver's own
// expression traversal purely to find every Block a body contains and
// give each one holding at least one ItemStmt a Block-kind module, so
// the nested item gets a DefId and a home in the tree exactly like a
// top-level one.

// buildBody walks a func/init body for nested item declarations.
func (b *Builder) buildBody(body *ast.Body, parentMod ModuleId, nearestModDef DefId, party *ast.Party) {
	b.buildExprItems(body.Value, parentMod, nearestModDef, party)
}

// buildBlock gives block a Block-kind module when it declares at least
// one item directly, binding each such item's name and definition there,
// and recurses into every statement/tail expression to find further
// nested blocks. nodeKey identifies the block-bearing AST node (the
// *BlockExpr itself, or its IfExpr/LoopExpr/WhileExpr/ForExpr owner for a
// bare Block field) so the Resolver can recover the same module later.
func (b *Builder) buildBlock(nodeKey ast.NodeId, block ast.Block, parentMod ModuleId, nearestModDef DefId, party *ast.Party) {
	effectiveMod := parentMod
	for _, st := range block.Stmts {
		if _, ok := st.(*ast.ItemStmt); ok {
			effectiveMod = b.Tree.NewBlockModule(nodeKey, parentMod, nearestModDef)
			b.BlockModules[nodeKey] = effectiveMod
			break
		}
	}

	for _, st := range block.Stmts {
		switch n := st.(type) {
		case *ast.LetStmt:
			if n.Value != nil {
				b.buildExprItems(n.Value, effectiveMod, nearestModDef, party)
			}
		case *ast.ItemStmt:
			b.buildItem(n.Decl, effectiveMod, nearestModDef, party)
		case *ast.ExprStmt:
			b.buildExprItems(n.Value, effectiveMod, nearestModDef, party)
		}
	}
	if block.Tail != nil {
		b.buildExprItems(block.Tail, effectiveMod, nearestModDef, party)
	}
}

// buildExprItems recurses through e looking only for Blocks, so any item
// declared arbitrarily deep inside control flow still gets defined.
func (b *Builder) buildExprItems(e ast.Expr, modId ModuleId, nearestModDef DefId, party *ast.Party) {
	switch n := e.(type) {
	case *ast.AssignExpr:
		b.buildExprItems(n.Lhs, modId, nearestModDef, party)
		b.buildExprItems(n.Rhs, modId, nearestModDef, party)
	case *ast.BlockExpr:
		b.buildBlock(n.Id(), n.Value, modId, nearestModDef, party)
	case *ast.BorrowExpr:
		b.buildExprItems(n.Value, modId, nearestModDef, party)
	case *ast.BreakExpr:
		if n.Value != nil {
			b.buildExprItems(n.Value, modId, nearestModDef, party)
		}
	case *ast.CastExpr:
		b.buildExprItems(n.Value, modId, nearestModDef, party)
	case *ast.FieldExpr:
		b.buildExprItems(n.Target, modId, nearestModDef, party)
	case *ast.ForExpr:
		b.buildExprItems(n.Iter, modId, nearestModDef, party)
		b.buildBlock(n.Id(), n.Body, modId, nearestModDef, party)
	case *ast.IfExpr:
		b.buildExprItems(n.Cond, modId, nearestModDef, party)
		b.buildBlock(n.Id(), n.Then, modId, nearestModDef, party)
		if n.Else != nil {
			b.buildExprItems(n.Else, modId, nearestModDef, party)
		}
	case *ast.InfixExpr:
		b.buildExprItems(n.Lhs, modId, nearestModDef, party)
		b.buildExprItems(n.Rhs, modId, nearestModDef, party)
	case *ast.InvokeExpr:
		b.buildExprItems(n.Callee, modId, nearestModDef, party)
		for _, a := range n.Args {
			b.buildExprItems(a.Value, modId, nearestModDef, party)
		}
	case *ast.LambdaExpr:
		b.buildExprItems(n.Body, modId, nearestModDef, party)
	case *ast.ListExpr:
		for _, el := range n.Elements {
			b.buildExprItems(el, modId, nearestModDef, party)
		}
	case *ast.LoopExpr:
		b.buildBlock(n.Id(), n.Body, modId, nearestModDef, party)
	case *ast.MatchExpr:
		b.buildExprItems(n.Scrutinee, modId, nearestModDef, party)
		for _, arm := range n.Arms {
			if arm.Guard != nil {
				b.buildExprItems(arm.Guard, modId, nearestModDef, party)
			}
			b.buildExprItems(arm.Body, modId, nearestModDef, party)
		}
	case *ast.ParenExpr:
		b.buildExprItems(n.Value, modId, nearestModDef, party)
	case *ast.PostfixExpr:
		b.buildExprItems(n.Target, modId, nearestModDef, party)
	case *ast.PrefixExpr:
		b.buildExprItems(n.Target, modId, nearestModDef, party)
	case *ast.ReturnExpr:
		if n.Value != nil {
			b.buildExprItems(n.Value, modId, nearestModDef, party)
		}
	case *ast.SpreadExpr:
		b.buildExprItems(n.Value, modId, nearestModDef, party)
	case *ast.SubscriptExpr:
		b.buildExprItems(n.Target, modId, nearestModDef, party)
		b.buildExprItems(n.Index, modId, nearestModDef, party)
	case *ast.TupleExpr:
		for _, el := range n.Elements {
			b.buildExprItems(el, modId, nearestModDef, party)
		}
	case *ast.WhileExpr:
		b.buildExprItems(n.Cond, modId, nearestModDef, party)
		b.buildBlock(n.Id(), n.Body, modId, nearestModDef, party)
	case *ast.LiteralExpr, *ast.PathExpr, *ast.SelfExpr, *ast.UnitExpr, *ast.ErrorNode:
		// Leaves: no sub-expressions, nothing to recurse into.
	default:
		panic(fmt.Sprintf("resolve: unhandled expr variant %T", e))
	}
}

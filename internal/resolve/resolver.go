package resolve

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// Resolver walks a fully-built module tree and, for every identifier or
// path reference in the AST, sets a NodeId -> Res entry.
// Besides the finished Table and Tree, it takes the Module Tree Builder's
// block-module map to find the module a block-bearing node opened.
type Resolver struct {
	Tree *Tree
	Defs *Table
	Outs *Resolutions

	msgs         *diagnostic.Holder
	pr           *PathResolver
	ribs         Stack
	blockModules map[ast.NodeId]ModuleId
}

// NewResolver returns a Resolver over an already-built tree/table,
// reporting into msgs. blockModules is the Module Tree Builder's record of
// which block-bearing nodes got their own Block-kind module (nil is
// treated as empty, meaning no block in the party declares a nested item).
func NewResolver(tree *Tree, defs *Table, msgs *diagnostic.Holder, blockModules map[ast.NodeId]ModuleId) *Resolver {
	return &Resolver{Tree: tree, Defs: defs, Outs: NewResolutions(), msgs: msgs, pr: NewPathResolver(tree, defs), blockModules: blockModules}
}

// ResolveParty walks every file reachable from party's entry file.
func (r *Resolver) ResolveParty(party *ast.Party) {
	entry := party.Files[party.Entry]
	if entry == nil {
		return
	}
	root := r.Tree.Root
	r.ribs.Push(RibRoot, &root)
	r.resolveItems(entry.Items, root, party)
	r.ribs.Pop()
}

// moduleOf recovers the ModuleId the Module Tree Builder allocated for an
// item, keyed by the item's own NodeId via the definition table.
func (r *Resolver) moduleOf(node ast.NodeId) (ModuleId, bool) {
	defId, ok := r.Defs.DefOf(node)
	if !ok {
		return 0, false
	}
	return r.Tree.ModuleOf(defId)
}

func (r *Resolver) resolveItems(items []ast.Item, modId ModuleId, party *ast.Party) {
	for _, it := range items {
		r.resolveItem(it, modId, party)
	}
}

func (r *Resolver) resolveItem(it ast.Item, modId ModuleId, party *ast.Party) {
	switch n := it.(type) {
	case *ast.EnumItem:
		enumMod, ok := r.moduleOf(n.Id())
		if !ok {
			return
		}
		r.withModRib(enumMod, func() {
			r.resolveGenerics(n.Generics, enumMod)
			for _, v := range n.Variants {
				for _, t := range v.TupleTypes {
					r.resolveType(t, enumMod)
				}
				for _, f := range v.Fields {
					if f.TypeAnn != nil {
						r.resolveType(f.TypeAnn, enumMod)
					}
				}
				if v.Discriminant != nil {
					r.resolveExpr(v.Discriminant, enumMod)
				}
			}
		})
	case *ast.StructItem:
		structMod, ok := r.moduleOf(n.Id())
		if !ok {
			return
		}
		r.withModRib(structMod, func() {
			r.resolveGenerics(n.Generics, structMod)
			for _, f := range n.Fields {
				if f.TypeAnn != nil {
					r.resolveType(f.TypeAnn, structMod)
				}
			}
		})
	case *ast.FuncItem:
		r.resolveFuncLike(n.Id(), n.Sig, n.Body)
	case *ast.InitItem:
		r.resolveFuncLike(n.Id(), n.Sig, n.Body)
	case *ast.ImplItem:
		implMod, ok := r.moduleOf(n.Id())
		if !ok {
			return
		}
		r.withModRib(implMod, func() {
			r.resolveGenerics(n.Generics, implMod)
			if n.Trait != nil {
				r.resolveType(n.Trait, implMod)
			}
			r.resolveType(n.Target, implMod)
			r.resolveItems(n.Items, implMod, party)
		})
	case *ast.ModItem:
		childMod, ok := r.moduleOf(n.Id())
		if !ok {
			return
		}
		r.withModRib(childMod, func() {
			switch {
			case n.Items != nil:
				r.resolveItems(n.Items, childMod, party)
			case n.FileRef != nil:
				if file := party.Files[n.FileRef.File]; file != nil {
					r.resolveItems(file.Items, childMod, party)
				}
			}
		})
	case *ast.TraitItem:
		traitMod, ok := r.moduleOf(n.Id())
		if !ok {
			return
		}
		r.withModRib(traitMod, func() {
			r.resolveGenerics(n.Generics, traitMod)
			for _, s := range n.Super {
				r.resolveType(s, traitMod)
			}
			r.resolveItems(n.Items, traitMod, party)
		})
	case *ast.TypeAliasItem:
		aliasMod, ok := r.moduleOf(n.Id())
		if !ok {
			return
		}
		r.withModRib(aliasMod, func() {
			r.resolveGenerics(n.Generics, aliasMod)
			if n.Bound != nil {
				r.resolveType(n.Bound, aliasMod)
			}
			if n.Value != nil {
				r.resolveType(n.Value, aliasMod)
			}
		})
	case *ast.ConstItem:
		if n.TypeAnn != nil {
			r.resolveType(n.TypeAnn, modId)
		}
		if n.Value != nil {
			r.resolveExpr(n.Value, modId)
		}
	case *ast.UseDeclItem, *ast.ErrorNode:
		// `use` targets are not reference sites; parse errors were
		// already reported.
	default:
		panic(fmt.Sprintf("resolve: unhandled item variant %T", it))
	}
}

// resolveFuncLike resolves a Func or Init item's signature and, if
// present, its body. Two ribs are pushed: one bound to
// the function's own module (generics visible by lexical lookup), one
// Raw rib holding the parameter patterns' locals.
func (r *Resolver) resolveFuncLike(node ast.NodeId, sig ast.FuncSig, body *ast.Body) {
	funcMod, ok := r.moduleOf(node)
	if !ok {
		return
	}
	r.withModRib(funcMod, func() {
		r.resolveGenerics(sig.Generics, funcMod)
		paramsRib := r.ribs.Push(RibRaw, nil)
		for _, p := range sig.Params {
			r.bindPattern(p.Pat, funcMod, paramsRib, true)
			if p.TypeAnn != nil {
				r.resolveType(p.TypeAnn, funcMod)
			}
			if p.Default != nil {
				r.resolveExpr(p.Default, funcMod)
			}
		}
		if sig.ReturnType != nil {
			r.resolveType(sig.ReturnType, funcMod)
		}
		if body != nil {
			r.resolveExpr(body.Value, funcMod)
		}
		r.ribs.Pop()
	})
}

func (r *Resolver) resolveGenerics(generics []ast.GenericParam, modId ModuleId) {
	for _, g := range generics {
		if g.Bound != nil {
			r.resolveType(g.Bound, modId)
		}
		if g.Kind == ast.GenericParamConst && g.ConstTy != nil {
			r.resolveType(g.ConstTy, modId)
		}
	}
}

func (r *Resolver) withModRib(modId ModuleId, f func()) {
	m := modId
	r.ribs.Push(RibMod, &m)
	f()
	r.ribs.Pop()
}

// --- types ---

func (r *Resolver) resolveType(t ast.Type, modId ModuleId) {
	switch n := t.(type) {
	case *ast.ParenType:
		r.resolveType(n.Value, modId)
	case *ast.TupleType:
		for _, e := range n.Elements {
			r.resolveType(e, modId)
		}
	case *ast.FuncType:
		for _, p := range n.Params {
			r.resolveType(p, modId)
		}
		if n.ReturnType != nil {
			r.resolveType(n.ReturnType, modId)
		}
	case *ast.SliceType:
		r.resolveType(n.Element, modId)
	case *ast.ArrayType:
		r.resolveType(n.Element, modId)
		r.resolveExpr(n.Size.Value, modId)
	case *ast.PathType:
		r.resolvePath(n.Path, NsType, modId, "")
	case *ast.UnitType:
		// Nothing to resolve.
	default:
		panic(fmt.Sprintf("resolve: unhandled type variant %T", t))
	}
}

// --- expressions ---

func (r *Resolver) resolveExpr(e ast.Expr, modId ModuleId) {
	switch n := e.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(n.Lhs, modId)
		r.resolveExpr(n.Rhs, modId)
	case *ast.BlockExpr:
		r.resolveBlock(n.Id(), n.Value, modId)
	case *ast.BorrowExpr:
		r.resolveExpr(n.Value, modId)
	case *ast.BreakExpr:
		if n.Value != nil {
			r.resolveExpr(n.Value, modId)
		}
	case *ast.ContinueExpr:
		// Nothing to resolve.
	case *ast.CastExpr:
		r.resolveExpr(n.Value, modId)
		r.resolveType(n.TargetType, modId)
	case *ast.FieldExpr:
		r.resolveExpr(n.Target, modId)
		// n.Name is a field access, resolved against the target's type by
		// a later pass, not by name resolution.
	case *ast.ForExpr:
		r.resolveExpr(n.Iter, modId)
		rib := r.ribs.Push(RibRaw, nil)
		r.bindPattern(n.Pattern, modId, rib, true)
		r.resolveBlock(n.Id(), n.Body, modId)
		r.ribs.Pop()
	case *ast.IfExpr:
		r.resolveExpr(n.Cond, modId)
		r.resolveBlock(n.Id(), n.Then, modId)
		if n.Else != nil {
			r.resolveExpr(n.Else, modId)
		}
	case *ast.InfixExpr:
		r.resolveExpr(n.Lhs, modId)
		r.resolveExpr(n.Rhs, modId)
	case *ast.InvokeExpr:
		r.resolveInvoke(n, modId)
	case *ast.LambdaExpr:
		rib := r.ribs.Push(RibRaw, nil)
		for _, p := range n.Params {
			r.bindPattern(p.Pat, modId, rib, true)
			if p.TypeAnn != nil {
				r.resolveType(p.TypeAnn, modId)
			}
			if p.Default != nil {
				r.resolveExpr(p.Default, modId)
			}
		}
		if n.ReturnType != nil {
			r.resolveType(n.ReturnType, modId)
		}
		r.resolveExpr(n.Body, modId)
		r.ribs.Pop()
	case *ast.ListExpr:
		for _, el := range n.Elements {
			r.resolveExpr(el, modId)
		}
	case *ast.LiteralExpr:
		// Nothing to resolve.
	case *ast.LoopExpr:
		r.resolveBlock(n.Id(), n.Body, modId)
	case *ast.MatchExpr:
		r.resolveExpr(n.Scrutinee, modId)
		for _, arm := range n.Arms {
			rib := r.ribs.Push(RibRaw, nil)
			r.bindPattern(arm.Pattern, modId, rib, true)
			if arm.Guard != nil {
				r.resolveExpr(arm.Guard, modId)
			}
			r.resolveExpr(arm.Body, modId)
			r.ribs.Pop()
		}
	case *ast.ParenExpr:
		r.resolveExpr(n.Value, modId)
	case *ast.PathExpr:
		r.resolvePath(n.Path, NsValue, modId, "")
	case *ast.PostfixExpr:
		r.resolveExpr(n.Target, modId)
	case *ast.PrefixExpr:
		r.resolveExpr(n.Target, modId)
	case *ast.ReturnExpr:
		if n.Value != nil {
			r.resolveExpr(n.Value, modId)
		}
	case *ast.SelfExpr:
		// Nothing to resolve: self-ness is a Validator/HIR concern.
	case *ast.SpreadExpr:
		r.resolveExpr(n.Value, modId)
	case *ast.SubscriptExpr:
		r.resolveExpr(n.Target, modId)
		r.resolveExpr(n.Index, modId)
	case *ast.TupleExpr:
		for _, el := range n.Elements {
			r.resolveExpr(el, modId)
		}
	case *ast.UnitExpr:
		// Nothing to resolve.
	case *ast.WhileExpr:
		r.resolveExpr(n.Cond, modId)
		r.resolveBlock(n.Id(), n.Body, modId)
	case *ast.ErrorNode:
		// Already reported by the parser.
	default:
		panic(fmt.Sprintf("resolve: unhandled expr variant %T", e))
	}
}

// resolveInvoke resolves a call, reconstructing the callee's
// function-overload-set suffix from the call site's argument labels when
// the callee is a bare path.
func (r *Resolver) resolveInvoke(n *ast.InvokeExpr, modId ModuleId) {
	if calleePath, ok := n.Callee.(*ast.PathExpr); ok {
		suffix := callSuffixOf(calleePath.Path, n.Args)
		r.resolvePath(calleePath.Path, NsValue, modId, suffix)
	} else {
		r.resolveExpr(n.Callee, modId)
	}
	for _, a := range n.Args {
		r.resolveExpr(a.Value, modId)
	}
}

// callSuffixOf computes the `base(label1:label2:...)` suffix a call site
// implies, mirroring ast.FuncSig.Suffix's algorithm over Args instead of
// FuncParams.
func callSuffixOf(path ast.Path, args []ast.Arg) string {
	if len(path.Segments) == 0 {
		return ""
	}
	base := symbol.Get(path.Segments[len(path.Segments)-1].Name.Sym)
	out := base + "("
	for _, a := range args {
		if a.Label != nil {
			out += symbol.Get(a.Label.Sym) + ":"
		} else {
			out += "_:"
		}
	}
	out += ")"
	return out
}

// --- blocks, statements, patterns ---

// resolveBlock resolves b's statements and tail expression. nodeKey
// identifies the block-bearing AST node (matching whatever the Module
// Tree Builder used to key BlockModules for this same block): when it
// names a Block-kind module, that module's bindings join lexical scope
// for this block alone, via the pushed rib's BoundModule, and become the
// module nested item declarations (and any reference resolved while
// inside the block) resolve against.
func (r *Resolver) resolveBlock(nodeKey ast.NodeId, b ast.Block, modId ModuleId) {
	var bm *ModuleId
	if m, ok := r.blockModules[nodeKey]; ok {
		bm = &m
	}
	r.ribs.Push(RibRaw, bm)
	effectiveMod := modId
	if bm != nil {
		effectiveMod = *bm
	}
	for _, st := range b.Stmts {
		r.resolveStmt(st, effectiveMod)
	}
	if b.Tail != nil {
		r.resolveExpr(b.Tail, effectiveMod)
	}
	r.ribs.Pop()
}

func (r *Resolver) resolveStmt(st ast.Stmt, modId ModuleId) {
	switch n := st.(type) {
	case *ast.LetStmt:
		if n.Value != nil {
			r.resolveExpr(n.Value, modId)
		}
		if n.TypeAnn != nil {
			r.resolveType(n.TypeAnn, modId)
		}
		rib := r.ribs.Current()
		r.bindPattern(n.Pattern, modId, rib, true)
	case *ast.ItemStmt:
		// modId here is already the block's own module (resolveBlock
		// substitutes it in when the block declares at least one item),
		// so this resolves exactly like a top-level item declaration.
		r.resolveItem(n.Decl, modId, nil)
	case *ast.ExprStmt:
		r.resolveExpr(n.Value, modId)
	default:
		panic(fmt.Sprintf("resolve: unhandled stmt variant %T", st))
	}
}

// bindPattern introduces the locals a pattern binds into rib, while also resolving any embedded Path/type/literal
// references. When bind is false (used for MultiPat alternatives after
// the first), no new locals are introduced — only nested references are
// resolved — since `p1 | p2` binds one shared name set and re-binding it
// per alternative would falsely look like shadowing.
func (r *Resolver) bindPattern(p ast.Pat, modId ModuleId, rib *Rib, bind bool) {
	switch n := p.(type) {
	case *ast.MultiPat:
		for i, alt := range n.Alternatives {
			r.bindPattern(alt, modId, rib, bind && i == 0)
		}
	case *ast.ParenPat:
		r.bindPattern(n.Value, modId, rib, bind)
	case *ast.LitPat:
		// A literal pattern carries no references to resolve.
	case *ast.IdentPat:
		if bind && rib != nil {
			if prevSpan, ok := rib.Bind(symbol.Get(n.Name.Sym), n.Id(), n.Name.Span()); !ok {
				r.msgs.Error("R005", fmt.Sprintf("identifier '%s' is bound more than once in this pattern", symbol.Get(n.Name.Sym))).
					Primary(n.Name.Span(), "rebound here").
					Aux(prevSpan, "first bound here").
					Emit()
			}
		}
		if n.SubPat != nil {
			r.bindPattern(n.SubPat, modId, rib, bind)
		}
	case *ast.RefPat:
		r.bindPattern(n.Value, modId, rib, bind)
	case *ast.PathPat:
		r.resolvePath(n.Path, NsValue, modId, "")
	case *ast.WildcardPat, *ast.RestPat:
		// Nothing to bind or resolve.
	case *ast.StructPat:
		r.resolvePath(n.Path, NsType, modId, "")
		for _, f := range n.Fields {
			if f.Pattern != nil {
				r.bindPattern(f.Pattern, modId, rib, bind)
			} else if bind && rib != nil {
				if prevSpan, ok := rib.Bind(symbol.Get(f.Name.Sym), f.Id(), f.Name.Span()); !ok {
					r.msgs.Error("R005", fmt.Sprintf("identifier '%s' is bound more than once in this pattern", symbol.Get(f.Name.Sym))).
						Primary(f.Name.Span(), "rebound here").
						Aux(prevSpan, "first bound here").
						Emit()
				}
			}
		}
	case *ast.TuplePat:
		for _, el := range n.Elements {
			r.bindPattern(el, modId, rib, bind)
		}
	case *ast.SlicePat:
		for _, el := range n.Elements {
			r.bindPattern(el, modId, rib, bind)
		}
	case *ast.ErrorNode:
		// Already reported.
	default:
		panic(fmt.Sprintf("resolve: unhandled pat variant %T", p))
	}
}

// --- paths ---

func (r *Resolver) resolvePath(path ast.Path, ns Namespace, modId ModuleId, callSuffix string) {
	absolute, segs := SegmentsOfPath(path)
	result := r.pr.Resolve(segs, absolute, ns, ModeSpecific, modId, &r.ribs, callSuffix)
	if result.Failure != nil {
		r.reportPathFailure(path, result.Failure)
		r.Outs.Set(path.Id(), ErrorRes)
	} else {
		r.Outs.Set(path.Id(), result.Res)
	}
	r.resolvePathGenerics(path, modId)
}

// resolvePathGenerics resolves any `<...>` generic arguments attached to
// the path's segments, in the same rib context.
func (r *Resolver) resolvePathGenerics(path ast.Path, modId ModuleId) {
	for _, seg := range path.Segments {
		for _, arg := range seg.Args {
			switch arg.Kind {
			case ast.GenericArgType:
				if arg.TypeArg != nil {
					r.resolveType(arg.TypeArg, modId)
				}
			case ast.GenericArgConst:
				if arg.ConstArg != nil {
					r.resolveExpr(arg.ConstArg.Value, modId)
				}
			case ast.GenericArgLifetime:
				// Lifetime arguments are not looked up: this front-end
				// does not model lifetime elision/inference, only
				// declaration-site binding.
			}
		}
	}
}

func (r *Resolver) reportPathFailure(path ast.Path, f *Failure) {
	last := path.Segments[len(path.Segments)-1]
	name := symbol.Get(last.Name.Sym)
	switch f.Kind {
	case FailCannotFind:
		r.msgs.Error("R001", fmt.Sprintf("cannot find '%s' in this scope", name)).
			Primary(last.Name.Span(), "not found").Emit()
	case FailInaccessible:
		r.msgs.Error("R002", fmt.Sprintf("'%s' is private", name)).
			Primary(last.Name.Span(), "private item").Emit()
	case FailWrongNamespace:
		b := r.msgs.Error("R003", fmt.Sprintf("'%s' exists but not in the expected namespace", name)).
			Primary(last.Name.Span(), "wrong namespace")
		for _, alt := range f.AltDefs {
			b = b.Aux(r.Defs.NameSpan(alt), "did you mean this?")
		}
		b.Emit()
	case FailAmbiguous:
		r.msgs.Error("R004", fmt.Sprintf("'%s' is ambiguous", name)).
			Primary(last.Name.Span(), "ambiguous import").Emit()
	}
}

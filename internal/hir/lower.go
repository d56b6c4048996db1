package hir

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/resolve"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// Lowering runs the AST → HIR pass: one walk over an
// already name-resolved ast.Party, allocating a fresh HirId under the
// current owner for every node it produces.
type Lowering struct {
	Defs *resolve.Table
	Tree *resolve.Tree
	Res  *resolve.Resolutions

	party  *ast.Party
	next   map[resolve.DefId]uint32
	owners map[ItemId]Item
	bodies map[BodyId]*Body
}

// NewLowering returns a Lowering pass over an already-built definition
// table, module tree, and resolution map.
func NewLowering(defs *resolve.Table, tree *resolve.Tree, res *resolve.Resolutions) *Lowering {
	return &Lowering{
		Defs:   defs,
		Tree:   tree,
		Res:    res,
		next:   make(map[resolve.DefId]uint32),
		owners: make(map[ItemId]Item),
		bodies: make(map[BodyId]*Body),
	}
}

// LowerParty lowers every item reachable from party's entry file.
func (l *Lowering) LowerParty(party *ast.Party) *Party {
	l.party = party
	entry := party.Files[party.Entry]
	var rootItems []ItemId
	if entry != nil {
		rootItems = l.lowerItems(entry.Items, resolve.RootDefId)
	}
	l.owners[resolve.RootDefId] = &ModItem{Def: resolve.RootDefId, Items: rootItems}

	modules := make(map[ItemId]*ModItem)
	for id, it := range l.owners {
		if m, ok := it.(*ModItem); ok {
			modules[id] = m
		}
	}

	return &Party{
		RootMod: resolve.RootDefId,
		Owners:  l.owners,
		Bodies:  l.bodies,
		Modules: modules,
	}
}

// nextId allocates the next HirId under owner.
func (l *Lowering) nextId(owner resolve.DefId) HirId {
	c := l.next[owner]
	l.next[owner] = c + 1
	return HirId{Owner: owner, Child: c}
}

func (l *Lowering) defOf(node ast.NodeId) resolve.DefId {
	defId, ok := l.Defs.DefOf(node)
	if !ok {
		panic("hir: lowering encountered an item with no definition table entry")
	}
	return defId
}

func (l *Lowering) resOf(node ast.NodeId) resolve.Res {
	res, ok := l.Res.Get(node)
	if !ok {
		return resolve.ErrorRes
	}
	return res
}

// --- items ---

func (l *Lowering) lowerItems(items []ast.Item, parentOwner resolve.DefId) []ItemId {
	var out []ItemId
	for _, it := range items {
		if id, ok := l.lowerItem(it, parentOwner); ok {
			out = append(out, id)
		}
	}
	return out
}

func (l *Lowering) lowerItem(it ast.Item, parentOwner resolve.DefId) (ItemId, bool) {
	switch n := it.(type) {
	case *ast.ModItem:
		defId := l.defOf(n.Id())
		var childItems []ast.Item
		switch {
		case n.Items != nil:
			childItems = n.Items
		case n.FileRef != nil:
			if file := l.party.Files[n.FileRef.File]; file != nil {
				childItems = file.Items
			}
		}
		items := l.lowerItems(childItems, defId)
		l.owners[defId] = &ModItem{Base: Base{l.nextId(parentOwner)}, Def: defId, Items: items}
		return defId, true

	case *ast.FuncItem:
		defId := l.defOf(n.Id())
		generics := l.lowerGenerics(n.Sig.Generics, defId)
		params := l.lowerParams(n.Sig.Params, defId)
		var returnType Type
		if n.Sig.ReturnType != nil {
			returnType = l.lowerType(n.Sig.ReturnType, defId)
		}
		var bodyId *BodyId
		if n.Body != nil {
			bid := l.lowerBody(n.Body, defId)
			bodyId = &bid
		}
		l.owners[defId] = &FuncItem{
			Base: Base{l.nextId(parentOwner)}, Def: defId, Generics: generics,
			HasSelf: n.Sig.HasSelf, SelfByRef: n.Sig.SelfByRef, SelfMut: n.Sig.SelfMut,
			Params: params, ReturnType: returnType, Body: bodyId,
		}
		return defId, true

	case *ast.InitItem:
		defId := l.defOf(n.Id())
		generics := l.lowerGenerics(n.Sig.Generics, defId)
		params := l.lowerParams(n.Sig.Params, defId)
		var returnType Type
		if n.Sig.ReturnType != nil {
			returnType = l.lowerType(n.Sig.ReturnType, defId)
		}
		var bodyId *BodyId
		if n.Body != nil {
			bid := l.lowerBody(n.Body, defId)
			bodyId = &bid
		}
		l.owners[defId] = &InitItem{
			Base: Base{l.nextId(parentOwner)}, Def: defId, Generics: generics,
			Params: params, ReturnType: returnType, Body: bodyId,
		}
		return defId, true

	case *ast.ImplItem:
		defId := l.defOf(n.Id())
		generics := l.lowerGenerics(n.Generics, defId)
		var trait Type
		if n.Trait != nil {
			trait = l.lowerType(n.Trait, defId)
		}
		target := l.lowerType(n.Target, defId)
		items := l.lowerItems(n.Items, defId)
		l.owners[defId] = &ImplItem{Base: Base{l.nextId(parentOwner)}, Def: defId, Generics: generics, Trait: trait, Target: target, Items: items}
		return defId, true

	case *ast.TraitItem:
		defId := l.defOf(n.Id())
		generics := l.lowerGenerics(n.Generics, defId)
		super := make([]Type, len(n.Super))
		for i, s := range n.Super {
			super[i] = l.lowerType(s, defId)
		}
		items := l.lowerItems(n.Items, defId)
		l.owners[defId] = &TraitItem{Base: Base{l.nextId(parentOwner)}, Def: defId, Generics: generics, Super: super, Items: items}
		return defId, true

	case *ast.EnumItem:
		defId := l.defOf(n.Id())
		generics := l.lowerGenerics(n.Generics, defId)
		variants := make([]Variant, len(n.Variants))
		for i, v := range n.Variants {
			variants[i] = l.lowerVariant(v, defId)
		}
		l.owners[defId] = &EnumItem{Base: Base{l.nextId(parentOwner)}, Def: defId, Generics: generics, Variants: variants}
		return defId, true

	case *ast.StructItem:
		defId := l.defOf(n.Id())
		generics := l.lowerGenerics(n.Generics, defId)
		fields := make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = Field{Name: symbol.Get(f.Name.Sym), TypeAnn: l.lowerType(f.TypeAnn, defId)}
		}
		l.owners[defId] = &StructItem{Base: Base{l.nextId(parentOwner)}, Def: defId, Generics: generics, Fields: fields, IsTuple: n.IsTuple}
		return defId, true

	case *ast.TypeAliasItem:
		defId := l.defOf(n.Id())
		generics := l.lowerGenerics(n.Generics, defId)
		var bound, value Type
		if n.Bound != nil {
			bound = l.lowerType(n.Bound, defId)
		}
		if n.Value != nil {
			value = l.lowerType(n.Value, defId)
		}
		l.owners[defId] = &TypeAliasItem{Base: Base{l.nextId(parentOwner)}, Def: defId, Generics: generics, Bound: bound, Value: value}
		return defId, true

	case *ast.ConstItem:
		defId := l.defOf(n.Id())
		var typeAnn Type
		if n.TypeAnn != nil {
			typeAnn = l.lowerType(n.TypeAnn, defId)
		}
		var bodyId BodyId
		if n.Value != nil {
			bodyId = n.Value.Id()
			l.bodies[bodyId] = &Body{Value: l.lowerExpr(n.Value, defId)}
		}
		l.owners[defId] = &ConstItem{Base: Base{l.nextId(parentOwner)}, Def: defId, TypeAnn: typeAnn, Value: bodyId}
		return defId, true

	case *ast.UseDeclItem, *ast.ErrorNode:
		// Use declarations were already expanded into import aliases by
		// the Importer; nothing owns one in HIR.
		return 0, false

	default:
		panic(fmt.Sprintf("hir: unhandled item variant %T", it))
	}
}

func (l *Lowering) lowerVariant(v ast.Variant, owner resolve.DefId) Variant {
	defId := l.defOf(v.Id())
	tupleTypes := make([]Type, len(v.TupleTypes))
	for i, t := range v.TupleTypes {
		tupleTypes[i] = l.lowerType(t, owner)
	}
	fields := make([]Field, len(v.Fields))
	for i, f := range v.Fields {
		fields[i] = Field{Name: symbol.Get(f.Name.Sym), TypeAnn: l.lowerType(f.TypeAnn, owner)}
	}
	var discriminant *BodyId
	if v.Discriminant != nil {
		bid := v.Discriminant.Id()
		l.bodies[bid] = &Body{Value: l.lowerExpr(v.Discriminant, owner)}
		discriminant = &bid
	}
	return Variant{Def: defId, TupleTypes: tupleTypes, Fields: fields, Discriminant: discriminant}
}

func (l *Lowering) lowerGenerics(generics []ast.GenericParam, owner resolve.DefId) []GenericParam {
	out := make([]GenericParam, len(generics))
	for i, g := range generics {
		defId := l.defOf(g.Id())
		var bound, constTy Type
		if g.Bound != nil {
			bound = l.lowerType(g.Bound, owner)
		}
		if g.Kind == ast.GenericParamConst && g.ConstTy != nil {
			constTy = l.lowerType(g.ConstTy, owner)
		}
		out[i] = GenericParam{Def: defId, Kind: g.Kind, Bound: bound, ConstTy: constTy}
	}
	return out
}

func (l *Lowering) lowerParams(params []ast.FuncParam, owner resolve.DefId) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		var typeAnn Type
		if p.TypeAnn != nil {
			typeAnn = l.lowerType(p.TypeAnn, owner)
		}
		out[i] = Param{Pat: l.lowerPat(p.Pat, owner), TypeAnn: typeAnn}
	}
	return out
}

func (l *Lowering) lowerBody(body *ast.Body, owner resolve.DefId) BodyId {
	bid := body.Id()
	l.bodies[bid] = &Body{Params: l.lowerParams(body.Params, owner), Value: l.lowerExpr(body.Value, owner)}
	return bid
}

// --- types ---

func (l *Lowering) lowerType(t ast.Type, owner resolve.DefId) Type {
	switch n := t.(type) {
	case *ast.ParenType:
		return l.lowerType(n.Value, owner)
	case *ast.TupleType:
		elems := make([]Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = l.lowerType(e, owner)
		}
		return &TupleType{Base: Base{l.nextId(owner)}, Elements: elems}
	case *ast.FuncType:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = l.lowerType(p, owner)
		}
		var ret Type
		if n.ReturnType != nil {
			ret = l.lowerType(n.ReturnType, owner)
		}
		return &FuncType{Base: Base{l.nextId(owner)}, Params: params, ReturnType: ret}
	case *ast.SliceType:
		return &SliceType{Base: Base{l.nextId(owner)}, Element: l.lowerType(n.Element, owner)}
	case *ast.ArrayType:
		bid := n.Size.Id()
		l.bodies[bid] = &Body{Value: l.lowerExpr(n.Size.Value, owner)}
		return &ArrayType{Base: Base{l.nextId(owner)}, Element: l.lowerType(n.Element, owner), Size: bid}
	case *ast.PathType:
		return &PathType{Base: Base{l.nextId(owner)}, Res: l.resOf(n.Path.Id())}
	case *ast.UnitType:
		return &UnitType{Base: Base{l.nextId(owner)}}
	case *ast.ErrorNode:
		return &ErrorType{Base: Base{l.nextId(owner)}}
	default:
		panic(fmt.Sprintf("hir: unhandled type variant %T", t))
	}
}

// --- expressions ---

func (l *Lowering) lowerExpr(e ast.Expr, owner resolve.DefId) Expr {
	switch n := e.(type) {
	case *ast.AssignExpr:
		lhs := l.lowerExpr(n.Lhs, owner)
		rhs := l.lowerExpr(n.Rhs, owner)
		if n.Op.Compound {
			lhsDup := l.lowerExpr(n.Lhs, owner)
			rhs = &InfixExpr{Base: Base{l.nextId(owner)}, Lhs: lhsDup, Op: n.Op.Op, Rhs: rhs}
		}
		return &AssignExpr{Base: Base{l.nextId(owner)}, Lhs: lhs, Rhs: rhs}
	case *ast.BlockExpr:
		return &BlockExpr{Base: Base{l.nextId(owner)}, Value: l.lowerBlock(n.Value, owner)}
	case *ast.BorrowExpr:
		return &BorrowExpr{Base: Base{l.nextId(owner)}, Mut: n.Mut, Value: l.lowerExpr(n.Value, owner)}
	case *ast.BreakExpr:
		var v Expr
		if n.Value != nil {
			v = l.lowerExpr(n.Value, owner)
		}
		return &BreakExpr{Base: Base{l.nextId(owner)}, Value: v}
	case *ast.ContinueExpr:
		return &ContinueExpr{Base: Base{l.nextId(owner)}}
	case *ast.CastExpr:
		return &CastExpr{Base: Base{l.nextId(owner)}, Value: l.lowerExpr(n.Value, owner), TargetType: l.lowerType(n.TargetType, owner)}
	case *ast.FieldExpr:
		return &FieldExpr{Base: Base{l.nextId(owner)}, Target: l.lowerExpr(n.Target, owner), Name: symbol.Get(n.Name.Sym)}
	case *ast.ForExpr:
		return l.lowerFor(n, owner)
	case *ast.IfExpr:
		var elseExpr Expr
		if n.Else != nil {
			elseExpr = l.lowerExpr(n.Else, owner)
		}
		return &IfExpr{Base: Base{l.nextId(owner)}, Cond: l.lowerExpr(n.Cond, owner), Then: l.lowerBlock(n.Then, owner), Else: elseExpr}
	case *ast.InfixExpr:
		if n.Op == ast.OpAnd {
			return l.lowerAnd(n, owner)
		}
		if n.Op == ast.OpOr {
			return l.lowerOr(n, owner)
		}
		return &InfixExpr{Base: Base{l.nextId(owner)}, Lhs: l.lowerExpr(n.Lhs, owner), Op: n.Op, Rhs: l.lowerExpr(n.Rhs, owner)}
	case *ast.InvokeExpr:
		args := make([]Arg, len(n.Args))
		for i, a := range n.Args {
			var label *string
			if a.Label != nil {
				s := symbol.Get(a.Label.Sym)
				label = &s
			}
			args[i] = Arg{Label: label, Value: l.lowerExpr(a.Value, owner)}
		}
		return &InvokeExpr{Base: Base{l.nextId(owner)}, Callee: l.lowerExpr(n.Callee, owner), Args: args}
	case *ast.LambdaExpr:
		var ret Type
		if n.ReturnType != nil {
			ret = l.lowerType(n.ReturnType, owner)
		}
		return &LambdaExpr{Base: Base{l.nextId(owner)}, Params: l.lowerParams(n.Params, owner), ReturnType: ret, Body: l.lowerExpr(n.Body, owner)}
	case *ast.ListExpr:
		elems := make([]Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = l.lowerExpr(el, owner)
		}
		return &ListExpr{Base: Base{l.nextId(owner)}, Elements: elems}
	case *ast.LiteralExpr:
		return &LiteralExpr{Base: Base{l.nextId(owner)}, Lit: n.Lit}
	case *ast.LoopExpr:
		return &LoopExpr{Base: Base{l.nextId(owner)}, Body: l.lowerBlock(n.Body, owner)}
	case *ast.MatchExpr:
		arms := make([]Arm, len(n.Arms))
		for i, a := range n.Arms {
			var guard Expr
			if a.Guard != nil {
				guard = l.lowerExpr(a.Guard, owner)
			}
			arms[i] = Arm{Pattern: l.lowerPat(a.Pattern, owner), Guard: guard, Body: l.lowerExpr(a.Body, owner)}
		}
		return &MatchExpr{Base: Base{l.nextId(owner)}, Scrutinee: l.lowerExpr(n.Scrutinee, owner), Arms: arms}
	case *ast.ParenExpr:
		return l.lowerExpr(n.Value, owner)
	case *ast.PathExpr:
		return &PathExpr{Base: Base{l.nextId(owner)}, Res: l.resOf(n.Path.Id())}
	case *ast.PostfixExpr:
		return &PostfixExpr{Base: Base{l.nextId(owner)}, Target: l.lowerExpr(n.Target, owner), Op: n.Op}
	case *ast.PrefixExpr:
		return &PrefixExpr{Base: Base{l.nextId(owner)}, Op: n.Op, Target: l.lowerExpr(n.Target, owner)}
	case *ast.ReturnExpr:
		var v Expr
		if n.Value != nil {
			v = l.lowerExpr(n.Value, owner)
		}
		return &ReturnExpr{Base: Base{l.nextId(owner)}, Value: v}
	case *ast.SelfExpr:
		return &SelfExpr{Base: Base{l.nextId(owner)}}
	case *ast.SpreadExpr:
		return &SpreadExpr{Base: Base{l.nextId(owner)}, Value: l.lowerExpr(n.Value, owner)}
	case *ast.SubscriptExpr:
		return &SubscriptExpr{Base: Base{l.nextId(owner)}, Target: l.lowerExpr(n.Target, owner), Index: l.lowerExpr(n.Index, owner)}
	case *ast.TupleExpr:
		elems := make([]Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = l.lowerExpr(el, owner)
		}
		return &TupleExpr{Base: Base{l.nextId(owner)}, Elements: elems}
	case *ast.UnitExpr:
		return &UnitExpr{Base: Base{l.nextId(owner)}}
	case *ast.WhileExpr:
		return l.lowerWhile(n, owner)
	case *ast.ErrorNode:
		return &ErrorExpr{Base: Base{l.nextId(owner)}}
	default:
		panic(fmt.Sprintf("hir: unhandled expr variant %T", e))
	}
}

// lowerAnd desugars `a && b` into `if a { b } else { false }`.
func (l *Lowering) lowerAnd(n *ast.InfixExpr, owner resolve.DefId) Expr {
	lhs := l.lowerExpr(n.Lhs, owner)
	rhs := l.lowerExpr(n.Rhs, owner)
	elseLit := &LiteralExpr{Base: Base{l.nextId(owner)}, Lit: boolLit(false)}
	return &IfExpr{Base: Base{l.nextId(owner)}, Cond: lhs, Then: Block{Tail: rhs}, Else: elseLit}
}

// lowerOr desugars `a || b` into `if a { true } else { b }`.
func (l *Lowering) lowerOr(n *ast.InfixExpr, owner resolve.DefId) Expr {
	lhs := l.lowerExpr(n.Lhs, owner)
	rhs := l.lowerExpr(n.Rhs, owner)
	thenLit := &LiteralExpr{Base: Base{l.nextId(owner)}, Lit: boolLit(true)}
	return &IfExpr{Base: Base{l.nextId(owner)}, Cond: lhs, Then: Block{Tail: thenLit}, Else: rhs}
}

func boolLit(v bool) token.Lit {
	text := "false"
	if v {
		text = "true"
	}
	return token.Lit{Kind: token.LitBool, Sym: symbol.Intern(text)}
}

// lowerWhile desugars `while cond { body }` into `loop { if cond { body }
// else { break } }`.
func (l *Lowering) lowerWhile(n *ast.WhileExpr, owner resolve.DefId) Expr {
	cond := l.lowerExpr(n.Cond, owner)
	body := l.lowerBlock(n.Body, owner)
	brk := &BreakExpr{Base: Base{l.nextId(owner)}}
	guarded := &IfExpr{Base: Base{l.nextId(owner)}, Cond: cond, Then: body, Else: &BlockExpr{Base: Base{l.nextId(owner)}, Value: Block{Tail: brk}}}
	return &LoopExpr{Base: Base{l.nextId(owner)}, Body: Block{Tail: guarded}}
}

// lowerFor desugars `for pat in e { body }` into the canonical
// iterator-protocol form: a binding for
// `IntoIter::into_iter(e)`, a `loop` over `iter.next()`, matched against
// `Some(pat) => body` / `None => break`. The callee/variant names are
// symbolic path nodes carrying Res::Error: the lowering does not need
// to resolve them, a later pass will; the synthetic `iter` local is
// referenced the same way, by
// convention rather than by a real resolution, since nothing in the
// surface language produced it for the name resolver to have seen.
func (l *Lowering) lowerFor(n *ast.ForExpr, owner resolve.DefId) Expr {
	iter := l.lowerExpr(n.Iter, owner)
	intoIterCall := &InvokeExpr{Base: Base{l.nextId(owner)}, Callee: l.symbolicPathExpr(owner), Args: []Arg{{Value: iter}}}
	iterPat := &IdentPat{Base: Base{l.nextId(owner)}, Name: "iter"}
	letIter := &LetStmt{Pattern: iterPat, Value: intoIterCall}

	nextCall := &InvokeExpr{
		Base:   Base{l.nextId(owner)},
		Callee: &FieldExpr{Base: Base{l.nextId(owner)}, Target: l.symbolicPathExpr(owner), Name: "next"},
	}

	bodyPat := l.lowerPat(n.Pattern, owner)
	somePat := &TupleVariantPat{Base: Base{l.nextId(owner)}, Res: resolve.ErrorRes, Elements: []Pat{bodyPat}}
	nonePat := &TupleVariantPat{Base: Base{l.nextId(owner)}, Res: resolve.ErrorRes}

	bodyVal := &BlockExpr{Base: Base{l.nextId(owner)}, Value: l.lowerBlock(n.Body, owner)}
	breakArm := &BreakExpr{Base: Base{l.nextId(owner)}}

	match := &MatchExpr{
		Base:      Base{l.nextId(owner)},
		Scrutinee: nextCall,
		Arms: []Arm{
			{Pattern: somePat, Body: bodyVal},
			{Pattern: nonePat, Body: breakArm},
		},
	}
	loop := &LoopExpr{Base: Base{l.nextId(owner)}, Body: Block{Tail: match}}
	return &BlockExpr{Base: Base{l.nextId(owner)}, Value: Block{Stmts: []Stmt{letIter}, Tail: loop}}
}

func (l *Lowering) symbolicPathExpr(owner resolve.DefId) *PathExpr {
	return &PathExpr{Base: Base{l.nextId(owner)}, Res: resolve.ErrorRes}
}

// --- blocks, statements ---

func (l *Lowering) lowerBlock(b ast.Block, owner resolve.DefId) Block {
	stmts := make([]Stmt, 0, len(b.Stmts))
	for _, st := range b.Stmts {
		if s, ok := l.lowerStmt(st, owner); ok {
			stmts = append(stmts, s)
		}
	}
	var tail Expr
	if b.Tail != nil {
		tail = l.lowerExpr(b.Tail, owner)
	}
	return Block{Stmts: stmts, Tail: tail}
}

func (l *Lowering) lowerStmt(st ast.Stmt, owner resolve.DefId) (Stmt, bool) {
	switch n := st.(type) {
	case *ast.LetStmt:
		var typeAnn Type
		if n.TypeAnn != nil {
			typeAnn = l.lowerType(n.TypeAnn, owner)
		}
		var value Expr
		if n.Value != nil {
			value = l.lowerExpr(n.Value, owner)
		}
		return &LetStmt{Pattern: l.lowerPat(n.Pattern, owner), TypeAnn: typeAnn, Value: value}, true
	case *ast.ItemStmt:
		// A block-scoped item has its own DefId and owns its own HIR
		// nodes exactly like a top-level one (see resolve.Builder's
		// BlockModules); lower it into Owners for that DefId and drop it
		// from the Block's Stmts list, since the declaration itself has
		// no runtime effect to execute in statement position.
		l.lowerItem(n.Decl, owner)
		return nil, false
	case *ast.ExprStmt:
		return &ExprStmt{Value: l.lowerExpr(n.Value, owner)}, true
	default:
		panic(fmt.Sprintf("hir: unhandled stmt variant %T", st))
	}
}

// --- patterns ---

func (l *Lowering) lowerPat(p ast.Pat, owner resolve.DefId) Pat {
	switch n := p.(type) {
	case *ast.MultiPat:
		alts := make([]Pat, len(n.Alternatives))
		for i, a := range n.Alternatives {
			alts[i] = l.lowerPat(a, owner)
		}
		return &MultiPat{Base: Base{l.nextId(owner)}, Alternatives: alts}
	case *ast.ParenPat:
		return l.lowerPat(n.Value, owner)
	case *ast.LitPat:
		lit, _ := l.lowerExpr(n.Value, owner).(*LiteralExpr)
		return &LitPat{Base: Base{l.nextId(owner)}, Value: lit}
	case *ast.IdentPat:
		var sub Pat
		if n.SubPat != nil {
			sub = l.lowerPat(n.SubPat, owner)
		}
		return &IdentPat{Base: Base{l.nextId(owner)}, Ref: n.Ref, Mut: n.Mut, Name: symbol.Get(n.Name.Sym), SubPat: sub}
	case *ast.RefPat:
		return &RefPat{Base: Base{l.nextId(owner)}, Mut: n.Mut, Value: l.lowerPat(n.Value, owner)}
	case *ast.PathPat:
		return &PathPat{Base: Base{l.nextId(owner)}, Res: l.resOf(n.Path.Id())}
	case *ast.WildcardPat:
		return &WildcardPat{Base: Base{l.nextId(owner)}}
	case *ast.RestPat:
		return &RestPat{Base: Base{l.nextId(owner)}}
	case *ast.StructPat:
		fields := make([]FieldPat, len(n.Fields))
		for i, f := range n.Fields {
			var pat Pat
			if f.Pattern != nil {
				pat = l.lowerPat(f.Pattern, owner)
			} else {
				pat = &IdentPat{Base: Base{l.nextId(owner)}, Ref: f.Ref, Mut: f.Mut, Name: symbol.Get(f.Name.Sym)}
			}
			fields[i] = FieldPat{Name: symbol.Get(f.Name.Sym), Pattern: pat}
		}
		return &StructPat{Base: Base{l.nextId(owner)}, Res: l.resOf(n.Path.Id()), Fields: fields, HasRest: n.HasRest}
	case *ast.TuplePat:
		elems := make([]Pat, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = l.lowerPat(e, owner)
		}
		return &TuplePat{Base: Base{l.nextId(owner)}, Elements: elems, RestIndex: n.RestIndex}
	case *ast.SlicePat:
		elems := make([]Pat, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = l.lowerPat(e, owner)
		}
		return &SlicePat{Base: Base{l.nextId(owner)}, Elements: elems, RestIndex: n.RestIndex}
	case *ast.ErrorNode:
		return &ErrorPat{Base: Base{l.nextId(owner)}}
	default:
		panic(fmt.Sprintf("hir: unhandled pat variant %T", p))
	}
}

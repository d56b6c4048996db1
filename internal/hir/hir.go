// Package hir implements the distilled tree AST lowering produces: items
// keyed by definition identity rather than syntax, bodies split out from
// their signatures, and every reference carrying its resolution directly
// instead of through a side table.
package hir

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/resolve"
)

// HirId identifies a node relative to its owner: the DefId of the
// enclosing item plus a counter private to that owner, incremented as
// nodes are allocated during lowering.
type HirId struct {
	Owner resolve.DefId
	Child uint32
}

// ItemId is a HIR item's identity: the same DefId the Module Tree Builder
// already allocated for it, so Owners can be keyed directly by DefId with
// no separate numbering scheme.
type ItemId = resolve.DefId

// BodyId identifies a function/init/const body: for a function or init,
// the NodeId of the ast.Body it was lowered from (block and `= expr` forms
// alike); for a const, the NodeId of its value expression.
type BodyId = ast.NodeId

// Node is the base interface every HIR node implements.
type Node interface {
	HirId() HirId
}

// Base is embedded by every concrete HIR node.
type Base struct {
	Id HirId
}

func (b Base) HirId() HirId { return b.Id }

// Item, Stmt, Expr, Type, and Pat mirror the AST's five syntactic
// categories, dispatched the same way: a type switch over concrete
// structs, never a virtual Accept call.
type Item interface {
	Node
	isItem()
}

type Stmt interface {
	Node
	isStmt()
}

type Expr interface {
	Node
	isExpr()
}

type Type interface {
	Node
	isType()
}

type Pat interface {
	Node
	isPat()
}

// Body holds one function/init/lambda/const's executable payload, split
// from the item that owns it so later passes can look one up by BodyId
// without walking the whole item tree.
type Body struct {
	Params []Param
	Value  Expr
}

// Param is one lowered function/lambda parameter.
type Param struct {
	Pat     Pat
	TypeAnn Type // nil means inferred/absent
}

// Party is the finished HIR for one compilation: every item reachable
// from the root module, keyed by identity, plus the bodies and a
// Mod-only submap kept separately (it is the input surface a later
// item-resolution pass walks to find nested modules without
// re-filtering all of Owners).
type Party struct {
	RootMod resolve.DefId
	Owners  map[ItemId]Item
	Bodies  map[BodyId]*Body
	Modules map[ItemId]*ModItem
}

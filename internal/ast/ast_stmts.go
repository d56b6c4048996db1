package ast

// Stmt variants: Let, Item, Expr.

// LetStmt is a local binding: `let pat [: Type] [= expr];`.
type LetStmt struct {
	Base
	Pattern Pat
	TypeAnn Type
	Value   Expr // nil for `let x: Int;` with no initializer
}

func (*LetStmt) isStmt() {}

// ItemStmt wraps an item declared inside a block (a nested `func`, `struct`,
// etc.), distinguishing item-introduced scope from ordinary statements.
type ItemStmt struct {
	Base
	Decl Item
}

func (*ItemStmt) isStmt() {}

// ExprStmt is an expression used for its side effects (as opposed to a
// block's trailing expression, which is its value).
type ExprStmt struct {
	Base
	Value Expr
	// HasSemi records whether a `;` followed the expression, distinguishing
	// `foo();` (ExprStmt) from a trailing `foo()` (Block.Tail) at the parser
	// level even before the block's own tail-promotion rule applies.
	HasSemi bool
}

func (*ExprStmt) isStmt() {}

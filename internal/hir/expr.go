package hir

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/resolve"
	"github.com/vellum-lang/vellum/internal/token"
)

// Block is a lowered brace-delimited sequence with an optional trailing
// value, same shape as the AST's but with lowered children.
type Block struct {
	Stmts []Stmt
	Tail  Expr // nil if the block has no trailing expression
}

// LetStmt is a lowered local binding.
type LetStmt struct {
	Pattern Pat
	TypeAnn Type // nil if omitted
	Value   Expr // nil for `let x: Int;` with no initializer
}

func (*LetStmt) isStmt() {}

// ExprStmt is a lowered expression-for-effect statement.
type ExprStmt struct {
	Value Expr
}

func (*ExprStmt) isStmt() {}

// AssignExpr is `lhs = rhs`. A compound `lhs op= rhs` is desugared at
// lowering time into `lhs = lhs op rhs`; HIR only ever
// sees the plain form.
type AssignExpr struct {
	Base
	Lhs Expr
	Rhs Expr
}

func (*AssignExpr) isExpr() {}

// BlockExpr wraps a Block as an expression.
type BlockExpr struct {
	Base
	Value Block
}

func (*BlockExpr) isExpr() {}

// BorrowExpr is `&[mut] expr`.
type BorrowExpr struct {
	Base
	Mut   bool
	Value Expr
}

func (*BorrowExpr) isExpr() {}

// BreakExpr is `break [expr]`.
type BreakExpr struct {
	Base
	Value Expr // nil if none
}

func (*BreakExpr) isExpr() {}

// ContinueExpr is `continue`.
type ContinueExpr struct {
	Base
}

func (*ContinueExpr) isExpr() {}

// CastExpr is `expr as Type`.
type CastExpr struct {
	Base
	Value      Expr
	TargetType Type
}

func (*CastExpr) isExpr() {}

// FieldExpr is `expr.name`.
type FieldExpr struct {
	Base
	Target Expr
	Name   string
}

func (*FieldExpr) isExpr() {}

// IfExpr is `if cond { then } [else elseBranch]`.
type IfExpr struct {
	Base
	Cond Expr
	Then Block
	Else Expr // nil, *IfExpr, or *BlockExpr from source; any Expr when desugared from `and`/`or`
}

func (*IfExpr) isExpr() {}

// InfixExpr is `lhs op rhs`. `&&`/`||` never reach HIR as InfixExpr: they
// are desugared into IfExpr during lowering.
type InfixExpr struct {
	Base
	Lhs Expr
	Op  ast.BinOp
	Rhs Expr
}

func (*InfixExpr) isExpr() {}

// Arg is one lowered call-site argument.
type Arg struct {
	Label *string
	Value Expr
}

// InvokeExpr is a lowered call `callee(args...)`.
type InvokeExpr struct {
	Base
	Callee Expr
	Args   []Arg
}

func (*InvokeExpr) isExpr() {}

// LambdaExpr is a lowered `|params| body`.
type LambdaExpr struct {
	Base
	Params     []Param
	ReturnType Type // nil if omitted
	Body       Expr
}

func (*LambdaExpr) isExpr() {}

// ListExpr is `[e1, e2, ...]`.
type ListExpr struct {
	Base
	Elements []Expr
}

func (*ListExpr) isExpr() {}

// LiteralExpr wraps a scanned literal token payload, unevaluated (literal
// suffixes are resolved by a later pass).
type LiteralExpr struct {
	Base
	Lit token.Lit
}

func (*LiteralExpr) isExpr() {}

// LoopExpr is `loop { body }`. `while cond { body }` is desugared into
// `loop { if cond { body } else { break } }` during lowering.
type LoopExpr struct {
	Base
	Body Block
}

func (*LoopExpr) isExpr() {}

// Arm is one lowered `pattern [if guard] => body` match arm.
type Arm struct {
	Pattern Pat
	Guard   Expr // nil if none
	Body    Expr
}

// MatchExpr is a lowered `match scrutinee { arm, arm, ... }`.
type MatchExpr struct {
	Base
	Scrutinee Expr
	Arms      []Arm
}

func (*MatchExpr) isExpr() {}

// PathExpr is a lowered name reference, carrying its resolution directly
// rather than through a side table.
type PathExpr struct {
	Base
	Res resolve.Res
}

func (*PathExpr) isExpr() {}

// PostfixExpr is `expr?`.
type PostfixExpr struct {
	Base
	Target Expr
	Op     ast.PostfixOp
}

func (*PostfixExpr) isExpr() {}

// PrefixExpr is `op expr`.
type PrefixExpr struct {
	Base
	Op     ast.PrefixOp
	Target Expr
}

func (*PrefixExpr) isExpr() {}

// ReturnExpr is `return [expr]`.
type ReturnExpr struct {
	Base
	Value Expr // nil if none
}

func (*ReturnExpr) isExpr() {}

// SelfExpr is the bare `self` expression.
type SelfExpr struct {
	Base
}

func (*SelfExpr) isExpr() {}

// SpreadExpr is `...expr`.
type SpreadExpr struct {
	Base
	Value Expr
}

func (*SpreadExpr) isExpr() {}

// SubscriptExpr is `target[index]`.
type SubscriptExpr struct {
	Base
	Target Expr
	Index  Expr
}

func (*SubscriptExpr) isExpr() {}

// TupleExpr is `(e1, e2, ...)`.
type TupleExpr struct {
	Base
	Elements []Expr
}

func (*TupleExpr) isExpr() {}

// UnitExpr is `()`.
type UnitExpr struct {
	Base
}

func (*UnitExpr) isExpr() {}

// ErrorExpr stands in for an AST ErrorNode encountered during lowering:
// the diagnostic was already reported by the parser, so lowering need
// only preserve a placeholder.
type ErrorExpr struct {
	Base
}

func (*ErrorExpr) isExpr() {}

package ast

import "github.com/vellum-lang/vellum/internal/token"

// Expr variants: Assign, Block, Borrow, Break, Continue,
// Field, For, If, Infix, Invoke, Lambda, List, Literal, Loop, Match,
// Paren, Path, Postfix, Prefix, Return, Self, Spread, Subscript, Tuple,
// Unit, While.

// BinOp enumerates infix operators.
type BinOp uint8

const (
	OpOr BinOp = iota
	OpAnd
	OpEq
	OpNotEq
	OpRefEq
	OpRefNotEq
	OpLt
	OpGt
	OpLe
	OpGe
	OpSpaceship
	OpRange
	OpRangeEq
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
	// OpCustomIdent marks an identifier used in infix-operator position
	// (`a foo b`); the identifier itself lives in InfixExpr.CustomOp. The
	// validator always rejects it: the feature is grammar-reserved but not
	// implemented (spec.md §4.5, §7).
	OpCustomIdent
)

// CastExpr is `expr as Type`. It fills a gap the same way ConstItem
// fills the missing `const` item head, grounded in the same Rust-like
// cast syntax the rest of the grammar already borrows from.
type CastExpr struct {
	Base
	Value      Expr
	TargetType Type
}

func (*CastExpr) isExpr() {}

// PrefixOp enumerates prefix operators.
type PrefixOp uint8

const (
	PrefixNeg PrefixOp = iota
	PrefixNot
	PrefixDeref // `*expr`
)

// AssignOp distinguishes plain `=` from a compound `op=` assignment; the
// compound form still lowers to `lhs = lhs op rhs` during HIR lowering
//, but the parser keeps the original operator for
// diagnostics and pretty-printing.
type AssignOp struct {
	Compound bool
	Op       BinOp // meaningful only if Compound
}

// AssignExpr is `lhs = rhs` or `lhs op= rhs`. The validator enforces that
// Lhs is a place expression and is not itself an AssignExpr.
type AssignExpr struct {
	Base
	Lhs Expr
	Op  AssignOp
	Rhs Expr
}

func (*AssignExpr) isExpr() {}

// BlockExpr wraps a Block as an expression (block-as-expression).
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

// BreakExpr is `break [expr]`, valid only inside a loop context.
type BreakExpr struct {
	Base
	Value Expr // optional
}

func (*BreakExpr) isExpr() {}

// ContinueExpr is `continue`, valid only inside a loop context.
type ContinueExpr struct {
	Base
}

func (*ContinueExpr) isExpr() {}

// FieldExpr is `expr.name`.
type FieldExpr struct {
	Base
	Target Expr
	Name   Ident
}

func (*FieldExpr) isExpr() {}

// ForExpr is `for pat in iterExpr { body }`, desugared during lowering.
type ForExpr struct {
	Base
	Pattern Pat
	Iter    Expr
	Body    Block
}

func (*ForExpr) isExpr() {}

// IfExpr is `if cond { then } [else elseBranch]`. elseBranch may itself be
// an IfExpr (else-if chaining) or a BlockExpr.
type IfExpr struct {
	Base
	Cond Expr
	Then Block
	Else Expr // nil, *IfExpr, or *BlockExpr
}

func (*IfExpr) isExpr() {}

// InfixExpr is `lhs op rhs` for any of the binary operators in BinOp.
// Chained comparisons (`a < b < c`) parse into nested InfixExprs that the
// validator rejects. When Op is OpCustomIdent, the operator was spelled as
// a bare identifier (`a foo b`) rather than a punctuation token; CustomOp
// then holds that identifier and the validator rejects the expression
// outright, since custom infix operators are grammar-reserved but not
// implemented.
type InfixExpr struct {
	Base
	Lhs      Expr
	Op       BinOp
	CustomOp Ident // meaningful only if Op == OpCustomIdent
	Rhs      Expr
}

func (*InfixExpr) isExpr() {}

// InvokeExpr is a call `callee(args...)`.
type InvokeExpr struct {
	Base
	Callee Expr
	Args   []Arg
}

func (*InvokeExpr) isExpr() {}

// LambdaExpr is `|params| body` or `|params| -> RetType { body }`.
type LambdaExpr struct {
	Base
	Params     []FuncParam
	ReturnType Type // optional
	Body       Expr
}

func (*LambdaExpr) isExpr() {}

// ListExpr is `[e1, e2, ...]`.
type ListExpr struct {
	Base
	Elements []Expr
}

func (*ListExpr) isExpr() {}

// LiteralExpr wraps a scanned literal token payload.
type LiteralExpr struct {
	Base
	Lit token.Lit
}

func (*LiteralExpr) isExpr() {}

// LoopExpr is `loop { body }`, an unconditional loop; `while` desugars
// into one during lowering.
type LoopExpr struct {
	Base
	Body Block
}

func (*LoopExpr) isExpr() {}

// MatchExpr is `match scrutinee { arm, arm, ... }`.
type MatchExpr struct {
	Base
	Scrutinee Expr
	Arms      []MatchArm
}

func (*MatchExpr) isExpr() {}

// ParenExpr is `(expr)`; discarded (its inner expression promoted) during
// HIR lowering. Double parens and parens around a simple
// primary are validator warnings.
type ParenExpr struct {
	Base
	Value Expr
}

func (*ParenExpr) isExpr() {}

// PathExpr is a (possibly qualified, possibly generic) name reference used
// in value position.
type PathExpr struct {
	Base
	Path Path
}

func (*PathExpr) isExpr() {}

// PostfixOp enumerates postfix operators sharing one precedence level
//: `?` is the only bare postfix keyword-free
// operator; `.`, call, and index are represented by their own Expr
// variants (FieldExpr, InvokeExpr, SubscriptExpr) instead, since each
// carries its own payload. PostfixExpr models the remaining operator-only
// postfix form.
type PostfixOp uint8

const (
	PostfixTry PostfixOp = iota // `expr?`
)

// PostfixExpr is `expr?`.
type PostfixExpr struct {
	Base
	Target Expr
	Op     PostfixOp
}

func (*PostfixExpr) isExpr() {}

// PrefixExpr is `op expr` for one of PrefixOp.
type PrefixExpr struct {
	Base
	Op     PrefixOp
	Target Expr
}

func (*PrefixExpr) isExpr() {}

// ReturnExpr is `return [expr]`, valid only inside a function context.
type ReturnExpr struct {
	Base
	Value Expr // optional
}

func (*ReturnExpr) isExpr() {}

// SelfExpr is the bare `self` expression, valid only inside a method
// context.
type SelfExpr struct {
	Base
}

func (*SelfExpr) isExpr() {}

// SpreadExpr is `...expr`, used inside list/tuple/call literal positions.
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

// TupleExpr is `(e1, e2, ...)` with two or more elements (a single
// parenthesized expression is a ParenExpr, not a one-element tuple).
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

// WhileExpr is `while cond { body }`, desugared during lowering into
// `loop { if cond { body } else { break } }`.
type WhileExpr struct {
	Base
	Cond Expr
	Body Block
}

func (*WhileExpr) isExpr() {}

package hir

import "github.com/vellum-lang/vellum/internal/resolve"

// MultiPat is `p1 | p2 | p3`.
type MultiPat struct {
	Base
	Alternatives []Pat
}

func (*MultiPat) isPat() {}

// LitPat matches a literal value exactly.
type LitPat struct {
	Base
	Value *LiteralExpr
}

func (*LitPat) isPat() {}

// IdentPat is `ref? mut? IDENT (@ pat)?`.
type IdentPat struct {
	Base
	Ref    bool
	Mut    bool
	Name   string
	SubPat Pat // nil if no `@ pat`
}

func (*IdentPat) isPat() {}

// RefPat is `& mut? pat`.
type RefPat struct {
	Base
	Mut   bool
	Value Pat
}

func (*RefPat) isPat() {}

// PathPat matches a named constant, unit-struct, or unit-variant by path.
type PathPat struct {
	Base
	Res resolve.Res
}

func (*PathPat) isPat() {}

// WildcardPat is the bare `_` pattern.
type WildcardPat struct {
	Base
}

func (*WildcardPat) isPat() {}

// RestPat is the bare `..` pattern.
type RestPat struct {
	Base
}

func (*RestPat) isPat() {}

// FieldPat is one `name: pat` field inside a StructPat.
type FieldPat struct {
	Name    string
	Pattern Pat
}

// StructPat is `Path { field: pat, ..field.., .. }`.
type StructPat struct {
	Base
	Res     resolve.Res
	Fields  []FieldPat
	HasRest bool
}

func (*StructPat) isPat() {}

// TuplePat is `(p1, p2, .., pn)`.
type TuplePat struct {
	Base
	Elements  []Pat
	RestIndex int // -1 if no rest pattern appeared
}

func (*TuplePat) isPat() {}

// SlicePat is `[p1, p2, .., pn]`.
type SlicePat struct {
	Base
	Elements  []Pat
	RestIndex int
}

func (*SlicePat) isPat() {}

// TupleVariantPat is `Path(p1, p2, ...)`, matching a tuple-payload enum
// variant. The surface grammar this front-end parses has no call-shaped
// pattern syntax, so no AST node produces this directly; it exists purely
// as a lowering target for the `for` loop's desugared `Some(pat)`/`None`
// match arms, which needs exactly this shape to describe
// an iterator's Option result.
type TupleVariantPat struct {
	Base
	Res      resolve.Res
	Elements []Pat
}

func (*TupleVariantPat) isPat() {}

// ErrorPat stands in for an AST ErrorNode encountered in pattern position.
type ErrorPat struct {
	Base
}

func (*ErrorPat) isPat() {}

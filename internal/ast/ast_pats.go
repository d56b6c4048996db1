package ast

// Pat variants: Multi, Paren, Lit, Ident, Ref, Path,
// Wildcard, Rest, Struct, Tuple, Slice.

// MultiPat is `p1 | p2 | p3`, a top-level-only alternation.
type MultiPat struct {
	Base
	Alternatives []Pat
}

func (*MultiPat) isPat() {}

// ParenPat is `(pat)`.
type ParenPat struct {
	Base
	Value Pat
}

func (*ParenPat) isPat() {}

// LitPat matches a literal value exactly.
type LitPat struct {
	Base
	Value *LiteralExpr
}

func (*LitPat) isPat() {}

// IdentPat is `ref? mut? IDENT (@ pat)?`. Every IdentPat introduces a
// local named by its own NodeId.
type IdentPat struct {
	Base
	Ref     bool
	Mut     bool
	Name    Ident
	SubPat  Pat // optional `@ pat`
}

func (*IdentPat) isPat() {}

// RefPat is `& mut? pat`.
type RefPat struct {
	Base
	Mut   bool
	Value Pat
}

func (*RefPat) isPat() {}

// PathPat matches a named constant, unit-struct, or unit-variant by path;
// it resolves like an expression path and introduces no local.
type PathPat struct {
	Base
	Path Path
}

func (*PathPat) isPat() {}

// WildcardPat is the bare `_` pattern.
type WildcardPat struct {
	Base
}

func (*WildcardPat) isPat() {}

// RestPat is the bare `..` pattern, legal only inside a struct, tuple, or
// slice pattern; RestIndex below records where one
// appeared inside a TuplePat/SlicePat so lowering can reconstruct the
// gap it leaves.
type RestPat struct {
	Base
}

func (*RestPat) isPat() {}

// StructPatField is one `name: pat` or `ref mut name` shorthand field
// inside a StructPat.
type StructPatField struct {
	Base
	Name    Ident
	Pattern Pat // nil for the `ref mut name` shorthand (binds Name itself)
	Ref     bool
	Mut     bool
}

// StructPat is `Path { field: pat, ..field.., .. }`.
type StructPat struct {
	Base
	Path   Path
	Fields []StructPatField
	HasRest bool // trailing `..`
}

func (*StructPat) isPat() {}

// TuplePat is `(p1, p2, .., pn)`; RestIndex is the index of a RestPat
// among Elements, or -1 if none appeared.
type TuplePat struct {
	Base
	Elements  []Pat
	RestIndex int
}

func (*TuplePat) isPat() {}

// SlicePat is `[p1, p2, .., pn]`, with the same rest-position tracking as
// TuplePat.
type SlicePat struct {
	Base
	Elements  []Pat
	RestIndex int
}

func (*SlicePat) isPat() {}

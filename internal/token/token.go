// Package token defines the lexical token kinds shared by the lexer and
// parser.
package token

import (
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// Kind tags a Token. It distinguishes hidden (trivia) tokens, which are
// preserved in the stream but skipped by the parser, from the rest.
type Kind uint8

const (
	EOF Kind = iota

	// Hidden / trivia — preserved, ignored by the parser.
	Whitespace
	Tab
	NL
	LineComment
	BlockComment

	Ident // includes both plain identifiers and keywords; see IsKw
	Lit

	// Assignment operators.
	Assign       // =
	AddAssign    // +=
	SubAssign    // -=
	MulAssign    // *=
	DivAssign    // /=
	RemAssign    // %=
	PowerAssign  // **=
	ShlAssign    // <<=
	ShrAssign    // >>=
	BitAndAssign // &=
	BitOrAssign  // |=
	XorAssign    // ^=

	// Arithmetic / bitwise / comparison operators.
	Add       // +
	Sub       // -
	Mul       // *
	Div       // /
	Rem       // %
	Power     // **
	Shl       // <<
	Shr       // >>
	Ampersand // &
	BitOr     // |
	Xor       // ^
	Inv       // ~ (unused by grammar today, reserved)
	Eq        // ==
	NotEq     // !=
	RefEq     // ===
	RefNotEq  // !==
	LAngle    // <
	RAngle    // >
	LE        // <=
	GE        // >=
	Spaceship // <=>

	Range   // ..
	RangeEq // ..=
	Dot     // .
	Spread  // ...
	PathSep // ::

	Quest // ?
	At    // @

	// Punctuation.
	Semi        // ;
	Arrow       // ->
	DoubleArrow // =>
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Comma       // ,
	Colon       // :

	Illegal
)

// LitKind classifies the payload of a Lit token.
type LitKind uint8

const (
	LitBool LitKind = iota
	LitDec
	LitBin
	LitOct
	LitHex
	LitFloat
	LitSQString
	LitDQString
)

// Lit is the payload of a Kind==Lit token.
type Lit struct {
	Kind      LitKind
	Sym       symbol.Symbol // interned literal text (digits, or string contents)
	Suffix    symbol.Symbol // optional trailing identifier-like run, e.g. "123u32"
	HasSuffix bool
}

// Token is one lexical unit: a kind tag, an optional payload, and a span.
type Token struct {
	Kind Kind
	Span source.Span

	// Valid when Kind == Ident: the identifier or keyword's interned text.
	Ident symbol.Symbol

	// Valid when Kind == Lit.
	Lit Lit
}

// IsKw reports whether t is an identifier-shaped token spelling keyword kw.
func IsKw(t Token, kw symbol.Kw) bool {
	return t.Kind == Ident && symbol.IsKw(t.Ident, kw)
}

// IsHidden reports whether t is trivia the parser must skip.
func (t Token) IsHidden() bool {
	switch t.Kind {
	case Whitespace, Tab, NL, LineComment, BlockComment:
		return true
	default:
		return false
	}
}

// assignOps maps a compound-assignment token back to its underlying binary
// operator, used when desugaring `lhs op= rhs` during HIR lowering.
var assignOps = map[Kind]Kind{
	AddAssign:    Add,
	SubAssign:    Sub,
	MulAssign:    Mul,
	DivAssign:    Div,
	RemAssign:    Rem,
	PowerAssign:  Power,
	ShlAssign:    Shl,
	ShrAssign:    Shr,
	BitAndAssign: Ampersand,
	BitOrAssign:  BitOr,
	XorAssign:    Xor,
}

// IsCompoundAssign reports whether k is one of the `op=` operators, and if
// so returns the plain binary operator it stands for.
func IsCompoundAssign(k Kind) (Kind, bool) {
	op, ok := assignOps[k]
	return op, ok
}

// KindName gives a human-readable name for diagnostics and debug dumps.
func KindName(k Kind) string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "<unknown token>"
}

var kindNames = map[Kind]string{
	EOF: "end of file", Ident: "identifier", Lit: "literal",
	Assign: "=", AddAssign: "+=", SubAssign: "-=", MulAssign: "*=", DivAssign: "/=",
	RemAssign: "%=", PowerAssign: "**=", ShlAssign: "<<=", ShrAssign: ">>=",
	BitAndAssign: "&=", BitOrAssign: "|=", XorAssign: "^=",
	Add: "+", Sub: "-", Mul: "*", Div: "/", Rem: "%", Power: "**",
	Shl: "<<", Shr: ">>", Ampersand: "&", BitOr: "|", Xor: "^", Inv: "~",
	Eq: "==", NotEq: "!=", RefEq: "===", RefNotEq: "!==",
	LAngle: "<", RAngle: ">", LE: "<=", GE: ">=", Spaceship: "<=>",
	Range: "..", RangeEq: "..=", Dot: ".", Spread: "...", PathSep: "::",
	Quest: "?", At: "@",
	Semi: ";", Arrow: "->", DoubleArrow: "=>",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Colon: ":", Illegal: "illegal token",
}

package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/lexer"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// reassemble concatenates every token's source slice back together,
// checking the lexer's round-trip invariant: the hidden-token-inclusive
// stream reproduces the input byte-for-byte.
func reassemble(src string, toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		b.WriteString(src[t.Span.Offset : t.Span.Offset+t.Span.Length])
	}
	return b.String()
}

func TestLexRoundTrip(t *testing.T) {
	srcs := []string{
		`func main() { print("hi") }`,
		"let x = 1 + 2 * 3 // trailing comment\n",
		"/* block\ncomment */ struct S { x: Int }",
		"let s = 'a'\nlet d = \"b\\nc\"\n",
		"0xFF 0b101 0o17 1_000 3.14 1e10",
	}
	for _, src := range srcs {
		interner := symbol.Default()
		msgs := diagnostic.NewHolder()
		toks := lexer.Lex(source.FileId(1), src, interner, msgs)
		require.Equal(t, src, reassemble(src, toks), "round-trip failed for %q", src)
	}
}

func TestLexSpansWithinBounds(t *testing.T) {
	src := `func f(a: Int) -> Int { a }`
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	toks := lexer.Lex(source.FileId(3), src, interner, msgs)
	for _, tok := range toks {
		require.LessOrEqualf(t, int(tok.Span.Offset+tok.Span.Length), len(src), "span out of bounds in %+v", tok)
	}
}

func TestLexKeywordVsIdent(t *testing.T) {
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	toks := lexer.Lex(source.FileId(1), "struct structure", interner, msgs)

	var kwTok, identTok token.Token
	for _, tok := range toks {
		if tok.Kind != token.Ident {
			continue
		}
		if symbol.IsKw(tok.Ident, symbol.KwStruct) {
			kwTok = tok
		} else if symbol.Get(tok.Ident) == "structure" {
			identTok = tok
		}
	}
	require.True(t, token.IsKw(kwTok, symbol.KwStruct))
	require.False(t, symbol.IsKw(identTok.Ident, symbol.KwStruct), "longer identifier must not be misclassified as the keyword prefix")
}

func TestLexNumericLiteralBasesAndSuffix(t *testing.T) {
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	toks := lexer.Lex(source.FileId(1), "0xFFu32", interner, msgs)

	var lit token.Token
	found := false
	for _, tok := range toks {
		if tok.Kind == token.Lit {
			lit = tok
			found = true
		}
	}
	require.True(t, found)
	require.Equal(t, token.LitHex, lit.Lit.Kind)
	require.True(t, lit.Lit.HasSuffix)
	require.Equal(t, "u32", symbol.Get(lit.Lit.Suffix))
}

func TestLexUnterminatedStringReportsError(t *testing.T) {
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	lexer.Lex(source.FileId(1), `let s = "no closing quote`, interner, msgs)
	require.True(t, msgs.HasErrors())
}

func TestLexMaximalMunchOperators(t *testing.T) {
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	toks := lexer.Lex(source.FileId(1), "a..=b a..b a.b a<=>b a<=b", interner, msgs)

	var kinds []token.Kind
	for _, tok := range toks {
		if !tok.IsHidden() && tok.Kind != token.EOF {
			kinds = append(kinds, tok.Kind)
		}
	}
	require.Contains(t, kinds, token.RangeEq)
	require.Contains(t, kinds, token.Range)
	require.Contains(t, kinds, token.Dot)
	require.Contains(t, kinds, token.Spaceship)
	require.Contains(t, kinds, token.LE)
	require.NotContains(t, kinds, token.LAngle, "a<=>b must lex as Spaceship, never as separate < and =")
}

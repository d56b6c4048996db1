package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/lexer"
	"github.com/vellum-lang/vellum/internal/parser"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/validate"
)

func validateSrc(t *testing.T, src string) *diagnostic.Holder {
	t.Helper()
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	toks := lexer.Lex(source.FileId(1), src, interner, msgs)
	p := parser.New(source.FileId(1), toks, interner, msgs)
	file, _ := p.ParseFile()
	require.False(t, msgs.HasErrors(), "source should parse cleanly before validation")

	v := validate.New(msgs)
	v.ValidateFile(file)
	return msgs
}

func hasCode(msgs *diagnostic.Holder, code string) bool {
	for _, m := range msgs.Messages() {
		if m.Code == code {
			return true
		}
	}
	return false
}

func TestValidateBreakOutsideLoop(t *testing.T) {
	msgs := validateSrc(t, `func f() { break; }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V003"))
}

func TestValidateBreakInsideLoopOK(t *testing.T) {
	msgs := validateSrc(t, `func f() { loop { break; } }`)
	require.False(t, msgs.HasErrors())
}

func TestValidateBreakDoesNotCrossFunctionBoundary(t *testing.T) {
	// A lambda body is its own function context: `break` inside it cannot
	// see the enclosing loop.
	msgs := validateSrc(t, `func f() { loop { let g = || { break; }; } }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V003"))
}

func TestValidateReturnOutsideFunction(t *testing.T) {
	msgs := validateSrc(t, `const X: Int = return 1;`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V008"))
}

func TestValidateSelfOutsideMethod(t *testing.T) {
	msgs := validateSrc(t, `func f() { self; }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V009"))
}

func TestValidateSelfInsideMethodOK(t *testing.T) {
	msgs := validateSrc(t, `
struct S {}
impl S { func m(&self) { self; } }
`)
	require.False(t, msgs.HasErrors())
}

func TestValidateSelfVisibleInsideNestedLambda(t *testing.T) {
	// Closures inherit the enclosing method's self context.
	msgs := validateSrc(t, `
struct S {}
impl S { func m(&self) { let g = || { self; }; } }
`)
	require.False(t, msgs.HasErrors())
}

func TestValidateAssignLhsMustBePlace(t *testing.T) {
	msgs := validateSrc(t, `func f() { 1 + 2 = 3; }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V001"))
}

func TestValidateAssignToFieldAndSubscriptOK(t *testing.T) {
	msgs := validateSrc(t, `func f() { a.b = 1; a[0] = 2; (a) = 3; }`)
	require.False(t, msgs.HasErrors())
}

func TestValidateChainedAssignmentRejected(t *testing.T) {
	msgs := validateSrc(t, `func f() { a = b = 1; }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V002"))
}

func TestValidateChainedComparisonRejected(t *testing.T) {
	msgs := validateSrc(t, `func f() { a < b < c; }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V005"))
}

func TestValidateCustomInfixOperatorRejected(t *testing.T) {
	msgs := validateSrc(t, `func f() { a foo b; }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V010"))
}

func TestValidateRestPatternOutsideContainerIsError(t *testing.T) {
	msgs := validateSrc(t, `func f() { let .. = x; }`)
	require.True(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V020"))
}

func TestValidateRestPatternInsideTupleOK(t *testing.T) {
	msgs := validateSrc(t, `func f() { let (a, .., b) = x; }`)
	require.False(t, msgs.HasErrors())
}

func TestValidateDoubleParenWarns(t *testing.T) {
	msgs := validateSrc(t, `func f() { ((1)); }`)
	require.False(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V006"))
}

func TestValidateParenAroundPrimaryWarns(t *testing.T) {
	msgs := validateSrc(t, `func f() { (1); }`)
	require.False(t, msgs.HasErrors())
	require.True(t, hasCode(msgs, "V007"))
}

func TestValidateParenAroundComplexExprNoWarning(t *testing.T) {
	msgs := validateSrc(t, `func f() { (1 + 2); }`)
	require.False(t, msgs.HasErrors())
	require.False(t, hasCode(msgs, "V006"))
	require.False(t, hasCode(msgs, "V007"))
}

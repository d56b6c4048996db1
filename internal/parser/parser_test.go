package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/lexer"
	"github.com/vellum-lang/vellum/internal/parser"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// parse runs the full lex+parse pipeline for one file's contents: lexer
// feeding parser over a shared interner/message holder.
func parse(t *testing.T, src string) (*ast.File, *diagnostic.Holder) {
	t.Helper()
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	toks := lexer.Lex(source.FileId(1), src, interner, msgs)
	p := parser.New(source.FileId(1), toks, interner, msgs)
	file, spans := p.ParseFile()
	require.NotNil(t, file)
	for id, sp := range spans {
		require.NotEqualf(t, ast.NodeId(0), id, "dummy NodeId present in span table for span %+v", sp)
	}
	return file, msgs
}

// block returns the statement block of a func item's body, unwrapping the
// BlockExpr the parser wraps a `{ ... }` body in.
func block(t *testing.T, fn *ast.FuncItem) *ast.Block {
	t.Helper()
	require.NotNil(t, fn.Body)
	be, ok := fn.Body.Value.(*ast.BlockExpr)
	require.True(t, ok, "expected func body to be a *ast.BlockExpr, got %T", fn.Body.Value)
	return &be.Value
}

func TestParseFuncItem(t *testing.T) {
	file, msgs := parse(t, `func add(a: Int, b: Int) -> Int { a + b }`)
	require.False(t, msgs.HasErrors())
	require.Len(t, file.Items, 1)

	fn, ok := file.Items[0].(*ast.FuncItem)
	require.True(t, ok, "expected *ast.FuncItem, got %T", file.Items[0])
	require.Equal(t, "add", symbol.Get(fn.Name.Sym))
	require.Len(t, fn.Sig.Params, 2)
	require.NotNil(t, fn.Body)
}

func TestParseExpressionPrecedence(t *testing.T) {
	// `1 + 2 * 3` must bind as `1 + (2 * 3)`: the outer node is the `+`.
	file, msgs := parse(t, `func f() { 1 + 2 * 3; }`)
	require.False(t, msgs.HasErrors())
	fn := file.Items[0].(*ast.FuncItem)
	blk := block(t, fn)
	require.Len(t, blk.Stmts, 1)

	exprStmt := blk.Stmts[0].(*ast.ExprStmt)
	add, ok := exprStmt.Value.(*ast.InfixExpr)
	require.True(t, ok, "expected top-level InfixExpr, got %T", exprStmt.Value)
	require.Equal(t, ast.OpAdd, add.Op)

	_, ok = add.Rhs.(*ast.InfixExpr)
	require.True(t, ok, "right operand of + should be the * subexpression, got %T", add.Rhs)
}

func TestParseCustomInfixIdentifierOperator(t *testing.T) {
	// `a foo b` parses into a single InfixExpr with the identifier
	// retained as CustomOp; the grammar accepts the shape so the
	// validator has something to reject.
	file, msgs := parse(t, `func f() { a foo b; }`)
	require.False(t, msgs.HasErrors())
	fn := file.Items[0].(*ast.FuncItem)
	blk := block(t, fn)
	require.Len(t, blk.Stmts, 1)

	exprStmt := blk.Stmts[0].(*ast.ExprStmt)
	in, ok := exprStmt.Value.(*ast.InfixExpr)
	require.True(t, ok, "expected top-level InfixExpr, got %T", exprStmt.Value)
	require.Equal(t, ast.OpCustomIdent, in.Op)
	require.Equal(t, "foo", symbol.Get(in.CustomOp.Sym))
}

func TestParseAssignmentIsRightAssociativeAndLowest(t *testing.T) {
	// `a = b = 1 + 2` should parse as `a = (b = (1 + 2))`.
	file, msgs := parse(t, `func f() { a = b = 1 + 2; }`)
	require.False(t, msgs.HasErrors())
	fn := file.Items[0].(*ast.FuncItem)
	blk := block(t, fn)
	exprStmt := blk.Stmts[0].(*ast.ExprStmt)

	outer, ok := exprStmt.Value.(*ast.AssignExpr)
	require.True(t, ok, "expected outer AssignExpr, got %T", exprStmt.Value)

	inner, ok := outer.Rhs.(*ast.AssignExpr)
	require.True(t, ok, "expected nested AssignExpr as RHS, got %T", outer.Rhs)

	_, ok = inner.Rhs.(*ast.InfixExpr)
	require.True(t, ok, "innermost RHS should be the additive expr, got %T", inner.Rhs)
}

func TestParseCastExpr(t *testing.T) {
	file, msgs := parse(t, `func f() { x as Int; }`)
	require.False(t, msgs.HasErrors())
	fn := file.Items[0].(*ast.FuncItem)
	blk := block(t, fn)
	exprStmt := blk.Stmts[0].(*ast.ExprStmt)

	cast, ok := exprStmt.Value.(*ast.CastExpr)
	require.True(t, ok, "expected *ast.CastExpr, got %T", exprStmt.Value)
	_, isPathType := cast.TargetType.(*ast.PathType)
	require.True(t, isPathType)
}

func TestParseIfElseChain(t *testing.T) {
	file, msgs := parse(t, `func f() { if a { 1 } else if b { 2 } else { 3 } }`)
	require.False(t, msgs.HasErrors())
	fn := file.Items[0].(*ast.FuncItem)
	blk := block(t, fn)
	require.NotNil(t, blk.Tail)

	outer, ok := blk.Tail.(*ast.IfExpr)
	require.True(t, ok, "expected tail IfExpr, got %T", blk.Tail)
	require.NotNil(t, outer.Else)
	_, ok = outer.Else.(*ast.IfExpr)
	require.True(t, ok, "else branch should be the chained IfExpr, got %T", outer.Else)
}

func TestParseStructAndEnum(t *testing.T) {
	file, msgs := parse(t, `
struct Point { pub x: Int, pub y: Int }
enum Shape { Circle(Point, Int), Square { side: Int }, Empty }
`)
	require.False(t, msgs.HasErrors())
	require.Len(t, file.Items, 2)

	st, ok := file.Items[0].(*ast.StructItem)
	require.True(t, ok, "expected *ast.StructItem, got %T", file.Items[0])
	require.Len(t, st.Fields, 2)
	require.False(t, st.IsTuple)

	en, ok := file.Items[1].(*ast.EnumItem)
	require.True(t, ok, "expected *ast.EnumItem, got %T", file.Items[1])
	require.Len(t, en.Variants, 3)
}

func TestParseGenericsWithNestedAngleBrackets(t *testing.T) {
	// Exercises closeAngle splitting a lexed '>>' into two logical closes.
	file, msgs := parse(t, `struct Wrapper<K, V> { pub inner: Map<K, List<V>> }`)
	require.False(t, msgs.HasErrors())
	st := file.Items[0].(*ast.StructItem)
	require.Len(t, st.Generics, 2)
	require.Len(t, st.Fields, 1)

	fieldType, ok := st.Fields[0].TypeAnn.(*ast.PathType)
	require.True(t, ok, "expected *ast.PathType for field type, got %T", st.Fields[0].TypeAnn)
	require.Equal(t, "Map", symbol.Get(fieldType.Path.Segments[0].Name.Sym))
	require.Len(t, fieldType.Path.Segments[0].Args, 2)
}

func TestParseUseTreeVariants(t *testing.T) {
	file, msgs := parse(t, `
use std::collections::{List, Map as Dict};
use std::io::*;
`)
	require.False(t, msgs.HasErrors())
	require.Len(t, file.Items, 2)

	first, ok := file.Items[0].(*ast.UseDeclItem)
	require.True(t, ok, "expected *ast.UseDeclItem, got %T", file.Items[0])
	require.Equal(t, ast.UseTreeSpecific, first.Tree.Kind)
	require.Len(t, first.Tree.Nested, 2)
	require.Equal(t, ast.UseTreeRebind, first.Tree.Nested[1].Kind)
	require.NotNil(t, first.Tree.Nested[1].Rebind)

	second, ok := file.Items[1].(*ast.UseDeclItem)
	require.True(t, ok, "expected *ast.UseDeclItem, got %T", file.Items[1])
	require.Equal(t, ast.UseTreeAll, second.Tree.Kind)
}

func TestParsePatternForms(t *testing.T) {
	file, msgs := parse(t, `
func f() {
    let (a, .., b) = pair;
    let Point { x, y } = origin;
    let _ = ignored;
}
`)
	require.False(t, msgs.HasErrors())
	fn := file.Items[0].(*ast.FuncItem)
	blk := block(t, fn)
	require.Len(t, blk.Stmts, 3)

	let0 := blk.Stmts[0].(*ast.LetStmt)
	tuplePat, ok := let0.Pattern.(*ast.TuplePat)
	require.True(t, ok, "expected *ast.TuplePat, got %T", let0.Pattern)
	require.Equal(t, 1, tuplePat.RestIndex)

	let1 := blk.Stmts[1].(*ast.LetStmt)
	_, ok = let1.Pattern.(*ast.StructPat)
	require.True(t, ok, "expected *ast.StructPat, got %T", let1.Pattern)

	let2 := blk.Stmts[2].(*ast.LetStmt)
	_, ok = let2.Pattern.(*ast.WildcardPat)
	require.True(t, ok, "expected *ast.WildcardPat, got %T", let2.Pattern)
}

func TestParseErrorRecoveryProducesErrorNode(t *testing.T) {
	// A malformed expression should recover at the statement boundary and
	// still yield a full file with the following item intact.
	file, msgs := parse(t, `
func broken() { let x = ; }
func after() -> Int { 1 }
`)
	require.True(t, msgs.HasErrors())
	require.Len(t, file.Items, 2)

	broken := file.Items[0].(*ast.FuncItem)
	blk := block(t, broken)
	letStmt := blk.Stmts[0].(*ast.LetStmt)
	_, ok := letStmt.Value.(*ast.ErrorNode)
	require.True(t, ok, "expected *ast.ErrorNode recovery value, got %T", letStmt.Value)

	after := file.Items[1].(*ast.FuncItem)
	require.Equal(t, "after", symbol.Get(after.Name.Sym))
}

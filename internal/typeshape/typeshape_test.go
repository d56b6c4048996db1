package typeshape_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/hir"
	"github.com/vellum-lang/vellum/internal/lexer"
	"github.com/vellum-lang/vellum/internal/parser"
	"github.com/vellum-lang/vellum/internal/resolve"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/typeshape"
	"github.com/vellum-lang/vellum/internal/validate"
)

// buildHIR runs every stage through lowering over a single-file source
// string and returns the finished HIR party.
func buildHIR(t *testing.T, src string) *hir.Party {
	t.Helper()
	interner := symbol.Default()
	msgs := diagnostic.NewHolder()
	fileId := source.FileId(1)
	toks := lexer.Lex(fileId, src, interner, msgs)
	p := parser.New(fileId, toks, interner, msgs)
	file, spans := p.ParseFile()
	require.False(t, msgs.HasErrors())

	v := validate.New(msgs)
	v.ValidateFile(file)
	require.False(t, msgs.HasErrors())

	party := ast.NewParty(fileId)
	party.Files[fileId] = file
	for id, sp := range spans {
		party.Spans[id] = sp
	}

	defs := resolve.NewTable()
	tree := resolve.NewTree()
	builder := resolve.NewBuilder(defs, tree, msgs)
	builder.BuildParty(party)
	require.False(t, msgs.HasErrors())

	importer := resolve.NewImporter(tree, defs, msgs)
	importer.ImportAll(builder.UseDecls)

	resolver := resolve.NewResolver(tree, defs, msgs, builder.BlockModules)
	resolver.ResolveParty(party)
	require.False(t, msgs.HasErrors())

	lowering := hir.NewLowering(defs, tree, resolver.Outs)
	return lowering.LowerParty(party)
}

func TestCollectStructShape(t *testing.T) {
	party := buildHIR(t, `
		struct Point { x: int, y: int }
	`)

	table := typeshape.Collect(party)

	var found bool
	for def, item := range party.Owners {
		if s, ok := item.(*hir.StructItem); ok {
			found = true
			shape, ok := table.Of(def)
			require.True(t, ok)
			require.Equal(t, typeshape.ShapeStruct, shape.Kind)
			require.Len(t, shape.Fields, len(s.Fields))
			require.False(t, shape.IsTuple)
		}
	}
	require.True(t, found, "expected a struct item in the lowered party")
}

func TestCollectFuncShape(t *testing.T) {
	party := buildHIR(t, `
		func add(a: int, b: int) -> int { a + b }
	`)

	table := typeshape.Collect(party)

	var found bool
	for def, item := range party.Owners {
		if fn, ok := item.(*hir.FuncItem); ok {
			found = true
			shape, ok := table.Of(def)
			require.True(t, ok)
			require.Equal(t, typeshape.ShapeFunc, shape.Kind)
			require.Len(t, shape.ParamTypes, len(fn.Params))
			require.NotNil(t, shape.ReturnType)
		}
	}
	require.True(t, found, "expected a func item in the lowered party")
}

func TestCollectSkipsMod(t *testing.T) {
	party := buildHIR(t, `
		mod inner { struct S {} }
	`)

	table := typeshape.Collect(party)

	for def, item := range party.Owners {
		if _, ok := item.(*hir.ModItem); ok {
			_, ok := table.Of(def)
			require.False(t, ok, "Mod items have no intrinsic shape")
		}
	}
}

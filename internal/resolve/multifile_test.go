package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/lexer"
	"github.com/vellum-lang/vellum/internal/parser"
	"github.com/vellum-lang/vellum/internal/resolve"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// parseInto lexes and parses src as fileId, registering its spans into
// party and returning the next free NodeId for a subsequently parsed file.
func parseInto(t *testing.T, party *ast.Party, msgs *diagnostic.Holder, fileId source.FileId, src string, startID ast.NodeId) ast.NodeId {
	t.Helper()
	interner := symbol.Default()
	toks := lexer.Lex(fileId, src, interner, msgs)
	p := parser.NewAt(fileId, toks, interner, msgs, startID)
	file, spans := p.ParseFile()
	party.Files[fileId] = file
	for id, sp := range spans {
		party.Spans[id] = sp
	}
	return p.NextID()
}

// findMod returns the *ast.ModItem named name among items.
func findMod(t *testing.T, items []ast.Item, name string) *ast.ModItem {
	t.Helper()
	for _, it := range items {
		if m, ok := it.(*ast.ModItem); ok && symbol.Get(m.Name.Sym) == name {
			return m
		}
	}
	t.Fatalf("no mod item named %q found", name)
	return nil
}

// TestFileAssociatedModResolvesAcrossFiles exercises a `mod utils;`
// pointing at a second source file: the builder must walk into the
// referenced file's items, the importer must bring its public function in
// under `use utils::helper;`, and the resolver must resolve the call.
func TestFileAssociatedModResolvesAcrossFiles(t *testing.T) {
	msgs := diagnostic.NewHolder()
	party := ast.NewParty(source.FileId(1))

	utilsSrc := `pub func helper() {}`
	nextID := parseInto(t, party, msgs, source.FileId(2), utilsSrc, ast.NodeId(1))

	entrySrc := `
		mod utils;
		use utils::helper;
		func main() { helper() }
	`
	parseInto(t, party, msgs, source.FileId(1), entrySrc, nextID)
	require.False(t, msgs.HasErrors())

	entryFile := party.Files[source.FileId(1)]
	modItem := findMod(t, entryFile.Items, "utils")
	modItem.FileRef = &ast.ModFileRef{File: source.FileId(2)}

	defs := resolve.NewTable()
	tree := resolve.NewTree()
	builder := resolve.NewBuilder(defs, tree, msgs)
	builder.BuildParty(party)
	require.False(t, msgs.HasErrors())

	importer := resolve.NewImporter(tree, defs, msgs)
	importer.ImportAll(builder.UseDecls)
	require.False(t, msgs.HasErrors())

	resolver := resolve.NewResolver(tree, defs, msgs, builder.BlockModules)
	resolver.ResolveParty(party)
	require.False(t, msgs.HasErrors(), "expected helper() to resolve through the file-associated mod and use import")
}

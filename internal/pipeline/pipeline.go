// Package pipeline sequences the front-end's stages over a Session, in
// fixed leaves-first order (lexing already folded into parsing here,
// since the parser owns its own token stream): parse,
// validate, build the module tree, import, resolve names, lower to HIR.
package pipeline

import (
	"sort"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/hir"
	"github.com/vellum-lang/vellum/internal/lexer"
	"github.com/vellum-lang/vellum/internal/parser"
	"github.com/vellum-lang/vellum/internal/resolve"
	"github.com/vellum-lang/vellum/internal/session"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/validate"
)

// Depth names how far the pipeline is allowed to run, matching the
// driver's `--compile-depth` flag.
type Depth int

const (
	// DepthParser stops after parsing and validation.
	DepthParser Depth = iota
	// DepthNameResolution stops after the module tree, importer, and
	// name resolver have all run.
	DepthNameResolution
	// DepthLowering runs every stage through AST→HIR lowering.
	DepthLowering
)

// Result carries whatever each stage produced, regardless of how far the
// pipeline actually ran; stopping early after any stage leaves every
// field set so far usable for inspection.
type Result struct {
	Sess *session.Session
}

// Source is one already-loaded file to feed the parser: a (FileId, text)
// pair already read by the file-system layer.
type Source struct {
	FileId source.FileId
	Text   string
}

// Run executes the pipeline up to depth over the given sources, rooted
// at entry. The caller has already registered every FileId with sm and
// attached its contents, since file discovery and reading happen
// outside the core.
func Run(sm *source.Map, entry source.FileId, sources []Source, depth Depth) *Result {
	party := ast.NewParty(entry)
	sess := session.New(sm, party)

	// Each file's parser allocates NodeIds from the starting id it is given;
	// the loop below hands every file after the first the id where the
	// previous file stopped, so NodeIds stay unique across the whole party.
	nextID := ast.NodeId(1)
	for _, src := range sourcesInOrder(entry, sources) {
		file, spans, lastID := parseFile(sess, src.FileId, src.Text, nextID)
		party.Files[src.FileId] = file
		for id, sp := range spans {
			party.Spans[id] = sp
		}
		nextID = lastID
	}

	v := validate.New(sess.Msgs)
	for _, id := range fileIdsAscending(party) {
		v.ValidateFile(party.Files[id])
	}

	if depth == DepthParser || sess.HasErrors() {
		return &Result{Sess: sess}
	}

	builder := resolve.NewBuilder(sess.Defs, sess.Tree, sess.Msgs)
	builder.BuildParty(party)
	if sess.HasErrors() {
		return &Result{Sess: sess}
	}

	importer := resolve.NewImporter(sess.Tree, sess.Defs, sess.Msgs)
	importer.ImportAll(builder.UseDecls)

	resolver := resolve.NewResolver(sess.Tree, sess.Defs, sess.Msgs, builder.BlockModules)
	resolver.ResolveParty(party)
	sess.Res = resolver.Outs

	if depth == DepthNameResolution || sess.HasErrors() {
		return &Result{Sess: sess}
	}

	lowering := hir.NewLowering(sess.Defs, sess.Tree, sess.Res)
	sess.HIR = lowering.LowerParty(party)

	return &Result{Sess: sess}
}

// parseFile lexes and parses one registered file starting at startID,
// returning its parsed Item list, the NodeId->Span map the parser built
// for it, and the next unused NodeId.
func parseFile(sess *session.Session, fileId source.FileId, text string, startID ast.NodeId) (*ast.File, map[ast.NodeId]source.Span, ast.NodeId) {
	interner := sess.Interner()
	toks := lexer.Lex(fileId, text, interner, sess.Msgs)
	p := parser.NewAt(fileId, toks, interner, sess.Msgs, startID)
	file, spans := p.ParseFile()
	return file, spans, p.NextID()
}

// sourcesInOrder returns sources with the entry file first (so its
// NodeIds occupy the lowest range, which is cosmetic but keeps debug
// dumps stable) followed by the rest in registration order.
func sourcesInOrder(entry source.FileId, sources []Source) []Source {
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.FileId == entry {
			out = append(out, s)
		}
	}
	for _, s := range sources {
		if s.FileId != entry {
			out = append(out, s)
		}
	}
	return out
}

// fileIdsAscending returns party's file ids in a deterministic order so
// that validator diagnostics (and any later per-file stage) come out the
// same way on every run, instead of depending on Go's randomized map
// iteration.
func fileIdsAscending(party *ast.Party) []source.FileId {
	ids := make([]source.FileId, 0, len(party.Files))
	for id := range party.Files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

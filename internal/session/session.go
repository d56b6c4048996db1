// Package session threads the shared state every pipeline stage reads
// from and writes into: the source map, the definition table, the
// module tree, the resolution table, and the final HIR, all owned by
// one Session value per compile.
package session

import (
	"github.com/google/uuid"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/hir"
	"github.com/vellum-lang/vellum/internal/resolve"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// Session owns every structure that outlives a single stage: the source
// map, the definition table and module tree, the resolution table, and
// whatever AST/HIR each stage has produced so far. RunID distinguishes
// one compile invocation from another wherever Sessions are logged side
// by side, the same situation a multi-session language-server host runs
// into when juggling several open parties.
type Session struct {
	RunID uuid.UUID

	Sources *source.Map
	Msgs    *diagnostic.Holder

	Party *ast.Party

	Defs *resolve.Table
	Tree *resolve.Tree
	Res  *resolve.Resolutions

	HIR *hir.Party
}

// New returns a Session over party (which may still be empty), with a fresh
// message holder and definition table/module tree pair. The interner is
// process-global so the
// Session does not own one itself.
func New(sources *source.Map, party *ast.Party) *Session {
	defs := resolve.NewTable()
	return &Session{
		RunID:   uuid.New(),
		Sources: sources,
		Msgs:    diagnostic.NewHolder(),
		Party:   party,
		Defs:    defs,
		Tree:    resolve.NewTree(),
	}
}

// Interner returns the process-wide symbol interner.
func (s *Session) Interner() *symbol.Interner { return symbol.Default() }

// HasErrors reports whether any stage has accumulated an Error-level
// message so far.
func (s *Session) HasErrors() bool { return s.Msgs.HasErrors() }

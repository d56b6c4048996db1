// Package parser builds the AST from a token stream: recursive descent with
// a precedence-climbing layer for expressions, keyword-driven item parsing,
// and panic-mode recovery at statement and item boundaries.
package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// recoverySet is the set of token kinds a panic-mode skip stops at: the
// start of a new statement/item or the token that closes the current scope.
var recoverySet = map[token.Kind]bool{
	token.Semi:   true,
	token.RBrace: true,
	token.EOF:    true,
}

// itemKeywords is consulted by the recovery skip so that a broken item
// doesn't eat a sibling item's keyword.
var itemKeywords = []symbol.Kw{
	symbol.KwPub, symbol.KwFunc, symbol.KwFn, symbol.KwMod, symbol.KwUse,
	symbol.KwType, symbol.KwStruct, symbol.KwEnum, symbol.KwTrait,
	symbol.KwImpl, symbol.KwInit, symbol.KwConst,
}

// Parser consumes a filtered (non-hidden) token stream for one file and
// produces its AST, allocating a NodeId and recording a Span for every node
// it builds.
type Parser struct {
	fileID source.FileId
	toks   []token.Token // hidden tokens already filtered out
	pos    int
	interner *symbol.Interner
	msgs     *diagnostic.Holder

	nextID ast.NodeId
	spans  map[ast.NodeId]source.Span
}

// New builds a Parser over the raw (unfiltered) token stream produced by the
// lexer for fileID, allocating NodeIds starting at 1 (DummyNodeId(0) is
// reserved). Parsing a single file in isolation, this is the right
// starting point; a party spanning several files must use NewAt so that
// NodeIds stay unique across the whole party.
func New(fileID source.FileId, raw []token.Token, interner *symbol.Interner, msgs *diagnostic.Holder) *Parser {
	return NewAt(fileID, raw, interner, msgs, 1)
}

// NewAt is New with an explicit starting NodeId, letting a multi-file
// party's driver hand each file a disjoint range.
func NewAt(fileID source.FileId, raw []token.Token, interner *symbol.Interner, msgs *diagnostic.Holder, startID ast.NodeId) *Parser {
	toks := make([]token.Token, 0, len(raw))
	for _, t := range raw {
		if !t.IsHidden() {
			toks = append(toks, t)
		}
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		toks = append(toks, token.Token{Kind: token.EOF})
	}
	return &Parser{
		fileID:   fileID,
		toks:     toks,
		interner: interner,
		msgs:     msgs,
		nextID:   startID,
		spans:    make(map[ast.NodeId]source.Span),
	}
}

// NextID reports the NodeId that will be assigned to the next node this
// parser creates, letting the driver compute the next file's starting
// offset once parsing finishes.
func (p *Parser) NextID() ast.NodeId { return p.nextID }

// ParseFile parses the entire token stream as a sequence of top-level items
// and returns the resulting file plus the NodeId→Span table accumulated
// while doing so.
func (p *Parser) ParseFile() (*ast.File, map[ast.NodeId]source.Span) {
	var items []ast.Item
	for !p.at(token.EOF) {
		items = append(items, p.parseItem())
	}
	return &ast.File{Id: p.fileID, Items: items}, p.spans
}

// --- token stream navigation ---

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atKw(kw symbol.Kw) bool {
	return p.at(token.Ident) && symbol.IsKw(p.cur().Ident, kw)
}

func (p *Parser) peekAtKw(kw symbol.Kw) bool {
	return p.peek().Kind == token.Ident && symbol.IsKw(p.peek().Ident, kw)
}

// eat advances and reports whether the consumed token had kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k, or emits code/text at the current
// position and returns false.
func (p *Parser) expect(k token.Kind, code, text string) bool {
	if p.eat(k) {
		return true
	}
	p.msgs.Error(code, text).Primary(p.cur().Span, "expected "+token.KindName(k)+", found "+token.KindName(p.cur().Kind)).Emit()
	return false
}

func (p *Parser) expectKw(kw symbol.Kw, code, text string) bool {
	if p.atKw(kw) {
		p.advance()
		return true
	}
	p.msgs.Error(code, text).Primary(p.cur().Span, "unexpected token").Emit()
	return false
}

// span builds the composed span from start (inclusive, the token that began
// the production) to the last consumed token.
func (p *Parser) spanFrom(startSpan source.Span) source.Span {
	endIdx := p.pos - 1
	if endIdx < 0 {
		endIdx = 0
	}
	return startSpan.To(p.toks[endIdx].Span)
}

// newID allocates the next NodeId and records sp against it.
func (p *Parser) newID(sp source.Span) ast.NodeId {
	id := p.nextID
	p.nextID++
	p.spans[id] = sp
	return id
}

// errorNode records a recovery-point error, advancing until a safe token
// and returning the ErrorNode spanning the skipped tokens.
func (p *Parser) errorNode(code, text string) *ast.ErrorNode {
	start := p.cur().Span
	p.msgs.Error(code, text).Primary(start, "here").Emit()
	for {
		if recoverySet[p.cur().Kind] {
			break
		}
		if p.atItemKeywordStart() {
			break
		}
		if p.at(token.EOF) {
			break
		}
		p.advance()
	}
	sp := start.To(p.toks[max(p.pos-1, 0)].Span)
	id := p.newID(sp)
	return &ast.ErrorNode{Base: ast.NewBase(id, sp)}
}

func (p *Parser) atItemKeywordStart() bool {
	for _, kw := range itemKeywords {
		if p.atKw(kw) {
			return true
		}
	}
	return false
}


package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// parseBlock parses a brace-delimited statement sequence with an optional
// trailing expression value (block-as-expression): the last statement, if
// it is a semicolon-less expression statement, is promoted to Block.Tail.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur().Span
	p.expect(token.LBrace, "P050", "expected '{' to start block")

	var stmts []ast.Stmt
	var tail ast.Expr

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, bareExpr := p.parseStmt()
		if bareExpr != nil && p.at(token.RBrace) {
			tail = bareExpr
			break
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(token.RBrace, "P051", "expected '}' to close block")
	sp := p.spanFrom(start)
	return &ast.Block{Base: ast.NewBase(p.newID(sp), sp), Stmts: stmts, Tail: tail}
}

// parseStmt parses one statement. When the statement is a bare expression
// with no trailing semicolon, it is returned as bareExpr instead of being
// wrapped in an ExprStmt, so the caller can decide whether it is the
// block's tail (only true at the very last position) or an ordinary
// ExprStmt (wrapped by the caller otherwise).
func (p *Parser) parseStmt() (stmt ast.Stmt, bareExpr ast.Expr) {
	start := p.cur().Span

	switch {
	case p.atKw(symbol.KwLet):
		return p.parseLetStmt(), nil
	case p.atItemKeywordStart():
		decl := p.parseItem()
		sp := p.spanFrom(start)
		return &ast.ItemStmt{Base: ast.NewBase(p.newID(sp), sp), Decl: decl}, nil
	default:
		e := p.parseExpr(precLowest)
		if p.eat(token.Semi) {
			sp := p.spanFrom(start)
			return &ast.ExprStmt{Base: ast.NewBase(p.newID(sp), sp), Value: e, HasSemi: true}, nil
		}
		if p.at(token.RBrace) {
			return nil, e
		}
		sp := p.spanFrom(start)
		return &ast.ExprStmt{Base: ast.NewBase(p.newID(sp), sp), Value: e, HasSemi: false}, nil
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.cur().Span
	p.advance() // let
	pat := p.parsePattern()
	var typeAnn ast.Type
	if p.eat(token.Colon) {
		typeAnn = p.parseType()
	}
	var value ast.Expr
	if p.eat(token.Assign) {
		value = p.parseExpr(precAssign)
	}
	p.expect(token.Semi, "P052", "expected ';' after let statement")
	sp := p.spanFrom(start)
	return &ast.LetStmt{Base: ast.NewBase(p.newID(sp), sp), Pattern: pat, TypeAnn: typeAnn, Value: value}
}

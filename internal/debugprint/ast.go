package debugprint

import (
	"sort"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// PrintAST dumps every file reachable from party, one item tree per
// file, in ascending FileId order so the output is stable across runs.
func PrintAST(party *ast.Party) string {
	p := &printer{}
	ids := make([]source.FileId, 0, len(party.Files))
	for id := range party.Files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		p.line("file #%d", id)
		p.push()
		for _, it := range party.Files[id].Items {
			printItem(p, it)
		}
		p.pop()
	}
	return p.String()
}

func name(id ast.Ident) string { return symbol.Get(id.Sym) }

func printItem(p *printer, it ast.Item) {
	switch n := it.(type) {
	case *ast.EnumItem:
		p.line("Enum %s #%d", name(n.Name), n.Id())
		p.push()
		for _, v := range n.Variants {
			p.line("Variant %s #%d", name(v.Name), v.Id())
		}
		p.pop()
	case *ast.StructItem:
		p.line("Struct %s #%d (tuple=%v)", name(n.Name), n.Id(), n.IsTuple)
		p.push()
		for _, f := range n.Fields {
			p.line("Field %s #%d", name(f.Name), f.Id())
		}
		p.pop()
	case *ast.FuncItem:
		p.line("Func %s #%d", name(n.Name), n.Id())
		if n.Body != nil {
			p.push()
			printBody(p, n.Body)
			p.pop()
		}
	case *ast.InitItem:
		p.line("Init #%d", n.Id())
		if n.Body != nil {
			p.push()
			printBody(p, n.Body)
			p.pop()
		}
	case *ast.ImplItem:
		p.line("Impl #%d", n.Id())
		p.push()
		for _, sub := range n.Items {
			printItem(p, sub)
		}
		p.pop()
	case *ast.ModItem:
		p.line("Mod %s #%d", name(n.Name), n.Id())
		p.push()
		for _, sub := range n.Items {
			printItem(p, sub)
		}
		p.pop()
	case *ast.TraitItem:
		p.line("Trait %s #%d", name(n.Name), n.Id())
		p.push()
		for _, sub := range n.Items {
			printItem(p, sub)
		}
		p.pop()
	case *ast.TypeAliasItem:
		p.line("TypeAlias %s #%d", name(n.Name), n.Id())
	case *ast.UseDeclItem:
		p.line("UseDecl #%d", n.Id())
	case *ast.ConstItem:
		p.line("Const %s #%d", name(n.Name), n.Id())
	case *ast.ErrorNode:
		p.line("<error> #%d", n.Id())
	}
}

func printBody(p *printer, b *ast.Body) {
	printExpr(p, b.Value)
}

func printBlock(p *printer, b ast.Block) {
	for _, st := range b.Stmts {
		printStmt(p, st)
	}
	if b.Tail != nil {
		p.line("tail:")
		p.push()
		printExpr(p, b.Tail)
		p.pop()
	}
}

func printStmt(p *printer, st ast.Stmt) {
	switch n := st.(type) {
	case *ast.LetStmt:
		p.line("Let #%d", n.Id())
		if n.Value != nil {
			p.push()
			printExpr(p, n.Value)
			p.pop()
		}
	case *ast.ItemStmt:
		p.line("ItemStmt #%d", n.Id())
		p.push()
		printItem(p, n.Decl)
		p.pop()
	case *ast.ExprStmt:
		p.line("ExprStmt #%d", n.Id())
		p.push()
		printExpr(p, n.Value)
		p.pop()
	}
}

// printExpr prints a one-line summary per node, recursing only into
// block-bearing expressions; deeply nested operator chains are left flat
// rather than fully expanded, matching the kind of dump a developer
// skims rather than diffs byte-for-byte.
func printExpr(p *printer, e ast.Expr) {
	switch n := e.(type) {
	case *ast.BlockExpr:
		p.line("Block #%d", n.Id())
		p.push()
		printBlock(p, n.Value)
		p.pop()
	case *ast.IfExpr:
		p.line("If #%d", n.Id())
		p.push()
		printBlock(p, n.Then)
		if n.Else != nil {
			printExpr(p, n.Else)
		}
		p.pop()
	case *ast.MatchExpr:
		p.line("Match #%d (%d arms)", n.Id(), len(n.Arms))
		p.push()
		for _, arm := range n.Arms {
			printExpr(p, arm.Body)
		}
		p.pop()
	case *ast.LoopExpr:
		p.line("Loop #%d", n.Id())
		p.push()
		printBlock(p, n.Body)
		p.pop()
	case *ast.WhileExpr:
		p.line("While #%d", n.Id())
		p.push()
		printBlock(p, n.Body)
		p.pop()
	case *ast.ForExpr:
		p.line("For #%d", n.Id())
		p.push()
		printBlock(p, n.Body)
		p.pop()
	case *ast.LambdaExpr:
		p.line("Lambda #%d", n.Id())
		p.push()
		printExpr(p, n.Body)
		p.pop()
	case *ast.InvokeExpr:
		p.line("Invoke #%d (%d args)", n.Id(), len(n.Args))
	case *ast.PathExpr:
		p.line("Path #%d", n.Id())
	case *ast.LiteralExpr:
		p.line("Literal #%d", n.Id())
	case *ast.ErrorNode:
		p.line("<error> #%d", n.Id())
	default:
		p.line("%T #%d", n, n.Id())
	}
}

package debugprint

import (
	"sort"

	"github.com/vellum-lang/vellum/internal/hir"
	"github.com/vellum-lang/vellum/internal/resolve"
)

// PrintHIR dumps every owner in party, in DefId order, followed by its
// body if it has one.
func PrintHIR(party *hir.Party) string {
	p := &printer{}
	ids := make([]resolve.DefId, 0, len(party.Owners))
	for id := range party.Owners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		printHIRItem(p, party, id, party.Owners[id])
	}
	return p.String()
}

func printHIRItem(p *printer, party *hir.Party, id resolve.DefId, it hir.Item) {
	switch n := it.(type) {
	case *hir.ModItem:
		p.line("Mod Def#%d (%d items)", id, len(n.Items))
	case *hir.FuncItem:
		p.line("Func Def#%d", id)
		if n.Body != nil {
			p.push()
			printHIRBody(p, party.Bodies[*n.Body])
			p.pop()
		}
	case *hir.InitItem:
		p.line("Init Def#%d", id)
		if n.Body != nil {
			p.push()
			printHIRBody(p, party.Bodies[*n.Body])
			p.pop()
		}
	case *hir.ImplItem:
		p.line("Impl Def#%d (%d items)", id, len(n.Items))
	case *hir.TraitItem:
		p.line("Trait Def#%d (%d items)", id, len(n.Items))
	case *hir.EnumItem:
		p.line("Enum Def#%d (%d variants)", id, len(n.Variants))
	case *hir.StructItem:
		p.line("Struct Def#%d (%d fields)", id, len(n.Fields))
	case *hir.TypeAliasItem:
		p.line("TypeAlias Def#%d", id)
	case *hir.ConstItem:
		p.line("Const Def#%d", id)
		p.push()
		printHIRExpr(p, party.Bodies[n.Value].Value)
		p.pop()
	}
}

func printHIRBody(p *printer, b *hir.Body) {
	if b == nil {
		return
	}
	printHIRExpr(p, b.Value)
}

func printHIRBlock(p *printer, b hir.Block) {
	for _, st := range b.Stmts {
		printHIRStmt(p, st)
	}
	if b.Tail != nil {
		p.line("tail:")
		p.push()
		printHIRExpr(p, b.Tail)
		p.pop()
	}
}

func printHIRStmt(p *printer, st hir.Stmt) {
	switch n := st.(type) {
	case *hir.LetStmt:
		p.line("Let")
		if n.Value != nil {
			p.push()
			printHIRExpr(p, n.Value)
			p.pop()
		}
	case *hir.ExprStmt:
		p.line("ExprStmt")
		p.push()
		printHIRExpr(p, n.Value)
		p.pop()
	}
}

func printHIRExpr(p *printer, e hir.Expr) {
	switch n := e.(type) {
	case *hir.BlockExpr:
		p.line("Block #%d/%d", n.HirId().Owner, n.HirId().Child)
		p.push()
		printHIRBlock(p, n.Value)
		p.pop()
	case *hir.IfExpr:
		p.line("If #%d/%d", n.HirId().Owner, n.HirId().Child)
		p.push()
		printHIRBlock(p, n.Then)
		if n.Else != nil {
			printHIRExpr(p, n.Else)
		}
		p.pop()
	case *hir.MatchExpr:
		p.line("Match #%d/%d (%d arms)", n.HirId().Owner, n.HirId().Child, len(n.Arms))
		p.push()
		for _, arm := range n.Arms {
			printHIRExpr(p, arm.Body)
		}
		p.pop()
	case *hir.LoopExpr:
		p.line("Loop #%d/%d", n.HirId().Owner, n.HirId().Child)
		p.push()
		printHIRBlock(p, n.Body)
		p.pop()
	case *hir.InvokeExpr:
		p.line("Invoke #%d/%d (%d args)", n.HirId().Owner, n.HirId().Child, len(n.Args))
	case *hir.PathExpr:
		p.line("Path #%d/%d", n.HirId().Owner, n.HirId().Child)
	case *hir.LiteralExpr:
		p.line("Literal #%d/%d", n.HirId().Owner, n.HirId().Child)
	case *hir.ErrorExpr:
		p.line("<error> #%d/%d", n.HirId().Owner, n.HirId().Child)
	default:
		p.line("%T", n)
	}
}

package debugprint

import (
	"fmt"
	"sort"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/resolve"
)

// PrintResolutions dumps the NodeId -> Res entry of each node in nodes,
// sorted by NodeId for stable output; nodes with no recorded resolution
// are skipped.
func PrintResolutions(res *resolve.Resolutions, defs *resolve.Table, nodes []ast.NodeId) string {
	p := &printer{}
	sorted := append([]ast.NodeId(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, node := range sorted {
		r, ok := res.Get(node)
		if !ok {
			continue
		}
		p.line("#%d -> %s", node, resSummary(r, defs))
	}
	return p.String()
}

func resSummary(r resolve.Res, defs *resolve.Table) string {
	switch r.Kind {
	case resolve.ResDef:
		return defSummary(defs, r.Def)
	case resolve.ResLocal:
		return fmt.Sprintf("Local#%d", r.Local)
	case resolve.ResPrimType:
		return fmt.Sprintf("Prim(%d)", r.Prim)
	case resolve.ResFOS:
		return fmt.Sprintf("FOS#%d", r.FOS)
	default:
		return "Error"
	}
}

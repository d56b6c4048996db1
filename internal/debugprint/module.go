package debugprint

import (
	"fmt"
	"sort"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/resolve"
)

var nsNames = [...]string{"value", "type", "lifetime"}

func nsName(ns resolve.Namespace) string {
	if int(ns) < len(nsNames) {
		return nsNames[ns]
	}
	return "?"
}

var defKindNames = map[resolve.DefKind]string{
	resolve.DefConst:       "const",
	resolve.DefConstParam:  "const-param",
	resolve.DefEnum:        "enum",
	resolve.DefFunc:        "func",
	resolve.DefImpl:        "impl",
	resolve.DefImportAlias: "import-alias",
	resolve.DefInit:        "init",
	resolve.DefLifetime:    "lifetime",
	resolve.DefMod:         "mod",
	resolve.DefStruct:      "struct",
	resolve.DefTrait:       "trait",
	resolve.DefTypeAlias:   "type-alias",
	resolve.DefTypeParam:   "type-param",
	resolve.DefVariant:     "variant",
	resolve.DefDefaultInit: "default-init",
}

func defKindName(k resolve.DefKind) string {
	if s, ok := defKindNames[k]; ok {
		return s
	}
	return "?"
}

// PrintModuleTree dumps every module in tree, in arena (allocation)
// order, with its bindings grouped by namespace.
func PrintModuleTree(tree *resolve.Tree, defs *resolve.Table) string {
	p := &printer{}
	for i := 0; i < tree.Len(); i++ {
		id := resolve.ModuleId(i)
		m := tree.Get(id)
		kind := "def"
		if m.Kind == resolve.ModuleBlock {
			kind = "block"
		}
		p.line("module #%d (%s) parent=%d nearestMod=%d", id, kind, m.Parent, m.NearestModDef)
		p.push()
		for ns := resolve.Namespace(0); int(ns) < 3; ns++ {
			names := m.Names(ns)
			if len(names) == 0 {
				continue
			}
			keys := make([]string, 0, len(names))
			for k := range names {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b := names[k]
				if b.Kind == resolve.BindFOS {
					p.line("%s %s -> FOS#%d", nsName(ns), k, b.FOS)
				} else {
					p.line("%s %s -> %s", nsName(ns), k, defSummary(defs, b.Def))
				}
			}
		}
		p.pop()
	}
	return p.String()
}

// PrintDefinitions dumps the definition table in allocation order.
func PrintDefinitions(defs *resolve.Table) string {
	p := &printer{}
	for i := 0; i < defs.Len(); i++ {
		id := resolve.DefId(i)
		p.line("%s", defSummary(defs, id))
	}
	return p.String()
}

func defSummary(defs *resolve.Table, id resolve.DefId) string {
	d := defs.GetDef(id)
	vis := "unset"
	if defs.Vis(id) == ast.VisPub {
		vis = "pub"
	}
	return fmt.Sprintf("Def#%d %s %s", id, defKindName(d.Kind), vis)
}

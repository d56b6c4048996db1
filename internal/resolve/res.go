package resolve

import "github.com/vellum-lang/vellum/internal/ast"

// ResKind tags which variant of Res a resolution holds: a union of
// Def(DefId), Local(NodeId), PrimType(PrimType), or Error.
type ResKind uint8

const (
	ResDef ResKind = iota
	ResLocal
	ResPrimType
	ResFOS
	ResError
)

// Res is a resolution outcome attached to a NodeId. FOS is a further
// variant needed for one case: a bare path to an
// overloaded function, without call-site suffix context, resolves to the
// FOSId itself "to be disambiguated later".
type Res struct {
	Kind  ResKind
	Def   DefId
	Local ast.NodeId
	Prim  PrimType
	FOS   FOSId
}

func DefRes(id DefId) Res        { return Res{Kind: ResDef, Def: id} }
func LocalRes(id ast.NodeId) Res { return Res{Kind: ResLocal, Local: id} }
func PrimRes(p PrimType) Res     { return Res{Kind: ResPrimType, Prim: p} }
func FOSRes(id FOSId) Res        { return Res{Kind: ResFOS, FOS: id} }

var ErrorRes = Res{Kind: ResError}

// Resolutions stores the NodeId -> Res map the Name Resolver populates.
type Resolutions struct {
	m map[ast.NodeId]Res
}

// NewResolutions returns an empty Resolutions table.
func NewResolutions() *Resolutions {
	return &Resolutions{m: make(map[ast.NodeId]Res)}
}

// Set records the resolution of node.
func (r *Resolutions) Set(node ast.NodeId, res Res) { r.m[node] = res }

// Get returns the resolution recorded for node, if any.
func (r *Resolutions) Get(node ast.NodeId) (Res, bool) {
	res, ok := r.m[node]
	return res, ok
}

// Keys returns every NodeId with a recorded resolution, in no particular
// order.
func (r *Resolutions) Keys() []ast.NodeId {
	keys := make([]ast.NodeId, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	return keys
}

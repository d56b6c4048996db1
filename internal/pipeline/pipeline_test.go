package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/hir"
	"github.com/vellum-lang/vellum/internal/pipeline"
	"github.com/vellum-lang/vellum/internal/resolve"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
)

// run parses and fully resolves (through lowering) a single-file source
// string and returns the pipeline result.
func run(t *testing.T, src string) *pipeline.Result {
	t.Helper()
	sm := source.NewMap()
	fileId := sm.Register("test.jc")
	sm.SetContents(fileId, src)
	return pipeline.Run(sm, fileId, []pipeline.Source{{FileId: fileId, Text: src}}, pipeline.DepthLowering)
}

// TestHelloWorldResolvesCleanly mirrors spec scenario 1: a func with no
// unresolved references produces zero errors and a Func def named main.
func TestHelloWorldResolvesCleanly(t *testing.T) {
	res := run(t, `func main() { let x = 1; }`)
	require.False(t, res.Sess.HasErrors())

	found := false
	for id := 0; id < res.Sess.Defs.Len(); id++ {
		def := res.Sess.Defs.GetDef(resolve.DefId(id))
		if def.Kind == resolve.DefFunc && symbol.Get(def.Ident) == "main" {
			found = true
		}
	}
	require.True(t, found, "expected a Func definition named main")
}

// TestUnresolvedNameIsExactlyOneError mirrors spec scenario 2: a call to
// an undeclared function produces exactly one message.
func TestUnresolvedNameIsExactlyOneError(t *testing.T) {
	res := run(t, `func main() { foo() }`)
	require.True(t, res.Sess.HasErrors())
	require.Len(t, res.Sess.Msgs.Messages(), 1)
}

// TestOverloadSetHasTwoSuffixes mirrors spec scenario 3: two functions
// with the same base name but different labelled suffixes share one FOS
// with both suffixes present.
func TestOverloadSetHasTwoSuffixes(t *testing.T) {
	res := run(t, `
		func f(x: int) {}
		func f(y: int) {}
		func main() { f(x: 1); f(y: 2) }
	`)
	require.False(t, res.Sess.HasErrors())

	root := res.Sess.Tree.Get(res.Sess.Tree.Root)
	binding, ok := root.Lookup(resolve.NsValue, "f")
	require.True(t, ok)
	require.Equal(t, resolve.BindFOS, binding.Kind)

	suffixes := res.Sess.Defs.FOS(binding.FOS)
	require.Len(t, suffixes, 2)
	require.Contains(t, suffixes, "f(x:)")
	require.Contains(t, suffixes, "f(y:)")
}

// TestOverloadCollisionIsOneError mirrors spec scenario 4: two functions
// with the same base name and the same suffix collide.
func TestOverloadCollisionIsOneError(t *testing.T) {
	res := run(t, `func f(x: int) {} func f(x: int) {}`)
	require.True(t, res.Sess.HasErrors())
	require.Len(t, res.Sess.Msgs.Messages(), 1)
}

// TestBreakOutsideLoopIsOneError mirrors spec scenario 5.
func TestBreakOutsideLoopIsOneError(t *testing.T) {
	res := run(t, `func main() { break }`)
	require.True(t, res.Sess.HasErrors())
	require.Len(t, res.Sess.Msgs.Messages(), 1)
}

// TestBlockScopedItemResolvesAndLowers exercises a func item declared
// inside another func's body: the outer body must resolve the call to
// it and lowering must produce a Func def for the nested item.
func TestBlockScopedItemResolvesAndLowers(t *testing.T) {
	res := run(t, `
		func main() {
			func helper() -> int { 42 }
			let x = helper();
		}
	`)
	require.False(t, res.Sess.HasErrors())

	found := false
	for id := 0; id < res.Sess.Defs.Len(); id++ {
		def := res.Sess.Defs.GetDef(resolve.DefId(id))
		if def.Kind == resolve.DefFunc && symbol.Get(def.Ident) == "helper" {
			found = true
		}
	}
	require.True(t, found, "expected a Func definition named helper nested in main's body")
	require.NotNil(t, res.Sess.HIR)

	nestedLowered := false
	for _, item := range res.Sess.HIR.Owners {
		if fn, ok := item.(*hir.FuncItem); ok && symbol.Get(res.Sess.Defs.GetDef(fn.Def).Ident) == "helper" {
			nestedLowered = true
		}
	}
	require.True(t, nestedLowered, "expected helper to be lowered into the HIR owners table")
}

// TestBlockScopedItemShadowsOuterOverloadSet mirrors a func nested in a
// block that shares its outer namesake's base name: the block's own FOS
// shadows the outer one entirely (ordinary lexical shadowing), so a call
// using the outer-only suffix fails to resolve instead of falling
// through to the shadowed definition.
func TestBlockScopedItemShadowsOuterOverloadSet(t *testing.T) {
	res := run(t, `
		func f(x: int) {}
		func main() {
			func f(y: int) {}
			f(y: 1);
			f(x: 2);
		}
	`)
	require.True(t, res.Sess.HasErrors())
}

// TestValidHelloProducesHIR checks that a fully clean program reaches
// lowering and produces a non-nil HIR with main's body as a Body.
func TestValidHelloProducesHIR(t *testing.T) {
	res := run(t, `func main() { let x = 1; }`)
	require.False(t, res.Sess.HasErrors())
	require.NotNil(t, res.Sess.HIR)
	require.NotEmpty(t, res.Sess.HIR.Bodies)
}

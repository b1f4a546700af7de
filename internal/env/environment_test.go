package env_test

import (
	"testing"

	"github.com/noahgarrett/limec/internal/env"
	"github.com/noahgarrett/limec/internal/ir"
	"github.com/stretchr/testify/require"
)

func TestDefineAndLookup(t *testing.T) {
	e := env.New()
	e.Define("x", env.Binding{Type: ir.I32, IsSlot: true})

	b, ok := e.Lookup("x")
	require.True(t, ok)
	require.Equal(t, ir.I32, b.Type)
	require.True(t, b.IsSlot)
}

func TestLookup_MissingReturnsFalse(t *testing.T) {
	e := env.New()
	_, ok := e.Lookup("missing")
	require.False(t, ok)
}

func TestLookup_WalksParentChain(t *testing.T) {
	root := env.New()
	root.Define("g", env.Binding{Type: ir.I32})

	child := env.NewEnclosed(root)
	b, ok := child.Lookup("g")
	require.True(t, ok)
	require.Equal(t, ir.I32, b.Type)
}

func TestDefine_ShadowsOuterBindingWithoutMutatingIt(t *testing.T) {
	root := env.New()
	root.Define("x", env.Binding{Type: ir.I32})

	child := env.NewEnclosed(root)
	child.Define("x", env.Binding{Type: ir.Float32})

	childBinding, _ := child.Lookup("x")
	require.Equal(t, ir.Float32, childBinding.Type)

	rootBinding, _ := root.Lookup("x")
	require.Equal(t, ir.I32, rootBinding.Type)
}

func TestDefine_OverwritesExistingBindingInSameScope(t *testing.T) {
	e := env.New()
	e.Define("x", env.Binding{Type: ir.I32})
	e.Define("x", env.Binding{Type: ir.Float32})

	b, _ := e.Lookup("x")
	require.Equal(t, ir.Float32, b.Type)
}

func TestOuter(t *testing.T) {
	root := env.New()
	child := env.NewEnclosed(root)
	require.Same(t, root, child.Outer())
	require.Nil(t, root.Outer())
}

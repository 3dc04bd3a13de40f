package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opdeflang/opdef/opdeferr"
)

// TestDriver_LiteralNullary mirrors spec.md §8 scenario 1.
func TestDriver_LiteralNullary(t *testing.T) {
	d := New(t.TempDir())
	v, errs := d.Run("main", "f 0 main\n  42")
	require.Empty(t, errs)
	assert.Equal(t, int64(42), v.Int())
}

// TestDriver_BinaryReturnsLeftOperand mirrors spec.md §8 scenario 2.
func TestDriver_BinaryReturnsLeftOperand(t *testing.T) {
	src := "xfx 500 X plus Y\n  X\nf 0 seven\n  3 plus 4"
	d := New(t.TempDir())
	v, errs := d.Run("main", src)
	require.Empty(t, errs)
	assert.Equal(t, int64(3), v.Int())
}

// TestDriver_PriorityShapesTree mirrors spec.md §8 scenario 3.
func TestDriver_PriorityShapesTree(t *testing.T) {
	src := "xfx 500 X plus Y\n  X\nxfx 400 X times Y\n  X\nf 0 main\n  1 plus 2 times 3"
	d := New(t.TempDir())
	v, errs := d.Run("main", src)
	require.Empty(t, errs)
	assert.Equal(t, int64(1), v.Int())
}

// TestDriver_PairLiteral mirrors spec.md §8 scenario 4.
func TestDriver_PairLiteral(t *testing.T) {
	d := New(t.TempDir())
	v, errs := d.Run("main", "f 0 main\n  {1, 2, 3}")
	require.Empty(t, errs)
	require.True(t, v.IsPair())
	a, rest := v.Components()
	assert.Equal(t, int64(1), a.Int())
	require.True(t, rest.IsPair())
	b, c := rest.Components()
	assert.Equal(t, int64(2), b.Int())
	assert.Equal(t, int64(3), c.Int())
}

// TestDriver_NumericLiteralOverloadDispatch mirrors spec.md §8 scenario 5.
func TestDriver_NumericLiteralOverloadDispatch(t *testing.T) {
	src := "xf 300 0 fact\n  1\nxf 300 X fact\n  X\nf 0 main\n  0 fact"
	d := New(t.TempDir())
	v, errs := d.Run("main", src)
	require.Empty(t, errs)
	assert.Equal(t, int64(1), v.Int())
}

// TestDriver_AmbiguousExpressionReportsError mirrors spec.md §8 scenario
// 6: xfy `alpha` and yfx `beta` share priority 500, so both groupings of
// `1 alpha 2 beta 3` are derivable.
func TestDriver_AmbiguousExpressionReportsError(t *testing.T) {
	src := "xfy 500 X alpha Y\n  X\nyfx 500 X beta Y\n  X\nf 0 main\n  1 alpha 2 beta 3"
	d := New(t.TempDir())
	_, errs := d.Run("main", src)
	require.Len(t, errs, 1)
	assert.Equal(t, opdeferr.AmbiguousExpression, errs[0].Kind)
}

func TestDriver_IncludePullsInDeclarationsFromAnotherFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prelude.opd"), []byte("f 0 answer\n  42"), 0o644))

	d := New(dir)
	v, errs := d.Run("main", "include prelude\nf 0 main\n  answer")
	require.Empty(t, errs)
	assert.Equal(t, int64(42), v.Int())
}

func TestDriver_CyclicIncludeIsDetected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.opd"), []byte("include main"), 0o644))

	d := New(dir)
	_, errs := d.Run("main", "include a\nf 0 main\n  1")
	require.Len(t, errs, 1)
	assert.Equal(t, opdeferr.CyclicInclude, errs[0].Kind)
}

func TestDriver_MissingIncludeFileIsReported(t *testing.T) {
	d := New(t.TempDir())
	_, errs := d.Run("main", "include nowhere\nf 0 main\n  1")
	require.Len(t, errs, 1)
	assert.Equal(t, opdeferr.IncludeFailed, errs[0].Kind)
}

// TestDriver_CyclicIncludeBackToInMemoryRootIsDetected covers the case
// where the cycle loops back to the root source itself, which is always
// supplied in-memory and so was never written to disk under its own name.
func TestDriver_CyclicIncludeBackToInMemoryRootIsDetected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.opd"), []byte("include main"), 0o644))

	d := New(dir)
	_, errs := d.Run("main", "include a\nf 0 main\n  1")
	require.Len(t, errs, 1)
	assert.Equal(t, opdeferr.CyclicInclude, errs[0].Kind)
}

// TestDriver_ReRegisteredNullaryIsLastRegistered pins "last registered" as
// a per-declaration event at the driver level, matching
// optable.TestLastRegisteredNullary_ReReadsMoveToFront. bar is re-declared
// after foo, so Run evaluates bar rather than foo; bar's own dispatch then
// picks its first overload (1), since both are nullary and match
// trivially.
func TestDriver_ReRegisteredNullaryIsLastRegistered(t *testing.T) {
	d := New(t.TempDir())
	v, errs := d.Run("main", "f 0 bar\n  1\nf 0 foo\n  2\nf 0 bar\n  3")
	require.Empty(t, errs)
	assert.Equal(t, int64(1), v.Int())
}

func TestNewSession_AssignsDistinctIDs(t *testing.T) {
	a := NewSession(t.TempDir())
	b := NewSession(t.TempDir())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDriver_CategoryCollisionWithNullaryOperator(t *testing.T) {
	d := New(t.TempDir())
	_, errs := d.Run("main", "f 0 red\n  1\ncategory red\nf 0 main\n  1")
	require.Len(t, errs, 1)
	assert.Equal(t, opdeferr.NameConflict, errs[0].Kind)
}

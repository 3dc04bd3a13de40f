package optable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/optablehandle"
)

func TestRegisterOverload_NullaryThenQuery(t *testing.T) {
	tbl := New()
	err := tbl.RegisterOverload(optablehandle.NullaryArity, "pi", 0, Bounds{}, Overload{
		Name: "pi",
		Body: body.NewNumeric(3),
	})
	require.Nil(t, err)

	assert.True(t, tbl.ExistsNullary("pi"))
	prio, ok := tbl.PriorityOf(optablehandle.NullaryArity, "pi")
	require.True(t, ok)
	assert.Equal(t, 0, prio)

	h, ok := tbl.LastRegisteredNullary()
	require.True(t, ok)
	assert.Equal(t, "pi", h.Name)
}

func TestRegisterOverload_PriorityConflictOnRedeclare(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, "plus", 500, Bounds{MaxLeft: 499, MaxRight: 500}, Overload{Name: "plus"}))
	err := tbl.RegisterOverload(optablehandle.BinaryArity, "plus", 600, Bounds{MaxLeft: 599, MaxRight: 600}, Overload{Name: "plus"})
	require.NotNil(t, err)
	assert.Equal(t, "PriorityConflict", string(err.Kind))
}

func TestRegisterOverload_FormatConflictOnDifferentBounds(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, "plus", 500, Bounds{MaxLeft: 499, MaxRight: 500}, Overload{Name: "plus"}))
	err := tbl.RegisterOverload(optablehandle.BinaryArity, "plus", 500, Bounds{MaxLeft: 500, MaxRight: 500}, Overload{Name: "plus"})
	require.NotNil(t, err)
	assert.Equal(t, "FormatConflict", string(err.Kind))
}

func TestRegisterOverload_SameBoundsAccumulatesOverloads(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, "plus", 500, Bounds{MaxLeft: 499, MaxRight: 500}, Overload{Name: "plus", Body: body.NewNumeric(1)}))
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, "plus", 500, Bounds{MaxLeft: 499, MaxRight: 500}, Overload{Name: "plus", Body: body.NewNumeric(2)}))

	h := tbl.ResolveBinary("plus")
	ovs := tbl.Overloads(h)
	require.Len(t, ovs, 2)
	assert.Equal(t, int64(1), ovs[0].Body.Num)
	assert.Equal(t, int64(2), ovs[1].Body.Num)
}

func TestRegisterOverload_NullaryNameCollidesWithCategory(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.InsertCategory("color"))
	err := tbl.RegisterOverload(optablehandle.NullaryArity, "color", 0, Bounds{}, Overload{Name: "color"})
	require.NotNil(t, err)
	assert.Equal(t, "NameConflict", string(err.Kind))
}

func TestInsertCategory_CollidesWithNullaryOperator(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.NullaryArity, "red", 0, Bounds{}, Overload{Name: "red"}))
	err := tbl.InsertCategory("red")
	require.NotNil(t, err)
	assert.Equal(t, "NameConflict", string(err.Kind))
}

func TestInsertCategory_ValuesAreMonotonicallyAssigned(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.InsertCategory("red"))
	require.Nil(t, tbl.InsertCategory("green"))

	redVal, ok := tbl.CategoryValue("red")
	require.True(t, ok)
	greenVal, ok := tbl.CategoryValue("green")
	require.True(t, ok)
	assert.Equal(t, 0, redVal)
	assert.Equal(t, 1, greenVal)
}

func TestMaxOperandPriority_PrefixAndPostfixAndBinary(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.PrefixArity, "neg", 200, Bounds{MaxRight: 200}, Overload{Name: "neg"}))
	require.Nil(t, tbl.RegisterOverload(optablehandle.PostfixArity, "fact", 100, Bounds{MaxLeft: 99}, Overload{Name: "fact"}))
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, "plus", 500, Bounds{MaxLeft: 499, MaxRight: 500}, Overload{Name: "plus"}))

	r, ok := tbl.MaxPrefixOperandPriority("neg")
	require.True(t, ok)
	assert.Equal(t, 200, r)

	l, ok := tbl.MaxPostfixOperandPriority("fact")
	require.True(t, ok)
	assert.Equal(t, 99, l)

	ml, ok := tbl.MaxLeftOperandPriority("plus")
	require.True(t, ok)
	assert.Equal(t, 499, ml)
	mr, ok := tbl.MaxRightOperandPriority("plus")
	require.True(t, ok)
	assert.Equal(t, 500, mr)
}

// TestLastRegisteredNullary_ReReadsMoveToFront pins "last registered" as a
// per-declaration event: re-registering a further overload against an
// already-registered nullary name moves it back to last, even though a
// different name was registered in between.
func TestLastRegisteredNullary_ReReadsMoveToFront(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.NullaryArity, "bar", 0, Bounds{}, Overload{Name: "bar", Body: body.NewNumeric(1)}))
	require.Nil(t, tbl.RegisterOverload(optablehandle.NullaryArity, "foo", 0, Bounds{}, Overload{Name: "foo", Body: body.NewNumeric(2)}))
	require.Nil(t, tbl.RegisterOverload(optablehandle.NullaryArity, "bar", 0, Bounds{}, Overload{Name: "bar", Body: body.NewNumeric(3)}))

	h, ok := tbl.LastRegisteredNullary()
	require.True(t, ok)
	assert.Equal(t, "bar", h.Name)
	assert.Len(t, tbl.Overloads(h), 2)
}

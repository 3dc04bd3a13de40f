package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_NumEquality(t *testing.T) {
	assert.True(t, Num(3).Equal(Num(3)))
	assert.False(t, Num(3).Equal(Num(4)))
}

func TestValue_PairEqualityIsStructural(t *testing.T) {
	a := NewPair(Num(1), NewPair(Num(2), Num(3)))
	b := NewPair(Num(1), NewPair(Num(2), Num(3)))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewPair(Num(1), Num(2))))
}

func TestValue_CloneIsDeepAndIndependent(t *testing.T) {
	original := NewPair(Num(1), Num(2))
	clone := original.Clone()
	assert.True(t, original.Equal(clone))

	a, _ := original.Components()
	ca, _ := clone.Components()
	assert.Equal(t, a.Int(), ca.Int())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "42", Num(42).String())
	assert.Equal(t, "{1, {2, 3}}", NewPair(Num(1), NewPair(Num(2), Num(3))).String())
}

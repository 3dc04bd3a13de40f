package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opdeflang/opdef/lexer"
)

func parseOne(t *testing.T, src string) *Pattern {
	t.Helper()
	ts := lexer.NewTokenStream(lexer.New(src))
	p, err := Parse(ts)
	require.Nil(t, err)
	return p
}

func TestParse_BareNumber(t *testing.T) {
	p := parseOne(t, "5")
	assert.Equal(t, NumericLit, p.Kind)
	assert.Equal(t, int64(5), p.Lit)
}

func TestParse_BareIdentifier(t *testing.T) {
	p := parseOne(t, "X")
	assert.Equal(t, Named, p.Kind)
	assert.Equal(t, "X", p.Name)
}

func TestParse_SingleIdentifierInBracesIsRestricted(t *testing.T) {
	p := parseOne(t, "{X}")
	assert.Equal(t, Restricted, p.Kind)
	assert.Equal(t, "X", p.Name)
}

func TestParse_SingleNumberInBracesIsError(t *testing.T) {
	ts := lexer.NewTokenStream(lexer.New("{5}"))
	_, err := Parse(ts)
	require.NotNil(t, err)
	assert.Equal(t, "NumericParamCannotBeRestricted", string(err.Kind))
}

func TestParse_MultiElementBraceIsRightAssociativePair(t *testing.T) {
	p := parseOne(t, "{a, b, c, d}")
	require.Equal(t, Pair, p.Kind)
	assert.Equal(t, "a", p.First.Name)
	require.Equal(t, Pair, p.Rest.Kind)
	assert.Equal(t, "b", p.Rest.First.Name)
	require.Equal(t, Pair, p.Rest.Rest.Kind)
	assert.Equal(t, "c", p.Rest.Rest.First.Name)
	assert.Equal(t, "d", p.Rest.Rest.Rest.Name)
}

func TestParse_NestedBraceGroups(t *testing.T) {
	p := parseOne(t, "{{X}, Y}")
	require.Equal(t, Pair, p.Kind)
	assert.Equal(t, Restricted, p.First.Kind)
	assert.Equal(t, "X", p.First.Name)
	assert.Equal(t, Named, p.Rest.Kind)
}

func TestLocalNames_CollectsNamedAndRestrictedOnly(t *testing.T) {
	p := parseOne(t, "{X, {Y}, 5}")
	names := LocalNames(p)
	assert.Len(t, names, 2)
	_, hasX := names["X"]
	_, hasY := names["Y"]
	assert.True(t, hasX)
	assert.True(t, hasY)
}

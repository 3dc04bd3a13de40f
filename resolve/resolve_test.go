package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/optable"
	"github.com/opdeflang/opdef/optablehandle"
	"github.com/opdeflang/opdef/token"
)

func tok(id token.ID, lexeme string) token.Token { return token.New(id, lexeme, 1, 1) }

func term(id token.ID, lexeme string) body.PreBody { return body.NewTerminal(tok(id, lexeme)) }

func TestResolve_SingleNumericLiteral(t *testing.T) {
	tbl := optable.New()
	seq := body.NewSequence([]body.PreBody{term(token.NUM, "42")})

	b, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.Nil(t, err)
	assert.Equal(t, body.Numeric, b.Kind)
	assert.Equal(t, int64(42), b.Num)
}

func TestResolve_IdentifierIsVarRefWhenLocal(t *testing.T) {
	tbl := optable.New()
	seq := body.NewSequence([]body.PreBody{term(token.IDENTIFIER, "X")})

	b, err := Resolve(seq, map[string]struct{}{"X": {}}, tbl)
	require.Nil(t, err)
	assert.Equal(t, body.VarRef, b.Kind)
	assert.Equal(t, "X", b.Name)
}

func TestResolve_IdentifierIsNullaryCallWhenRegistered(t *testing.T) {
	tbl := optable.New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.NullaryArity, "seven", 0, optable.Bounds{}, optable.Overload{Name: "seven", Body: body.NewNumeric(7)}))
	seq := body.NewSequence([]body.PreBody{term(token.IDENTIFIER, "seven")})

	b, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.Nil(t, err)
	assert.Equal(t, body.NullaryCall, b.Kind)
	assert.Equal(t, "seven", b.Op.Name)
}

func TestResolve_UnresolvedIdentifierFails(t *testing.T) {
	tbl := optable.New()
	seq := body.NewSequence([]body.PreBody{term(token.IDENTIFIER, "ghost")})

	_, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.NotNil(t, err)
	assert.Equal(t, opdeferr.UnresolvedName, err.Kind)
}

func registerBinary(t *testing.T, tbl *optable.Table, name string, priority int) {
	t.Helper()
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, name, priority, optable.Bounds{MaxLeft: priority, MaxRight: priority - 1}, optable.Overload{Name: name}))
}

// TestResolve_PriorityDrivesTreeShape mirrors spec.md §8 scenario 3: with
// `plus` at priority 500 (yfx) and `times` at priority 400 (yfx), the
// sequence `1 plus 2 times 3` must resolve to plus(1, times(2, 3)).
func TestResolve_PriorityDrivesTreeShape(t *testing.T) {
	tbl := optable.New()
	registerBinary(t, tbl, "plus", 500)
	registerBinary(t, tbl, "times", 400)

	seq := body.NewSequence([]body.PreBody{
		term(token.NUM, "1"),
		term(token.IDENTIFIER, "plus"),
		term(token.NUM, "2"),
		term(token.IDENTIFIER, "times"),
		term(token.NUM, "3"),
	})

	b, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.Nil(t, err)
	require.Equal(t, body.BinaryCall, b.Kind)
	assert.Equal(t, "plus", b.Op.Name)
	assert.Equal(t, int64(1), b.Left.Num)
	require.Equal(t, body.BinaryCall, b.Right.Kind)
	assert.Equal(t, "times", b.Right.Op.Name)
	assert.Equal(t, int64(2), b.Right.Left.Num)
	assert.Equal(t, int64(3), b.Right.Right.Num)
}

func TestResolve_PrefixOperator(t *testing.T) {
	tbl := optable.New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.PrefixArity, "neg", 200, optable.Bounds{MaxRight: 200}, optable.Overload{Name: "neg"}))

	seq := body.NewSequence([]body.PreBody{term(token.IDENTIFIER, "neg"), term(token.NUM, "5")})
	b, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.Nil(t, err)
	require.Equal(t, body.UnaryCall, b.Kind)
	assert.Equal(t, "neg", b.Op.Name)
	assert.Equal(t, int64(5), b.Left.Num)
}

func TestResolve_PostfixOperator(t *testing.T) {
	tbl := optable.New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.PostfixArity, "fact", 100, optable.Bounds{MaxLeft: 99}, optable.Overload{Name: "fact"}))

	seq := body.NewSequence([]body.PreBody{term(token.NUM, "5"), term(token.IDENTIFIER, "fact")})
	b, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.Nil(t, err)
	require.Equal(t, body.UnaryCall, b.Kind)
	assert.Equal(t, "fact", b.Op.Name)
	assert.Equal(t, int64(5), b.Left.Num)
}

// TestResolve_AmbiguousExpression mirrors spec.md §8 scenario 6: two
// binary operators of equal priority, `alpha` (xfy) accepting an
// equal-priority right operand and `beta` (yfx) an equal-priority left
// operand, so both alpha(1, beta(2, 3)) and beta(alpha(1, 2), 3) are
// derivable for the same sequence.
func TestResolve_AmbiguousExpression(t *testing.T) {
	tbl := optable.New()
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, "alpha", 500, optable.Bounds{MaxLeft: 499, MaxRight: 500}, optable.Overload{Name: "alpha"}))
	require.Nil(t, tbl.RegisterOverload(optablehandle.BinaryArity, "beta", 500, optable.Bounds{MaxLeft: 500, MaxRight: 499}, optable.Overload{Name: "beta"}))

	seq := body.NewSequence([]body.PreBody{
		term(token.NUM, "1"),
		term(token.IDENTIFIER, "alpha"),
		term(token.NUM, "2"),
		term(token.IDENTIFIER, "beta"),
		term(token.NUM, "3"),
	})

	_, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.NotNil(t, err)
	assert.Equal(t, opdeferr.AmbiguousExpression, err.Kind)
}

func TestResolve_EmptySequenceFails(t *testing.T) {
	tbl := optable.New()
	seq := body.NewSequence(nil)

	_, err := Resolve(seq, map[string]struct{}{}, tbl)
	require.NotNil(t, err)
	assert.Equal(t, opdeferr.EmptyBody, err.Kind)
}

func TestResolve_PairBodyResolvesBothComponents(t *testing.T) {
	tbl := optable.New()
	left := body.NewSequence([]body.PreBody{term(token.NUM, "1")})
	right := body.NewSequence([]body.PreBody{term(token.NUM, "2")})
	pair := body.NewPrePair(left, right)

	b, err := Resolve(pair, map[string]struct{}{}, tbl)
	require.Nil(t, err)
	require.Equal(t, body.PostPair, b.Kind)
	assert.Equal(t, int64(1), b.Left.Num)
	assert.Equal(t, int64(2), b.Right.Num)
}

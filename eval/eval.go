/*
File   : opdef/eval/eval.go
Package eval implements the tree-walking evaluator (spec.md §4.6) and the
per-arity overload dispatcher (spec.md §4.7): given a resolved Body and an
operator table, produce a Value.
*/
package eval

import (
	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/optable"
	"github.com/opdeflang/opdef/optablehandle"
	"github.com/opdeflang/opdef/pattern"
	"github.com/opdeflang/opdef/value"
)

// VariableTable is a scoped binding established at overload entry by
// decomposing actual arguments against parameter patterns (spec.md §3).
// It satisfies body.Bindings by duck typing, so a Native body can consult
// it without this package needing to be imported back by body.
type VariableTable struct {
	bindings map[string]value.Value
}

// NewVariableTable builds an empty table.
func NewVariableTable() *VariableTable {
	return &VariableTable{bindings: make(map[string]value.Value)}
}

// Lookup implements body.Bindings.
func (vt *VariableTable) Lookup(name string) (value.Value, bool) {
	v, ok := vt.bindings[name]
	return v, ok
}

// Eval walks b against vt, invoking overloads from tbl as needed.
func Eval(b *body.Body, vt *VariableTable, tbl *optable.Table) (value.Value, *opdeferr.Error) {
	switch b.Kind {
	case body.Numeric:
		return value.Num(b.Num), nil

	case body.VarRef:
		v, ok := vt.Lookup(b.Name)
		if !ok {
			return value.Value{}, opdeferr.New(opdeferr.UnboundVariable, "unbound variable %q", b.Name)
		}
		return v.Clone(), nil

	case body.NullaryCall:
		return Invoke(b.Op, nil, tbl)

	case body.UnaryCall:
		arg, err := Eval(b.Left, vt, tbl)
		if err != nil {
			return value.Value{}, err
		}
		return Invoke(b.Op, []value.Value{arg}, tbl)

	case body.BinaryCall:
		left, err := Eval(b.Left, vt, tbl)
		if err != nil {
			return value.Value{}, err
		}
		right, err := Eval(b.Right, vt, tbl)
		if err != nil {
			return value.Value{}, err
		}
		return Invoke(b.Op, []value.Value{left, right}, tbl)

	case body.PostPair:
		// Left evaluated before right -- observable when operators have
		// effects, though none are specified here (spec.md §4.6).
		left, err := Eval(b.Left, vt, tbl)
		if err != nil {
			return value.Value{}, err
		}
		right, err := Eval(b.Right, vt, tbl)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewPair(left, right), nil

	case body.Native:
		v, err := b.NativeFn(vt)
		if err != nil {
			if opErr, ok := err.(*opdeferr.Error); ok {
				return value.Value{}, opErr
			}
			return value.Value{}, opdeferr.New(opdeferr.InvariantViolation, "%s", err.Error())
		}
		return v, nil
	}

	return value.Value{}, opdeferr.New(opdeferr.InvariantViolation, "evaluator encountered an unresolved body node")
}

// Invoke runs the overload dispatcher for handle h against args (spec.md
// §4.7): each overload's patterns are tried, in insertion order, against
// the argument values; the first full match wins.
func Invoke(h optablehandle.Handle, args []value.Value, tbl *optable.Table) (value.Value, *opdeferr.Error) {
	overloads := tbl.Overloads(h)
	for i := range overloads {
		ov := overloads[i]
		if len(ov.Patterns) != len(args) {
			continue
		}
		bindings := make(map[string]value.Value)
		matched := true
		for idx, p := range ov.Patterns {
			if !decompose(p, args[idx], bindings) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		vt := &VariableTable{bindings: bindings}
		return Eval(&ov.Body, vt, tbl)
	}
	return value.Value{}, opdeferr.New(opdeferr.NoMatchingOverload, "no overload of %q matches the given arguments", h.Name)
}

// decompose matches v against p, merging any newly bound names into
// bindings. Repeated names must bind structurally equal values (the
// "binding-merge discipline" of spec.md §4.7); a mismatch fails the match
// exactly like any other pattern mismatch.
//
// Pair decomposition splits v into its two components and recurses each
// half against the corresponding sub-pattern -- the source's
// PairParameter::decompose passes the whole value to both sub-patterns
// instead; that bug is not reproduced here (spec.md §9).
func decompose(p *pattern.Pattern, v value.Value, bindings map[string]value.Value) bool {
	switch p.Kind {
	case pattern.Named:
		return bindName(p.Name, v, bindings)
	case pattern.Restricted:
		if !v.IsNum() {
			return false
		}
		return bindName(p.Name, v, bindings)
	case pattern.NumericLit:
		return v.IsNum() && v.Int() == p.Lit
	case pattern.Pair:
		if !v.IsPair() {
			return false
		}
		first, second := v.Components()
		return decompose(p.First, first, bindings) && decompose(p.Rest, second, bindings)
	}
	return false
}

func bindName(name string, v value.Value, bindings map[string]value.Value) bool {
	if existing, ok := bindings[name]; ok {
		return existing.Equal(v)
	}
	bindings[name] = v
	return true
}

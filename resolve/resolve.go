/*
File   : opdef/resolve/resolve.go
Package resolve implements the sequence resolver (spec.md §4.5): the
priority- and associativity-gated CYK dynamic program that turns a flat
pre-resolution body into a single unambiguous post-resolution body, given
the operator table in effect and the enclosing overload's local name set.
*/
package resolve

import (
	"strconv"

	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/optable"
	"github.com/opdeflang/opdef/optablehandle"
	"github.com/opdeflang/opdef/token"
)

// Resolve converts pb into its post-resolution Body, consulting tbl for
// operator metadata and locals to classify bare identifiers as variable
// references versus nullary-operator calls.
func Resolve(pb body.PreBody, locals map[string]struct{}, tbl *optable.Table) (*body.Body, *opdeferr.Error) {
	switch pb.Kind {
	case body.Terminal:
		return resolveTerminal(pb.Token, locals, tbl)
	case body.PrePair:
		left, err := Resolve(*pb.Left, locals, tbl)
		if err != nil {
			return nil, err
		}
		right, err := Resolve(*pb.Right, locals, tbl)
		if err != nil {
			return nil, err
		}
		b := body.NewPostPair(*left, *right)
		return &b, nil
	case body.Sequence:
		return resolveSequence(pb.Items, locals, tbl)
	}
	return nil, opdeferr.New(opdeferr.InvariantViolation, "unrecognized pre-resolution body kind")
}

// resolveTerminal implements the atom-resolution rules of spec.md §4.5.
func resolveTerminal(tok token.Token, locals map[string]struct{}, tbl *optable.Table) (*body.Body, *opdeferr.Error) {
	switch tok.ID {
	case token.NUM:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, opdeferr.NewAt(opdeferr.ExpectedNumber, tok.Line, tok.Column, "malformed numeric literal %q", tok.Lexeme)
		}
		b := body.NewNumeric(n)
		return &b, nil
	case token.IDENTIFIER:
		if _, ok := locals[tok.Lexeme]; ok {
			b := body.NewVarRef(tok.Lexeme)
			return &b, nil
		}
		if tbl.ExistsNullary(tok.Lexeme) {
			b := body.NewNullaryCall(tbl.ResolveNullary(tok.Lexeme))
			return &b, nil
		}
		return nil, opdeferr.NewAt(opdeferr.UnresolvedName, tok.Line, tok.Column, "unresolved name %q", tok.Lexeme)
	case token.STRING:
		return nil, opdeferr.NewAt(opdeferr.Unsupported, tok.Line, tok.Column, "string-to-pair desugaring in body position is not supported")
	default:
		return nil, opdeferr.NewAt(opdeferr.NonAtomicToken, tok.Line, tok.Column, "%s cannot appear as an atom", tok.ID)
	}
}

type cellState int

const (
	stateInvalid cellState = iota
	stateValid
	stateAmbiguous
)

type cell struct {
	state    cellState
	value    *body.Body
	priority int
	// firstErr captures the reason a span-0 (base case) cell is invalid,
	// so the top-level failure can report a specific diagnostic
	// (UnresolvedName, NonAtomicToken, Unsupported, ExpectedNumber)
	// instead of a generic UnparsableExpression when the whole body is a
	// single failing atom.
	firstErr *opdeferr.Error
}

type candidate struct {
	value    *body.Body
	priority int
}

// resolveSequence runs the O(n^3) CYK fill described in spec.md §4.5 over
// a flat Sequence's items, using `<=` uniformly for operand-priority
// comparisons (spec.md §9's resolved open question).
func resolveSequence(items []body.PreBody, locals map[string]struct{}, tbl *optable.Table) (*body.Body, *opdeferr.Error) {
	n := len(items)
	if n == 0 {
		return nil, opdeferr.New(opdeferr.EmptyBody, "operator body must not be empty")
	}

	cells := make([][]cell, n)
	for i := range cells {
		cells[i] = make([]cell, n)
	}

	for i := 0; i < n; i++ {
		b, err := resolveAtom(items[i], locals, tbl)
		if err != nil {
			cells[i][i] = cell{state: stateInvalid, firstErr: err}
			continue
		}
		cells[i][i] = cell{state: stateValid, value: b, priority: 0}
	}

	for d := 1; d < n; d++ {
		for i := 0; i+d < n; i++ {
			j := i + d
			var candidates []candidate

			if name, ok := bareIdent(items[i]); ok && tbl.ExistsPrefix(name) {
				inner := cells[i+1][j]
				if inner.state == stateValid {
					if maxRight, ok := tbl.MaxPrefixOperandPriority(name); ok && inner.priority <= maxRight {
						prio, _ := tbl.PriorityOf(optablehandle.PrefixArity, name)
						v := body.NewUnaryCall(tbl.ResolvePrefix(name), *inner.value)
						candidates = append(candidates, candidate{&v, prio})
					}
				}
			}

			if name, ok := bareIdent(items[j]); ok && tbl.ExistsPostfix(name) {
				inner := cells[i][j-1]
				if inner.state == stateValid {
					if maxLeft, ok := tbl.MaxPostfixOperandPriority(name); ok && inner.priority <= maxLeft {
						prio, _ := tbl.PriorityOf(optablehandle.PostfixArity, name)
						v := body.NewUnaryCall(tbl.ResolvePostfix(name), *inner.value)
						candidates = append(candidates, candidate{&v, prio})
					}
				}
			}

			for k := i + 1; k < j; k++ {
				name, ok := bareIdent(items[k])
				if !ok || !tbl.ExistsBinary(name) {
					continue
				}
				left := cells[i][k-1]
				right := cells[k+1][j]
				if left.state != stateValid || right.state != stateValid {
					continue
				}
				maxLeft, ok1 := tbl.MaxLeftOperandPriority(name)
				maxRight, ok2 := tbl.MaxRightOperandPriority(name)
				if !ok1 || !ok2 || left.priority > maxLeft || right.priority > maxRight {
					continue
				}
				prio, _ := tbl.PriorityOf(optablehandle.BinaryArity, name)
				v := body.NewBinaryCall(tbl.ResolveBinary(name), *left.value, *right.value)
				candidates = append(candidates, candidate{&v, prio})
			}

			switch len(candidates) {
			case 0:
				cells[i][j] = cell{state: stateInvalid}
			case 1:
				cells[i][j] = cell{state: stateValid, value: candidates[0].value, priority: candidates[0].priority}
			default:
				cells[i][j] = cell{state: stateAmbiguous}
			}
		}
	}

	top := cells[0][n-1]
	switch top.state {
	case stateValid:
		return top.value, nil
	case stateAmbiguous:
		return nil, opdeferr.New(opdeferr.AmbiguousExpression, "expression admits more than one parse under the current operator table")
	default:
		if n == 1 && top.firstErr != nil {
			return nil, top.firstErr
		}
		return nil, opdeferr.New(opdeferr.UnparsableExpression, "no valid parse under the current operator table")
	}
}

// resolveAtom resolves a single Sequence item as a base-case atom: either
// a bare Terminal token, or an already-nested pre-resolution body (a
// brace-grouped sub-expression) that is itself fully resolved.
func resolveAtom(item body.PreBody, locals map[string]struct{}, tbl *optable.Table) (*body.Body, *opdeferr.Error) {
	switch item.Kind {
	case body.Terminal:
		return resolveTerminal(item.Token, locals, tbl)
	case body.Sequence, body.PrePair:
		return Resolve(item, locals, tbl)
	}
	return nil, opdeferr.New(opdeferr.InvariantViolation, "unrecognized sequence item kind")
}

// bareIdent reports whether item is a literal, unbracketed identifier
// token -- the only shape that can name a prefix/postfix/binary operator
// at resolution time (spec.md §4.5).
func bareIdent(item body.PreBody) (string, bool) {
	if item.Kind == body.Terminal && item.Token.ID == token.IDENTIFIER {
		return item.Token.Lexeme, true
	}
	return "", false
}

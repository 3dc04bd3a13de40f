/*
File   : opdef/body/body.go
Package body implements the two lifecycle stages of an operator body
(spec.md §3, §9): PreBody, as emitted by the statement parser, and Body,
as produced by the sequence resolver. Modeling them as two distinct sum
types (rather than one type with an "only valid after resolution" flag)
follows spec.md §9's guidance and keeps every post-resolution consumer
(the evaluator, the overload table) from having to guard against
Sequence/Terminal ever reappearing.
*/
package body

import (
	"fmt"

	"github.com/opdeflang/opdef/optablehandle"
	"github.com/opdeflang/opdef/token"
	"github.com/opdeflang/opdef/value"
)

// PreKind distinguishes the three pre-resolution shapes.
type PreKind int

const (
	Sequence PreKind = iota
	Terminal
	PrePair
)

// PreBody is what the statement parser emits for an operator's body: a
// flat token Sequence to be resolved, a single Terminal token, or a
// comma-built Pair of sub-bodies.
type PreBody struct {
	Kind  PreKind
	Items []PreBody  // Sequence
	Token token.Token // Terminal
	Left  *PreBody    // Pair
	Right *PreBody    // Pair
}

// NewSequence builds a Sequence body from a non-empty item list.
func NewSequence(items []PreBody) PreBody {
	return PreBody{Kind: Sequence, Items: items}
}

// NewTerminal builds a Terminal body wrapping a single token.
func NewTerminal(tok token.Token) PreBody {
	return PreBody{Kind: Terminal, Token: tok}
}

// NewPrePair builds a comma-separated Pair of pre-resolution bodies.
func NewPrePair(left, right PreBody) PreBody {
	return PreBody{Kind: PrePair, Left: &left, Right: &right}
}

// String renders a PreBody the way the -p/--parser CLI dump and the REPL's
// declaration echo want it: a flat run prints its items space-separated,
// a Terminal prints its lexeme, and a Pair prints as a brace group.
func (pb PreBody) String() string {
	switch pb.Kind {
	case Terminal:
		return pb.Token.Lexeme
	case PrePair:
		return fmt.Sprintf("{%s, %s}", pb.Left.String(), pb.Right.String())
	case Sequence:
		parts := make([]string, len(pb.Items))
		for i, it := range pb.Items {
			parts[i] = it.String()
		}
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += " "
			}
			out += p
		}
		return out
	}
	return "?"
}

// Bindings is the minimal variable-lookup surface a Native body needs.
// eval.VariableTable satisfies it; body does not import eval, avoiding an
// import cycle between the two lifecycle stages and the evaluator.
type Bindings interface {
	Lookup(name string) (value.Value, bool)
}

// Kind distinguishes the post-resolution shapes.
type Kind int

const (
	Numeric Kind = iota
	VarRef
	NullaryCall
	UnaryCall
	BinaryCall
	PostPair
	Native
)

// Body is a fully resolved expression: a literal, a variable reference, an
// operator invocation of one of the three arities, a pair of resolved
// bodies, or a native (host-supplied) operation -- the "native operator
// hook" acknowledged in spec.md §9.
type Body struct {
	Kind  Kind
	Num   int64
	Name  string
	Op    optablehandle.Handle
	Left  *Body
	Right *Body
	NativeFn func(Bindings) (value.Value, error)
}

func NewNumeric(i int64) Body { return Body{Kind: Numeric, Num: i} }

func NewVarRef(name string) Body { return Body{Kind: VarRef, Name: name} }

func NewNullaryCall(op optablehandle.Handle) Body { return Body{Kind: NullaryCall, Op: op} }

func NewUnaryCall(op optablehandle.Handle, arg Body) Body {
	return Body{Kind: UnaryCall, Op: op, Left: &arg}
}

func NewBinaryCall(op optablehandle.Handle, left, right Body) Body {
	return Body{Kind: BinaryCall, Op: op, Left: &left, Right: &right}
}

func NewPostPair(left, right Body) Body {
	return Body{Kind: PostPair, Left: &left, Right: &right}
}

func NewNative(fn func(Bindings) (value.Value, error)) Body {
	return Body{Kind: Native, NativeFn: fn}
}

func (b Body) String() string {
	switch b.Kind {
	case Numeric:
		return fmt.Sprintf("%d", b.Num)
	case VarRef:
		return b.Name
	case NullaryCall:
		return fmt.Sprintf("%s()", b.Op)
	case UnaryCall:
		return fmt.Sprintf("%s(%s)", b.Op, b.Left.String())
	case BinaryCall:
		return fmt.Sprintf("%s(%s, %s)", b.Op, b.Left.String(), b.Right.String())
	case PostPair:
		return fmt.Sprintf("{%s, %s}", b.Left.String(), b.Right.String())
	case Native:
		return "<native>"
	}
	return "?"
}

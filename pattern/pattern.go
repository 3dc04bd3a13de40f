/*
File   : opdef/pattern/pattern.go
Package pattern implements the parameter-pattern sum type that appears in
operator signatures (spec.md §3): Named, Restricted, NumericLit, and Pair.
Patterns drive both compile-time local-name collection (LocalNames) and
runtime decomposition (the eval package's dispatcher).
*/
package pattern

import "fmt"

// Kind distinguishes the four pattern variants.
type Kind int

const (
	Named Kind = iota
	Restricted
	NumericLit
	Pair
)

// Pattern is a finite tree (spec.md §3 invariant). NumericLit carries its
// literal value; Pair carries its two sub-patterns; Named/Restricted
// carry the bound name.
type Pattern struct {
	Kind  Kind
	Name  string
	Lit   int64
	First *Pattern
	Rest  *Pattern
}

// NewNamed builds Named(name).
func NewNamed(name string) *Pattern { return &Pattern{Kind: Named, Name: name} }

// NewRestricted builds Restricted(name).
func NewRestricted(name string) *Pattern { return &Pattern{Kind: Restricted, Name: name} }

// NewNumericLit builds NumericLit(name, k). The carried name has no binding
// role (spec.md §3) but is kept for diagnostics.
func NewNumericLit(name string, k int64) *Pattern {
	return &Pattern{Kind: NumericLit, Name: name, Lit: k}
}

// NewPair builds Pair(p1, p2).
func NewPair(p1, p2 *Pattern) *Pattern {
	return &Pattern{Kind: Pair, First: p1, Rest: p2}
}

// RightAssocPair builds the right-associative chain for brace sugar
// {a, b, c, d} ⇒ Pair(a, Pair(b, Pair(c, d))) (spec.md §3).
func RightAssocPair(parts []*Pattern) *Pattern {
	if len(parts) == 0 {
		return nil
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return NewPair(parts[0], RightAssocPair(parts[1:]))
}

// LocalNames collects every name bound by p: Named and Restricted leaves,
// recursing through Pair. NumericLit binds nothing. This is the operator
// definition's "local name set" (spec.md §3), used by the sequence
// resolver to classify identifiers as variable references.
func LocalNames(p *Pattern) map[string]struct{} {
	names := make(map[string]struct{})
	collect(p, names)
	return names
}

func collect(p *Pattern, into map[string]struct{}) {
	if p == nil {
		return
	}
	switch p.Kind {
	case Named, Restricted:
		into[p.Name] = struct{}{}
	case Pair:
		collect(p.First, into)
		collect(p.Rest, into)
	}
}

func (p *Pattern) String() string {
	if p == nil {
		return "<nil>"
	}
	switch p.Kind {
	case Named:
		return p.Name
	case Restricted:
		return fmt.Sprintf("{%s}", p.Name)
	case NumericLit:
		return fmt.Sprintf("%d", p.Lit)
	case Pair:
		return fmt.Sprintf("{%s, %s}", p.First.String(), p.Rest.String())
	}
	return "?"
}

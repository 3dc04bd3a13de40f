/*
File   : opdef/optable/optable.go
Package optable implements the operator table described in spec.md §4.4:
five maps (categories, nullary/prefix/postfix/binary operators), each
holding its overloads in insertion order, with per-operator priority and
operand-priority metadata that is immutable once set.

The table is modeled as a first-class object threaded through the driver
(spec.md §9 "Process-wide operator table"), not a package-level singleton,
so independent grammars (e.g. one per test) never interfere.
*/
package optable

import (
	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/optablehandle"
	"github.com/opdeflang/opdef/pattern"
)

// Overload stores one (pattern(s), body) pair registered under an entry.
type Overload struct {
	Name     string
	Patterns []*pattern.Pattern // len 0 nullary, 1 unary, 2 binary
	Body     body.Body
}

// entry is the per-arity-per-name record: declared priority, operand
// bounds (for unary/binary), and the insertion-ordered overload list.
type entry struct {
	name      string
	hasPrio   bool
	priority  int
	hasBounds bool
	// Operand-priority bounds, derived from the format per spec.md §3:
	// prefix uses maxRight; postfix uses maxLeft; binary uses both.
	maxLeft  int
	maxRight int
	overloads []Overload
}

// Table is the five-map operator/category registry.
type Table struct {
	categories map[string]int
	nextCatVal int

	nullary map[string]*entry
	prefix  map[string]*entry
	postfix map[string]*entry
	binary  map[string]*entry

	// lastNullaryName tracks the name touched by the most recent nullary
	// registration, first overload or additional one alike, so
	// LastRegisteredNullary reports whichever nullary entry the most
	// recently processed declaration registered against (spec.md §4.8,
	// §9 "last registered").
	lastNullaryName string
}

// New creates an empty table.
func New() *Table {
	return &Table{
		categories: make(map[string]int),
		nullary:    make(map[string]*entry),
		prefix:     make(map[string]*entry),
		postfix:    make(map[string]*entry),
		binary:     make(map[string]*entry),
	}
}

func (t *Table) tableFor(a optablehandle.Arity) map[string]*entry {
	switch a {
	case optablehandle.NullaryArity:
		return t.nullary
	case optablehandle.PrefixArity:
		return t.prefix
	case optablehandle.PostfixArity:
		return t.postfix
	case optablehandle.BinaryArity:
		return t.binary
	}
	return nil
}

// Bounds is the pair of operand-priority maxima a format derives
// (spec.md §3): for prefix only MaxRight is meaningful, for postfix only
// MaxLeft, for binary both.
type Bounds struct {
	MaxLeft  int
	MaxRight int
}

// RegisterOverload implements spec.md §4.4's insertion API and ordered
// rule list.
func (t *Table) RegisterOverload(arity optablehandle.Arity, name string, priority int, bounds Bounds, ov Overload) *opdeferr.Error {
	if arity != optablehandle.NullaryArity {
		// rule 1 only applies to the `f` (nullary) format, since only a
		// nullary operator name can collide with a category name.
	} else if t.ExistsCategory(name) {
		return opdeferr.New(opdeferr.NameConflict, "operator %q collides with a category of the same name", name)
	}

	tbl := t.tableFor(arity)
	e, exists := tbl[name]
	if !exists {
		e = &entry{name: name}
		tbl[name] = e
	}

	if e.hasPrio && e.priority != priority {
		return opdeferr.New(opdeferr.PriorityConflict, "operator %q previously declared with priority %d, now %d", name, e.priority, priority)
	}
	if !e.hasPrio {
		e.priority = priority
		e.hasPrio = true
	}

	if arity != optablehandle.NullaryArity {
		if e.hasBounds && (e.maxLeft != bounds.MaxLeft || e.maxRight != bounds.MaxRight) {
			return opdeferr.New(opdeferr.FormatConflict, "operator %q previously declared with different operand-priority bounds", name)
		}
		if !e.hasBounds {
			e.maxLeft = bounds.MaxLeft
			e.maxRight = bounds.MaxRight
			e.hasBounds = true
		}
	}

	e.overloads = append(e.overloads, ov)
	if arity == optablehandle.NullaryArity {
		t.lastNullaryName = name
	}
	return nil
}

// existsIn reports whether name has any overloads registered for arity.
func (t *Table) existsIn(arity optablehandle.Arity, name string) bool {
	e, ok := t.tableFor(arity)[name]
	return ok && len(e.overloads) > 0
}

func (t *Table) ExistsNullary(name string) bool { return t.existsIn(optablehandle.NullaryArity, name) }
func (t *Table) ExistsPrefix(name string) bool  { return t.existsIn(optablehandle.PrefixArity, name) }
func (t *Table) ExistsPostfix(name string) bool { return t.existsIn(optablehandle.PostfixArity, name) }
func (t *Table) ExistsBinary(name string) bool  { return t.existsIn(optablehandle.BinaryArity, name) }

// PriorityOf returns the declared priority for (arity, name); ok is false
// if no such entry exists.
func (t *Table) PriorityOf(arity optablehandle.Arity, name string) (int, bool) {
	e, exists := t.tableFor(arity)[name]
	if !exists || !e.hasPrio {
		return 0, false
	}
	return e.priority, true
}

// MaxPrefixOperandPriority returns max_prefix_operand_priority(name).
func (t *Table) MaxPrefixOperandPriority(name string) (int, bool) {
	e, ok := t.prefix[name]
	if !ok || !e.hasBounds {
		return 0, false
	}
	return e.maxRight, true
}

// MaxPostfixOperandPriority returns max_postfix_operand_priority(name).
func (t *Table) MaxPostfixOperandPriority(name string) (int, bool) {
	e, ok := t.postfix[name]
	if !ok || !e.hasBounds {
		return 0, false
	}
	return e.maxLeft, true
}

// MaxLeftOperandPriority and MaxRightOperandPriority return the binary
// operand-priority bounds.
func (t *Table) MaxLeftOperandPriority(name string) (int, bool) {
	e, ok := t.binary[name]
	if !ok || !e.hasBounds {
		return 0, false
	}
	return e.maxLeft, true
}

func (t *Table) MaxRightOperandPriority(name string) (int, bool) {
	e, ok := t.binary[name]
	if !ok || !e.hasBounds {
		return 0, false
	}
	return e.maxRight, true
}

// ResolveNullary, ResolvePrefix, ResolvePostfix, and ResolveBinary return
// the opaque handle for a registered name, used inside a resolved Body.
func (t *Table) ResolveNullary(name string) optablehandle.Handle {
	return optablehandle.Handle{Arity: optablehandle.NullaryArity, Name: name}
}
func (t *Table) ResolvePrefix(name string) optablehandle.Handle {
	return optablehandle.Handle{Arity: optablehandle.PrefixArity, Name: name}
}
func (t *Table) ResolvePostfix(name string) optablehandle.Handle {
	return optablehandle.Handle{Arity: optablehandle.PostfixArity, Name: name}
}
func (t *Table) ResolveBinary(name string) optablehandle.Handle {
	return optablehandle.Handle{Arity: optablehandle.BinaryArity, Name: name}
}

// Overloads returns the insertion-ordered overload list behind a handle.
func (t *Table) Overloads(h optablehandle.Handle) []Overload {
	e, ok := t.tableFor(h.Arity)[h.Name]
	if !ok {
		return nil
	}
	return e.overloads
}

// LastRegisteredNullary returns the handle for the nullary operator
// registered last (spec.md §4.4, §4.8), used by the driver to evaluate
// the program's final value. ok is false if no nullary operator was ever
// registered.
func (t *Table) LastRegisteredNullary() (optablehandle.Handle, bool) {
	if t.lastNullaryName == "" {
		return optablehandle.Handle{}, false
	}
	return t.ResolveNullary(t.lastNullaryName), true
}

// InsertCategory registers a new category name with an auto-incrementing
// value (spec.md §4.4). Fails if the name already collides with a
// registered nullary operator.
func (t *Table) InsertCategory(name string) *opdeferr.Error {
	if t.ExistsNullary(name) {
		return opdeferr.New(opdeferr.NameConflict, "category %q collides with a nullary operator of the same name", name)
	}
	if _, exists := t.categories[name]; exists {
		return nil // categories accumulate monotonically; re-declaration is a no-op, not an error
	}
	t.categories[name] = t.nextCatVal
	t.nextCatVal++
	return nil
}

func (t *Table) ExistsCategory(name string) bool {
	_, ok := t.categories[name]
	return ok
}

func (t *Table) CategoryValue(name string) (int, bool) {
	v, ok := t.categories[name]
	return v, ok
}

/*
File   : opdef/driver/driver.go
Package driver implements the top-level driver (spec.md §4.8): it threads
parsed declarations through category registration and operator-body
resolution/registration. `include` recurses into the named file's own
declarations before returning to the includer, so the active chain of
files is naturally the Go call stack rather than an explicit parser
stack. After the input is exhausted with no unrecoverable error, it
invokes the last registered nullary operator and returns its value.
*/
package driver

import (
	"github.com/google/uuid"

	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/declparser"
	"github.com/opdeflang/opdef/eval"
	"github.com/opdeflang/opdef/lexer"
	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/optable"
	"github.com/opdeflang/opdef/optablehandle"
	"github.com/opdeflang/opdef/pattern"
	"github.com/opdeflang/opdef/resolve"
	"github.com/opdeflang/opdef/source"
	"github.com/opdeflang/opdef/token"
	"github.com/opdeflang/opdef/value"
)

// Driver holds the single operator table a program builds up as its
// declarations are processed, plus the bookkeeping needed to support
// nested include.
type Driver struct {
	Table    *optable.Table
	BaseDir  string
	includes *source.Stack
	errs     []*opdeferr.Error

	// OnCategory and OnOperatorDef, if set, are called as each declaration
	// is registered -- the -s/--semantic CLI dump uses these to print
	// resolved bodies and category values without duplicating the
	// registration logic below.
	OnCategory    func(name string, value int)
	OnOperatorDef func(stmt *declparser.OperatorDef, resolved *body.Body)
}

// New builds a driver with a fresh operator table. baseDir is where
// include statements resolve relative filenames against.
func New(baseDir string) *Driver {
	return &Driver{
		Table:    optable.New(),
		BaseDir:  baseDir,
		includes: source.NewStack(),
	}
}

// Session wraps a Driver with a per-run identifier. Every session gets a
// freshly generated ID; the ID is not written into diagnostics or results.
type Session struct {
	ID uuid.UUID
	*Driver
}

// NewSession builds a Session with a freshly generated ID and driver.
func NewSession(baseDir string) *Session {
	return &Session{ID: uuid.New(), Driver: New(baseDir)}
}

// Load processes rootSource (named rootName, for cyclic-include
// bookkeeping and diagnostics) to completion without evaluating anything,
// registering every reachable declaration into d.Table. It returns every
// declaration-level error encountered, including from nested includes;
// Load still attempts every remaining declaration after one fails,
// mirroring the panic-mode recovery each statement parser already
// performs internally. The -s CLI dump uses this directly so that a
// program with no nullary operator still dumps cleanly.
func (d *Driver) Load(rootName, rootSource string) []*opdeferr.Error {
	d.errs = nil
	d.runFile(rootName, rootSource)
	return d.errs
}

// Run processes rootSource to completion (see Load), then evaluates the
// last registered nullary operator.
func (d *Driver) Run(rootName, rootSource string) (value.Value, []*opdeferr.Error) {
	if errs := d.Load(rootName, rootSource); len(errs) > 0 {
		return value.Value{}, errs
	}

	h, ok := d.Table.LastRegisteredNullary()
	if !ok {
		return value.Value{}, []*opdeferr.Error{opdeferr.New(opdeferr.InvariantViolation, "program declares no nullary operator to evaluate")}
	}
	result, err := eval.Invoke(h, nil, d.Table)
	if err != nil {
		return value.Value{}, []*opdeferr.Error{err}
	}
	return result, nil
}

// runFile drains every declaration in one file's source, recursing into
// nested includes before returning to the file that named them -- "the
// top of stack is drained before falling back" (spec.md §4.8), modeled
// here by the Go call stack rather than an explicit parser stack. Errors
// accumulate into d.errs rather than aborting the file.
func (d *Driver) runFile(name, src string) {
	if err := d.includes.Push(name); err != nil {
		d.errs = append(d.errs, err)
		return
	}
	defer d.includes.Pop()

	ts := lexer.NewTokenStream(lexer.New(src))
	p := declparser.New(ts)
	for p.HasNext() {
		stmt, err := p.Next()
		if err != nil {
			d.errs = append(d.errs, err)
			continue
		}
		if procErr := d.process(stmt); procErr != nil {
			d.errs = append(d.errs, procErr)
		}
	}
}

// ProcessStatement registers a single already-parsed statement against
// the driver's operator table. The REPL uses this to absorb one
// declaration per line; any nested include it triggers is drained fully
// before this call returns, and every error encountered (including from
// within that include) is reported together.
func (d *Driver) ProcessStatement(stmt *declparser.Statement) []*opdeferr.Error {
	d.errs = nil
	if err := d.process(stmt); err != nil {
		d.errs = append(d.errs, err)
	}
	errs := d.errs
	d.errs = nil
	return errs
}

func (d *Driver) process(stmt *declparser.Statement) *opdeferr.Error {
	switch stmt.Kind {
	case declparser.IncludeStmt:
		name := stmt.Filename.Lexeme
		tok := stmt.Filename
		if d.includes.Contains(name) {
			return opdeferr.NewAt(opdeferr.CyclicInclude, tok.Line, tok.Column, "include cycle detected: %q is already being processed", name)
		}
		src, ioErr := source.Read(d.BaseDir, name)
		if ioErr != nil {
			return opdeferr.NewAt(opdeferr.IncludeFailed, tok.Line, tok.Column, "could not read include %q: %v", name, ioErr)
		}
		d.runFile(name, src)
		return nil

	case declparser.CategoryStmt:
		if err := d.Table.InsertCategory(stmt.Name.Lexeme); err != nil {
			return err
		}
		if d.OnCategory != nil {
			if v, ok := d.Table.CategoryValue(stmt.Name.Lexeme); ok {
				d.OnCategory(stmt.Name.Lexeme, v)
			}
		}
		return nil

	case declparser.OperatorDefStmt:
		return d.processOperatorDef(stmt.Def)
	}
	return opdeferr.New(opdeferr.InvariantViolation, "unrecognized statement kind")
}

func (d *Driver) processOperatorDef(def *declparser.OperatorDef) *opdeferr.Error {
	locals := localNamesOf(def.Patterns)
	resolved, err := resolve.Resolve(def.Body, locals, d.Table)
	if err != nil {
		return err
	}

	arity, bounds, shapeErr := boundsFor(def.Format, def.Priority)
	if shapeErr != nil {
		return shapeErr
	}

	overload := optable.Overload{
		Name:     def.Name.Lexeme,
		Patterns: def.Patterns,
		Body:     *resolved,
	}
	if err := d.Table.RegisterOverload(arity, def.Name.Lexeme, def.Priority, bounds, overload); err != nil {
		return err
	}
	if d.OnOperatorDef != nil {
		d.OnOperatorDef(def, resolved)
	}
	return nil
}

func localNamesOf(patterns []*pattern.Pattern) map[string]struct{} {
	names := make(map[string]struct{})
	for _, p := range patterns {
		for n := range pattern.LocalNames(p) {
			names[n] = struct{}{}
		}
	}
	return names
}

// boundsFor derives the operand-priority bounds from a format tag's
// shape and `x`/`y` positions per the §3 table: `x` -> p-1, `y` -> p.
func boundsFor(format token.ID, priority int) (optablehandle.Arity, optable.Bounds, *opdeferr.Error) {
	shape, leftY, rightY, ok := token.Describe(format)
	if !ok {
		return 0, optable.Bounds{}, opdeferr.New(opdeferr.UnexpectedToken, "unrecognized operator format %q", format)
	}
	switch shape {
	case token.Nullary:
		return optablehandle.NullaryArity, optable.Bounds{}, nil
	case token.Prefix:
		maxRight := priority - 1
		if rightY {
			maxRight = priority
		}
		return optablehandle.PrefixArity, optable.Bounds{MaxRight: maxRight}, nil
	case token.Postfix:
		maxLeft := priority - 1
		if leftY {
			maxLeft = priority
		}
		return optablehandle.PostfixArity, optable.Bounds{MaxLeft: maxLeft}, nil
	case token.Binary:
		maxLeft := priority - 1
		if leftY {
			maxLeft = priority
		}
		maxRight := priority - 1
		if rightY {
			maxRight = priority
		}
		return optablehandle.BinaryArity, optable.Bounds{MaxLeft: maxLeft, MaxRight: maxRight}, nil
	}
	return 0, optable.Bounds{}, opdeferr.New(opdeferr.UnexpectedToken, "unrecognized operator shape for format %q", format)
}

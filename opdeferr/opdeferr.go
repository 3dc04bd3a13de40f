/*
File   : opdef/opdeferr/opdeferr.go
Package opdeferr centralizes the diagnostic taxonomy shared by every stage
of the pipeline (lexer, declparser, optable, resolve, eval).

Each stage raises a *Error tagged with one of the Kind constants below
instead of a bare error, so the driver and CLI can format diagnostics
uniformly: "Kind: message line:column" when a source position is known,
or "Kind: message" otherwise (see the CLI and REPL packages).
*/
package opdeferr

import "fmt"

// Kind is a closed enumeration of the diagnostic categories a declaration
// can fail with. Every one should map to a row in spec.md's error taxonomy.
type Kind string

const (
	// Lexical
	UnrecognizedCharacter Kind = "UnrecognizedCharacter"
	UnterminatedString    Kind = "UnterminatedString"

	// Parse
	ExpectedIdentifier Kind = "ExpectedIdentifier"
	ExpectedNumber     Kind = "ExpectedNumber"
	UnmatchedBrace     Kind = "UnmatchedBrace"
	EmptyBody          Kind = "EmptyBody"
	UnexpectedToken    Kind = "UnexpectedToken"

	// Semantic, definition-time
	NameConflict                   Kind = "NameConflict"
	PriorityConflict               Kind = "PriorityConflict"
	FormatConflict                 Kind = "FormatConflict"
	NumericParamCannotBeRestricted Kind = "NumericParamCannotBeRestricted"

	// Semantic, resolution-time
	UnresolvedName       Kind = "UnresolvedName"
	UnparsableExpression Kind = "UnparsableExpression"
	AmbiguousExpression  Kind = "AmbiguousExpression"
	NonAtomicToken       Kind = "NonAtomicToken"
	Unsupported          Kind = "Unsupported"

	// Runtime
	NoMatchingOverload   Kind = "NoMatchingOverload"
	PatternShapeMismatch Kind = "PatternShapeMismatch"
	ExpectedNumeric      Kind = "ExpectedNumeric"
	NumericValueMismatch Kind = "NumericValueMismatch"
	RebindingMismatch    Kind = "RebindingMismatch"
	UnboundVariable      Kind = "UnboundVariable"

	// Internal
	InvariantViolation Kind = "InvariantViolation"

	// Extensions supplemented from original_source/ (see SPEC_FULL.md §4)
	CyclicInclude Kind = "CyclicInclude"
	IncludeFailed Kind = "IncludeFailed"
)

// Error is a positioned or unpositioned diagnostic. HasPosition is false
// for semantic errors raised after the token stream no longer applies
// (e.g. a PriorityConflict discovered at registration time).
type Error struct {
	Kind        Kind
	Message     string
	Line        int
	Column      int
	HasPosition bool
}

// New builds a Kind-only, position-less semantic error.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds a positioned parse/lexical error.
func NewAt(kind Kind, line, column int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line, Column: column, HasPosition: true}
}

// Error implements the error interface, formatting per spec.md §6.3.
func (e *Error) Error() string {
	if e.HasPosition {
		return fmt.Sprintf("%s: %s %d:%d", e.Kind, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

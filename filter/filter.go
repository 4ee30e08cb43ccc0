// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package filter implements the collection filter-expression language.
//
// A filter expression is the value of the "filter" query parameter on
// collection list requests.  It combines field-to-literal comparisons
// with boolean operators and parenthesized grouping:
//
//	continent eq "Europe"
//	price le 200 and price gt 3.5
//	(priority eq 1 or city eq "Redmond") and price gt 100
//	not owner.id eq 1
//
// The comparison operators are eq, ne, gt, ge, lt, and le; "or" has
// the lowest precedence, "and" binds tighter, and "not" binds tightest.
// The left side of a comparison is always a field path, a dot-separated
// identifier sequence resolved against nested maps in the candidate
// record; the right side is always a string, number, boolean, or null
// literal.
//
// Compile turns an expression into an immutable Predicate.  A
// Predicate holds no mutable state, so one compiled filter may be
// evaluated concurrently against many candidate records from multiple
// goroutines with no synchronization.  Parsing and evaluation are
// CPU-bound and synchronous; callers needing to bound the cost of
// hostile input should limit expression length before compiling (the
// parser itself bounds parenthesis nesting).
package filter

import "strings"

// DefaultMaxDepth is the parenthesis nesting limit used by Compile.
const DefaultMaxDepth = 64

// Predicate is a compiled filter expression: a boolean test applied
// per candidate record.  Predicates are immutable and safe for
// concurrent use.
type Predicate struct {
	root Node
	src  string
}

// Compile parses a filter expression into a Predicate.  It returns a
// SyntaxError if the expression is malformed; the expression is
// rejected wholesale and no partial predicate is produced.
func Compile(expr string) (*Predicate, error) {
	return CompileWithLimit(expr, DefaultMaxDepth)
}

// CompileWithLimit is Compile with an explicit parenthesis nesting
// limit, for callers that want a tighter or looser bound than
// DefaultMaxDepth.
func CompileWithLimit(expr string, maxDepth int) (*Predicate, error) {
	p, err := newParser(newLexer(expr), maxDepth)
	if err != nil {
		return nil, err
	}
	root, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return &Predicate{root: root, src: expr}, nil
}

// Match evaluates the predicate against one candidate record,
// returning the boolean inclusion decision.  It returns an
// EvaluationError if an ordering operator is applied to values with
// no defined order; referencing an absent field is not an error.
func (p *Predicate) Match(record map[string]interface{}) (bool, error) {
	return evaluate(p.root, record)
}

// Root returns the root node of the parsed expression tree.
func (p *Predicate) Root() Node {
	return p.root
}

// Source returns the expression text the predicate was compiled from.
func (p *Predicate) Source() string {
	return p.src
}

// String renders the compiled expression back to filter syntax.  The
// result is fully parenthesized and logically equivalent to the
// source, but not necessarily textually identical to it.
func (p *Predicate) String() string {
	return p.root.String()
}

// Lookup resolves a dotted field path, such as "owner.id", against a
// record, walking nested maps segment by segment.  The second return
// is false if any segment is absent or any intermediate value is not
// a nested map.  The collection sorting helpers share this resolution
// with the evaluator.
func Lookup(record map[string]interface{}, path string) (interface{}, bool) {
	return lookup(record, strings.Split(path, "."))
}

// ValidFieldPath reports whether a string is a well-formed dotted
// field path: one or more dot-separated segments, each starting with a
// letter or underscore and continuing with letters, digits, or
// underscores.  This is the same rule the expression grammar applies
// to the left side of a comparison; callers accepting field paths from
// other inputs, such as sort parameters, use it to stay consistent.
func ValidFieldPath(path string) bool {
	if path == "" {
		return false
	}
	for _, segment := range strings.Split(path, ".") {
		if !validSegment(segment) {
			return false
		}
	}
	return true
}

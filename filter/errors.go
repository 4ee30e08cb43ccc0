// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package filter

import "fmt"

// SyntaxError is returned from Compile if the filter expression is
// malformed: an invalid character, an unterminated string, an
// unexpected token, an unmatched parenthesis, or a comparison whose
// operands are not a field path and a literal.  The whole expression
// is rejected; there is no partial parse.
type SyntaxError struct {
	// Offset is the byte offset of the offending token within the
	// expression.
	Offset int

	// Token is the text of the offending token, if there is one.
	Token string

	// Message describes what went wrong.
	Message string
}

func (e SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("filter syntax error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("filter syntax error at offset %d near %q: %s", e.Offset, e.Token, e.Message)
}

// EvaluationError is returned from Predicate.Match if an ordering
// comparison is applied to values that have no defined order, such as
// booleans, null, or a number against a string.  Absent fields are not
// an error; they simply fail ordering comparisons.
type EvaluationError struct {
	// Op is the comparison operator that failed.
	Op CompareOp

	// Field is the dotted path of the field being compared.
	Field string

	// Message describes the type mismatch.
	Message string
}

func (e EvaluationError) Error() string {
	return fmt.Sprintf("cannot evaluate %q %s: %s", e.Field, e.Op, e.Message)
}

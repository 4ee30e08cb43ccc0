// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, expr string) *Predicate {
	p, err := Compile(expr)
	require.NoError(t, err, "compiling %q", expr)
	return p
}

func TestParseComparison(t *testing.T) {
	p := mustCompile(t, `continent eq "Europe"`)
	cmp, ok := p.Root().(*Comparison)
	require.True(t, ok)
	assert.Equal(t, OpEq, cmp.Op)
	assert.Equal(t, []string{"continent"}, cmp.Left.Path)
	assert.Equal(t, "Europe", cmp.Right.Value)
}

func TestParseDottedPath(t *testing.T) {
	p := mustCompile(t, "owner.id eq 1")
	cmp, ok := p.Root().(*Comparison)
	require.True(t, ok)
	assert.Equal(t, []string{"owner", "id"}, cmp.Left.Path)
	assert.Equal(t, float64(1), cmp.Right.Value)
}

// "and" binds tighter than "or": A and B or C parses as (A and B) or C.
func TestParsePrecedence(t *testing.T) {
	p := mustCompile(t, `a eq 1 and b eq 2 or c eq 3`)
	root, ok := p.Root().(*LogicalBinary)
	require.True(t, ok)
	assert.Equal(t, OpOr, root.Op)
	left, ok := root.Left.(*LogicalBinary)
	require.True(t, ok)
	assert.Equal(t, OpAnd, left.Op)
	_, ok = root.Right.(*Comparison)
	assert.True(t, ok)
}

// Explicit parentheses override precedence.
func TestParseGrouping(t *testing.T) {
	p := mustCompile(t, `a eq 1 and (b eq 2 or c eq 3)`)
	root, ok := p.Root().(*LogicalBinary)
	require.True(t, ok)
	assert.Equal(t, OpAnd, root.Op)
	right, ok := root.Right.(*LogicalBinary)
	require.True(t, ok)
	assert.Equal(t, OpOr, right.Op)
}

// Parenthesization that matches precedence produces the same shape.
func TestParseRedundantParens(t *testing.T) {
	flat := mustCompile(t, `a eq 1 and b eq 2 or c eq 3`)
	grouped := mustCompile(t, `(a eq 1 and b eq 2) or c eq 3`)
	assert.Equal(t, flat.String(), grouped.String())
}

func TestParseLeftAssociative(t *testing.T) {
	p := mustCompile(t, `a eq 1 or b eq 2 or c eq 3`)
	root, ok := p.Root().(*LogicalBinary)
	require.True(t, ok)
	assert.Equal(t, OpOr, root.Op)
	left, ok := root.Left.(*LogicalBinary)
	require.True(t, ok)
	assert.Equal(t, OpOr, left.Op)
}

func TestParseNot(t *testing.T) {
	p := mustCompile(t, `not a eq 1`)
	root, ok := p.Root().(*LogicalNot)
	require.True(t, ok)
	_, ok = root.Operand.(*Comparison)
	assert.True(t, ok)
}

func TestParseNotBindsTightest(t *testing.T) {
	p := mustCompile(t, `not a eq 1 and b eq 2`)
	root, ok := p.Root().(*LogicalBinary)
	require.True(t, ok)
	assert.Equal(t, OpAnd, root.Op)
	_, ok = root.Left.(*LogicalNot)
	assert.True(t, ok)
}

func TestParseDoubleNot(t *testing.T) {
	p := mustCompile(t, `not not a eq 1`)
	outer, ok := p.Root().(*LogicalNot)
	require.True(t, ok)
	_, ok = outer.Operand.(*LogicalNot)
	assert.True(t, ok)
}

// Reparsing a predicate's own rendering produces the same structure.
func TestParseRoundTrip(t *testing.T) {
	exprs := []string{
		`continent eq "Europe"`,
		`price le 200 and price gt 3.5`,
		`(priority eq 1 or city eq "Redmond") and price gt 100`,
		`not (a eq true or b ne null)`,
		`owner.id ge -3.5`,
	}
	for _, expr := range exprs {
		first := mustCompile(t, expr)
		second := mustCompile(t, first.String())
		assert.Equal(t, first.String(), second.String(), "input %q", expr)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"missing right operand", "price le"},
		{"missing operator", "price 200"},
		{"literal on left", `200 le price`},
		{"field to field", "price le cost"},
		{"unmatched open", "(a eq 1"},
		{"unmatched close", "a eq 1)"},
		{"dangling and", "a eq 1 and"},
		{"double operator", "a eq eq 1"},
		{"bad path", "a..b eq 1"},
		{"trailing dot", "a. eq 1"},
		{"numeric segment", "a.1 eq 1"},
		{"unterminated string", `a eq "b`},
		{"invalid character", "a eq 1 %"},
		{"bare not", "not"},
	}
	for _, test := range tests {
		p, err := Compile(test.expr)
		assert.Nil(t, p, "%s: %q", test.name, test.expr)
		require.Error(t, err, "%s: %q", test.name, test.expr)
		_, ok := err.(SyntaxError)
		assert.True(t, ok, "%s: error %v is not a SyntaxError", test.name, err)
	}
}

// A syntax error identifies where the problem is.
func TestParseErrorPosition(t *testing.T) {
	_, err := Compile("price le cost")
	require.Error(t, err)
	synErr, ok := err.(SyntaxError)
	require.True(t, ok)
	assert.Equal(t, 9, synErr.Offset)
	assert.Equal(t, "cost", synErr.Token)
}

// ValidFieldPath accepts exactly what the grammar accepts on the left
// side of a comparison.
func TestValidFieldPath(t *testing.T) {
	for _, path := range []string{"a", "owner.id", "_x", "a1.b2.c3"} {
		assert.True(t, ValidFieldPath(path), "path %q", path)
		_, err := Compile(path + " eq 1")
		assert.NoError(t, err, "path %q", path)
	}
	for _, path := range []string{"", ".", "a.", ".a", "a..b", "1up", "a-b", "a b"} {
		assert.False(t, ValidFieldPath(path), "path %q", path)
	}
}

func TestParseDepthLimit(t *testing.T) {
	expr := "a eq 1"
	for i := 0; i < 10; i++ {
		expr = "(" + expr + ")"
	}
	_, err := CompileWithLimit(expr, 5)
	require.Error(t, err)
	_, ok := err.(SyntaxError)
	assert.True(t, ok)

	_, err = CompileWithLimit(expr, 10)
	assert.NoError(t, err)
}

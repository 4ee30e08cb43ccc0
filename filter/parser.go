// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package filter

import (
	"strconv"
	"strings"
)

// CompareOp identifies one of the six comparison operators.
type CompareOp int

const (
	// OpEq tests for equality.
	OpEq CompareOp = iota
	// OpNe tests for inequality.
	OpNe
	// OpGt tests strictly-greater ordering.
	OpGt
	// OpGe tests greater-or-equal ordering.
	OpGe
	// OpLt tests strictly-less ordering.
	OpLt
	// OpLe tests less-or-equal ordering.
	OpLe
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	}
	return "???"
}

// LogicalOp identifies one of the binary logical operators.
type LogicalOp int

const (
	// OpAnd is the short-circuiting conjunction.
	OpAnd LogicalOp = iota
	// OpOr is the short-circuiting disjunction.
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "and"
	}
	return "or"
}

// Node is one node of a parsed filter expression.  A tree of nodes is
// immutable after parsing and never mutated by evaluation, so a single
// tree can be shared across any number of concurrent evaluations.
type Node interface {
	// String renders this subtree back to expression syntax.  The
	// result is fully parenthesized, so it is logically equivalent
	// to the original input but not necessarily textually equal.
	String() string
}

// Literal is a constant value: a string, a number, a boolean, or null.
type Literal struct {
	Value interface{}
}

func (n *Literal) String() string {
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case string:
		return `"` + v + `"`
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "???"
}

// FieldRef names a location within a candidate record as a sequence of
// path segments; "owner.id" becomes ["owner", "id"].
type FieldRef struct {
	Path []string
}

func (n *FieldRef) String() string {
	return strings.Join(n.Path, ".")
}

// Comparison applies a comparison operator to a field reference and a
// literal.  Comparisons are always leaves of the tree; the grammar
// does not support field-to-field comparison.
type Comparison struct {
	Op    CompareOp
	Left  *FieldRef
	Right *Literal
}

func (n *Comparison) String() string {
	return n.Left.String() + " " + n.Op.String() + " " + n.Right.String()
}

// LogicalBinary combines two subexpressions with "and" or "or".
type LogicalBinary struct {
	Op    LogicalOp
	Left  Node
	Right Node
}

func (n *LogicalBinary) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

// LogicalNot inverts the result of its operand.
type LogicalNot struct {
	Operand Node
}

func (n *LogicalNot) String() string {
	return "(not " + n.Operand.String() + ")"
}

// parser is a recursive-descent parser over the lexer's token stream.
// Grammar, lowest precedence first:
//
//	expr       := or_expr
//	or_expr    := and_expr ( "or" and_expr )*
//	and_expr   := not_expr ( "and" not_expr )*
//	not_expr   := "not" not_expr | primary
//	primary    := "(" expr ")" | comparison
//	comparison := field_path comp_op literal
//
// Both binary operators are left-associative.  The parser fails fast
// at the first structural error; there is no error recovery and no
// partial result.
type parser struct {
	lexer    *lexer
	cur      Token
	depth    int
	maxDepth int
}

func newParser(l *lexer, maxDepth int) (*parser, error) {
	p := &parser{lexer: l, maxDepth: maxDepth}
	return p, p.advance()
}

func (p *parser) advance() (err error) {
	p.cur, err = p.lexer.Next()
	return
}

// Parse consumes the entire token stream and returns the root node.
func (p *parser) Parse() (Node, error) {
	if p.cur.Type == TokenEOF {
		return nil, SyntaxError{Message: "empty filter expression"}
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEOF {
		return nil, p.unexpected("expected end of expression")
	}
	return node, nil
}

func (p *parser) parseExpr() (Node, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenOperator && p.cur.Literal == "or" {
		if err = p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalBinary{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenOperator && p.cur.Literal == "and" {
		if err = p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &LogicalBinary{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.cur.Type == TokenOperator && p.cur.Literal == "not" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &LogicalNot{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.cur.Type {
	case TokenLParen:
		return p.parseGroup()
	case TokenIdentifier:
		return p.parseComparison()
	case TokenString, TokenNumber, TokenBoolean, TokenNull:
		return nil, p.unexpected("comparison must begin with a field path")
	case TokenEOF:
		return nil, p.unexpected("unexpected end of expression")
	}
	return nil, p.unexpected("expected a field path or a parenthesized group")
}

// parseGroup parses a parenthesized subexpression.  Groups reset the
// precedence context back to expr.  Nesting is bounded by maxDepth to
// keep recursion in check on hostile input.
func (p *parser) parseGroup() (Node, error) {
	p.depth++
	if p.depth > p.maxDepth {
		return nil, SyntaxError{
			Offset:  p.cur.Pos,
			Token:   p.cur.Literal,
			Message: "parentheses nested too deeply",
		}
	}
	defer func() { p.depth-- }()

	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenRParen {
		return nil, p.unexpected("unmatched parenthesis")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) parseComparison() (Node, error) {
	ref, err := p.parseFieldRef()
	if err != nil {
		return nil, err
	}
	var op CompareOp
	if p.cur.Type != TokenOperator {
		return nil, p.unexpected("expected a comparison operator")
	}
	switch p.cur.Literal {
	case "eq":
		op = OpEq
	case "ne":
		op = OpNe
	case "gt":
		op = OpGt
	case "ge":
		op = OpGe
	case "lt":
		op = OpLt
	case "le":
		op = OpLe
	default:
		return nil, p.unexpected("expected a comparison operator")
	}
	if err = p.advance(); err != nil {
		return nil, err
	}
	switch p.cur.Type {
	case TokenString, TokenNumber, TokenBoolean, TokenNull:
		lit := &Literal{Value: p.cur.Value}
		if err = p.advance(); err != nil {
			return nil, err
		}
		return &Comparison{Op: op, Left: ref, Right: lit}, nil
	case TokenIdentifier:
		// Explicitly not supported: comparisons are always
		// field-to-literal.
		return nil, p.unexpected("comparison right operand must be a literal, not a field")
	}
	return nil, p.unexpected("expected a literal after comparison operator")
}

// parseFieldRef consumes the current identifier token and splits it
// into path segments.  Every segment must be a non-empty identifier
// of the form [A-Za-z_][A-Za-z0-9_]*.
func (p *parser) parseFieldRef() (*FieldRef, error) {
	tok := p.cur
	segments := strings.Split(tok.Literal, ".")
	for _, seg := range segments {
		if !validSegment(seg) {
			return nil, SyntaxError{
				Offset:  tok.Pos,
				Token:   tok.Literal,
				Message: "invalid field path",
			}
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &FieldRef{Path: segments}, nil
}

func validSegment(seg string) bool {
	if len(seg) == 0 || !isIdentStart(seg[0]) {
		return false
	}
	for i := 1; i < len(seg); i++ {
		if !isIdentStart(seg[i]) && !isDigit(seg[i]) {
			return false
		}
	}
	return true
}

func (p *parser) unexpected(message string) error {
	return SyntaxError{
		Offset:  p.cur.Pos,
		Token:   p.cur.Literal,
		Message: message,
	}
}

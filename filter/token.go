// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package filter

import (
	"strconv"
)

// TokenType classifies a single lexical unit of a filter expression.
type TokenType int

const (
	// TokenIdentifier is a field path, possibly dotted, such as
	// "price" or "owner.id".
	TokenIdentifier TokenType = iota

	// TokenString is a double-quoted string literal.
	TokenString

	// TokenNumber is a numeric literal, integer or decimal, with
	// an optional leading minus sign.
	TokenNumber

	// TokenBoolean is one of the literals "true" or "false".
	TokenBoolean

	// TokenNull is the literal "null".
	TokenNull

	// TokenOperator is one of the comparison or logical keywords:
	// eq, ne, gt, ge, lt, le, and, or, not.
	TokenOperator

	// TokenLParen and TokenRParen are the grouping parentheses.
	TokenLParen
	TokenRParen

	// TokenEOF marks the end of the input.  The lexer returns it
	// indefinitely once the input is exhausted.
	TokenEOF
)

// Token is one classified lexical unit.  Tokens are immutable and are
// produced in left-to-right order from the input string.
type Token struct {
	// Type classifies this token.
	Type TokenType

	// Literal holds the raw text of the token, without the
	// surrounding quotes for string literals.
	Literal string

	// Value holds the decoded literal value for TokenString,
	// TokenNumber, and TokenBoolean tokens, and nil for TokenNull.
	Value interface{}

	// Pos is the byte offset of the start of this token within
	// the input expression.
	Pos int
}

// lexer produces a lazy, finite, non-restartable token sequence in a
// single forward pass over the input.  The parser consumes it with
// one-token lookahead.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// Next returns the next token, or a SyntaxError if the input contains
// an invalid character or an unterminated string literal.  After the
// input is exhausted it returns TokenEOF forever.
func (l *lexer) Next() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]
	switch {
	case ch == '(':
		l.pos++
		return Token{Type: TokenLParen, Literal: "(", Pos: start}, nil
	case ch == ')':
		l.pos++
		return Token{Type: TokenRParen, Literal: ")", Pos: start}, nil
	case ch == '"':
		return l.readString()
	case ch == '-' || isDigit(ch):
		return l.readNumber()
	case isIdentStart(ch):
		return l.readWord(), nil
	}
	return Token{}, SyntaxError{
		Offset:  start,
		Token:   string(ch),
		Message: "invalid character",
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// readString scans a double-quoted string literal.  There is no escape
// processing; the literal runs to the next double quote.
func (l *lexer) readString() (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		if l.input[l.pos] == '"' {
			text := l.input[start+1 : l.pos]
			l.pos++
			return Token{
				Type:    TokenString,
				Literal: text,
				Value:   text,
				Pos:     start,
			}, nil
		}
		l.pos++
	}
	return Token{}, SyntaxError{
		Offset:  start,
		Token:   l.input[start:],
		Message: "unterminated string literal",
	}
}

// readNumber scans a numeric literal using a maximal-munch rule: an
// optional minus sign, digits, then optionally a decimal point and
// more digits.
func (l *lexer) readNumber() (Token, error) {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
	}
	digits := 0
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
		digits++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
			digits++
		}
	}
	text := l.input[start:l.pos]
	if digits == 0 {
		return Token{}, SyntaxError{
			Offset:  start,
			Token:   text,
			Message: "invalid numeric literal",
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, SyntaxError{
			Offset:  start,
			Token:   text,
			Message: "invalid numeric literal",
		}
	}
	return Token{Type: TokenNumber, Literal: text, Value: value, Pos: start}, nil
}

// readWord scans a maximal run of identifier characters (plus embedded
// dots for field paths) and classifies it as a keyword, a boolean or
// null literal, or a field-path identifier.  Keywords are reserved;
// they only match as whole words and cannot be used as bare field
// names.
func (l *lexer) readWord() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	word := l.input[start:l.pos]
	switch word {
	case "true":
		return Token{Type: TokenBoolean, Literal: word, Value: true, Pos: start}
	case "false":
		return Token{Type: TokenBoolean, Literal: word, Value: false, Pos: start}
	case "null":
		return Token{Type: TokenNull, Literal: word, Pos: start}
	case "eq", "ne", "gt", "ge", "lt", "le", "and", "or", "not":
		return Token{Type: TokenOperator, Literal: word, Pos: start}
	}
	return Token{Type: TokenIdentifier, Literal: word, Pos: start}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '.'
}

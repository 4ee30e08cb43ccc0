// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scan collects every token in the input, stopping after EOF.
func scan(t *testing.T, input string) []Token {
	l := newLexer(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func TestScanComparison(t *testing.T) {
	tokens := scan(t, `continent eq "Europe"`)
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenIdentifier, tokens[0].Type)
	assert.Equal(t, "continent", tokens[0].Literal)
	assert.Equal(t, TokenOperator, tokens[1].Type)
	assert.Equal(t, "eq", tokens[1].Literal)
	assert.Equal(t, TokenString, tokens[2].Type)
	assert.Equal(t, "Europe", tokens[2].Value)
	assert.Equal(t, TokenEOF, tokens[3].Type)
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"200", 200},
		{"3.5", 3.5},
		{"-17", -17},
		{"-0.25", -0.25},
		{"0", 0},
	}
	for _, test := range tests {
		tokens := scan(t, test.input)
		require.Len(t, tokens, 2, "input %q", test.input)
		assert.Equal(t, TokenNumber, tokens[0].Type)
		assert.Equal(t, test.value, tokens[0].Value)
	}
}

func TestScanKeywords(t *testing.T) {
	tokens := scan(t, "and or not eq ne gt ge lt le")
	require.Len(t, tokens, 10)
	for _, tok := range tokens[:9] {
		assert.Equal(t, TokenOperator, tok.Type, "token %q", tok.Literal)
	}
}

func TestScanLiteralKeywords(t *testing.T) {
	tokens := scan(t, "true false null")
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenBoolean, tokens[0].Type)
	assert.Equal(t, true, tokens[0].Value)
	assert.Equal(t, TokenBoolean, tokens[1].Type)
	assert.Equal(t, false, tokens[1].Value)
	assert.Equal(t, TokenNull, tokens[2].Type)
	assert.Nil(t, tokens[2].Value)
}

// Keywords are case-sensitive; capitalized variants are plain
// identifiers.
func TestScanCaseSensitive(t *testing.T) {
	tokens := scan(t, "True AND Null")
	require.Len(t, tokens, 4)
	for _, tok := range tokens[:3] {
		assert.Equal(t, TokenIdentifier, tok.Type, "token %q", tok.Literal)
	}
}

func TestScanDottedPath(t *testing.T) {
	tokens := scan(t, "owner.id eq 1")
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenIdentifier, tokens[0].Type)
	assert.Equal(t, "owner.id", tokens[0].Literal)
}

func TestScanParens(t *testing.T) {
	tokens := scan(t, "(a eq 1)")
	require.Len(t, tokens, 6)
	assert.Equal(t, TokenLParen, tokens[0].Type)
	assert.Equal(t, TokenRParen, tokens[4].Type)
}

func TestScanPositions(t *testing.T) {
	tokens := scan(t, `price le 200`)
	require.Len(t, tokens, 4)
	assert.Equal(t, 0, tokens[0].Pos)
	assert.Equal(t, 6, tokens[1].Pos)
	assert.Equal(t, 9, tokens[2].Pos)
}

func TestScanUnterminatedString(t *testing.T) {
	l := newLexer(`city eq "Redmond`)
	var err error
	var tok Token
	for err == nil && tok.Type != TokenEOF {
		tok, err = l.Next()
	}
	require.Error(t, err)
	synErr, ok := err.(SyntaxError)
	require.True(t, ok)
	assert.Equal(t, 8, synErr.Offset)
}

func TestScanInvalidCharacter(t *testing.T) {
	l := newLexer("price = 1")
	_, err := l.Next() // "price"
	require.NoError(t, err)
	_, err = l.Next()
	require.Error(t, err)
	synErr, ok := err.(SyntaxError)
	require.True(t, ok)
	assert.Equal(t, "=", synErr.Token)
}

func TestScanBareMinus(t *testing.T) {
	l := newLexer("-")
	_, err := l.Next()
	assert.Error(t, err)
}

// The EOF token repeats once the input is exhausted.
func TestScanEOFIsSticky(t *testing.T) {
	l := newLexer("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, TokenEOF, tok.Type)
	}
}

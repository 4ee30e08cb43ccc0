// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(t *testing.T, expr string, record map[string]interface{}) bool {
	result, err := mustCompile(t, expr).Match(record)
	require.NoError(t, err, "matching %q", expr)
	return result
}

func TestMatchStringEquality(t *testing.T) {
	expr := `continent eq "Europe"`
	assert.True(t, match(t, expr, map[string]interface{}{"continent": "Europe"}))
	assert.False(t, match(t, expr, map[string]interface{}{"continent": "Asia"}))
}

func TestMatchNumericRange(t *testing.T) {
	expr := `price le 200 and price gt 3.5`
	assert.True(t, match(t, expr, map[string]interface{}{"price": 50}))
	assert.False(t, match(t, expr, map[string]interface{}{"price": 1}))
	assert.False(t, match(t, expr, map[string]interface{}{"price": 300}))
}

func TestMatchGrouped(t *testing.T) {
	expr := `(priority eq 1 or city eq "Redmond") and price gt 100`
	assert.False(t, match(t, expr, map[string]interface{}{
		"priority": 1, "city": "X", "price": 50,
	}))
	assert.True(t, match(t, expr, map[string]interface{}{
		"priority": 2, "city": "Redmond", "price": 150,
	}))
}

func TestMatchNestedPath(t *testing.T) {
	expr := `owner.id eq 1`
	assert.True(t, match(t, expr, map[string]interface{}{
		"owner": map[string]interface{}{"id": 1},
	}))
	// A null intermediate resolves to absent, not an error.
	assert.False(t, match(t, expr, map[string]interface{}{"owner": nil}))
	assert.False(t, match(t, expr, map[string]interface{}{}))
	assert.False(t, match(t, expr, map[string]interface{}{"owner": "me"}))
}

func TestMatchAbsentField(t *testing.T) {
	empty := map[string]interface{}{}
	// Absent is unequal to everything...
	assert.False(t, match(t, `color eq "red"`, empty))
	assert.True(t, match(t, `color ne "red"`, empty))
	assert.False(t, match(t, `color eq null`, empty))
	// ...and false for ordering comparisons.
	assert.False(t, match(t, `color lt "red"`, empty))
	assert.False(t, match(t, `size gt 1`, empty))
}

func TestMatchNull(t *testing.T) {
	record := map[string]interface{}{"color": nil}
	assert.True(t, match(t, `color eq null`, record))
	assert.False(t, match(t, `color ne null`, record))
	assert.False(t, match(t, `color eq "red"`, record))
}

func TestMatchCrossTypeEquality(t *testing.T) {
	record := map[string]interface{}{"size": "big"}
	// Cross-type eq is false and ne is true, never an error.
	assert.False(t, match(t, `size eq 10`, record))
	assert.True(t, match(t, `size ne 10`, record))
}

func TestMatchNumericWidths(t *testing.T) {
	for _, value := range []interface{}{int(7), int64(7), float64(7), uint32(7)} {
		record := map[string]interface{}{"n": value}
		assert.True(t, match(t, `n eq 7`, record), "value %T", value)
		assert.True(t, match(t, `n lt 7.5`, record), "value %T", value)
	}
}

func TestMatchStringOrdering(t *testing.T) {
	record := map[string]interface{}{"name": "delta"}
	assert.True(t, match(t, `name gt "alpha"`, record))
	assert.True(t, match(t, `name le "delta"`, record))
	assert.False(t, match(t, `name lt "delta"`, record))
}

func TestMatchBoolean(t *testing.T) {
	record := map[string]interface{}{"active": true}
	assert.True(t, match(t, `active eq true`, record))
	assert.False(t, match(t, `active eq false`, record))
	assert.True(t, match(t, `active ne false`, record))
}

func TestMatchOrderingErrors(t *testing.T) {
	tests := []struct {
		expr   string
		record map[string]interface{}
	}{
		{`active gt false`, map[string]interface{}{"active": true}},
		{`color lt null`, map[string]interface{}{"color": nil}},
		{`size gt 10`, map[string]interface{}{"size": "big"}},
		{`size gt "big"`, map[string]interface{}{"size": 10}},
	}
	for _, test := range tests {
		_, err := mustCompile(t, test.expr).Match(test.record)
		require.Error(t, err, "expression %q", test.expr)
		_, ok := err.(EvaluationError)
		assert.True(t, ok, "expression %q: error %v is not an EvaluationError", test.expr, err)
	}
}

// Short-circuiting: the right operand is not evaluated when the left
// side decides the result, so a would-be evaluation error never fires.
func TestMatchShortCircuit(t *testing.T) {
	record := map[string]interface{}{"a": 1, "flag": true}
	assert.True(t, match(t, `a eq 1 or flag gt true`, record))
	assert.False(t, match(t, `a eq 2 and flag gt true`, record))

	// Without short-circuiting the same comparisons do fail.
	_, err := mustCompile(t, `a eq 2 or flag gt true`).Match(record)
	assert.Error(t, err)
}

func TestMatchDoubleNegation(t *testing.T) {
	records := []map[string]interface{}{
		{"price": 50},
		{"price": 500},
		{},
	}
	plain := mustCompile(t, `price lt 100`)
	double := mustCompile(t, `not not price lt 100`)
	for _, record := range records {
		a, err := plain.Match(record)
		require.NoError(t, err)
		b, err := double.Match(record)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestMatchDeMorgan(t *testing.T) {
	records := []map[string]interface{}{
		{"a": 1, "b": 1},
		{"a": 1, "b": 2},
		{"a": 2, "b": 1},
		{"a": 2, "b": 2},
	}
	lhs := mustCompile(t, `not (a eq 1 and b eq 1)`)
	rhs := mustCompile(t, `(not a eq 1) or (not b eq 1)`)
	for _, record := range records {
		a, err := lhs.Match(record)
		require.NoError(t, err)
		b, err := rhs.Match(record)
		require.NoError(t, err)
		assert.Equal(t, a, b, "record %v", record)
	}
}

// A compiled predicate can be reused concurrently; evaluation never
// mutates the tree.
func TestMatchConcurrent(t *testing.T) {
	p := mustCompile(t, `price le 200 and price gt 3.5`)
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 1000; j++ {
				result, err := p.Match(map[string]interface{}{"price": 50})
				if err != nil || !result {
					done <- false
					return
				}
			}
			done <- true
		}()
	}
	for i := 0; i < 8; i++ {
		assert.True(t, <-done)
	}
}

func TestAsNumber(t *testing.T) {
	for _, value := range []interface{}{
		int(7), int8(7), int16(7), int32(7), int64(7),
		uint(7), uint8(7), uint16(7), uint32(7), uint64(7),
		float32(7), float64(7),
	} {
		num, ok := AsNumber(value)
		assert.True(t, ok, "value %T", value)
		assert.Equal(t, float64(7), num, "value %T", value)
	}
	for _, value := range []interface{}{nil, "7", true, []int{7}} {
		_, ok := AsNumber(value)
		assert.False(t, ok, "value %T", value)
	}
}

func TestLookup(t *testing.T) {
	record := map[string]interface{}{
		"a": map[string]interface{}{"b": map[string]interface{}{"c": 3}},
	}
	value, ok := Lookup(record, "a.b.c")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
	_, ok = Lookup(record, "a.x")
	assert.False(t, ok)
	_, ok = Lookup(record, "a.b.c.d")
	assert.False(t, ok)
}

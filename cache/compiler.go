// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package cache memoizes compiled filter predicates.
//
// Compiling a filter expression is cheap but not free, and real
// clients tend to send the same handful of filter strings over and
// over while they page through a collection.  Since a compiled
// predicate is immutable, the same one can be handed out to every
// concurrent request that presents the same expression text.
package cache

import "github.com/diffeo/sieve/filter"

// DefaultSize is the number of distinct filter expressions a Compiler
// remembers if no explicit size is given.
const DefaultSize = 1024

// Compiler compiles filter expressions, remembering the most recently
// used ones.  It is safe for concurrent use.
type Compiler struct {
	cache *lru
}

// NewCompiler creates a Compiler with the default cache size.
func NewCompiler() *Compiler {
	return NewCompilerWithSize(DefaultSize)
}

// NewCompilerWithSize creates a Compiler remembering at most size
// distinct expressions.
func NewCompilerWithSize(size int) *Compiler {
	return &Compiler{cache: newLRU(size)}
}

// Compile returns the compiled predicate for an expression, reusing a
// previously compiled one if the same text has been seen recently.
// Compilation failures are not cached; a malformed expression costs a
// parse attempt every time it is presented.
func (c *Compiler) Compile(expr string) (*filter.Predicate, error) {
	value, err := c.cache.Get(expr, func(key string) (interface{}, error) {
		return filter.Compile(key)
	})
	if err != nil {
		return nil, err
	}
	return value.(*filter.Predicate), nil
}

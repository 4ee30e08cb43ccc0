// Copyright 2015-2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// the Sieve collection store.  There is no persistence, nor is there
// any sharing between processes.  The entire store is behind a single
// global semaphore to protect against concurrent updates; in some
// cases this can limit performance in the name of correctness.
//
// This is mostly intended as a simple reference implementation of the
// collection.Store interface that can be used for testing, including
// in-process testing of higher-level components.  It is generally
// tuned for correctness, not performance or scalability.
package memory

import (
	"sort"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/sieve/collection"
)

// New creates a new collection.Store that operates purely in memory,
// using real wall-clock time for record timestamps.
func New() collection.Store {
	return NewWithClock(clock.New())
}

// NewWithClock creates a new in-memory collection.Store with an
// explicit time source.  Most application code should call New(); this
// entry point is intended for tests that need to inject a mock time
// source.
func NewWithClock(clk clock.Clock) collection.Store {
	return &memStore{
		collections: make(map[string]*memCollection),
		clock:       clk,
	}
}

type memStore struct {
	collections map[string]*memCollection
	clock       clock.Clock
	sem         sync.Mutex
}

func (s *memStore) Collection(name string) (collection.Collection, error) {
	if name == "" {
		return nil, collection.ErrBadCollectionName
	}
	s.sem.Lock()
	defer s.sem.Unlock()

	c := s.collections[name]
	if c == nil {
		c = newCollection(s, name)
		s.collections[name] = c
	}
	return c, nil
}

func (s *memStore) CollectionNames() ([]string, error) {
	s.sem.Lock()
	defer s.sem.Unlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) DestroyCollection(name string) error {
	s.sem.Lock()
	defer s.sem.Unlock()

	if _, present := s.collections[name]; !present {
		return collection.ErrNoSuchCollection{Name: name}
	}
	delete(s.collections, name)
	return nil
}

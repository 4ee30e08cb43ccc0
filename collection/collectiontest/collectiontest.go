// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package collectiontest provides generic functional tests for the
// collection.Store interface.  A typical backend test module needs to
// wrap Suite to create its backend:
//
//	package mybackend
//
//	import (
//	        "testing"
//	        "github.com/diffeo/sieve/collection/collectiontest"
//	        "github.com/stretchr/testify/suite"
//	)
//
//	// Suite is the per-backend generic test suite.
//	type Suite struct {
//	        collectiontest.Suite
//	}
//
//	// SetupSuite does global setup for the test suite.
//	func (s *Suite) SetupSuite() {
//	        s.Suite.SetupSuite()
//	        s.Store = NewWithClock(s.Clock)
//	}
//
//	// TestStore runs the generic store tests.
//	func TestStore(t *testing.T) {
//	        suite.Run(t, &Suite{})
//	}
package collectiontest

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/filter"
	"github.com/stretchr/testify/suite"
)

// Suite is the generic collection backend test suite.
type Suite struct {
	suite.Suite

	// Clock contains the alternate time source to be used in
	// tests.  It is pre-initialized to a mock clock.
	Clock *clock.Mock

	// Store contains the top-level interface to the backend under
	// test.  It is set by importing packages.
	Store collection.Store
}

// SetupSuite does one-time initialization for the test suite.
func (s *Suite) SetupSuite() {
	s.Clock = clock.NewMock()
}

// TearDownTest destroys all collections between tests so each test
// sees a fresh store.
func (s *Suite) TearDownTest() {
	names, err := s.Store.CollectionNames()
	if s.NoError(err) {
		for _, name := range names {
			s.NoError(s.Store.DestroyCollection(name))
		}
	}
}

// mustCollection retrieves (creating if needed) a collection, failing
// the test on error.
func (s *Suite) mustCollection(name string) collection.Collection {
	c, err := s.Store.Collection(name)
	s.Require().NoError(err)
	return c
}

// mustCreate adds a record, failing the test on error.
func (s *Suite) mustCreate(c collection.Collection, data map[string]interface{}) collection.Record {
	record, err := c.Create(data)
	s.Require().NoError(err)
	return record
}

// mustFilter compiles a filter expression, failing the test on error.
func (s *Suite) mustFilter(expr string) *filter.Predicate {
	pred, err := filter.Compile(expr)
	s.Require().NoError(err)
	return pred
}

// listIDs runs a query and returns just the resulting record IDs.
func (s *Suite) listIDs(c collection.Collection, q collection.Query) []string {
	result, err := c.List(q)
	s.Require().NoError(err)
	out := make([]string, len(result.Records))
	for i, record := range result.Records {
		out[i] = record.ID
	}
	return out
}

// TestTrivialCollection creates a collection and looks at nothing else.
func (s *Suite) TestTrivialCollection() {
	c := s.mustCollection("dogs")
	s.Equal("dogs", c.Name())

	names, err := s.Store.CollectionNames()
	if s.NoError(err) {
		s.Equal([]string{"dogs"}, names)
	}
}

// TestBadCollectionName verifies the empty collection name is rejected.
func (s *Suite) TestBadCollectionName() {
	_, err := s.Store.Collection("")
	s.Equal(collection.ErrBadCollectionName, err)
}

// TestCreateAndGet round-trips one record through the store.
func (s *Suite) TestCreateAndGet() {
	c := s.mustCollection("dogs")
	created := s.mustCreate(c, map[string]interface{}{
		"name":  "rex",
		"owner": map[string]interface{}{"id": 1},
	})
	s.NotEmpty(created.ID)
	// Compare instants, not time.Time internals; timestamps may
	// have round-tripped through a wire format that drops the
	// location.
	s.WithinDuration(s.Clock.Now(), created.Created, 0)
	s.WithinDuration(created.Created, created.Updated, 0)

	fetched, err := c.Record(created.ID)
	if s.NoError(err) {
		s.Equal(created.ID, fetched.ID)
		s.Equal("rex", fetched.Data["name"])
	}
}

// TestCreateAssignsDistinctIDs checks the store invents IDs itself.
func (s *Suite) TestCreateAssignsDistinctIDs() {
	c := s.mustCollection("dogs")
	first := s.mustCreate(c, nil)
	second := s.mustCreate(c, nil)
	s.NotEqual(first.ID, second.ID)
}

// TestUpdate replaces a record's data and advances its update time.
func (s *Suite) TestUpdate() {
	c := s.mustCollection("dogs")
	created := s.mustCreate(c, map[string]interface{}{"name": "rex"})

	s.Clock.Add(time.Minute)
	updated, err := c.Update(created.ID, map[string]interface{}{"name": "fido"})
	if s.NoError(err) {
		s.Equal(created.ID, updated.ID)
		s.Equal("fido", updated.Data["name"])
		s.WithinDuration(created.Created, updated.Created, 0)
		s.WithinDuration(created.Created.Add(time.Minute), updated.Updated, 0)
	}
}

// TestUpdateMissing verifies updating an unknown ID fails cleanly.
func (s *Suite) TestUpdateMissing() {
	c := s.mustCollection("dogs")
	_, err := c.Update("bogus", map[string]interface{}{})
	s.Equal(collection.ErrNoSuchRecord{ID: "bogus"}, err)
}

// TestDelete removes a record and checks it is really gone.
func (s *Suite) TestDelete() {
	c := s.mustCollection("dogs")
	created := s.mustCreate(c, nil)

	s.NoError(c.Delete(created.ID))
	_, err := c.Record(created.ID)
	s.Equal(collection.ErrNoSuchRecord{ID: created.ID}, err)
	s.Equal(collection.ErrNoSuchRecord{ID: created.ID}, c.Delete(created.ID))
}

// TestCount counts records without any filtering.
func (s *Suite) TestCount() {
	c := s.mustCollection("dogs")
	for i := 0; i < 3; i++ {
		s.mustCreate(c, nil)
	}
	count, err := c.Count()
	if s.NoError(err) {
		s.Equal(3, count)
	}
}

// TestListFiltered applies a filter predicate to a listing.
func (s *Suite) TestListFiltered() {
	c := s.mustCollection("places")
	europe := s.mustCreate(c, map[string]interface{}{"continent": "Europe"})
	s.mustCreate(c, map[string]interface{}{"continent": "Asia"})

	q := collection.Query{Filter: s.mustFilter(`continent eq "Europe"`)}
	s.Equal([]string{europe.ID}, s.listIDs(c, q))

	result, err := c.List(q)
	if s.NoError(err) {
		s.Equal(1, result.Total)
	}
}

// TestListSorted orders a listing by a data field.
func (s *Suite) TestListSorted() {
	c := s.mustCollection("items")
	cheap := s.mustCreate(c, map[string]interface{}{"price": 10})
	costly := s.mustCreate(c, map[string]interface{}{"price": 90})
	middle := s.mustCreate(c, map[string]interface{}{"price": 50})

	q := collection.Query{Sort: []collection.SortKey{{Field: "price"}}}
	s.Equal([]string{cheap.ID, middle.ID, costly.ID}, s.listIDs(c, q))

	q.Sort[0].Descending = true
	s.Equal([]string{costly.ID, middle.ID, cheap.ID}, s.listIDs(c, q))
}

// TestListPaged cuts pages out of a sorted listing and reports the
// unpaged total.
func (s *Suite) TestListPaged() {
	c := s.mustCollection("items")
	var created []string
	for i := 1; i <= 5; i++ {
		record := s.mustCreate(c, map[string]interface{}{"n": i})
		created = append(created, record.ID)
	}
	q := collection.Query{
		Sort:   []collection.SortKey{{Field: "n"}},
		Offset: 1,
		Limit:  2,
	}
	result, err := c.List(q)
	if s.NoError(err) {
		s.Equal(5, result.Total)
		s.Len(result.Records, 2)
		s.Equal(created[1], result.Records[0].ID)
		s.Equal(created[2], result.Records[1].ID)
	}
}

// TestListEvaluationError checks a type-mismatched ordering comparison
// fails the whole listing.
func (s *Suite) TestListEvaluationError() {
	c := s.mustCollection("items")
	s.mustCreate(c, map[string]interface{}{"active": true})
	_, err := c.List(collection.Query{Filter: s.mustFilter("active gt false")})
	s.Error(err)
	_, ok := err.(filter.EvaluationError)
	s.True(ok, "error %v is not an EvaluationError", err)
}

// TestDeleteWhere bulk-deletes by filter.
func (s *Suite) TestDeleteWhere() {
	c := s.mustCollection("items")
	s.mustCreate(c, map[string]interface{}{"price": 10})
	s.mustCreate(c, map[string]interface{}{"price": 90})
	s.mustCreate(c, map[string]interface{}{"price": 95})

	deleted, err := c.DeleteWhere(collection.Query{Filter: s.mustFilter("price gt 50")})
	if s.NoError(err) {
		s.Equal(2, deleted)
	}
	count, err := c.Count()
	if s.NoError(err) {
		s.Equal(1, count)
	}
}

// TestDeleteWhereAll checks the zero query deletes everything.
func (s *Suite) TestDeleteWhereAll() {
	c := s.mustCollection("items")
	s.mustCreate(c, nil)
	s.mustCreate(c, nil)
	deleted, err := c.DeleteWhere(collection.Query{})
	if s.NoError(err) {
		s.Equal(2, deleted)
	}
}

// TestDestroyCollection destroys a collection and all its records.
func (s *Suite) TestDestroyCollection() {
	c := s.mustCollection("dogs")
	s.mustCreate(c, nil)

	s.NoError(s.Store.DestroyCollection("dogs"))
	names, err := s.Store.CollectionNames()
	if s.NoError(err) {
		s.Empty(names)
	}
	s.Equal(collection.ErrNoSuchCollection{Name: "dogs"},
		s.Store.DestroyCollection("dogs"))
}

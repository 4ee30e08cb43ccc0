// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package collection defines an abstract API to Sieve collections.
//
// A Sieve deployment stores named collections of schemaless records.
// Applications know of specific implementations of this API, such as
// the memory or postgres backends, and get a Store from that
// implementation.
//
// In general, objects here have a small amount of immutable data (a
// Record.ID never changes, for instance) and the accessors of mutable
// state return a value and an error.
package collection

import (
	"time"

	"github.com/diffeo/sieve/filter"
)

// Store is the principal interface to a Sieve backend.
// Implementations of this interface provide a specific database
// backend, RPC system, or other way to interact with collections.
type Store interface {
	// Collection retrieves a Collection object for some name.  If
	// no collection already exists with that name, creates one.
	// Returns ErrBadCollectionName if the name is empty.
	//
	// A Collection handle is only guaranteed valid until the
	// collection is destroyed.  What a stale handle does after
	// DestroyCollection is backend-specific: the memory backend
	// keeps operating on the detached records, while the postgres
	// backend returns errors.  Callers that destroy collections
	// should re-fetch handles rather than reuse old ones.
	Collection(name string) (Collection, error)

	// CollectionNames returns the names of all collections in the
	// store.  This may be an empty slice if nothing has been
	// created yet.
	CollectionNames() ([]string, error)

	// DestroyCollection destroys a collection and all records in
	// it.  There is no recovery from this and no confirmation in
	// the API.  If no collection exists with that name, returns an
	// instance of ErrNoSuchCollection.
	DestroyCollection(name string) error
}

// Collection is a single named set of records.  A collection has an
// immutable name and is tied to a single Store backend.
type Collection interface {
	// Name returns the name of this collection.
	Name() string

	// Create adds a new record holding the provided data and
	// returns it.  The store assigns the record's ID; a client can
	// never choose one.  A nil data map is treated as empty.
	Create(data map[string]interface{}) (Record, error)

	// Record retrieves a single record by its ID.  If no record
	// exists with that ID, returns an instance of ErrNoSuchRecord.
	Record(id string) (Record, error)

	// Update replaces the data of an existing record, preserving
	// its ID and creation time and advancing its update time.  If
	// no record exists with that ID, returns an instance of
	// ErrNoSuchRecord.
	Update(id string, data map[string]interface{}) (Record, error)

	// Delete removes a single record by its ID.  If no record
	// exists with that ID, returns an instance of ErrNoSuchRecord.
	Delete(id string) error

	// DeleteWhere removes every record matching a query's filter,
	// ignoring the query's sort and page terms.  On success,
	// returns the number of records actually deleted.  A zero
	// Query deletes all records in the collection.
	DeleteWhere(q Query) (int, error)

	// List retrieves records by a query: filter first, then sort,
	// then page.  See the definition of Query.  The result's Total
	// counts all filtered records, before the page was cut.
	List(q Query) (ListResult, error)

	// Count returns the total number of records in this
	// collection, ignoring any filter.
	Count() (int, error)
}

// Record is a single stored record.  The store assigns the ID and
// maintains the timestamps; only Data is client-provided.
type Record struct {
	// ID is the store-assigned identifier, unique within the
	// collection and immutable for the record's lifetime.
	ID string

	// Data is the client-provided data map, possibly with nested
	// maps.  Field paths in filters and sort keys resolve against
	// this map.
	Data map[string]interface{}

	// Created is the time the record was first stored.
	Created time.Time

	// Updated is the time the record's data last changed.  It
	// equals Created until the first update.
	Updated time.Time
}

// SortKey names one field to order a listing by.
type SortKey struct {
	// Field is a dotted field path resolved within each record's
	// data, the same resolution the filter language uses.
	Field string

	// Descending reverses the order for this key.
	Descending bool
}

// Query defines terms to select and arrange some subset of the records
// in a collection.  Its zero value selects all records in an
// implementation-defined stable order.
type Query struct {
	// Filter is a compiled filter predicate.  If nil, every
	// record matches.
	Filter *filter.Predicate

	// Sort lists sort keys in priority order.  Records compare by
	// the first key, then by later keys to break ties, then by ID
	// so the order is always deterministic.
	Sort []SortKey

	// Offset is the number of matching records to skip.  It must
	// not be negative.
	Offset int

	// Limit is the maximum number of records to return.  Zero
	// means no limit.  It must not be negative.
	Limit int
}

// ListResult is one page of a collection listing.
type ListResult struct {
	// Records holds the requested page, in query order.
	Records []Record

	// Total counts every record that matched the query's filter,
	// before the offset and limit were applied.
	Total int
}

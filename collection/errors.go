// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package collection

import (
	"errors"
	"fmt"
)

// ErrBadCollectionName is returned from Store.Collection if the
// requested collection name is empty.
var ErrBadCollectionName = errors.New("Collection name must not be empty")

// ErrBadPage is returned from List queries whose offset or limit is
// negative.
var ErrBadPage = errors.New("Page offset and limit must not be negative")

// ErrNoSuchCollection is returned by Store.DestroyCollection and
// similar functions that want to look up a collection, but cannot
// find it.
type ErrNoSuchCollection struct {
	Name string
}

func (err ErrNoSuchCollection) Error() string {
	return fmt.Sprintf("No such collection %v", err.Name)
}

// ErrNoSuchRecord is returned by Collection.Record and similar
// functions that want to look up a record by ID, but cannot find it.
type ErrNoSuchRecord struct {
	ID string
}

func (err ErrNoSuchRecord) Error() string {
	return fmt.Sprintf("No such record %v", err.ID)
}

// ErrBadSortKey is returned when a sort parameter names an invalid
// field path.
type ErrBadSortKey struct {
	Key string
}

func (err ErrBadSortKey) Error() string {
	return fmt.Sprintf("Invalid sort key %q", err.Key)
}

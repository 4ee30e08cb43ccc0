// Copyright 2015-2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  Generally JSON encodings of
// these are passed across the wire as the
// application/vnd.diffeo.sieve.v1+json MIME type.
//
// In spite of the "v1" label this representation is not considered
// fully stable yet.
//
// API Usage
//
// HTTP GET the root document at its specified URL.  This will return
// a JSON serialization of the RootData object.  That serialization
// has links to other resources; follow these links, possibly filling
// in template values, to get to other resources.
//
// Many of the URL fields are actually RFC 6570 URI templates.
// This is a fancy way of saying that they are URL strings with a
// {parameter} in curly braces (or, in some cases, {?p1,p2} to
// describe query strings).  For instance, if the system is rooted at
// /, a JSON serialization of RootData will look like
//
//	{
//	    "collections_url": "/collection",
//	    "collection_url": "/collection/{collection}"
//	}
//
// While the URL structure is predictable and formulaic, it is not
// actually part of the API contract.  The only specific guarantee is
// that retrieving the root resource will return a serialization of
// RootData.
//
// Encoding Considerations
//
// A name that appears in a URL string must be made of ASCII
// characters that can be represented unescaped.  Other names are
// escaped by encoding their byte representations using the base64
// URL-safe encoding with no padding, and prepending a hyphen to the
// name.  Names that would be otherwise safe and begin with hyphens
// are also encoded.
//
// The URL path
//
//	/collection/hotels/record/-LQ
//
// refers to the record with ID "-" in the collection named "hotels".
//
// Timestamps, when they appear, are represented in JSON as RFC 3339
// strings, "2012-03-04T05:06:07.890Z".
//
// Filter Expressions
//
// Endpoints that take a "filter" parameter accept a filter expression
// string, for instance
//
//	city eq "Redmond" and price lt 100
//
// The expression travels inside the URL query string and must be
// URL-encoded accordingly.  A malformed expression produces a 400
// response whose body is an ErrorResponse with code "SyntaxError".
//
// HTTP Considerations
//
// Each URL reference notes the applicable HTTP verbs.  In most cases
// simple resource references support GET, PUT, and DELETE, and list
// resources support GET and POST.  Any resource that supports GET
// also supports HEAD.
//
// Object IDs never change after their creation.  In most cases, URL
// template links included in a representation will not change either.
//
// The current server implementation matching this makes minimal use
// of HTTP status codes, but will usually correctly return 200 OK, 201
// Created, 204 No Content, 400 Bad Request, 404 Not Found, and 415
// Unsupported Media Type when these are correct.
//
// Errors
//
// Most errors should be returned as encodings of the ErrorResponse
// type.  This can round-trip the well-known collection and filter
// package errors but may return most other errors as plain strings
// that are not the same objects as other standard errors.
//
// If Go server code panics, this should be captured and returned as
// an ErrorResponse with error code "panic".
//
// Errors should be returned as failing HTTP statuses, but some
// application-level errors may be returned as 500 Internal Server
// Error even in correct operation.
package restdata

import (
	"time"
)

// V1JSONMediaType is the preferred, most specific MIME type for the
// JSON representation of this content.
const V1JSONMediaType = "application/vnd.diffeo.sieve.v1+json"

// JSONMediaType requests the most recent version of the JSON
// representation of this content.
const JSONMediaType = "application/vnd.diffeo.sieve+json"

// Resource is a base type for all resources in this module.
type Resource struct {
	// URL points at this resource.  If this record is a "short"
	// record, the contents of this URL are the full record.  This
	// field does not need to be provided when posting data (and
	// indeed for HTTP PUT requests you need to know the URL to
	// post at all).
	URL string `json:"url"`
}

// NamedResource is a resource with a name.  Collections have names;
// records have server-assigned IDs instead.
type NamedResource struct {
	Resource

	// Name holds the name of this resource.  This is immutable.
	// This field does not need to be provided when posting data.
	Name string `json:"name"`
}

// RootData is returned by the root path.
type RootData struct {
	Resource

	// CollectionsURL points at the collection list.  This
	// endpoint supports HTTP GET to return a CollectionList.
	// This endpoint also supports HTTP POST to submit a new
	// Collection, returning a CollectionShort pointing at the
	// result.
	CollectionsURL string `json:"collections_url"`

	// CollectionURL points at the representation of a single
	// collection.  This endpoint supports HTTP GET and DELETE,
	// and its representation is a Collection.  HTTP GET will
	// create a new collection without specially notifying the
	// caller.  This field is a URI template with a single
	// parameter, "collection", which should be substituted for
	// the (possibly escaped) name of the collection.
	CollectionURL string `json:"collection_url"`
}

// CollectionShort provides minimal data to identify a single
// collection.
type CollectionShort struct {
	NamedResource
}

// CollectionList is a list of CollectionShort.
type CollectionList struct {
	// Collections is a list of the collections available in the
	// system.
	Collections []CollectionShort `json:"collections"`
}

// Collection provides pointers to associated data about a collection.
type Collection struct {
	CollectionShort

	// RecordsURL points at the list of records in this
	// collection.  This endpoint supports HTTP GET, returning a
	// RecordList with every record, and HTTP POST, submitting a
	// Record and returning a RecordShort to create a new record
	// with a server-assigned ID.  RecordQueryURL is a more
	// flexible way to retrieve records.
	RecordsURL string `json:"records_url"`

	// RecordQueryURL retrieves a subset of the records in this
	// collection.  This endpoint supports HTTP GET, returning a
	// RecordList, and HTTP DELETE, returning a count via a
	// RecordsDeleted object.  This is a URI template with
	// parameters "filter", "sort", "offset", and "limit".
	// "filter" is a filter expression string; "sort" is a
	// comma-separated list of field paths, each optionally
	// prefixed with "-" for descending order; "offset" and
	// "limit" are non-negative integers.
	RecordQueryURL string `json:"record_query_url"`

	// RecordURL points at a single record by ID.  This endpoint
	// supports HTTP GET, PUT, and DELETE, and its representation
	// is a Record.  This is a URI template with a single
	// parameter, "record", that should be substituted for the
	// (possibly escaped) record ID.
	//
	// HTTP PUT to this endpoint replaces the record's data with
	// the Data field of the submitted Record; other submitted
	// fields are ignored.
	RecordURL string `json:"record_url"`

	// CountURL points at the total number of records in this
	// collection.  This endpoint only supports HTTP GET, and its
	// representation is a RecordCount.
	CountURL string `json:"count_url"`
}

// RecordShort provides minimal identifying information for a record.
type RecordShort struct {
	Resource

	// ID holds the server-assigned identifier of this record.
	// This is immutable.  This field does not need to be provided
	// when posting data.
	ID string `json:"id"`
}

// Record provides complete data for a record.  When submitting, only
// Data is meaningful; all other fields are assigned by the server.
type Record struct {
	RecordShort

	// Data is the user-provided record data.  Field values may be
	// strings, numbers, booleans, nulls, nested objects, or
	// arrays.  Filter expressions can reach into nested objects
	// using dotted paths.
	Data map[string]interface{} `json:"data"`

	// Created records when this record was first stored.  This is
	// in RFC 3339 format, e.g. "2012-03-04T05:06:07.890Z".
	Created time.Time `json:"created"`

	// Updated records when this record's data last changed.  For
	// a never-modified record this equals Created.
	Updated time.Time `json:"updated"`
}

// RecordList is the response envelope for record queries.
type RecordList struct {
	// Records contains the actual records in this representation,
	// in the requested sort order.
	Records []Record `json:"records"`

	// Total counts the records that matched the filter, before
	// offset and limit were applied.
	Total int `json:"total"`

	// Offset echoes the requested offset, if any.
	Offset int `json:"offset"`

	// Limit echoes the requested limit; zero means unlimited.
	Limit int `json:"limit,omitempty"`

	// NextPageURL points at the next page of this query, if there
	// is one.  It is only present when a limit was requested and
	// more matching records remain past the end of this page.
	NextPageURL string `json:"next_page_url,omitempty"`

	// PrevPageURL points at the previous page of this query, if
	// there is one.
	PrevPageURL string `json:"prev_page_url,omitempty"`
}

// RecordsDeleted is the response to a batch delete request.
type RecordsDeleted struct {
	// Deleted has the number of records actually deleted.
	Deleted int `json:"deleted"`
}

// RecordCount is the response to a collection count request.
type RecordCount struct {
	// Count has the total number of records in the collection.
	Count int `json:"count"`
}

// ErrorResponse can be a response to any method, generally
// accompanied by a failing HTTP status code.  Its shape follows the
// common "code"/"title"/"detail" error-object convention.
type ErrorResponse struct {
	// Code is a short machine-readable description of the
	// failure.  This may be the name or type of a collection or
	// filter package error, the string "panic", or the string
	// "error" for some other kind of error.
	Code string `json:"code"`

	// Title is a short human-readable summary of the failure
	// category.  It does not vary between occurrences of the same
	// Code.
	Title string `json:"title"`

	// Detail is a human-readable description of this particular
	// failure.
	Detail string `json:"detail,omitempty"`

	// Value is an extra parameter to the error if applicable; for
	// instance, the name of a missing collection or the filter
	// token where a syntax error was detected.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}

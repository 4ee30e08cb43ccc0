// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a collection store as a REST service.
// The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.  In
// particular, note that the URLs described here are not actually part
// of the API.
//
// HTTP Considerations
//
// Clients should use the standard HTTP Accept: header to request a
// specific format; see "MIME Types" below.
//
// This interface does not (currently) support HTTP caching or
// authentication headers.
//
// Code will generally follow conventions for the Github API as an
// established example; see https://developer.github.com/v3/ for
// details.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//	application/vnd.diffeo.sieve.v1+json
//
// JSON representation of version 1 of this interface.
//
//	application/vnd.diffeo.sieve+json
//	application/json
//	text/json
//
// JSON representation of latest version of this interface.
//
// URL Scheme
//
// Collections and records follow their natural hierarchy and are
// addressed by name and ID.  For instance, record "abc" in collection
// "hotels" has a resource URL of /collection/hotels/record/abc.  If
// the name is not URL-safe printable ASCII, it must be base64 encoded
// using the URL-safe alphabet (RFC 4648 section 5), with no padding,
// and adding an additional - at the front of the name:
// /collection/-aG90ZWxz/record/abc is the same resource as the
// preceding one.  Correspondingly, a single - means "empty", and a
// name that begins with - must be encoded.
//
// The following URLs are defined:
//
//	/
//	/collection
//	/collection/{collection}
//	/collection/{collection}/count
//	/collection/{collection}/record
//	/collection/{collection}/record/{record}
//
// The record list endpoint accepts filter, sort, offset, and limit
// query parameters; see the restdata package for their meanings.
package restserver

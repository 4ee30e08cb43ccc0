// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/restdata"
	"github.com/gorilla/mux"
	"github.com/mitchellh/mapstructure"
)

// errUnmarshal is returned if the put/post contract is violated and
// a handler function is passed the wrong type.
var errUnmarshal = restdata.ErrBadRequest{
	Err: errors.New("Invalid input format"),
}

// context holds all of the information and objects that can be
// extracted from URL parameters.
type context struct {
	CollectionName string
	Collection     collection.Collection
	Record         collection.Record
	HasRecord      bool
	QueryParams    url.Values
}

func (api *restAPI) Context(req *http.Request) (ctx *context, err error) {
	ctx = &context{}
	ctx.QueryParams = req.URL.Query()
	vars := mux.Vars(req)

	var present bool
	var name, record string

	if name, present = vars["collection"]; present && err == nil {
		name, err = restdata.MaybeDecodeName(name)
		if err == nil {
			ctx.CollectionName = name
			// Accessing a collection creates it if needed.
			// The one exception is destroying the collection
			// itself: recreating it just to tear it down
			// would make DELETE on a missing collection
			// succeed instead of returning 404.
			if !destroyingCollection(req) {
				ctx.Collection, err = api.Store.Collection(name)
			}
		}
		// An unusable name cannot name any collection, so the
		// URL points at nothing
		if err == collection.ErrBadCollectionName {
			err = restdata.ErrNotFound{Err: err}
		}
	}

	if record, present = vars["record"]; present && err == nil && ctx.Collection != nil {
		record, err = restdata.MaybeDecodeName(record)
		if err == nil {
			ctx.Record, err = ctx.Collection.Record(record)
			ctx.HasRecord = err == nil
		}
		// If there is a record key in the URL and that names an
		// absent record, it's a missing URL and we should
		// return 404
		if _, missing := err.(collection.ErrNoSuchRecord); missing {
			err = restdata.ErrNotFound{Err: err}
		}
	}

	return
}

// destroyingCollection reports whether req is a DELETE of a
// collection resource itself, rather than of things inside it.
func destroyingCollection(req *http.Request) bool {
	if req.Method != "DELETE" {
		return false
	}
	route := mux.CurrentRoute(req)
	return route != nil && route.GetName() == "collection"
}

// listQueryParams mirrors the query parameters of the record list
// endpoint.
type listQueryParams struct {
	Filter string `mapstructure:"filter"`
	Sort   string `mapstructure:"sort"`
	Offset int    `mapstructure:"offset"`
	Limit  int    `mapstructure:"limit"`
}

// ListQuery builds a record query from query parameters.  This can
// fail (malformed filter expression, bad sort key, non-integer or
// negative offset or limit) so it should only be called if a specific
// route wants it.  All failures map to 400 Bad Request.
func (api *restAPI) ListQuery(ctx *context) (q collection.Query, p listQueryParams, err error) {
	// Query parameters arrive as url.Values; flatten to the first
	// value of each and let mapstructure do the weak typing,
	// notably string-to-int for offset and limit.
	flat := make(map[string]interface{}, len(ctx.QueryParams))
	for key, values := range ctx.QueryParams {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err == nil {
		err = decoder.Decode(flat)
	}
	if err != nil {
		return q, p, restdata.ErrBadRequest{Err: err}
	}

	if p.Filter != "" {
		q.Filter, err = api.Compiler.Compile(p.Filter)
		if err != nil {
			return q, p, restdata.ErrBadRequest{Err: err}
		}
	}
	if p.Sort != "" {
		q.Sort, err = collection.ParseSort(p.Sort)
		if err != nil {
			return q, p, restdata.ErrBadRequest{Err: err}
		}
	}
	if p.Offset < 0 || p.Limit < 0 {
		return q, p, restdata.ErrBadRequest{Err: collection.ErrBadPage}
	}
	q.Offset = p.Offset
	q.Limit = p.Limit
	return q, p, nil
}

// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/diffeo/sieve/cache"
	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/restdata"
	"github.com/gorilla/mux"
)

// NewRouter creates a new HTTP handler that processes all requests
// for a collection store.  All resources are under the URL path root,
// e.g. /collection/hotels.  For more control over this setup, create
// a mux.Router and call PopulateRouter instead.
func NewRouter(store collection.Store) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, store)
	return r
}

// PopulateRouter adds collection store routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the interface under a subpath:
//
//	import "github.com/diffeo/sieve/memory"
//	import "github.com/gorilla/mux"
//	r := mux.NewRouter()
//	s := r.PathPrefix("/sieve").Subrouter()
//	store := memory.New()
//	PopulateRouter(s, store)
func PopulateRouter(r *mux.Router, store collection.Store) {
	api := &restAPI{
		Store:    store,
		Router:   r,
		Compiler: cache.NewCompiler(),
	}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the REST API.
type restAPI struct {
	Store  collection.Store
	Router *mux.Router

	// Compiler caches compiled filter expressions across requests.
	Compiler *cache.Compiler
}

// PopulateRouter adds all URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	api.PopulateCollection(r)
	r.Path("/").Name("root").Handler(&resourceHandler{
		Representation: restdata.RootData{},
		Context:        api.Context,
		Get:            api.RootDocument,
	})
}

func (api *restAPI) RootDocument(ctx *context) (interface{}, error) {
	resp := restdata.RootData{}
	err := buildURLs(api.Router).
		URL(&resp.CollectionsURL, "collections").
		Template(&resp.CollectionURL, "collection", "collection").
		Error
	return resp, err
}

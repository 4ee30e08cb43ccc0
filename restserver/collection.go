// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/restdata"
	"github.com/gorilla/mux"
)

func (api *restAPI) fillCollectionShort(c collection.Collection, summary *restdata.CollectionShort) error {
	summary.Name = c.Name()
	return buildURLs(api.Router, "collection", summary.Name).
		URL(&summary.URL, "collection").
		Error
}

func (api *restAPI) fillCollection(c collection.Collection, result *restdata.Collection) error {
	err := api.fillCollectionShort(c, &result.CollectionShort)
	if err == nil {
		err = buildURLs(api.Router, "collection", result.Name).
			URL(&result.RecordsURL, "records").
			Template(&result.RecordURL, "record", "record").
			URL(&result.CountURL, "collectionCount").
			Error
	}
	if err == nil {
		result.RecordQueryURL = result.RecordsURL + "{?filter,sort,offset,limit}"
	}
	return err
}

// CollectionList gets a list of all collections known in the system.
func (api *restAPI) CollectionList(ctx *context) (interface{}, error) {
	names, err := api.Store.CollectionNames()
	if err != nil {
		return nil, err
	}
	result := restdata.CollectionList{}
	for _, name := range names {
		c, err := api.Store.Collection(name)
		if err != nil {
			return nil, err
		}
		summary := restdata.CollectionShort{}
		err = api.fillCollectionShort(c, &summary)
		if err != nil {
			return nil, err
		}
		result.Collections = append(result.Collections, summary)
	}
	return result, nil
}

// CollectionPost creates a new collection, or retrieves a pointer to
// an existing one.
func (api *restAPI) CollectionPost(ctx *context, in interface{}) (interface{}, error) {
	req, valid := in.(restdata.CollectionShort)
	if !valid {
		return nil, errUnmarshal
	}
	c, err := api.Store.Collection(req.Name)
	if err != nil {
		return nil, err
	}
	// We will return "created", where the content is the full
	// collection data
	result := restdata.Collection{}
	err = api.fillCollection(c, &result)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: result.URL,
		Body:     result,
	}, nil
}

// CollectionGet retrieves an existing collection, or creates a new one.
func (api *restAPI) CollectionGet(ctx *context) (interface{}, error) {
	// If we've gotten here, we're just returning ctx.Collection
	result := restdata.Collection{}
	err := api.fillCollection(ctx.Collection, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CollectionDelete destroys an existing collection and all of its
// records.
func (api *restAPI) CollectionDelete(ctx *context) (interface{}, error) {
	err := api.Store.DestroyCollection(ctx.CollectionName)
	if _, missing := err.(collection.ErrNoSuchCollection); missing {
		err = restdata.ErrNotFound{Err: err}
	}
	return nil, err
}

// CollectionCountGet returns the total number of records in a
// collection, ignoring any filter.
func (api *restAPI) CollectionCountGet(ctx *context) (interface{}, error) {
	count, err := ctx.Collection.Count()
	if err != nil {
		return nil, err
	}
	return restdata.RecordCount{Count: count}, nil
}

// PopulateCollection adds collection-specific routes to a router.
// r should be rooted at the root of the URL tree, e.g. "/".
func (api *restAPI) PopulateCollection(r *mux.Router) {
	r.Path("/collection").Name("collections").Handler(&resourceHandler{
		Representation: restdata.CollectionShort{},
		Context:        api.Context,
		Get:            api.CollectionList,
		Post:           api.CollectionPost,
	})
	r.Path("/collection/{collection}").Name("collection").Handler(&resourceHandler{
		Representation: restdata.Collection{},
		Context:        api.Context,
		Get:            api.CollectionGet,
		Delete:         api.CollectionDelete,
	})
	r.Path("/collection/{collection}/count").Name("collectionCount").Handler(&resourceHandler{
		Representation: restdata.RecordCount{},
		Context:        api.Context,
		Get:            api.CollectionCountGet,
	})
	sr := r.PathPrefix("/collection/{collection}").Subrouter()
	api.PopulateRecord(sr)
}

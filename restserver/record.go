// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/url"
	"strconv"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/filter"
	"github.com/diffeo/sieve/restdata"
	"github.com/gorilla/mux"
)

func (api *restAPI) fillRecordShort(c collection.Collection, r collection.Record, summary *restdata.RecordShort) error {
	summary.ID = r.ID
	return buildURLs(api.Router, "collection", c.Name(), "record", r.ID).
		URL(&summary.URL, "record").
		Error
}

func (api *restAPI) fillRecord(c collection.Collection, r collection.Record, result *restdata.Record) error {
	err := api.fillRecordShort(c, r, &result.RecordShort)
	result.Data = r.Data
	result.Created = r.Created
	result.Updated = r.Updated
	return err
}

// RecordListGet retrieves the records in a collection, honoring the
// filter, sort, offset, and limit query parameters.
func (api *restAPI) RecordListGet(ctx *context) (interface{}, error) {
	q, params, err := api.ListQuery(ctx)
	if err != nil {
		return nil, err
	}
	listed, err := ctx.Collection.List(q)
	if err != nil {
		return nil, maybeBadQuery(err)
	}

	result := restdata.RecordList{
		Records: []restdata.Record{},
		Total:   listed.Total,
		Offset:  q.Offset,
		Limit:   q.Limit,
	}
	for _, record := range listed.Records {
		repr := restdata.Record{}
		err = api.fillRecord(ctx.Collection, record, &repr)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, repr)
	}
	api.fillPageURLs(ctx, params, &result)
	return result, nil
}

// fillPageURLs attaches next and previous page links to a record list
// when a limit is in play.
func (api *restAPI) fillPageURLs(ctx *context, params listQueryParams, result *restdata.RecordList) {
	if params.Limit <= 0 {
		return
	}
	var base string
	err := buildURLs(api.Router, "collection", ctx.Collection.Name()).
		URL(&base, "records").
		Error
	if err != nil {
		return
	}
	if params.Offset+params.Limit < result.Total {
		result.NextPageURL = pageURL(base, params, params.Offset+params.Limit)
	}
	if params.Offset > 0 {
		prev := params.Offset - params.Limit
		if prev < 0 {
			prev = 0
		}
		result.PrevPageURL = pageURL(base, params, prev)
	}
}

func pageURL(base string, params listQueryParams, offset int) string {
	v := url.Values{}
	if params.Filter != "" {
		v.Set("filter", params.Filter)
	}
	if params.Sort != "" {
		v.Set("sort", params.Sort)
	}
	if offset > 0 {
		v.Set("offset", strconv.Itoa(offset))
	}
	v.Set("limit", strconv.Itoa(params.Limit))
	return base + "?" + v.Encode()
}

// RecordPost creates a new record with a server-assigned ID.
func (api *restAPI) RecordPost(ctx *context, in interface{}) (interface{}, error) {
	req, valid := in.(restdata.Record)
	if !valid {
		return nil, errUnmarshal
	}
	record, err := ctx.Collection.Create(req.Data)
	if err != nil {
		return nil, err
	}
	result := restdata.Record{}
	err = api.fillRecord(ctx.Collection, record, &result)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: result.URL,
		Body:     result,
	}, nil
}

// RecordDeleteWhere deletes every record matching the filter query
// parameter, or every record if there is no filter, and reports how
// many went away.
func (api *restAPI) RecordDeleteWhere(ctx *context) (interface{}, error) {
	q, _, err := api.ListQuery(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := ctx.Collection.DeleteWhere(q)
	if err != nil {
		return nil, maybeBadQuery(err)
	}
	return restdata.RecordsDeleted{Deleted: deleted}, nil
}

// RecordGet retrieves a single record by ID.
func (api *restAPI) RecordGet(ctx *context) (interface{}, error) {
	result := restdata.Record{}
	err := api.fillRecord(ctx.Collection, ctx.Record, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordPut replaces the data of an existing record.
func (api *restAPI) RecordPut(ctx *context, in interface{}) (interface{}, error) {
	req, valid := in.(restdata.Record)
	if !valid {
		return nil, errUnmarshal
	}
	record, err := ctx.Collection.Update(ctx.Record.ID, req.Data)
	if err != nil {
		return nil, err
	}
	result := restdata.Record{}
	err = api.fillRecord(ctx.Collection, record, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordDelete deletes a single record by ID.
func (api *restAPI) RecordDelete(ctx *context) (interface{}, error) {
	return nil, ctx.Collection.Delete(ctx.Record.ID)
}

// maybeBadQuery remaps an evaluation failure during a scan to a 400
// response; the query, not the store, is at fault.
func maybeBadQuery(err error) error {
	if _, mismatch := err.(filter.EvaluationError); mismatch {
		return restdata.ErrBadRequest{Err: err}
	}
	return err
}

// PopulateRecord adds record-specific routes to a router.  r should
// be rooted at a specific collection, e.g. "/collection/hotels".
func (api *restAPI) PopulateRecord(r *mux.Router) {
	r.Path("/record").Name("records").Handler(&resourceHandler{
		Representation: restdata.Record{},
		Context:        api.Context,
		Get:            api.RecordListGet,
		Post:           api.RecordPost,
		Delete:         api.RecordDeleteWhere,
	})
	r.Path("/record/{record}").Name("record").Handler(&resourceHandler{
		Representation: restdata.Record{},
		Context:        api.Context,
		Get:            api.RecordGet,
		Put:            api.RecordPut,
		Delete:         api.RecordDelete,
	})
}

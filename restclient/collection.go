// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"strconv"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/restdata"
)

type restCollection struct {
	resource
	Representation restdata.Collection
}

func (c *restCollection) Refresh() error {
	c.Representation = restdata.Collection{}
	return c.Get(&c.Representation)
}

func (c *restCollection) Name() string {
	return c.Representation.Name
}

// toRecord converts a wire record to the core type.
func toRecord(repr restdata.Record) collection.Record {
	return collection.Record{
		ID:      repr.ID,
		Data:    repr.Data,
		Created: repr.Created,
		Updated: repr.Updated,
	}
}

// queryVars converts a record query to URI template variables for the
// record query endpoint.  Zero-valued parameters are left out so the
// expansion omits them.
func queryVars(q collection.Query) map[string]interface{} {
	vars := map[string]interface{}{}
	if q.Filter != nil {
		vars["filter"] = q.Filter.Source()
	}
	if len(q.Sort) > 0 {
		vars["sort"] = collection.FormatSort(q.Sort)
	}
	if q.Offset > 0 {
		vars["offset"] = strconv.Itoa(q.Offset)
	}
	if q.Limit > 0 {
		vars["limit"] = strconv.Itoa(q.Limit)
	}
	return vars
}

func (c *restCollection) Create(data map[string]interface{}) (collection.Record, error) {
	reqdata := restdata.Record{Data: data}
	respdata := restdata.Record{}
	err := c.PostTo(c.Representation.RecordsURL, map[string]interface{}{}, reqdata, &respdata)
	if err != nil {
		return collection.Record{}, err
	}
	return toRecord(respdata), nil
}

func (c *restCollection) Record(id string) (collection.Record, error) {
	repr := restdata.Record{}
	err := c.GetFrom(c.Representation.RecordURL, map[string]interface{}{
		"record": restdata.MaybeEncodeName(id),
	}, &repr)
	if err != nil {
		return collection.Record{}, err
	}
	return toRecord(repr), nil
}

func (c *restCollection) Update(id string, data map[string]interface{}) (collection.Record, error) {
	reqdata := restdata.Record{Data: data}
	respdata := restdata.Record{}
	err := c.PutTo(c.Representation.RecordURL, map[string]interface{}{
		"record": restdata.MaybeEncodeName(id),
	}, reqdata, &respdata)
	if err != nil {
		return collection.Record{}, err
	}
	return toRecord(respdata), nil
}

func (c *restCollection) Delete(id string) error {
	url, err := c.Template(c.Representation.RecordURL, map[string]interface{}{
		"record": restdata.MaybeEncodeName(id),
	})
	if err != nil {
		return err
	}
	return c.Do("DELETE", url, nil, nil)
}

func (c *restCollection) DeleteWhere(q collection.Query) (int, error) {
	repr := restdata.RecordsDeleted{}
	err := c.DeleteAt(c.Representation.RecordQueryURL, queryVars(q), &repr)
	if err != nil {
		return 0, err
	}
	return repr.Deleted, nil
}

func (c *restCollection) List(q collection.Query) (collection.ListResult, error) {
	repr := restdata.RecordList{}
	err := c.GetFrom(c.Representation.RecordQueryURL, queryVars(q), &repr)
	if err != nil {
		return collection.ListResult{}, err
	}
	result := collection.ListResult{Total: repr.Total}
	for _, r := range repr.Records {
		result.Records = append(result.Records, toRecord(r))
	}
	return result, nil
}

func (c *restCollection) Count() (int, error) {
	repr := restdata.RecordCount{}
	err := c.GetFrom(c.Representation.CountURL, map[string]interface{}{}, &repr)
	if err != nil {
		return 0, err
	}
	return repr.Count, nil
}

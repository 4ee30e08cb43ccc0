// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/diffeo/sieve/collection"
	"github.com/satori/go.uuid"
)

type memCollection struct {
	name    string
	store   *memStore
	records map[string]collection.Record
}

func newCollection(s *memStore, name string) *memCollection {
	return &memCollection{
		name:    name,
		store:   s,
		records: make(map[string]collection.Record),
	}
}

func (c *memCollection) Name() string {
	return c.name
}

func (c *memCollection) Create(data map[string]interface{}) (collection.Record, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	now := c.store.clock.Now()
	record := collection.Record{
		ID:      uuid.NewV4().String(),
		Data:    copyData(data),
		Created: now,
		Updated: now,
	}
	c.records[record.ID] = record
	return record, nil
}

func (c *memCollection) Record(id string) (collection.Record, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	record, present := c.records[id]
	if !present {
		return collection.Record{}, collection.ErrNoSuchRecord{ID: id}
	}
	return record, nil
}

func (c *memCollection) Update(id string, data map[string]interface{}) (collection.Record, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	record, present := c.records[id]
	if !present {
		return collection.Record{}, collection.ErrNoSuchRecord{ID: id}
	}
	record.Data = copyData(data)
	record.Updated = c.store.clock.Now()
	c.records[id] = record
	return record, nil
}

func (c *memCollection) Delete(id string) error {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	if _, present := c.records[id]; !present {
		return collection.ErrNoSuchRecord{ID: id}
	}
	delete(c.records, id)
	return nil
}

func (c *memCollection) DeleteWhere(q collection.Query) (int, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	matched, err := collection.FilterRecords(c.all(), q.Filter)
	if err != nil {
		return 0, err
	}
	for _, record := range matched {
		delete(c.records, record.ID)
	}
	return len(matched), nil
}

func (c *memCollection) List(q collection.Query) (collection.ListResult, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	return collection.ApplyQuery(c.all(), q)
}

func (c *memCollection) Count() (int, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	return len(c.records), nil
}

// all snapshots the record map into a slice; callers hold the global
// semaphore.
func (c *memCollection) all() []collection.Record {
	records := make([]collection.Record, 0, len(c.records))
	for _, record := range c.records {
		records = append(records, record)
	}
	return records
}

// copyData makes a top-level copy of a client-provided data map so a
// caller mutating its own map afterwards cannot corrupt the store.
// Nested maps are still shared; callers that mutate nested data get
// what they deserve.
func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

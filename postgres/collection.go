// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"
	"time"

	"github.com/diffeo/sieve/collection"
	"github.com/satori/go.uuid"
	"github.com/ugorji/go/codec"
)

type pgCollection struct {
	store *pgStore
	name  string
}

func (c *pgCollection) Name() string {
	return c.name
}

func (c *pgCollection) Create(data map[string]interface{}) (collection.Record, error) {
	blob, err := mapToBytes(data)
	if err != nil {
		return collection.Record{}, err
	}
	now := c.store.clock.Now()
	record := collection.Record{
		ID:      uuid.NewV4().String(),
		Data:    data,
		Created: now,
		Updated: now,
	}
	if record.Data == nil {
		record.Data = map[string]interface{}{}
	}
	_, err = c.store.db.Exec(
		"INSERT INTO records(collection, id, data, created, updated) "+
			"VALUES ($1, $2, $3, $4, $5)",
		c.name, record.ID, blob, now, now)
	if err != nil {
		return collection.Record{}, err
	}
	return record, nil
}

func (c *pgCollection) Record(id string) (collection.Record, error) {
	row := c.store.db.QueryRow(
		"SELECT data, created, updated FROM records "+
			"WHERE collection=$1 AND id=$2",
		c.name, id)
	var blob []byte
	record := collection.Record{ID: id}
	err := row.Scan(&blob, &record.Created, &record.Updated)
	if err == sql.ErrNoRows {
		return collection.Record{}, collection.ErrNoSuchRecord{ID: id}
	}
	if err != nil {
		return collection.Record{}, err
	}
	record.Data, err = bytesToMap(blob)
	return record, err
}

func (c *pgCollection) Update(id string, data map[string]interface{}) (collection.Record, error) {
	blob, err := mapToBytes(data)
	if err != nil {
		return collection.Record{}, err
	}
	now := c.store.clock.Now()
	record := collection.Record{
		ID:      id,
		Data:    data,
		Updated: now,
	}
	if record.Data == nil {
		record.Data = map[string]interface{}{}
	}
	row := c.store.db.QueryRow(
		"UPDATE records SET data=$1, updated=$2 "+
			"WHERE collection=$3 AND id=$4 RETURNING created",
		blob, now, c.name, id)
	err = row.Scan(&record.Created)
	if err == sql.ErrNoRows {
		return collection.Record{}, collection.ErrNoSuchRecord{ID: id}
	}
	if err != nil {
		return collection.Record{}, err
	}
	return record, nil
}

func (c *pgCollection) Delete(id string) error {
	result, err := c.store.db.Exec(
		"DELETE FROM records WHERE collection=$1 AND id=$2",
		c.name, id)
	if err != nil {
		return err
	}
	count, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return collection.ErrNoSuchRecord{ID: id}
	}
	return nil
}

func (c *pgCollection) DeleteWhere(q collection.Query) (int, error) {
	records, err := c.all()
	if err != nil {
		return 0, err
	}
	matched, err := collection.FilterRecords(records, q.Filter)
	if err != nil {
		return 0, err
	}

	// One statement per record keeps this correct under concurrent
	// deleters; a record someone else already removed just counts
	// as zero rows here.
	tx, err := c.store.db.Begin()
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, record := range matched {
		result, err := tx.Exec(
			"DELETE FROM records WHERE collection=$1 AND id=$2",
			c.name, record.ID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		count, err := result.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		deleted += int(count)
	}
	return deleted, tx.Commit()
}

func (c *pgCollection) List(q collection.Query) (collection.ListResult, error) {
	records, err := c.all()
	if err != nil {
		return collection.ListResult{}, err
	}
	return collection.ApplyQuery(records, q)
}

func (c *pgCollection) Count() (int, error) {
	row := c.store.db.QueryRow(
		"SELECT COUNT(*) FROM records WHERE collection=$1", c.name)
	var count int
	err := row.Scan(&count)
	return count, err
}

// all loads every record in the collection, in ID order.
func (c *pgCollection) all() ([]collection.Record, error) {
	rows, err := c.store.db.Query(
		"SELECT id, data, created, updated FROM records "+
			"WHERE collection=$1 ORDER BY id",
		c.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []collection.Record
	for rows.Next() {
		var record collection.Record
		var blob []byte
		var created, updated time.Time
		if err := rows.Scan(&record.ID, &blob, &created, &updated); err != nil {
			return nil, err
		}
		record.Created = created
		record.Updated = updated
		record.Data, err = bytesToMap(blob)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// record data <-> binary encoders

func mapToBytes(in map[string]interface{}) (out []byte, err error) {
	if in == nil {
		in = map[string]interface{}{}
	}
	json := new(codec.JsonHandle)
	encoder := codec.NewEncoderBytes(&out, json)
	err = encoder.Encode(in)
	return
}

func bytesToMap(in []byte) (out map[string]interface{}, err error) {
	json := new(codec.JsonHandle)
	decoder := codec.NewDecoderBytes(in, json)
	err = decoder.Decode(&out)
	return
}

// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package collection

import (
	"testing"

	"github.com/diffeo/sieve/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, data map[string]interface{}) Record {
	return Record{ID: id, Data: data}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestParseSort(t *testing.T) {
	keys, err := ParseSort("price,-owner.id")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, SortKey{Field: "price"}, keys[0])
	assert.Equal(t, SortKey{Field: "owner.id", Descending: true}, keys[1])

	keys, err = ParseSort("")
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestFormatSort(t *testing.T) {
	keys := []SortKey{
		{Field: "price"},
		{Field: "owner.id", Descending: true},
	}
	assert.Equal(t, "price,-owner.id", FormatSort(keys))
	assert.Equal(t, "", FormatSort(nil))

	// FormatSort is the inverse of ParseSort.
	parsed, err := ParseSort(FormatSort(keys))
	require.NoError(t, err)
	assert.Equal(t, keys, parsed)
}

func TestParseSortErrors(t *testing.T) {
	for _, param := range []string{",", "a,", "-", "a..b", "1up", "a b"} {
		_, err := ParseSort(param)
		require.Error(t, err, "param %q", param)
		_, ok := err.(ErrBadSortKey)
		assert.True(t, ok, "param %q: error %v", param, err)
	}
}

func TestFilterRecords(t *testing.T) {
	records := []Record{
		record("a", map[string]interface{}{"price": 50}),
		record("b", map[string]interface{}{"price": 300}),
		record("c", map[string]interface{}{"price": 100}),
	}
	pred, err := filter.Compile("price le 100")
	require.NoError(t, err)
	matched, err := FilterRecords(records, pred)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(matched))
}

func TestFilterRecordsNilPredicate(t *testing.T) {
	records := []Record{record("a", nil), record("b", nil)}
	matched, err := FilterRecords(records, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(matched))
	// The nil-predicate path returns a copy, not the input slice.
	matched[0] = record("z", nil)
	assert.Equal(t, "a", records[0].ID)
}

func TestFilterRecordsEvaluationError(t *testing.T) {
	records := []Record{
		record("a", map[string]interface{}{"active": true}),
	}
	pred, err := filter.Compile("active gt false")
	require.NoError(t, err)
	_, err = FilterRecords(records, pred)
	require.Error(t, err)
	_, ok := err.(filter.EvaluationError)
	assert.True(t, ok)
}

func TestSortRecords(t *testing.T) {
	records := []Record{
		record("a", map[string]interface{}{"price": 300}),
		record("b", map[string]interface{}{"price": 50}),
		record("c", map[string]interface{}{"price": 100}),
	}
	SortRecords(records, []SortKey{{Field: "price"}})
	assert.Equal(t, []string{"b", "c", "a"}, ids(records))

	SortRecords(records, []SortKey{{Field: "price", Descending: true}})
	assert.Equal(t, []string{"a", "c", "b"}, ids(records))
}

func TestSortRecordsTiebreak(t *testing.T) {
	records := []Record{
		record("c", map[string]interface{}{"price": 50, "city": "Kent"}),
		record("b", map[string]interface{}{"price": 50, "city": "Ames"}),
		record("a", map[string]interface{}{"price": 50, "city": "Ames"}),
	}
	SortRecords(records, []SortKey{{Field: "price"}, {Field: "city"}})
	assert.Equal(t, []string{"a", "b", "c"}, ids(records))
}

func TestSortRecordsNested(t *testing.T) {
	records := []Record{
		record("a", map[string]interface{}{"owner": map[string]interface{}{"id": 2}}),
		record("b", map[string]interface{}{"owner": map[string]interface{}{"id": 1}}),
	}
	SortRecords(records, []SortKey{{Field: "owner.id"}})
	assert.Equal(t, []string{"b", "a"}, ids(records))
}

func TestSortRecordsAbsentLast(t *testing.T) {
	records := []Record{
		record("a", map[string]interface{}{}),
		record("b", map[string]interface{}{"price": 10}),
	}
	SortRecords(records, []SortKey{{Field: "price"}})
	assert.Equal(t, []string{"b", "a"}, ids(records))
	SortRecords(records, []SortKey{{Field: "price", Descending: true}})
	assert.Equal(t, []string{"b", "a"}, ids(records))
}

func TestPageRecords(t *testing.T) {
	records := []Record{record("a", nil), record("b", nil), record("c", nil)}

	page, err := PageRecords(records, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(page))

	page, err = PageRecords(records, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(page))

	page, err = PageRecords(records, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(page))

	page, err = PageRecords(records, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestPageRecordsErrors(t *testing.T) {
	records := []Record{record("a", nil)}
	_, err := PageRecords(records, -1, 0)
	assert.Equal(t, ErrBadPage, err)
	_, err = PageRecords(records, 0, -1)
	assert.Equal(t, ErrBadPage, err)
}

func TestApplyQuery(t *testing.T) {
	records := []Record{
		record("a", map[string]interface{}{"price": 300}),
		record("b", map[string]interface{}{"price": 50}),
		record("c", map[string]interface{}{"price": 100}),
		record("d", map[string]interface{}{"price": 80}),
	}
	pred, err := filter.Compile("price le 100")
	require.NoError(t, err)
	result, err := ApplyQuery(records, Query{
		Filter: pred,
		Sort:   []SortKey{{Field: "price"}},
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, []string{"d"}, ids(result.Records))
}

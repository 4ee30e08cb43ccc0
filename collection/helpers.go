// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package collection

// This file contains the query machinery shared by every backend:
// filter, then sort, then page.  Backends that scan rows in Go (all of
// the current ones) call ApplyQuery after loading candidate records.

import (
	"sort"
	"strings"

	"github.com/diffeo/sieve/filter"
)

// ParseSort parses a comma-separated sort parameter, such as
// "price,-owner.id", into sort keys.  A leading hyphen selects
// descending order for that key.  Returns an instance of ErrBadSortKey
// if any key is not a valid dotted field path.
func ParseSort(param string) ([]SortKey, error) {
	if param == "" {
		return nil, nil
	}
	parts := strings.Split(param, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		key := SortKey{Field: part}
		if strings.HasPrefix(part, "-") {
			key.Field = part[1:]
			key.Descending = true
		}
		if !filter.ValidFieldPath(key.Field) {
			return nil, ErrBadSortKey{Key: part}
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// FormatSort renders sort keys back into the comma-separated form
// ParseSort accepts.  An empty key list renders as the empty string.
func FormatSort(keys []SortKey) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key.Field
		if key.Descending {
			parts[i] = "-" + key.Field
		}
	}
	return strings.Join(parts, ",")
}

// ApplyQuery runs a complete query against a candidate slice: filter,
// sort, then page.  The input slice is not modified.  Returns the
// requested page and the total number of filtered records.
func ApplyQuery(records []Record, q Query) (ListResult, error) {
	matched, err := FilterRecords(records, q.Filter)
	if err != nil {
		return ListResult{}, err
	}
	SortRecords(matched, q.Sort)
	page, err := PageRecords(matched, q.Offset, q.Limit)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Records: page, Total: len(matched)}, nil
}

// FilterRecords returns the records matching a predicate, preserving
// input order.  A nil predicate matches everything.  An evaluation
// error on any record fails the whole scan; there is no
// partial-results mode.
func FilterRecords(records []Record, pred *filter.Predicate) ([]Record, error) {
	if pred == nil {
		out := make([]Record, len(records))
		copy(out, records)
		return out, nil
	}
	var out []Record
	for _, record := range records {
		ok, err := pred.Match(record.Data)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, record)
		}
	}
	return out, nil
}

// SortRecords sorts records in place by the given keys, in priority
// order, always falling back to ID so the order is deterministic even
// when keyed values tie or are absent.  Values of different types have
// an arbitrary but fixed relative order; records missing a field sort
// after records that have it.
func SortRecords(records []Record, keys []SortKey) {
	sort.SliceStable(records, func(i, j int) bool {
		for _, key := range keys {
			a, aok := filter.Lookup(records[i].Data, key.Field)
			b, bok := filter.Lookup(records[j].Data, key.Field)
			if aok != bok {
				// Absent sorts last in either direction.
				return aok
			}
			if !aok {
				continue
			}
			ord := compareValues(a, b)
			if ord == 0 {
				continue
			}
			if key.Descending {
				return ord > 0
			}
			return ord < 0
		}
		return records[i].ID < records[j].ID
	})
}

// typeRank assigns every value a band so that mixed-type collections
// still have a total order: null, then booleans, then numbers, then
// strings, then everything else.  "Number" here is whatever the filter
// evaluator widens, so filtering and sorting always agree.
func typeRank(value interface{}) int {
	switch value.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case string:
		return 3
	}
	if _, ok := filter.AsNumber(value); ok {
		return 2
	}
	return 4
}

func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 1:
		av, bv := a.(bool), b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case 2:
		av, _ := filter.AsNumber(a)
		bv, _ := filter.AsNumber(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case 3:
		return strings.Compare(a.(string), b.(string))
	}
	return 0
}

// PageRecords cuts one page out of a sorted slice.  A zero limit means
// no limit.  Returns ErrBadPage if offset or limit is negative; an
// offset past the end yields an empty page, not an error.
func PageRecords(records []Record, offset, limit int) ([]Record, error) {
	if offset < 0 || limit < 0 {
		return nil, ErrBadPage
	}
	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

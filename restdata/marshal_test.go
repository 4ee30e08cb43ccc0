// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeMediaTypes(t *testing.T) {
	body := `{"records":[],"total":0,"offset":0}`
	for _, contentType := range []string{
		"application/json",
		"text/json",
		JSONMediaType,
		V1JSONMediaType,
		V1JSONMediaType + "; charset=utf-8",
	} {
		var list RecordList
		err := Decode(contentType, strings.NewReader(body), &list)
		if err != nil {
			t.Errorf("Decode(%q) => error %v", contentType, err)
		}
	}
}

func TestDecodeUnsupported(t *testing.T) {
	var list RecordList
	err := Decode("application/xml", strings.NewReader("<records/>"), &list)
	if _, ok := err.(ErrUnsupportedMediaType); !ok {
		t.Errorf("Decode(\"application/xml\") => %v, want ErrUnsupportedMediaType", err)
	}

	// Absent content type is treated as octet-stream, also unsupported.
	err = Decode("", strings.NewReader("{}"), &list)
	if _, ok := err.(ErrUnsupportedMediaType); !ok {
		t.Errorf("Decode(\"\") => %v, want ErrUnsupportedMediaType", err)
	}
}

func TestEncodeDecodeRecord(t *testing.T) {
	in := Record{
		RecordShort: RecordShort{
			Resource: Resource{URL: "/collection/hotels/record/abc"},
			ID:       "abc",
		},
		Data: map[string]interface{}{
			"city":  "Redmond",
			"price": int64(100),
		},
	}
	var buf bytes.Buffer
	if err := Encode(V1JSONMediaType, &buf, in); err != nil {
		t.Fatalf("Encode() => error %v", err)
	}
	var out Record
	if err := Decode(V1JSONMediaType, &buf, &out); err != nil {
		t.Fatalf("Decode() => error %v", err)
	}
	if out.ID != in.ID || out.URL != in.URL {
		t.Errorf("Decode() => %+v, want %+v", out, in)
	}
	if !reflect.DeepEqual(out.Data["city"], "Redmond") {
		t.Errorf("Decode() => data %+v", out.Data)
	}
}

// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/filter"
)

func TestErrorRoundTrip(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{collection.ErrBadCollectionName, "BadCollectionName"},
		{collection.ErrBadPage, "BadPage"},
		{collection.ErrNoSuchCollection{Name: "dogs"}, "NoSuchCollection"},
		{collection.ErrNoSuchRecord{ID: "abc"}, "NoSuchRecord"},
		{collection.ErrBadSortKey{Key: "0bad"}, "BadSortKey"},
	}
	for _, test := range tests {
		var resp ErrorResponse
		resp.FromError(test.err)
		if resp.Code != test.code {
			t.Errorf("FromError(%v) => code %q, want %q",
				test.err, resp.Code, test.code)
		}
		if resp.Title == "" {
			t.Errorf("FromError(%v) => empty title", test.err)
		}
		back := resp.ToError()
		if !reflect.DeepEqual(back, test.err) {
			t.Errorf("ToError() => %#v, want %#v", back, test.err)
		}
	}
}

func TestErrorSyntax(t *testing.T) {
	_, err := filter.Compile(`price le`)
	if err == nil {
		t.Fatal("Compile(\"price le\") => no error")
	}
	var resp ErrorResponse
	resp.FromError(err)
	if resp.Code != "SyntaxError" {
		t.Errorf("FromError() => code %q, want SyntaxError", resp.Code)
	}
	back := resp.ToError()
	if _, ok := back.(filter.SyntaxError); !ok {
		t.Errorf("ToError() => %#v, want filter.SyntaxError", back)
	}
}

func TestErrorEvaluation(t *testing.T) {
	err := filter.EvaluationError{
		Op:      filter.OpLt,
		Field:   "price",
		Message: "cannot order number against string",
	}
	var resp ErrorResponse
	resp.FromError(err)
	if resp.Code != "EvaluationError" {
		t.Errorf("FromError() => code %q, want EvaluationError", resp.Code)
	}
	if resp.Value != "price" {
		t.Errorf("FromError() => value %q, want \"price\"", resp.Value)
	}
	back := resp.ToError()
	if _, ok := back.(filter.EvaluationError); !ok {
		t.Errorf("ToError() => %#v, want filter.EvaluationError", back)
	}
}

func TestErrorUnwrapsNotFound(t *testing.T) {
	err := ErrNotFound{Err: collection.ErrNoSuchRecord{ID: "abc"}}
	var resp ErrorResponse
	resp.FromError(err)
	if resp.Code != "NoSuchRecord" {
		t.Errorf("FromError() => code %q, want NoSuchRecord", resp.Code)
	}
}

func TestErrorOther(t *testing.T) {
	var resp ErrorResponse
	resp.FromError(errors.New("something else"))
	if resp.Code != "error" {
		t.Errorf("FromError() => code %q, want \"error\"", resp.Code)
	}
	back := resp.ToError()
	if back.Error() != "something else" {
		t.Errorf("ToError() => %q, want \"something else\"", back.Error())
	}
}

func TestErrorFromPanic(t *testing.T) {
	var resp ErrorResponse
	func() {
		defer func() {
			if obj := recover(); obj != nil {
				resp.FromPanic(obj)
			}
		}()
		panic("boom")
	}()
	if resp.Code != "panic" {
		t.Errorf("FromPanic() => code %q, want \"panic\"", resp.Code)
	}
	if resp.Detail != "boom" {
		t.Errorf("FromPanic() => detail %q, want \"boom\"", resp.Detail)
	}
	if !strings.Contains(resp.Stack, "TestErrorFromPanic") {
		t.Errorf("FromPanic() stack does not mention the caller")
	}
}

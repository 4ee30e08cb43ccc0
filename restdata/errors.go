// Copyright 2015-2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/filter"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body, or when a query parameter such as a
// filter expression is invalid.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// titles maps error codes to their fixed human-readable summaries.
var titles = map[string]string{
	"BadCollectionName": "Invalid collection name",
	"BadPage":           "Invalid page parameters",
	"BadSortKey":        "Invalid sort key",
	"NoSuchCollection":  "No such collection",
	"NoSuchRecord":      "No such record",
	"SyntaxError":       "Filter syntax error",
	"EvaluationError":   "Filter evaluation error",
	"panic":             "Internal error",
	"error":             "Error",
}

// FromError populates an ErrorResponse to fill in its fields based on
// an error value.  This remaps the well-known collection and filter
// errors to specific e.Code values.
func (e *ErrorResponse) FromError(err error) {
	e.Code = "error"
	e.Detail = err.Error()
	switch err {
	case collection.ErrBadCollectionName:
		e.Code = "BadCollectionName"
	case collection.ErrBadPage:
		e.Code = "BadPage"
	}
	switch et := err.(type) {
	case collection.ErrNoSuchCollection:
		e.Code = "NoSuchCollection"
		e.Value = et.Name
	case collection.ErrNoSuchRecord:
		e.Code = "NoSuchRecord"
		e.Value = et.ID
	case collection.ErrBadSortKey:
		e.Code = "BadSortKey"
		e.Value = et.Key
	case filter.SyntaxError:
		e.Code = "SyntaxError"
		e.Value = et.Token
		e.Detail = fmt.Sprintf("at offset %d: %s", et.Offset, et.Message)
	case filter.EvaluationError:
		e.Code = "EvaluationError"
		e.Value = et.Field
		e.Detail = et.Message
	case ErrNotFound:
		// Discard this wrapper and report the embedded error
		e.FromError(et.Err)
		return
	case ErrBadRequest:
		e.FromError(et.Err)
		return
	}
	e.Title = titles[e.Code]
}

// ToError converts e back to a collection or filter error, if that is
// possible.  If not, returns a plain error with e.Detail text.
func (e *ErrorResponse) ToError() error {
	switch e.Code {
	case "BadCollectionName":
		return collection.ErrBadCollectionName
	case "BadPage":
		return collection.ErrBadPage
	case "NoSuchCollection":
		return collection.ErrNoSuchCollection{Name: e.Value}
	case "NoSuchRecord":
		return collection.ErrNoSuchRecord{ID: e.Value}
	case "BadSortKey":
		return collection.ErrBadSortKey{Key: e.Value}
	case "SyntaxError":
		return filter.SyntaxError{Token: e.Value, Message: e.Detail}
	case "EvaluationError":
		return filter.EvaluationError{Field: e.Value, Message: e.Detail}
	default:
		return errors.New(e.Detail)
	}
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//	defer func() {
//	    if obj := recover(); obj != nil {
//	        resp := restdata.ErrorResponse{}
//	        resp.FromPanic(obj)
//	        // write resp out as makes sense
//	    }
//	}
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Code = "panic"
	e.Title = titles["panic"]
	if recoveredError, isError := obj.(error); isError {
		e.Detail = recoveredError.Error()
	} else {
		e.Detail = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}

// Regression tests for rest.go.
//
// Main tests are really by running the end-to-end path, using the
// collectiontest tests driven from restclient.  This only contains
// special-case bug tests.
//
// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/diffeo/sieve/memory"
	"github.com/diffeo/sieve/restdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failResponseWriter struct {
	Headers    http.Header
	StatusCode int
}

func (rw *failResponseWriter) Header() http.Header {
	if rw.Headers == nil {
		rw.Headers = make(http.Header)
	}
	return rw.Headers
}

func (rw *failResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("foo")
}

func (rw *failResponseWriter) WriteHeader(code int) {
	rw.StatusCode = code
}

// TestDoubleFault checks that, if there is an error serializing a JSON
// response, it doesn't actually panic the process.
func TestDoubleFault(t *testing.T) {
	router := NewRouter(memory.New())
	req := &http.Request{
		Method: http.MethodGet,
		URL: &url.URL{
			Path: "/collection/hotels",
		},
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Close:      true,
		Host:       "localhost",
	}
	resp := &failResponseWriter{}
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestBadFilterStatus checks that a malformed filter expression turns
// into a 400 response with a SyntaxError error body.
func TestBadFilterStatus(t *testing.T) {
	router := NewRouter(memory.New())
	req := httptest.NewRequest("GET", "/collection/hotels/record?filter=price+le", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp restdata.ErrorResponse
	err := restdata.Decode(resp.Header().Get("Content-Type"), resp.Body, &errResp)
	require.NoError(t, err)
	assert.Equal(t, "SyntaxError", errResp.Code)
}

// TestMissingRecordStatus checks that a record URL with an unknown ID
// returns 404 rather than 500.
func TestMissingRecordStatus(t *testing.T) {
	router := NewRouter(memory.New())
	req := httptest.NewRequest("GET", "/collection/hotels/record/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var errResp restdata.ErrorResponse
	err := restdata.Decode(resp.Header().Get("Content-Type"), resp.Body, &errResp)
	require.NoError(t, err)
	assert.Equal(t, "NoSuchRecord", errResp.Code)
}

// TestDestroyMissingCollection checks that deleting a collection that
// does not exist returns 404 instead of implicitly creating it first.
func TestDestroyMissingCollection(t *testing.T) {
	router := NewRouter(memory.New())
	req := httptest.NewRequest("DELETE", "/collection/hotels", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// Copyright 2015-2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient_test

import (
	"net/http/httptest"
	"testing"

	"github.com/diffeo/sieve/collection/collectiontest"
	"github.com/diffeo/sieve/memory"
	"github.com/diffeo/sieve/restclient"
	"github.com/diffeo/sieve/restserver"
	"github.com/stretchr/testify/suite"
)

// Suite runs the generic store test suite over the complete REST
// stack: the REST client code talks to the REST server code, which
// points at an in-memory backend.
type Suite struct {
	collectiontest.Suite

	server *httptest.Server
}

// SetupSuite does one-time test setup, building the client-server
// stack.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	router := restserver.NewRouter(memory.NewWithClock(s.Clock))
	s.server = httptest.NewServer(router)
	store, err := restclient.New(s.server.URL)
	if err != nil {
		s.T().Fatalf("creating client: %v", err)
	}
	s.Store = store
}

// TearDownSuite shuts the test server back down.
func (s *Suite) TearDownSuite() {
	s.server.Close()
}

// TestStore runs the generic store tests.
func TestStore(t *testing.T) {
	suite.Run(t, &Suite{})
}

func TestEmptyURL(t *testing.T) {
	_, err := restclient.New("")
	if err == nil {
		t.Fatal("Expected error when given empty URL.")
	}
}

func TestRelativeURL(t *testing.T) {
	_, err := restclient.New("/sieve/")
	if err == nil {
		t.Fatal("Expected error when given relative URL.")
	}
}

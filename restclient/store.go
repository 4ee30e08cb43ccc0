// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a collection.Store-compatible HTTP REST
// client that talks to the matching server in the "restserver"
// package.
//
// The server in github.com/diffeo/sieve/cmd/sieved can run a
// compatible REST server.  Call New() with the base URL of that
// service; for instance,
//
//	store, err := restclient.New("http://localhost:5980/")
package restclient

import (
	"fmt"
	"net/url"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/restdata"
)

// New creates a new collection.Store interface that speaks to an
// external REST server.  The base URL must be absolute.
func New(baseURL string) (collection.Store, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	// Everything downstream resolves references against this URL,
	// which requires a scheme and host to resolve against.
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("Base URL %q is not absolute", baseURL)
	}
	s := &restStore{
		resource: resource{URL: parsed},
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

type restStore struct {
	resource
	Representation restdata.RootData
}

func (s *restStore) Refresh() error {
	s.Representation = restdata.RootData{}
	return s.Get(&s.Representation)
}

func (s *restStore) Collection(name string) (collection.Collection, error) {
	var err error
	c := &restCollection{}
	c.URL, err = s.Template(s.Representation.CollectionURL, map[string]interface{}{
		"collection": restdata.MaybeEncodeName(name),
	})
	if err == nil {
		err = c.Refresh()
	}
	if err == nil {
		return c, nil
	}
	return nil, err
}

func (s *restStore) CollectionNames() ([]string, error) {
	resp := restdata.CollectionList{}
	err := s.GetFrom(s.Representation.CollectionsURL, map[string]interface{}{}, &resp)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, c := range resp.Collections {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *restStore) DestroyCollection(name string) error {
	url, err := s.Template(s.Representation.CollectionURL, map[string]interface{}{
		"collection": restdata.MaybeEncodeName(name),
	})
	if err != nil {
		return err
	}
	return s.Do("DELETE", url, nil, nil)
}

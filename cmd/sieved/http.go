// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"os"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/restserver"
	"github.com/google/go-cloud/health"
	"github.com/google/go-cloud/requestlog"
	"github.com/google/go-cloud/server"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// storeHealth reports the server as healthy as long as the backend
// can be queried at all.
type storeHealth struct {
	store collection.Store
}

// CheckHealth implements the health.Checker interface.
func (h *storeHealth) CheckHealth() error {
	_, err := h.store.CollectionNames()
	return err
}

// serveHTTP runs an HTTP server on the specified local address.  This
// serves connections until the listener fails.  The health check
// endpoint is at /healthz/readiness and Prometheus metrics are at
// /metrics; everything else is the REST API.
func serveHTTP(store collection.Store, laddr string, logRequests bool) error {
	r := mux.NewRouter()
	restserver.PopulateRouter(r, store)
	r.Handle("/metrics", promhttp.Handler())

	api := promhttp.InstrumentHandlerCounter(requestTotal,
		promhttp.InstrumentHandlerDuration(requestDuration, r))

	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.UseHandler(api)

	options := &server.Options{
		HealthChecks: []health.Checker{&storeHealth{store: store}},
		Driver:       &server.DefaultDriver{},
	}
	if logRequests {
		options.RequestLogger = requestlog.NewNCSALogger(os.Stdout, func(err error) {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Error("Could not write request log")
		})
	}
	return server.New(options).ListenAndServe(laddr, n)
}

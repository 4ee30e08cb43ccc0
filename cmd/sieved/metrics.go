// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"time"

	"github.com/diffeo/sieve/collection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var requestTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "sieve",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests served",
	},
	[]string{
		"code",
		"method",
	},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "diffeo",
		Subsystem: "sieve",
		Name:      "http_request_duration_seconds",
		Help:      "Time taken to serve HTTP requests",
	},
	[]string{
		"code",
		"method",
	},
)

var recordCount = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "diffeo",
		Subsystem: "sieve",
		Name:      "collection_records",
		Help:      "Number of records stored per collection",
	},
	[]string{
		"collection",
	},
)

func init() {
	prometheus.MustRegister(requestTotal)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(recordCount)
}

// observe periodically publishes per-collection record counts.  It
// never returns and wants to run in its own goroutine.
func observe(store collection.Store) {
	for {
		names, err := store.CollectionNames()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Warn("Could not list collections for metrics")
		}
		for _, name := range names {
			c, err := store.Collection(name)
			if err != nil {
				continue
			}
			count, err := c.Count()
			if err != nil {
				continue
			}
			recordCount.With(prometheus.Labels{
				"collection": name,
			}).Set(float64(count))
		}
		time.Sleep(15 * time.Second)
	}
}

// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package sieved provides a daemon serving filtered record collections
// over an HTTP REST interface.  Clients create named collections, add
// schemaless JSON records to them, and retrieve records back using
// filter expressions such as
//
//	city eq "Redmond" and price lt 100
//
// The matching Go client is in github.com/diffeo/sieve/restclient.
package main

import (
	"flag"
	"io/ioutil"

	"github.com/diffeo/sieve/backend"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// config is the shape of the optional YAML configuration file.  Any
// value present provides a default that the corresponding command-line
// flag can still override.
type config struct {
	HTTP    string `yaml:"http"`
	Backend string `yaml:"backend"`
}

func main() {
	var err error

	httpBind := flag.String("http", ":5980",
		"[ip]:port for HTTP REST interface")
	storage := backend.Backend{Implementation: "memory", Address: ""}
	flag.Var(&storage, "backend", "impl[:address] of the storage backend")
	configFile := flag.String("config", "", "global configuration YAML file")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	flag.Parse()

	// Flags given explicitly on the command line win over the
	// configuration file, which wins over built-in defaults.
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *configFile != "" {
		var cfg config
		cfg, err = loadConfigYaml(*configFile)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not load YAML configuration")
			return
		}
		if cfg.HTTP != "" && !explicit["http"] {
			*httpBind = cfg.HTTP
		}
		if cfg.Backend != "" && !explicit["backend"] {
			if err = storage.Set(cfg.Backend); err != nil {
				logrus.WithFields(logrus.Fields{
					"err": err,
				}).Fatal("Invalid backend in YAML configuration")
				return
			}
		}
	}

	store, err := storage.Store()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not create storage backend")
		return
	}

	go observe(store)

	logrus.WithFields(logrus.Fields{
		"backend": storage.String(),
		"http":    *httpBind,
	}).Info("Serving collections")
	err = serveHTTP(store, *httpBind, *logRequests)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("HTTP server failed")
	}
}

func loadConfigYaml(filename string) (config, error) {
	var result config
	bytes, err := ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}

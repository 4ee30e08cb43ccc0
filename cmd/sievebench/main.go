// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package sievebench provides a load-generation tool for the sieved
// collection server.
package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/diffeo/sieve/collection"
	"github.com/diffeo/sieve/filter"
	"github.com/diffeo/sieve/restclient"
	"github.com/satori/go.uuid"
	"github.com/urfave/cli"
)

type benchWork struct {
	Store       collection.Store
	Collection  collection.Collection
	Concurrency int
}

func (bench *benchWork) Run(runner func()) {
	wg := sync.WaitGroup{}
	wg.Add(bench.Concurrency)
	for i := 0; i < bench.Concurrency; i++ {
		go func() {
			defer wg.Done()
			runner()
		}()
	}
	wg.Wait()
}

var bench benchWork

var cities = []string{"Redmond", "Seattle", "Portland", "Boston"}

var loadRecords = cli.Command{
	Name:  "load",
	Usage: "create many records",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "number of records to create",
		},
	},
	Action: func(c *cli.Context) {
		count := c.Int("count")
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()
		bench.Run(func() {
			for n := range numbers {
				_, _ = bench.Collection.Create(map[string]interface{}{
					"tag":   uuid.NewV4().String(),
					"city":  cities[n%len(cities)],
					"price": n % 500,
				})
			}
		})
	},
}

var queryRecords = cli.Command{
	Name:  "query",
	Usage: "run filtered scans as fast as possible",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "total number of queries to run",
		},
		cli.StringFlag{
			Name:  "filter",
			Value: `city eq "Redmond" and price lt 100`,
			Usage: "filter expression to query with",
		},
	},
	Action: func(c *cli.Context) error {
		count := c.Int("count")
		pred, err := filter.Compile(c.String("filter"))
		if err != nil {
			return err
		}
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()
		var matched int64
		var mu sync.Mutex
		bench.Run(func() {
			for range numbers {
				result, err := bench.Collection.List(collection.Query{
					Filter: pred,
					Offset: rand.Intn(10),
					Limit:  10,
				})
				if err != nil {
					continue
				}
				mu.Lock()
				matched += int64(result.Total)
				mu.Unlock()
			}
		})
		fmt.Printf("%d queries, %d total matches\n", count, matched)
		return nil
	},
}

var clear = cli.Command{
	Name:  "clear",
	Usage: "delete all of the records",
	Action: func(c *cli.Context) {
		_, _ = bench.Collection.DeleteWhere(collection.Query{})
	},
}

func main() {
	app := cli.NewApp()
	app.Usage = "benchmark the sieve collection server"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "url",
			Value: "http://localhost:5980/",
			Usage: "base URL of the sieved server",
		},
		cli.StringFlag{
			Name:  "collection",
			Value: "bench",
			Usage: "collection name to work in",
		},
		cli.IntFlag{
			Name:  "concurrency",
			Value: runtime.NumCPU(),
			Usage: "run this many jobs in parallel",
		},
	}
	app.Commands = []cli.Command{
		loadRecords,
		queryRecords,
		clear,
	}
	app.Before = func(c *cli.Context) (err error) {
		bench.Store, err = restclient.New(c.String("url"))
		if err != nil {
			return
		}

		bench.Collection, err = bench.Store.Collection(c.String("collection"))
		if err != nil {
			return
		}

		bench.Concurrency = c.Int("concurrency")

		return
	}
	app.RunAndExitOnError()
}

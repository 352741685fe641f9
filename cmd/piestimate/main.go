// Copyright (C) 2024 The Shad Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command piestimate estimates pi by a distributed Monte Carlo
// simulation: one RNG seed per locality, one simulation kernel per
// locality run through Transform, summed through a parallel Reduce.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/shad-go/shad/algo"
	"github.com/shad-go/shad/config"
	"github.com/shad-go/shad/dvector"
	"github.com/shad-go/shad/fabric/localfab"
	"github.com/shad-go/shad/policy"
)

var (
	dashPoints     int64
	dashLocalities int
	dashWorkers    int
	dashTopology   string
)

func init() {
	flag.Int64Var(&dashPoints, "points", 100_000_000, "total number of Monte Carlo sample points")
	flag.IntVar(&dashLocalities, "localities", 8, "number of localities to simulate (ignored if -topology is set)")
	flag.IntVar(&dashWorkers, "workers", 0, "reference fabric worker pool size (0 means one per locality)")
	flag.StringVar(&dashTopology, "topology", "", "path to a YAML cluster topology; overrides -localities")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	topo, err := loadTopology()
	if err != nil {
		return fmt.Errorf("loading topology: %w", err)
	}
	if err := topo.Validate(); err != nil {
		return fmt.Errorf("invalid topology: %w", err)
	}
	numLocalities := topo.NumLocalities()

	workers := dashWorkers
	if workers <= 0 {
		workers = numLocalities
	}
	pool := localfab.NewPool(workers)
	defer pool.Close()
	fb := localfab.New(pool)

	ctx := context.Background()

	seeds := dvector.NewFromTopology(make([]uint64, numLocalities), topo)
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := algo.Generate(ctx, fb, seeds, policy.SeqByLocality, seeds.Begin(), seeds.Last(), func() uint64 {
		return entropy.Uint64()
	}); err != nil {
		return fmt.Errorf("generating seeds: %w", err)
	}

	pointsPerLocality := dashPoints / int64(numLocalities)
	counters := dvector.NewFromTopology(make([]int64, numLocalities), topo)
	err = algo.Transform(ctx, fb, seeds, counters, policy.ParByLocality,
		seeds.Begin(), seeds.Last(), counters.Begin(), counters.Last(),
		func(seed uint64) int64 {
			return samplePointsInUnitCircle(seed, pointsPerLocality)
		})
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	inside, err := algo.ReduceSum(ctx, fb, counters, policy.ParByLocality, counters.Begin(), counters.Last())
	if err != nil {
		return fmt.Errorf("summing results: %w", err)
	}

	total := pointsPerLocality * int64(numLocalities)
	pi := 4.0 * float64(inside) / float64(total)
	fmt.Fprintf(os.Stdout, "pi is roughly %.6f (%d localities, %d points)\n", pi, numLocalities, total)
	return nil
}

// loadTopology reads a cluster topology from -topology, or builds an
// evenly-weighted one of -localities entries if no file was given.
func loadTopology() (*config.Topology, error) {
	if dashTopology == "" {
		localities := make([]config.LocalityConfig, dashLocalities)
		return &config.Topology{Localities: localities}, nil
	}
	f, err := os.Open(dashTopology)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return config.DecodeTopology(f)
}

// samplePointsInUnitCircle runs a single locality's share of the Monte
// Carlo simulation: n uniform points in [0,1)x[0,1), counting how many
// land within the unit circle.
func samplePointsInUnitCircle(seed uint64, n int64) int64 {
	g := rand.New(rand.NewSource(int64(seed)))
	var count int64
	for i := int64(0); i < n; i++ {
		x, y := g.Float64(), g.Float64()
		if x*x+y*y < 1 {
			count++
		}
	}
	return count
}

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

// Package dvector is a reference distributed container: a fixed-size
// sequence of elements split evenly across a set of localities. It
// exists so the algorithms in package algo -- which only ever depend on
// diter.Trait -- have a concrete, testable implementation to run
// against, the same role shad::array plays for shad::core in the
// original library.
package dvector

import (
	"golang.org/x/exp/slices"

	"github.com/shad-go/shad/config"
	"github.com/shad-go/shad/diter"
)

// Vector is a partitioned, fixed-size sequence of T. Concatenating its
// partitions in locality order reproduces the original slice passed to
// New.
type Vector[T any] struct {
	flat       []T
	localities []diter.Locality
	bounds     []int // len(localities)+1; partition i spans [bounds[i], bounds[i+1])
}

// New splits values evenly across numLocalities localities, front-
// loading the remainder so the first localities have one extra element each
// when len(values) doesn't divide evenly. numLocalities <= 0 or greater
// than len(values) (for a non-empty values) is clamped to a valid count,
// since the invariant "each locality's local range may be empty, but
// never every range when the whole is non-empty" only has to hold for
// localities that actually exist.
func New[T any](values []T, numLocalities int) *Vector[T] {
	n := len(values)
	if numLocalities < 1 {
		numLocalities = 1
	}
	if n > 0 && numLocalities > n {
		numLocalities = n
	}
	bounds := make([]int, numLocalities+1)
	localities := make([]diter.Locality, numLocalities)
	base, extra := n/numLocalities, n%numLocalities
	pos := 0
	for i := 0; i < numLocalities; i++ {
		bounds[i] = pos
		size := base
		if i < extra {
			size++
		}
		pos += size
		localities[i] = diter.Locality{Index: i}
	}
	bounds[numLocalities] = pos

	return &Vector[T]{flat: slices.Clone(values), localities: localities, bounds: bounds}
}

// NewFromTopology splits values across the localities described by
// topo, which must be non-empty (callers typically get this for free
// from config.DecodeTopology, which validates it). A locality's
// relative Weight controls how large a share it gets, including zero
// -- a zero-weight locality owns no elements unless every locality is
// zero-weighted, in which case the split falls back to even, exactly
// like New. Named localities keep their config.LocalityConfig.Name as
// diter.Locality.Name.
func NewFromTopology[T any](values []T, topo *config.Topology) *Vector[T] {
	n := len(values)
	weights := make([]int, len(topo.Localities))
	total := 0
	for i, loc := range topo.Localities {
		weights[i] = loc.Weight
		total += loc.Weight
	}
	if total == 0 {
		// Nobody expressed a preference: fall back to an even split,
		// exactly like New.
		for i := range weights {
			weights[i] = 1
		}
		total = len(weights)
	}

	sizes := make([]int, len(weights))
	assigned := 0
	for i, w := range weights {
		sizes[i] = n * w / total
		assigned += sizes[i]
	}
	// Front-load the remainder onto positively-weighted localities only,
	// so a locality with Weight 0 never gains an element floor division
	// didn't already give it.
	for idx := 0; assigned < n; idx = (idx + 1) % len(sizes) {
		if weights[idx] == 0 {
			continue
		}
		sizes[idx]++
		assigned++
	}

	bounds := make([]int, len(sizes)+1)
	localities := make([]diter.Locality, len(sizes))
	pos := 0
	for i, size := range sizes {
		bounds[i] = pos
		pos += size
		localities[i] = diter.Locality{Index: i, Name: topo.Localities[i].Name}
	}
	bounds[len(sizes)] = pos

	return &Vector[T]{flat: slices.Clone(values), localities: localities, bounds: bounds}
}

// Len returns the number of elements in the vector.
func (v *Vector[T]) Len() int { return len(v.flat) }

// NumLocalities returns the number of localities the vector is split
// across.
func (v *Vector[T]) NumLocalities() int { return len(v.localities) }

// Begin returns the global iterator denoting the first element, or Last
// if the vector is empty.
func (v *Vector[T]) Begin() diter.Iterator { return diter.Iterator{Pos: 0} }

// Last returns the terminal, past-the-end global iterator.
func (v *Vector[T]) Last() diter.Iterator { return diter.Iterator{Pos: len(v.flat)} }

// Values returns the vector's contents in order, as a plain slice. It
// does not go through the distributed iterator machinery -- it exists
// for tests to build the "classical single-node reference" to compare
// distributed results against, and for the owner process to read results
// Transform/Generate wrote back.
func (v *Vector[T]) Values() []T { return v.flat }

// At dereferences the global iterator it, which must satisfy
// it.Pos < v.Last().Pos.
func (v *Vector[T]) At(it diter.Iterator) T { return v.flat[it.Pos] }

// Set assigns value to the element denoted by it, which must satisfy
// it.Pos < v.Last().Pos.
func (v *Vector[T]) Set(it diter.Iterator, value T) { v.flat[it.Pos] = value }

// ownerOf returns the index of the locality owning the element at pos,
// or len(localities)-1 if pos is the terminal position (there is no
// locality past the last one to report, so this saturates instead).
func (v *Vector[T]) ownerOf(pos int) int {
	lo, hi := 0, len(v.localities)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if v.bounds[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// OwnerName returns the diter.Locality.String() of the locality owning
// the element at it, which must satisfy it.Pos < v.Last().Pos. Useful
// for logging which locality produced or holds a given element.
func (v *Vector[T]) OwnerName(it diter.Iterator) string {
	return v.localities[v.ownerOf(it.Pos)].String()
}

func clampRange(lo, hi, first, last int) (int, int) {
	if lo < first {
		lo = first
	}
	if hi > last {
		hi = last
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Localities implements diter.Trait.
func (v *Vector[T]) Localities(first, last diter.Iterator) []diter.Locality {
	if first.Pos >= last.Pos {
		return nil
	}
	var result []diter.Locality
	for i, loc := range v.localities {
		lo, hi := clampRange(v.bounds[i], v.bounds[i+1], first.Pos, last.Pos)
		if lo < hi {
			result = append(result, loc)
		}
	}
	return result
}

// LocalRange implements diter.Trait.
func (v *Vector[T]) LocalRange(first, last diter.Iterator, loc diter.Locality) diter.LocalRange[T] {
	if loc.Index < 0 || loc.Index >= len(v.localities) {
		return diter.LocalRange[T]{}
	}
	lo, hi := clampRange(v.bounds[loc.Index], v.bounds[loc.Index+1], first.Pos, last.Pos)
	return diter.LocalRange[T]{Values: v.flat[lo:hi]}
}

// IteratorFromLocal implements diter.Trait.
func (v *Vector[T]) IteratorFromLocal(first, last diter.Iterator, loc diter.Locality, localOffset int) diter.Iterator {
	if loc.Index < 0 || loc.Index >= len(v.localities) {
		return last
	}
	lo, hi := clampRange(v.bounds[loc.Index], v.bounds[loc.Index+1], first.Pos, last.Pos)
	pos := lo + localOffset
	if pos < hi {
		return diter.Iterator{Pos: pos}
	}
	for i := loc.Index + 1; i < len(v.localities); i++ {
		nlo, nhi := clampRange(v.bounds[i], v.bounds[i+1], first.Pos, last.Pos)
		if nlo < nhi {
			return diter.Iterator{Pos: nlo}
		}
	}
	return last
}

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

package dvector

import (
	"encoding/binary"
	"testing"

	"github.com/dchest/siphash"

	"github.com/shad-go/shad/config"
	"github.com/shad-go/shad/diter"
)

// pseudoInts produces a deterministic, reproducible sequence of ints
// from a fixed key, used in place of math/rand so test data never
// depends on the default source's seeding behavior across Go versions.
func pseudoInts(n int) []int {
	const k0, k1 = 0x5d1ec810, 0xfebed702
	out := make([]int, n)
	var buf [8]byte
	for i := range out {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		out[i] = int(siphash.Hash(k0, k1, buf[:]) % 1000)
	}
	return out
}

func TestNewEvenSplit(t *testing.T) {
	values := pseudoInts(17)
	v := New(values, 4)
	if v.Len() != 17 {
		t.Fatalf("Len() = %d, want 17", v.Len())
	}
	if v.NumLocalities() != 4 {
		t.Fatalf("NumLocalities() = %d, want 4", v.NumLocalities())
	}

	var got []int
	for _, loc := range v.Localities(v.Begin(), v.Last()) {
		got = append(got, v.LocalRange(v.Begin(), v.Last(), loc).Values...)
	}
	if len(got) != len(values) {
		t.Fatalf("concatenated partitions have %d elements, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("concatenated partitions diverge at %d: got %d, want %d", i, got[i], values[i])
		}
	}
}

func TestNewClampsLocalityCount(t *testing.T) {
	v := New(pseudoInts(2), 10)
	if v.NumLocalities() != 2 {
		t.Fatalf("NumLocalities() = %d, want 2 (clamped to element count)", v.NumLocalities())
	}
	v = New([]int{}, 5)
	if v.NumLocalities() != 1 {
		t.Fatalf("NumLocalities() = %d, want 1 for an empty vector", v.NumLocalities())
	}
}

func TestIteratorFromLocalSkipsEmptyLocalities(t *testing.T) {
	topo := &config.Topology{Localities: []config.LocalityConfig{
		{Name: "a", Weight: 1},
		{Name: "b", Weight: 0},
		{Name: "c", Weight: 1},
	}}
	v := NewFromTopology([]int{1, 2}, topo)
	first, last := v.Begin(), v.Last()
	locs := v.Localities(first, last)
	if len(locs) != 2 {
		t.Fatalf("Localities() = %v, want 2 non-empty localities", locs)
	}
	// Locality b owns no elements; advancing past a's local range must
	// land on c's first element, not on an iterator owned by b.
	aRange := v.LocalRange(first, last, diter.Locality{Index: 0, Name: "a"})
	next := v.IteratorFromLocal(first, last, diter.Locality{Index: 0, Name: "a"}, len(aRange.Values))
	if next == last {
		t.Fatalf("IteratorFromLocal rolled over to last, want c's first element")
	}
	if v.At(next) != 2 {
		t.Fatalf("At(next) = %d, want 2", v.At(next))
	}
}

func TestNewFromTopologyWeighting(t *testing.T) {
	topo := &config.Topology{Localities: []config.LocalityConfig{
		{Name: "heavy", Weight: 3},
		{Name: "light", Weight: 1},
	}}
	v := NewFromTopology(pseudoInts(8), topo)
	first, last := v.Begin(), v.Last()
	heavy := v.LocalRange(first, last, diter.Locality{Index: 0, Name: "heavy"})
	light := v.LocalRange(first, last, diter.Locality{Index: 1, Name: "light"})
	if len(heavy.Values) != 6 || len(light.Values) != 2 {
		t.Fatalf("got heavy=%d light=%d, want 6/2 for a 3:1 weight split of 8 elements", len(heavy.Values), len(light.Values))
	}
}

func TestOwnerName(t *testing.T) {
	topo := &config.Topology{Localities: []config.LocalityConfig{
		{Name: "a", Weight: 1},
		{Name: "b", Weight: 1},
	}}
	v := NewFromTopology([]int{10, 20, 30, 40}, topo)
	if got := v.OwnerName(diter.Iterator{Pos: 0}); got != "a" {
		t.Fatalf("OwnerName(0) = %q, want a", got)
	}
	if got := v.OwnerName(diter.Iterator{Pos: 3}); got != "b" {
		t.Fatalf("OwnerName(3) = %q, want b", got)
	}
}

func TestSetWritesThroughLocalRange(t *testing.T) {
	v := New([]int{0, 0, 0, 0}, 2)
	first, last := v.Begin(), v.Last()
	for _, loc := range v.Localities(first, last) {
		values := v.LocalRange(first, last, loc).Values
		for i := range values {
			values[i] = loc.Index + 1
		}
	}
	if got := v.Values(); got[0] != 1 || got[2] != 2 {
		t.Fatalf("Values() = %v, want writes through LocalRange's slice to be visible", got)
	}
}

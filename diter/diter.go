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

// Package diter defines the distributed-iterator-trait contract: the
// interface the algorithm layer uses to decompose an opaque global range
// into per-locality local ranges, and to promote a local position back
// into a global iterator, without ever materializing the whole range.
package diter

import "fmt"

// Locality identifies one partition-owning node in the cluster. The
// Index field totally orders localities; Localities of a container are
// always returned in increasing Index order.
type Locality struct {
	Index int
	Name  string
}

func (l Locality) String() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("locality[%d]", l.Index)
}

// Iterator is the global iterator: an opaque handle comparable for
// equality, dereferenceable only on the locality that owns its element.
// Pos is a linear position in [0, N] over the container's whole range;
// Pos == N (the container's element count) is the terminal "last"
// position and must never be dereferenced.
type Iterator struct {
	Pos int
}

// LocalRange is a locality's local sub-range: a plain slice, directly
// usable by ordinary single-node sequential algorithms.
type LocalRange[T any] struct {
	Values []T
}

// Trait is the distributed iterator trait (C2). A concrete distributed
// container implements it once for its own element type and iterator
// encoding; every algorithm in package algo is written purely in terms
// of this interface plus the plain Go value T.
type Trait[T any] interface {
	// Localities returns the minimum ordered set of localities covering
	// [first, last). It is never empty when first != last.
	Localities(first, last Iterator) []Locality

	// LocalRange returns loc's slice of [first, last). loc must be one
	// of the localities returned by Localities(first, last); the slice
	// may be empty if loc owns no element within the range's endpoints.
	LocalRange(first, last Iterator, loc Locality) LocalRange[T]

	// IteratorFromLocal converts localOffset -- a position within the
	// slice returned by LocalRange(first, last, loc) -- back into the
	// unique global iterator denoting the same element. When localOffset
	// equals the length of that slice (the local-end boundary), it
	// returns the first global iterator whose owner is a strictly later
	// locality, or last if no later locality holds an element of the
	// range.
	IteratorFromLocal(first, last Iterator, loc Locality, localOffset int) Iterator
}

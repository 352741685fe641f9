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

package algo

import (
	"context"
	"testing"

	"github.com/shad-go/shad/policy"
)

func TestReduceSumMatchesPlainSum(t *testing.T) {
	v := fourLocalityVector(s4s5Vector())
	fb := newFabric(t, 4)
	got, err := ReduceSum(context.Background(), fb, v, policy.ParByLocality, v.Begin(), v.Last())
	if err != nil {
		t.Fatalf("ReduceSum() error = %v", err)
	}
	want := 0
	for _, x := range s4s5Vector() {
		want += x
	}
	if got != want {
		t.Fatalf("ReduceSum() = %d, want %d", got, want)
	}
}

func TestReduceAppliesNonIdentityInitExactlyOnce(t *testing.T) {
	// Regression guard: init must combine in exactly once regardless of
	// how many localities the range splits into, not once per locality
	// or once per chunk.
	v := fourLocalityVector(s4s5Vector())
	fb := newFabric(t, 4)
	const init = 1000
	for _, p := range []policy.Policy{policy.SeqByLocality, policy.ParByLocality} {
		got, err := Reduce(context.Background(), fb, v, p, v.Begin(), v.Last(), init, func(a, b int) int { return a + b })
		if err != nil {
			t.Fatalf("Reduce() error = %v", err)
		}
		want := init
		for _, x := range s4s5Vector() {
			want += x
		}
		if got != want {
			t.Fatalf("policy %v: Reduce() = %d, want %d (init applied exactly once)", p, got, want)
		}
	}
}

func TestReduceNonCommutativeOpIsDeterministicAcrossPolicies(t *testing.T) {
	// Appending a decimal digit (a*10 + b) is not commutative: the
	// per-locality partial folds must combine in locality order under
	// both policies for the result to agree. It is not associative
	// either, so the two results only agree because both policies fold
	// each locality's two elements the same way.
	v := fourLocalityVector([]int{1, 2, 3, 4, 5, 6, 7, 8})
	fb := newFabric(t, 4)
	concat := func(a, b int) int { return a*10 + b }
	seq, err := Reduce(context.Background(), fb, v, policy.SeqByLocality, v.Begin(), v.Last(), 0, concat)
	if err != nil {
		t.Fatalf("Reduce(seq) error = %v", err)
	}
	par, err := Reduce(context.Background(), fb, v, policy.ParByLocality, v.Begin(), v.Last(), 0, concat)
	if err != nil {
		t.Fatalf("Reduce(par) error = %v", err)
	}
	if seq != par {
		t.Fatalf("Reduce(seq) = %d, Reduce(par) = %d, want equal (locality-order determinism)", seq, par)
	}
}

func TestReduceEmptyRangeReturnsInitUnchanged(t *testing.T) {
	v := fourLocalityVector(nil)
	fb := newFabric(t, 1)
	got, err := Reduce(context.Background(), fb, v, policy.SeqByLocality, v.Begin(), v.Last(), 42, func(a, b int) int { return a + b })
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if got != 42 {
		t.Fatalf("Reduce() on empty range = %d, want 42 (init unchanged)", got)
	}
}

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

func TestGenerateSequentialFillsEveryElement(t *testing.T) {
	v := fourLocalityVector(make([]int, 16))
	fb := newFabric(t, 4)
	next := 0
	err := Generate(context.Background(), fb, v, policy.SeqByLocality, v.Begin(), v.Last(), func() int {
		next++
		return next
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	got := v.Values()
	for i, x := range got {
		if x != i+1 {
			t.Fatalf("got[%d] = %d, want %d (sequential generate fills in local-range order)", i, x, i+1)
		}
	}
}

func TestGenerateParallelFillsEveryElement(t *testing.T) {
	v := fourLocalityVector(make([]int, 16))
	fb := newFabric(t, 4)
	err := Generate(context.Background(), fb, v, policy.ParByLocality, v.Begin(), v.Last(), func() int {
		return 7
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, x := range v.Values() {
		if x != 7 {
			t.Fatalf("got[%d] = %d, want 7", i, x)
		}
	}
}

func TestTransformWritesThroughToDestination(t *testing.T) {
	src := fourLocalityVector(s4s5Vector())
	dst := fourLocalityVector(make([]int, len(s4s5Vector())))
	fb := newFabric(t, 4)
	err := Transform(context.Background(), fb, src, dst, policy.SeqByLocality,
		src.Begin(), src.Last(), dst.Begin(), dst.Last(),
		func(x int) int { return x * 2 })
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	want := s4s5Vector()
	got := dst.Values()
	for i := range want {
		if got[i] != want[i]*2 {
			t.Fatalf("dst[%d] = %d, want %d", i, got[i], want[i]*2)
		}
	}
}

func TestTransformSeqAndParAgree(t *testing.T) {
	for _, p := range []policy.Policy{policy.SeqByLocality, policy.ParByLocality} {
		src := fourLocalityVector(s4s5Vector())
		dst := fourLocalityVector(make([]int, len(s4s5Vector())))
		fb := newFabric(t, 4)
		err := Transform(context.Background(), fb, src, dst, p,
			src.Begin(), src.Last(), dst.Begin(), dst.Last(),
			func(x int) int { return x + 1 })
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		want := s4s5Vector()
		got := dst.Values()
		for i := range want {
			if got[i] != want[i]+1 {
				t.Fatalf("policy %v: dst[%d] = %d, want %d", p, i, got[i], want[i]+1)
			}
		}
	}
}

func TestTransformEmptyRangeLeavesDestinationUntouched(t *testing.T) {
	src := fourLocalityVector(nil)
	dst := fourLocalityVector(nil)
	fb := newFabric(t, 1)
	err := Transform(context.Background(), fb, src, dst, policy.SeqByLocality,
		src.Begin(), src.Last(), dst.Begin(), dst.Last(),
		func(x int) int { t.Fatalf("fn called on an empty range"); return x })
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
}

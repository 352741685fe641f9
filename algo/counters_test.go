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

func TestCountAllTwos(t *testing.T) {
	// S6: count(par, R, 2) over sixteen 2s must be 16.
	values := make([]int, 16)
	for i := range values {
		values[i] = 2
	}
	v := fourLocalityVector(values)
	fb := newFabric(t, 4)
	n, err := Count(context.Background(), fb, v, policy.ParByLocality, v.Begin(), v.Last(), 2)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 16 {
		t.Fatalf("Count() = %d, want 16", n)
	}
}

func TestCountIfSeqAndParAgree(t *testing.T) {
	v := fourLocalityVector(s4s5Vector())
	fb := newFabric(t, 4)
	pred := func(x int) bool { return x > 4 }
	seq, err := CountIf(context.Background(), fb, v, policy.SeqByLocality, v.Begin(), v.Last(), pred)
	if err != nil {
		t.Fatalf("CountIf(seq) error = %v", err)
	}
	par, err := CountIf(context.Background(), fb, v, policy.ParByLocality, v.Begin(), v.Last(), pred)
	if err != nil {
		t.Fatalf("CountIf(par) error = %v", err)
	}
	if seq != par {
		t.Fatalf("CountIf(seq) = %d, CountIf(par) = %d, want equal", seq, par)
	}
	want := 0
	for _, x := range s4s5Vector() {
		if x > 4 {
			want++
		}
	}
	if seq != want {
		t.Fatalf("CountIf() = %d, want %d", seq, want)
	}
}

func TestCountEmptyRangeIsZero(t *testing.T) {
	v := fourLocalityVector(nil)
	fb := newFabric(t, 1)
	n, err := Count(context.Background(), fb, v, policy.SeqByLocality, v.Begin(), v.Last(), 1)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("Count() on empty range = %d, want 0", n)
	}
}

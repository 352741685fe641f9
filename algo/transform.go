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

	"github.com/shad-go/shad/diter"
	"github.com/shad-go/shad/fabric"
	"github.com/shad-go/shad/pattern"
	"github.com/shad-go/shad/policy"
)

// Generate assigns genFn() to every element of [first, last), calling
// genFn once per element in an unspecified order under the parallel
// policy and in local-range order under the sequential policy. It
// writes directly into c's backing storage through the slice LocalRange
// returns, so c must be a container whose LocalRange exposes a live view
// rather than a defensive copy (dvector.Vector satisfies this).
func Generate[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, genFn func() T) error {
	if first == last {
		return nil
	}
	localities := c.Localities(first, last)
	if policy.IsParallel(p) {
		return pattern.MapVoid(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) error {
			values := c.LocalRange(first, last, loc).Values
			for i := range values {
				values[i] = genFn()
			}
			return nil
		})
	}
	return pattern.FoldingMapVoid(ctx, fb, localities, func(ctx context.Context, loc diter.Locality) error {
		values := c.LocalRange(first, last, loc).Values
		for i := range values {
			values[i] = genFn()
		}
		return nil
	})
}

// Transform applies fn to every element of [first, last) in c and writes
// the result into the identically-partitioned range [dFirst, dLast) of
// d. Reconciling two ranges with different partitioning is out of
// scope: callers are responsible for dFirst/dLast denoting a range whose
// localities line up one for one with c's, in the same order and with
// the same per-locality element counts -- exactly what two ranges over
// the same container, or over two containers built with the same
// locality layout, already guarantee.
func Transform[T, U any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], d diter.Trait[U], p policy.Policy, first, last diter.Iterator, dFirst, dLast diter.Iterator, fn func(T) U) error {
	if first == last {
		return nil
	}
	localities := c.Localities(first, last)
	run := func(ctx context.Context, loc diter.Locality) error {
		src := c.LocalRange(first, last, loc).Values
		dst := d.LocalRange(dFirst, dLast, loc).Values
		n := len(src)
		if len(dst) < n {
			n = len(dst)
		}
		for i := 0; i < n; i++ {
			dst[i] = fn(src[i])
		}
		return nil
	}
	if policy.IsParallel(p) {
		return pattern.MapVoid(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) error {
			return run(ctx, loc)
		})
	}
	return pattern.FoldingMapVoid(ctx, fb, localities, run)
}

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

// Package pattern implements the five higher-order combinators every
// concrete algorithm in package algo is built from: FoldingMap,
// FoldingMapEarlyTermination, FoldingMapVoid, Map and MapVoid, plus
// their local (single-locality) analogues LocalMap and LocalMapVoid.
// None of these combinators know anything about comparators, predicates
// or element types beyond the type parameters below -- all of the
// domain-specific behavior lives in the kernels the algo package passes
// in.
package pattern

import (
	"context"
	"fmt"

	"github.com/shad-go/shad/diter"
	"github.com/shad-go/shad/fabric"
)

// FoldKernel computes a new partial solution for loc given the solution
// accumulated so far.
type FoldKernel[S any] func(ctx context.Context, loc diter.Locality, partial S) (S, error)

// FoldingMap visits localities one at a time, in order, folding kernel's
// result into the running solution. It is the serial-across-localities
// pattern used by associative reductions such as count.
func FoldingMap[S any](ctx context.Context, fb fabric.Fabric, localities []diter.Locality, init S, kernel FoldKernel[S]) (S, error) {
	return FoldingMapEarlyTermination(ctx, fb, localities, init, func(S) bool { return false }, kernel)
}

// FoldingMapEarlyTermination is FoldingMap with a coordinator-side halt
// check evaluated after each locality's update. Once halt reports true,
// no further kernels are submitted and the current partial solution is
// returned immediately -- the only form of early termination this
// library offers, and only under the sequential policy.
func FoldingMapEarlyTermination[S any](ctx context.Context, fb fabric.Fabric, localities []diter.Locality, init S, halt func(S) bool, kernel FoldKernel[S]) (S, error) {
	sol := init
	for _, loc := range localities {
		loc := loc
		var (
			next S
			kerr error
		)
		err := fb.ExecuteAt(ctx, loc, func(ctx context.Context) error {
			next, kerr = kernel(ctx, loc, sol)
			return kerr
		})
		if err != nil {
			return sol, fmt.Errorf("locality %s: %w", loc, err)
		}
		sol = next
		if halt(sol) {
			break
		}
	}
	return sol, nil
}

// VoidKernel performs a side effect on loc and reports failure, if any.
type VoidKernel func(ctx context.Context, loc diter.Locality) error

// FoldingMapVoid visits localities one at a time, in order, for side
// effects only. Used by the sequential-policy for_each.
func FoldingMapVoid(ctx context.Context, fb fabric.Fabric, localities []diter.Locality, kernel VoidKernel) error {
	for _, loc := range localities {
		loc := loc
		err := fb.ExecuteAt(ctx, loc, func(ctx context.Context) error {
			return kernel(ctx, loc)
		})
		if err != nil {
			return fmt.Errorf("locality %s: %w", loc, err)
		}
	}
	return nil
}

// MapKernel computes a per-locality result. It receives the shared
// completion handle so it may, if it chooses, spawn further async work
// under the same batch (e.g. a locality that wants to fan out its own
// sub-kernels before returning its partial result).
type MapKernel[R any] func(ctx context.Context, loc diter.Locality, h *fabric.Handle) (R, error)

// Map dispatches one kernel per locality concurrently under a single
// completion handle, awaits it once, and returns the per-locality
// results in locality order. Writes are disjoint by construction -- each
// kernel writes only to its own index -- so no further synchronization
// is needed.
func Map[R any](ctx context.Context, fb fabric.Fabric, localities []diter.Locality, kernel MapKernel[R]) ([]R, error) {
	h := fabric.NewHandle()
	out := make([]R, len(localities))
	for i, loc := range localities {
		i, loc := i, loc
		fb.AsyncExecuteAt(ctx, h, loc, func(ctx context.Context) error {
			res, err := kernel(ctx, loc, h)
			out[i] = res
			return err
		})
	}
	if err := h.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// MapVoidKernel performs a per-locality side effect.
type MapVoidKernel func(ctx context.Context, loc diter.Locality, h *fabric.Handle) error

// MapVoid dispatches one kernel per locality concurrently under a
// single completion handle and awaits it once, discarding results.
func MapVoid(ctx context.Context, fb fabric.Fabric, localities []diter.Locality, kernel MapVoidKernel) error {
	h := fabric.NewHandle()
	for _, loc := range localities {
		loc := loc
		fb.AsyncExecuteAt(ctx, h, loc, func(ctx context.Context) error {
			return kernel(ctx, loc, h)
		})
	}
	return h.Wait()
}

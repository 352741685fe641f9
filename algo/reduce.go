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

	"golang.org/x/exp/constraints"

	"github.com/shad-go/shad/diter"
	"github.com/shad-go/shad/fabric"
	"github.com/shad-go/shad/pattern"
	"github.com/shad-go/shad/policy"
)

type number interface {
	constraints.Integer | constraints.Float
}

// ReduceSum returns the sum of [first, last) under T's "+" operator,
// or the zero value of T on an empty range. It is Reduce
// specialized to T's natural "+" and a zero-valued identity, the
// distributed analogue of std::reduce's two-argument overload.
func ReduceSum[T number](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator) (T, error) {
	var zero T
	return Reduce(ctx, fb, c, p, first, last, zero, func(a, b T) T { return a + b })
}

// Reduce folds [first, last) with op starting from init, or returns init
// unchanged on an empty range. op must be associative; init is combined
// in exactly once regardless of how many localities or chunks the range
// splits into, so a non-identity init behaves the same under either
// policy. Per-locality partial folds are combined on the coordinator in
// locality order, so a non-commutative op still yields a result
// independent of dispatch policy.
func Reduce[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, init T, op func(a, b T) T) (T, error) {
	if first == last {
		return init, nil
	}
	localities := c.Localities(first, last)
	localFold := func(values []T) (T, bool) {
		var acc T
		if len(values) == 0 {
			return acc, false
		}
		acc = values[0]
		for _, v := range values[1:] {
			acc = op(acc, v)
		}
		return acc, true
	}
	if policy.IsParallel(p) {
		type partial struct {
			val T
			has bool
		}
		results, err := pattern.Map(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) (partial, error) {
			lrange := c.LocalRange(first, last, loc)
			chunks := pattern.LocalMap(lrange.Values, localChunks(true), func(chunk []T) partial {
				v, ok := localFold(chunk)
				return partial{val: v, has: ok}
			})
			acc := partial{}
			for _, ch := range chunks {
				if !ch.has {
					continue
				}
				if !acc.has {
					acc = ch
					continue
				}
				acc.val = op(acc.val, ch.val)
			}
			return acc, nil
		})
		if err != nil {
			return init, err
		}
		acc := init
		for _, r := range results {
			if r.has {
				acc = op(acc, r.val)
			}
		}
		return acc, nil
	}
	return pattern.FoldingMap(ctx, fb, localities, init,
		func(ctx context.Context, loc diter.Locality, partialAcc T) (T, error) {
			lrange := c.LocalRange(first, last, loc)
			v, ok := localFold(lrange.Values)
			if !ok {
				return partialAcc, nil
			}
			return op(partialAcc, v), nil
		},
	)
}

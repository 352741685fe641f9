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

// Count returns the number of elements of [first, last) equal to value,
// or 0 on an empty range. Summation is associative, so the sequential
// and parallel policies sum in locality order purely as an
// implementation choice, not a correctness requirement.
func Count[T comparable](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, value T) (int, error) {
	return CountIf(ctx, fb, c, p, first, last, func(v T) bool { return v == value })
}

// CountIf returns the number of elements of [first, last) for which
// pred holds, or 0 on an empty range.
func CountIf[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, pred func(T) bool) (int, error) {
	if first == last {
		return 0, nil
	}
	localities := c.Localities(first, last)
	if policy.IsParallel(p) {
		results, err := pattern.Map(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) (int, error) {
			lrange := c.LocalRange(first, last, loc)
			chunks := pattern.LocalMap(lrange.Values, localChunks(true), func(chunk []T) int {
				return localCountIf(chunk, pred)
			})
			return sumInts(chunks), nil
		})
		if err != nil {
			return 0, err
		}
		return sumInts(results), nil
	}
	return pattern.FoldingMap(ctx, fb, localities, 0,
		func(ctx context.Context, loc diter.Locality, partial int) (int, error) {
			lrange := c.LocalRange(first, last, loc)
			return partial + localCountIf(lrange.Values, pred), nil
		},
	)
}

func localCountIf[T any](values []T, pred func(T) bool) int {
	n := 0
	for _, v := range values {
		if pred(v) {
			n++
		}
	}
	return n
}

func sumInts(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

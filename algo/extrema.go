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

// extremaAcc is the running coordinator-side combine state for
// MinElement/MaxElement: the best candidate seen so far, plus whether
// any locality has reported one yet (a locality's local range may be
// empty).
type extremaAcc[T any] struct {
	has bool
	it  diter.Iterator
	val T
}

// MaxElementOrdered returns the iterator to the first maximal element of
// [first, last) under <, or last on an empty range.
func MaxElementOrdered[T constraints.Ordered](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator) (diter.Iterator, error) {
	return MaxElement(ctx, fb, c, p, first, last, func(a, b T) bool { return a < b })
}

// MaxElement returns the iterator to the first element of [first, last)
// that is maximal under less (a "less-than" comparator, true iff a
// orders before b), or last on an empty range. Ties resolve to the
// first maximum in global order, matching std::max_element.
func MaxElement[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, less func(a, b T) bool) (diter.Iterator, error) {
	if first == last {
		return last, nil
	}
	kernel := func(values diter.LocalRange[T], loc diter.Locality) extremaAcc[T] {
		idx, ok := localMaxFirst(values.Values, less)
		if !ok {
			return extremaAcc[T]{}
		}
		return extremaAcc[T]{has: true, it: c.IteratorFromLocal(first, last, loc, idx), val: values.Values[idx]}
	}
	combine := func(acc, cand extremaAcc[T]) extremaAcc[T] {
		if !cand.has {
			return acc
		}
		if !acc.has || less(acc.val, cand.val) {
			return cand
		}
		return acc
	}
	acc, err := extremaFold(ctx, fb, c, p, first, last, kernel, combine)
	if err != nil {
		return last, err
	}
	return acc.it, nil
}

// MinElementOrdered returns the iterator to the first minimal element of
// [first, last) under <, or last on an empty range.
func MinElementOrdered[T constraints.Ordered](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator) (diter.Iterator, error) {
	return MinElement(ctx, fb, c, p, first, last, func(a, b T) bool { return a < b })
}

// MinElement returns the iterator to the first element of [first, last)
// that is minimal under less, or last on an empty range. Ties resolve to
// the first minimum in global order.
//
// A candidate only replaces the running minimum when it is strictly
// smaller (less(candidate, current)). Reusing the max-combine's
// comp(current, candidate) call here instead would flip the rule into
// replacing the minimum on every larger value seen, which is wrong, so
// the two combine steps are not shared despite looking symmetric.
func MinElement[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, less func(a, b T) bool) (diter.Iterator, error) {
	if first == last {
		return last, nil
	}
	kernel := func(values diter.LocalRange[T], loc diter.Locality) extremaAcc[T] {
		idx, ok := localMinFirst(values.Values, less)
		if !ok {
			return extremaAcc[T]{}
		}
		return extremaAcc[T]{has: true, it: c.IteratorFromLocal(first, last, loc, idx), val: values.Values[idx]}
	}
	combine := func(acc, cand extremaAcc[T]) extremaAcc[T] {
		if !cand.has {
			return acc
		}
		if !acc.has || less(cand.val, acc.val) {
			return cand
		}
		return acc
	}
	acc, err := extremaFold(ctx, fb, c, p, first, last, kernel, combine)
	if err != nil {
		return last, err
	}
	return acc.it, nil
}

// minmaxAcc is the running coordinator-side combine state for
// MinMaxElement.
type minmaxAcc[T any] struct {
	has          bool
	minIt, maxIt diter.Iterator
	minVal       T
	maxVal       T
}

// MinMaxElementOrdered returns (first minimum, last maximum) of
// [first, last) under <, or (last, last) on an empty range.
func MinMaxElementOrdered[T constraints.Ordered](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator) (diter.Iterator, diter.Iterator, error) {
	return MinMaxElement(ctx, fb, c, p, first, last, func(a, b T) bool { return a < b })
}

// MinMaxElement returns (first minimum, last maximum) of [first, last)
// under less, or (last, last) on an empty range. Within a locality,
// ties resolve exactly as std::minmax_element does: the first minimum,
// the last maximum. Across localities the same rule applies: a
// candidate minimum replaces the running minimum only when it is
// strictly smaller (so the first locality to report the overall minimum
// wins), while a candidate maximum replaces the running maximum when it
// is greater-or-equal (so the last locality to report the overall
// maximum wins) -- the two rules compose to the same first-min/last-max
// guarantee globally that a single-node minmax_element gives locally.
func MinMaxElement[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, less func(a, b T) bool) (diter.Iterator, diter.Iterator, error) {
	if first == last {
		return last, last, nil
	}
	kernel := func(values diter.LocalRange[T], loc diter.Locality) minmaxAcc[T] {
		minIdx, maxIdx, ok := localMinMax(values.Values, less)
		if !ok {
			return minmaxAcc[T]{}
		}
		return minmaxAcc[T]{
			has:    true,
			minIt:  c.IteratorFromLocal(first, last, loc, minIdx),
			maxIt:  c.IteratorFromLocal(first, last, loc, maxIdx),
			minVal: values.Values[minIdx],
			maxVal: values.Values[maxIdx],
		}
	}
	combine := func(acc, cand minmaxAcc[T]) minmaxAcc[T] {
		if !cand.has {
			return acc
		}
		if !acc.has {
			return cand
		}
		next := acc
		if less(cand.minVal, acc.minVal) {
			next.minIt, next.minVal = cand.minIt, cand.minVal
		}
		if !less(cand.maxVal, acc.maxVal) {
			next.maxIt, next.maxVal = cand.maxIt, cand.maxVal
		}
		return next
	}
	acc, err := extremaFold(ctx, fb, c, p, first, last, kernel, combine)
	if err != nil {
		return last, last, err
	}
	return acc.minIt, acc.maxIt, nil
}

// extremaFold runs kernel over every locality covering [first,last) and
// folds the results with combine, in locality order, under either
// policy: sequentially via pattern.FoldingMap, or in parallel via
// pattern.Map followed by a coordinator-side reduce performed in the
// same order. Both policies therefore produce identical results,
// differing only in whether per-locality work runs one at a time or
// concurrently.
func extremaFold[T, A any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, kernel func(diter.LocalRange[T], diter.Locality) A, combine func(acc, cand A) A) (A, error) {
	localities := c.Localities(first, last)
	if policy.IsParallel(p) {
		results, err := pattern.Map(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) (A, error) {
			return kernel(c.LocalRange(first, last, loc), loc), nil
		})
		var zero A
		if err != nil {
			return zero, err
		}
		acc := zero
		for _, r := range results {
			acc = combine(acc, r)
		}
		return acc, nil
	}
	var zero A
	return pattern.FoldingMap(ctx, fb, localities, zero,
		func(ctx context.Context, loc diter.Locality, partial A) (A, error) {
			cand := kernel(c.LocalRange(first, last, loc), loc)
			return combine(partial, cand), nil
		},
	)
}

func localMaxFirst[T any](values []T, less func(a, b T) bool) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if less(values[best], values[i]) {
			best = i
		}
	}
	return best, true
}

func localMinFirst[T any](values []T, less func(a, b T) bool) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if less(values[i], values[best]) {
			best = i
		}
	}
	return best, true
}

// localMinMax returns (first minimum index, last maximum index),
// matching std::minmax_element's tie-break rule in a single pass.
func localMinMax[T any](values []T, less func(a, b T) bool) (int, int, bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	minIdx, maxIdx := 0, 0
	for i := 1; i < len(values); i++ {
		if less(values[i], values[minIdx]) {
			minIdx = i
		}
		if !less(values[i], values[maxIdx]) {
			maxIdx = i
		}
	}
	return minIdx, maxIdx, true
}

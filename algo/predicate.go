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

// AllOf reports whether pred holds for every element of [first, last).
// It returns true on an empty range. Under the sequential policy, no
// kernel runs for any locality after one has already reported false.
// Under the parallel policy, every locality's kernel runs to completion
// regardless of intermediate results, but the returned boolean is still
// exactly correct.
func AllOf[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, pred func(T) bool) (bool, error) {
	if first == last {
		return true, nil
	}
	if policy.IsParallel(p) {
		return allOfPar(ctx, fb, c, first, last, pred)
	}
	return allOfSeq(ctx, fb, c, first, last, pred)
}

func allOfSeq[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], first, last diter.Iterator, pred func(T) bool) (bool, error) {
	localities := c.Localities(first, last)
	return pattern.FoldingMapEarlyTermination(ctx, fb, localities, true,
		func(x bool) bool { return !x },
		func(ctx context.Context, loc diter.Locality, _ bool) (bool, error) {
			lrange := c.LocalRange(first, last, loc)
			return localAllOf(lrange.Values, pred), nil
		},
	)
}

func allOfPar[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], first, last diter.Iterator, pred func(T) bool) (bool, error) {
	localities := c.Localities(first, last)
	results, err := pattern.Map(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) (bool, error) {
		lrange := c.LocalRange(first, last, loc)
		chunks := pattern.LocalMap(lrange.Values, localChunks(true), func(chunk []T) bool {
			return localAllOf(chunk, pred)
		})
		return localAllOf(chunks, identity), nil
	})
	if err != nil {
		return false, err
	}
	return localAllOf(results, identity), nil
}

// AnyOf reports whether pred holds for at least one element of
// [first, last). It returns false on an empty range.
func AnyOf[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, pred func(T) bool) (bool, error) {
	if first == last {
		return false, nil
	}
	if policy.IsParallel(p) {
		return anyOfPar(ctx, fb, c, first, last, pred)
	}
	return anyOfSeq(ctx, fb, c, first, last, pred)
}

func anyOfSeq[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], first, last diter.Iterator, pred func(T) bool) (bool, error) {
	localities := c.Localities(first, last)
	return pattern.FoldingMapEarlyTermination(ctx, fb, localities, false,
		func(x bool) bool { return x },
		func(ctx context.Context, loc diter.Locality, _ bool) (bool, error) {
			lrange := c.LocalRange(first, last, loc)
			return localAnyOf(lrange.Values, pred), nil
		},
	)
}

func anyOfPar[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], first, last diter.Iterator, pred func(T) bool) (bool, error) {
	localities := c.Localities(first, last)
	results, err := pattern.Map(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) (bool, error) {
		lrange := c.LocalRange(first, last, loc)
		chunks := pattern.LocalMap(lrange.Values, localChunks(true), func(chunk []T) bool {
			return localAnyOf(chunk, pred)
		})
		return localAnyOf(chunks, identity), nil
	})
	if err != nil {
		return false, err
	}
	return localAnyOf(results, identity), nil
}

func identity(x bool) bool { return x }

func localAllOf[T any](values []T, pred func(T) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func localAnyOf[T any](values []T, pred func(T) bool) bool {
	for _, v := range values {
		if pred(v) {
			return true
		}
	}
	return false
}

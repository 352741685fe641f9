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

// Find returns the iterator to the first element of [first, last) equal
// to value, or last if none matches (including on an empty range).
func Find[T comparable](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, value T) (diter.Iterator, error) {
	return FindIf(ctx, fb, c, p, first, last, func(v T) bool { return v == value })
}

// FindIf returns the iterator to the first element of [first, last) for
// which pred holds, or last if none matches (including on an empty
// range). The returned iterator always denotes the first match in
// global order, regardless of dispatch policy or completion order.
func FindIf[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, pred func(T) bool) (diter.Iterator, error) {
	if first == last {
		return last, nil
	}
	if policy.IsParallel(p) {
		return findIfPar(ctx, fb, c, first, last, pred)
	}
	return findIfSeq(ctx, fb, c, first, last, pred)
}

// FindIfNot returns the iterator to the first element of [first, last)
// for which pred does not hold, or last if none matches.
func FindIfNot[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, pred func(T) bool) (diter.Iterator, error) {
	return FindIf(ctx, fb, c, p, first, last, func(v T) bool { return !pred(v) })
}

func findIfSeq[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], first, last diter.Iterator, pred func(T) bool) (diter.Iterator, error) {
	localities := c.Localities(first, last)
	return pattern.FoldingMapEarlyTermination(ctx, fb, localities, last,
		func(x diter.Iterator) bool { return x != last },
		func(ctx context.Context, loc diter.Locality, partial diter.Iterator) (diter.Iterator, error) {
			lrange := c.LocalRange(first, last, loc)
			if idx := localFindIf(lrange.Values, pred); idx >= 0 {
				return c.IteratorFromLocal(first, last, loc, idx), nil
			}
			return partial, nil
		},
	)
}

func findIfPar[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], first, last diter.Iterator, pred func(T) bool) (diter.Iterator, error) {
	localities := c.Localities(first, last)
	results, err := pattern.Map(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) (diter.Iterator, error) {
		lrange := c.LocalRange(first, last, loc)
		if idx := localFindIf(lrange.Values, pred); idx >= 0 {
			return c.IteratorFromLocal(first, last, loc, idx), nil
		}
		return last, nil
	})
	if err != nil {
		return last, err
	}
	// Scan in locality order -- never a later locality's match, even if
	// it completed first.
	for _, r := range results {
		if r != last {
			return r, nil
		}
	}
	return last, nil
}

func localFindIf[T any](values []T, pred func(T) bool) int {
	for i, v := range values {
		if pred(v) {
			return i
		}
	}
	return -1
}

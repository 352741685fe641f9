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

// ForEach applies fn to every element of [first, last). Under the
// sequential policy, localities are visited in order and, within a
// locality, elements are visited in local-range order. Under the
// parallel policy, localities are dispatched concurrently and no
// cross-locality visitation order is guaranteed.
func ForEach[T any](ctx context.Context, fb fabric.Fabric, c diter.Trait[T], p policy.Policy, first, last diter.Iterator, fn func(T)) error {
	if first == last {
		return nil
	}
	localities := c.Localities(first, last)
	if policy.IsParallel(p) {
		return pattern.MapVoid(ctx, fb, localities, func(ctx context.Context, loc diter.Locality, h *fabric.Handle) error {
			lrange := c.LocalRange(first, last, loc)
			pattern.LocalMapVoid(lrange.Values, localChunks(true), func(chunk []T) {
				for _, v := range chunk {
					fn(v)
				}
			})
			return nil
		})
	}
	return pattern.FoldingMapVoid(ctx, fb, localities, func(ctx context.Context, loc diter.Locality) error {
		lrange := c.LocalRange(first, last, loc)
		for _, v := range lrange.Values {
			fn(v)
		}
		return nil
	})
}

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

package pattern

import "sync"

// LocalMap splits values into at most chunks contiguous pieces and runs
// kernel over each, in parallel when chunks > 1, returning one result
// per piece in piece order. It is the local analogue of Map: policy-free
// and implementation-chosen -- the algo package decides how many chunks
// to request based on the active execution policy.
func LocalMap[T, R any](values []T, chunks int, kernel func(chunk []T) R) []R {
	pieces := splitChunks(len(values), chunks)
	if len(pieces) <= 1 {
		lo, hi := 0, len(values)
		if len(pieces) == 1 {
			lo, hi = pieces[0][0], pieces[0][1]
		}
		return []R{kernel(values[lo:hi])}
	}
	out := make([]R, len(pieces))
	var wg sync.WaitGroup
	wg.Add(len(pieces))
	for i, p := range pieces {
		i, p := i, p
		go func() {
			defer wg.Done()
			out[i] = kernel(values[p[0]:p[1]])
		}()
	}
	wg.Wait()
	return out
}

// LocalMapVoid is LocalMap without a return value.
func LocalMapVoid[T any](values []T, chunks int, kernel func(chunk []T)) {
	pieces := splitChunks(len(values), chunks)
	if len(pieces) <= 1 {
		lo, hi := 0, len(values)
		if len(pieces) == 1 {
			lo, hi = pieces[0][0], pieces[0][1]
		}
		kernel(values[lo:hi])
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(pieces))
	for _, p := range pieces {
		p := p
		go func() {
			defer wg.Done()
			kernel(values[p[0]:p[1]])
		}()
	}
	wg.Wait()
}

// splitChunks divides [0, n) into up to chunks contiguous, roughly
// equal, non-empty pieces.
func splitChunks(n, chunks int) [][2]int {
	if n == 0 {
		return nil
	}
	if chunks < 1 {
		chunks = 1
	}
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks
	var pieces [][2]int
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		pieces = append(pieces, [2]int{lo, hi})
	}
	return pieces
}

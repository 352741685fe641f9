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

// Package algo is the algorithm layer (C5) and public façade (C6): one
// function per algorithm, each dispatching on the policy tag's identity
// to a sequential or parallel implementation built from package
// pattern's combinators. Every algorithm honors the empty-range rule: if
// first == last, it returns the algorithm-appropriate identity without
// consulting any locality or the fabric at all.
package algo

import "runtime"

// localChunks returns how many pieces pattern.LocalMap/LocalMapVoid
// should split a locality's local range into: one, for the sequential
// policy (single-threaded within a locality), or up to NumCPU for the
// parallel policy (thread-parallel within a locality), per §4.4's "local
// level is policy-free and implementation-chosen" note.
func localChunks(parallel bool) int {
	if !parallel {
		return 1
	}
	return runtime.NumCPU()
}

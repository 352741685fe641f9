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

// Package fabric declares the remote-execution fabric contract (C3):
// the only primitives the core consumes from whatever actually ships a
// kernel to a locality and runs it there. The core never implements this
// interface -- it is provided externally (see fabric/localfab for an
// in-process reference implementation used by tests and the demo).
package fabric

import (
	"context"

	"github.com/shad-go/shad/diter"
)

// Kernel is a unit of work shipped to and invoked on a single locality.
// A kernel reports failure through its error return; it communicates a
// result by writing into state its caller captured by reference -- a
// caller-owned output slot, expressed as a Go closure instead of an
// untyped pointer plus a separately-passed argument tuple. A production
// fabric that actually crosses machine boundaries requires everything a
// kernel closes over to be transportable to the target locality; this
// in-process core places no further constraint on it.
type Kernel func(ctx context.Context) error

// Fabric is the external interface the core consumes to ship and run
// kernels. ExecuteAt is synchronous: it blocks until kernel has returned.
// AsyncExecuteAt is non-blocking: kernel is guaranteed to have completed
// before h.Wait returns, and not before.
type Fabric interface {
	ExecuteAt(ctx context.Context, loc diter.Locality, kernel Kernel) error
	AsyncExecuteAt(ctx context.Context, h *Handle, loc diter.Locality, kernel Kernel)
}

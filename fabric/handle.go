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

package fabric

import (
	"sync"
)

// Handle groups a batch of asynchronous kernel submissions so they can
// be awaited once. It is the sole synchronization object of a
// parallel-policy call: each submission writes only to its own output
// slot, so Handle itself only needs to track completion and the first
// error, not arbitrate any shared data. Any Fabric implementation may
// embed or wrap Handle; the zero value is ready to use.
type Handle struct {
	wg  sync.WaitGroup
	mu  sync.Mutex
	err error
}

// NewHandle returns a Handle ready to track a fresh batch of
// submissions.
func NewHandle() *Handle {
	return &Handle{}
}

// Add registers n outstanding submissions against the handle. Fabric
// implementations call this before spawning the work that will
// eventually call Done.
func (h *Handle) Add(n int) {
	h.wg.Add(n)
}

// Done marks one submission complete. Must be called exactly once per
// Add(1).
func (h *Handle) Done() {
	h.wg.Done()
}

// Fail records err as the batch's failure, keeping only the first one
// observed -- later kernels still run to completion, matching the
// "parallel-mode algorithms have no early termination" contract.
func (h *Handle) Fail(err error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	if h.err == nil {
		h.err = err
	}
	h.mu.Unlock()
}

// Wait blocks until every submission attached to h has completed, then
// returns the first error observed, if any.
func (h *Handle) Wait() error {
	h.wg.Wait()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

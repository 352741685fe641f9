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

package localfab

import "runtime"

// Pool is a fixed-size goroutine work queue. Closing it cleans up the
// goroutines. It is the reference fabric's stand-in for whatever
// actually multiplexes kernels onto a locality's executor.
type Pool struct {
	tasks chan func()
}

// NewPool starts a pool of workers goroutines. workers <= 0 defaults to
// runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{tasks: make(chan func(), workers)}
	for i := 0; i < workers; i++ {
		go func() {
			for f := range p.tasks {
				f()
			}
		}()
	}
	return p
}

// Submit enqueues f to run on one of the pool's worker goroutines.
func (p *Pool) Submit(f func()) {
	p.tasks <- f
}

// Close shuts the pool down. Submit must not be called after Close.
func (p *Pool) Close() {
	close(p.tasks)
}

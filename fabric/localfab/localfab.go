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

// Package localfab is an in-process reference implementation of the
// fabric.Fabric contract, built on a goroutine pool. It exists so the
// core algorithms and the demo can run against a real fabric without a
// cluster; a deployment that actually spans machines would implement
// fabric.Fabric with an RPC client instead, leaving every other package
// in this module unchanged.
package localfab

import (
	"context"
	"fmt"

	"github.com/shad-go/shad/diter"
	"github.com/shad-go/shad/fabric"
)

// Fabric runs kernels on a shared goroutine Pool. Sequential-policy
// calls (fabric.Fabric.ExecuteAt) run directly on the caller's
// goroutine -- matching "sequential mode executes one locality at a
// time on the coordinator's thread" -- while parallel-policy calls
// (AsyncExecuteAt) are handed to the Pool.
type Fabric struct {
	pool *Pool
}

var _ fabric.Fabric = (*Fabric)(nil)

// New wraps pool as a fabric.Fabric. Callers typically share one Pool
// across many algorithm calls to reuse its goroutines.
func New(pool *Pool) *Fabric {
	return &Fabric{pool: pool}
}

// ExecuteAt implements fabric.Fabric. It blocks until kernel returns.
func (f *Fabric) ExecuteAt(ctx context.Context, loc diter.Locality, kernel fabric.Kernel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := ship(loc); err != nil {
		return fmt.Errorf("locality %s: %w", loc, err)
	}
	return kernel(ctx)
}

// AsyncExecuteAt implements fabric.Fabric. kernel runs on a pool
// goroutine; h.Wait observes its completion and, if it failed, its
// error.
func (f *Fabric) AsyncExecuteAt(ctx context.Context, h *fabric.Handle, loc diter.Locality, kernel fabric.Kernel) {
	h.Add(1)
	f.pool.Submit(func() {
		defer h.Done()
		if err := ctx.Err(); err != nil {
			h.Fail(err)
			return
		}
		if _, err := ship(loc); err != nil {
			h.Fail(fmt.Errorf("locality %s: %w", loc, err))
			return
		}
		if err := kernel(ctx); err != nil {
			h.Fail(fmt.Errorf("locality %s: %w", loc, err))
		}
	})
}

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

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shad-go/shad/diter"
	"github.com/shad-go/shad/fabric"
)

func TestExecuteAtRunsSynchronously(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	fb := New(pool)

	ran := false
	err := fb.ExecuteAt(context.Background(), diter.Locality{Index: 0}, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("ExecuteAt() error = %v", err)
	}
	if !ran {
		t.Fatalf("kernel did not run before ExecuteAt returned")
	}
}

func TestExecuteAtPropagatesKernelError(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()
	fb := New(pool)

	want := errors.New("boom")
	err := fb.ExecuteAt(context.Background(), diter.Locality{Index: 0}, func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("ExecuteAt() error = %v, want wrapping %v", err, want)
	}
}

func TestAsyncExecuteAtRunsAllAndReportsOnlyFirstError(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()
	fb := New(pool)

	var ran int32
	h := fabric.NewHandle()
	firstErr := errors.New("locality 1 failed")
	for i := 0; i < 4; i++ {
		i := i
		fb.AsyncExecuteAt(context.Background(), h, diter.Locality{Index: i}, func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			if i == 1 {
				return firstErr
			}
			return nil
		})
	}
	err := h.Wait()
	if !errors.Is(err, firstErr) {
		t.Fatalf("Wait() error = %v, want wrapping %v", err, firstErr)
	}
	if got := atomic.LoadInt32(&ran); got != 4 {
		t.Fatalf("ran = %d kernels, want all 4 to run despite one failing", got)
	}
}

var _ fabric.Fabric = (*Fabric)(nil)

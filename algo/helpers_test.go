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
	"testing"

	"github.com/shad-go/shad/dvector"
	"github.com/shad-go/shad/fabric"
	"github.com/shad-go/shad/fabric/localfab"
)

// newFabric returns a fresh reference fabric for a test, backed by a
// pool of workers goroutines.
func newFabric(t *testing.T, workers int) fabric.Fabric {
	t.Helper()
	pool := localfab.NewPool(workers)
	t.Cleanup(pool.Close)
	return localfab.New(pool)
}

// fourLocalityVector partitions values across exactly 4 localities,
// reproducing the "4 localities, 4 elements each" layout every
// scenario in the binding test table is stated against.
func fourLocalityVector(values []int) *dvector.Vector[int] {
	return dvector.New(values, 4)
}

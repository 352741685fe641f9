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

// Package config declares a cluster topology that a reference fabric or
// container can be built from, loadable from a YAML document so a demo
// or test suite can describe a locality layout declaratively instead of
// hardcoding it.
package config

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// LocalityConfig is one entry in a Topology's locality list.
type LocalityConfig struct {
	// Name labels the locality; if empty, the locality's index is used
	// wherever a display name is required.
	Name string `json:"name,omitempty"`
	// Weight, if non-zero, biases how a reference container should
	// divide elements toward this locality relative to its siblings.
	// A zero weight for every locality means "divide evenly."
	Weight int `json:"weight,omitempty"`
}

// Topology describes the localities a reference container or fabric
// should be built over.
type Topology struct {
	// Localities lists the cluster's localities in index order. It must
	// be non-empty.
	Localities []LocalityConfig `json:"localities"`
}

// NumLocalities returns len(t.Localities).
func (t *Topology) NumLocalities() int { return len(t.Localities) }

// Validate reports an error if t has no localities or any locality has
// a negative weight.
func (t *Topology) Validate() error {
	if len(t.Localities) == 0 {
		return fmt.Errorf("topology: no localities configured")
	}
	for i, loc := range t.Localities {
		if loc.Weight < 0 {
			return fmt.Errorf("topology: locality %d (%q) has negative weight %d", i, loc.Name, loc.Weight)
		}
	}
	return nil
}

// DecodeTopology decodes a YAML cluster topology document from src.
func DecodeTopology(src io.Reader) (*Topology, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	t := new(Topology)
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("decoding topology: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Names returns the locality names in index order, substituting a
// positional placeholder ("locality[i]") for any entry with no Name.
func (t *Topology) Names() []string {
	names := make([]string, len(t.Localities))
	for i, loc := range t.Localities {
		if loc.Name != "" {
			names[i] = loc.Name
		} else {
			names[i] = fmt.Sprintf("locality[%d]", i)
		}
	}
	return names
}

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
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/shad-go/shad/diter"
)

// envelope is the header the reference fabric ships alongside every
// kernel submission. A real cross-machine fabric would serialize the
// kernel itself this way; since localfab never leaves the process, the
// kernel stays a live closure and only this bookkeeping header actually
// takes the encode/compress/decode round trip -- enough to exercise the
// transport contract described in the kernel-shipping design note
// without requiring kernels to be gob-encodable.
type envelope struct {
	SubmissionID  uuid.UUID
	LocalityIndex int
	LocalityName  string
}

func newEnvelope(loc diter.Locality) envelope {
	return envelope{
		SubmissionID:  uuid.New(),
		LocalityIndex: loc.Index,
		LocalityName:  loc.Name,
	}
}

func (e envelope) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("new zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

func decodeEnvelope(compressed []byte) (envelope, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return envelope{}, fmt.Errorf("new zstd reader: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	var e envelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&e); err != nil {
		return envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}

// ship round-trips loc's envelope through the encode/compress/decode
// path and reports an error if anything was lost along the way. It is
// the reference fabric's only concession to the "kernels must be
// serializable" contract -- real fabrics would ship the kernel's
// captured state the same way.
func ship(loc diter.Locality) (envelope, error) {
	e := newEnvelope(loc)
	wire, err := e.encode()
	if err != nil {
		return envelope{}, err
	}
	got, err := decodeEnvelope(wire)
	if err != nil {
		return envelope{}, err
	}
	if got.LocalityIndex != loc.Index {
		return envelope{}, fmt.Errorf("transport corrupted locality index: sent %d, received %d", loc.Index, got.LocalityIndex)
	}
	return got, nil
}

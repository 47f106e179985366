// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package capture reads and writes capture files: recorded command
// buffers together with the shared memory regions they reference.
//
// A capture file is a magic string followed by one protobuf wire-format
// Capture message:
//
//	Capture { 1: string name; 2: repeated Region regions; 3: repeated Submit submits }
//	Region  { 1: int32 id; 2: bytes data }
//	Submit  { 1: packed fixed32 words }
package capture

import (
	"bytes"
	"io"

	"github.com/google/gpucmd/core/fault"
	"github.com/google/gpucmd/memory"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Magic starts every capture file.
const Magic = "gpucmd-capture\x00\x01"

const (
	// ErrBadMagic is returned when a file does not start with Magic.
	ErrBadMagic = fault.Const("Not a capture file")
	// ErrMalformed is returned when the message cannot be parsed.
	ErrMalformed = fault.Const("Malformed capture")
)

const (
	fieldName    protowire.Number = 1
	fieldRegions protowire.Number = 2
	fieldSubmits protowire.Number = 3

	fieldRegionID   protowire.Number = 1
	fieldRegionData protowire.Number = 2

	fieldSubmitWords protowire.Number = 1
)

// Region is a shared memory region.
type Region struct {
	ID   int32
	Data []byte
}

// Capture is a recorded command stream.
type Capture struct {
	Name    string
	Regions []Region
	// Submits holds the command buffers in submission order.
	Submits [][]uint32
}

// Register registers every region of c with m.
func (c *Capture) Register(m *memory.Manager) error {
	for _, r := range c.Regions {
		if err := m.Register(r.ID, append([]byte(nil), r.Data...)); err != nil {
			return errors.Wrapf(err, "Registering capture %v", c.Name)
		}
	}
	return nil
}

// Encode returns c in the capture file format.
func (c *Capture) Encode() []byte {
	b := []byte(Magic)
	if c.Name != "" {
		b = protowire.AppendTag(b, fieldName, protowire.BytesType)
		b = protowire.AppendString(b, c.Name)
	}
	for _, r := range c.Regions {
		var m []byte
		m = protowire.AppendTag(m, fieldRegionID, protowire.VarintType)
		m = protowire.AppendVarint(m, uint64(uint32(r.ID)))
		m = protowire.AppendTag(m, fieldRegionData, protowire.BytesType)
		m = protowire.AppendBytes(m, r.Data)
		b = protowire.AppendTag(b, fieldRegions, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	for _, words := range c.Submits {
		var packed []byte
		for _, w := range words {
			packed = protowire.AppendFixed32(packed, w)
		}
		var m []byte
		m = protowire.AppendTag(m, fieldSubmitWords, protowire.BytesType)
		m = protowire.AppendBytes(m, packed)
		b = protowire.AppendTag(b, fieldSubmits, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	return b
}

// Write writes c to w.
func Write(w io.Writer, c *Capture) error {
	_, err := w.Write(c.Encode())
	return errors.Wrap(err, "Writing capture")
}

// Read reads a whole capture from r.
func Read(r io.Reader) (*Capture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Reading capture")
	}
	return Decode(data)
}

// Decode parses a capture file.
func Decode(data []byte) (*Capture, error) {
	if !bytes.HasPrefix(data, []byte(Magic)) {
		return nil, ErrBadMagic
	}
	c := &Capture{}
	err := walk(data[len(Magic):], func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		switch {
		case num == fieldName && typ == protowire.BytesType:
			c.Name = string(v)
		case num == fieldRegions && typ == protowire.BytesType:
			r, err := decodeRegion(v)
			if err != nil {
				return err
			}
			c.Regions = append(c.Regions, r)
		case num == fieldSubmits && typ == protowire.BytesType:
			words, err := decodeSubmit(v)
			if err != nil {
				return err
			}
			c.Submits = append(c.Submits, words)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func decodeRegion(data []byte) (Region, error) {
	r := Region{}
	err := walk(data, func(num protowire.Number, typ protowire.Type, v []byte, n uint64) error {
		switch {
		case num == fieldRegionID && typ == protowire.VarintType:
			r.ID = int32(uint32(n))
		case num == fieldRegionData && typ == protowire.BytesType:
			r.Data = append([]byte(nil), v...)
		}
		return nil
	})
	return r, err
}

func decodeSubmit(data []byte) ([]uint32, error) {
	words := []uint32{}
	err := walk(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != fieldSubmitWords || typ != protowire.BytesType {
			return nil
		}
		for len(v) > 0 {
			w, n := protowire.ConsumeFixed32(v)
			if n < 0 {
				return errors.Wrap(ErrMalformed, "Truncated submit")
			}
			words = append(words, w)
			v = v[n:]
		}
		return nil
	})
	return words, err
}

// walk calls fn for every field of the message in data. v holds the
// payload of bytes fields, n the value of varint fields. Unknown wire
// types are skipped.
func walk(data []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, n uint64) error) error {
	for len(data) > 0 {
		num, typ, l := protowire.ConsumeTag(data)
		if l < 0 {
			return errors.Wrap(ErrMalformed, protowire.ParseError(l).Error())
		}
		data = data[l:]
		var v []byte
		var n uint64
		switch typ {
		case protowire.BytesType:
			v, l = protowire.ConsumeBytes(data)
		case protowire.VarintType:
			n, l = protowire.ConsumeVarint(data)
		default:
			l = protowire.ConsumeFieldValue(num, typ, data)
		}
		if l < 0 {
			return errors.Wrap(ErrMalformed, protowire.ParseError(l).Error())
		}
		data = data[l:]
		if err := fn(num, typ, v, n); err != nil {
			return err
		}
	}
	return nil
}

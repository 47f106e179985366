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

// Package cmdbuf holds the wire format shared by every command buffer
// decoder: the record header, the structural error codes, argument arity
// flags, the buffer builder and the common infrastructure commands.
package cmdbuf

import "fmt"

const (
	// SizeBits is the number of header bits holding the record size.
	SizeBits = 21
	// MaxSize is the largest record size, in words, a header can express.
	MaxSize = 1<<SizeBits - 1
	// MaxCommandID is the largest command id a header can express.
	MaxCommandID = 1<<(32-SizeBits) - 1
	// WordSize is the size in bytes of one argument word.
	WordSize = 4
)

// Header is the first word of every command record. It packs the record
// size in words (including the header itself) into the low bits and the
// command id into the high bits.
type Header uint32

// MakeHeader packs a command id and a size in words into a Header.
func MakeHeader(id uint32, size uint32) Header {
	if id > MaxCommandID {
		panic(fmt.Errorf("command id exceeds %d bits (0x%x)", 32-SizeBits, id))
	}
	if size > MaxSize {
		panic(fmt.Errorf("size exceeds %d bits (0x%x)", SizeBits, size))
	}
	return Header(id<<SizeBits | size)
}

// Size returns the size of the record in words, including the header.
func (h Header) Size() uint32 { return uint32(h) & MaxSize }

// Command returns the command id of the record.
func (h Header) Command() uint32 { return uint32(h) >> SizeBits }

func (h Header) String() string {
	return fmt.Sprintf("Header(cmd: %d, size: %d)", h.Command(), h.Size())
}

// ArgFlags describes how the argument count of a record is checked.
type ArgFlags uint8

const (
	// Fixed requires the record to carry exactly the declared argument count.
	Fixed ArgFlags = iota
	// AtLeastN requires at least the declared argument count; the extra
	// words are immediate data.
	AtLeastN
)

func (f ArgFlags) String() string {
	switch f {
	case Fixed:
		return "Fixed"
	case AtLeastN:
		return "AtLeastN"
	default:
		return fmt.Sprintf("ArgFlags(%d)", f)
	}
}

// Check returns true if a record carrying argCount argument words is valid
// for an entry declaring expected arguments.
func (f ArgFlags) Check(argCount, expected uint32) bool {
	if f == Fixed {
		return argCount == expected
	}
	return argCount >= expected
}

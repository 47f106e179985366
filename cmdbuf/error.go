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

package cmdbuf

import "fmt"

// Error is a structural result code returned by a decoder to its scheduler.
// It is not a Go error: semantic GL errors travel separately, through the
// decoder's error state.
type Error uint32

const (
	NoError Error = iota
	InvalidSize
	OutOfBounds
	UnknownCommand
	InvalidArguments
	LostContext
	InternalFailure
	// DeferCommandUntilLater asks the scheduler to retry the same record
	// later without advancing past it.
	DeferCommandUntilLater
)

// IsError returns true for every code except NoError and
// DeferCommandUntilLater.
func (e Error) IsError() bool {
	return e != NoError && e != DeferCommandUntilLater
}

func (e Error) String() string {
	switch e {
	case NoError:
		return "NoError"
	case InvalidSize:
		return "InvalidSize"
	case OutOfBounds:
		return "OutOfBounds"
	case UnknownCommand:
		return "UnknownCommand"
	case InvalidArguments:
		return "InvalidArguments"
	case LostContext:
		return "LostContext"
	case InternalFailure:
		return "InternalFailure"
	case DeferCommandUntilLater:
		return "DeferCommandUntilLater"
	default:
		return fmt.Sprintf("Error(%d)", uint32(e))
	}
}

// LostReason classifies why a context was lost.
type LostReason int

const (
	// LostUnknown is used when the cause of the loss could not be determined.
	LostUnknown LostReason = iota
	// LostGuilty means this context caused the reset.
	LostGuilty
	// LostInnocent means another context caused the reset.
	LostInnocent
	// LostOutOfMemory means the context was lost on an allocation failure.
	LostOutOfMemory
	// LostInvalidGPUMessage means the context was lost on a client request.
	LostInvalidGPUMessage
)

func (r LostReason) String() string {
	switch r {
	case LostUnknown:
		return "Unknown"
	case LostGuilty:
		return "Guilty"
	case LostInnocent:
		return "Innocent"
	case LostOutOfMemory:
		return "OutOfMemory"
	case LostInvalidGPUMessage:
		return "InvalidGPUMessage"
	default:
		return fmt.Sprintf("LostReason(%d)", int(r))
	}
}

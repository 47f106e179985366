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

package assert_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	pkgerrors "github.com/pkg/errors"
)

type fakeT struct {
	fatals, errors, logs []string
}

func (f *fakeT) Fatal(args ...interface{}) { f.fatals = append(f.fatals, args[0].(string)) }
func (f *fakeT) Error(args ...interface{}) { f.errors = append(f.errors, args[0].(string)) }
func (f *fakeT) Log(args ...interface{})   { f.logs = append(f.logs, args[0].(string)) }

func TestPassingAssertionsAreSilent(t *testing.T) {
	f := &fakeT{}
	a := assert.To(f)
	a.For("int").ThatInteger(3).Equals(3)
	a.For("bool").ThatBoolean(true).IsTrue()
	a.For("value").That("x").Equals("x")
	a.For("nil").That((*int)(nil)).IsNil()
	a.For("err").ThatError(nil).Succeeded()
	a.For("slice").ThatSlice([]int{1, 2}).Equals([]int{1, 2})
	if len(f.errors)+len(f.fatals)+len(f.logs) != 0 {
		t.Errorf("Unexpected output: %v %v %v", f.errors, f.fatals, f.logs)
	}
}

func TestFailingAssertionsReport(t *testing.T) {
	f := &fakeT{}
	a := assert.To(f)
	a.For("int").ThatInteger(3).Equals(4)
	a.For("slice").ThatSlice([]int{1}).IsLength(2)
	a.For("err").ThatError(errors.New("boom")).Succeeded()
	a.For("critical").Critical().That(1).Equals(2)
	if len(f.errors) != 3 {
		t.Fatalf("Expected 3 errors, got %d: %v", len(f.errors), f.errors)
	}
	if !strings.HasPrefix(f.errors[0], "Error:int") {
		t.Errorf("Unexpected message %q", f.errors[0])
	}
	if len(f.fatals) != 1 {
		t.Errorf("Expected 1 fatal, got %v", f.fatals)
	}
}

func TestErrorCause(t *testing.T) {
	f := &fakeT{}
	a := assert.To(f)
	wrapped := pkgerrors.Wrap(io.EOF, "reading header")
	a.For("wrapped").ThatError(wrapped).HasCause(io.EOF)
	a.For("failed").ThatError(wrapped).Failed()
	if len(f.errors) != 0 {
		t.Fatalf("Unexpected errors %v", f.errors)
	}
	a.For("other cause").ThatError(wrapped).HasCause(io.ErrUnexpectedEOF)
	a.For("nil failed").ThatError(nil).Failed()
	if len(f.errors) != 2 {
		t.Errorf("Expected 2 errors, got %v", f.errors)
	}
}

func TestContextTarget(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "count").ThatInteger(2).Equals(2)
	assert.For(ctx, "flag").ThatBoolean(false).IsFalse()
}

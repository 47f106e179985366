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

package assert

import "github.com/pkg/errors"

// OnBoolean holds a boolean under test.
type OnBoolean struct {
	Assertion
	value bool
}

// ThatBoolean starts a boolean assertion.
func (a Assertion) ThatBoolean(value bool) OnBoolean { return OnBoolean{a, value} }

// Equals checks the boolean against expect.
func (o OnBoolean) Equals(expect bool) bool {
	return o.Compare(o.value, "==", expect).Test(o.value == expect)
}

func (o OnBoolean) IsTrue() bool  { return o.Equals(true) }
func (o OnBoolean) IsFalse() bool { return o.Equals(false) }

// OnInteger holds an int under test. Counts and lengths are compared
// through it.
type OnInteger struct {
	Assertion
	value int
}

// ThatInteger starts an integer assertion.
func (a Assertion) ThatInteger(value int) OnInteger { return OnInteger{a, value} }

func (o OnInteger) Equals(expect int) bool {
	return o.Compare(o.value, "==", expect).Test(o.value == expect)
}

// OnError holds an error under test.
type OnError struct {
	Assertion
	err error
}

// ThatError starts an error assertion.
func (a Assertion) ThatError(err error) OnError { return OnError{a, err} }

// Succeeded checks that err is nil.
func (o OnError) Succeeded() bool {
	return o.CompareRaw(o.err, "", "success").Test(o.err == nil)
}

// Failed checks that err is not nil.
func (o OnError) Failed() bool {
	return o.ExpectRaw("", "failure").Test(o.err != nil)
}

// HasCause checks that the root cause of err, after unwrapping every
// errors.Wrap layer, is expect.
func (o OnError) HasCause(expect error) bool {
	cause := errors.Cause(o.err)
	return o.Got(o.err).Add("Cause", cause).Expect("==", expect).Test(cause == expect)
}

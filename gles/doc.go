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

// Package gles decodes GLES command buffers and executes them against a
// native context.
//
// A Decoder walks buffers of command records, validates each record
// against its dispatch entry and hands it to a handler. Handlers validate
// arguments, translate client ids into native objects through the share
// group, issue the native calls and keep the State mirror current. GL
// errors raised by validation are recorded in the decoder's error sink and
// read back by the client with GetError; structural problems with a record
// are returned as cmdbuf.Error values and stop decoding.
//
// The default framebuffer is either a driver.Surface or, for offscreen
// contexts, a backbuffer owned by the decoder whose front buffer can be
// handed to other decoders through the mailbox registry.
package gles

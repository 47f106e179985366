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

package log

import (
	"bytes"
	"fmt"
	"strings"
)

// Style provides customization for printing messages.
type Style struct {
	Name      string        // Name of the style.
	Timestamp bool          // If true, the timestamp will be printed if part of the message.
	Tag       bool          // If true, the tag will be printed if part of the message.
	Trace     bool          // If true, the trace will be printed if part of the message.
	Severity  SeverityStyle // How the severity of the message will be printed.
	Values    ValueStyle    // How the values of the message will be printed.
}

// SeverityStyle is an enumerator of ways that severities can be printed.
type SeverityStyle int

const (
	// NoSeverity is the option to disable the printing of the severity.
	NoSeverity = SeverityStyle(iota)
	// SeverityShort is the option to display the severity as a single character.
	SeverityShort
	// SeverityLong is the option to display the severity in its full name.
	SeverityLong
)

// ValueStyle is an enumerator of ways that values can be printed.
type ValueStyle int

const (
	// NoValues is the option to disable the printing of values.
	NoValues = ValueStyle(iota)
	// ValuesSingleLine is the option to display all values on a single line.
	ValuesSingleLine
	// ValuesMultiLine is the option to display each value on a separate line.
	ValuesMultiLine
)

var (
	// Raw is a style that only prints the text of the message.
	Raw = Style{Name: "raw"}

	// Brief is a style that only prints the severity and text of the message.
	Brief = Style{
		Name:     "brief",
		Severity: SeverityShort,
	}

	// Normal is a style that prints the timestamp, tag, trace, severity, text
	// and values of the message.
	Normal = Style{
		Name:      "normal",
		Timestamp: true,
		Tag:       true,
		Trace:     true,
		Severity:  SeverityShort,
		Values:    ValuesSingleLine,
	}

	// Detailed is a style that prints the timestamp, tag, trace, severity,
	// text and values of the message, one value per line.
	Detailed = Style{
		Name:      "detailed",
		Timestamp: true,
		Tag:       true,
		Trace:     true,
		Severity:  SeverityLong,
		Values:    ValuesMultiLine,
	}

	// Styles is the list of registered styles, selectable by name.
	Styles = []Style{Raw, Brief, Normal, Detailed}
)

// StyleByName returns the registered style with the given name.
func StyleByName(name string) (Style, bool) {
	for _, s := range Styles {
		if s.Name == name {
			return s, true
		}
	}
	return Style{}, false
}

func (s Style) String() string { return s.Name }

// Print returns the message msg printed with the style s.
func (s Style) Print(msg *Message) string {
	buf := bytes.Buffer{}

	if s.Timestamp && !msg.Time.IsZero() {
		buf.WriteString(msg.Time.Format("15:04:05.000"))
		buf.WriteRune(' ')
	}
	if s.Tag && msg.Tag != "" {
		buf.WriteRune('[')
		buf.WriteString(msg.Tag)
		buf.WriteString("] ")
	}
	if s.Trace && len(msg.Trace) > 0 {
		buf.WriteString(strings.Join(msg.Trace, "->"))
		buf.WriteString(": ")
	}
	switch s.Severity {
	case SeverityShort:
		buf.WriteString(msg.Severity.Short())
		buf.WriteString(": ")
	case SeverityLong:
		buf.WriteString(msg.Severity.String())
		buf.WriteString(": ")
	}

	buf.WriteString(msg.Text)

	if len(msg.Values) > 0 {
		switch s.Values {
		case ValuesSingleLine:
			t := make([]string, len(msg.Values))
			for i, v := range msg.Values {
				t[i] = fmt.Sprintf("%v: %v", v.Name, v.Value)
			}
			fmt.Fprintf(&buf, " (%v)", strings.Join(t, ", "))
		case ValuesMultiLine:
			for _, v := range msg.Values {
				fmt.Fprintf(&buf, "\n  %v: %v", v.Name, v.Value)
			}
		}
	}

	return buf.String()
}

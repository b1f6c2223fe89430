// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
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


// Package formatutil manipulates string colors and other formatting operations.
package formatutil

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Colors of the tools' output. They only apply when standard output is a terminal.
var (
	Bold   = Color("\033[1m%s\033[0m")
	Faint  = Color("\033[2m%s\033[0m")
	Red    = Color("\033[1;31m%s\033[0m")
	Green  = Color("\033[1;32m%s\033[0m")
	Yellow = Color("\033[1;33m%s\033[0m")
	Cyan   = Color("\033[1;36m%s\033[0m")
)

// Color returns a function that formats its arguments with the color format string when standard output is a
// terminal, and without color otherwise.
func Color(colorString string) func(...interface{}) string {
	return func(args ...interface{}) string {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Sprintf(colorString, fmt.Sprint(args...))
		}
		return fmt.Sprint(args...)
	}
}

// Sanitize removes all control characters from the input string, returning a string escaped like a Go string literal
// without its quotes.
func Sanitize(s string) string {
	r := fmt.Sprintf("%q", s)
	if len(r) >= 2 {
		return r[1 : len(r)-1]
	}
	return r
}

// SanitizeRepr calls Sanitize on the string representation of s
func SanitizeRepr(s fmt.Stringer) string {
	return Sanitize(s.String())
}

// Set formats elements as a set, e.g. "{a, b}". The elements are printed in the order given.
func Set(elements []string) string {
	return "{" + strings.Join(elements, ", ") + "}"
}

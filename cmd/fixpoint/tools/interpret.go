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

package tools

import "regexp"

var regexCouldNotLoad = regexp.MustCompile("could not load program")

var namedFilesMustBeGoFiles = regexp.MustCompile("-: named files must be .go files: -(\\w)")

var unknownSolverMode = regexp.MustCompile("unknown solver mode")

var entryNotInGraph = regexp.MustCompile("entry vertex not in graph")

// HintForErrorMessage returns a hint for the user given an error message.
// Returns an empty string if there is no hint.
func HintForErrorMessage(errMsg string) string {
	if regexCouldNotLoad.MatchString(errMsg) {
		if namedFilesMustBeGoFiles.MatchString(errMsg) {
			return "all command line flags should be before the path to the Go files to analyze"
		}
		return "make sure you have provided the right arguments to load a Go program"
	}
	if unknownSolverMode.MatchString(errMsg) {
		return "the solver mode is set with -mode or with solver-mode in the options of the config file"
	}
	if entryNotInGraph.MatchString(errMsg) {
		return "the function has no blocks; only functions with a body can be analyzed"
	}
	return ""
}

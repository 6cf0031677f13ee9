// Copyright 2024 The East Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command east exposes East's codecs and evaluator as a standalone CLI
// (spec §8.1): encoding and decoding values between Beast2 and JSON,
// evaluating a compiled function against a platform manifest, and
// validating a datetime-format token sequence.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main runs the east command and returns its exit code; split out from
// main so tests can drive it via testscript.RunMain without exec'ing a
// separate binary.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

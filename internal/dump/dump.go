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

// Package dump provides human-readable renderings of IR trees and values
// for diagnostics: the CLI's `trace` demo platform function and test
// failure output. It is a thin wrapper over kr/pretty, used by the rest of the
// module the same way cuelang.org/go's own test suites use it for diffing
// structured results.
package dump

import (
	"fmt"

	"github.com/kr/pretty"

	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

// Sprint renders x (an ir.Node, a types.Type, a values.Value, or any other
// Go value reachable from the module) as a multi-line, indented Go-syntax
// dump.
func Sprint(x any) string {
	return fmt.Sprintf("%# v", pretty.Formatter(x))
}

// Diff renders the field-by-field difference between got and want, empty
// when they are equal. Intended for test failure messages, mirroring the
// teacher's own use of pretty.Diff in its codec round-trip tests.
func Diff(got, want any) []string {
	return pretty.Diff(got, want)
}

// Type is a convenience alias over Sprint for a types.Type, spelling it
// via the type's own canonical string rather than its Go struct layout —
// the form a human debugging a type mismatch actually wants to read.
func Type(r *types.Registry, t types.Type) string {
	return r.CanonicalString(t)
}

// Node dumps a single IR node's Go structure, recursing into its
// children. Unlike [Type] there is no canonical textual IR syntax (spec
// has none), so this is the struct dump, not a pretty-printed source
// form.
func Node(n ir.Node) string {
	return Sprint(n)
}

// Value dumps a values.Value's internal Go structure. Because Value
// carries its payload in private fields, this renders the debug string
// values.Value.String already provides rather than walking private state
// via reflection.
func Value(v values.Value) string {
	return v.String()
}

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

package eval

import "github.com/elaraai/east/values"

// Control-flow signals unwind the Go call stack the same way Eval reports
// any other failure, as a distinguished error type Eval's own callers
// (For/Loop, and the function-call boundary in package compile)
// type-switch on and swallow; Block passes them through unchanged. They never reach a caller outside this
// package as an *errors.Error.

type breakSignal struct {
	value values.Value
	has   bool
}

func (breakSignal) Error() string { return "eval: break outside a loop" }

type continueSignal struct{}

func (continueSignal) Error() string { return "eval: continue outside a loop" }

type returnSignal struct {
	value values.Value
}

func (returnSignal) Error() string { return "eval: return outside a function body" }

// ReturnValue recognizes err as the Return signal raised by evaluating an
// *ir.Return node and extracts its carried value. Package compile calls
// this at the function-call boundary, the one place a Return is expected
// rather than an escaping control-flow bug.
func ReturnValue(err error) (values.Value, bool) {
	rs, ok := err.(returnSignal)
	if !ok {
		return values.Value{}, false
	}
	return rs.value, true
}

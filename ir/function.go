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

package ir

import "github.com/elaraai/east/types"

// Param is one declared, ordered input of a Function/AsyncFunction.
type Param struct {
	Name string
	Type types.Type
}

// PlatformRef is a free platform-function reference a compiled function's
// body calls (spec §3.3): a name plus the signature the body expects of
// it, used by the compiler to validate the platform table (spec §4.3) and
// by the codec to know what to re-resolve on decode.
type PlatformRef struct {
	Name   string
	Params []types.Type
	Result types.Type
	Async  bool
}

// Function is the portable representation of a compiled function value
// (spec §3.3): an IR tree, its declared function type, and the ordered,
// de-duplicated list of platform-function references its body depends on.
// Function is what gets encoded under the IR type by the Beast2/JSON
// codecs (spec §4.4) and what package compile turns into a callable.
type Function struct {
	DeclaredType types.Type // Function(...) or AsyncFunction(...)
	Params       []Param
	Body         Node
	Platforms    []PlatformRef // supplied by a builder or decoded with the function; package compile re-derives platform calls from Body
}

// Portable is implemented by compiled callables that retain their source
// IR, letting the Beast2/JSON codecs recover it to re-encode a function
// value (spec §4.4: "Function / AsyncFunction: encoded as its IR tree").
// A values.Function that does not implement Portable (a native host
// closure with no IR behind it) cannot be put on the wire.
type Portable interface {
	IR() *Function
}

// FreeVariables returns the names referenced by VarRef nodes in n that are
// not bound by an enclosing Let/For/Match-arm/function parameter within n
// itself — i.e. the variables n's evaluation context must supply.
func FreeVariables(n Node) []string {
	seen := map[string]bool{}
	var free []string
	var walk func(n Node, bound map[string]bool)
	walk = func(n Node, bound map[string]bool) {
		if n == nil {
			return
		}
		switch x := n.(type) {
		case *VarRef:
			if !bound[x.Name] && !seen[x.Name] {
				seen[x.Name] = true
				free = append(free, x.Name)
			}
		case *Let:
			walk(x.Value, bound)
			inner := copyBound(bound)
			inner[x.Name] = true
			walk(x.Body, inner)
		case *Assign:
			walk(x.Target, bound)
			walk(x.Value, bound)
		case *Block:
			for _, s := range x.Stmts {
				walk(s, bound)
			}
		case *If:
			walk(x.Cond, bound)
			walk(x.Then, bound)
			walk(x.Else, bound)
		case *For:
			walk(x.Iterable, bound)
			inner := copyBound(bound)
			inner[x.Var] = true
			walk(x.Body, inner)
		case *Loop:
			walk(x.Body, bound)
		case *Break:
			walk(x.Value, bound)
		case *Continue:
		case *Return:
			walk(x.Value, bound)
		case *Call:
			walk(x.Callee, bound)
			for _, a := range x.Args {
				walk(a, bound)
			}
		case *PlatformCall:
			for _, a := range x.Args {
				walk(a, bound)
			}
		case *FieldAccess:
			walk(x.Object, bound)
		case *Construct:
			for _, f := range x.Fields {
				walk(f.Value, bound)
			}
		case *VariantConstruct:
			walk(x.Payload, bound)
		case *Match:
			walk(x.Subject, bound)
			for _, arm := range x.Arms {
				inner := bound
				if arm.Bind != "" {
					inner = copyBound(bound)
					inner[arm.Bind] = true
				}
				walk(arm.Body, inner)
			}
		case *BinaryOp:
			walk(x.Left, bound)
			walk(x.Right, bound)
		case *UnaryOp:
			walk(x.Operand, bound)
		case *Literal:
		}
	}
	walk(n, map[string]bool{})
	return free
}

func copyBound(b map[string]bool) map[string]bool {
	c := make(map[string]bool, len(b)+1)
	for k, v := range b {
		c[k] = v
	}
	return c
}

// PlatformCalls returns the set of platform-function names n's body
// invokes via PlatformCall, each reported once, in first-appearance order.
func PlatformCalls(n Node) []string {
	seen := map[string]bool{}
	var names []string
	Walk(n, func(n Node) bool {
		if pc, ok := n.(*PlatformCall); ok {
			if !seen[pc.Name] {
				seen[pc.Name] = true
				names = append(names, pc.Name)
			}
		}
		return true
	})
	return names
}

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

// Walk visits n and every descendant node in evaluation order, calling
// visit on each. If visit returns false for a node, Walk does not
// descend into that node's children (but continues with siblings already
// queued by the caller, mirroring the go/ast.Inspect contract).
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	switch x := n.(type) {
	case *Literal, *VarRef, *Continue:
		// leaves
	case *Let:
		Walk(x.Value, visit)
		Walk(x.Body, visit)
	case *Assign:
		Walk(x.Target, visit)
		Walk(x.Value, visit)
	case *Block:
		for _, s := range x.Stmts {
			Walk(s, visit)
		}
	case *If:
		Walk(x.Cond, visit)
		Walk(x.Then, visit)
		Walk(x.Else, visit)
	case *For:
		Walk(x.Iterable, visit)
		Walk(x.Body, visit)
	case *Loop:
		Walk(x.Body, visit)
	case *Break:
		Walk(x.Value, visit)
	case *Return:
		Walk(x.Value, visit)
	case *Call:
		Walk(x.Callee, visit)
		for _, a := range x.Args {
			Walk(a, visit)
		}
	case *PlatformCall:
		for _, a := range x.Args {
			Walk(a, visit)
		}
	case *FieldAccess:
		Walk(x.Object, visit)
	case *Construct:
		for _, f := range x.Fields {
			Walk(f.Value, visit)
		}
	case *VariantConstruct:
		Walk(x.Payload, visit)
	case *Match:
		Walk(x.Subject, visit)
		for _, arm := range x.Arms {
			Walk(arm.Body, visit)
		}
	case *BinaryOp:
		Walk(x.Left, visit)
		Walk(x.Right, visit)
	case *UnaryOp:
		Walk(x.Operand, visit)
	}
}

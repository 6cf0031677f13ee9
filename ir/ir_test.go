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

package ir_test

import (
	"sort"
	"testing"

	"github.com/go-quicktest/qt"

	. "github.com/elaraai/east/ir"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

func TestFreeVariablesExcludesLetBound(t *testing.T) {
	// let x = y in x + z
	body := NewBinaryOp(token.NoPos, types.IntegerType(), OpAdd,
		NewVarRef(token.NoPos, types.IntegerType(), "x"),
		NewVarRef(token.NoPos, types.IntegerType(), "z"),
	)
	let := NewLet(token.NoPos, types.IntegerType(), "x",
		NewVarRef(token.NoPos, types.IntegerType(), "y"),
		body,
	)
	free := FreeVariables(let)
	sort.Strings(free)
	qt.Assert(t, qt.DeepEquals(free, []string{"y", "z"}))
}

func TestFreeVariablesForBindsLoopVar(t *testing.T) {
	n := NewFor(token.NoPos, types.NullType(), "i",
		NewVarRef(token.NoPos, types.ArrayType(types.IntegerType()), "items"),
		NewVarRef(token.NoPos, types.IntegerType(), "i"),
	)
	free := FreeVariables(n)
	qt.Assert(t, qt.DeepEquals(free, []string{"items"}))
}

func TestFreeVariablesMatchArmBindsPayload(t *testing.T) {
	m := NewMatch(token.NoPos, types.IntegerType(),
		NewVarRef(token.NoPos, types.VariantType(types.Tag{Name: "ok", Type: types.IntegerType()}), "v"),
		[]MatchArm{
			{Tag: "ok", Bind: "payload", Body: NewVarRef(token.NoPos, types.IntegerType(), "payload")},
		},
	)
	free := FreeVariables(m)
	qt.Assert(t, qt.DeepEquals(free, []string{"v"}))
}

func TestPlatformCallsDeduplicatesInOrder(t *testing.T) {
	n := NewBinaryOp(token.NoPos, types.IntegerType(), OpAdd,
		NewPlatformCall(token.NoPos, types.IntegerType(), "double", []Node{
			NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(1)),
		}),
		NewPlatformCall(token.NoPos, types.IntegerType(), "double", []Node{
			NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(2)),
		}),
	)
	names := PlatformCalls(n)
	qt.Assert(t, qt.DeepEquals(names, []string{"double"}))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	n := NewIf(token.NoPos, types.IntegerType(),
		NewLiteral(token.NoPos, types.BooleanType(), values.Boolean(true)),
		NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(1)),
		NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(2)),
	)
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	qt.Assert(t, qt.Equals(count, 4)) // If + cond + then + else
}

func TestWalkStopsOnFalse(t *testing.T) {
	n := NewBlock(token.NoPos, types.NullType(), []Node{
		NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(1)),
		NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(2)),
	})
	count := 0
	Walk(n, func(Node) bool {
		count++
		return false
	})
	qt.Assert(t, qt.Equals(count, 1))
}

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

package eval_test

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	. "github.com/elaraai/east/eval"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

func intLit(n int64) *ir.Literal {
	return ir.NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(n))
}

func TestEvalIntegerArithmetic(t *testing.T) {
	n := ir.NewBinaryOp(token.NoPos, types.IntegerType(), ir.OpMul,
		ir.NewBinaryOp(token.NoPos, types.IntegerType(), ir.OpAdd, intLit(2), intLit(3)),
		intLit(4),
	)
	v, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(20)))
}

func TestEvalFloatNaNComparesEqual(t *testing.T) {
	nan := ir.NewLiteral(token.NoPos, types.FloatType(), values.Float(math.NaN()))
	eq := ir.NewBinaryOp(token.NoPos, types.BooleanType(), ir.OpEq, nan, nan)
	v, err := Eval(eq, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(v.Bool()))
}

func TestEvalIfBranches(t *testing.T) {
	n := ir.NewIf(token.NoPos, types.IntegerType(),
		ir.NewLiteral(token.NoPos, types.BooleanType(), values.Boolean(false)),
		intLit(1), intLit(2),
	)
	v, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(2)))
}

func TestEvalForResultIsLastBodyValue(t *testing.T) {
	arr := values.ArrayValue(values.NewArray(
		values.IntegerFromInt64(1), values.IntegerFromInt64(2), values.IntegerFromInt64(3),
	))
	forNode := ir.NewFor(token.NoPos, types.IntegerType(), "item",
		ir.NewLiteral(token.NoPos, types.ArrayType(types.IntegerType()), arr),
		ir.NewVarRef(token.NoPos, types.IntegerType(), "item"),
	)
	v, err := Eval(forNode, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(3)))
}

func TestEvalAssignThroughRef(t *testing.T) {
	env := NewEnv()
	env.Bind("acc", values.RefValue(values.NewRef(values.IntegerFromInt64(0))))
	n := ir.NewAssign(token.NoPos, types.NullType(),
		ir.NewVarRef(token.NoPos, types.RefType(types.IntegerType()), "acc"),
		intLit(9),
	)
	_, err := Eval(n, env, nil)
	qt.Assert(t, qt.IsNil(err))
	ref, _ := env.Get("acc")
	got, _ := ref.RefCell().Get().Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(9)))
}

func TestEvalForBreakWithValue(t *testing.T) {
	arr := values.ArrayValue(values.NewArray(
		values.IntegerFromInt64(1), values.IntegerFromInt64(2), values.IntegerFromInt64(3),
	))
	n := ir.NewFor(token.NoPos, types.IntegerType(), "item",
		ir.NewLiteral(token.NoPos, types.ArrayType(types.IntegerType()), arr),
		ir.NewBreak(token.NoPos, types.IntegerType(),
			ir.NewVarRef(token.NoPos, types.IntegerType(), "item"),
		),
	)
	v, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(1)))
}

func TestEvalLoopBreakEscapes(t *testing.T) {
	n := ir.NewLoop(token.NoPos, types.IntegerType(),
		ir.NewBreak(token.NoPos, types.IntegerType(), intLit(7)),
	)
	v, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(7)))
}

func TestEvalReturnSurfacesAsSignal(t *testing.T) {
	n := ir.NewReturn(token.NoPos, types.IntegerType(), intLit(5))
	_, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNotNil(err))
	v, ok := ReturnValue(err)
	qt.Assert(t, qt.IsTrue(ok))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(5)))
}

func TestEvalMatchDispatchesByTag(t *testing.T) {
	vt := types.VariantType(
		types.Tag{Name: "ok", Type: types.IntegerType()},
		types.Tag{Name: "err", Type: types.StringType()},
	)
	subj := ir.NewLiteral(token.NoPos, vt, values.VariantValue(values.NewVariant("ok", values.IntegerFromInt64(9))))
	n := ir.NewMatch(token.NoPos, types.IntegerType(), subj, []ir.MatchArm{
		{Tag: "ok", Bind: "x", Body: ir.NewVarRef(token.NoPos, types.IntegerType(), "x")},
		{Tag: "err", Bind: "e", Body: intLit(-1)},
	})
	v, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(9)))
}

func TestEvalMatchUnknownTagWithoutWildcardFails(t *testing.T) {
	vt := types.VariantType(types.Tag{Name: "ok", Type: types.IntegerType()})
	subj := ir.NewLiteral(token.NoPos, vt, values.VariantValue(values.NewVariant("ok", values.IntegerFromInt64(1))))
	n := ir.NewMatch(token.NoPos, types.IntegerType(), subj, []ir.MatchArm{
		{Tag: "something-else", Body: intLit(0)},
	})
	_, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestEvalFieldAccess(t *testing.T) {
	s, err := values.NewStruct([]string{"x", "y"}, []values.Value{values.IntegerFromInt64(1), values.IntegerFromInt64(2)})
	qt.Assert(t, qt.IsNil(err))
	st := types.StructType(types.Field{Name: "x", Type: types.IntegerType()}, types.Field{Name: "y", Type: types.IntegerType()})
	lit := ir.NewLiteral(token.NoPos, st, values.StructValue(s))
	n := ir.NewFieldAccess(token.NoPos, types.IntegerType(), lit, "y")
	v, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(2)))
}

func TestEvalLenOverContainers(t *testing.T) {
	arr := values.ArrayValue(values.NewArray(values.IntegerFromInt64(1), values.IntegerFromInt64(2)))
	lit := ir.NewLiteral(token.NoPos, types.ArrayType(types.IntegerType()), arr)
	n := ir.NewUnaryOp(token.NoPos, types.IntegerType(), ir.OpLen, lit)
	v, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNil(err))
	got, _ := v.Int().Int64()
	qt.Assert(t, qt.Equals(got, int64(2)))
}

func TestEvalUnboundVariableFails(t *testing.T) {
	n := ir.NewVarRef(token.NoPos, types.IntegerType(), "nope")
	_, err := Eval(n, NewEnv(), nil)
	qt.Assert(t, qt.IsNotNil(err))
}

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

package beast2_test

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	. "github.com/elaraai/east/codec/beast2"
	"github.com/elaraai/east/compile"
	"github.com/elaraai/east/internal/dump"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

func roundTrip(t *testing.T, typ types.Type, v values.Value, table *platform.Table) values.Value {
	t.Helper()
	data, err := Encode(typ, v)
	qt.Assert(t, qt.IsNil(err))
	got, err := Decode(typ, data, table)
	qt.Assert(t, qt.IsNil(err))
	if !values.Equal(typ, v, got) {
		t.Logf("round trip changed the value:\n%v", dump.Diff(got, v))
	}
	return got
}

func TestRoundTripScalars(t *testing.T) {
	cases := []struct {
		name string
		typ  types.Type
		val  values.Value
	}{
		{"null", types.NullType(), values.Null()},
		{"boolean", types.BooleanType(), values.Boolean(true)},
		{"integer", types.IntegerType(), values.IntegerFromInt64(-123456789)},
		{"float", types.FloatType(), values.Float(3.5)},
		{"float-nan", types.FloatType(), values.Float(math.NaN())},
		{"float-inf", types.FloatType(), values.Float(math.Inf(-1))},
		{"string", types.StringType(), values.String("héllo wörld")},
		{"datetime", types.DateTimeType(), values.DateTime(1700000000000)},
		{"blob", types.BlobType(), values.Blob([]byte{0, 1, 2, 255})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := roundTrip(t, c.typ, c.val, nil)
			qt.Assert(t, qt.IsTrue(values.Equal(c.typ, c.val, got)))
		})
	}
}

func TestRoundTripArray(t *testing.T) {
	typ := types.ArrayType(types.IntegerType())
	v := values.ArrayValue(values.NewArray(values.IntegerFromInt64(1), values.IntegerFromInt64(2), values.IntegerFromInt64(3)))
	got := roundTrip(t, typ, v, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(typ, v, got)))
}

func TestRoundTripSet(t *testing.T) {
	typ := types.SetType(types.IntegerType())
	s := values.NewOrderedSet(types.IntegerType())
	for _, n := range []int64{3, 1, 2} {
		qt.Assert(t, qt.IsNil(s.Add(values.IntegerFromInt64(n))))
	}
	v := values.SetValue(s)
	got := roundTrip(t, typ, v, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(typ, v, got)))
}

func TestRoundTripDict(t *testing.T) {
	typ := types.DictType(types.StringType(), types.IntegerType())
	d := values.NewOrderedDict(types.StringType(), types.IntegerType())
	qt.Assert(t, qt.IsNil(d.Set(values.String("b"), values.IntegerFromInt64(2))))
	qt.Assert(t, qt.IsNil(d.Set(values.String("a"), values.IntegerFromInt64(1))))
	v := values.DictValue(d)
	got := roundTrip(t, typ, v, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(typ, v, got)))
}

func TestRoundTripStruct(t *testing.T) {
	typ := types.StructType(types.Field{Name: "x", Type: types.IntegerType()}, types.Field{Name: "s", Type: types.StringType()})
	s, err := values.NewStruct([]string{"x", "s"}, []values.Value{values.IntegerFromInt64(7), values.String("hi")})
	qt.Assert(t, qt.IsNil(err))
	v := values.StructValue(s)
	got := roundTrip(t, typ, v, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(typ, v, got)))
}

func TestRoundTripVariant(t *testing.T) {
	typ := types.VariantType(types.Tag{Name: "ok", Type: types.IntegerType()}, types.Tag{Name: "err", Type: types.StringType()})
	v := values.VariantValue(values.NewVariant("err", values.String("boom")))
	got := roundTrip(t, typ, v, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(typ, v, got)))
}

func TestRoundTripRecursive(t *testing.T) {
	listT := types.RecursiveType("T", types.VariantType(
		types.Tag{Name: "nil", Type: types.NullType()},
		types.Tag{Name: "cons", Type: types.StructType(
			types.Field{Name: "head", Type: types.IntegerType()},
			types.Field{Name: "tail", Type: types.RecursiveVarType("T")},
		)},
	))
	innerNil := values.VariantValue(values.NewVariant("nil", values.Null()))
	consStruct, err := values.NewStruct([]string{"head", "tail"}, []values.Value{values.IntegerFromInt64(1), innerNil})
	qt.Assert(t, qt.IsNil(err))
	v := values.VariantValue(values.NewVariant("cons", values.StructValue(consStruct)))

	got := roundTrip(t, listT, v, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(listT, v, got)))
}

func TestRoundTripFunctionRecompilesAgainstTable(t *testing.T) {
	table := platform.NewTable()
	err := table.Register("double", platform.Signature{
		Params: []types.Type{types.IntegerType()},
		Result: types.IntegerType(),
	}, platform.ImplFunc(func(args []values.Value) (values.Value, error) {
		n, _ := args[0].Int().Int64()
		return values.IntegerFromInt64(n * 2), nil
	}))
	qt.Assert(t, qt.IsNil(err))

	fnType := types.FunctionType(types.IntegerType(), nil, types.IntegerType())
	fn := &ir.Function{
		DeclaredType: fnType,
		Params:       []ir.Param{{Name: "x", Type: types.IntegerType()}},
		Body: ir.NewPlatformCall(token.NoPos, types.IntegerType(), "double", []ir.Node{
			ir.NewVarRef(token.NoPos, types.IntegerType(), "x"),
		}),
	}
	prog, err := compile.Compile(fn, table)
	qt.Assert(t, qt.IsNil(err))

	v := values.FunctionValue(prog)
	data, err := Encode(fnType, v)
	qt.Assert(t, qt.IsNil(err))

	decoded, err := Decode(fnType, data, table)
	qt.Assert(t, qt.IsNil(err))

	result, err := decoded.FunctionVal().Call([]values.Value{values.IntegerFromInt64(21)})
	qt.Assert(t, qt.IsNil(err))
	n, _ := result.Int().Int64()
	qt.Assert(t, qt.Equals(n, int64(42)))
}

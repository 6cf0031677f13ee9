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

package json_test

import (
	"math"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/elaraai/east/compile"
	ejson "github.com/elaraai/east/codec/json"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

func roundTrip(t *testing.T, typ types.Type, v values.Value, table *platform.Table) values.Value {
	t.Helper()
	data, err := ejson.Encode(typ, v)
	qt.Assert(t, qt.IsNil(err))
	got, err := ejson.Decode(typ, data, table)
	qt.Assert(t, qt.IsNil(err))
	return got
}

func TestRoundTripScalars(t *testing.T) {
	cases := []struct {
		name string
		typ  types.Type
		val  values.Value
	}{
		{"null", types.NullType(), values.Null()},
		{"boolean", types.BooleanType(), values.Boolean(false)},
		{"integer", types.IntegerType(), values.IntegerFromInt64(987654321)},
		{"float", types.FloatType(), values.Float(-2.25)},
		{"float-nan", types.FloatType(), values.Float(math.NaN())},
		{"float-posinf", types.FloatType(), values.Float(math.Inf(1))},
		{"string", types.StringType(), values.String("unicode: café")},
		{"datetime", types.DateTimeType(), values.DateTime(1700000000123)},
		{"blob", types.BlobType(), values.Blob([]byte{9, 8, 7})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := roundTrip(t, c.typ, c.val, nil)
			qt.Assert(t, qt.IsTrue(values.Equal(c.typ, c.val, got)))
		})
	}
}

func TestIntegerEncodedAsDecimalString(t *testing.T) {
	data, err := ejson.Encode(types.IntegerType(), values.IntegerFromInt64(42))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(string(data), `"42"`)))
}

func TestFloatSentinelSpellings(t *testing.T) {
	nan, err := ejson.Encode(types.FloatType(), values.Float(math.NaN()))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(string(nan), `"NaN"`)))

	inf, err := ejson.Encode(types.FloatType(), values.Float(math.Inf(1)))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(string(inf), `"Infinity"`)))
}

func TestRoundTripStructAndVariant(t *testing.T) {
	st := types.StructType(types.Field{Name: "n", Type: types.IntegerType()})
	s, err := values.NewStruct([]string{"n"}, []values.Value{values.IntegerFromInt64(5)})
	qt.Assert(t, qt.IsNil(err))
	sv := values.StructValue(s)
	gotS := roundTrip(t, st, sv, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(st, sv, gotS)))

	vt := types.VariantType(types.Tag{Name: "ok", Type: types.IntegerType()})
	vv := values.VariantValue(values.NewVariant("ok", values.IntegerFromInt64(1)))
	gotV := roundTrip(t, vt, vv, nil)
	qt.Assert(t, qt.IsTrue(values.Equal(vt, vv, gotV)))
}

func TestRoundTripDictAsPairArray(t *testing.T) {
	typ := types.DictType(types.IntegerType(), types.StringType())
	d := values.NewOrderedDict(types.IntegerType(), types.StringType())
	qt.Assert(t, qt.IsNil(d.Set(values.IntegerFromInt64(1), values.String("a"))))
	v := values.DictValue(d)
	data, err := ejson.Encode(typ, v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(strings.TrimSpace(string(data)), "[")))
	got, err := ejson.Decode(typ, data, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(values.Equal(typ, v, got)))
}

func TestRoundTripTypeAsData(t *testing.T) {
	orig := types.StructType(types.Field{Name: "x", Type: types.ArrayType(types.IntegerType())})
	data, err := ejson.EncodeType(orig)
	qt.Assert(t, qt.IsNil(err))
	got, err := ejson.DecodeType(data)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(types.Equal(orig, got)))
}

func TestRoundTripFunctionValue(t *testing.T) {
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

	data, err := ejson.Encode(fnType, values.FunctionValue(prog))
	qt.Assert(t, qt.IsNil(err))

	decoded, err := ejson.Decode(fnType, data, table)
	qt.Assert(t, qt.IsNil(err))

	result, err := decoded.FunctionVal().Call([]values.Value{values.IntegerFromInt64(10)})
	qt.Assert(t, qt.IsNil(err))
	n, _ := result.Int().Int64()
	qt.Assert(t, qt.Equals(n, int64(20)))
}

func TestFunctionIRSchemaRoundTrip(t *testing.T) {
	fn := &ir.Function{
		DeclaredType: types.FunctionType(types.IntegerType(), nil, types.IntegerType()),
		Params:       []ir.Param{{Name: "x", Type: types.IntegerType()}},
		Body: ir.NewBinaryOp(token.NoPos, types.IntegerType(), ir.OpAdd,
			ir.NewVarRef(token.NoPos, types.IntegerType(), "x"),
			ir.NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(1)),
		),
	}
	raw, err := ejson.EncodeFunctionIR(fn)
	qt.Assert(t, qt.IsNil(err))
	decoded, err := ejson.DecodeFunctionIR(raw, platform.NewTable())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(types.Equal(decoded.DeclaredType, fn.DeclaredType)))
	qt.Assert(t, qt.Equals(len(decoded.Params), 1))
}

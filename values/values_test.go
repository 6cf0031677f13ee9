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

package values_test

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/elaraai/east/types"
	. "github.com/elaraai/east/values"
)

func TestCompareIntegers(t *testing.T) {
	a := IntegerFromInt64(1)
	b := IntegerFromInt64(2)
	qt.Assert(t, qt.IsTrue(Compare(types.IntegerType(), a, b) < 0))
	qt.Assert(t, qt.IsTrue(Compare(types.IntegerType(), b, a) > 0))
	qt.Assert(t, qt.Equals(Compare(types.IntegerType(), a, a), 0))
}

func TestCompareFloatNaNOrdersAfterInfinity(t *testing.T) {
	inf := Float(math.Inf(1))
	nan1 := Float(math.NaN())
	nan2 := Float(math.NaN())
	qt.Assert(t, qt.IsTrue(Compare(types.FloatType(), inf, nan1) < 0))
	// every NaN is in the same equivalence class
	qt.Assert(t, qt.Equals(Compare(types.FloatType(), nan1, nan2), 0))
}

func TestCompareArraysLexicographic(t *testing.T) {
	et := types.IntegerType()
	at := types.ArrayType(et)
	a := ArrayValue(NewArray(IntegerFromInt64(1), IntegerFromInt64(2)))
	b := ArrayValue(NewArray(IntegerFromInt64(1), IntegerFromInt64(3)))
	qt.Assert(t, qt.IsTrue(Compare(at, a, b) < 0))

	short := ArrayValue(NewArray(IntegerFromInt64(1)))
	qt.Assert(t, qt.IsTrue(Compare(at, short, a) < 0))
}

func TestDefaultScalarsAndContainers(t *testing.T) {
	cases := []struct {
		t types.Type
	}{
		{types.NullType()}, {types.BooleanType()}, {types.IntegerType()},
		{types.FloatType()}, {types.StringType()}, {types.DateTimeType()},
		{types.BlobType()}, {types.ArrayType(types.IntegerType())},
		{types.SetType(types.IntegerType())},
		{types.DictType(types.StringType(), types.IntegerType())},
		{types.StructType(types.Field{Name: "x", Type: types.IntegerType()})},
	}
	for _, c := range cases {
		v, err := Default(c.t)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.IsNil(Validate(c.t, v)))
	}
}

func TestDefaultNeverIsError(t *testing.T) {
	_, err := Default(types.NeverType())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestDefaultEmptyVariantIsError(t *testing.T) {
	_, err := Default(types.VariantType())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestValidateStructExactFields(t *testing.T) {
	st := types.StructType(types.Field{Name: "x", Type: types.IntegerType()})
	s, err := NewStruct([]string{"x"}, []Value{IntegerFromInt64(1)})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(Validate(st, StructValue(s))))

	extra, err := NewStruct([]string{"x", "y"}, []Value{IntegerFromInt64(1), IntegerFromInt64(2)})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNotNil(Validate(st, StructValue(extra))))
}

func TestValidateVariantDeclaredTag(t *testing.T) {
	vt := types.VariantType(types.Tag{Name: "ok", Type: types.IntegerType()})
	ok := VariantValue(NewVariant("ok", IntegerFromInt64(1)))
	qt.Assert(t, qt.IsNil(Validate(vt, ok)))

	bad := VariantValue(NewVariant("nope", IntegerFromInt64(1)))
	qt.Assert(t, qt.IsNotNil(Validate(vt, bad)))
}

func TestOrderedSetMaintainsOrder(t *testing.T) {
	s := NewOrderedSet(types.IntegerType())
	for _, n := range []int64{5, 1, 3, 2, 4} {
		qt.Assert(t, qt.IsNil(s.Add(IntegerFromInt64(n))))
	}
	got := s.Values()
	want := []int64{1, 2, 3, 4, 5}
	qt.Assert(t, qt.Equals(len(got), len(want)))
	for i, v := range got {
		n, _ := v.Int().Int64()
		qt.Assert(t, qt.Equals(n, want[i]))
	}
}

func TestOrderedDictPreservesKeyOrder(t *testing.T) {
	d := NewOrderedDict(types.IntegerType(), types.StringType())
	qt.Assert(t, qt.IsNil(d.Set(IntegerFromInt64(2), String("b"))))
	qt.Assert(t, qt.IsNil(d.Set(IntegerFromInt64(1), String("a"))))
	entries := d.Entries()
	qt.Assert(t, qt.Equals(len(entries), 2))
	k0, _ := entries[0].Key.Int().Int64()
	qt.Assert(t, qt.Equals(k0, int64(1)))
}

func TestRefFreezeRejectsMutation(t *testing.T) {
	r := NewRef(IntegerFromInt64(1))
	r.Freeze()
	err := r.Set(IntegerFromInt64(2))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestArrayFreezeRejectsMutation(t *testing.T) {
	a := NewArray(IntegerFromInt64(1))
	a.Freeze()
	qt.Assert(t, qt.IsNotNil(a.Append(IntegerFromInt64(2))))
	qt.Assert(t, qt.IsNotNil(a.Set(0, IntegerFromInt64(2))))
}

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

package types_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	. "github.com/elaraai/east/types"
)

func TestEqualScalarsAndStructure(t *testing.T) {
	qt.Assert(t, qt.IsTrue(Equal(IntegerType(), IntegerType())))
	qt.Assert(t, qt.IsFalse(Equal(IntegerType(), FloatType())))

	a := StructType(Field{Name: "x", Type: IntegerType()}, Field{Name: "y", Type: StringType()})
	b := StructType(Field{Name: "x", Type: IntegerType()}, Field{Name: "y", Type: StringType()})
	qt.Assert(t, qt.IsTrue(Equal(a, b)))

	// struct field order is significant
	c := StructType(Field{Name: "y", Type: StringType()}, Field{Name: "x", Type: IntegerType()})
	qt.Assert(t, qt.IsFalse(Equal(a, c)))
}

func TestEqualVariantTagOrderInsignificant(t *testing.T) {
	a := VariantType(Tag{Name: "ok", Type: IntegerType()}, Tag{Name: "err", Type: StringType()})
	b := VariantType(Tag{Name: "err", Type: StringType()}, Tag{Name: "ok", Type: IntegerType()})
	qt.Assert(t, qt.IsTrue(Equal(a, b)))
}

func TestEqualRecursiveVarNameInsignificant(t *testing.T) {
	a := RecursiveType("T", ArrayType(RecursiveVarType("T")))
	b := RecursiveType("U", ArrayType(RecursiveVarType("U")))
	qt.Assert(t, qt.IsTrue(Equal(a, b)))
}

func TestUnfoldOneLevel(t *testing.T) {
	list := RecursiveType("T", VariantType(
		Tag{Name: "nil", Type: NullType()},
		Tag{Name: "cons", Type: StructType(
			Field{Name: "head", Type: IntegerType()},
			Field{Name: "tail", Type: RecursiveVarType("T")},
		)},
	))
	unfolded := Unfold(list)
	qt.Assert(t, qt.Equals(unfolded.Kind, Variant))

	var consField Type
	for _, tg := range unfolded.Tags {
		if tg.Name == "cons" {
			consField = tg.Type
		}
	}
	qt.Assert(t, qt.Equals(consField.Kind, Struct))
	tail := consField.Fields[1].Type
	// the unfolded tail still refers to the Recursive type, not the var
	qt.Assert(t, qt.Equals(tail.Kind, Recursive))
}

func TestCanonicalStringDeterministic(t *testing.T) {
	r := NewRegistry()
	a := VariantType(Tag{Name: "ok", Type: IntegerType()}, Tag{Name: "err", Type: StringType()})
	b := VariantType(Tag{Name: "err", Type: StringType()}, Tag{Name: "ok", Type: IntegerType()})
	qt.Assert(t, qt.Equals(r.CanonicalString(a), r.CanonicalString(b)))
}

func TestHashMatchesEqual(t *testing.T) {
	r := NewRegistry()
	a := DictType(StringType(), ArrayType(IntegerType()))
	b := DictType(StringType(), ArrayType(IntegerType()))
	qt.Assert(t, qt.Equals(r.Hash(a), r.Hash(b)))
}

func TestIsSubtypeNeverIsBottom(t *testing.T) {
	qt.Assert(t, qt.IsTrue(IsSubtype(NeverType(), IntegerType())))
	qt.Assert(t, qt.IsTrue(IsSubtype(NeverType(), StructType())))
	qt.Assert(t, qt.IsFalse(IsSubtype(IntegerType(), NeverType())))
}

func TestCompareOrdersByCanonicalString(t *testing.T) {
	r := NewRegistry()
	qt.Assert(t, qt.Equals(r.Compare(IntegerType(), IntegerType()), 0))
	// ordering need only be total and stable, not any particular direction;
	// check antisymmetry and reflexivity directly.
	a, b := FloatType(), StringType()
	if r.Compare(a, b) > 0 {
		a, b = b, a
	}
	qt.Assert(t, qt.IsTrue(r.Compare(a, b) <= 0))
	qt.Assert(t, qt.IsTrue(r.Compare(b, a) >= 0))
}

func TestDescribeDoesNotPanicOnEveryKind(t *testing.T) {
	r := NewRegistry()
	kinds := []Type{
		NeverType(), NullType(), BooleanType(), IntegerType(), FloatType(),
		StringType(), DateTimeType(), BlobType(), TypeTypeType(),
		RefType(IntegerType()), ArrayType(IntegerType()), SetType(IntegerType()),
		DictType(StringType(), IntegerType()),
		StructType(Field{Name: "a", Type: IntegerType()}),
		VariantType(Tag{Name: "a", Type: IntegerType()}),
		FunctionType(IntegerType(), nil, IntegerType()),
		AsyncFunctionType(IntegerType(), nil, IntegerType()),
	}
	for _, k := range kinds {
		qt.Assert(t, qt.Not(qt.Equals(r.Describe(k), "")))
	}
}

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

package types

// Field is one named, ordered member of a Struct type.
type Field struct {
	Name string
	Type Type
}

// Tag is one named, ordered member of a Variant type.
type Tag struct {
	Name string
	Type Type
}

// Type is an inhabitant of the closed type algebra (spec §3.1). The zero
// Type is not valid; always build one through the constructors below. Type
// values are small and are passed and compared by value.
//
// Only the fields relevant to Kind are populated; this mirrors a tagged
// union rather than an interface hierarchy so that Type remains comparable
// enough for map keys after canonicalization (see [Registry.CanonicalString]),
// and so the codecs can switch on Kind without a type assertion.
type Type struct {
	Kind Kind

	// Ref, Array, Set: the element/content type.
	Elem *Type

	// Dict: key and value types.
	Key   *Type
	Value *Type

	// Struct: declared fields, order significant.
	Fields []Field

	// Variant: declared tags. Order is the declared order, used for the
	// tag-index wire encoding (spec §4.4) and to compare variant values
	// first by tag; set order is otherwise insignificant for type equality.
	Tags []Tag

	// Recursive: Var names the fix-point variable bound for Body; Body may
	// contain a RecursiveVar Type with the same Var name as a back edge.
	Var  string
	Body *Type

	// Function / AsyncFunction: declared input types (order significant),
	// output type, and an optional platform-function allowlist. A nil
	// Allowlist means "no restriction"; a non-nil, possibly-empty slice
	// restricts platform_call names the body may invoke to its contents.
	In          []Type
	Out         *Type
	PlatformAllowlist []string
	HasAllowlist      bool
}

// NeverType, NullType and the other scalar singletons are convenience
// constructors returning a freshly built Type; Type has no shared internal
// state so reuse is purely a courtesy to callers, not a requirement.
func NeverType() Type    { return Type{Kind: Never} }
func NullType() Type     { return Type{Kind: Null} }
func BooleanType() Type  { return Type{Kind: Boolean} }
func IntegerType() Type  { return Type{Kind: Integer} }
func FloatType() Type    { return Type{Kind: Float} }
func StringType() Type   { return Type{Kind: String} }
func DateTimeType() Type { return Type{Kind: DateTime} }
func BlobType() Type     { return Type{Kind: Blob} }
func TypeTypeType() Type { return Type{Kind: TypeType} }

// RefType builds Ref(elem).
func RefType(elem Type) Type { return Type{Kind: Ref, Elem: &elem} }

// ArrayType builds Array(elem).
func ArrayType(elem Type) Type { return Type{Kind: Array, Elem: &elem} }

// SetType builds Set(key).
func SetType(key Type) Type { return Type{Kind: Set, Elem: &key} }

// DictType builds Dict(key, value).
func DictType(key, value Type) Type { return Type{Kind: Dict, Key: &key, Value: &value} }

// StructType builds Struct({fields}) preserving field order as given.
func StructType(fields ...Field) Type { return Type{Kind: Struct, Fields: fields} }

// VariantType builds Variant({tags}) preserving declaration order as given.
func VariantType(tags ...Tag) Type { return Type{Kind: Variant, Tags: tags} }

// RecursiveType builds Recursive(µvar. body). body typically contains a
// RecursiveVarType(var) back edge.
func RecursiveType(v string, body Type) Type { return Type{Kind: Recursive, Var: v, Body: &body} }

// RecursiveVarType builds the bound occurrence of a fix-point variable
// inside the body passed to RecursiveType.
func RecursiveVarType(v string) Type { return Type{Kind: RecursiveVar, Var: v} }

// FunctionType builds Function(in... -> out). allowlist == nil means
// unrestricted; pass an empty, non-nil slice to forbid all platform calls.
func FunctionType(out Type, allowlist []string, in ...Type) Type {
	return Type{Kind: Function, In: in, Out: &out, PlatformAllowlist: allowlist, HasAllowlist: allowlist != nil}
}

// AsyncFunctionType builds AsyncFunction(in... -> out).
func AsyncFunctionType(out Type, allowlist []string, in ...Type) Type {
	return Type{Kind: AsyncFunction, In: in, Out: &out, PlatformAllowlist: allowlist, HasAllowlist: allowlist != nil}
}

// Unfold returns F[Recursive(µX. F[X])] for a Recursive(µX. F[X]) type,
// i.e. one level of fix-point expansion (spec §4.1). Unfold panics if t is
// not a Recursive type; callers gate on t.Kind == Recursive first.
func Unfold(t Type) Type {
	if t.Kind != Recursive {
		panic("types: Unfold of non-Recursive type")
	}
	return substRecursiveVar(*t.Body, t.Var, t)
}

func substRecursiveVar(t Type, v string, with Type) Type {
	switch t.Kind {
	case RecursiveVar:
		if t.Var == v {
			return with
		}
		return t
	case Ref, Array, Set:
		e := substRecursiveVar(*t.Elem, v, with)
		t.Elem = &e
		return t
	case Dict:
		k := substRecursiveVar(*t.Key, v, with)
		val := substRecursiveVar(*t.Value, v, with)
		t.Key, t.Value = &k, &val
		return t
	case Struct:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			f.Type = substRecursiveVar(f.Type, v, with)
			fields[i] = f
		}
		t.Fields = fields
		return t
	case Variant:
		tags := make([]Tag, len(t.Tags))
		for i, tg := range t.Tags {
			tg.Type = substRecursiveVar(tg.Type, v, with)
			tags[i] = tg
		}
		t.Tags = tags
		return t
	case Recursive:
		if t.Var == v {
			// shadowed: the inner fix-point rebinds the same name, leave as-is
			return t
		}
		body := substRecursiveVar(*t.Body, v, with)
		t.Body = &body
		return t
	case Function, AsyncFunction:
		in := make([]Type, len(t.In))
		for i, it := range t.In {
			in[i] = substRecursiveVar(it, v, with)
		}
		t.In = in
		out := substRecursiveVar(*t.Out, v, with)
		t.Out = &out
		return t
	default:
		return t
	}
}

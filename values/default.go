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

package values

import (
	"fmt"

	"github.com/elaraai/east/types"
)

// Default builds the default value of t (spec §4.2): null for Null; 0 for
// Integer; 0.0 for Float; empty for String/Blob/Array/Set/Dict; a struct
// of per-field defaults; a variant's first declared tag with that tag's
// default payload; Ref of the element type's default; and an error for
// Never, which is uninhabited.
func Default(t types.Type) (Value, error) {
	switch t.Kind {
	case types.Never:
		return Value{}, fmt.Errorf("values: Never has no default value — it is uninhabited")
	case types.Null:
		return Null(), nil
	case types.Boolean:
		return Boolean(false), nil
	case types.Integer:
		return IntegerFromInt64(0), nil
	case types.Float:
		return Float(0), nil
	case types.String:
		return String(""), nil
	case types.DateTime:
		return DateTime(0), nil
	case types.Blob:
		return Blob(nil), nil
	case types.Ref:
		inner, err := Default(*t.Elem)
		if err != nil {
			return Value{}, err
		}
		return RefValue(NewRef(inner)), nil
	case types.Array:
		return ArrayValue(NewArray()), nil
	case types.Set:
		return SetValue(NewOrderedSet(*t.Elem)), nil
	case types.Dict:
		return DictValue(NewOrderedDict(*t.Key, *t.Value)), nil
	case types.Struct:
		names := make([]string, len(t.Fields))
		vals := make([]Value, len(t.Fields))
		for i, f := range t.Fields {
			v, err := Default(f.Type)
			if err != nil {
				return Value{}, fmt.Errorf("default for field %q: %w", f.Name, err)
			}
			names[i] = f.Name
			vals[i] = v
		}
		s, err := NewStruct(names, vals)
		if err != nil {
			return Value{}, err
		}
		return StructValue(s), nil
	case types.Variant:
		if len(t.Tags) == 0 {
			return Value{}, fmt.Errorf("values: Variant with no declared tags has no default value")
		}
		first := t.Tags[0]
		payload, err := Default(first.Type)
		if err != nil {
			return Value{}, fmt.Errorf("default for tag %q: %w", first.Name, err)
		}
		return VariantValue(NewVariant(first.Name, payload)), nil
	case types.Recursive:
		return Default(types.Unfold(t))
	case types.TypeType:
		return TypeValue(types.NeverType()), nil
	case types.Function, types.AsyncFunction:
		return Value{}, fmt.Errorf("values: %s has no structural default value — it must be compiled", t.Kind)
	default:
		return Value{}, fmt.Errorf("values: Default: unhandled kind %s", t.Kind)
	}
}

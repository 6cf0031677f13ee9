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
	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
)

// Validate checks that v is well-formed for t (spec §3.2 container
// invariants): a Struct has exactly the declared fields in the declared
// types; a Variant carries exactly one declared tag with the right
// payload type; Dict/Set keys are unique and in ascending order (always
// true for values built through this package's constructors, but callers
// that assemble a Struct/Array by hand before wrapping it should call
// Validate once before trusting it).
func Validate(t types.Type, v Value) error {
	if v.kind != t.Kind {
		if t.Kind == types.Recursive {
			return Validate(types.Unfold(t), v)
		}
		return east_errors.New(east_errors.TypeMismatch, token.NoPos, "expected %s, got %s", t.Kind, v.kind)
	}
	switch t.Kind {
	case types.Ref:
		return Validate(*t.Elem, v.ref.Get())
	case types.Array:
		for i, e := range v.arr.Values() {
			if err := Validate(*t.Elem, e); err != nil {
				return east_errors.Push(err, east_errors.TypeMismatch, token.NoPos).Push(token.Position{Line: i + 1})
			}
		}
	case types.Set:
		for _, e := range v.set.Values() {
			if err := Validate(*t.Elem, e); err != nil {
				return err
			}
		}
	case types.Dict:
		for _, e := range v.dict.Entries() {
			if err := Validate(*t.Key, e.Key); err != nil {
				return err
			}
			if err := Validate(*t.Value, e.Value); err != nil {
				return err
			}
		}
	case types.Struct:
		if v.strc.Len() != len(t.Fields) {
			return east_errors.New(east_errors.MissingField, token.NoPos, "struct has %d fields, type declares %d", v.strc.Len(), len(t.Fields))
		}
		for _, f := range t.Fields {
			fv, ok := v.strc.Field(f.Name)
			if !ok {
				return east_errors.New(east_errors.MissingField, token.NoPos, "struct missing field %q", f.Name)
			}
			if err := Validate(f.Type, fv); err != nil {
				return err
			}
		}
	case types.Variant:
		for _, tg := range t.Tags {
			if tg.Name == v.vrnt.Tag {
				return Validate(tg.Type, v.vrnt.Payload)
			}
		}
		return east_errors.New(east_errors.UnknownVariantTag, token.NoPos, "variant tag %q not declared", v.vrnt.Tag)
	}
	return nil
}

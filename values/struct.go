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

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
)

// Struct is East's heterogeneous record value (spec §3.1 Struct{...}):
// exactly the declared fields, all present, order fixed by the type.
type Struct struct {
	names  []string // declared order, shared with the owning types.Type
	values []Value
	frozen bool
}

// NewStruct builds a Struct from parallel names/values slices, in declared
// field order. Both slices are copied.
func NewStruct(names []string, vals []Value) (*Struct, error) {
	if len(names) != len(vals) {
		return nil, east_errors.New(east_errors.MissingField, token.NoPos, "struct field/value count mismatch: %d names, %d values", len(names), len(vals))
	}
	return &Struct{names: append([]string(nil), names...), values: append([]Value(nil), vals...)}, nil
}

func (s *Struct) Len() int { return len(s.names) }

// FieldName returns the i'th declared field name.
func (s *Struct) FieldName(i int) string { return s.names[i] }

// FieldAt returns the i'th field's value, in declared order.
func (s *Struct) FieldAt(i int) Value { return s.values[i] }

func (s *Struct) indexOf(name string) int {
	for i, n := range s.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Field looks up a field by name.
func (s *Struct) Field(name string) (Value, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return Value{}, false
	}
	return s.values[i], true
}

// SetField replaces a field's value by name, failing with FrozenMutation
// on a frozen Struct or MissingField if name is not declared.
func (s *Struct) SetField(name string, v Value) error {
	if s.frozen {
		return east_errors.New(east_errors.FrozenMutation, token.NoPos, "write to frozen Struct")
	}
	i := s.indexOf(name)
	if i < 0 {
		return east_errors.New(east_errors.MissingField, token.NoPos, "struct has no field %q", name)
	}
	s.values[i] = v
	return nil
}

func (s *Struct) Freeze()        { s.frozen = true }
func (s *Struct) IsFrozen() bool { return s.frozen }

func (s *Struct) String() string {
	return fmt.Sprintf("Struct(%d fields)", len(s.names))
}

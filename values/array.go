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
)

// Array is East's ordered sequence container (spec §3.1 Array(T)).
type Array struct {
	items  []Value
	frozen bool
}

// NewArray builds an Array from items; items is copied.
func NewArray(items ...Value) *Array {
	return &Array{items: append([]Value(nil), items...)}
}

func (a *Array) Len() int { return len(a.items) }

func (a *Array) At(i int) Value { return a.items[i] }

// Set replaces the element at i, failing with FrozenMutation on a frozen
// Array.
func (a *Array) Set(i int, v Value) error {
	if a.frozen {
		return east_errors.New(east_errors.FrozenMutation, token.NoPos, "write to frozen Array")
	}
	a.items[i] = v
	return nil
}

// Append adds v to the end of the Array.
func (a *Array) Append(v Value) error {
	if a.frozen {
		return east_errors.New(east_errors.FrozenMutation, token.NoPos, "append to frozen Array")
	}
	a.items = append(a.items, v)
	return nil
}

// Values returns the Array's elements; the returned slice must not be
// mutated by the caller.
func (a *Array) Values() []Value { return a.items }

func (a *Array) Freeze()           { a.frozen = true }
func (a *Array) IsFrozen() bool    { return a.frozen }
func (a *Array) Clone() *Array     { return &Array{items: append([]Value(nil), a.items...)} }

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
	"github.com/elaraai/east/types"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
)

// OrderedSet is East's Set(K) container (spec §3.1, §4.2): unique members
// under K's total order, iterated in ascending order, with logarithmic
// membership/insert/delete/min/max/range-from.
type OrderedSet struct {
	elem   types.Type
	tree   *avlTree
	frozen bool
}

// NewOrderedSet builds an empty OrderedSet over elements of type elem.
func NewOrderedSet(elem types.Type) *OrderedSet {
	return &OrderedSet{elem: elem, tree: newAVLTree(func(a, b Value) int { return Compare(elem, a, b) })}
}

func (s *OrderedSet) ElemType() types.Type { return s.elem }
func (s *OrderedSet) Len() int             { return s.tree.Len() }

// Contains reports whether v is a member of s.
func (s *OrderedSet) Contains(v Value) bool {
	_, ok := s.tree.Get(v)
	return ok
}

// Add inserts v, a no-op if already present. It fails with FrozenMutation
// on a frozen set.
func (s *OrderedSet) Add(v Value) error {
	if s.frozen {
		return east_errors.New(east_errors.FrozenMutation, token.NoPos, "write to frozen Set")
	}
	s.tree.Insert(v, Value{})
	return nil
}

// Remove deletes v if present, reporting whether it was present.
func (s *OrderedSet) Remove(v Value) (bool, error) {
	if s.frozen {
		return false, east_errors.New(east_errors.FrozenMutation, token.NoPos, "write to frozen Set")
	}
	return s.tree.Delete(v), nil
}

// Min returns the least member, or ok=false if empty.
func (s *OrderedSet) Min() (Value, bool) {
	k, _, ok := s.tree.Min()
	return k, ok
}

// Max returns the greatest member, or ok=false if empty.
func (s *OrderedSet) Max() (Value, bool) {
	k, _, ok := s.tree.Max()
	return k, ok
}

// Values returns members in ascending order.
func (s *OrderedSet) Values() []Value {
	out := make([]Value, 0, s.tree.Len())
	s.tree.InOrder(func(k, _ Value) bool { out = append(out, k); return true })
	return out
}

// RangeFrom calls fn for every member >= from, ascending, stopping early
// if fn returns false.
func (s *OrderedSet) RangeFrom(from Value, fn func(Value) bool) {
	s.tree.RangeFrom(from, func(k, _ Value) bool { return fn(k) })
}

func (s *OrderedSet) Freeze()        { s.frozen = true }
func (s *OrderedSet) IsFrozen() bool { return s.frozen }

// Clone returns an independent copy that may be mutated freely even if s
// is frozen.
func (s *OrderedSet) Clone() *OrderedSet {
	return &OrderedSet{elem: s.elem, tree: s.tree.clone()}
}

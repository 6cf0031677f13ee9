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

// DictEntry is one (key, value) pair of an [OrderedDict], in ascending key
// order when returned from [OrderedDict.Entries].
type DictEntry struct {
	Key   Value
	Value Value
}

// OrderedDict is East's Dict(K, V) container (spec §3.1, §4.2): unique
// keys under K's total order, iterated in ascending key order.
type OrderedDict struct {
	key, val types.Type
	tree     *avlTree
	frozen   bool
}

// NewOrderedDict builds an empty OrderedDict with the given key/value
// types.
func NewOrderedDict(key, val types.Type) *OrderedDict {
	return &OrderedDict{key: key, val: val, tree: newAVLTree(func(a, b Value) int { return Compare(key, a, b) })}
}

func (d *OrderedDict) KeyType() types.Type   { return d.key }
func (d *OrderedDict) ValueType() types.Type { return d.val }
func (d *OrderedDict) Len() int              { return d.tree.Len() }

// Get returns the value for key, or ok=false if absent.
func (d *OrderedDict) Get(key Value) (Value, bool) {
	return d.tree.Get(key)
}

// Set inserts or replaces the entry for key, failing with FrozenMutation
// on a frozen dict.
func (d *OrderedDict) Set(key, val Value) error {
	if d.frozen {
		return east_errors.New(east_errors.FrozenMutation, token.NoPos, "write to frozen Dict")
	}
	d.tree.Insert(key, val)
	return nil
}

// Delete removes the entry for key, reporting whether it was present.
func (d *OrderedDict) Delete(key Value) (bool, error) {
	if d.frozen {
		return false, east_errors.New(east_errors.FrozenMutation, token.NoPos, "write to frozen Dict")
	}
	return d.tree.Delete(key), nil
}

// MinKey returns the least key, or ok=false if empty.
func (d *OrderedDict) MinKey() (Value, bool) {
	k, _, ok := d.tree.Min()
	return k, ok
}

// MaxKey returns the greatest key, or ok=false if empty.
func (d *OrderedDict) MaxKey() (Value, bool) {
	k, _, ok := d.tree.Max()
	return k, ok
}

// Entries returns (key, value) pairs in ascending key order.
func (d *OrderedDict) Entries() []DictEntry {
	out := make([]DictEntry, 0, d.tree.Len())
	d.tree.InOrder(func(k, v Value) bool { out = append(out, DictEntry{k, v}); return true })
	return out
}

// RangeFrom calls fn for every entry with key >= from, ascending, stopping
// early if fn returns false.
func (d *OrderedDict) RangeFrom(from Value, fn func(key, val Value) bool) {
	d.tree.RangeFrom(from, fn)
}

func (d *OrderedDict) Freeze()        { d.frozen = true }
func (d *OrderedDict) IsFrozen() bool { return d.frozen }

// Clone returns an independent copy that may be mutated freely even if d
// is frozen.
func (d *OrderedDict) Clone() *OrderedDict {
	return &OrderedDict{key: d.key, val: d.val, tree: d.tree.clone()}
}

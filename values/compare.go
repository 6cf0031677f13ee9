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
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/elaraai/east/types"
)

// Compare implements the total order East's type algebra induces on the
// inhabitants of t (spec §3.1). It is defined for every Kind that can
// appear as a key (Integer, Float, String, DateTime, Blob, Boolean, Null,
// Struct, Variant, Array, Set, Dict, Ref, TypeType) and, for completeness,
// Function/AsyncFunction (ordered arbitrarily but deterministically, since
// nothing in the spec requires comparing callables but Array(Function) etc.
// still need *some* total order to satisfy invariant 4 over their own
// element type).
func Compare(t types.Type, a, b Value) int {
	switch t.Kind {
	case types.Never:
		panic("values: Compare over Never — no inhabitants exist")
	case types.Null:
		return 0
	case types.Boolean:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case types.Integer:
		return a.i.Cmp(&b.i)
	case types.Float:
		return compareFloat(a.f, b.f)
	case types.String:
		return strings.Compare(a.s, b.s)
	case types.DateTime:
		switch {
		case a.dt < b.dt:
			return -1
		case a.dt > b.dt:
			return 1
		default:
			return 0
		}
	case types.Blob:
		return bytes.Compare(a.blob, b.blob)
	case types.Ref:
		return Compare(*t.Elem, a.ref.Get(), b.ref.Get())
	case types.Array:
		return compareArray(*t.Elem, a.arr, b.arr)
	case types.Set:
		return compareSet(*t.Elem, a.set, b.set)
	case types.Dict:
		return compareDict(t, a.dict, b.dict)
	case types.Struct:
		return compareStruct(t, a.strc, b.strc)
	case types.Variant:
		return compareVariant(t, a.vrnt, b.vrnt)
	case types.Recursive:
		return Compare(types.Unfold(t), a, b)
	case types.TypeType:
		return types.NewRegistry().Compare(*a.tv, *b.tv)
	case types.Function, types.AsyncFunction:
		return strings.Compare(fmt.Sprintf("%p", a.fn), fmt.Sprintf("%p", b.fn))
	default:
		panic(fmt.Sprintf("values: Compare: unhandled kind %s", t.Kind))
	}
}

// compareFloat orders finite floats numerically, then +Inf, then a single
// NaN equivalence class after everything else (spec §3.1).
func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareArray(elem types.Type, a, b *Array) int {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		if c := Compare(elem, a.At(i), b.At(i)); c != 0 {
			return c
		}
	}
	switch {
	case a.Len() < b.Len():
		return -1
	case a.Len() > b.Len():
		return 1
	default:
		return 0
	}
}

func compareSet(elem types.Type, a, b *OrderedSet) int {
	as := a.Values()
	bs := b.Values()
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		if c := Compare(elem, as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func compareDict(t types.Type, a, b *OrderedDict) int {
	ae := a.Entries()
	be := b.Entries()
	n := len(ae)
	if len(be) < n {
		n = len(be)
	}
	for i := 0; i < n; i++ {
		if c := Compare(*t.Key, ae[i].Key, be[i].Key); c != 0 {
			return c
		}
		if c := Compare(*t.Value, ae[i].Value, be[i].Value); c != 0 {
			return c
		}
	}
	switch {
	case len(ae) < len(be):
		return -1
	case len(ae) > len(be):
		return 1
	default:
		return 0
	}
}

func compareStruct(t types.Type, a, b *Struct) int {
	for _, f := range t.Fields {
		av, _ := a.Field(f.Name)
		bv, _ := b.Field(f.Name)
		if c := Compare(f.Type, av, bv); c != 0 {
			return c
		}
	}
	return 0
}

func compareVariant(t types.Type, a, b *Variant) int {
	ai, bi := tagIndex(t, a.Tag), tagIndex(t, b.Tag)
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	}
	return Compare(t.Tags[ai].Type, a.Payload, b.Payload)
}

func tagIndex(t types.Type, tag string) int {
	for i, tg := range t.Tags {
		if tg.Name == tag {
			return i
		}
	}
	panic(fmt.Sprintf("values: unknown variant tag %q", tag))
}

// Equal reports whether a and b are equal values of type t, under t's
// total order.
func Equal(t types.Type, a, b Value) bool {
	return Compare(t, a, b) == 0
}

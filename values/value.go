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

// Package values implements East's canonical in-memory value model (spec
// §3.2): one concrete representation per [types.Kind], the container types
// (Ref, Array, Set, Dict, Struct, Variant) and their mutation/freeze
// invariants, default-value construction, and the total order over values
// of a given type.
//
// A [Value] never carries its own type tag beyond what is needed to
// discriminate the payload (e.g. a Variant's chosen tag) — per spec §3.2
// "the codec never discovers the type from the value", callers always
// already know a Value's [types.Type] from context (a field type, an
// array's element type, a function's declared signature, ...).
package values

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/elaraai/east/types"
)

// Function is implemented by compiled callables (see package compile/eval).
// values has no dependency on ir/compile; Function is the seam that lets a
// Value carry a compiled function without an import cycle.
type Function interface {
	// Type returns the function's declared East type.
	Type() types.Type
	// Call invokes the function synchronously. AsyncFunction values also
	// implement Function; their Call runs to completion, waiting on each
	// async platform call's result before going on.
	Call(args []Value) (Value, error)
}

// Value is an inhabitant of some East [types.Type]. The zero Value has
// Kind Never and inhabits no type; every value, Null included, is built
// through a constructor.
type Value struct {
	kind Kind

	b    bool
	i    apd.Decimal
	f    float64
	s    string
	dt   int64 // milliseconds since Unix epoch
	blob []byte
	ref  *Ref
	arr  *Array
	set  *OrderedSet
	dict *OrderedDict
	strc *Struct
	vrnt *Variant
	fn   Function
	tv   *types.Type
}

// Kind mirrors types.Kind but is redeclared here to keep this package
// import-light where it only needs to discriminate its own payload; the
// values it takes are always a subset of types.Kind's members (never
// Recursive or RecursiveVar — a RECURSIVE value is simply a Value of its
// unfolded type; a TypeType value, built by TypeValue, carries Kind
// TypeType and its *types.Type payload).
type Kind = types.Kind

// Kind returns the discriminant of v's payload.
func (v Value) Kind() Kind { return v.kind }

func Null() Value { return Value{kind: types.Null} }

func Boolean(b bool) Value { return Value{kind: types.Boolean, b: b} }

// Integer builds an Integer value from an [*apd.Decimal]. The decimal is
// copied and its exponent forced to zero (East's Integer is a whole
// number); a non-zero-exponent input with a fractional part is a caller
// bug and panics, since it cannot arise from any East operation.
func Integer(d *apd.Decimal) Value {
	var whole apd.Decimal
	whole.Set(d)
	if whole.Exponent != 0 {
		var rounded apd.Decimal
		_, _ = apd.BaseContext.WithPrecision(0).Quantize(&rounded, &whole, 0)
		if rounded.Cmp(&whole) != 0 {
			panic("values: Integer built from a non-integral decimal")
		}
		whole = rounded
	}
	return Value{kind: types.Integer, i: whole}
}

// IntegerFromInt64 builds an Integer value from a native int64.
func IntegerFromInt64(n int64) Value {
	var d apd.Decimal
	d.SetInt64(n)
	return Value{kind: types.Integer, i: d}
}

func Float(f float64) Value { return Value{kind: types.Float, f: f} }

func String(s string) Value { return Value{kind: types.String, s: s} }

// DateTime builds a DateTime value from milliseconds since the Unix epoch.
func DateTime(millis int64) Value { return Value{kind: types.DateTime, dt: millis} }

// Blob builds a Blob value. b is not copied; callers must not mutate it
// after handing it to Blob (Blob values are immutable by contract, there
// being no Blob mutation operation in the IR).
func Blob(b []byte) Value { return Value{kind: types.Blob, blob: b} }

func RefValue(r *Ref) Value { return Value{kind: types.Ref, ref: r} }

func ArrayValue(a *Array) Value { return Value{kind: types.Array, arr: a} }

func SetValue(s *OrderedSet) Value { return Value{kind: types.Set, set: s} }

func DictValue(d *OrderedDict) Value { return Value{kind: types.Dict, dict: d} }

func StructValue(s *Struct) Value { return Value{kind: types.Struct, strc: s} }

func VariantValue(v *Variant) Value { return Value{kind: types.Variant, vrnt: v} }

// TypeValue builds a value of type TypeType: a type used as data, e.g. for
// the function-type hash check during Beast2 decoding (spec §4.4).
func TypeValue(t types.Type) Value { return Value{kind: types.TypeType, tv: &t} }

func FunctionValue(f Function) Value {
	k := types.Function
	if _, ok := f.(AsyncMarker); ok {
		k = types.AsyncFunction
	}
	return Value{kind: k, fn: f}
}

// AsyncMarker is implemented by Function values compiled from an
// AsyncFunction type, purely so FunctionValue can pick the right Kind tag;
// it carries no behavior of its own.
type AsyncMarker interface {
	IsAsyncFunction() bool
}

func (v Value) Bool() bool              { return v.b }
func (v Value) Int() *apd.Decimal       { return &v.i }
func (v Value) Float64() float64        { return v.f }
func (v Value) Str() string             { return v.s }
func (v Value) DateTimeMillis() int64   { return v.dt }
func (v Value) BlobBytes() []byte       { return v.blob }
func (v Value) RefCell() *Ref           { return v.ref }
func (v Value) ArrayVal() *Array        { return v.arr }
func (v Value) SetVal() *OrderedSet     { return v.set }
func (v Value) DictVal() *OrderedDict   { return v.dict }
func (v Value) StructVal() *Struct      { return v.strc }
func (v Value) VariantVal() *Variant    { return v.vrnt }
func (v Value) FunctionVal() Function   { return v.fn }
func (v Value) TypeVal() types.Type     { return *v.tv }

func (v Value) String() string {
	switch v.kind {
	case types.Null:
		return "null"
	case types.Boolean:
		return fmt.Sprintf("%t", v.b)
	case types.Integer:
		return v.i.String()
	case types.Float:
		return fmt.Sprintf("%v", v.f)
	case types.String:
		return fmt.Sprintf("%q", v.s)
	case types.DateTime:
		return fmt.Sprintf("DateTime(%dms)", v.dt)
	case types.Blob:
		return fmt.Sprintf("Blob(%d bytes)", len(v.blob))
	default:
		return fmt.Sprintf("%s value", v.kind)
	}
}

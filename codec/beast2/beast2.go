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

package beast2

import (
	"bytes"

	"github.com/elaraai/east/compile"
	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

var typeRegistry = types.NewRegistry()

// Encode renders v, an inhabitant of t, as a Beast2 byte string (spec
// §4.4). The type is supplied by the caller rather than recovered from v,
// matching East's rule that "the codec never discovers the type from the
// value" (spec §3.2).
func Encode(t types.Type, v values.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, t, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses data as an inhabitant of t. table resolves any platform
// calls reachable from a decoded Function/AsyncFunction value; it may be
// nil if t is known to carry no function anywhere in its shape.
func Decode(t types.Type, data []byte, table *platform.Table) (values.Value, error) {
	r := newReader(data)
	v, err := decodeValue(r, t, table)
	if err != nil {
		return values.Value{}, err
	}
	if r.Remaining() != 0 {
		return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos,
			"%d trailing bytes after decoding a value of type %s", r.Remaining(), t.Kind)
	}
	return v, nil
}

func encodeValue(w *bytes.Buffer, t types.Type, v values.Value) error {
	switch t.Kind {
	case types.Never:
		return east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode a value of type Never")
	case types.Null:
		return nil
	case types.Boolean:
		w.WriteByte(boolByte(v.Bool()))
		return nil
	case types.Integer:
		return encodeInteger(w, v.Int())
	case types.Float:
		encodeFloat(w, v.Float64())
		return nil
	case types.String:
		writeString(w, v.Str())
		return nil
	case types.DateTime:
		writeVarUint(w, zigzag64(v.DateTimeMillis()))
		return nil
	case types.Blob:
		b := v.BlobBytes()
		writeVarUint(w, uint64(len(b)))
		w.Write(b)
		return nil
	case types.TypeType:
		return encodeTypeValue(w, v.TypeVal())
	case types.Ref:
		return encodeValue(w, *t.Elem, v.RefCell().Get())
	case types.Array:
		items := v.ArrayVal().Values()
		writeVarUint(w, uint64(len(items)))
		for _, item := range items {
			if err := encodeValue(w, *t.Elem, item); err != nil {
				return err
			}
		}
		return nil
	case types.Set:
		items := v.SetVal().Values()
		writeVarUint(w, uint64(len(items)))
		for _, item := range items {
			if err := encodeValue(w, *t.Elem, item); err != nil {
				return err
			}
		}
		return nil
	case types.Dict:
		entries := v.DictVal().Entries()
		writeVarUint(w, uint64(len(entries)))
		for _, e := range entries {
			if err := encodeValue(w, *t.Key, e.Key); err != nil {
				return err
			}
			if err := encodeValue(w, *t.Value, e.Value); err != nil {
				return err
			}
		}
		return nil
	case types.Struct:
		s := v.StructVal()
		for _, f := range t.Fields {
			fv, ok := s.Field(f.Name)
			if !ok {
				return east_errors.New(east_errors.MissingField, token.NoPos, "struct value is missing declared field %q", f.Name)
			}
			if err := encodeValue(w, f.Type, fv); err != nil {
				return err
			}
		}
		return nil
	case types.Variant:
		vr := v.VariantVal()
		idx := -1
		for i, tg := range t.Tags {
			if tg.Name == vr.Tag {
				idx = i
				break
			}
		}
		if idx < 0 {
			return east_errors.New(east_errors.UnknownVariantTag, token.NoPos, "variant tag %q is not declared on this type", vr.Tag)
		}
		writeVarUint(w, uint64(idx))
		return encodeValue(w, t.Tags[idx].Type, vr.Payload)
	case types.Recursive:
		return encodeValue(w, types.Unfold(t), v)
	case types.Function, types.AsyncFunction:
		return encodeFunction(w, t, v)
	default:
		return east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode unknown type kind %d", t.Kind)
	}
}

func decodeValue(r *reader, t types.Type, table *platform.Table) (values.Value, error) {
	switch t.Kind {
	case types.Never:
		return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "cannot decode a value of type Never")
	case types.Null:
		return values.Null(), nil
	case types.Boolean:
		b, err := r.ReadByte()
		if err != nil {
			return values.Value{}, err
		}
		return values.Boolean(b != 0), nil
	case types.Integer:
		d, err := decodeInteger(r)
		if err != nil {
			return values.Value{}, err
		}
		return values.Integer(d), nil
	case types.Float:
		f, err := decodeFloat(r)
		if err != nil {
			return values.Value{}, err
		}
		return values.Float(f), nil
	case types.String:
		s, err := readString(r)
		if err != nil {
			return values.Value{}, err
		}
		return values.String(s), nil
	case types.DateTime:
		u, err := readVarUint(r)
		if err != nil {
			return values.Value{}, err
		}
		return values.DateTime(unzigzag64(u)), nil
	case types.Blob:
		n, err := readVarUint(r)
		if err != nil {
			return values.Value{}, err
		}
		buf := make([]byte, n)
		if _, err := r.Read(buf); err != nil {
			return values.Value{}, err
		}
		return values.Blob(buf), nil
	case types.TypeType:
		tv, err := decodeTypeValue(r)
		if err != nil {
			return values.Value{}, err
		}
		return values.TypeValue(tv), nil
	case types.Ref:
		inner, err := decodeValue(r, *t.Elem, table)
		if err != nil {
			return values.Value{}, err
		}
		return values.RefValue(values.NewRef(inner)), nil
	case types.Array:
		n, err := readVarUint(r)
		if err != nil {
			return values.Value{}, err
		}
		items := make([]values.Value, n)
		for i := range items {
			items[i], err = decodeValue(r, *t.Elem, table)
			if err != nil {
				return values.Value{}, err
			}
		}
		return values.ArrayValue(values.NewArray(items...)), nil
	case types.Set:
		n, err := readVarUint(r)
		if err != nil {
			return values.Value{}, err
		}
		set := values.NewOrderedSet(*t.Elem)
		for i := uint64(0); i < n; i++ {
			elem, err := decodeValue(r, *t.Elem, table)
			if err != nil {
				return values.Value{}, err
			}
			if err := set.Add(elem); err != nil {
				return values.Value{}, err
			}
		}
		return values.SetValue(set), nil
	case types.Dict:
		n, err := readVarUint(r)
		if err != nil {
			return values.Value{}, err
		}
		dict := values.NewOrderedDict(*t.Key, *t.Value)
		for i := uint64(0); i < n; i++ {
			k, err := decodeValue(r, *t.Key, table)
			if err != nil {
				return values.Value{}, err
			}
			val, err := decodeValue(r, *t.Value, table)
			if err != nil {
				return values.Value{}, err
			}
			if err := dict.Set(k, val); err != nil {
				return values.Value{}, err
			}
		}
		return values.DictValue(dict), nil
	case types.Struct:
		names := make([]string, len(t.Fields))
		vals := make([]values.Value, len(t.Fields))
		for i, f := range t.Fields {
			names[i] = f.Name
			v, err := decodeValue(r, f.Type, table)
			if err != nil {
				return values.Value{}, err
			}
			vals[i] = v
		}
		s, err := values.NewStruct(names, vals)
		if err != nil {
			return values.Value{}, east_errors.Push(err, east_errors.DecodingError, token.NoPos)
		}
		return values.StructValue(s), nil
	case types.Variant:
		idx, err := readVarUint(r)
		if err != nil {
			return values.Value{}, err
		}
		if idx >= uint64(len(t.Tags)) {
			return values.Value{}, east_errors.New(east_errors.UnknownVariantTag, token.NoPos, "variant tag index %d out of range for %d declared tags", idx, len(t.Tags))
		}
		tag := t.Tags[idx]
		payload, err := decodeValue(r, tag.Type, table)
		if err != nil {
			return values.Value{}, err
		}
		return values.VariantValue(values.NewVariant(tag.Name, payload)), nil
	case types.Recursive:
		return decodeValue(r, types.Unfold(t), table)
	case types.Function, types.AsyncFunction:
		return decodeFunction(r, t, table)
	default:
		return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "unknown type kind byte %d", uint8(t.Kind))
	}
}

// encodeFunction writes a Function/AsyncFunction value as its declared-type
// hash followed by its IR (spec §4.4): the hash lets a reader reject a
// function whose actual shape no longer matches t before attempting to
// recompile it.
func encodeFunction(w *bytes.Buffer, t types.Type, v values.Value) error {
	portable, ok := v.FunctionVal().(ir.Portable)
	if !ok {
		return east_errors.New(east_errors.EncodingError, token.NoPos, "function value has no retained IR and cannot be put on the wire")
	}
	fn := portable.IR()
	writeVarUint(w, typeRegistry.Hash(t))
	data, err := EncodeFunction(fn)
	if err != nil {
		return err
	}
	writeVarUint(w, uint64(len(data)))
	w.Write(data)
	return nil
}

// decodeFunction is encodeFunction's inverse: it checks the declared-type
// hash, decodes the IR, and recompiles it against table so the result is a
// directly callable values.Function.
func decodeFunction(r *reader, t types.Type, table *platform.Table) (values.Value, error) {
	wantHash := typeRegistry.Hash(t)
	gotHash, err := readVarUint(r)
	if err != nil {
		return values.Value{}, err
	}
	if gotHash != wantHash {
		return values.Value{}, east_errors.New(east_errors.TypeMismatch, token.NoPos,
			"function value's declared-type hash does not match the expected type %s", t.Kind)
	}
	n, err := readVarUint(r)
	if err != nil {
		return values.Value{}, err
	}
	buf := make([]byte, n)
	if _, err := r.Read(buf); err != nil {
		return values.Value{}, err
	}
	fn, err := DecodeFunction(buf, table)
	if err != nil {
		return values.Value{}, err
	}
	if table == nil {
		table = platform.NewTable()
	}
	prog, err := compile.Compile(fn, table)
	if err != nil {
		return values.Value{}, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "recompiling decoded function")
	}
	return values.FunctionValue(prog), nil
}

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

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
)

// encodeType writes t's shape so a decoded IR tree's IR() nodes can carry
// their own ResultType across the wire (needed to recompile a decoded
// function without re-inferring every node). This is internal to the IR
// encoding, distinct from TypeType values (spec §3.1: "types are
// themselves values"), which go through encodeTypeValue below.
func encodeType(w *bytes.Buffer, t types.Type) error {
	w.WriteByte(byte(t.Kind))
	switch t.Kind {
	case types.Never, types.Null, types.Boolean, types.Integer, types.Float,
		types.String, types.DateTime, types.Blob, types.TypeType:
		return nil
	case types.Ref, types.Array, types.Set:
		return encodeType(w, *t.Elem)
	case types.Dict:
		if err := encodeType(w, *t.Key); err != nil {
			return err
		}
		return encodeType(w, *t.Value)
	case types.Struct:
		writeVarUint(w, uint64(len(t.Fields)))
		for _, f := range t.Fields {
			writeString(w, f.Name)
			if err := encodeType(w, f.Type); err != nil {
				return err
			}
		}
		return nil
	case types.Variant:
		writeVarUint(w, uint64(len(t.Tags)))
		for _, tg := range t.Tags {
			writeString(w, tg.Name)
			if err := encodeType(w, tg.Type); err != nil {
				return err
			}
		}
		return nil
	case types.Recursive:
		writeString(w, t.Var)
		return encodeType(w, *t.Body)
	case types.RecursiveVar:
		writeString(w, t.Var)
		return nil
	case types.Function, types.AsyncFunction:
		writeVarUint(w, uint64(len(t.In)))
		for _, it := range t.In {
			if err := encodeType(w, it); err != nil {
				return err
			}
		}
		if err := encodeType(w, *t.Out); err != nil {
			return err
		}
		w.WriteByte(boolByte(t.HasAllowlist))
		if t.HasAllowlist {
			writeVarUint(w, uint64(len(t.PlatformAllowlist)))
			for _, n := range t.PlatformAllowlist {
				writeString(w, n)
			}
		}
		return nil
	default:
		return east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode unknown type kind %d", t.Kind)
	}
}

func decodeType(r *reader) (types.Type, error) {
	kb, err := r.ReadByte()
	if err != nil {
		return types.Type{}, err
	}
	kind := types.Kind(kb)
	switch kind {
	case types.Never:
		return types.NeverType(), nil
	case types.Null:
		return types.NullType(), nil
	case types.Boolean:
		return types.BooleanType(), nil
	case types.Integer:
		return types.IntegerType(), nil
	case types.Float:
		return types.FloatType(), nil
	case types.String:
		return types.StringType(), nil
	case types.DateTime:
		return types.DateTimeType(), nil
	case types.Blob:
		return types.BlobType(), nil
	case types.TypeType:
		return types.TypeTypeType(), nil
	case types.Ref:
		e, err := decodeType(r)
		if err != nil {
			return types.Type{}, err
		}
		return types.RefType(e), nil
	case types.Array:
		e, err := decodeType(r)
		if err != nil {
			return types.Type{}, err
		}
		return types.ArrayType(e), nil
	case types.Set:
		e, err := decodeType(r)
		if err != nil {
			return types.Type{}, err
		}
		return types.SetType(e), nil
	case types.Dict:
		k, err := decodeType(r)
		if err != nil {
			return types.Type{}, err
		}
		v, err := decodeType(r)
		if err != nil {
			return types.Type{}, err
		}
		return types.DictType(k, v), nil
	case types.Struct:
		n, err := readVarUint(r)
		if err != nil {
			return types.Type{}, err
		}
		fields := make([]types.Field, n)
		for i := range fields {
			name, err := readString(r)
			if err != nil {
				return types.Type{}, err
			}
			ft, err := decodeType(r)
			if err != nil {
				return types.Type{}, err
			}
			fields[i] = types.Field{Name: name, Type: ft}
		}
		return types.StructType(fields...), nil
	case types.Variant:
		n, err := readVarUint(r)
		if err != nil {
			return types.Type{}, err
		}
		tags := make([]types.Tag, n)
		for i := range tags {
			name, err := readString(r)
			if err != nil {
				return types.Type{}, err
			}
			tt, err := decodeType(r)
			if err != nil {
				return types.Type{}, err
			}
			tags[i] = types.Tag{Name: name, Type: tt}
		}
		return types.VariantType(tags...), nil
	case types.Recursive:
		v, err := readString(r)
		if err != nil {
			return types.Type{}, err
		}
		body, err := decodeType(r)
		if err != nil {
			return types.Type{}, err
		}
		return types.RecursiveType(v, body), nil
	case types.RecursiveVar:
		v, err := readString(r)
		if err != nil {
			return types.Type{}, err
		}
		return types.RecursiveVarType(v), nil
	case types.Function, types.AsyncFunction:
		n, err := readVarUint(r)
		if err != nil {
			return types.Type{}, err
		}
		in := make([]types.Type, n)
		for i := range in {
			it, err := decodeType(r)
			if err != nil {
				return types.Type{}, err
			}
			in[i] = it
		}
		out, err := decodeType(r)
		if err != nil {
			return types.Type{}, err
		}
		hasAllow, err := r.ReadByte()
		if err != nil {
			return types.Type{}, err
		}
		var allow []string
		if hasAllow != 0 {
			an, err := readVarUint(r)
			if err != nil {
				return types.Type{}, err
			}
			allow = make([]string, an)
			for i := range allow {
				s, err := readString(r)
				if err != nil {
					return types.Type{}, err
				}
				allow[i] = s
			}
		}
		if kind == types.Function {
			return types.FunctionType(out, allowOrNil(hasAllow != 0, allow), in...), nil
		}
		return types.AsyncFunctionType(out, allowOrNil(hasAllow != 0, allow), in...), nil
	default:
		return types.Type{}, east_errors.New(east_errors.DecodingError, token.NoPos, "unknown type kind byte %d", kb)
	}
}

func allowOrNil(has bool, allow []string) []string {
	if !has {
		return nil
	}
	if allow == nil {
		return []string{}
	}
	return allow
}

func writeString(w *bytes.Buffer, s string) {
	b := []byte(s)
	writeVarUint(w, uint64(len(b)))
	w.Write(b)
}

func readString(r *reader) (string, error) {
	n, err := readVarUint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := r.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// encodeTypeValue writes a TypeType inhabitant: a type used as data (spec
// §3.1 "types are themselves values"), reusing the same shape codec.
func encodeTypeValue(w *bytes.Buffer, t types.Type) error {
	return encodeType(w, t)
}

func decodeTypeValue(r *reader) (types.Type, error) {
	return decodeType(r)
}

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

// Package json implements East's self-describing JSON codec (spec §4.5):
// a type-directed mirror of [beast2]'s binary encoding, spelled so a human
// or a generic JSON tool can read it. It is the tooling/debugging form;
// [beast2] remains canonical for transport.
package json

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/elaraai/east/compile"
	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

var typeRegistry = types.NewRegistry()

// dateTimeLayout is the ISO-8601 spelling spec §4.5 requires: millisecond
// precision, a literal trailing "Z" (East's DateTime carries no timezone).
const dateTimeLayout = "2006-01-02T15:04:05.000Z"

// Encode renders v, an inhabitant of t, as self-describing JSON (spec
// §4.5). As with [beast2.Encode], t is supplied by the caller; the codec
// never discovers it from v (spec §3.2).
func Encode(t types.Type, v values.Value) ([]byte, error) {
	enc, err := encodeValueJSON(t, v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(enc)
}

// Decode parses data as an inhabitant of t. table resolves any platform
// calls reachable from a decoded Function/AsyncFunction value, exactly as
// for [beast2.Decode]; it may be nil if t carries no function anywhere in
// its shape.
func Decode(t types.Type, data []byte, table *platform.Table) (values.Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return values.Value{}, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "invalid JSON")
	}
	return decodeValueJSON(t, raw, table)
}

func encodeValueJSON(t types.Type, v values.Value) (any, error) {
	switch t.Kind {
	case types.Never:
		return nil, east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode a value of type Never")
	case types.Null:
		return nil, nil
	case types.Boolean:
		return v.Bool(), nil
	case types.Integer:
		return v.Int().Text('f'), nil
	case types.Float:
		return encodeFloatJSON(v.Float64()), nil
	case types.String:
		return v.Str(), nil
	case types.DateTime:
		return time.UnixMilli(v.DateTimeMillis()).UTC().Format(dateTimeLayout), nil
	case types.Blob:
		return base64.StdEncoding.EncodeToString(v.BlobBytes()), nil
	case types.TypeType:
		return encodeTypeJSON(v.TypeVal()), nil
	case types.Ref:
		return encodeValueJSON(*t.Elem, v.RefCell().Get())
	case types.Array:
		return encodeSequenceJSON(*t.Elem, v.ArrayVal().Values())
	case types.Set:
		return encodeSequenceJSON(*t.Elem, v.SetVal().Values())
	case types.Dict:
		entries := v.DictVal().Entries()
		out := make([][2]any, len(entries))
		for i, e := range entries {
			k, err := encodeValueJSON(*t.Key, e.Key)
			if err != nil {
				return nil, err
			}
			val, err := encodeValueJSON(*t.Value, e.Value)
			if err != nil {
				return nil, err
			}
			out[i] = [2]any{k, val}
		}
		return out, nil
	case types.Struct:
		s := v.StructVal()
		m := make(map[string]any, len(t.Fields))
		for _, f := range t.Fields {
			fv, ok := s.Field(f.Name)
			if !ok {
				return nil, east_errors.New(east_errors.MissingField, token.NoPos, "struct value is missing declared field %q", f.Name)
			}
			enc, err := encodeValueJSON(f.Type, fv)
			if err != nil {
				return nil, err
			}
			m[f.Name] = enc
		}
		return m, nil
	case types.Variant:
		vr := v.VariantVal()
		var payloadType types.Type
		found := false
		for _, tg := range t.Tags {
			if tg.Name == vr.Tag {
				payloadType = tg.Type
				found = true
				break
			}
		}
		if !found {
			return nil, east_errors.New(east_errors.UnknownVariantTag, token.NoPos, "variant tag %q is not declared on this type", vr.Tag)
		}
		payload, err := encodeValueJSON(payloadType, vr.Payload)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": vr.Tag, "value": payload}, nil
	case types.Recursive:
		return encodeValueJSON(types.Unfold(t), v)
	case types.Function, types.AsyncFunction:
		return encodeFunctionValueJSON(t, v)
	default:
		return nil, east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode unknown type kind %d", t.Kind)
	}
}

func encodeSequenceJSON(elem types.Type, items []values.Value) (any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		enc, err := encodeValueJSON(elem, item)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

// encodeFloatJSON spells finite floats as JSON numbers and the three
// non-finite classes as sentinel strings (spec §4.5): NaN is collapsed to
// a single spelling regardless of bit pattern, mirroring beast2's
// canonical-NaN rule.
func encodeFloatJSON(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}

func decodeValueJSON(t types.Type, raw any, table *platform.Table) (values.Value, error) {
	switch t.Kind {
	case types.Never:
		return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "cannot decode a value of type Never")
	case types.Null:
		return values.Null(), nil
	case types.Boolean:
		b, ok := raw.(bool)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON boolean, got %T", raw)
		}
		return values.Boolean(b), nil
	case types.Integer:
		s, ok := raw.(string)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON string for Integer, got %T", raw)
		}
		d, _, err := apd.NewFromString(s)
		if err != nil {
			return values.Value{}, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "invalid Integer string %q", s)
		}
		return values.Integer(d), nil
	case types.Float:
		f, err := decodeFloatJSON(raw)
		if err != nil {
			return values.Value{}, err
		}
		return values.Float(f), nil
	case types.String:
		s, ok := raw.(string)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON string, got %T", raw)
		}
		return values.String(s), nil
	case types.DateTime:
		s, ok := raw.(string)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON string for DateTime, got %T", raw)
		}
		tm, err := time.Parse(dateTimeLayout, s)
		if err != nil {
			return values.Value{}, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "invalid DateTime string %q", s)
		}
		return values.DateTime(tm.UnixMilli()), nil
	case types.Blob:
		s, ok := raw.(string)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON string for Blob, got %T", raw)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return values.Value{}, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "invalid base64 in Blob")
		}
		return values.Blob(b), nil
	case types.TypeType:
		tv, err := decodeTypeJSON(raw)
		if err != nil {
			return values.Value{}, err
		}
		return values.TypeValue(tv), nil
	case types.Ref:
		inner, err := decodeValueJSON(*t.Elem, raw, table)
		if err != nil {
			return values.Value{}, err
		}
		return values.RefValue(values.NewRef(inner)), nil
	case types.Array:
		items, err := decodeSequenceJSON(*t.Elem, raw, table)
		if err != nil {
			return values.Value{}, err
		}
		return values.ArrayValue(values.NewArray(items...)), nil
	case types.Set:
		items, err := decodeSequenceJSON(*t.Elem, raw, table)
		if err != nil {
			return values.Value{}, err
		}
		set := values.NewOrderedSet(*t.Elem)
		for _, item := range items {
			if err := set.Add(item); err != nil {
				return values.Value{}, err
			}
		}
		return values.SetValue(set), nil
	case types.Dict:
		arr, ok := raw.([]any)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON array of pairs for Dict, got %T", raw)
		}
		dict := values.NewOrderedDict(*t.Key, *t.Value)
		for _, pairRaw := range arr {
			pair, ok := pairRaw.([]any)
			if !ok || len(pair) != 2 {
				return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "Dict entry must be a 2-element array")
			}
			k, err := decodeValueJSON(*t.Key, pair[0], table)
			if err != nil {
				return values.Value{}, err
			}
			val, err := decodeValueJSON(*t.Value, pair[1], table)
			if err != nil {
				return values.Value{}, err
			}
			if err := dict.Set(k, val); err != nil {
				return values.Value{}, err
			}
		}
		return values.DictValue(dict), nil
	case types.Struct:
		m, ok := raw.(map[string]any)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON object for Struct, got %T", raw)
		}
		names := make([]string, len(t.Fields))
		vals := make([]values.Value, len(t.Fields))
		for i, f := range t.Fields {
			fr, ok := m[f.Name]
			if !ok {
				return values.Value{}, east_errors.New(east_errors.MissingField, token.NoPos, "struct JSON is missing field %q", f.Name)
			}
			v, err := decodeValueJSON(f.Type, fr, table)
			if err != nil {
				return values.Value{}, err
			}
			names[i] = f.Name
			vals[i] = v
		}
		s, err := values.NewStruct(names, vals)
		if err != nil {
			return values.Value{}, east_errors.Push(err, east_errors.DecodingError, token.NoPos)
		}
		return values.StructValue(s), nil
	case types.Variant:
		m, ok := raw.(map[string]any)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, `expected a JSON object {"type":...,"value":...} for Variant, got %T`, raw)
		}
		tag, _ := m["type"].(string)
		var payloadType types.Type
		found := false
		for _, tg := range t.Tags {
			if tg.Name == tag {
				payloadType = tg.Type
				found = true
				break
			}
		}
		if !found {
			return values.Value{}, east_errors.New(east_errors.UnknownVariantTag, token.NoPos, "variant tag %q is not declared on this type", tag)
		}
		payload, err := decodeValueJSON(payloadType, m["value"], table)
		if err != nil {
			return values.Value{}, err
		}
		return values.VariantValue(values.NewVariant(tag, payload)), nil
	case types.Recursive:
		return decodeValueJSON(types.Unfold(t), raw, table)
	case types.Function, types.AsyncFunction:
		return decodeFunctionValueJSON(t, raw, table)
	default:
		return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "cannot decode unknown type kind %d", t.Kind)
	}
}

func decodeSequenceJSON(elem types.Type, raw any, table *platform.Table) ([]values.Value, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON array, got %T", raw)
	}
	out := make([]values.Value, len(arr))
	for i, r := range arr {
		v, err := decodeValueJSON(elem, r, table)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeFloatJSON(raw any) (float64, error) {
	switch x := raw.(type) {
	case string:
		switch x {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		default:
			return 0, east_errors.New(east_errors.DecodingError, token.NoPos, "invalid Float sentinel string %q", x)
		}
	case float64:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "invalid Float")
		}
		return f, nil
	default:
		return 0, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON number or sentinel string for Float, got %T", raw)
	}
}

// encodeFunctionValueJSON mirrors beast2's declared-type-hash-then-IR
// shape (spec §4.4, applied to JSON per §4.5/§6.3): {"typeHash":"...",
// "ir": <node JSON>}.
func encodeFunctionValueJSON(t types.Type, v values.Value) (any, error) {
	portable, ok := v.FunctionVal().(ir.Portable)
	if !ok {
		return nil, east_errors.New(east_errors.EncodingError, token.NoPos, "function value has no retained IR and cannot be put in JSON")
	}
	fn := portable.IR()
	hash := typeRegistry.Hash(t)
	irJSON, err := encodeFunctionIR(fn)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"typeHash": fmt.Sprintf("%d", hash),
		"ir":       irJSON,
	}, nil
}

func decodeFunctionValueJSON(t types.Type, raw any, table *platform.Table) (values.Value, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return values.Value{}, east_errors.New(east_errors.DecodingError, token.NoPos, "expected a JSON object for a function value, got %T", raw)
	}
	wantHash := fmt.Sprintf("%d", typeRegistry.Hash(t))
	if gotHash, _ := m["typeHash"].(string); gotHash != wantHash {
		return values.Value{}, east_errors.New(east_errors.TypeMismatch, token.NoPos,
			"function value's declared-type hash does not match the expected type %s", t.Kind)
	}
	fn, err := decodeFunctionIRWithTable(m["ir"], table)
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

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

package json

import (
	"encoding/json"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
)

// EncodeType renders t as the self-describing JSON tree that `east`'s
// CLI subcommands read and write as a "type file" (spec §6.1/§8.1).
func EncodeType(t types.Type) ([]byte, error) {
	return json.MarshalIndent(encodeTypeJSON(t), "", "  ")
}

// DecodeType parses data as a type file in the shape EncodeType produces.
func DecodeType(data []byte) (types.Type, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Type{}, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "invalid type JSON")
	}
	return decodeTypeJSON(raw)
}

// encodeTypeJSON renders t as a self-describing JSON tree, the same
// "kind" tagged shape the IR JSON schema (spec §6.3) uses for a node's
// ResultType field and that a TypeType value's payload uses directly.
func encodeTypeJSON(t types.Type) map[string]any {
	m := map[string]any{"kind": t.Kind.String()}
	switch t.Kind {
	case types.Never, types.Null, types.Boolean, types.Integer, types.Float,
		types.String, types.DateTime, types.Blob, types.TypeType:
	case types.Ref, types.Array, types.Set:
		m["elem"] = encodeTypeJSON(*t.Elem)
	case types.Dict:
		m["key"] = encodeTypeJSON(*t.Key)
		m["value"] = encodeTypeJSON(*t.Value)
	case types.Struct:
		fields := make([]map[string]any, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = map[string]any{"name": f.Name, "type": encodeTypeJSON(f.Type)}
		}
		m["fields"] = fields
	case types.Variant:
		tags := make([]map[string]any, len(t.Tags))
		for i, tg := range t.Tags {
			tags[i] = map[string]any{"name": tg.Name, "type": encodeTypeJSON(tg.Type)}
		}
		m["tags"] = tags
	case types.Recursive:
		m["var"] = t.Var
		m["body"] = encodeTypeJSON(*t.Body)
	case types.RecursiveVar:
		m["var"] = t.Var
	case types.Function, types.AsyncFunction:
		in := make([]map[string]any, len(t.In))
		for i, it := range t.In {
			in[i] = encodeTypeJSON(it)
		}
		m["in"] = in
		m["out"] = encodeTypeJSON(*t.Out)
		if t.HasAllowlist {
			allow := append([]string(nil), t.PlatformAllowlist...)
			m["platformAllowlist"] = allow
		}
	}
	return m
}

func decodeTypeJSON(v any) (types.Type, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return types.Type{}, east_errors.New(east_errors.DecodingError, token.NoPos, "type JSON node must be an object")
	}
	kindName, _ := m["kind"].(string)
	kind, ok := kindFromName(kindName)
	if !ok {
		return types.Type{}, east_errors.New(east_errors.DecodingError, token.NoPos, "unknown type kind %q", kindName)
	}
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
		e, err := decodeTypeJSON(m["elem"])
		if err != nil {
			return types.Type{}, err
		}
		return types.RefType(e), nil
	case types.Array:
		e, err := decodeTypeJSON(m["elem"])
		if err != nil {
			return types.Type{}, err
		}
		return types.ArrayType(e), nil
	case types.Set:
		e, err := decodeTypeJSON(m["elem"])
		if err != nil {
			return types.Type{}, err
		}
		return types.SetType(e), nil
	case types.Dict:
		k, err := decodeTypeJSON(m["key"])
		if err != nil {
			return types.Type{}, err
		}
		val, err := decodeTypeJSON(m["value"])
		if err != nil {
			return types.Type{}, err
		}
		return types.DictType(k, val), nil
	case types.Struct:
		raw, _ := m["fields"].([]any)
		fields := make([]types.Field, len(raw))
		for i, r := range raw {
			fm, _ := r.(map[string]any)
			name, _ := fm["name"].(string)
			ft, err := decodeTypeJSON(fm["type"])
			if err != nil {
				return types.Type{}, err
			}
			fields[i] = types.Field{Name: name, Type: ft}
		}
		return types.StructType(fields...), nil
	case types.Variant:
		raw, _ := m["tags"].([]any)
		tags := make([]types.Tag, len(raw))
		for i, r := range raw {
			tm, _ := r.(map[string]any)
			name, _ := tm["name"].(string)
			tt, err := decodeTypeJSON(tm["type"])
			if err != nil {
				return types.Type{}, err
			}
			tags[i] = types.Tag{Name: name, Type: tt}
		}
		return types.VariantType(tags...), nil
	case types.Recursive:
		v, _ := m["var"].(string)
		body, err := decodeTypeJSON(m["body"])
		if err != nil {
			return types.Type{}, err
		}
		return types.RecursiveType(v, body), nil
	case types.RecursiveVar:
		v, _ := m["var"].(string)
		return types.RecursiveVarType(v), nil
	case types.Function, types.AsyncFunction:
		rawIn, _ := m["in"].([]any)
		in := make([]types.Type, len(rawIn))
		for i, r := range rawIn {
			it, err := decodeTypeJSON(r)
			if err != nil {
				return types.Type{}, err
			}
			in[i] = it
		}
		out, err := decodeTypeJSON(m["out"])
		if err != nil {
			return types.Type{}, err
		}
		var allow []string
		if raw, ok := m["platformAllowlist"].([]any); ok {
			allow = make([]string, len(raw))
			for i, r := range raw {
				allow[i], _ = r.(string)
			}
		}
		if kind == types.Function {
			return types.FunctionType(out, allow, in...), nil
		}
		return types.AsyncFunctionType(out, allow, in...), nil
	default:
		return types.Type{}, east_errors.New(east_errors.DecodingError, token.NoPos, "unknown type kind %q", kindName)
	}
}

func kindFromName(name string) (types.Kind, bool) {
	for k := types.Never; k <= types.TypeType; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

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
	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
)

// EncodeFunctionIR renders fn as the IR JSON schema (spec §6.3): a stable,
// human-readable tree a debugger or an offline tool can consume without
// touching Beast2 at all. It is also the shape a Function/AsyncFunction
// value's "ir" field carries when the value itself is put in JSON.
func EncodeFunctionIR(fn *ir.Function) (any, error) {
	return encodeFunctionIR(fn)
}

// DecodeFunctionIR is EncodeFunctionIR's inverse. table resolves any
// nested function-typed literal the body may carry.
func DecodeFunctionIR(raw any, table *platform.Table) (*ir.Function, error) {
	return decodeFunctionIRWithTable(raw, table)
}

func encodeFunctionIR(fn *ir.Function) (any, error) {
	params := make([]any, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = map[string]any{"name": p.Name, "type": encodeTypeJSON(p.Type)}
	}
	platforms := make([]any, len(fn.Platforms))
	for i, ref := range fn.Platforms {
		in := make([]any, len(ref.Params))
		for j, p := range ref.Params {
			in[j] = encodeTypeJSON(p)
		}
		platforms[i] = map[string]any{
			"name":   ref.Name,
			"params": in,
			"result": encodeTypeJSON(ref.Result),
			"async":  ref.Async,
		}
	}
	body, err := encodeIRNode(fn.Body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"declaredType": encodeTypeJSON(fn.DeclaredType),
		"params":       params,
		"platforms":    platforms,
		"body":         body,
	}, nil
}

// decodeFunctionIR decodes raw with no platform table: a function-typed
// literal nested in the body is recompiled against an empty table. The
// value codec in json.go passes its own table to
// decodeFunctionIRWithTable instead.
func decodeFunctionIR(raw any) (*ir.Function, error) {
	return decodeFunctionIRWithTable(raw, nil)
}

func decodeFunctionIRWithTable(raw any, table *platform.Table) (*ir.Function, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, east_errors.New(east_errors.DecodingError, token.NoPos, "function IR JSON must be an object")
	}
	declared, err := decodeTypeJSON(m["declaredType"])
	if err != nil {
		return nil, err
	}
	rawParams, _ := m["params"].([]any)
	params := make([]ir.Param, len(rawParams))
	for i, r := range rawParams {
		pm, _ := r.(map[string]any)
		name, _ := pm["name"].(string)
		pt, err := decodeTypeJSON(pm["type"])
		if err != nil {
			return nil, err
		}
		params[i] = ir.Param{Name: name, Type: pt}
	}
	rawPlatforms, _ := m["platforms"].([]any)
	refs := make([]ir.PlatformRef, len(rawPlatforms))
	for i, r := range rawPlatforms {
		rm, _ := r.(map[string]any)
		name, _ := rm["name"].(string)
		rawIn, _ := rm["params"].([]any)
		in := make([]types.Type, len(rawIn))
		for j, pr := range rawIn {
			pt, err := decodeTypeJSON(pr)
			if err != nil {
				return nil, err
			}
			in[j] = pt
		}
		result, err := decodeTypeJSON(rm["result"])
		if err != nil {
			return nil, err
		}
		async, _ := rm["async"].(bool)
		refs[i] = ir.PlatformRef{Name: name, Params: in, Result: result, Async: async}
	}
	body, err := decodeIRNode(m["body"], table)
	if err != nil {
		return nil, err
	}
	return &ir.Function{DeclaredType: declared, Params: params, Body: body, Platforms: refs}, nil
}

func encodePosJSON(pos token.Position) any {
	return map[string]any{
		"filename": pos.Filename,
		"offset":   pos.Offset,
		"line":     pos.Line,
		"column":   pos.Column,
		"length":   pos.Length,
	}
}

func decodePosJSON(raw any) token.Position {
	m, _ := raw.(map[string]any)
	asInt := func(v any) int {
		f, _ := v.(float64)
		return int(f)
	}
	filename, _ := m["filename"].(string)
	return token.Position{
		Filename: filename,
		Offset:   asInt(m["offset"]),
		Line:     asInt(m["line"]),
		Column:   asInt(m["column"]),
		Length:   asInt(m["length"]),
	}
}

func encodeIRNode(n ir.Node) (any, error) {
	if n == nil {
		return nil, east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode a nil IR node")
	}
	m := map[string]any{
		"kind": n.Kind().String(),
		"type": encodeTypeJSON(n.Type()),
		"pos":  encodePosJSON(n.Pos()),
	}
	switch x := n.(type) {
	case *ir.Literal:
		v, err := encodeValueJSON(n.Type(), x.Value)
		if err != nil {
			return nil, err
		}
		m["value"] = v
	case *ir.VarRef:
		m["name"] = x.Name
	case *ir.Let:
		m["name"] = x.Name
		val, err := encodeIRNode(x.Value)
		if err != nil {
			return nil, err
		}
		body, err := encodeIRNode(x.Body)
		if err != nil {
			return nil, err
		}
		m["value"] = val
		m["body"] = body
	case *ir.Assign:
		target, err := encodeIRNode(x.Target)
		if err != nil {
			return nil, err
		}
		val, err := encodeIRNode(x.Value)
		if err != nil {
			return nil, err
		}
		m["target"] = target
		m["value"] = val
	case *ir.Block:
		stmts := make([]any, len(x.Stmts))
		for i, s := range x.Stmts {
			enc, err := encodeIRNode(s)
			if err != nil {
				return nil, err
			}
			stmts[i] = enc
		}
		m["stmts"] = stmts
	case *ir.If:
		cond, err := encodeIRNode(x.Cond)
		if err != nil {
			return nil, err
		}
		then, err := encodeIRNode(x.Then)
		if err != nil {
			return nil, err
		}
		m["cond"] = cond
		m["then"] = then
		if x.Else != nil {
			els, err := encodeIRNode(x.Else)
			if err != nil {
				return nil, err
			}
			m["else"] = els
		}
	case *ir.For:
		iterable, err := encodeIRNode(x.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := encodeIRNode(x.Body)
		if err != nil {
			return nil, err
		}
		m["var"] = x.Var
		m["iterable"] = iterable
		m["body"] = body
	case *ir.Loop:
		body, err := encodeIRNode(x.Body)
		if err != nil {
			return nil, err
		}
		m["body"] = body
	case *ir.Break:
		if x.Value != nil {
			val, err := encodeIRNode(x.Value)
			if err != nil {
				return nil, err
			}
			m["value"] = val
		}
	case *ir.Continue:
	case *ir.Return:
		val, err := encodeIRNode(x.Value)
		if err != nil {
			return nil, err
		}
		m["value"] = val
	case *ir.Call:
		callee, err := encodeIRNode(x.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(x.Args))
		for i, a := range x.Args {
			enc, err := encodeIRNode(a)
			if err != nil {
				return nil, err
			}
			args[i] = enc
		}
		m["callee"] = callee
		m["args"] = args
	case *ir.PlatformCall:
		args := make([]any, len(x.Args))
		for i, a := range x.Args {
			enc, err := encodeIRNode(a)
			if err != nil {
				return nil, err
			}
			args[i] = enc
		}
		m["name"] = x.Name
		m["args"] = args
	case *ir.FieldAccess:
		obj, err := encodeIRNode(x.Object)
		if err != nil {
			return nil, err
		}
		m["object"] = obj
		m["field"] = x.Field
	case *ir.Construct:
		fields := make([]any, len(x.Fields))
		for i, f := range x.Fields {
			val, err := encodeIRNode(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = map[string]any{"name": f.Name, "value": val}
		}
		m["fields"] = fields
	case *ir.VariantConstruct:
		payload, err := encodeIRNode(x.Payload)
		if err != nil {
			return nil, err
		}
		m["tag"] = x.Tag
		m["payload"] = payload
	case *ir.Match:
		subject, err := encodeIRNode(x.Subject)
		if err != nil {
			return nil, err
		}
		arms := make([]any, len(x.Arms))
		for i, arm := range x.Arms {
			body, err := encodeIRNode(arm.Body)
			if err != nil {
				return nil, err
			}
			arms[i] = map[string]any{
				"tag":      arm.Tag,
				"wildcard": arm.Wildcard,
				"bind":     arm.Bind,
				"body":     body,
			}
		}
		m["subject"] = subject
		m["arms"] = arms
	case *ir.BinaryOp:
		left, err := encodeIRNode(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeIRNode(x.Right)
		if err != nil {
			return nil, err
		}
		m["op"] = string(x.Op)
		m["left"] = left
		m["right"] = right
	case *ir.UnaryOp:
		operand, err := encodeIRNode(x.Operand)
		if err != nil {
			return nil, err
		}
		m["op"] = string(x.Op)
		m["operand"] = operand
	default:
		return nil, east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode unknown IR node kind %s", n.Kind())
	}
	return m, nil
}

func decodeIRNode(raw any, table *platform.Table) (ir.Node, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, east_errors.New(east_errors.DecodingError, token.NoPos, "IR node JSON must be an object")
	}
	kindName, _ := m["kind"].(string)
	kind, ok := nodeKindFromName(kindName)
	if !ok {
		return nil, east_errors.New(east_errors.DecodingError, token.NoPos, "unknown IR node kind %q", kindName)
	}
	t, err := decodeTypeJSON(m["type"])
	if err != nil {
		return nil, err
	}
	pos := decodePosJSON(m["pos"])

	child := func(key string) (ir.Node, error) { return decodeIRNode(m[key], table) }

	switch kind {
	case ir.KindLiteral:
		v, err := decodeValueJSON(t, m["value"], table)
		if err != nil {
			return nil, err
		}
		return ir.NewLiteral(pos, t, v), nil
	case ir.KindVarRef:
		name, _ := m["name"].(string)
		return ir.NewVarRef(pos, t, name), nil
	case ir.KindLet:
		name, _ := m["name"].(string)
		val, err := child("value")
		if err != nil {
			return nil, err
		}
		body, err := child("body")
		if err != nil {
			return nil, err
		}
		return ir.NewLet(pos, t, name, val, body), nil
	case ir.KindAssign:
		target, err := child("target")
		if err != nil {
			return nil, err
		}
		val, err := child("value")
		if err != nil {
			return nil, err
		}
		return ir.NewAssign(pos, t, target, val), nil
	case ir.KindBlock:
		rawStmts, _ := m["stmts"].([]any)
		stmts := make([]ir.Node, len(rawStmts))
		for i, r := range rawStmts {
			stmts[i], err = decodeIRNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewBlock(pos, t, stmts), nil
	case ir.KindIf:
		cond, err := child("cond")
		if err != nil {
			return nil, err
		}
		then, err := child("then")
		if err != nil {
			return nil, err
		}
		var els ir.Node
		if _, ok := m["else"]; ok {
			els, err = child("else")
			if err != nil {
				return nil, err
			}
		}
		return ir.NewIf(pos, t, cond, then, els), nil
	case ir.KindFor:
		v, _ := m["var"].(string)
		iterable, err := child("iterable")
		if err != nil {
			return nil, err
		}
		body, err := child("body")
		if err != nil {
			return nil, err
		}
		return ir.NewFor(pos, t, v, iterable, body), nil
	case ir.KindLoop:
		body, err := child("body")
		if err != nil {
			return nil, err
		}
		return ir.NewLoop(pos, t, body), nil
	case ir.KindBreak:
		var val ir.Node
		if _, ok := m["value"]; ok {
			val, err = child("value")
			if err != nil {
				return nil, err
			}
		}
		return ir.NewBreak(pos, t, val), nil
	case ir.KindContinue:
		return ir.NewContinue(pos, t), nil
	case ir.KindReturn:
		val, err := child("value")
		if err != nil {
			return nil, err
		}
		return ir.NewReturn(pos, t, val), nil
	case ir.KindCall:
		callee, err := child("callee")
		if err != nil {
			return nil, err
		}
		rawArgs, _ := m["args"].([]any)
		args := make([]ir.Node, len(rawArgs))
		for i, r := range rawArgs {
			args[i], err = decodeIRNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewCall(pos, t, callee, args), nil
	case ir.KindPlatformCall:
		name, _ := m["name"].(string)
		rawArgs, _ := m["args"].([]any)
		args := make([]ir.Node, len(rawArgs))
		for i, r := range rawArgs {
			args[i], err = decodeIRNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewPlatformCall(pos, t, name, args), nil
	case ir.KindFieldAccess:
		obj, err := child("object")
		if err != nil {
			return nil, err
		}
		field, _ := m["field"].(string)
		return ir.NewFieldAccess(pos, t, obj, field), nil
	case ir.KindConstruct:
		rawFields, _ := m["fields"].([]any)
		fields := make([]ir.ConstructField, len(rawFields))
		for i, r := range rawFields {
			fm, _ := r.(map[string]any)
			name, _ := fm["name"].(string)
			val, err := decodeIRNode(fm["value"], table)
			if err != nil {
				return nil, err
			}
			fields[i] = ir.ConstructField{Name: name, Value: val}
		}
		return ir.NewConstruct(pos, t, fields), nil
	case ir.KindVariantConstruct:
		tag, _ := m["tag"].(string)
		payload, err := child("payload")
		if err != nil {
			return nil, err
		}
		return ir.NewVariantConstruct(pos, t, tag, payload), nil
	case ir.KindMatch:
		subject, err := child("subject")
		if err != nil {
			return nil, err
		}
		rawArms, _ := m["arms"].([]any)
		arms := make([]ir.MatchArm, len(rawArms))
		for i, r := range rawArms {
			am, _ := r.(map[string]any)
			tag, _ := am["tag"].(string)
			wildcard, _ := am["wildcard"].(bool)
			bind, _ := am["bind"].(string)
			body, err := decodeIRNode(am["body"], table)
			if err != nil {
				return nil, err
			}
			arms[i] = ir.MatchArm{Tag: tag, Wildcard: wildcard, Bind: bind, Body: body}
		}
		return ir.NewMatch(pos, t, subject, arms), nil
	case ir.KindBinaryOp:
		op, _ := m["op"].(string)
		left, err := child("left")
		if err != nil {
			return nil, err
		}
		right, err := child("right")
		if err != nil {
			return nil, err
		}
		return ir.NewBinaryOp(pos, t, ir.BinaryOperator(op), left, right), nil
	case ir.KindUnaryOp:
		op, _ := m["op"].(string)
		operand, err := child("operand")
		if err != nil {
			return nil, err
		}
		return ir.NewUnaryOp(pos, t, ir.UnaryOperator(op), operand), nil
	default:
		return nil, east_errors.New(east_errors.DecodingError, pos, "unknown IR node kind %q", kindName)
	}
}

func nodeKindFromName(name string) (ir.NodeKind, bool) {
	for k := ir.KindLiteral; k <= ir.KindUnaryOp; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

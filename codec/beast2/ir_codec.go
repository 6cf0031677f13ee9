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
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
)

// EncodeFunction serializes fn — its declared type, parameters, body and
// platform references — as the self-contained byte sequence a Function/
// AsyncFunction value carries on the wire (spec §4.4). The caller (see
// Encode's Function/AsyncFunction case) is responsible for the leading
// declared-type hash; EncodeFunction only covers the IR itself.
func EncodeFunction(fn *ir.Function) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeType(&buf, fn.DeclaredType); err != nil {
		return nil, err
	}
	writeVarUint(&buf, uint64(len(fn.Params)))
	for _, p := range fn.Params {
		writeString(&buf, p.Name)
		if err := encodeType(&buf, p.Type); err != nil {
			return nil, err
		}
	}
	writeVarUint(&buf, uint64(len(fn.Platforms)))
	for _, ref := range fn.Platforms {
		writeString(&buf, ref.Name)
		writeVarUint(&buf, uint64(len(ref.Params)))
		for _, p := range ref.Params {
			if err := encodeType(&buf, p); err != nil {
				return nil, err
			}
		}
		if err := encodeType(&buf, ref.Result); err != nil {
			return nil, err
		}
		buf.WriteByte(boolByte(ref.Async))
	}
	if err := encodeNode(&buf, fn.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFunction is EncodeFunction's inverse. table resolves any nested
// function-typed literal the body may carry (a function value quoted
// inside another function's IR); it may be nil if the caller already knows
// the body contains no such literal.
func DecodeFunction(data []byte, table *platform.Table) (*ir.Function, error) {
	r := newReader(data)
	declared, err := decodeType(r)
	if err != nil {
		return nil, err
	}
	pn, err := readVarUint(r)
	if err != nil {
		return nil, err
	}
	params := make([]ir.Param, pn)
	for i := range params {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		pt, err := decodeType(r)
		if err != nil {
			return nil, err
		}
		params[i] = ir.Param{Name: name, Type: pt}
	}
	rn, err := readVarUint(r)
	if err != nil {
		return nil, err
	}
	refs := make([]ir.PlatformRef, rn)
	for i := range refs {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		an, err := readVarUint(r)
		if err != nil {
			return nil, err
		}
		in := make([]types.Type, an)
		for j := range in {
			it, err := decodeType(r)
			if err != nil {
				return nil, err
			}
			in[j] = it
		}
		result, err := decodeType(r)
		if err != nil {
			return nil, err
		}
		asyncB, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		refs[i] = ir.PlatformRef{Name: name, Params: in, Result: result, Async: asyncB != 0}
	}
	body, err := decodeNode(r, table)
	if err != nil {
		return nil, err
	}
	return &ir.Function{DeclaredType: declared, Params: params, Body: body, Platforms: refs}, nil
}

// encodePos writes pos's fields verbatim. Positions round-trip even though
// they carry no semantic weight for evaluation, so a decoded IR tree can
// still produce the original source locations in error traces.
func encodePos(w *bytes.Buffer, pos token.Position) {
	writeString(w, pos.Filename)
	writeVarUint(w, zigzag64(int64(pos.Offset)))
	writeVarUint(w, zigzag64(int64(pos.Line)))
	writeVarUint(w, zigzag64(int64(pos.Column)))
	writeVarUint(w, zigzag64(int64(pos.Length)))
}

func decodePos(r *reader) (token.Position, error) {
	filename, err := readString(r)
	if err != nil {
		return token.Position{}, err
	}
	offset, err := readZigzagVarint(r)
	if err != nil {
		return token.Position{}, err
	}
	line, err := readZigzagVarint(r)
	if err != nil {
		return token.Position{}, err
	}
	column, err := readZigzagVarint(r)
	if err != nil {
		return token.Position{}, err
	}
	length, err := readZigzagVarint(r)
	if err != nil {
		return token.Position{}, err
	}
	return token.Position{
		Filename: filename,
		Offset:   int(offset),
		Line:     int(line),
		Column:   int(column),
		Length:   int(length),
	}, nil
}

func readZigzagVarint(r *reader) (int64, error) {
	u, err := readVarUint(r)
	if err != nil {
		return 0, err
	}
	return unzigzag64(u), nil
}

func encodeNode(w *bytes.Buffer, n ir.Node) error {
	if n == nil {
		return east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode a nil IR node")
	}
	w.WriteByte(byte(n.Kind()))
	if err := encodeType(w, n.Type()); err != nil {
		return err
	}
	encodePos(w, n.Pos())
	switch x := n.(type) {
	case *ir.Literal:
		return encodeValue(w, n.Type(), x.Value)
	case *ir.VarRef:
		writeString(w, x.Name)
		return nil
	case *ir.Let:
		writeString(w, x.Name)
		if err := encodeNode(w, x.Value); err != nil {
			return err
		}
		return encodeNode(w, x.Body)
	case *ir.Assign:
		if err := encodeNode(w, x.Target); err != nil {
			return err
		}
		return encodeNode(w, x.Value)
	case *ir.Block:
		writeVarUint(w, uint64(len(x.Stmts)))
		for _, s := range x.Stmts {
			if err := encodeNode(w, s); err != nil {
				return err
			}
		}
		return nil
	case *ir.If:
		if err := encodeNode(w, x.Cond); err != nil {
			return err
		}
		if err := encodeNode(w, x.Then); err != nil {
			return err
		}
		w.WriteByte(boolByte(x.Else != nil))
		if x.Else != nil {
			return encodeNode(w, x.Else)
		}
		return nil
	case *ir.For:
		writeString(w, x.Var)
		if err := encodeNode(w, x.Iterable); err != nil {
			return err
		}
		return encodeNode(w, x.Body)
	case *ir.Loop:
		return encodeNode(w, x.Body)
	case *ir.Break:
		w.WriteByte(boolByte(x.Value != nil))
		if x.Value != nil {
			return encodeNode(w, x.Value)
		}
		return nil
	case *ir.Continue:
		return nil
	case *ir.Return:
		return encodeNode(w, x.Value)
	case *ir.Call:
		if err := encodeNode(w, x.Callee); err != nil {
			return err
		}
		writeVarUint(w, uint64(len(x.Args)))
		for _, a := range x.Args {
			if err := encodeNode(w, a); err != nil {
				return err
			}
		}
		return nil
	case *ir.PlatformCall:
		writeString(w, x.Name)
		writeVarUint(w, uint64(len(x.Args)))
		for _, a := range x.Args {
			if err := encodeNode(w, a); err != nil {
				return err
			}
		}
		return nil
	case *ir.FieldAccess:
		if err := encodeNode(w, x.Object); err != nil {
			return err
		}
		writeString(w, x.Field)
		return nil
	case *ir.Construct:
		writeVarUint(w, uint64(len(x.Fields)))
		for _, f := range x.Fields {
			writeString(w, f.Name)
			if err := encodeNode(w, f.Value); err != nil {
				return err
			}
		}
		return nil
	case *ir.VariantConstruct:
		writeString(w, x.Tag)
		return encodeNode(w, x.Payload)
	case *ir.Match:
		if err := encodeNode(w, x.Subject); err != nil {
			return err
		}
		writeVarUint(w, uint64(len(x.Arms)))
		for _, arm := range x.Arms {
			writeString(w, arm.Tag)
			w.WriteByte(boolByte(arm.Wildcard))
			writeString(w, arm.Bind)
			if err := encodeNode(w, arm.Body); err != nil {
				return err
			}
		}
		return nil
	case *ir.BinaryOp:
		writeString(w, string(x.Op))
		if err := encodeNode(w, x.Left); err != nil {
			return err
		}
		return encodeNode(w, x.Right)
	case *ir.UnaryOp:
		writeString(w, string(x.Op))
		return encodeNode(w, x.Operand)
	default:
		return east_errors.New(east_errors.EncodingError, token.NoPos, "cannot encode unknown IR node kind %s", n.Kind())
	}
}

// decodeNode is EncodeFunction's node-level inverse. table resolves any
// nested function-typed literal the tree may carry; it may be nil if the
// caller knows none occurs.
func decodeNode(r *reader, table *platform.Table) (ir.Node, error) {
	kb, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	kind := ir.NodeKind(kb)
	t, err := decodeType(r)
	if err != nil {
		return nil, err
	}
	pos, err := decodePos(r)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ir.KindLiteral:
		v, err := decodeValue(r, t, table)
		if err != nil {
			return nil, err
		}
		return ir.NewLiteral(pos, t, v), nil
	case ir.KindVarRef:
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		return ir.NewVarRef(pos, t, name), nil
	case ir.KindLet:
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		val, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewLet(pos, t, name, val, body), nil
	case ir.KindAssign:
		target, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		val, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewAssign(pos, t, target, val), nil
	case ir.KindBlock:
		n, err := readVarUint(r)
		if err != nil {
			return nil, err
		}
		stmts := make([]ir.Node, n)
		for i := range stmts {
			stmts[i], err = decodeNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewBlock(pos, t, stmts), nil
	case ir.KindIf:
		cond, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		then, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		hasElse, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		var els ir.Node
		if hasElse != 0 {
			els, err = decodeNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewIf(pos, t, cond, then, els), nil
	case ir.KindFor:
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		iterable, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewFor(pos, t, v, iterable, body), nil
	case ir.KindLoop:
		body, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewLoop(pos, t, body), nil
	case ir.KindBreak:
		hasVal, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		var val ir.Node
		if hasVal != 0 {
			val, err = decodeNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewBreak(pos, t, val), nil
	case ir.KindContinue:
		return ir.NewContinue(pos, t), nil
	case ir.KindReturn:
		val, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewReturn(pos, t, val), nil
	case ir.KindCall:
		callee, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		n, err := readVarUint(r)
		if err != nil {
			return nil, err
		}
		args := make([]ir.Node, n)
		for i := range args {
			args[i], err = decodeNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewCall(pos, t, callee, args), nil
	case ir.KindPlatformCall:
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		n, err := readVarUint(r)
		if err != nil {
			return nil, err
		}
		args := make([]ir.Node, n)
		for i := range args {
			args[i], err = decodeNode(r, table)
			if err != nil {
				return nil, err
			}
		}
		return ir.NewPlatformCall(pos, t, name, args), nil
	case ir.KindFieldAccess:
		obj, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		field, err := readString(r)
		if err != nil {
			return nil, err
		}
		return ir.NewFieldAccess(pos, t, obj, field), nil
	case ir.KindConstruct:
		n, err := readVarUint(r)
		if err != nil {
			return nil, err
		}
		fields := make([]ir.ConstructField, n)
		for i := range fields {
			name, err := readString(r)
			if err != nil {
				return nil, err
			}
			val, err := decodeNode(r, table)
			if err != nil {
				return nil, err
			}
			fields[i] = ir.ConstructField{Name: name, Value: val}
		}
		return ir.NewConstruct(pos, t, fields), nil
	case ir.KindVariantConstruct:
		tag, err := readString(r)
		if err != nil {
			return nil, err
		}
		payload, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewVariantConstruct(pos, t, tag, payload), nil
	case ir.KindMatch:
		subj, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		n, err := readVarUint(r)
		if err != nil {
			return nil, err
		}
		arms := make([]ir.MatchArm, n)
		for i := range arms {
			tag, err := readString(r)
			if err != nil {
				return nil, err
			}
			wc, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			bind, err := readString(r)
			if err != nil {
				return nil, err
			}
			body, err := decodeNode(r, table)
			if err != nil {
				return nil, err
			}
			arms[i] = ir.MatchArm{Tag: tag, Wildcard: wc != 0, Bind: bind, Body: body}
		}
		return ir.NewMatch(pos, t, subj, arms), nil
	case ir.KindBinaryOp:
		op, err := readString(r)
		if err != nil {
			return nil, err
		}
		left, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewBinaryOp(pos, t, ir.BinaryOperator(op), left, right), nil
	case ir.KindUnaryOp:
		op, err := readString(r)
		if err != nil {
			return nil, err
		}
		operand, err := decodeNode(r, table)
		if err != nil {
			return nil, err
		}
		return ir.NewUnaryOp(pos, t, ir.UnaryOperator(op), operand), nil
	default:
		return nil, east_errors.New(east_errors.DecodingError, pos, "unknown IR node kind byte %d", kb)
	}
}

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

package eval

import (
	"github.com/cockroachdb/apd/v3"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

// Platforms is the set of platform functions a compiled body may invoke,
// indexed by name — package compile resolves and hands this to Eval
// frozen so that a platform_call's binding is fixed at compile time (spec
// §4.3), never re-resolved per call.
type Platforms map[string]platform.Entry

// Eval evaluates n in env against the given resolved platform table,
// eagerly and left to right (spec §3.3, §4.3). A Break/Continue escaping
// its enclosing For/Loop, or a Return escaping the enclosing function
// body, surfaces to the immediate caller as an error; callers that
// establish one of those scopes (the For/Loop evaluators, and package
// compile's function-call boundary) are expected to recognize and consume
// it rather than let it propagate as a user-visible failure.
func Eval(n ir.Node, env *Env, platforms Platforms) (values.Value, error) {
	switch x := n.(type) {
	case *ir.Literal:
		return x.Value, nil

	case *ir.VarRef:
		v, ok := env.Get(x.Name)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "unbound variable %q", x.Name)
		}
		return v, nil

	case *ir.Let:
		v, err := Eval(x.Value, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		child := env.Child()
		child.Bind(x.Name, v)
		return Eval(x.Body, child, platforms)

	case *ir.Assign:
		target, err := Eval(x.Target, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		val, err := Eval(x.Value, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		if err := target.RefCell().Set(val); err != nil {
			return values.Value{}, east_errors.Push(err, east_errors.FrozenMutation, x.Pos())
		}
		return values.Null(), nil

	case *ir.Block:
		result := values.Null()
		for _, stmt := range x.Stmts {
			v, err := Eval(stmt, env, platforms)
			if err != nil {
				return values.Value{}, err
			}
			result = v
		}
		return result, nil

	case *ir.If:
		cond, err := Eval(x.Cond, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		if cond.Bool() {
			return Eval(x.Then, env, platforms)
		}
		if x.Else != nil {
			return Eval(x.Else, env, platforms)
		}
		return values.Null(), nil

	case *ir.For:
		return evalFor(x, env, platforms)

	case *ir.Loop:
		for {
			_, err := Eval(x.Body, env, platforms)
			if err == nil {
				continue
			}
			if bs, ok := err.(breakSignal); ok {
				if bs.has {
					return bs.value, nil
				}
				return values.Null(), nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return values.Value{}, err
		}

	case *ir.Break:
		if x.Value == nil {
			return values.Value{}, breakSignal{}
		}
		v, err := Eval(x.Value, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		return values.Value{}, breakSignal{value: v, has: true}

	case *ir.Continue:
		return values.Value{}, continueSignal{}

	case *ir.Return:
		v, err := Eval(x.Value, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		return values.Value{}, returnSignal{value: v}

	case *ir.Call:
		return evalCall(x, env, platforms)

	case *ir.PlatformCall:
		return evalPlatformCall(x, env, platforms)

	case *ir.FieldAccess:
		obj, err := Eval(x.Object, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		v, ok := obj.StructVal().Field(x.Field)
		if !ok {
			return values.Value{}, east_errors.New(east_errors.MissingField, x.Pos(), "no field %q", x.Field)
		}
		return v, nil

	case *ir.Construct:
		names := make([]string, len(x.Fields))
		vals := make([]values.Value, len(x.Fields))
		for i, f := range x.Fields {
			v, err := Eval(f.Value, env, platforms)
			if err != nil {
				return values.Value{}, err
			}
			names[i] = f.Name
			vals[i] = v
		}
		s, err := values.NewStruct(names, vals)
		if err != nil {
			return values.Value{}, east_errors.Push(err, east_errors.MissingField, x.Pos())
		}
		return values.StructValue(s), nil

	case *ir.VariantConstruct:
		payload, err := Eval(x.Payload, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		return values.VariantValue(values.NewVariant(x.Tag, payload)), nil

	case *ir.Match:
		return evalMatch(x, env, platforms)

	case *ir.BinaryOp:
		return evalBinaryOp(x, env, platforms)

	case *ir.UnaryOp:
		return evalUnaryOp(x, env, platforms)
	}
	return values.Value{}, east_errors.New(east_errors.TypeMismatch, n.Pos(), "eval: unhandled node kind %s", n.Kind())
}

func evalFor(x *ir.For, env *Env, platforms Platforms) (values.Value, error) {
	iter, err := Eval(x.Iterable, env, platforms)
	if err != nil {
		return values.Value{}, err
	}
	items, err := iterableValues(x.Iterable.Type(), iter)
	if err != nil {
		return values.Value{}, east_errors.Push(err, east_errors.TypeMismatch, x.Pos())
	}
	result := values.Null()
	for _, item := range items {
		child := env.Child()
		child.Bind(x.Var, item)
		v, err := Eval(x.Body, child, platforms)
		if err != nil {
			if bs, ok := err.(breakSignal); ok {
				if bs.has {
					return bs.value, nil
				}
				return result, nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return values.Value{}, err
		}
		result = v
	}
	return result, nil
}

// iterableValues returns a For loop's elements in the container's defined
// order (spec §3.3: "iterating a container's defined order"). Dict
// iteration binds a two-field {key, value} Struct per entry, since a For
// loop binds exactly one variable per step.
func iterableValues(t types.Type, v values.Value) ([]values.Value, error) {
	switch t.Kind {
	case types.Array:
		return append([]values.Value(nil), v.ArrayVal().Values()...), nil
	case types.Set:
		return v.SetVal().Values(), nil
	case types.Dict:
		entries := v.DictVal().Entries()
		out := make([]values.Value, len(entries))
		for i, e := range entries {
			s, err := values.NewStruct([]string{"key", "value"}, []values.Value{e.Key, e.Value})
			if err != nil {
				return nil, err
			}
			out[i] = values.StructValue(s)
		}
		return out, nil
	default:
		return nil, east_errors.New(east_errors.TypeMismatch, token.NoPos, "cannot iterate a %s", t.Kind)
	}
}

func evalCall(x *ir.Call, env *Env, platforms Platforms) (values.Value, error) {
	callee, err := Eval(x.Callee, env, platforms)
	if err != nil {
		return values.Value{}, err
	}
	args := make([]values.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := Eval(a, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		args[i] = v
	}
	result, err := callee.FunctionVal().Call(args)
	if err != nil {
		return values.Value{}, east_errors.Push(err, east_errors.PlatformFailure, x.Pos())
	}
	return result, nil
}

func evalPlatformCall(x *ir.PlatformCall, env *Env, platforms Platforms) (values.Value, error) {
	entry, ok := platforms[x.Name]
	if !ok {
		return values.Value{}, east_errors.New(east_errors.MissingPlatform, x.Pos(), "platform function %q is not bound", x.Name)
	}
	args := make([]values.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := Eval(a, env, platforms)
		if err != nil {
			return values.Value{}, err
		}
		args[i] = v
	}
	if entry.Signature.Async {
		res := <-entry.AsyncImpl.CallAsync(args)
		if res.Err != nil {
			return values.Value{}, east_errors.Wrap(east_errors.PlatformFailure, x.Pos(), res.Err, "platform function %q failed", x.Name)
		}
		return res.Value, nil
	}
	v, err := entry.Impl.Call(args)
	if err != nil {
		return values.Value{}, east_errors.Wrap(east_errors.PlatformFailure, x.Pos(), err, "platform function %q failed", x.Name)
	}
	return v, nil
}

func evalMatch(x *ir.Match, env *Env, platforms Platforms) (values.Value, error) {
	subj, err := Eval(x.Subject, env, platforms)
	if err != nil {
		return values.Value{}, err
	}
	v := subj.VariantVal()
	var wildcard *ir.MatchArm
	for i := range x.Arms {
		arm := &x.Arms[i]
		if arm.Wildcard {
			wildcard = arm
			continue
		}
		if arm.Tag == v.Tag {
			return evalMatchArm(arm, v, env, platforms)
		}
	}
	if wildcard != nil {
		return evalMatchArm(wildcard, v, env, platforms)
	}
	return values.Value{}, east_errors.New(east_errors.UnknownVariantTag, x.Pos(), "no match arm covers tag %q", v.Tag)
}

func evalMatchArm(arm *ir.MatchArm, v *values.Variant, env *Env, platforms Platforms) (values.Value, error) {
	child := env
	if arm.Bind != "" {
		child = env.Child()
		child.Bind(arm.Bind, v.Payload)
	}
	return Eval(arm.Body, child, platforms)
}

func evalBinaryOp(x *ir.BinaryOp, env *Env, platforms Platforms) (values.Value, error) {
	left, err := Eval(x.Left, env, platforms)
	if err != nil {
		return values.Value{}, err
	}
	right, err := Eval(x.Right, env, platforms)
	if err != nil {
		return values.Value{}, err
	}
	switch x.Op {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod:
		switch x.Left.Type().Kind {
		case types.Integer:
			return evalIntegerBinary(x.Pos(), x.Op, left.Int(), right.Int())
		case types.Float:
			return evalFloatBinary(x.Pos(), x.Op, left.Float64(), right.Float64())
		default:
			return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "arithmetic on non-numeric type %s", x.Left.Type().Kind)
		}
	case ir.OpEq:
		return values.Boolean(values.Equal(x.Left.Type(), left, right)), nil
	case ir.OpNeq:
		return values.Boolean(!values.Equal(x.Left.Type(), left, right)), nil
	case ir.OpLt:
		return values.Boolean(values.Compare(x.Left.Type(), left, right) < 0), nil
	case ir.OpLte:
		return values.Boolean(values.Compare(x.Left.Type(), left, right) <= 0), nil
	case ir.OpGt:
		return values.Boolean(values.Compare(x.Left.Type(), left, right) > 0), nil
	case ir.OpGte:
		return values.Boolean(values.Compare(x.Left.Type(), left, right) >= 0), nil
	case ir.OpAnd:
		return values.Boolean(left.Bool() && right.Bool()), nil
	case ir.OpOr:
		return values.Boolean(left.Bool() || right.Bool()), nil
	case ir.OpConcat:
		return values.String(left.Str() + right.Str()), nil
	case ir.OpIndex:
		return evalIndex(x, left, right)
	case ir.OpContains:
		return evalContains(x, left, right)
	case ir.OpAppend:
		return evalAppend(left, right)
	}
	return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "unsupported binary operator %q", x.Op)
}

func evalIndex(x *ir.BinaryOp, left, right values.Value) (values.Value, error) {
	arr := left.ArrayVal()
	i, _ := right.Int().Int64()
	if i < 0 || i >= int64(arr.Len()) {
		return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "array index %d out of range [0,%d)", i, arr.Len())
	}
	return arr.At(int(i)), nil
}

func evalContains(x *ir.BinaryOp, left, right values.Value) (values.Value, error) {
	switch x.Left.Type().Kind {
	case types.Set:
		return values.Boolean(left.SetVal().Contains(right)), nil
	case types.Dict:
		_, ok := left.DictVal().Get(right)
		return values.Boolean(ok), nil
	default:
		return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "contains on non-container type %s", x.Left.Type().Kind)
	}
}

func evalAppend(left, right values.Value) (values.Value, error) {
	next := left.ArrayVal().Clone()
	if err := next.Append(right); err != nil {
		return values.Value{}, err
	}
	return values.ArrayValue(next), nil
}

func evalUnaryOp(x *ir.UnaryOp, env *Env, platforms Platforms) (values.Value, error) {
	v, err := Eval(x.Operand, env, platforms)
	if err != nil {
		return values.Value{}, err
	}
	switch x.Op {
	case ir.OpNot:
		return values.Boolean(!v.Bool()), nil
	case ir.OpNeg:
		switch x.Operand.Type().Kind {
		case types.Integer:
			var zero, res apd.Decimal
			_, _ = intCtx.Sub(&res, &zero, v.Int())
			return values.Integer(&res), nil
		case types.Float:
			return values.Float(-v.Float64()), nil
		}
		return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "negation on non-numeric type %s", x.Operand.Type().Kind)
	case ir.OpLen:
		return evalLen(x, v)
	}
	return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "unsupported unary operator %q", x.Op)
}

func evalLen(x *ir.UnaryOp, v values.Value) (values.Value, error) {
	switch x.Operand.Type().Kind {
	case types.String:
		return values.IntegerFromInt64(int64(len(v.Str()))), nil
	case types.Blob:
		return values.IntegerFromInt64(int64(len(v.BlobBytes()))), nil
	case types.Array:
		return values.IntegerFromInt64(int64(v.ArrayVal().Len())), nil
	case types.Set:
		return values.IntegerFromInt64(int64(v.SetVal().Len())), nil
	case types.Dict:
		return values.IntegerFromInt64(int64(v.DictVal().Len())), nil
	default:
		return values.Value{}, east_errors.New(east_errors.TypeMismatch, x.Pos(), "len on non-sized type %s", x.Operand.Type().Kind)
	}
}

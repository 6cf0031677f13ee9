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

// Package compile turns a parsed [ir.Function] into a callable
// [values.Function] (spec §3.3, §4.3): it checks the body's declared
// result type against the function's declared output, resolves every
// platform_call the body reaches against a [platform.Table] (producing
// MissingPlatform/PlatformSignatureMismatch per spec §4.3), and freezes
// the resolved bindings into the closure Eval ultimately runs against.
package compile

import (
	"fmt"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/eval"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

// Program is a compiled East function: an IR body plus the platform
// bindings its body is allowed to call, ready to be invoked through the
// [values.Function] interface.
type Program struct {
	def       *ir.Function
	platforms eval.Platforms
	async     bool
}

// Compile checks fn against table and returns a ready-to-call Program.
func Compile(fn *ir.Function, table *platform.Table) (*Program, error) {
	if fn.DeclaredType.Kind != types.Function && fn.DeclaredType.Kind != types.AsyncFunction {
		return nil, fmt.Errorf("compile: declared type must be Function or AsyncFunction, got %s", fn.DeclaredType.Kind)
	}
	if len(fn.Params) != len(fn.DeclaredType.In) {
		return nil, fmt.Errorf("compile: %d parameters declared, function type expects %d", len(fn.Params), len(fn.DeclaredType.In))
	}
	for i, p := range fn.Params {
		if !types.Equal(p.Type, fn.DeclaredType.In[i]) {
			return nil, fmt.Errorf("compile: parameter %d %q declared %s, function type expects %s", i, p.Name, p.Type.Kind, fn.DeclaredType.In[i].Kind)
		}
	}
	if fn.Body != nil && !resultTypeCompatible(fn.Body.Type(), *fn.DeclaredType.Out) {
		return nil, fmt.Errorf("compile: body result type %s does not match declared output %s", fn.Body.Type().Kind, fn.DeclaredType.Out.Kind)
	}

	resolved, err := resolvePlatforms(fn, table)
	if err != nil {
		return nil, err
	}

	return &Program{def: fn, platforms: resolved, async: fn.DeclaredType.Kind == types.AsyncFunction}, nil
}

// resultTypeCompatible allows a body typed Never (an unconditional Return
// on every path) to satisfy any declared output, per the same "Never is a
// subtype of everything" rule package types gives the rest of the algebra.
func resultTypeCompatible(body, declared types.Type) bool {
	return types.IsSubtype(body, declared)
}

// resolvePlatforms binds every platform_call name fn.Body reaches against
// table, checking declared against bound signatures (spec §4.3). A name
// the body never calls costs nothing to leave unbound.
func resolvePlatforms(fn *ir.Function, table *platform.Table) (eval.Platforms, error) {
	resolved := make(eval.Platforms)
	var refs []ir.PlatformRef
	ir.Walk(fn.Body, func(n ir.Node) bool {
		if pc, ok := n.(*ir.PlatformCall); ok {
			in := make([]types.Type, len(pc.Args))
			for i, a := range pc.Args {
				in[i] = a.Type()
			}
			refs = append(refs, ir.PlatformRef{Name: pc.Name, Params: in, Result: pc.Type()})
		}
		return true
	})
	seen := map[string]bool{}
	for _, ref := range refs {
		if seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		if fn.DeclaredType.HasAllowlist && !allowed(fn.DeclaredType.PlatformAllowlist, ref.Name) {
			return nil, east_errors.New(east_errors.MissingPlatform, token.NoPos,
				"platform function %q is not in this function's platform allowlist", ref.Name)
		}
		entry, ok := table.Lookup(ref.Name)
		if !ok {
			return nil, east_errors.New(east_errors.MissingPlatform, token.NoPos, "platform function %q is not bound in the supplied table", ref.Name)
		}
		want := platform.Signature{Params: ref.Params, Result: ref.Result, Async: entry.Signature.Async}
		if !entry.Signature.Equal(want) {
			return nil, east_errors.New(east_errors.PlatformSignatureMismatch, token.NoPos,
				"platform function %q: body expects %d args -> %s, bound signature is %d args -> %s",
				ref.Name, len(want.Params), want.Result.Kind, len(entry.Signature.Params), entry.Signature.Result.Kind)
		}
		resolved[ref.Name] = entry
	}
	return resolved, nil
}

func allowed(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

// Type returns the compiled function's declared East type.
func (p *Program) Type() types.Type { return p.def.DeclaredType }

// Call invokes the compiled body synchronously, binding fn.Params to args
// in a fresh root scope and driving a Return to completion.
func (p *Program) Call(args []values.Value) (values.Value, error) {
	if len(args) != len(p.def.Params) {
		return values.Value{}, fmt.Errorf("compile: called with %d arguments, function declares %d", len(args), len(p.def.Params))
	}
	env := eval.NewEnv()
	for i, param := range p.def.Params {
		env.Bind(param.Name, args[i])
	}
	v, err := eval.Eval(p.def.Body, env, p.platforms)
	if err != nil {
		if rs, ok := asReturn(err); ok {
			return rs, nil
		}
		return values.Value{}, err
	}
	return v, nil
}

// IR returns the compiled function's source IR tree, satisfying
// ir.Portable so the codecs can re-encode a decoded-then-recompiled
// function value (spec §4.4).
func (p *Program) IR() *ir.Function { return p.def }

// IsAsyncFunction marks Program as an AsyncFunction value when compiled
// from one, satisfying values.AsyncMarker so FunctionValue tags it
// correctly (spec §3.1: Function and AsyncFunction are distinct kinds).
func (p *Program) IsAsyncFunction() bool { return p.async }

// asReturn recognizes the evaluator's internal Return signal without
// importing package eval's unexported signal type; eval exposes this
// narrow seam via ReturnValue so compile stays the only caller that needs
// to know a Return is how a function body's last word works.
func asReturn(err error) (values.Value, bool) {
	return eval.ReturnValue(err)
}

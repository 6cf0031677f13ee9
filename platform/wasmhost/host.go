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

// Package wasmhost provides an optional [platform.Impl] that runs a
// platform function's body as an exported function of a WASM guest
// module, instantiated in a sandbox with no access to the outside world —
// directly grounded on cuelang.org/go/cue/wasm, which gives CUE the same
// capability for its own extern functions.
//
// Only scalar East types with a direct WASM numeric counterpart are
// supported: Boolean and Integer map to i32/i64, Float maps to f64. A
// platform function whose signature mentions any other type cannot be
// hosted this way; use a native [platform.Impl] instead.
package wasmhost

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

// Host compiles and instantiates WASM modules on demand and exposes their
// exported functions as platform.Impl values.
type Host struct {
	ctx context.Context
	rt  wazero.Runtime
}

// New creates a Host. Callers must call Close when done to release the
// underlying WASM runtime's resources.
func New(ctx context.Context) *Host {
	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	return &Host{ctx: ctx, rt: rt}
}

// Close releases the WASM runtime.
func (h *Host) Close() error {
	return h.rt.Close(h.ctx)
}

// guest is one instantiated WASM module, sandboxed per instance.
type guest struct {
	module api.Module
}

// Load compiles and instantiates the WASM bytes in wasmBytes under the
// given module name.
func (h *Host) Load(name string, wasmBytes []byte) (*guest, error) {
	compiled, err := h.rt.CompileModule(h.ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("wasmhost: compile %q: %w", name, err)
	}
	cfg := wazero.NewModuleConfig().WithName(name)
	mod, err := h.rt.InstantiateModule(h.ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("wasmhost: instantiate %q: %w", name, err)
	}
	return &guest{module: mod}, nil
}

// Func returns a platform.Impl that calls the guest's exported function
// funcName, converting arguments/result per sig.
func (g *guest) Func(funcName string, sig platform.Signature) (platform.Impl, error) {
	fn := g.module.ExportedFunction(funcName)
	if fn == nil {
		return nil, fmt.Errorf("wasmhost: no exported function %q", funcName)
	}
	for i, p := range sig.Params {
		if !isWasmScalar(p) {
			return nil, fmt.Errorf("wasmhost: parameter %d of %q has no WASM numeric mapping: %s", i, funcName, p.Kind)
		}
	}
	if !isWasmScalar(sig.Result) {
		return nil, fmt.Errorf("wasmhost: result of %q has no WASM numeric mapping: %s", funcName, sig.Result.Kind)
	}
	return platform.ImplFunc(func(args []values.Value) (values.Value, error) {
		raw := make([]uint64, len(args))
		for i, a := range args {
			raw[i] = encodeArg(sig.Params[i], a)
		}
		results, err := fn.Call(context.Background(), raw...)
		if err != nil {
			return values.Value{}, fmt.Errorf("wasmhost: calling %q: %w", funcName, err)
		}
		if len(results) != 1 {
			return values.Value{}, fmt.Errorf("wasmhost: %q returned %d results, want 1", funcName, len(results))
		}
		return decodeResult(sig.Result, results[0]), nil
	}), nil
}

func isWasmScalar(t types.Type) bool {
	switch t.Kind {
	case types.Boolean, types.Integer, types.Float:
		return true
	}
	return false
}

func encodeArg(t types.Type, v values.Value) uint64 {
	switch t.Kind {
	case types.Boolean:
		if v.Bool() {
			return 1
		}
		return 0
	case types.Integer:
		n, _ := v.Int().Int64()
		return uint64(n)
	case types.Float:
		return math.Float64bits(v.Float64())
	default:
		return 0
	}
}

func decodeResult(t types.Type, raw uint64) values.Value {
	switch t.Kind {
	case types.Boolean:
		return values.Boolean(raw != 0)
	case types.Integer:
		return values.IntegerFromInt64(int64(raw))
	case types.Float:
		return values.Float(math.Float64frombits(raw))
	default:
		return values.Null()
	}
}

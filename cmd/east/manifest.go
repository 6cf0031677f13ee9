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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"

	"github.com/elaraai/east/internal/dump"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/platform/wasmhost"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

var demoIntCtx = apd.BaseContext.WithPrecision(0)

// manifestFile is the YAML shape `east decode`/`east eval` read via
// --platform (spec §8.1, §6.1): a list of platform-function bindings. A
// function either names one of the built-in demo implementations or
// points at a WASM module + export, executed through platform/wasmhost.
type manifestFile struct {
	Platforms []manifestEntry `yaml:"platforms"`
}

type manifestEntry struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	Result string   `yaml:"result"`
	Async  bool     `yaml:"async"`
	Demo   string   `yaml:"demo"` // one of the built-in demo implementations below
	Wasm   string   `yaml:"wasm"` // path to a .wasm module
	Func   string   `yaml:"func"` // export name within Wasm
}

func loadManifest(path string) (*platform.Table, error) {
	table := platform.NewTable()
	if path == "" {
		return table, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading platform manifest: %w", err)
	}
	var m manifestFile
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing platform manifest: %w", err)
	}

	var host *wasmhost.Host
	for _, e := range m.Platforms {
		sig, err := parseSignature(e)
		if err != nil {
			return nil, fmt.Errorf("platform %q: %w", e.Name, err)
		}
		switch {
		case e.Demo != "":
			if err := registerDemo(table, e.Name, sig, e.Demo); err != nil {
				return nil, err
			}
		case e.Wasm != "":
			if host == nil {
				host = wasmhost.New(context.Background())
			}
			wasmBytes, err := os.ReadFile(e.Wasm)
			if err != nil {
				return nil, fmt.Errorf("reading WASM module %q: %w", e.Wasm, err)
			}
			guest, err := host.Load(e.Name, wasmBytes)
			if err != nil {
				return nil, fmt.Errorf("loading WASM module %q: %w", e.Wasm, err)
			}
			impl, err := guest.Func(e.Func, sig)
			if err != nil {
				return nil, fmt.Errorf("binding WASM export %q: %w", e.Func, err)
			}
			if err := table.Register(e.Name, sig, impl); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("platform %q: manifest entry must set either demo or wasm", e.Name)
		}
	}
	return table, nil
}

func parseSignature(e manifestEntry) (platform.Signature, error) {
	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		t, err := typeFromName(p)
		if err != nil {
			return platform.Signature{}, err
		}
		params[i] = t
	}
	result, err := typeFromName(e.Result)
	if err != nil {
		return platform.Signature{}, err
	}
	return platform.Signature{Params: params, Result: result, Async: e.Async}, nil
}

// typeFromName resolves the scalar type names a manifest can name without
// a nested JSON type file; richer platform-function signatures should be
// declared against a typefile instead, but every scalar manifest scenario
// in spec §8's S2/S3/S6 only ever needs these.
func typeFromName(name string) (types.Type, error) {
	switch name {
	case "null":
		return types.NullType(), nil
	case "boolean":
		return types.BooleanType(), nil
	case "integer":
		return types.IntegerType(), nil
	case "float":
		return types.FloatType(), nil
	case "string":
		return types.StringType(), nil
	case "datetime":
		return types.DateTimeType(), nil
	case "blob":
		return types.BlobType(), nil
	default:
		return types.Type{}, fmt.Errorf("unsupported manifest scalar type %q (use a typefile-bound function for structured types)", name)
	}
}

// registerDemo binds one of the CLI's built-in example platform functions
// (spec §8 S2 "double", S3 "trace") so `east eval` has something to call
// without requiring a WASM module on hand.
func registerDemo(table *platform.Table, name string, sig platform.Signature, demo string) error {
	switch demo {
	case "double":
		return table.Register(name, sig, platform.ImplFunc(func(args []values.Value) (values.Value, error) {
			d := args[0].Int()
			var out apd.Decimal
			_, _ = demoIntCtx.Add(&out, d, d)
			return values.Integer(&out), nil
		}))
	case "trace":
		return table.Register(name, sig, platform.ImplFunc(func(args []values.Value) (values.Value, error) {
			for _, a := range args {
				fmt.Fprintln(os.Stderr, dump.Value(a))
			}
			return values.Null(), nil
		}))
	default:
		return fmt.Errorf("unknown demo platform function %q", demo)
	}
}

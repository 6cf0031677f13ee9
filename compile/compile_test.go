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

package compile_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	. "github.com/elaraai/east/compile"
	"github.com/elaraai/east/errors"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/platform"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

func incrementFn() *ir.Function {
	return &ir.Function{
		DeclaredType: types.FunctionType(types.IntegerType(), nil, types.IntegerType()),
		Params:       []ir.Param{{Name: "x", Type: types.IntegerType()}},
		Body: ir.NewBinaryOp(token.NoPos, types.IntegerType(), ir.OpAdd,
			ir.NewVarRef(token.NoPos, types.IntegerType(), "x"),
			ir.NewLiteral(token.NoPos, types.IntegerType(), values.IntegerFromInt64(1)),
		),
	}
}

func TestCompileAndCallIncrement(t *testing.T) {
	prog, err := Compile(incrementFn(), platform.NewTable())
	qt.Assert(t, qt.IsNil(err))
	out, err := prog.Call([]values.Value{values.IntegerFromInt64(41)})
	qt.Assert(t, qt.IsNil(err))
	n, _ := out.Int().Int64()
	qt.Assert(t, qt.Equals(n, int64(42)))
}

func doubleTable(t *testing.T) *platform.Table {
	table := platform.NewTable()
	err := table.Register("double", platform.Signature{
		Params: []types.Type{types.IntegerType()},
		Result: types.IntegerType(),
	}, platform.ImplFunc(func(args []values.Value) (values.Value, error) {
		n, _ := args[0].Int().Int64()
		return values.IntegerFromInt64(n * 2), nil
	}))
	qt.Assert(t, qt.IsNil(err))
	return table
}

func TestCompilePlatformCallResolvesAgainstTable(t *testing.T) {
	fn := &ir.Function{
		DeclaredType: types.FunctionType(types.IntegerType(), nil, types.IntegerType()),
		Params:       []ir.Param{{Name: "x", Type: types.IntegerType()}},
		Body: ir.NewPlatformCall(token.NoPos, types.IntegerType(), "double", []ir.Node{
			ir.NewVarRef(token.NoPos, types.IntegerType(), "x"),
		}),
	}
	prog, err := Compile(fn, doubleTable(t))
	qt.Assert(t, qt.IsNil(err))
	out, err := prog.Call([]values.Value{values.IntegerFromInt64(21)})
	qt.Assert(t, qt.IsNil(err))
	n, _ := out.Int().Int64()
	qt.Assert(t, qt.Equals(n, int64(42)))
}

func TestCompileMissingPlatformFunction(t *testing.T) {
	fn := &ir.Function{
		DeclaredType: types.FunctionType(types.IntegerType(), nil, types.IntegerType()),
		Params:       []ir.Param{{Name: "x", Type: types.IntegerType()}},
		Body: ir.NewPlatformCall(token.NoPos, types.IntegerType(), "double", []ir.Node{
			ir.NewVarRef(token.NoPos, types.IntegerType(), "x"),
		}),
	}
	_, err := Compile(fn, platform.NewTable())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(errors.Is(err, errors.MissingPlatform)))
}

func TestCompilePlatformSignatureMismatch(t *testing.T) {
	fn := &ir.Function{
		DeclaredType: types.FunctionType(types.StringType(), nil, types.IntegerType()),
		Params:       []ir.Param{{Name: "x", Type: types.IntegerType()}},
		Body: ir.NewPlatformCall(token.NoPos, types.StringType(), "double", []ir.Node{
			ir.NewVarRef(token.NoPos, types.IntegerType(), "x"),
		}),
	}
	_, err := Compile(fn, doubleTable(t))
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(errors.Is(err, errors.PlatformSignatureMismatch)))
}

func TestCompileParamCountMismatch(t *testing.T) {
	fn := incrementFn()
	fn.Params = append(fn.Params, ir.Param{Name: "y", Type: types.IntegerType()})
	_, err := Compile(fn, platform.NewTable())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCompileAllowlistRejectsUnlistedPlatformCall(t *testing.T) {
	fn := &ir.Function{
		DeclaredType: types.FunctionType(types.IntegerType(), []string{"other"}, types.IntegerType()),
		Params:       []ir.Param{{Name: "x", Type: types.IntegerType()}},
		Body: ir.NewPlatformCall(token.NoPos, types.IntegerType(), "double", []ir.Node{
			ir.NewVarRef(token.NoPos, types.IntegerType(), "x"),
		}),
	}
	_, err := Compile(fn, doubleTable(t))
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(errors.Is(err, errors.MissingPlatform)))
}

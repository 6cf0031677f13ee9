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

package platform_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	. "github.com/elaraai/east/platform"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

func TestRegisterAndLookup(t *testing.T) {
	table := NewTable()
	sig := Signature{Params: []types.Type{types.IntegerType()}, Result: types.IntegerType()}
	err := table.Register("double", sig, ImplFunc(func(args []values.Value) (values.Value, error) {
		n, _ := args[0].Int().Int64()
		return values.IntegerFromInt64(n * 2), nil
	}))
	qt.Assert(t, qt.IsNil(err))

	entry, ok := table.Lookup("double")
	qt.Assert(t, qt.IsTrue(ok))
	out, err := entry.Impl.Call([]values.Value{values.IntegerFromInt64(5)})
	qt.Assert(t, qt.IsNil(err))
	n, _ := out.Int().Int64()
	qt.Assert(t, qt.Equals(n, int64(10)))

	_, ok = table.Lookup("nope")
	qt.Assert(t, qt.IsFalse(ok))
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	table := NewTable()
	sig := Signature{Params: nil, Result: types.NullType()}
	impl := ImplFunc(func(args []values.Value) (values.Value, error) { return values.Null(), nil })
	qt.Assert(t, qt.IsNil(table.Register("noop", sig, impl)))
	qt.Assert(t, qt.IsNotNil(table.Register("noop", sig, impl)))
}

func TestRegisterRejectsAsyncSignatureOnSyncMethod(t *testing.T) {
	table := NewTable()
	sig := Signature{Async: true, Result: types.NullType()}
	impl := ImplFunc(func(args []values.Value) (values.Value, error) { return values.Null(), nil })
	qt.Assert(t, qt.IsNotNil(table.Register("bad", sig, impl)))
}

func TestRegisterAsyncAndCall(t *testing.T) {
	table := NewTable()
	sig := Signature{Async: true, Params: []types.Type{types.IntegerType()}, Result: types.IntegerType()}
	err := table.RegisterAsync("asyncDouble", sig, AsyncImplFunc(func(args []values.Value) <-chan Result {
		ch := make(chan Result, 1)
		n, _ := args[0].Int().Int64()
		ch <- Result{Value: values.IntegerFromInt64(n * 2)}
		return ch
	}))
	qt.Assert(t, qt.IsNil(err))

	entry, ok := table.Lookup("asyncDouble")
	qt.Assert(t, qt.IsTrue(ok))
	res := <-entry.AsyncImpl.CallAsync([]values.Value{values.IntegerFromInt64(4)})
	qt.Assert(t, qt.IsNil(res.Err))
	n, _ := res.Value.Int().Int64()
	qt.Assert(t, qt.Equals(n, int64(8)))
}

func TestSignatureEqual(t *testing.T) {
	a := Signature{Params: []types.Type{types.IntegerType()}, Result: types.StringType()}
	b := Signature{Params: []types.Type{types.IntegerType()}, Result: types.StringType()}
	c := Signature{Params: []types.Type{types.FloatType()}, Result: types.StringType()}
	qt.Assert(t, qt.IsTrue(a.Equal(b)))
	qt.Assert(t, qt.IsFalse(a.Equal(c)))
}

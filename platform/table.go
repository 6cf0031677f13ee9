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

// Package platform declares the platform-function surface (spec §6.2): a
// named extern with an argument-type list, a result type, a sync/async
// flavor, and a host-callable implementation. A [Table] is what package
// compile resolves platform_call nodes against.
package platform

import (
	"fmt"

	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

// Signature is a platform function's declared shape.
type Signature struct {
	Params []types.Type
	Result types.Type
	Async  bool
}

// Equal reports whether two signatures declare the same shape.
func (s Signature) Equal(o Signature) bool {
	if s.Async != o.Async || len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if !types.Equal(s.Params[i], o.Params[i]) {
			return false
		}
	}
	return types.Equal(s.Result, o.Result)
}

// Impl is a synchronous platform-function implementation: a host-callable
// taking already-validated arguments and returning a value or an error
// that the IR surfaces as PlatformFailure (spec §7).
type Impl interface {
	Call(args []values.Value) (values.Value, error)
}

// ImplFunc adapts a plain function to Impl.
type ImplFunc func(args []values.Value) (values.Value, error)

func (f ImplFunc) Call(args []values.Value) (values.Value, error) { return f(args) }

// Result is what an asynchronous implementation resolves to: exactly one
// value is ever sent on the channel AsyncImpl.CallAsync returns.
type Result struct {
	Value values.Value
	Err   error
}

// AsyncImpl is an asynchronous platform-function implementation (spec
// §4.3, §5): the host scheduler resolves the call at its own pace; East's
// evaluator suspends until a Result arrives.
type AsyncImpl interface {
	CallAsync(args []values.Value) <-chan Result
}

// AsyncImplFunc adapts a plain function to AsyncImpl.
type AsyncImplFunc func(args []values.Value) <-chan Result

func (f AsyncImplFunc) CallAsync(args []values.Value) <-chan Result { return f(args) }

// Entry is one bound platform function: its declared signature plus the
// implementation backing it.
type Entry struct {
	Name      string
	Signature Signature
	Impl      Impl      // set when !Signature.Async
	AsyncImpl AsyncImpl // set when Signature.Async
}

// Table maps platform-function names to implementations (spec §6.2
// "platform table").
type Table struct {
	entries map[string]Entry
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Register binds a synchronous platform function.
func (t *Table) Register(name string, sig Signature, impl Impl) error {
	if sig.Async {
		return fmt.Errorf("platform: %q declared async but registered with Register, use RegisterAsync", name)
	}
	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("platform: %q already registered", name)
	}
	t.entries[name] = Entry{Name: name, Signature: sig, Impl: impl}
	return nil
}

// RegisterAsync binds an asynchronous platform function.
func (t *Table) RegisterAsync(name string, sig Signature, impl AsyncImpl) error {
	if !sig.Async {
		return fmt.Errorf("platform: %q declared sync but registered with RegisterAsync, use Register", name)
	}
	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("platform: %q already registered", name)
	}
	t.entries[name] = Entry{Name: name, Signature: sig, AsyncImpl: impl}
	return nil
}

// Lookup returns the entry bound to name, if any.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Names returns the bound platform-function names in unspecified order,
// for diagnostics only.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for n := range t.entries {
		names = append(names, n)
	}
	return names
}

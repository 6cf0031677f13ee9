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

// Package eval implements East's evaluation semantics (spec §3.3, §4.3):
// eager, left-to-right evaluation of a compiled IR tree against a bound
// environment and a resolved platform table.
package eval

import "github.com/elaraai/east/values"

// Env is a chain of lexical scopes. Let, For and Match bind a fresh child
// scope so that a binding's lifetime never leaks past the node that
// introduced it.
type Env struct {
	vars   map[string]values.Value
	parent *Env
}

// NewEnv returns a fresh root scope.
func NewEnv() *Env {
	return &Env{vars: make(map[string]values.Value)}
}

// Child returns a new scope nested under e.
func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]values.Value), parent: e}
}

// Bind introduces or overwrites name in e's own scope (never a parent's).
func (e *Env) Bind(name string, v values.Value) {
	e.vars[name] = v
}

// Get looks up name, searching outward through enclosing scopes.
func (e *Env) Get(name string) (values.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return values.Value{}, false
}

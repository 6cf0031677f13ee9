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

package values

import (
	"github.com/google/uuid"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
)

// Ref is a single-cell mutable reference (spec §3.1 Ref(T), §3.2 "Ref owns
// its inhabitant; mutation replaces the inhabitant in place"). It is
// shared by identity inside a single process but carries no identity
// across the wire (spec §6.1): two Refs holding equal content encode
// identically and decode to distinct Refs.
//
// debugID exists purely for diagnostics that need to tell two Refs apart,
// exposed through DebugID; it is never read by the codec.
type Ref struct {
	content Value
	frozen  bool
	debugID uuid.UUID
}

// NewRef creates a Ref owning the given initial content.
func NewRef(initial Value) *Ref {
	return &Ref{content: initial, debugID: uuid.New()}
}

// Get returns the Ref's current content.
func (r *Ref) Get() Value { return r.content }

// Set replaces the Ref's content, failing with FrozenMutation if the Ref
// has been frozen.
func (r *Ref) Set(v Value) error {
	if r.frozen {
		return east_errors.New(east_errors.FrozenMutation, token.NoPos, "write to frozen Ref")
	}
	r.content = v
	return nil
}

// Freeze marks the Ref immutable; subsequent Set calls fail.
func (r *Ref) Freeze() { r.frozen = true }

// IsFrozen reports whether the Ref has been frozen.
func (r *Ref) IsFrozen() bool { return r.frozen }

// DebugID returns a process-local identifier for dumping/logging only; it
// has no wire representation and two distinct Refs may happen to format
// identically if their content is equal but MUST NOT be assumed to have
// related debugIDs.
func (r *Ref) DebugID() string { return r.debugID.String() }

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

// Variant is East's tagged-union value (spec §3.1 Variant{...}): exactly
// one declared tag, plus an inhabitant of that tag's type.
type Variant struct {
	Tag     string
	Payload Value
}

// NewVariant builds a Variant carrying tag and payload.
func NewVariant(tag string, payload Value) *Variant {
	return &Variant{Tag: tag, Payload: payload}
}

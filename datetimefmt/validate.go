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

package datetimefmt

import (
	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
)

// hierarchy is the full Year->Millisecond chain (spec §4.6). The
// time-only chain {Hour,Minute,Second,Millisecond} the spec also allows
// is exactly this slice's suffix starting at Hour, so a single ordered
// walk checks both: a format is valid iff its present categories form a
// contiguous run of hierarchy starting at either index 0 (Year) or the
// Hour index.
var hierarchy = [...]Category{
	CategoryYear, CategoryMonth, CategoryDay,
	CategoryHour, CategoryMinute, CategorySecond, CategoryMillisecond,
}

const hourIndex = 3 // hierarchy[3] == CategoryHour

func hierarchyIndex(c Category) int {
	for i, h := range hierarchy {
		if h == c {
			return i
		}
	}
	return -1
}

// Validate checks tokens against the contiguous-prefix invariant (spec
// §4.6): the set of present {Year..Millisecond} categories must form an
// unbroken run of the hierarchy starting at Year or at Hour. Weekday
// tokens, AM/PM tokens and Literal tokens never participate and cannot
// make an otherwise-valid format invalid. Every token's Kind must be one
// of the alphabet's declared members; validation is exhaustive, so an
// out-of-range Kind is InvalidFormat, not silently ignored.
func Validate(tokens []Token) error {
	present := make(map[Category]bool)
	for _, t := range tokens {
		if !isKnownKind(t.Kind) {
			return east_errors.New(east_errors.InvalidFormat, token.NoPos, "unknown datetime-format token %q", t.Kind)
		}
		if cat := categoryOf(t.Kind); cat != NoCategory {
			present[cat] = true
		}
	}
	if len(present) == 0 {
		return nil
	}

	minIdx, maxIdx := len(hierarchy), -1
	for cat := range present {
		i := hierarchyIndex(cat)
		if i < minIdx {
			minIdx = i
		}
		if i > maxIdx {
			maxIdx = i
		}
	}

	for i := minIdx; i <= maxIdx; i++ {
		if !present[hierarchy[i]] {
			return east_errors.New(east_errors.InvalidFormat, token.NoPos,
				"datetime format is missing category %s, required between %s and %s",
				hierarchy[i], hierarchy[minIdx], hierarchy[maxIdx])
		}
	}

	if minIdx != 0 && minIdx != hourIndex {
		return east_errors.New(east_errors.InvalidFormat, token.NoPos,
			"datetime format starts at category %s, which must be preceded by %s or %s",
			hierarchy[minIdx], hierarchy[0], hierarchy[hourIndex])
	}
	return nil
}

func isKnownKind(k Kind) bool {
	return k <= Literal
}

// ValidateNames is a convenience wrapper for callers holding bare token
// names (as decoded off the wire or typed at a CLI), resolving each via
// KindFromName before delegating to Validate.
func ValidateNames(names []string) error {
	tokens := make([]Token, len(names))
	for i, n := range names {
		k, ok := KindFromName(n)
		if !ok {
			return east_errors.New(east_errors.InvalidFormat, token.NoPos, "unknown datetime-format token %q", n)
		}
		tokens[i] = Token{Kind: k}
	}
	return Validate(tokens)
}

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
	"testing"

	"github.com/go-quicktest/qt"

	east_errors "github.com/elaraai/east/errors"
)

func tok(k Kind) Token { return Token{Kind: k} }

func TestValidateAcceptsFullDatePrefixes(t *testing.T) {
	cases := [][]Token{
		{tok(Year4)},
		{tok(Year4), tok(Month2)},
		{tok(Year4), tok(Month2), tok(Day2)},
		{tok(Year4), tok(Literal), tok(Month2), tok(Literal), tok(Day2)},
	}
	for _, tokens := range cases {
		qt.Assert(t, qt.IsNil(Validate(tokens)))
	}
}

func TestValidateAcceptsTimeOnlyPrefixes(t *testing.T) {
	cases := [][]Token{
		{tok(Hour24_2)},
		{tok(Hour24_2), tok(Minute2)},
		{tok(Hour24_2), tok(Minute2), tok(Second2)},
		{tok(Hour24_2), tok(Minute2), tok(Second2), tok(Millisecond3)},
	}
	for _, tokens := range cases {
		qt.Assert(t, qt.IsNil(Validate(tokens)))
	}
}

func TestValidateAcceptsFullChainThroughMillisecond(t *testing.T) {
	tokens := []Token{tok(Year4), tok(Month2), tok(Day2), tok(Hour24_2), tok(Minute2), tok(Second2), tok(Millisecond3)}
	qt.Assert(t, qt.IsNil(Validate(tokens)))
}

func TestValidateIgnoresWeekdayAMPMAndLiteral(t *testing.T) {
	tokens := []Token{tok(WeekdayNameFull), tok(Literal), tok(Hour12_2), tok(AMPMUpper)}
	qt.Assert(t, qt.IsNil(Validate(tokens)))
}

func TestValidateEmptyIsValid(t *testing.T) {
	qt.Assert(t, qt.IsNil(Validate(nil)))
	qt.Assert(t, qt.IsNil(Validate([]Token{tok(Literal)})))
}

func TestValidateRejectsYearWithoutMonthDayBeforeHour(t *testing.T) {
	// spec §8 S5: year4, literal(" "), hour24_2, literal(":"), minute2 is rejected.
	tokens := []Token{tok(Year4), tok(Literal), tok(Hour24_2), tok(Literal), tok(Minute2)}
	err := Validate(tokens)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(east_errors.Is(err, east_errors.InvalidFormat)))
}

func TestValidateRejectsGapInMiddle(t *testing.T) {
	tokens := []Token{tok(Year4), tok(Day2)} // Month missing
	err := Validate(tokens)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(east_errors.Is(err, east_errors.InvalidFormat)))
}

func TestValidateRejectsTrailingGap(t *testing.T) {
	tokens := []Token{tok(Hour24_2), tok(Millisecond3)} // Minute, Second missing
	err := Validate(tokens)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestValidateRejectsMonthAlone(t *testing.T) {
	tokens := []Token{tok(Month2)}
	err := Validate(tokens)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestValidateUnknownToken(t *testing.T) {
	err := Validate([]Token{{Kind: Kind(200)}})
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(east_errors.Is(err, east_errors.InvalidFormat)))
}

func TestValidateNamesFullDateExample(t *testing.T) {
	// spec §8 S5: [year4, literal("-"), month2, literal("-"), day2] accepted.
	err := ValidateNames([]string{"year4", "literal", "month2", "literal", "day2"})
	qt.Assert(t, qt.IsNil(err))
}

func TestValidateNamesTimeExample(t *testing.T) {
	// spec §8 S5: [hour24_2, literal(":"), minute2] accepted.
	err := ValidateNames([]string{"hour24_2", "literal", "minute2"})
	qt.Assert(t, qt.IsNil(err))
}

func TestValidateNamesUnknownName(t *testing.T) {
	err := ValidateNames([]string{"year4", "bogusToken"})
	qt.Assert(t, qt.IsNotNil(err))
}

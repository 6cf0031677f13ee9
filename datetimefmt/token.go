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

// Package datetimefmt describes East's datetime-format token alphabet
// (spec §4.6) and checks the cross-backend contiguous-prefix invariant
// every format must satisfy. The tokenizer and printer that turn a format
// string into a []Token (and back) are host-DSL ergonomics, out of scope
// here (spec §1); this package owns only the token model and the
// invariant a host's tokenizer result must be validated against before
// any backend trusts it.
package datetimefmt

import "fmt"

// Kind enumerates the datetime-format token alphabet (spec §4.6). It is a
// closed set: Validate treats any other value as InvalidFormat.
type Kind uint8

const (
	Year4 Kind = iota
	Year2
	Month1
	Month2
	MonthNameShort
	MonthNameFull
	Day1
	Day2
	WeekdayNameMin
	WeekdayNameShort
	WeekdayNameFull
	Hour24_1
	Hour24_2
	Hour12_1
	Hour12_2
	Minute1
	Minute2
	Second1
	Second2
	Millisecond3
	AMPMUpper
	AMPMLower
	Literal
)

var kindNames = [...]string{
	Year4: "year4", Year2: "year2",
	Month1: "month1", Month2: "month2", MonthNameShort: "monthNameShort", MonthNameFull: "monthNameFull",
	Day1: "day1", Day2: "day2",
	WeekdayNameMin: "weekdayNameMin", WeekdayNameShort: "weekdayNameShort", WeekdayNameFull: "weekdayNameFull",
	Hour24_1: "hour24_1", Hour24_2: "hour24_2", Hour12_1: "hour12_1", Hour12_2: "hour12_2",
	Minute1: "minute1", Minute2: "minute2",
	Second1: "second1", Second2: "second2",
	Millisecond3: "millisecond3",
	AMPMUpper:    "ampmUpper", AMPMLower: "ampmLower",
	Literal: "literal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindFromName looks up a Kind by its wire/source name, the inverse of
// Kind.String. Unknown names report ok=false; Validate turns that into an
// InvalidFormat error naming the token (spec §4.6: "an unknown token is an
// error").
func KindFromName(name string) (Kind, bool) {
	for k := Year4; k <= Literal; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Token is one element of a datetime format (spec §4.6). Text is only
// meaningful for Literal tokens; every other Kind is a fixed-shape
// placeholder with no payload.
type Token struct {
	Kind Kind
	Text string // Literal only
}

// Category is where a Token sits in the contiguous-prefix hierarchy (spec
// §4.6: "Year -> Month -> Day -> Hour -> Minute -> Second -> Millisecond").
// Weekday, AM/PM and literal tokens have no Category: they are invisible
// to the invariant.
type Category uint8

const (
	NoCategory Category = iota
	CategoryYear
	CategoryMonth
	CategoryDay
	CategoryHour
	CategoryMinute
	CategorySecond
	CategoryMillisecond
)

// categoryOf maps a token Kind to the hierarchy level it occupies, or
// NoCategory if the token is invisible to the contiguous-prefix invariant.
func categoryOf(k Kind) Category {
	switch k {
	case Year4, Year2:
		return CategoryYear
	case Month1, Month2, MonthNameShort, MonthNameFull:
		return CategoryMonth
	case Day1, Day2:
		return CategoryDay
	case Hour24_1, Hour24_2, Hour12_1, Hour12_2:
		return CategoryHour
	case Minute1, Minute2:
		return CategoryMinute
	case Second1, Second2:
		return CategorySecond
	case Millisecond3:
		return CategoryMillisecond
	default:
		// WeekdayName*, AMPM*, Literal
		return NoCategory
	}
}

func (c Category) String() string {
	switch c {
	case CategoryYear:
		return "Year"
	case CategoryMonth:
		return "Month"
	case CategoryDay:
		return "Day"
	case CategoryHour:
		return "Hour"
	case CategoryMinute:
		return "Minute"
	case CategorySecond:
		return "Second"
	case CategoryMillisecond:
		return "Millisecond"
	default:
		return "-"
	}
}

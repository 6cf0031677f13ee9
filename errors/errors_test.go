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

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/go-quicktest/qt"

	. "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
)

func TestNewCarriesKindAndPosition(t *testing.T) {
	pos := token.Position{Filename: "f.east", Line: 3, Column: 4}
	err := New(MissingField, pos, "no field %q", "x")
	qt.Assert(t, qt.Equals(err.Kind, MissingField))
	qt.Assert(t, qt.Equals(err.Position(), pos))
	qt.Assert(t, qt.IsTrue(Is(err, MissingField)))
	qt.Assert(t, qt.IsFalse(Is(err, ExtraField)))
}

func TestPushAppendsOuterFrame(t *testing.T) {
	inner := token.Position{Line: 1}
	outer := token.Position{Line: 2}
	err := New(TypeMismatch, inner, "bad")
	pushed := err.Push(outer)
	qt.Assert(t, qt.DeepEquals(pushed.Locations(), []token.Position{inner, outer}))
	// innermost position remains the one reported as Position()
	qt.Assert(t, qt.Equals(pushed.Position(), inner))
}

func TestPackagePushWrapsPlainError(t *testing.T) {
	plain := stderrors.New("boom")
	wrapped := Push(plain, DecodingError, token.Position{Line: 5})
	qt.Assert(t, qt.Equals(wrapped.Kind, DecodingError))
	qt.Assert(t, qt.IsNotNil(wrapped.Unwrap()))
}

func TestPackagePushExtendsExistingError(t *testing.T) {
	err := New(MissingPlatform, token.Position{Line: 1}, "x")
	wrapped := Push(err, DecodingError, token.Position{Line: 2})
	// Push recognizes an existing *Error and keeps its original Kind
	qt.Assert(t, qt.Equals(wrapped.Kind, MissingPlatform))
	qt.Assert(t, qt.Equals(len(wrapped.Locations()), 2))
}

func TestWrapUnwrapsToCause(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ArithmeticError, token.NoPos, cause, "division failed")
	qt.Assert(t, qt.Equals(stderrors.Unwrap(err), cause))
}

func TestKindStringUnknownFallback(t *testing.T) {
	var k Kind = 999
	qt.Assert(t, qt.Equals(k.String(), "Kind(999)"))
}

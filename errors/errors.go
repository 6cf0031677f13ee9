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

// Package errors defines East's kinded error type. Every East error carries
// a [Kind] and a non-empty stack of [token.Position] values in call order,
// so that a failure found several IR nodes deep during decoding can report
// the exact node being decoded, not just the top-level call.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elaraai/east/token"
)

// Kind classifies an East error per the error model (spec §7).
type Kind int

const (
	_ Kind = iota
	TypeMismatch
	UnknownVariantTag
	MissingField
	ExtraField
	MissingPlatform
	PlatformSignatureMismatch
	PlatformFailure
	InvalidFormat
	FrozenMutation
	EncodingError
	DecodingError
	ArithmeticError
)

var kindNames = [...]string{
	TypeMismatch:              "TypeMismatch",
	UnknownVariantTag:         "UnknownVariantTag",
	MissingField:              "MissingField",
	ExtraField:                "ExtraField",
	MissingPlatform:           "MissingPlatform",
	PlatformSignatureMismatch: "PlatformSignatureMismatch",
	PlatformFailure:           "PlatformFailure",
	InvalidFormat:             "InvalidFormat",
	FrozenMutation:            "FrozenMutation",
	EncodingError:             "EncodingError",
	DecodingError:             "DecodingError",
	ArithmeticError:           "ArithmeticError",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the common East error value. It implements the standard error
// interface and composes with errors.Is/errors.As via Unwrap.
type Error struct {
	Kind  Kind
	Msg   string
	Stack []token.Position // call order: innermost (where the error was raised) first
	Cause error            // wrapped host-level cause, or nil
}

// New creates an Error of the given kind at pos with a formatted message.
func New(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Stack: []token.Position{pos}}
}

// Wrap creates an Error of the given kind at pos that wraps cause.
func Wrap(kind Kind, pos token.Position, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Stack: []token.Position{pos}, Cause: cause}
}

// Push returns a copy of e with pos appended as the next (outer) frame in
// the location stack. Layers call this as an error propagates outward so
// that the full call path survives to the top-level caller.
func (e *Error) Push(pos token.Position) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Stack = append(append([]token.Position(nil), e.Stack...), pos)
	return &cp
}

// Push appends pos to err's location stack if err is (or wraps) an *Error,
// otherwise it wraps err fresh under kind. Callers use this at layer
// boundaries without needing to type-assert first.
func Push(err error, kind Kind, pos token.Position) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e.Push(pos)
	}
	return Wrap(kind, pos, err, "%s", err)
}

func (e *Error) Error() string {
	var b strings.Builder
	if len(e.Stack) > 0 {
		b.WriteString(e.Stack[0].String())
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Position returns the innermost (first-raised) location, the most
// specific point of failure.
func (e *Error) Position() token.Position {
	if len(e.Stack) == 0 {
		return token.NoPos
	}
	return e.Stack[0]
}

// Locations returns the full call-order stack of positions, innermost
// first, outermost (top-level caller) last.
func (e *Error) Locations() []token.Position {
	return e.Stack
}

// Is reports whether target is an *Error with the same Kind, allowing
// callers to write errors.Is(err, &errors.Error{Kind: errors.MissingPlatform}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Msg != "" {
		return e.Kind == t.Kind && e.Msg == t.Msg
	}
	return e.Kind == t.Kind
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

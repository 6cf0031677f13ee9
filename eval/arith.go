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

package eval

import (
	"math"

	"github.com/cockroachdb/apd/v3"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/ir"
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/values"
)

// intCtx is the apd context East's Integer arithmetic runs under: East
// integers have no fixed precision (spec §3.1 "arbitrary precision"), and
// a Precision of 0 tells apd to carry every significant digit an operation
// produces rather than rounding to a fixed width — the same convention
// values.Integer uses when it quantizes a decimal to exponent 0.
var intCtx = apd.BaseContext.WithPrecision(0)

// evalIntegerBinary applies op to two Integer operands.
func evalIntegerBinary(pos token.Position, op ir.BinaryOperator, a, b *apd.Decimal) (values.Value, error) {
	var res apd.Decimal
	switch op {
	case ir.OpAdd:
		_, _ = intCtx.Add(&res, a, b)
	case ir.OpSub:
		_, _ = intCtx.Sub(&res, a, b)
	case ir.OpMul:
		_, _ = intCtx.Mul(&res, a, b)
	case ir.OpDiv:
		if b.IsZero() {
			return values.Value{}, east_errors.New(east_errors.ArithmeticError, pos, "integer division by zero")
		}
		_, _ = intCtx.QuoInteger(&res, a, b)
	case ir.OpMod:
		if b.IsZero() {
			return values.Value{}, east_errors.New(east_errors.ArithmeticError, pos, "integer modulo by zero")
		}
		_, _ = intCtx.Rem(&res, a, b)
	default:
		return values.Value{}, east_errors.New(east_errors.ArithmeticError, pos, "unsupported integer operator %q", op)
	}
	return values.Integer(&res), nil
}

// evalFloatBinary applies op to two Float operands, following IEEE-754
// semantics as Go's float64 operators already do: division by zero
// produces +/-Inf, 0/0 produces NaN, never a runtime panic (spec §4.3).
func evalFloatBinary(pos token.Position, op ir.BinaryOperator, a, b float64) (values.Value, error) {
	switch op {
	case ir.OpAdd:
		return values.Float(a + b), nil
	case ir.OpSub:
		return values.Float(a - b), nil
	case ir.OpMul:
		return values.Float(a * b), nil
	case ir.OpDiv:
		return values.Float(a / b), nil
	case ir.OpMod:
		return values.Float(math.Mod(a, b)), nil
	default:
		return values.Value{}, east_errors.New(east_errors.ArithmeticError, pos, "unsupported float operator %q", op)
	}
}

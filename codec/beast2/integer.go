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

package beast2

import (
	"bytes"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
)

// encodeInteger writes d as zig-zag LEB128 over an arbitrary-precision
// big.Int, going through d's decimal text so the conversion never needs
// to reach into apd's internal coefficient representation (spec §4.4).
func encodeInteger(w *bytes.Buffer, d *apd.Decimal) error {
	n, ok := new(big.Int).SetString(d.Text('f'), 10)
	if !ok {
		return east_errors.New(east_errors.EncodingError, token.NoPos, "integer value %s is not representable as a base-10 integer", d.Text('f'))
	}
	writeVarBigUint(w, zigzagBig(n))
	return nil
}

func decodeInteger(r *reader) (*apd.Decimal, error) {
	u, err := readVarBigUint(r)
	if err != nil {
		return nil, err
	}
	n := unzigzagBig(u)
	d, _, err := apd.NewFromString(n.String())
	if err != nil {
		return nil, east_errors.Wrap(east_errors.DecodingError, token.NoPos, err, "decoding integer")
	}
	return d, nil
}

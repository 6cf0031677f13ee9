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
	"encoding/binary"
	"math"
)

// canonicalNaN is the bit pattern written for every NaN float, regardless
// of its payload (spec §4.4: "a canonical NaN bit pattern is emitted for
// any NaN" — determinism requires collapsing NaN's many bit patterns to
// one before comparing encoded bytes).
var canonicalNaN = math.Float64bits(math.NaN())

func encodeFloat(w *bytes.Buffer, f float64) {
	bits := math.Float64bits(f)
	if math.IsNaN(f) {
		bits = canonicalNaN
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], bits)
	w.Write(buf[:])
}

func decodeFloat(r *reader) (float64, error) {
	var buf [8]byte
	if _, err := r.Read(buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

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
)

// writeVarUint writes u as unsigned LEB128: 7 bits per byte, little-endian,
// continuation bit in the MSB (spec §4.4).
func writeVarUint(w *bytes.Buffer, u uint64) {
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u == 0 {
			w.WriteByte(b)
			return
		}
		w.WriteByte(b | 0x80)
	}
}

func readVarUint(r *reader) (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// zigzag64/unzigzag64 map a signed 64-bit value to/from an unsigned one so
// small-magnitude negatives stay short under LEB128 (spec §4.4: "signed
// value mapped to unsigned via zig-zag").
func zigzag64(n int64) uint64 { return uint64((n << 1) ^ (n >> 63)) }

func unzigzag64(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

// writeVarBigUint writes an arbitrary-precision non-negative integer as
// LEB128, bit-count unbounded (spec §4.4).
func writeVarBigUint(w *bytes.Buffer, u *big.Int) {
	n := new(big.Int).Set(u)
	mask := big.NewInt(0x7f)
	chunk := new(big.Int)
	for {
		chunk.And(n, mask)
		b := byte(chunk.Int64())
		n.Rsh(n, 7)
		if n.Sign() == 0 {
			w.WriteByte(b)
			return
		}
		w.WriteByte(b | 0x80)
	}
}

func readVarBigUint(r *reader) (*big.Int, error) {
	result := new(big.Int)
	chunk := new(big.Int)
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		chunk.SetInt64(int64(b & 0x7f))
		chunk.Lsh(chunk, shift)
		result.Or(result, chunk)
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// zigzagBig/unzigzagBig generalize the zig-zag mapping to arbitrary
// precision (spec §4.4 "bit-count unbounded").
func zigzagBig(n *big.Int) *big.Int {
	if n.Sign() >= 0 {
		return new(big.Int).Lsh(n, 1)
	}
	m := new(big.Int).Neg(n)
	m.Lsh(m, 1)
	m.Sub(m, big.NewInt(1))
	return m
}

func unzigzagBig(u *big.Int) *big.Int {
	if u.Bit(0) == 0 {
		return new(big.Int).Rsh(u, 1)
	}
	m := new(big.Int).Add(u, big.NewInt(1))
	m.Rsh(m, 1)
	return m.Neg(m)
}

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

// Package beast2 implements East's type-directed binary wire format (spec
// §4.4): a byte-for-byte deterministic encoding with no runtime type tags
// except where a sum type demands one (a variant's tag index, a
// function's declared-type hash).
package beast2

import (
	"io"

	east_errors "github.com/elaraai/east/errors"
	"github.com/elaraai/east/token"
)

// reader is a forward-only byte cursor over an in-memory buffer, tracking
// its offset so DecodingError messages can say where a decode gave up.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, east_errors.New(east_errors.DecodingError, token.NoPos, "unexpected end of input at offset %d", r.pos)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// Read fills p entirely or fails with DecodingError; Beast2 never permits
// a short read of a declared-length field (truncated input is always an
// error, never silently accepted — spec §1 "no silent truncation").
func (r *reader) Read(p []byte) (int, error) {
	if len(r.buf)-r.pos < len(p) {
		return 0, east_errors.New(east_errors.DecodingError, token.NoPos, "unexpected end of input: need %d bytes, have %d at offset %d", len(p), len(r.buf)-r.pos, r.pos)
	}
	n := copy(p, r.buf[r.pos:r.pos+len(p)])
	r.pos += n
	return n, nil
}

func (r *reader) Remaining() int { return len(r.buf) - r.pos }

var _ io.Reader = (*reader)(nil)

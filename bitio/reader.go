// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"errors"

	"github.com/mjreed/codeckit/internal/bitutil"
)

// ErrTruncated is returned when a Read call needs more bits than remain in
// the buffer.
var ErrTruncated = errors.New("bitio: truncated bit stream")

// Reader consumes a byte buffer packed by Writer: bits are read least-
// significant-bit first within a byte, and each returned codeword is
// reversed to restore its original bit order.
type Reader struct {
	buf     []byte
	byteOff int
	cur     byte
	curBits uint // number of unread bits remaining in cur
}

// NewReader creates a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Read returns the next n bits as an unsigned integer, reversed to restore
// the order in which the original value was written. n must be in [0, 32].
func (r *Reader) Read(n uint) (uint32, error) {
	if n > 32 {
		panic(bitWidthError(n))
	}
	var value uint32
	var got uint
	for got < n {
		if r.curBits == 0 {
			if r.byteOff >= len(r.buf) {
				return 0, ErrTruncated
			}
			r.cur = r.buf[r.byteOff]
			r.byteOff++
			r.curBits = 8
		}
		take := n - got
		if take > r.curBits {
			take = r.curBits
		}
		mask := byte(1<<take - 1)
		value |= uint32(r.cur&mask) << got
		r.cur >>= take
		r.curBits -= take
		got += take
	}
	return bitutil.ReverseBits(value, n), nil
}

// Remaining reports the number of whole bits left unread in the stream.
func (r *Reader) Remaining() int {
	return (len(r.buf)-r.byteOff)*8 + int(r.curBits)
}

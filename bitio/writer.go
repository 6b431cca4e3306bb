// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitio implements the bit-packing convention used by the huffman
// container format: codewords are written into bytes least-significant-bit
// first, but each codeword is bit-reversed before being packed so that a
// reader consuming the stream one bit at a time (also LSB first) reconstructs
// the codeword in its original, most-significant-bit-first order.
//
// This is the same trick used by RFC 1951 decoders internally (see
// golang.org/x/... flate implementations and dsnet/compress/flate) to let a
// single-bit read loop walk a canonical prefix tree without needing to know
// a code's length in advance.
package bitio

import "github.com/mjreed/codeckit/internal/bitutil"

// Writer packs codewords into a byte buffer using the huffman convention:
// bits are appended least-significant-bit first within a byte, and the bits
// of each codeword are reversed before being appended.
//
// The zero value is ready to use.
type Writer struct {
	buf     []byte
	cur     byte // partially filled byte
	curBits uint // number of valid bits in cur, 0..7
}

// NewWriter creates a Writer that appends to an internal buffer.
func NewWriter() *Writer {
	return new(Writer)
}

// Write appends the low n bits of value, reversed, to the stream.
// n must be in [0, 32]. Write panics if n is out of range; callers are
// expected to know the width of every codeword they emit.
func (w *Writer) Write(value uint32, n uint) {
	if n > 32 {
		panic(bitWidthError(n))
	}
	if n == 0 {
		return
	}
	value = bitutil.ReverseBits(value, n)
	for n > 0 {
		take := 8 - w.curBits
		if take > n {
			take = n
		}
		w.cur |= byte(value&((1<<take)-1)) << w.curBits
		value >>= take
		w.curBits += take
		n -= take
		if w.curBits == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur = 0
			w.curBits = 0
		}
	}
}

// Finish returns the populated byte buffer and the number of valid bits in
// the final byte. A return of 0 means the buffer holds a whole number of
// bytes; otherwise only the low trailingBits bits of the last byte are part
// of the stream.
func (w *Writer) Finish() (data []byte, trailingBits uint) {
	data = w.buf
	if w.curBits > 0 {
		data = append(data, w.cur)
	}
	return data, w.curBits
}

type bitWidthError uint

func (e bitWidthError) Error() string { return "bitio: codeword width out of range" }

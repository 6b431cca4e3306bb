// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package deflate decodes the DEFLATE compressed data format described in
// RFC 1951: stored blocks of raw bytes, and fixed-Huffman and
// dynamic-Huffman blocks made of literal bytes and LZ77 (length, distance)
// back-references into the output produced so far, each ended by the
// end-of-block symbol.
//
// Only decoding is implemented. There is no encoder, no GZIP or ZLIB
// framing, and no incremental or streaming API: Decode consumes one
// complete buffer and returns one complete result.
package deflate

const endBlockSym = 256

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "deflate: " + string(e) }

var (
	// ErrCorrupt is returned when the compressed stream violates the format:
	// a bad stored-block length check, a malformed dynamic-Huffman table, or
	// an out-of-range literal/length or distance symbol. A truncated bit
	// stream is reported as ErrTruncated instead.
	ErrCorrupt error = Error("stream is corrupted")
	// ErrInvalidBlockType is returned for the reserved (binary 11) block type.
	ErrInvalidBlockType error = Error("invalid block type")
	// ErrInvalidBackReference is returned when a (length, distance) pair
	// names a distance larger than the amount of output produced so far.
	ErrInvalidBackReference error = Error("back-reference distance exceeds history")
	// ErrInvalidCodeLengthRun is returned when a code-length run-length
	// symbol (16) appears before any code length has been emitted to repeat.
	ErrInvalidCodeLengthRun error = Error("code-length repeat symbol has no predecessor")
)

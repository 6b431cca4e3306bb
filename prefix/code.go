// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix holds the canonical-code assignment and decode-tree
// machinery shared by the huffman container format and the DEFLATE block
// decoder (RFC 1951 §3.2.2 describes the same construction both consumers
// rely on). Only the bit-stream conventions the two consumers read from
// differ; the codeword and tree math is identical.
package prefix

// Symbol is a coded value. DEFLATE uses three disjoint alphabets (literal or
// length, distance, and code-length); the huffman container uses a single
// byte alphabet. Symbol is wide enough for all of them.
type Symbol uint16

// CodeLength is the number of bits in a symbol's canonical codeword. A
// length of 0 means the symbol is absent from the code.
type CodeLength uint8

// Code pairs a Symbol with the CodeLength assigned to it, before codewords
// have been computed.
type Code struct {
	Symbol Symbol
	Length CodeLength
}

// Codeword extends Code with the canonical codeword value assigned to it.
type Codeword struct {
	Symbol Symbol
	Length CodeLength
	Value  uint32
}

// AssignCodes assigns canonical codewords to norm, which must already be
// sorted by (Length ascending, Symbol ascending) -- this order alone
// determines the canonical code. The first (shortest) symbol receives
// codeword 0; each subsequent symbol's codeword is one more than its
// predecessor's, left-shifted by however many bits its length grew.
func AssignCodes(norm []Code) []Codeword {
	out := make([]Codeword, len(norm))
	if len(norm) == 0 {
		return out
	}
	var code uint32
	out[0] = Codeword{Symbol: norm[0].Symbol, Length: norm[0].Length, Value: 0}
	for i := 1; i < len(norm); i++ {
		code++
		if norm[i].Length > norm[i-1].Length {
			code <<= uint(norm[i].Length - norm[i-1].Length)
		}
		out[i] = Codeword{Symbol: norm[i].Symbol, Length: norm[i].Length, Value: code}
	}
	return out
}

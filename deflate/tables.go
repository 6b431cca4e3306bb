// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package deflate

import (
	"sort"

	"github.com/mjreed/codeckit/prefix"
)

const (
	maxNumCLenSyms = 19
	maxNumLitSyms  = 286
	maxNumDistSyms = 30
)

// rangeCode maps a length or distance symbol to the base value of its range
// and the number of extra bits that follow to select within that range, per
// RFC 1951 §3.2.5.
type rangeCode struct {
	base uint32
	bits uint32
}

var (
	lenLUT  [maxNumLitSyms - 257]rangeCode
	distLUT [maxNumDistSyms]rangeCode
)

// clenOrder is the order in which code-length-alphabet bit-lengths are
// transmitted in a dynamic-Huffman block header, per RFC 1951 §3.2.7.
var clenOrder = [maxNumCLenSyms]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

var fixedLitTree, fixedDistTree *prefix.Tree

func init() {
	for i, base := 0, 3; i < len(lenLUT)-1; i++ {
		nb := uint32(i/4 - 1)
		if i < 4 {
			nb = 0
		}
		lenLUT[i] = rangeCode{base: uint32(base), bits: nb}
		base += 1 << nb
	}
	lenLUT[len(lenLUT)-1] = rangeCode{base: 258, bits: 0}

	for i, base := 0, 1; i < len(distLUT); i++ {
		nb := uint32(i/2 - 1)
		if i < 2 {
			nb = 0
		}
		distLUT[i] = rangeCode{base: uint32(base), bits: nb}
		base += 1 << nb
	}

	// RFC 1951 §3.2.6: the fixed literal/length code.
	var litCodes []prefix.Code
	for i := 0; i < 144; i++ {
		litCodes = append(litCodes, prefix.Code{Symbol: prefix.Symbol(i), Length: 8})
	}
	for i := 144; i < 256; i++ {
		litCodes = append(litCodes, prefix.Code{Symbol: prefix.Symbol(i), Length: 9})
	}
	for i := 256; i < 280; i++ {
		litCodes = append(litCodes, prefix.Code{Symbol: prefix.Symbol(i), Length: 7})
	}
	for i := 280; i < 288; i++ {
		litCodes = append(litCodes, prefix.Code{Symbol: prefix.Symbol(i), Length: 8})
	}
	sortCodes(litCodes)
	fixedLitTree = prefix.NewTree(prefix.AssignCodes(litCodes))

	// RFC 1951 §3.2.6: the fixed distance code, all 5 bits wide.
	var distCodes []prefix.Code
	for i := 0; i < 32; i++ {
		distCodes = append(distCodes, prefix.Code{Symbol: prefix.Symbol(i), Length: 5})
	}
	fixedDistTree = prefix.NewTree(prefix.AssignCodes(distCodes))
}

// sortCodes normalizes a code-length list into the (length ascending,
// symbol ascending) order prefix.AssignCodes requires. The fixed distance
// table above is already emitted in that order by construction; the fixed
// literal/length table (lengths 8, 9, 7, 8 by symbol range) and dynamic
// tables built from a wire-format code-length array are not, so this is
// shared.
func sortCodes(codes []prefix.Code) {
	sort.Slice(codes, func(i, j int) bool {
		if codes[i].Length != codes[j].Length {
			return codes[i].Length < codes[j].Length
		}
		return codes[i].Symbol < codes[j].Symbol
	})
}

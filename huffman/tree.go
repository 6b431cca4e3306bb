// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "github.com/mjreed/codeckit/prefix"

// Tree is a prefix-code lookup structure, shared with the DEFLATE decoder.
type Tree = prefix.Tree

// NewTree builds a decode tree from codewords produced by AssignCodes.
func NewTree(codewords []Codeword) *Tree {
	return prefix.NewTree(codewords)
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a canonical Huffman encoder and decoder with a
// self-describing container format: a histogram of the input drives the
// construction of a weighted binary tree, which yields per-symbol code
// lengths, which are normalized into a canonical code. The normalized table
// and the bit-packed payload are serialized together into one container.
package huffman

import "github.com/mjreed/codeckit/prefix"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "huffman: " + string(e) }

var (
	// ErrContainerFormat is returned when a container has an impossible size
	// or a header field that cannot be satisfied by the remaining bytes.
	ErrContainerFormat error = Error("container has an impossible size")
	// ErrInvalidCode is returned when a bit sequence traces a path into a
	// missing child of the decode tree.
	ErrInvalidCode = prefix.ErrInvalidCode
)

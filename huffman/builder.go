// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"container/heap"
	"sort"

	"github.com/chronos-tachyon/assert"
	"github.com/mjreed/codeckit/prefix"
)

// Symbol is a coded value. This package codes byte values, so a Symbol is
// always in [0, 255].
type Symbol = prefix.Symbol

// CodeLength is the number of bits in a symbol's canonical codeword. A
// length of 0 means the symbol is absent from the code.
type CodeLength = prefix.CodeLength

// Code pairs a Symbol with the CodeLength assigned to it by the weighted-tree
// construction, before codewords have been assigned.
type Code = prefix.Code

// Codeword extends Code with the canonical codeword value assigned to it.
type Codeword = prefix.Codeword

// Histogram counts the number of occurrences of each Symbol in a message.
type Histogram map[Symbol]uint64

// NewHistogram tallies the occurrences of every byte in data.
func NewHistogram(data []byte) Histogram {
	h := make(Histogram)
	for _, b := range data {
		h[Symbol(b)]++
	}
	return h
}

// huffNode is a node in the weighted binary tree built while assigning code
// lengths. Leaves carry a Symbol; internal nodes link two children.
type huffNode struct {
	count       uint64
	order       int // insertion order, used to break count ties deterministically
	symbol      Symbol
	leaf        bool
	left, right *huffNode
}

type nodeHeap []*huffNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].order < h[j].order
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*huffNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// BuildCodeLengths builds the weighted binary tree of §4.2 from hist and
// returns the resulting code lengths, normalized by sorting on
// (length ascending, symbol ascending). hist must not be empty: a histogram
// with zero entries is a programming error, not a runtime condition to
// recover from.
func BuildCodeLengths(hist Histogram) []Code {
	assert.Assertf(len(hist) > 0, "huffman: cannot build a code from an empty histogram")

	symbols := make([]Symbol, 0, len(hist))
	for s := range hist {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	h := make(nodeHeap, 0, len(symbols))
	order := 0
	for _, s := range symbols {
		h = append(h, &huffNode{count: hist[s], symbol: s, leaf: true, order: order})
		order++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode)
		b := heap.Pop(&h).(*huffNode)
		parent := &huffNode{count: a.count + b.count, left: a, right: b, order: order}
		order++
		heap.Push(&h, parent)
	}
	root := heap.Pop(&h).(*huffNode)

	codes := make([]Code, 0, len(symbols))
	var walk func(n *huffNode, depth int)
	walk = func(n *huffNode, depth int) {
		if n.leaf {
			codes = append(codes, Code{Symbol: n.symbol, Length: CodeLength(depth)})
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(root, 0)

	// A single-symbol alphabet collapses to depth 0 under the tree walk
	// above, since the loop that builds internal nodes never runs. Clamp it
	// to length 1 so the code remains decodable, per §9.
	if len(codes) == 1 {
		codes[0].Length = 1
	}

	sort.Slice(codes, func(i, j int) bool {
		if codes[i].Length != codes[j].Length {
			return codes[i].Length < codes[j].Length
		}
		return codes[i].Symbol < codes[j].Symbol
	})
	return codes
}

// AssignCodes implements §4.2 step 4: given a code-length vector already
// normalized by (length, symbol), assign canonical codewords such that the
// first (shortest) symbol receives codeword 0, and every later symbol's
// codeword is one more than its predecessor's, left-shifted by however many
// bits its length grew.
//
// This is shared with the DEFLATE decoder's dynamic-Huffman table
// reconstruction; see the prefix package.
func AssignCodes(norm []Code) []Codeword {
	return prefix.AssignCodes(norm)
}

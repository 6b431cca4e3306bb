// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the forward and inverse Burrows-Wheeler block-sort
// transform over arbitrary ordered symbol sequences, not just bytes.
package bwt

import (
	"cmp"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Encode computes the Burrows-Wheeler transform of seq: the rotation matrix
// of seq is sorted lexicographically by row, and Encode returns the row
// position of seq itself (the primary index) together with the matrix's
// last column.
//
// This is the textbook O(n^2 log n) rotation-sort construction, not the
// linear-time suffix-array method; the transform's input/output contract is
// what matters here, not encoder throughput.
func Encode[T cmp.Ordered](seq []T) (index int, out []T) {
	n := len(seq)
	if n == 0 {
		return 0, nil
	}

	doubled := make([]T, 2*n)
	copy(doubled, seq)
	copy(doubled[n:], seq)

	rows := make([][]T, n)
	for i := range rows {
		row := make([]T, n)
		copy(row, doubled[i:i+n])
		rows[i] = row
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return lessRow(rows[order[i]], rows[order[j]])
	})

	index = -1
	out = make([]T, n)
	for pos, orig := range order {
		out[pos] = rows[orig][n-1]
		if orig == 0 {
			index = pos
		}
	}
	return index, out
}

func lessRow[T cmp.Ordered](a, b []T) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Decode reverses Encode given the primary index and the last-column
// sequence it produced.
//
// It builds the "next index" table by a counting-sort pass over seq: for
// each distinct symbol value, occurrences are assigned consecutive slots in
// ascending symbol order, then ascending position order within a symbol --
// exactly the permutation that stably sorts seq, computed by sorting only
// the distinct symbol values rather than seq itself. Walking that table
// from index, N
// times, reconstructs the original sequence.
func Decode[T cmp.Ordered](index int, seq []T) []T {
	n := len(seq)
	if n == 0 {
		return nil
	}
	assert.Assertf(index >= 0 && index < n, "bwt: primary index %d out of range [0, %d)", index, n)

	counts := make(map[T]int, n)
	for _, v := range seq {
		counts[v]++
	}
	uniq := make([]T, 0, len(counts))
	for v := range counts {
		uniq = append(uniq, v)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	cursor := make(map[T]int, len(uniq))
	sum := 0
	for _, v := range uniq {
		cursor[v] = sum
		sum += counts[v]
	}

	next := make([]int, n)
	for i, v := range seq {
		next[cursor[v]] = i
		cursor[v]++
	}

	out := make([]T, n)
	i := index
	for k := 0; k < n; k++ {
		i = next[i]
		out[k] = seq[i]
	}
	return out
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package deflate

import (
	"github.com/dsnet/golib/errs"
	"github.com/mjreed/codeckit/prefix"
)

// Decode decompresses a complete DEFLATE stream, per RFC 1951. It reads
// every block in sequence -- stored, fixed-Huffman, or dynamic-Huffman --
// until a final block is consumed, and returns the fully reconstructed
// output.
func Decode(data []byte) (out []byte, err error) {
	defer errs.Recover(&err)

	br := newBitReader(data)
	var output []byte
	for {
		final, rerr := br.Read(1)
		errs.Panic(rerr)
		btype, rerr := br.Read(2)
		errs.Panic(rerr)

		switch btype {
		case 0:
			output = decodeStoredBlock(br, output)
		case 1:
			output = decodeHuffmanBlock(br, fixedLitTree, fixedDistTree, output)
		case 2:
			litTree, distTree := readDynamicTrees(br)
			output = decodeHuffmanBlock(br, litTree, distTree, output)
		default:
			errs.Panic(ErrInvalidBlockType)
		}

		if final == 1 {
			break
		}
	}
	return output, nil
}

// decodeStoredBlock reads an uncompressed block per RFC 1951 §3.2.4: a
// byte-aligned length, its one's complement as a check, then that many raw
// bytes.
func decodeStoredBlock(br *bitReader, output []byte) []byte {
	br.AlignToByte()
	lenBytes, err := br.ReadRawBytes(4)
	errs.Panic(err)
	n := uint16(lenBytes[0]) | uint16(lenBytes[1])<<8
	nn := uint16(lenBytes[2]) | uint16(lenBytes[3])<<8
	errs.Assert(n^nn == 0xffff, ErrCorrupt)

	raw, err := br.ReadRawBytes(int(n))
	errs.Panic(err)
	return append(output, raw...)
}

// decodeHuffmanBlock reads literal/length and distance symbols per RFC 1951
// §3.2.3 until the end-of-block symbol (256) is seen, appending decoded
// bytes and expanding back-references directly against output, which also
// serves as the sliding-window history: since there is no streaming, the
// entire decoded output so far is always available to copy from.
func decodeHuffmanBlock(br *bitReader, litTree, distTree *prefix.Tree, output []byte) []byte {
	for {
		sym, err := litTree.Decode(br)
		errs.Panic(err)

		switch {
		case int(sym) < endBlockSym:
			output = append(output, byte(sym))
		case int(sym) == endBlockSym:
			return output
		case int(sym) < maxNumLitSyms:
			rec := lenLUT[int(sym)-257]
			extra, rerr := br.Read(uint(rec.bits))
			errs.Panic(rerr)
			length := int(rec.base) + int(extra)

			distSym, derr := distTree.Decode(br)
			errs.Panic(derr)
			errs.Assert(int(distSym) < maxNumDistSyms, ErrCorrupt)
			drec := distLUT[distSym]
			dextra, rerr2 := br.Read(uint(drec.bits))
			errs.Panic(rerr2)
			distance := int(drec.base) + int(dextra)
			errs.Assert(distance > 0 && distance <= len(output), ErrInvalidBackReference)

			// Copy byte by byte, never via copy/append of a shared slice:
			// when distance < length the source range overlaps the
			// destination range still being written, and each output byte
			// must observe the bytes the copy itself has already emitted.
			start := len(output) - distance
			for i := 0; i < length; i++ {
				output = append(output, output[start+i])
			}
		default:
			errs.Panic(ErrCorrupt)
		}
	}
}

// readDynamicTrees reads a dynamic-Huffman block header per RFC 1951 §3.2.7:
// the code-length alphabet's own code, used to decode the literal/length and
// distance alphabets' code lengths, which are then assigned canonical
// codewords and built into lookup trees by the prefix package -- the same
// construction the huffman container format uses for its symbol table.
func readDynamicTrees(br *bitReader) (litTree, distTree *prefix.Tree) {
	numLit, err := br.Read(5)
	errs.Panic(err)
	numLitSyms := int(numLit) + 257
	numDist, err := br.Read(5)
	errs.Panic(err)
	numDistSyms := int(numDist) + 1
	numCLen, err := br.Read(4)
	errs.Panic(err)
	numCLenSyms := int(numCLen) + 4
	errs.Assert(numLitSyms <= maxNumLitSyms && numDistSyms <= maxNumDistSyms, ErrCorrupt)

	clenLengths := make([]uint8, maxNumCLenSyms)
	for i := 0; i < numCLenSyms; i++ {
		v, rerr := br.Read(3)
		errs.Panic(rerr)
		clenLengths[clenOrder[i]] = uint8(v)
	}
	clenTree := buildTree(clenLengths)

	total := numLitSyms + numDistSyms
	lengths := make([]uint8, total)
	var last uint8
	for sym := 0; sym < total; {
		s, derr := clenTree.Decode(br)
		errs.Panic(derr)
		clen := int(s)

		switch {
		case clen < 16:
			lengths[sym] = uint8(clen)
			last = uint8(clen)
			sym++
		case clen == 16:
			errs.Assert(sym > 0, ErrInvalidCodeLengthRun)
			n, rerr := br.Read(2)
			errs.Panic(rerr)
			rep := 3 + int(n)
			for i := 0; i < rep && sym < total; i++ {
				lengths[sym] = last
				sym++
			}
		case clen == 17:
			n, rerr := br.Read(3)
			errs.Panic(rerr)
			sym += 3 + int(n)
			last = 0
		case clen == 18:
			n, rerr := br.Read(7)
			errs.Panic(rerr)
			sym += 11 + int(n)
			last = 0
		default:
			errs.Panic(ErrCorrupt)
		}
		errs.Assert(sym <= total, ErrCorrupt)
	}

	litTree = buildTree(lengths[:numLitSyms])
	distTree = buildTree(lengths[numLitSyms:])
	return litTree, distTree
}

// buildTree turns a per-symbol code-length array (0 meaning absent) into a
// decode tree. An all-zero array yields an empty tree whose Decode always
// fails, which is correct for a distance alphabet a block never uses.
func buildTree(lengths []uint8) *prefix.Tree {
	var codes []prefix.Code
	for sym, l := range lengths {
		if l > 0 {
			codes = append(codes, prefix.Code{Symbol: prefix.Symbol(sym), Length: prefix.CodeLength(l)})
		}
	}
	sortCodes(codes)
	return prefix.NewTree(prefix.AssignCodes(codes))
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/dsnet/golib/errs"
	"github.com/mjreed/codeckit/bitio"
	"github.com/mjreed/codeckit/internal/bitutil"
)

// Encode packs data into the self-describing container of §4.4: a
// normalized symbol table, a bit-count header, and the Huffman-coded
// payload, all serialized with the huffman-convention bit streamer.
//
// An empty input is represented by a 3-byte header whose third byte (the
// table's symbol-count byte-width) is 0, a sentinel this package reserves
// for "zero symbols, no payload" since the general encoding has no way to
// express a table of zero entries.
func Encode(data []byte) []byte {
	if len(data) == 0 {
		return []byte{0, 0, 0}
	}

	hist := NewHistogram(data)
	norm := BuildCodeLengths(hist)
	codewords := AssignCodes(norm)

	header := serializeTable(norm)

	byCode := make(map[Symbol]Codeword, len(codewords))
	for _, c := range codewords {
		byCode[c.Symbol] = c
	}
	bw := bitio.NewWriter()
	for _, b := range data {
		c := byCode[Symbol(b)]
		bw.Write(c.Value, uint(c.Length))
	}
	payload, trailing := bw.Finish()

	completeBytes := len(payload)
	if trailing > 0 {
		completeBytes--
	}
	dataHeader := serializeDataHeader(completeBytes, trailing)

	out := make([]byte, 0, len(header)+len(dataHeader)+len(payload))
	out = append(out, header...)
	out = append(out, dataHeader...)
	out = append(out, payload...)
	return out
}

// Decode reverses Encode.
func Decode(data []byte) (out []byte, err error) {
	defer errs.Recover(&err)
	errs.Assert(len(data) >= 3, ErrContainerFormat)

	if data[2] == 0 {
		return []byte{}, nil
	}

	norm, consumed, err := deserializeTable(data)
	errs.Panic(err)
	rest := data[consumed:]

	byteCount, trailingBits, dataConsumed, err := deserializeDataHeader(rest)
	errs.Panic(err)
	rest = rest[dataConsumed:]

	payloadLen := byteCount
	if trailingBits > 0 {
		payloadLen++
	}
	errs.Assert(payloadLen <= len(rest), ErrContainerFormat)
	payload := rest[:payloadLen]
	totalBits := byteCount*8 + trailingBits

	codewords := AssignCodes(norm)
	tree := NewTree(codewords)

	br := bitio.NewReader(payload)
	start := br.Remaining()
	out = make([]byte, 0, totalBits/4+1)
	for start-br.Remaining() < totalBits {
		sym, decErr := tree.Decode(br)
		errs.Panic(decErr)
		out = append(out, byte(sym))
	}
	return out, nil
}

// serializeTable writes the normalized symbol table section of §4.4.
func serializeTable(norm []Code) []byte {
	n := len(norm)
	firstLength := norm[0].Length

	deltas := make([]uint32, n)
	last := uint32(firstLength)
	var maxDelta uint32
	for i, c := range norm {
		d := uint32(c.Length) - last
		deltas[i] = d
		if d > maxDelta {
			maxDelta = d
		}
		last = uint32(c.Length)
	}
	diffBits := bitutil.BitWidth(uint64(maxDelta))
	if diffBits == 0 {
		diffBits = 1
	}

	numSymbolsMinusOne := uint32(n - 1)
	numSymbolsByteSize := byteWidth(numSymbolsMinusOne)

	var maxSymbol Symbol
	for _, c := range norm {
		if c.Symbol > maxSymbol {
			maxSymbol = c.Symbol
		}
	}
	symbolBits := bitutil.BitWidth(uint64(maxSymbol))
	if symbolBits == 0 {
		symbolBits = 1
	}

	header := make([]byte, 0, 5+numSymbolsByteSize)
	header = append(header, byte(firstLength), byte(diffBits), byte(numSymbolsByteSize))
	header = appendLE(header, numSymbolsMinusOne, numSymbolsByteSize)
	header = append(header, byte(symbolBits))

	bw := bitio.NewWriter()
	for i, c := range norm {
		bw.Write(uint32(c.Symbol), uint(symbolBits))
		bw.Write(deltas[i], uint(diffBits))
	}
	packed, _ := bw.Finish()
	return append(header, packed...)
}

func deserializeTable(buf []byte) ([]Code, int, error) {
	if len(buf) < 4 {
		return nil, 0, ErrContainerFormat
	}
	firstLength := CodeLength(buf[0])
	diffBits := int(buf[1])
	numSymbolsByteSize := int(buf[2])
	if numSymbolsByteSize == 0 || diffBits == 0 || diffBits > 32 {
		return nil, 0, ErrContainerFormat
	}
	if 3+numSymbolsByteSize >= len(buf) {
		return nil, 0, ErrContainerFormat
	}
	numSymbolsMinusOne := readLE(buf[3 : 3+numSymbolsByteSize])
	n := int(numSymbolsMinusOne) + 1

	symbolBitsOff := 3 + numSymbolsByteSize
	symbolBits := int(buf[symbolBitsOff])
	if symbolBits == 0 || symbolBits > 16 {
		return nil, 0, ErrContainerFormat
	}

	tableStart := symbolBitsOff + 1
	totalBits := (symbolBits + diffBits) * n
	totalBytes := (totalBits + 7) / 8
	if tableStart+totalBytes > len(buf) {
		return nil, 0, ErrContainerFormat
	}

	br := bitio.NewReader(buf[tableStart : tableStart+totalBytes])
	norm := make([]Code, n)
	last := uint32(firstLength)
	for i := 0; i < n; i++ {
		symVal, err := br.Read(uint(symbolBits))
		if err != nil {
			return nil, 0, ErrContainerFormat
		}
		deltaVal, err := br.Read(uint(diffBits))
		if err != nil {
			return nil, 0, ErrContainerFormat
		}
		length := last + deltaVal
		norm[i] = Code{Symbol: Symbol(symVal), Length: CodeLength(length)}
		last = length
	}
	return norm, tableStart + totalBytes, nil
}

func serializeDataHeader(byteCount int, trailingBits uint) []byte {
	byteCountSize := byteWidth(uint32(byteCount))
	out := make([]byte, 0, 2+byteCountSize)
	out = append(out, byte(byteCountSize))
	out = appendLE(out, uint32(byteCount), byteCountSize)
	out = append(out, byte(trailingBits))
	return out
}

func deserializeDataHeader(buf []byte) (byteCount, trailingBits, consumed int, err error) {
	if len(buf) < 2 {
		return 0, 0, 0, ErrContainerFormat
	}
	byteCountSize := int(buf[0])
	if byteCountSize == 0 || 1+byteCountSize >= len(buf) {
		return 0, 0, 0, ErrContainerFormat
	}
	byteCount = int(readLE(buf[1 : 1+byteCountSize]))
	trailingBits = int(buf[1+byteCountSize])
	if trailingBits > 7 {
		return 0, 0, 0, ErrContainerFormat
	}
	return byteCount, trailingBits, 2 + byteCountSize, nil
}

// byteWidth returns the number of bytes needed to hold v in little-endian
// form, always at least 1 so a count field can represent zero.
func byteWidth(v uint32) int {
	n := (bitutil.BitWidth(uint64(v)) + 7) / 8
	if n == 0 {
		n = 1
	}
	return n
}

func appendLE(buf []byte, v uint32, n int) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, byte(v))
		v >>= 8
	}
	return buf
}

func readLE(buf []byte) uint32 {
	var v uint32
	for i, b := range buf {
		v |= uint32(b) << uint(8*i)
	}
	return v
}

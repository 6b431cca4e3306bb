// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package deflate

import (
	"bytes"
	"compress/flate"
	"math/rand"
	"testing"
)

// encodeReference compresses data with the standard library's DEFLATE
// encoder, at the given level, so this package's decoder can be exercised
// against real-world output without this package implementing an encoder
// itself.
func encodeReference(t *testing.T, data []byte, level int) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, level)
	if err != nil {
		t.Fatalf("flate.NewWriter: %v", err)
	}
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeStoredBlock(t *testing.T) {
	vectors := [][]byte{
		nil,
		[]byte("x"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0xaa}, 5000),
	}
	for _, v := range vectors {
		enc := encodeReference(t, v, flate.NoCompression)
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%q): unexpected error: %v", v, err)
		}
		if !bytes.Equal(dec, v) {
			t.Errorf("Decode(%q) = %q, want original", v, dec)
		}
	}
}

func TestDecodeFixedAndDynamicBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	vectors := []string{
		"",
		"a",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"abababababababababababababababababababababababab",
		"the quick brown fox jumps over the lazy dog. the quick brown fox jumps again.",
	}
	for _, v := range vectors {
		for _, level := range []int{flate.BestSpeed, flate.DefaultCompression, flate.BestCompression} {
			enc := encodeReference(t, []byte(v), level)
			dec, err := Decode(enc)
			if err != nil {
				t.Fatalf("level %d, Decode(%q): unexpected error: %v", level, v, err)
			}
			if string(dec) != v {
				t.Errorf("level %d, Decode(%q) = %q, want original", level, v, dec)
			}
		}
	}

	// Random data defeats compression: the reference encoder emits it as a
	// stored block, followed by an empty final fixed-Huffman block.
	data := make([]byte, 10000)
	rng.Read(data)
	for _, level := range []int{flate.BestSpeed, flate.BestCompression} {
		enc := encodeReference(t, data, level)
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("level %d: unexpected error: %v", level, err)
		}
		if !bytes.Equal(dec, data) {
			t.Errorf("level %d: round trip mismatch on random data", level)
		}
	}
}

func TestDecodeSelfOverlappingBackReference(t *testing.T) {
	// "abc" repeated many times compresses to a back-reference whose
	// distance (3) is smaller than its length, forcing the decoder to
	// replay bytes it only just emitted.
	data := []byte(string(bytes.Repeat([]byte("abc"), 2000)))
	enc := encodeReference(t, data, flate.BestCompression)
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Errorf("round trip mismatch on self-overlapping input")
	}
}

func TestDecodeInvalidBlockType(t *testing.T) {
	// BFINAL=1, BTYPE=11 (reserved), rest irrelevant.
	_, err := Decode([]byte{0x07})
	if err != ErrInvalidBlockType {
		t.Errorf("Decode(reserved block type) error = %v, want ErrInvalidBlockType", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	enc := encodeReference(t, []byte("hello, world"), flate.BestCompression)
	_, err := Decode(enc[:len(enc)/2])
	if err == nil {
		t.Errorf("Decode(truncated stream): expected error, got nil")
	}
}

// TestDecodeHandCraftedStoredBlockMaxLength pins the upper boundary of a
// stored block's 16-bit length field: LEN=0xffff, the largest value the
// header can carry without NLEN underflowing.
func TestDecodeHandCraftedStoredBlockMaxLength(t *testing.T) {
	data := bytes.Repeat([]byte{0x5a}, 0xffff)
	enc := make([]byte, 0, 5+len(data))
	enc = append(enc, 0x01, 0xff, 0xff, 0x00, 0x00)
	enc = append(enc, data...)
	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Decode(max-length stored block) mismatch, got %d bytes, want %d", len(got), len(data))
	}
}

// TestDecodeHandCraftedStoredBlock decodes a BFINAL=1, BTYPE=00 block built
// by hand rather than by a reference encoder, to pin the exact stored-block
// framing: LEN/NLEN as a 16-bit one's-complement pair, then LEN raw bytes.
func TestDecodeHandCraftedStoredBlock(t *testing.T) {
	// byte 0: bit0=1 (BFINAL), bits1-2=00 (BTYPE=stored), rest is padding
	// discarded by the byte-alignment that stored blocks require.
	enc := []byte{0x01, 0x05, 0x00, 0xfa, 0xff, 'a', 'b', 'c', 'd', 'e'}
	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "abcde" {
		t.Errorf("Decode(stored block) = %q, want %q", got, "abcde")
	}
}

// TestDecodeHandCraftedFixedLiteral decodes a BFINAL=1, BTYPE=01 block
// containing the single literal 'A' (fixed code 00110000+65 = 113, 8 bits)
// followed by the end-of-block symbol (fixed code 0000000, 7 bits).
func TestDecodeHandCraftedFixedLiteral(t *testing.T) {
	enc := []byte{0x73, 0x04, 0x00}
	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "A" {
		t.Errorf("Decode(fixed literal block) = %q, want %q", got, "A")
	}
}

// TestDecodeCodeLengthRunWithNoPredecessor builds a dynamic block whose
// code-length alphabet assigns a 1-bit code to alphabet symbol 16 (repeat
// previous length) and nothing else, then uses that code as the very first
// decoded code-length symbol -- which has no previous length to repeat.
func TestDecodeCodeLengthRunWithNoPredecessor(t *testing.T) {
	enc := []byte{0x05, 0x00, 0x02, 0x00}
	_, err := Decode(enc)
	if err != ErrInvalidCodeLengthRun {
		t.Errorf("Decode(leading repeat symbol) error = %v, want ErrInvalidCodeLengthRun", err)
	}
}

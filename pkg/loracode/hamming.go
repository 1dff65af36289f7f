// Package loracode implements the byte-level coding primitives that sit
// between the payload and the chirp symbols: systematic Hamming(8,4)
// per-nibble coding, diagonal interleaving, PN whitening and the CRC-16
// trailer check.
package loracode

import "math/bits"

// Hamming(8,4) systematic code. The four data bits occupy the low nibble
// of the codeword; the four parity bits occupy the high nibble:
//
//	p0 = d0^d1^d2   p1 = d1^d2^d3   p2 = d0^d1^d3   p3 = d0^d2^d3
//
// This parity-check set gives the code a minimum distance of 4: any
// single-bit error lands strictly closer (Hamming distance 1) to the
// original codeword than to any other, so decode always recovers it;
// two-bit errors are detected but not corrected.

// EncodeHamming84 encodes the low nibble of d (bits 0-3) into an 8-bit
// systematic Hamming codeword.
func EncodeHamming84(d byte) byte {
	d0 := (d >> 0) & 1
	d1 := (d >> 1) & 1
	d2 := (d >> 2) & 1
	d3 := (d >> 3) & 1

	p0 := d0 ^ d1 ^ d2
	p1 := d1 ^ d2 ^ d3
	p2 := d0 ^ d1 ^ d3
	p3 := d0 ^ d2 ^ d3

	data := d0 | d1<<1 | d2<<2 | d3<<3
	parity := p0 | p1<<1 | p2<<2 | p3<<3
	return data | parity<<4
}

var codebook = func() [16]byte {
	var table [16]byte
	for i := range table {
		table[i] = EncodeHamming84(byte(i))
	}
	return table
}()

// DecodeHamming84 recovers the original nibble from an 8-bit codeword by
// nearest-codeword matching against the 16 valid codewords. err reports
// that cw was not itself a valid codeword; bad reports that the nearest
// codeword was not unique (an uncorrectable multi-bit error), in which
// case the nibble is returned uncorrected from cw's low bits.
func DecodeHamming84(cw byte) (nibble byte, err, bad bool) {
	bestDist := 9
	bestNibble := byte(0)
	ties := 0

	for n, word := range codebook {
		d := bits.OnesCount8(cw ^ word)
		switch {
		case d < bestDist:
			bestDist = d
			bestNibble = byte(n)
			ties = 1
		case d == bestDist:
			ties++
		}
	}

	if bestDist == 0 {
		return bestNibble, false, false
	}
	if ties > 1 {
		return cw & 0xF, true, true
	}
	return bestNibble, true, false
}

package main

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

/* ===================== HFE container ===================== */

const (
	hfeBlockSize  = 512
	hfeSignature  = "HXCPICFE"
	hfeRevision   = 0
	hfeEncodingFM = 0x02 // ISOIBM_FM_ENCODING
	hfeIfShugart  = 0x07 // GENERIC_SHUGART_DD_FLOPPYMODE
	hfeDataStart  = 3    // header block + two track-list blocks
	hfePadByte    = 0xFF // filler for header and track-list blocks
)

// buildHFE assembles the container: fixed header block, track offset table,
// then per-cylinder block-packed cell data. cyls holds the encoded FM cell
// stream of each head, indexed [cylinder][head].
func buildHFE(cyls [][][]byte, geom DiskGeometry) ([]byte, error) {
	lut := make([]byte, 0, len(cyls)*4)
	var data []byte
	block := hfeDataStart

	for _, sides := range cyls {
		cellLen := len(sides[0])
		// The stored length covers both interleaved sides at the doubled
		// container bit rate: four container bytes per cell byte.
		if cellLen > 0xFFFF/4 {
			return nil, fmt.Errorf("%w: track too large for HFE container (%d cell bytes)",
				ErrInvalidGeometry, cellLen)
		}
		var entry [4]byte
		binary.LittleEndian.PutUint16(entry[0:2], uint16(block))
		binary.LittleEndian.PutUint16(entry[2:4], uint16(cellLen*4))
		lut = append(lut, entry[:]...)

		packed, blocks := packCylinder(sides)
		data = append(data, packed...)
		block += blocks
	}

	out := make([]byte, 0, hfeDataStart*hfeBlockSize+len(data))
	out = append(out, padBlock(hfeHeader(geom), hfeBlockSize)...)
	out = append(out, padBlock(lut, 2*hfeBlockSize)...)
	out = append(out, data...)
	return out, nil
}

// hfeHeader lays out the fixed 26-byte header, little-endian.
func hfeHeader(geom DiskGeometry) []byte {
	h := make([]byte, 26)
	copy(h[0:8], hfeSignature)
	h[8] = hfeRevision
	h[9] = byte(geom.Cylinders)
	h[10] = byte(geom.Heads)
	h[11] = hfeEncodingFM
	binary.LittleEndian.PutUint16(h[12:14], uint16(geom.CellRate))
	binary.LittleEndian.PutUint16(h[14:16], uint16(geom.RPM))
	h[16] = hfeIfShugart
	h[17] = 0x01 // reserved
	binary.LittleEndian.PutUint16(h[18:20], 1) // track list at block 1
	h[20] = 0xFF                               // write allowed
	h[21] = 0xFF                               // single step
	h[22], h[23] = 0xFF, 0xFF                  // track 0 side 0: global encoding
	h[24], h[25] = 0xFF, 0xFF                  // track 0 side 1: global encoding
	return h
}

// hfeBitExpand doubles every cell (a zero cell before each one, matching
// the emulator's half-rate FM playback) and converts the result to the
// container's LSB-first bit order.
func hfeBitExpand(cells []byte) []byte {
	out := make([]byte, 0, len(cells)*2)
	for _, b := range cells {
		var v uint16
		for i := 0; i < 8; i++ {
			v <<= 2
			v |= uint16(b >> 7)
			b <<= 1
		}
		out = append(out, bits.Reverse8(byte(v>>8)), bits.Reverse8(byte(v)))
	}
	return out
}

// packCylinder interleaves the sides of a cylinder in 256-byte halves per
// 512-byte block, as the HFE track layout requires. A missing second side
// is filled with zeros. Returns the packed data and the block count.
func packCylinder(sides [][]byte) ([]byte, int) {
	half := hfeBlockSize / 2
	side0 := splitParts(hfeBitExpand(sides[0]), half)
	var side1 [][]byte
	if len(sides) > 1 {
		side1 = splitParts(hfeBitExpand(sides[1]), half)
	}

	out := make([]byte, 0, len(side0)*hfeBlockSize)
	for i := range side0 {
		out = append(out, side0[i]...)
		if i < len(side1) {
			out = append(out, side1[i]...)
		} else {
			out = append(out, make([]byte, half)...)
		}
	}
	return out, len(side0)
}

// splitParts divides data into size-byte parts, zero-padding the last one.
func splitParts(data []byte, size int) [][]byte {
	var parts [][]byte
	for off := 0; off < len(data); off += size {
		part := make([]byte, size)
		copy(part, data[off:])
		parts = append(parts, part)
	}
	return parts
}

// padBlock pads data up to size with the container filler byte.
func padBlock(data []byte, size int) []byte {
	if len(data) > size {
		panic("hfe: block overflow")
	}
	out := make([]byte, size)
	for i := range out {
		out[i] = hfePadByte
	}
	copy(out, data)
	return out
}

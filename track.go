package main

import "github.com/sigurn/crc16"

// IBM 3740-style single-density address marks: the data byte paired with
// the clock pattern that makes the mark detectable on the track.
var (
	markIndex    = fmByte{data: 0xFC, clock: 0xD7} // IAM
	markSectorID = fmByte{data: 0xFE, clock: 0xC7} // IDAM
	markData     = fmByte{data: 0xFB, clock: 0xC7} // DAM
)

// Gap and sync lengths in data bytes, per the IBM 3740 track layout.
const (
	gapFill = 0xFF
	gap1Len = 40 // pre-index
	gap2Len = 26 // post-index
	gap3Len = 11 // ID field to data field
	gap4Len = 27 // inter-sector
	syncLen = 6  // 0x00 run before every address mark

	// trackIndexReserve: data bytes left off the end of the revolution so
	// the index pulse never lands inside a written field.
	trackIndexReserve = 50
)

// CRC-16/IBM-3740: poly 0x1021, init 0xFFFF, no reflection.
var edcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// encodeTrack produces the FM cell stream for one track. sectors is the
// logical sector sequence of the (cylinder, head) pair; ileave maps each
// physical slot to the logical index it carries. The stream length depends
// only on the geometry, never on sector content.
func encodeTrack(sectors [][]byte, geom DiskGeometry, cyl, head int, ileave []int) []byte {
	return buildTrackStream(sectors, geom, cyl, head, ileave).encode()
}

func buildTrackStream(sectors [][]byte, geom DiskGeometry, cyl, head int, ileave []int) *fmStream {
	track := &fmStream{}

	// Track header: pre-index gap, sync, index mark, post-index gap.
	track.addFill(gapFill, gap1Len)
	track.addFill(0x00, syncLen)
	track.addMark(markIndex)
	track.addFill(gapFill, gap2Len)

	for phys := 0; phys < geom.SectorsPerTrack; phys++ {
		logical := ileave[phys]
		// Sector numbers on the track are 1-based.
		track.append(encodeSector(sectors[logical], geom, cyl, head, logical+1))
	}

	// Fill the remainder of the revolution, minus the index reserve.
	if n := geom.trackBudgetBytes() - len(track.bytes) - trackIndexReserve; n > 0 {
		track.addFill(gapFill, n)
	}
	return track
}

func encodeSector(payload []byte, geom DiskGeometry, cyl, head, secNum int) *fmStream {
	s := &fmStream{}

	// ID field: sync, IDAM, cylinder/head/sector/size code, CRC. The CRC
	// covers the address mark byte and the four ID bytes.
	s.addFill(0x00, syncLen)
	id := &fmStream{}
	id.addMark(markSectorID)
	id.addBytes(byte(cyl), byte(head), byte(secNum), geom.sizeCode())
	id.addBytes(edc(id.dataBytes())...)
	s.append(id)

	s.addFill(gapFill, gap3Len)

	// Data field: sync, DAM, payload, CRC over mark plus payload.
	s.addFill(0x00, syncLen)
	df := &fmStream{}
	df.addMark(markData)
	df.addBytes(payload...)
	df.addBytes(edc(df.dataBytes())...)
	s.append(df)

	s.addFill(gapFill, gap4Len)
	return s
}

// edc computes a field's error detection code, big-endian on the track.
func edc(data []byte) []byte {
	c := crc16.Checksum(data, edcTable)
	return []byte{byte(c >> 8), byte(c)}
}

// trackContentBytes is the data-byte length of the track header plus all
// framed sectors, before the trailing gap.
func trackContentBytes(g DiskGeometry) int {
	header := gap1Len + syncLen + 1 + gap2Len
	sector := syncLen + 1 + 4 + 2 + gap3Len + syncLen + 1 + g.SectorSize + 2 + gap4Len
	return header + g.SectorsPerTrack*sector
}

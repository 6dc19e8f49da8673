package main

// fmByte is one byte on the track: eight payload bits plus the clock bits
// interleaved in front of them. Regular data carries the all-ones clock;
// address marks drop specific clock bits so the controller can find them.
type fmByte struct {
	data  byte
	clock byte
}

const fmDataClock = 0xFF

// fmStream accumulates the byte-level content of one track before cell
// expansion.
type fmStream struct {
	bytes []fmByte
}

// addBytes appends payload bytes with the standard clock pattern.
func (s *fmStream) addBytes(data ...byte) {
	for _, b := range data {
		s.bytes = append(s.bytes, fmByte{data: b, clock: fmDataClock})
	}
}

// addFill appends n copies of a gap or sync byte.
func (s *fmStream) addFill(b byte, n int) {
	for i := 0; i < n; i++ {
		s.bytes = append(s.bytes, fmByte{data: b, clock: fmDataClock})
	}
}

// addMark appends an address mark with its non-standard clock.
func (s *fmStream) addMark(m fmByte) {
	s.bytes = append(s.bytes, m)
}

// append concatenates another stream onto s.
func (s *fmStream) append(other *fmStream) {
	s.bytes = append(s.bytes, other.bytes...)
}

// dataBytes returns the payload bytes only. This is the CRC input.
func (s *fmStream) dataBytes() []byte {
	out := make([]byte, len(s.bytes))
	for i, b := range s.bytes {
		out[i] = b.data
	}
	return out
}

// cellLen is the encoded length in bytes: two per data byte.
func (s *fmStream) cellLen() int { return len(s.bytes) * 2 }

// encode expands every byte to its 16-cell FM representation: clock bit
// then data bit, most significant first.
func (s *fmStream) encode() []byte {
	out := make([]byte, 0, s.cellLen())
	for _, b := range s.bytes {
		data, clock := b.data, b.clock
		var cells uint16
		for i := 0; i < 8; i++ {
			cells = cells<<1 | uint16(clock>>7)
			cells = cells<<1 | uint16(data>>7)
			clock <<= 1
			data <<= 1
		}
		out = append(out, byte(cells>>8), byte(cells))
	}
	return out
}

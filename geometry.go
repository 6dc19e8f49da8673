package main

import "fmt"

// DiskGeometry fully describes the target diskette format. It is resolved
// once from a preset plus overrides and immutable afterwards.
type DiskGeometry struct {
	Cylinders       int
	Heads           int
	SectorsPerTrack int
	SectorSize      int // bytes, power of two, >= 128
	CellRate        int // payload data rate in kbit/s
	RPM             int // spindle speed
	Interleave      int // logical-to-physical sector scatter factor
}

// Built-in disk format presets.
var presets = map[string]DiskGeometry{
	// Honeywell Level 6 system diskette: 8" single-sided single-density.
	"level6": {Cylinders: 77, Heads: 1, SectorsPerTrack: 26, SectorSize: 128,
		CellRate: 250, RPM: 360, Interleave: 1},
	// IBM 8" double-sided single-density (3740-style format on both heads).
	"ibm8dssd": {Cylinders: 77, Heads: 2, SectorsPerTrack: 26, SectorSize: 128,
		CellRate: 250, RPM: 360, Interleave: 1},
}

// presetNames keeps listing order stable.
var presetNames = []string{"level6", "ibm8dssd"}

// GeometryOverrides carries per-field user overrides. Zero means "keep the
// preset value".
type GeometryOverrides struct {
	Cylinders       int
	Heads           int
	SectorsPerTrack int
	SectorSize      int
	CellRate        int
	RPM             int
	Interleave      int
}

// ResolveGeometry merges a named preset with overrides and validates the
// result. No side effects.
func ResolveGeometry(preset string, ov GeometryOverrides) (DiskGeometry, error) {
	g, ok := presets[preset]
	if !ok {
		return DiskGeometry{}, fmt.Errorf("%w: unknown format preset %q", ErrInvalidGeometry, preset)
	}
	if ov.Cylinders != 0 {
		g.Cylinders = ov.Cylinders
	}
	if ov.Heads != 0 {
		g.Heads = ov.Heads
	}
	if ov.SectorsPerTrack != 0 {
		g.SectorsPerTrack = ov.SectorsPerTrack
	}
	if ov.SectorSize != 0 {
		g.SectorSize = ov.SectorSize
	}
	if ov.CellRate != 0 {
		g.CellRate = ov.CellRate
	}
	if ov.RPM != 0 {
		g.RPM = ov.RPM
	}
	if ov.Interleave != 0 {
		g.Interleave = ov.Interleave
	}
	if err := g.validate(); err != nil {
		return DiskGeometry{}, err
	}
	return g, nil
}

func (g DiskGeometry) validate() error {
	if g.Cylinders < 1 || g.Cylinders > 255 {
		return fmt.Errorf("%w: cylinders must be 1-255, got %d", ErrInvalidGeometry, g.Cylinders)
	}
	if g.Heads < 1 || g.Heads > 2 {
		return fmt.Errorf("%w: heads must be 1 or 2, got %d", ErrInvalidGeometry, g.Heads)
	}
	if g.SectorsPerTrack < 1 || g.SectorsPerTrack > 255 {
		return fmt.Errorf("%w: sectors per track must be 1-255, got %d", ErrInvalidGeometry, g.SectorsPerTrack)
	}
	if g.SectorSize < 128 || g.SectorSize&(g.SectorSize-1) != 0 {
		return fmt.Errorf("%w: sector size must be a power of two >= 128, got %d", ErrInvalidGeometry, g.SectorSize)
	}
	if g.CellRate < 1 || g.CellRate > 0xFFFF {
		return fmt.Errorf("%w: cell rate must be 1-65535 kbit/s, got %d", ErrInvalidGeometry, g.CellRate)
	}
	if g.RPM < 1 || g.RPM > 0xFFFF {
		return fmt.Errorf("%w: spindle speed must be 1-65535 RPM, got %d", ErrInvalidGeometry, g.RPM)
	}
	if g.Interleave < 1 {
		return fmt.Errorf("%w: interleave factor must be positive, got %d", ErrInvalidGeometry, g.Interleave)
	}
	// The (i*k) mod n placement is a bijection only when k and n are coprime.
	if gcd(g.Interleave, g.SectorsPerTrack) != 1 {
		return fmt.Errorf("%w: factor %d shares a divisor with %d sectors per track",
			ErrInvalidInterleave, g.Interleave, g.SectorsPerTrack)
	}
	if trackContentBytes(g)+trackIndexReserve > g.trackBudgetBytes() {
		return fmt.Errorf("%w: %d sectors of %d bytes do not fit one revolution at %d kbit/s, %d RPM",
			ErrInvalidGeometry, g.SectorsPerTrack, g.SectorSize, g.CellRate, g.RPM)
	}
	return nil
}

// trackBudgetBytes is the number of data bytes one revolution holds:
// CellRate kbit/s of payload for 60/RPM seconds.
func (g DiskGeometry) trackBudgetBytes() int {
	return g.CellRate * 60000 / (g.RPM * 8)
}

// TrackCount returns the number of tracks (one per cylinder/head pair).
func (g DiskGeometry) TrackCount() int { return g.Cylinders * g.Heads }

// SectorCount returns the total number of sectors on the disk.
func (g DiskGeometry) SectorCount() int { return g.TrackCount() * g.SectorsPerTrack }

// ImageSize returns the raw image length the geometry requires.
func (g DiskGeometry) ImageSize() int { return g.SectorCount() * g.SectorSize }

// sizeCode is the IBM ID-field size code: 0 = 128 bytes, 1 = 256, 2 = 512...
func (g DiskGeometry) sizeCode() byte {
	var code byte
	for s := g.SectorSize; s > 128; s >>= 1 {
		code++
	}
	return code
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

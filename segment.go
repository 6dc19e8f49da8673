package main

// trackSectors is the logical sector group of one (cylinder, head) pair.
type trackSectors struct {
	cyl, head int
	sectors   [][]byte
}

// segmentImage slices the raw image into per-track logical sector groups,
// track-major sector-minor. Under the strict policy any length that
// disagrees with the geometry is fatal: a trailing partial sector reports a
// division mismatch, a whole-sector count mismatch reports alignment. Under
// ignoreErrors the partial sector is discarded, a deficit is padded with
// zero-filled sectors and excess data is dropped.
func segmentImage(raw []byte, geom DiskGeometry, ignoreErrors bool) ([]trackSectors, error) {
	ss := geom.SectorSize
	expected := geom.ImageSize()
	if !ignoreErrors {
		if len(raw)%ss != 0 {
			return nil, &ImageSizeError{Kind: SizeMismatchDivision, Expected: expected, Actual: len(raw)}
		}
		if len(raw) != expected {
			return nil, &ImageSizeError{Kind: SizeMismatchAlignment, Expected: expected, Actual: len(raw)}
		}
	}

	need := geom.SectorCount()
	sectors := make([][]byte, 0, need)
	for off := 0; off+ss <= len(raw) && len(sectors) < need; off += ss {
		sectors = append(sectors, raw[off:off+ss])
	}
	for len(sectors) < need {
		sectors = append(sectors, make([]byte, ss))
	}

	tracks := make([]trackSectors, 0, geom.TrackCount())
	i := 0
	for cyl := 0; cyl < geom.Cylinders; cyl++ {
		for head := 0; head < geom.Heads; head++ {
			tracks = append(tracks, trackSectors{
				cyl:     cyl,
				head:    head,
				sectors: sectors[i : i+geom.SectorsPerTrack],
			})
			i += geom.SectorsPerTrack
		}
	}
	return tracks, nil
}

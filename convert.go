package main

// ConvertOptions controls a single conversion run.
type ConvertOptions struct {
	// IgnoreErrors downgrades image size mismatches to deterministic
	// repairs: truncate the partial sector, zero-pad the deficit.
	IgnoreErrors bool
	// Progress, when set, is called after each track is encoded. A non-nil
	// return aborts the conversion with that error.
	Progress func(track, total int) error
}

// Convert runs the whole pipeline: segment the raw image into sectors,
// interleave and FM-encode every track, and assemble the HFE container.
// The returned buffer is the complete output file. Purely deterministic:
// identical inputs always produce identical output.
func Convert(raw []byte, geom DiskGeometry, opts ConvertOptions) ([]byte, error) {
	tracks, err := segmentImage(raw, geom, opts.IgnoreErrors)
	if err != nil {
		return nil, err
	}

	ileave := interleaveMap(geom.SectorsPerTrack, geom.Interleave)

	cyls := make([][][]byte, geom.Cylinders)
	for i, ts := range tracks {
		enc := encodeTrack(ts.sectors, geom, ts.cyl, ts.head, ileave)
		cyls[ts.cyl] = append(cyls[ts.cyl], enc)
		if opts.Progress != nil {
			if err := opts.Progress(i+1, len(tracks)); err != nil {
				return nil, err
			}
		}
	}

	return buildHFE(cyls, geom)
}

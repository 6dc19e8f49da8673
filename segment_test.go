package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patternImage(size int) []byte {
	raw := make([]byte, size)
	for i := range raw {
		raw[i] = byte(i*7 + i>>8)
	}
	return raw
}

func TestSegmentImageExact(t *testing.T) {
	g := defaultGeometry(t)
	raw := patternImage(g.ImageSize())

	tracks, err := segmentImage(raw, g, false)
	require.NoError(t, err)
	require.Len(t, tracks, g.TrackCount())

	n := 0
	for ti, ts := range tracks {
		assert.Equal(t, ti, ts.cyl, "single-sided: track index is the cylinder")
		assert.Equal(t, 0, ts.head)
		require.Len(t, ts.sectors, g.SectorsPerTrack)
		for _, sec := range ts.sectors {
			require.Len(t, sec, g.SectorSize)
			assert.Equal(t, raw[n*g.SectorSize:(n+1)*g.SectorSize], sec)
			n++
		}
	}
	assert.Equal(t, g.SectorCount(), n)
}

func TestSegmentImageTwoSidedOrder(t *testing.T) {
	g, err := ResolveGeometry("ibm8dssd", GeometryOverrides{})
	require.NoError(t, err)

	tracks, err := segmentImage(patternImage(g.ImageSize()), g, false)
	require.NoError(t, err)
	require.Len(t, tracks, 154)
	// Cylinder-major, head-minor.
	assert.Equal(t, 0, tracks[0].cyl)
	assert.Equal(t, 0, tracks[0].head)
	assert.Equal(t, 0, tracks[1].cyl)
	assert.Equal(t, 1, tracks[1].head)
	assert.Equal(t, 1, tracks[2].cyl)
	assert.Equal(t, 0, tracks[2].head)
}

func TestSegmentImageStrictPartialSector(t *testing.T) {
	g := defaultGeometry(t)
	_, err := segmentImage(make([]byte, g.ImageSize()-50), g, false)

	var sizeErr *ImageSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, SizeMismatchDivision, sizeErr.Kind)
	assert.Equal(t, g.ImageSize(), sizeErr.Expected)
	assert.Equal(t, g.ImageSize()-50, sizeErr.Actual)
}

func TestSegmentImageStrictWrongSectorCount(t *testing.T) {
	g := defaultGeometry(t)

	for _, delta := range []int{-g.SectorSize, g.SectorSize} {
		_, err := segmentImage(make([]byte, g.ImageSize()+delta), g, false)
		var sizeErr *ImageSizeError
		require.ErrorAs(t, err, &sizeErr, "delta %d", delta)
		assert.Equal(t, SizeMismatchAlignment, sizeErr.Kind, "delta %d", delta)
	}
}

func TestSegmentImageIgnoreTruncatesAndPads(t *testing.T) {
	g := defaultGeometry(t)
	raw := bytes.Repeat([]byte{0xEE}, g.ImageSize()-50)

	tracks, err := segmentImage(raw, g, true)
	require.NoError(t, err)

	last := tracks[len(tracks)-1]
	full := bytes.Repeat([]byte{0xEE}, g.SectorSize)
	zero := make([]byte, g.SectorSize)
	// 2001 complete sectors survive; the 78-byte partial is discarded and
	// the final sector comes back zero-filled.
	assert.Equal(t, full, last.sectors[g.SectorsPerTrack-2])
	assert.Equal(t, zero, last.sectors[g.SectorsPerTrack-1])
}

func TestSegmentImageIgnoreDropsExcess(t *testing.T) {
	g := defaultGeometry(t)
	raw := patternImage(g.ImageSize() + 3*g.SectorSize)

	tracks, err := segmentImage(raw, g, true)
	require.NoError(t, err)

	last := tracks[len(tracks)-1]
	wantLast := raw[(g.SectorCount()-1)*g.SectorSize : g.SectorCount()*g.SectorSize]
	assert.Equal(t, wantLast, last.sectors[g.SectorsPerTrack-1])

	n := 0
	for _, ts := range tracks {
		n += len(ts.sectors)
	}
	assert.Equal(t, g.SectorCount(), n)
}

func TestSegmentImageIgnoreMostlyEmpty(t *testing.T) {
	g := defaultGeometry(t)
	raw := patternImage(g.SectorSize + 72) // one full sector plus a fragment

	tracks, err := segmentImage(raw, g, true)
	require.NoError(t, err)

	first := tracks[0]
	assert.Equal(t, raw[:g.SectorSize], first.sectors[0])
	assert.Equal(t, make([]byte, g.SectorSize), first.sectors[1])
}

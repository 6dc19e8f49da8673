package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveGeometryLevel6Preset(t *testing.T) {
	g, err := ResolveGeometry("level6", GeometryOverrides{})
	require.NoError(t, err)
	assert.Equal(t, DiskGeometry{
		Cylinders: 77, Heads: 1, SectorsPerTrack: 26, SectorSize: 128,
		CellRate: 250, RPM: 360, Interleave: 1,
	}, g)
	assert.Equal(t, 77, g.TrackCount())
	assert.Equal(t, 2002, g.SectorCount())
	assert.Equal(t, 256256, g.ImageSize())
}

func TestResolveGeometryIbm8dssdPreset(t *testing.T) {
	g, err := ResolveGeometry("ibm8dssd", GeometryOverrides{})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Heads)
	assert.Equal(t, 154, g.TrackCount())
	assert.Equal(t, 512512, g.ImageSize())
}

func TestResolveGeometryOverrides(t *testing.T) {
	g, err := ResolveGeometry("level6", GeometryOverrides{Heads: 2, Interleave: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Heads)
	assert.Equal(t, 7, g.Interleave)
	// Untouched fields keep the preset values.
	assert.Equal(t, 77, g.Cylinders)
	assert.Equal(t, 26, g.SectorsPerTrack)
	assert.Equal(t, 128, g.SectorSize)
}

func TestResolveGeometryRejects(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		ov     GeometryOverrides
		want   error
	}{
		{"unknown preset", "level5", GeometryOverrides{}, ErrInvalidGeometry},
		{"negative cylinders", "level6", GeometryOverrides{Cylinders: -1}, ErrInvalidGeometry},
		{"too many cylinders", "level6", GeometryOverrides{Cylinders: 300}, ErrInvalidGeometry},
		{"three heads", "level6", GeometryOverrides{Heads: 3}, ErrInvalidGeometry},
		{"sector size not a power of two", "level6", GeometryOverrides{SectorSize: 100}, ErrInvalidGeometry},
		{"sector size too small", "level6", GeometryOverrides{SectorSize: 64}, ErrInvalidGeometry},
		{"negative cell rate", "level6", GeometryOverrides{CellRate: -5}, ErrInvalidGeometry},
		{"negative rpm", "level6", GeometryOverrides{RPM: -1}, ErrInvalidGeometry},
		{"track does not fit revolution", "level6", GeometryOverrides{SectorsPerTrack: 40}, ErrInvalidGeometry},
		{"interleave shares divisor with sector count", "level6", GeometryOverrides{Interleave: 13}, ErrInvalidInterleave},
		{"even interleave on even sector count", "level6", GeometryOverrides{Interleave: 2}, ErrInvalidInterleave},
		{"negative interleave", "level6", GeometryOverrides{Interleave: -3}, ErrInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveGeometry(tt.preset, tt.ov)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTrackBudgetBytes(t *testing.T) {
	g, err := ResolveGeometry("level6", GeometryOverrides{})
	require.NoError(t, err)
	// 250 kbit/s of payload over one 360 RPM revolution.
	assert.Equal(t, 5208, g.trackBudgetBytes())
}

func TestSizeCode(t *testing.T) {
	for size, want := range map[int]byte{128: 0, 256: 1, 512: 2, 1024: 3} {
		g := DiskGeometry{SectorSize: size}
		assert.Equal(t, want, g.sizeCode(), "size %d", size)
	}
}

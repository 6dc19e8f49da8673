package main

import (
	"errors"
	"fmt"
)

// Conversion errors are terminal: the pipeline never retries and never
// writes partial output.
var (
	ErrInvalidGeometry   = errors.New("invalid disk geometry")
	ErrInvalidInterleave = errors.New("invalid sector interleave")
)

// SizeMismatchKind distinguishes the two ways a raw image can disagree with
// the resolved geometry.
type SizeMismatchKind int

const (
	// SizeMismatchDivision: the image length is not a whole number of sectors.
	SizeMismatchDivision SizeMismatchKind = iota
	// SizeMismatchAlignment: whole sectors, but not the count the geometry needs.
	SizeMismatchAlignment
)

func (k SizeMismatchKind) String() string {
	switch k {
	case SizeMismatchDivision:
		return "sector division"
	case SizeMismatchAlignment:
		return "sector alignment"
	}
	return "unknown"
}

// ImageSizeError reports a raw image whose length is incompatible with the
// disk geometry. Under --ignore-errors it is downgraded to a deterministic
// repair instead of being returned.
type ImageSizeError struct {
	Kind     SizeMismatchKind
	Expected int
	Actual   int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("image size mismatch (%s): expected %d bytes, got %d",
		e.Kind, e.Expected, e.Actual)
}

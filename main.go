// l6disk.go
// Converts raw Honeywell Level 6 sector images into HFE bit-cell containers
// for flux-level floppy emulators (HxC and compatibles).
// Cobra CLI + optional tcell fullscreen progress UI.
//
// Build:
//
//	go build -o l6disk .
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carmisergio/level6-tools/retrofmt"
)

/* ===================== Input / output ===================== */

// readInput loads the raw image from a regular file or a block device.
func readInput(path string) ([]byte, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	if st, err := f.Stat(); err == nil && st.Mode().IsRegular() {
		return io.ReadAll(f)
	}

	// Block device: probe the size, then read exactly that much.
	size, err := getDeviceSize(f)
	if err != nil {
		return nil, fmt.Errorf("size of %q: %w", path, err)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return buf, nil
}

// writeOutputAtomic writes data through a temp file in the destination
// directory and renames it into place, so a failed run never leaves a
// partial container behind.
func writeOutputAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	if werr == nil {
		werr = tmp.Sync()
	}
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		if werr != nil {
			return werr
		}
		return cerr
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

/* ===================== Main ===================== */

func main() {
	root := &cobra.Command{
		Use:   "l6disk",
		Short: "Level 6 disk image to HFE converter",
		Long:  "Convert raw Honeywell Level 6 sector images into HFE flux containers playable by hardware floppy emulators",
	}
	root.SilenceUsage = true

	var (
		format       string
		cylinders    int
		heads        int
		sectors      int
		sectorSize   int
		cellRate     int
		rpm          int
		interleave   int
		ignoreErrors bool
		showUI       bool
	)

	convertCmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a raw sector image into an HFE container",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			geom, err := ResolveGeometry(format, GeometryOverrides{
				Cylinders:       cylinders,
				Heads:           heads,
				SectorsPerTrack: sectors,
				SectorSize:      sectorSize,
				CellRate:        cellRate,
				RPM:             rpm,
				Interleave:      interleave,
			})
			if err != nil {
				return err
			}

			raw, err := readInput(args[0])
			if err != nil {
				return err
			}

			opts := ConvertOptions{IgnoreErrors: ignoreErrors}
			var ui *retrofmt.UI
			if showUI {
				ui, err = retrofmt.NewUI()
				if err != nil {
					return fmt.Errorf("ui init: %w", err)
				}
				defer ui.Close()
				ui.SetTitle(fmt.Sprintf("L6DISK - %s  %d TRACKS  %d BYTES",
					strings.ToUpper(format), geom.TrackCount(), geom.ImageSize()))
				ui.SetSummaryLines([]string{
					fmt.Sprintf("Cylinders: %-3d  Heads: %-1d  Sectors/Track: %-3d  Bytes/Sector: %d",
						geom.Cylinders, geom.Heads, geom.SectorsPerTrack, geom.SectorSize),
					fmt.Sprintf("Cell rate: %d kbit/s  Spindle: %d RPM  Interleave: %d",
						geom.CellRate, geom.RPM, geom.Interleave),
				})
				ui.SetLegend([]string{"Legend:  █ encoded   ░ pending | Q to quit"})
				ui.SetTrackCount(geom.TrackCount())
				opts.Progress = func(track, total int) error {
					if ui.IsStopped() {
						return retrofmt.ErrInterrupted
					}
					ui.MarkTrack(track - 1)
					ui.SetStatusLines([]string{
						fmt.Sprintf("Encoding track %d / %d", track, total),
					})
					ui.LayoutAndDraw()
					return nil
				}
				ui.LayoutAndDraw()
			}

			out, err := Convert(raw, geom, opts)
			if ui != nil {
				ui.Close()
			}
			if err != nil {
				if errors.Is(err, retrofmt.ErrInterrupted) {
					return err
				}
				return fmt.Errorf("image conversion error: %w", err)
			}

			if err := writeOutputAtomic(args[1], out); err != nil {
				return fmt.Errorf("write %q: %w", args[1], err)
			}

			fmt.Printf("%s: %d bytes in, %d tracks, %d bytes out -> %s\n",
				args[0], len(raw), geom.TrackCount(), len(out), args[1])
			return nil
		},
	}
	convertCmd.Flags().StringVarP(&format, "format", "f", "level6", "disk format preset (level6, ibm8dssd)")
	convertCmd.Flags().IntVar(&cylinders, "cylinders", 0, "override number of cylinders")
	convertCmd.Flags().IntVar(&heads, "heads", 0, "override number of heads")
	convertCmd.Flags().IntVar(&sectors, "sectors", 0, "override sectors per track")
	convertCmd.Flags().IntVar(&sectorSize, "sector-size", 0, "override sector size in bytes")
	convertCmd.Flags().IntVar(&cellRate, "cell-rate", 0, "override cell rate in kbit/s")
	convertCmd.Flags().IntVar(&rpm, "rpm", 0, "override spindle speed in RPM")
	convertCmd.Flags().IntVarP(&interleave, "interleave", "i", 0, "override sector interleave factor")
	convertCmd.Flags().BoolVarP(&ignoreErrors, "ignore-errors", "p", false, "repair image size mismatches instead of failing")
	convertCmd.Flags().BoolVar(&showUI, "ui", false, "show fullscreen progress display")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in disk format presets",
		Run: func(_ *cobra.Command, _ []string) {
			for _, name := range presetNames {
				g := presets[name]
				fmt.Printf("%-10s %d cylinders, %d head(s), %d sectors/track, %d bytes/sector, %d kbit/s, %d RPM\n",
					name, g.Cylinders, g.Heads, g.SectorsPerTrack, g.SectorSize, g.CellRate, g.RPM)
			}
		},
	}

	root.AddCommand(convertCmd, presetsCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

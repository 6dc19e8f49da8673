// Package retrofmt provides a fullscreen terminal progress display for
// track-by-track disk conversions, styled after old DOS format utilities.
// One glyph per TRACK. No percentages.
package retrofmt

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ErrInterrupted is returned when the user requests to stop the operation.
var ErrInterrupted = errors.New("interrupted")

// UI renders a title bar, geometry summary, a per-track progress map and a
// status block. It knows nothing about the conversion itself: callers mark
// tracks done and push status lines.
type UI struct {
	s        tcell.Screen
	stopChan chan struct{}
	once     sync.Once

	title        string
	summaryLines []string
	legendLines  []string
	statusLines  []string
	trackDone    []bool
}

// NewUI initializes the terminal screen and starts the key event loop.
func NewUI() (*UI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.DisableMouse()
	u := &UI{
		s:        s,
		stopChan: make(chan struct{}),
	}
	go u.eventLoop()
	return u, nil
}

// Close restores the terminal. Safe to call more than once.
func (u *UI) Close() {
	if u.s == nil {
		return
	}
	u.s.Fini()
	u.s = nil
	fmt.Print("\033[?1049l\033[?25h")
}

// RequestStop signals that the user wants to abort. Safe to call multiple
// times.
func (u *UI) RequestStop() {
	u.once.Do(func() {
		s := u.s
		close(u.stopChan)
		if s != nil {
			s.PostEvent(tcell.NewEventInterrupt(nil))
		}
	})
}

// IsStopped reports whether the user has requested to stop.
func (u *UI) IsStopped() bool {
	select {
	case <-u.stopChan:
		return true
	default:
		return false
	}
}

// SetTitle sets the centered title at the top of the screen.
func (u *UI) SetTitle(t string) {
	u.title = t
}

// SetSummaryLines sets the geometry summary shown below the title.
func (u *UI) SetSummaryLines(lines []string) {
	u.summaryLines = append([]string(nil), lines...)
}

// SetLegend sets the legend lines shown below the summary.
func (u *UI) SetLegend(lines []string) {
	u.legendLines = append([]string(nil), lines...)
}

// SetStatusLines sets the status block at the bottom of the screen.
func (u *UI) SetStatusLines(lines []string) {
	u.statusLines = append([]string(nil), lines...)
}

// SetTrackCount sizes the progress map. Resets all tracks to pending.
func (u *UI) SetTrackCount(n int) {
	u.trackDone = make([]bool, n)
}

// MarkTrack marks one track as encoded.
func (u *UI) MarkTrack(i int) {
	if i >= 0 && i < len(u.trackDone) {
		u.trackDone[i] = true
	}
}

func putStr(s tcell.Screen, x, y int, str string) {
	w, _ := s.Size()
	for i, r := range []rune(str) {
		if x+i >= w {
			break
		}
		s.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

// LayoutAndDraw redraws the whole screen from the current state.
func (u *UI) LayoutAndDraw() {
	if u.s == nil {
		return
	}
	u.s.Clear()
	w, h := u.s.Size()

	y := 0
	if u.title != "" {
		putStr(u.s, 0, y, strings.Repeat("═", w))
		putStr(u.s, (w-len([]rune(u.title)))/2, y, u.title)
		y++
	}
	for _, line := range u.summaryLines {
		if y >= h {
			break
		}
		putStr(u.s, 0, y, line)
		y++
	}
	for _, line := range u.legendLines {
		if y >= h {
			break
		}
		putStr(u.s, 0, y, line)
		y++
	}

	// Track map: one glyph per track, wrapped to the screen width.
	if len(u.trackDone) > 0 && y < h {
		putStr(u.s, 0, y, strings.Repeat("─", w))
		putStr(u.s, 2, y, " Tracks ")
		y++
		var b strings.Builder
		for i, done := range u.trackDone {
			if done {
				b.WriteRune('█')
			} else {
				b.WriteRune('░')
			}
			if (i+1)%w == 0 || i == len(u.trackDone)-1 {
				if y < h-len(u.statusLines)-1 {
					putStr(u.s, 0, y, b.String())
					y++
				}
				b.Reset()
			}
		}
	}

	if len(u.statusLines) > 0 && y < h {
		putStr(u.s, 0, y, strings.Repeat("─", w))
		putStr(u.s, 2, y, " Status ")
		y++
		for _, line := range u.statusLines {
			if y >= h {
				break
			}
			putStr(u.s, 0, y, line)
			y++
		}
	}

	u.s.Show()
}

func (u *UI) eventLoop() {
	s := u.s
	for {
		select {
		case <-u.stopChan:
			return
		default:
		}
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC:
				u.RequestStop()
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				u.RequestStop()
			case ev.Key() == tcell.KeyEscape:
				u.RequestStop()
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			return
		case nil:
			return
		}
	}
}

package monitor

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/vesaa/sysmon/internal/format"
	"github.com/vesaa/sysmon/internal/logging"
)

// liveScreen redraws the report block in place on a terminal. On anything
// else it prints each frame followed by a blank line.
type liveScreen struct {
	out   io.Writer
	tty   bool
	drawn bool
}

func newLiveScreen(out io.Writer) *liveScreen {
	return &liveScreen{out: out, tty: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// holdLogs keeps warnings off a terminal the block is redrawn on, since any
// extra line shifts the block out of the cursor-up range. Errors still show.
func (l *liveScreen) holdLogs() (restore func()) {
	if !l.tty {
		return func() {}
	}
	return logging.AtLeast(zerolog.ErrorLevel)
}

func (l *liveScreen) draw(m format.Metrics, _ time.Time) error {
	if !l.tty {
		_, err := io.WriteString(l.out, m.String()+"\n")
		return err
	}

	if l.drawn {
		// cursor up over the previous block, then clear to end of screen
		if _, err := fmt.Fprintf(l.out, "\x1b[%dA\x1b[J", format.ReportLines); err != nil {
			return err
		}
	}
	if err := m.Render(l.out); err != nil {
		return err
	}
	l.drawn = true
	return nil
}

// Package monitor drives the sysmon display modes. One-shot mode blocks for a
// single sampling window; live and log modes poll a sampler.Tracker on a ticker
// and redraw or append output on every tick.
package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vesaa/sysmon/internal/config"
	"github.com/vesaa/sysmon/internal/format"
	"github.com/vesaa/sysmon/internal/logging"
	"github.com/vesaa/sysmon/internal/sampler"
)

// Options controls a monitor run.
type Options struct {
	Mode     config.Mode
	Interval time.Duration
	// Count stops live/log mode after this many updates; 0 means no limit.
	Count int
}

// OptionsFrom builds Options from a validated config.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Mode:     cfg.Mode,
		Interval: cfg.Interval(),
		Count:    cfg.Count,
	}
}

// view receives each formatted update.
type view interface {
	draw(m format.Metrics, at time.Time) error
}

// Run samples s and writes to out according to opts.Mode. Live and log modes
// return nil when ctx is cancelled; one-shot mode returns ctx.Err() if it is
// cancelled mid-window.
func Run(ctx context.Context, opts Options, s *sampler.Sampler, out io.Writer) error {
	switch opts.Mode {
	case config.ModeLive:
		screen := newLiveScreen(out)
		defer screen.holdLogs()()
		return loop(ctx, opts, s, screen)
	case config.ModeLog:
		return loop(ctx, opts, s, logView{out: out})
	default:
		return once(ctx, opts, s, out)
	}
}

// once runs a single collect → format → print cycle.
func once(ctx context.Context, opts Options, s *sampler.Sampler, out io.Writer) error {
	logging.Debug().Dur("window", opts.Interval).Msg("sampling")

	snap, err := s.Collect(ctx, opts.Interval)
	if err != nil {
		return err
	}
	if err := format.Format(snap).Render(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// loop takes a baseline reading, then emits one update per tick.
func loop(ctx context.Context, opts Options, s *sampler.Sampler, v view) error {
	tracker := sampler.NewTracker(s)
	if _, _, err := tracker.Next(ctx); err != nil {
		return nil // cancelled before the first reading
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	logging.Info().Str("mode", string(opts.Mode)).Dur("interval", opts.Interval).Msg("monitoring; press Ctrl+C to stop")

	updates := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap, ok, err := tracker.Next(ctx)
		if err != nil {
			return nil // only fails once ctx is done
		}
		if !ok {
			continue
		}

		if err := v.draw(format.Format(snap), snap.CollectedAt); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		updates++
		if opts.Count > 0 && updates >= opts.Count {
			return nil
		}
	}
}

// logView appends one line per update.
type logView struct {
	out io.Writer
}

func (l logView) draw(m format.Metrics, at time.Time) error {
	_, err := fmt.Fprintln(l.out, m.Line(at))
	return err
}

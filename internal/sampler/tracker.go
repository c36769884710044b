package sampler

import (
	"context"

	"github.com/vesaa/sysmon/internal/models"
)

// Tracker keeps the previous reading so a polling loop gets deltas without
// blocking for a sampling window. A Tracker is not safe for concurrent use.
type Tracker struct {
	sampler *Sampler
	prev    *reading
}

// NewTracker returns a Tracker with no baseline yet.
func NewTracker(s *Sampler) *Tracker {
	return &Tracker{sampler: s}
}

// Next takes a reading and returns the snapshot since the previous one. The
// first call only records the baseline and returns ok=false.
func (t *Tracker) Next(ctx context.Context) (snap models.Snapshot, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, false, err
	}

	cur := t.sampler.read(ctx)
	if t.prev == nil {
		t.prev = &cur
		return models.Snapshot{}, false, nil
	}

	snap = t.sampler.snapshot(ctx, *t.prev, cur)
	t.prev = &cur
	return snap, true, nil
}

package correlate

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/killfeedsc/killfeed/pkg/models"
)

// signature identifies an event for deduplication purposes.
type signature struct {
	typ    string
	victim string
	killer string
}

// Dedup suppresses re-emission of effectively identical events observed in
// quick succession: the underlying log frequently reports the same death
// through more than one line format.
//
// Recent history lives in two parallel fixed-capacity rings kept in
// lock-step: index i in sigs always corresponds to index i in times.
type Dedup struct {
	sigs   []signature
	times  []time.Time
	window time.Duration
	now    func() time.Time

	dropped atomic.Uint64
}

// NewDedup creates a dedup filter. A nil now defaults to time.Now.
func NewDedup(now func() time.Time) *Dedup {
	if now == nil {
		now = time.Now
	}
	return &Dedup{
		sigs:   make([]signature, 0, dedupHistory),
		times:  make([]time.Time, 0, dedupHistory),
		window: dedupWindow,
		now:    now,
	}
}

func sign(evt models.KillEvent) signature {
	return signature{
		typ:    evt.Type,
		victim: strings.ToLower(evt.Victim),
		killer: strings.ToLower(evt.Killer),
	}
}

// IsDuplicate reports whether the event matches a signature recorded
// within the dedup window. Fresh events are recorded; duplicates are not,
// so the original timestamp keeps governing the window.
func (d *Dedup) IsDuplicate(evt models.KillEvent) bool {
	t := d.now()
	sig := sign(evt)

	for i := len(d.sigs) - 1; i >= 0; i-- {
		if d.sigs[i] != sig {
			continue
		}
		if t.Sub(d.times[i]) < d.window {
			d.dropped.Add(1)
			return true
		}
		break // latest occurrence is outside the window
	}

	if len(d.sigs) == dedupHistory {
		d.sigs = d.sigs[1:]
		d.times = d.times[1:]
	}
	d.sigs = append(d.sigs, sig)
	d.times = append(d.times, t)
	return false
}

// Dropped returns how many events were suppressed as duplicates.
func (d *Dedup) Dropped() uint64 { return d.dropped.Load() }

package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Turn repeating per-block key detections into single
 *		key-down events.
 *
 * Description: A held button keeps sounding its tone pair, so the
 *		matcher produces the same provisional key on every
 *		detection block for the whole press.  Without debouncing
 *		a 200 ms press would look like dozens of presses.
 *
 *		The state machine is Idle or Held(key).  The first
 *		sighting of a key emits it; repeats are silent; a
 *		different key while held is an implicit release followed
 *		by a press; release itself is inferred from silence and
 *		is never surfaced downstream.
 *
 *---------------------------------------------------------------*/

import "time"

// Debouncer tracks at most one held key.  All methods take the caller's
// timestamp so the logic is independent of which task drives it.
type Debouncer struct {
	releaseWindow time.Duration

	held     byte      // Currently held key, or 0 for Idle.
	since    time.Time // When the held key was first seen.
	lastSeen time.Time // When the held key was last reconfirmed.

	// Optional confirmation gate before the first emission.
	// Disabled (required <= 1) for the shipped profiles.
	required  int
	candidate byte
	confirmed int
}

// NewDebouncer builds a debouncer from the profile's timing fields.
func NewDebouncer(p *Profile) *Debouncer {
	var d = &Debouncer{
		releaseWindow: time.Duration(p.ReleaseWindowMs) * time.Millisecond,
		required:      1,
	}
	if p.ConfirmConsecutive && p.RequiredConsecutive > 1 {
		d.required = p.RequiredConsecutive
	}
	return d
}

/*------------------------------------------------------------------
 *
 * Name:	Press
 *
 * Purpose:	Record one provisional key detection.
 *
 * Inputs:	key	- Provisional key from the matcher.
 *		now	- Caller's timestamp.
 *
 * Returns:	(key, true) exactly once per physical press, when the
 *		key transitions to held.  (0, false) otherwise.
 *
 * Description: Held + same key just refreshes lastSeen.  Held + a
 *		different key replaces the held key immediately and
 *		emits the new one; no release event for the old key is
 *		ever produced.
 *
 *----------------------------------------------------------------*/

func (d *Debouncer) Press(key byte, now time.Time) (byte, bool) {
	if key == 0 {
		return 0, false
	}

	if d.held == key {
		d.lastSeen = now
		return 0, false
	}

	if d.required > 1 {
		if key == d.candidate {
			d.confirmed++
		} else {
			d.candidate = key
			d.confirmed = 1
		}
		if d.confirmed < d.required {
			return 0, false
		}
		d.candidate = 0
		d.confirmed = 0
	}

	d.held = key
	d.since = now
	d.lastSeen = now
	return key, true
}

// CheckRelease transitions Held to Idle after the release window of
// silence.  Release is silent; only the next distinct press is
// observable downstream.
func (d *Debouncer) CheckRelease(now time.Time) {
	if d.held == 0 {
		return
	}
	if now.Sub(d.lastSeen) > d.releaseWindow {
		d.held = 0
		d.candidate = 0
		d.confirmed = 0
	}
}

// Held reports the currently held key, or 0 when Idle.
func (d *Debouncer) Held() byte {
	return d.held
}

// HeldSince reports when the current key went down.  Meaningful only
// while Held is nonzero.
func (d *Debouncer) HeldSince() time.Time {
	return d.since
}

// Reset returns the state machine to Idle.  Safe to call repeatedly.
func (d *Debouncer) Reset() {
	d.held = 0
	d.candidate = 0
	d.confirmed = 0
}

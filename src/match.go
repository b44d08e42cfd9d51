package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Pair row and column tone detections into provisional
 *		keypresses.
 *
 * Description: A genuine keypress sounds its row and column tones
 *		simultaneously, so their detections land in the same
 *		block or adjacent blocks.  The matcher holds at most one
 *		pending row and pairs it with a column that arrives
 *		within the profile's coincidence window.  Anything that
 *		never finds its partner is dropped without a sound.
 *
 *		For phones whose line interface mangles the fundamentals
 *		into an intermodulation product, the summed-frequency
 *		path decodes the column directly from the profile's
 *		summed table instead, optionally still demanding a row
 *		fundamental before naming a button.
 *
 *---------------------------------------------------------------*/

import "time"

// Matcher turns tone detections into provisional keys.  It is driven
// entirely by the caller: one call per detection, with the caller's
// notion of now.  Provisional keys go to the emit callback; the
// debouncer decides whether they are new presses.
type Matcher struct {
	profile *Profile

	hasRow  bool
	row     int       // Pending row index.  Valid only when hasRow.
	rowSeen time.Time // When the pending row was detected.

	emit func(key byte, now time.Time)
}

// NewMatcher builds a matcher for the given profile.  emit receives each
// provisional key; it runs on the audio task and must not block.
func NewMatcher(p *Profile, emit func(key byte, now time.Time)) *Matcher {
	return &Matcher{profile: p, emit: emit}
}

/*------------------------------------------------------------------
 *
 * Name:	HandleDetection
 *
 * Purpose:	Process one tone detection event.
 *
 * Inputs:	det	- The detection, from the Goertzel bank.
 *		now	- Caller's timestamp for the event.
 *
 * Description: Row: stored as the pending row, unconditionally
 *		replacing any previous one.  Most recent row wins;
 *		the displaced row is simply forgotten.
 *
 *		Column: pairs with a live pending row, or is discarded
 *		as an orphan.  A successful pair consumes the row.
 *
 *		Summed: resolved to a column through the summed table
 *		(nearest entry within tolerance).  With SummedNeedsRow
 *		the column behaves like a column fundamental and needs
 *		a live row; without it the table's representative
 *		button is emitted directly.
 *
 *		A pending row older than the coincidence window is
 *		cleared before anything else happens, so a late column
 *		can never match a stale row.
 *
 *----------------------------------------------------------------*/

func (m *Matcher) HandleDetection(det Detection, now time.Time) {
	m.expireRow(now)

	switch det.Kind {
	case ToneRow:
		m.row = det.Index
		m.rowSeen = now
		m.hasRow = true

	case ToneCol:
		if !m.profile.UseFundamentals {
			return
		}
		m.pairColumn(det.Index, now)

	case ToneSummed:
		var col = m.profile.nearestSummed(det.Freq)
		if col < 0 {
			return
		}
		if m.profile.SummedNeedsRow {
			m.pairColumn(col, now)
			return
		}
		m.emit(m.profile.SummedFreqTable[col].Button, now)
	}
}

// pairColumn matches a column identity against the pending row.
// Orphan columns fall on the floor.
func (m *Matcher) pairColumn(col int, now time.Time) {
	if !m.hasRow {
		return
	}
	m.emit(keypad[m.row][col], now)
	m.hasRow = false
}

// expireRow clears a pending row that outlived the coincidence window.
func (m *Matcher) expireRow(now time.Time) {
	if !m.hasRow {
		return
	}
	if now.Sub(m.rowSeen) > time.Duration(m.profile.CoincidenceWindowMs)*time.Millisecond {
		m.hasRow = false
	}
}

// Reset forgets any pending row.  Safe to call at any time.
func (m *Matcher) Reset() {
	m.hasRow = false
}

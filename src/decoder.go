package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	The keypress decoder: everything between raw line audio
 *		and a clean stream of single-key events.
 *
 * Description: Owns the Goertzel detector, the row/column matcher and
 *		the debouncer, and a single-slot mailbox holding the one
 *		undelivered key.
 *
 *		Two tasks touch a Decoder.  The audio task calls
 *		ProcessBlock with each block from the line interface.
 *		The application task calls PollKey once per main-loop
 *		iteration.  A mutex guards the handoff; nothing on
 *		either side blocks on the other, and a new key simply
 *		overwrites an unread one (later detection wins).
 *
 *		There are no errors on the decode path.  Bad signal,
 *		orphaned tones and stale state all degrade to silence.
 *
 *---------------------------------------------------------------*/

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// BlockSource delivers fixed-size audio blocks to a callback, typically
// from a dedicated capture goroutine.  Start must not block once capture
// is running; Stop must be safe to call at any time.
type BlockSource interface {
	Start(handler func(samples []float64)) error
	Stop() error
}

// Decoder is the facade in front of the whole decode chain.  Create one
// per line interface and keep it for the life of the process.
type Decoder struct {
	profile    *Profile
	sampleRate int

	mu       sync.Mutex
	detector *Detector
	matcher  *Matcher
	debounce *Debouncer
	pending  byte // Mailbox: one undelivered key, 0 when empty.

	source BlockSource

	clock  func() time.Time // Swappable for tests.
	logger *log.Logger
}

/*------------------------------------------------------------------
 *
 * Name:	NewDecoder
 *
 * Purpose:	Build a decoder for one phone variant.
 *
 * Inputs:	p		- Active calibration profile.
 *		sampleRate	- Samples per second from the line interface.
 *		logger		- Diagnostics sink.  May be nil; diagnostics
 *				  are advisory and never reach the caller
 *				  any other way.
 *
 *----------------------------------------------------------------*/

func NewDecoder(p *Profile, sampleRate int, logger *log.Logger) *Decoder {
	if logger == nil {
		logger = log.Default()
	}

	var d = &Decoder{
		profile:    p,
		sampleRate: sampleRate,
		clock:      time.Now,
		logger:     logger,
	}

	d.debounce = NewDebouncer(p)
	d.matcher = NewMatcher(p, d.provisionalKey)
	d.detector = NewDetector(p, sampleRate, d.onDetection)

	logger.Debug("decoder ready",
		"profile", p.Name,
		"rate", sampleRate,
		"block", d.detector.BlockSize(),
		"tones", len(d.detector.tones))

	return d
}

// Profile reports the active calibration profile.
func (d *Decoder) Profile() *Profile {
	return d.profile
}

// ProcessBlock is the audio-task entry point.  Feed every block from the
// line interface here, in order.  Runs in bounded time proportional to
// len(samples) times the active tone count.
func (d *Decoder) ProcessBlock(samples []float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.ProcessBlock(samples)
}

// onDetection runs inside ProcessBlock for each tone that crossed its
// threshold this block.  d.mu is already held.
func (d *Decoder) onDetection(det Detection) {
	var now = d.clock()
	d.logger.Debug("tone", "kind", int(det.Kind), "idx", det.Index, "freq", det.Freq, "mag", det.Magnitude)
	d.matcher.HandleDetection(det, now)
}

// provisionalKey receives each provisional key from the matcher and
// lets the debouncer decide whether it is a new press.  d.mu is held.
func (d *Decoder) provisionalKey(key byte, now time.Time) {
	d.debounce.CheckRelease(now)

	var newKey, pressed = d.debounce.Press(key, now)
	if !pressed {
		return
	}

	// Later detection wins; an unread key is overwritten, never queued.
	d.pending = newKey
	d.logger.Debug("key down", "key", string(newKey))
}

/*------------------------------------------------------------------
 *
 * Name:	PollKey
 *
 * Purpose:	Non-blocking read of the pending key.
 *
 * Returns:	(key, true) if a key was waiting, (0, false) otherwise.
 *		Reading clears the mailbox.
 *
 * Description: Call at least once per main-loop tick.  The release
 *		liveness check runs here, on the consumer's clock, so a
 *		held key is observed as released even during prolonged
 *		silence when no detection events arrive at all.
 *
 *----------------------------------------------------------------*/

func (d *Decoder) PollKey() (byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.debounce.CheckRelease(d.clock())

	var key = d.pending
	d.pending = 0
	return key, key != 0
}

// Start binds the decoder to a live audio source and begins processing.
func (d *Decoder) Start(source BlockSource) error {
	d.source = source
	return source.Start(d.ProcessBlock)
}

// Stop detaches from the audio source and discards in-flight state.
// Safe to call without a matching Start, or more than once.
func (d *Decoder) Stop() error {
	var err error
	if d.source != nil {
		err = d.source.Stop()
		d.source = nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Reset()
	d.resetLocked()
	return err
}

// Reset clears the pending row, the debounce state and the mailbox
// without stopping audio processing.  Used at call teardown so a stale
// held key cannot bleed into the next call.  Idempotent; a detection
// arriving during or after a reset is just a fresh press from Idle.
func (d *Decoder) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

func (d *Decoder) resetLocked() {
	d.matcher.Reset()
	d.debounce.Reset()
	d.pending = 0
}

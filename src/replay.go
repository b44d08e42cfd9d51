package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Decode a complete recording offline.
 *
 * Description: Live decoding ties release timing to the wall clock.  A
 *		recording is processed far faster than real time, so the
 *		replay path swaps in a clock that advances in lockstep
 *		with the samples.  Coincidence and release windows then
 *		behave exactly as they would on the live line.
 *
 *---------------------------------------------------------------*/

import (
	"time"

	"github.com/charmbracelet/log"
)

// replayChunk is how many samples advance between polls during replay.
// Small enough that poll-driven release checks keep sub-block resolution.
const replayChunk = 256

/*------------------------------------------------------------------
 *
 * Name:	DecodeSamples
 *
 * Purpose:	Run a recording through the full decode chain.
 *
 * Inputs:	p		- Calibration profile.
 *		sampleRate	- Recording sample rate.
 *		samples		- Mono audio, -1.0 .. +1.0.
 *		logger		- Diagnostics sink; may be nil.
 *
 * Returns:	The decoded keys, in order.
 *
 *----------------------------------------------------------------*/

func DecodeSamples(p *Profile, sampleRate int, samples []float64, logger *log.Logger) []byte {
	var d = NewDecoder(p, sampleRate, logger)

	var now = time.Unix(0, 0)
	d.clock = func() time.Time { return now }

	var keys []byte
	for start := 0; start < len(samples); start += replayChunk {
		var end = start + replayChunk
		if end > len(samples) {
			end = len(samples)
		}

		d.ProcessBlock(samples[start:end])
		now = now.Add(time.Duration(end-start) * time.Second / time.Duration(sampleRate))

		if key, ok := d.PollKey(); ok {
			keys = append(keys, key)
		}
	}

	// Let the last key release.
	now = now.Add(time.Duration(p.ReleaseWindowMs+1) * time.Millisecond)
	if key, ok := d.PollKey(); ok {
		keys = append(keys, key)
	}

	return keys
}

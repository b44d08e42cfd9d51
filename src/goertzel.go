package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Per-block tone detection using the Goertzel algorithm.
 *
 * Description: We only ever care about a handful of frequencies: four
 *		row tones, three or four column tones, and up to a few
 *		summed intermodulation products.  A single-bin Goertzel
 *		resonator per target is O(samples x tones) with a tiny
 *		constant, where an FFT would compute a few thousand bins
 *		to use ten of them.
 *
 *		This runs on the audio task.  The per-sample path does
 *		no allocation and no I/O; threshold crossings are
 *		reported through a callback at each block boundary.
 *
 * References:	http://eetimes.com/design/embedded/4024443/The-Goertzel-Algorithm
 *
 *---------------------------------------------------------------*/

import "math"

// ToneKind says which band a detected tone belongs to.
type ToneKind int

const (
	ToneRow    ToneKind = iota // One of the four row fundamentals.
	ToneCol                    // One of the column fundamentals.
	ToneSummed                 // An entry in the profile's summed table.
)

// Detection is one tone crossing its threshold during one audio block.
// Produced at most once per tone per block; never retained by the detector.
type Detection struct {
	Kind      ToneKind
	Index     int     // Row index, column index, or summed-table index.
	Freq      float64 // Target frequency in Hz (not a measured peak).
	Magnitude float64 // Normalized block magnitude.
}

// resonator is the two-sample Goertzel recurrence for one target tone.
type resonator struct {
	kind      ToneKind
	index     int
	freq      float64
	threshold float64

	coef   float64
	q1, q2 float64
}

// Detector evaluates every active target tone over fixed-size sample
// blocks and reports threshold crossings.  It keeps no state across
// blocks other than the resonator accumulators, which are zeroed at
// every block boundary.
type Detector struct {
	blockSize int
	n         int // Samples accumulated in the current block.
	tones     []resonator
	handler   func(Detection)
}

/*------------------------------------------------------------------
 *
 * Name:	NewDetector
 *
 * Purpose:	Build the resonator bank for one calibration profile.
 *
 * Inputs:	p		- Active calibration profile.
 *		sampleRate	- Samples per second from the line interface.
 *		handler		- Invoked on the audio task, once per tone
 *				  per block that crosses its threshold.
 *
 * Description: Block size is the classic 205-sample DTMF block scaled
 *		to the actual sample rate, giving the same ~31 Hz bin
 *		width regardless of hardware rate.
 *
 *		k is deliberately not rounded to an integer.  Rounding
 *		would move each filter center away from its target for
 *		no benefit.
 *
 *----------------------------------------------------------------*/

func NewDetector(p *Profile, sampleRate int, handler func(Detection)) *Detector {
	var d = &Detector{
		blockSize: (205 * sampleRate) / 8000,
		handler:   handler,
	}

	var add = func(kind ToneKind, index int, freq, threshold float64) {
		var k = float64(d.blockSize) * freq / float64(sampleRate)
		d.tones = append(d.tones, resonator{
			kind:      kind,
			index:     index,
			freq:      freq,
			threshold: threshold,
			coef:      2.0 * math.Cos(2.0*math.Pi*k/float64(d.blockSize)),
		})
	}

	if p.UseFundamentals {
		for i, f := range p.RowFreqs {
			add(ToneRow, i, f, p.FundamentalThreshold)
		}
		for i := 0; i < p.activeColumns(); i++ {
			add(ToneCol, i, p.ColFreqs[i], p.FundamentalThreshold)
		}
	}
	if p.UseSummedFreq {
		for i, entry := range p.SummedFreqTable {
			add(ToneSummed, i, entry.Freq, p.SummedThreshold)
		}
	}

	return d
}

// BlockSize reports the number of samples per detection block.
func (d *Detector) BlockSize() int {
	return d.blockSize
}

// BlockPeriodMs reports the detection latency in milliseconds for the
// given sample rate: one block must fill before anything can be reported.
func (d *Detector) BlockPeriodMs(sampleRate int) float64 {
	return float64(d.blockSize) * 1000.0 / float64(sampleRate)
}

/*------------------------------------------------------------------
 *
 * Name:	ProcessSample
 *
 * Purpose:	Feed one audio sample through every resonator.
 *
 * Inputs:	sample	- Audio sample, nominal range -1.0 .. +1.0.
 *
 * Description: At each block boundary the magnitude of every target is
 *		computed and compared against its threshold, the handler
 *		fires for each crossing, and the accumulators reset.
 *
 *		Magnitude is normalized as 1000 * goertzel / blockSize,
 *		so a full-scale on-frequency sine reads about 500 at any
 *		sample rate.  That keeps the threshold numbers in the
 *		calibration profiles portable across hardware rates.
 *
 *----------------------------------------------------------------*/

func (d *Detector) ProcessSample(sample float64) {
	for i := range d.tones {
		var t = &d.tones[i]
		var q0 = sample + t.q1*t.coef - t.q2
		t.q2 = t.q1
		t.q1 = q0
	}

	d.n++
	if d.n < d.blockSize {
		return
	}
	d.n = 0

	for i := range d.tones {
		var t = &d.tones[i]
		var mag = 1000.0 * math.Sqrt(t.q1*t.q1+t.q2*t.q2-t.q1*t.q2*t.coef) / float64(d.blockSize)
		t.q1 = 0
		t.q2 = 0

		if mag >= t.threshold && d.handler != nil {
			d.handler(Detection{
				Kind:      t.kind,
				Index:     t.index,
				Freq:      t.freq,
				Magnitude: mag,
			})
		}
	}
}

// ProcessBlock feeds a slice of samples through the detector.  The slice
// length does not need to line up with the detection block size.
func (d *Detector) ProcessBlock(samples []float64) {
	for _, s := range samples {
		d.ProcessSample(s)
	}
}

// Reset discards the partially accumulated block.
func (d *Detector) Reset() {
	d.n = 0
	for i := range d.tones {
		d.tones[i].q1 = 0
		d.tones[i].q2 = 0
	}
}

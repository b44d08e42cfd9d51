package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Spectrum scan for calibrating a new phone variant.
 *
 * Description: Every profile's frequency tables were measured, not
 *		assumed: hold each button down on the real hardware,
 *		record the line, and read off where the energy actually
 *		lands.  This module does the reading-off: a windowed FFT
 *		over a capture, reduced to a ranked list of peaks, with
 *		each peak labeled if it falls near a known band of some
 *		profile.
 *
 *		Diagnostics only.  The decode path never runs an FFT.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// SpectrumPeak is one local maximum of the magnitude spectrum.
type SpectrumPeak struct {
	Freq      float64 // Bin center frequency in Hz.
	Magnitude float64 // Relative magnitude; comparable within one scan only.
	Label     string  // Nearest known band, or empty.
}

/*------------------------------------------------------------------
 *
 * Name:	ScanSpectrum
 *
 * Purpose:	Find the strongest spectral peaks in a capture.
 *
 * Inputs:	samples		- Mono audio, any length.
 *		sampleRate	- Samples per second.
 *		maxPeaks	- How many peaks to return.
 *
 * Returns:	Peaks sorted by descending magnitude.  Only local maxima
 *		above 300 Hz are considered, which skips hum and the
 *		dial tone fundamentals that dominate raw line captures.
 *
 *----------------------------------------------------------------*/

func ScanSpectrum(samples []float64, sampleRate, maxPeaks int) []SpectrumPeak {
	if len(samples) < 32 || maxPeaks < 1 {
		return nil
	}

	// Round down to a power of two and apply a Hann window.
	var n = 1
	for n*2 <= len(samples) {
		n *= 2
	}
	var windowed = make([]float64, n)
	for i := 0; i < n; i++ {
		var w = 0.5 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n-1))
		windowed[i] = samples[i] * w
	}

	var spectrum = fft.FFTReal(windowed)
	var binHz = float64(sampleRate) / float64(n)
	var firstBin = int(300.0/binHz) + 1

	var peaks []SpectrumPeak
	for i := firstBin; i < n/2-1; i++ {
		var mag = cmplx.Abs(spectrum[i])
		if mag > cmplx.Abs(spectrum[i-1]) && mag >= cmplx.Abs(spectrum[i+1]) {
			peaks = append(peaks, SpectrumPeak{
				Freq:      float64(i) * binHz,
				Magnitude: mag,
			})
		}
	}

	sort.Slice(peaks, func(a, b int) bool {
		return peaks[a].Magnitude > peaks[b].Magnitude
	})
	if len(peaks) > maxPeaks {
		peaks = peaks[:maxPeaks]
	}
	return peaks
}

// LabelPeaks annotates each peak with the nearest band of the given
// profile, if any: rowN, colN or summedN.  Peaks outside every band
// keep an empty label.
func LabelPeaks(peaks []SpectrumPeak, p *Profile) {
	var summedFreqs []float64
	for _, e := range p.SummedFreqTable {
		summedFreqs = append(summedFreqs, e.Freq)
	}

	for i := range peaks {
		if idx := nearestFreq(peaks[i].Freq, p.RowFreqs[:], p.FreqTolerance); idx >= 0 {
			peaks[i].Label = fmt.Sprintf("row%d (%.0f Hz)", idx, p.RowFreqs[idx])
			continue
		}
		if idx := nearestFreq(peaks[i].Freq, p.ColFreqs[:], p.FreqTolerance); idx >= 0 {
			peaks[i].Label = fmt.Sprintf("col%d (%.0f Hz)", idx, p.ColFreqs[idx])
			continue
		}
		if idx := nearestFreq(peaks[i].Freq, summedFreqs, p.SummedFreqTolerance); idx >= 0 {
			peaks[i].Label = fmt.Sprintf("summed%d (%.0f Hz)", idx, summedFreqs[idx])
		}
	}
}

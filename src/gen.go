package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Generate keypad tones from text.
 *
 * Description: The inverse of the decoder: synthesize the row+column
 *		sine pair for each button of a dial string.  Used by the
 *		tonekey-gen tool to produce test recordings and by the
 *		test suite as its signal source.
 *
 *		Frequencies come from the active profile, so a recording
 *		generated for the dream profile carries that phone's
 *		shifted tones.
 *
 *---------------------------------------------------------------*/

import "math"

// ButtonPosition finds the keypad row and column of a button.
// Lowercase a-d are accepted for the fourth column.
func ButtonPosition(button byte) (row, col int, ok bool) {
	if button >= 'a' && button <= 'd' {
		button -= 'a' - 'A'
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if keypad[r][c] == button {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// AppendTone appends ms milliseconds of the sum of the given sine
// frequencies, each at the given per-tone amplitude.  Phase starts at
// zero; for tone bursts separated by silence that is inaudible and it
// keeps generation deterministic.
func AppendTone(dst []float64, freqs []float64, ms, sampleRate int, amplitude float64) []float64 {
	var n = ms * sampleRate / 1000
	for i := 0; i < n; i++ {
		var s float64
		for _, f := range freqs {
			s += amplitude * math.Sin(2.0*math.Pi*f*float64(i)/float64(sampleRate))
		}
		dst = append(dst, s)
	}
	return dst
}

// AppendSilence appends ms milliseconds of zero samples.
func AppendSilence(dst []float64, ms, sampleRate int) []float64 {
	var n = ms * sampleRate / 1000
	for i := 0; i < n; i++ {
		dst = append(dst, 0)
	}
	return dst
}

/*------------------------------------------------------------------
 *
 * Name:	AppendButton
 *
 * Purpose:	Append the tone pair for one keypad button.
 *
 * Inputs:	dst		- Sample slice being built.
 *		p		- Profile supplying the frequency tables.
 *		button		- 0-9, A-D, *, #.  Anything else appends
 *				  silence, matching a gap between digits.
 *		ms		- Duration of the burst.
 *		sampleRate	- Samples per second.
 *		amplitude	- Per-tone amplitude, 0..0.5 so the pair
 *				  stays inside full scale.
 *
 *----------------------------------------------------------------*/

func AppendButton(dst []float64, p *Profile, button byte, ms, sampleRate int, amplitude float64) []float64 {
	var row, col, ok = ButtonPosition(button)
	if !ok {
		return AppendSilence(dst, ms, sampleRate)
	}
	return AppendTone(dst, []float64{p.RowFreqs[row], p.ColFreqs[col]}, ms, sampleRate, amplitude)
}

// DialString renders a whole dial string: toneMs of tone pair per
// button with gapMs of silence after each.  A space in the string is an
// extra gap, handy for scripting pauses.
func DialString(p *Profile, digits string, toneMs, gapMs, sampleRate int, amplitude float64) []float64 {
	var dst []float64
	for i := 0; i < len(digits); i++ {
		dst = AppendButton(dst, p, digits[i], toneMs, sampleRate, amplitude)
		dst = AppendSilence(dst, gapMs, sampleRate)
	}
	return dst
}

package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Calibration profiles for the supported phone variants.
 *
 * Description: Every phone model we hang off the line interface has
 *		slightly different analog behavior.  Some put out clean
 *		textbook DTMF.  Some bury the fundamentals under an
 *		intermodulation product at roughly row+column.  Some
 *		shift every tone by tens of Hz and leak dial tone
 *		harmonics into the row band.
 *
 *		All of that variation lives here, as data.  The decode
 *		algorithm is identical for every variant; supporting a
 *		new phone means adding a new profile, never new logic.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"sort"
)

// Standard DTMF keypad layout.  Shared by every profile.
var keypad = [4][4]byte{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'},
}

// KeypadLookup returns the button at the given row and column,
// or 0 if either index is out of range.
func KeypadLookup(row, col int) byte {
	if row < 0 || row > 3 || col < 0 || col > 3 {
		return 0
	}
	return keypad[row][col]
}

// SummedFreqEntry maps one observed intermodulation frequency to the
// button in row 0 of the column it identifies.  Entry i in a profile's
// table always corresponds to keypad column i.
type SummedFreqEntry struct {
	Freq   float64 // Observed frequency in Hz.
	Button byte    // Representative button (row 0 of the column).
}

// Profile is the complete calibration record for one phone variant.
// Instances are immutable after construction and live for the process.
type Profile struct {
	Name        string
	Description string

	RowFreqs [4]float64 // Row tone frequencies in Hz.
	ColFreqs [4]float64 // Column tone frequencies in Hz.

	FundamentalThreshold float64 // Minimum Goertzel magnitude for a row/col tone.
	SummedThreshold      float64 // Minimum magnitude for a summed-frequency tone.

	FreqTolerance       float64 // Hz window for matching fundamentals.
	SummedFreqTolerance float64 // Hz window for matching summed-table entries.

	CoincidenceWindowMs int // Max ms between row and column detection for one press.
	ReleaseWindowMs     int // Ms of silence before a held key counts as released.

	RequiredConsecutive int // Consecutive confirmations before first emission.
	// Advisory unless ConfirmConsecutive is set; kept
	// because the field was measured per phone and we
	// do not want to lose the calibration data.

	UseSummedFreq      bool // Decode column identity from the summed table.
	UseFundamentals    bool // Decode from direct row/col fundamentals.
	SummedNeedsRow     bool // Summed result must be corroborated by a row fundamental.
	ConfirmConsecutive bool // Enforce RequiredConsecutive before the first emission.

	OmitFourthColumn bool // Leave 1633 Hz (or its shifted equivalent) out of the
	// active tone set.  A-D keys do not exist on these phones
	// and every resonator costs per-sample work.

	SummedFreqTable []SummedFreqEntry // Entry i identifies column i.  Nil when unused.
}

// profiles is the closed set of known variants, in registration order.
var profiles = []*Profile{standardProfile, bowieProfile, dreamProfile}

/*------------------------------------------------------------------
 *
 * Name:	ProfileByName
 *
 * Purpose:	Select the active calibration profile at startup.
 *
 * Inputs:	name	- Profile name, case sensitive, e.g. "bowie".
 *
 * Returns:	The profile, or an error naming the known set.
 *
 *----------------------------------------------------------------*/

func ProfileByName(name string) (*Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown phone profile %q (known: %v)", name, ProfileNames())
}

// ProfileNames lists the registered variants, sorted for stable output.
func ProfileNames() []string {
	var names []string
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// RegisterProfile adds a new phone variant to the known set.
// Intended for calibration tooling; the shipped variants are compiled in.
func RegisterProfile(p *Profile) error {
	for _, existing := range profiles {
		if existing.Name == p.Name {
			return fmt.Errorf("phone profile %q already registered", p.Name)
		}
	}
	profiles = append(profiles, p)
	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	nearestFreq
 *
 * Purpose:	Find which entry of a frequency table an observed
 *		frequency belongs to.
 *
 * Inputs:	freq		- Observed frequency in Hz.
 *		table		- Candidate frequencies.
 *		tolerance	- Maximum acceptable |difference| in Hz.
 *
 * Returns:	Index of the closest entry within tolerance, or -1.
 *
 * Description: Ties go to the earlier table entry.  That choice is
 *		arbitrary but it must be the same every run, so the
 *		comparison is strictly-less on a forward scan.
 *
 *----------------------------------------------------------------*/

func nearestFreq(freq float64, table []float64, tolerance float64) int {
	var best = -1
	var bestDiff = tolerance + 1

	for i, f := range table {
		var diff = math.Abs(freq - f)
		if diff <= tolerance && diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}
	return best
}

// nearestSummed finds the summed-table entry closest to the observed
// frequency, within the profile's summed tolerance.  Returns the column
// index (table position) or -1 for no match.
func (p *Profile) nearestSummed(freq float64) int {
	var best = -1
	var bestDiff = p.SummedFreqTolerance + 1

	for i, entry := range p.SummedFreqTable {
		var diff = math.Abs(freq - entry.Freq)
		if diff <= p.SummedFreqTolerance && diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}
	return best
}

// activeColumns is 3 or 4 depending on whether the profile carries the
// rarely used fourth DTMF column (A B C D keys).
func (p *Profile) activeColumns() int {
	if p.OmitFourthColumn {
		return 3
	}
	return 4
}

/*
 * The "standard" profile is for a bench signal source or a phone with a
 * healthy network interface: textbook DTMF fundamentals, no intermod
 * tricks, all sixteen keys.
 */

var standardProfile = &Profile{
	Name:        "standard",
	Description: "Textbook DTMF, clean fundamentals, all four columns",

	RowFreqs: [4]float64{697, 770, 852, 941},
	ColFreqs: [4]float64{1209, 1336, 1477, 1633},

	FundamentalThreshold: 30.0,
	FreqTolerance:        25.0,

	CoincidenceWindowMs: 30,
	ReleaseWindowMs:     120,
	RequiredConsecutive: 2,

	UseFundamentals: true,
}

/*
 * The Bowie phone's SLIC produces weak row/column fundamentals but a
 * strong intermodulation product near row+column.  The product only
 * distinguishes columns (all four buttons in a column land on the same
 * frequency), so a summed hit must be corroborated by a row fundamental
 * before it names a button.
 *
 * Summed frequencies measured off the real hardware:
 *   column 0 (1209 Hz): ~2239.5 Hz    buttons 1 4 7 *
 *   column 1 (1336 Hz): ~2454.8 Hz    buttons 2 5 8 0
 *   column 2 (1477 Hz): ~2713.2 Hz    buttons 3 6 9 #
 */

var bowieProfile = &Profile{
	Name:        "bowie",
	Description: "Column-only summed intermod, weak fundamentals",

	RowFreqs: [4]float64{697, 770, 852, 941},
	ColFreqs: [4]float64{1209, 1336, 1477, 1633},

	FundamentalThreshold: 15.0,
	SummedThreshold:      100.0,
	FreqTolerance:        75.0,
	SummedFreqTolerance:  60.0,

	CoincidenceWindowMs: 30,
	ReleaseWindowMs:     150,
	RequiredConsecutive: 3,

	UseSummedFreq:    true,
	UseFundamentals:  true,
	SummedNeedsRow:   true,
	OmitFourthColumn: true,

	SummedFreqTable: []SummedFreqEntry{
		{2240.0, '1'},
		{2455.0, '2'},
		{2713.0, '3'},
	},
}

/*
 * The Dream phone shifts every tone high: rows by 8-15 Hz, columns by
 * 22-25 Hz, and its dial tone (350+440 Hz) throws harmonics at 700/880 Hz
 * right into the row band.  Thresholds are raised to reject those and the
 * frequency tables carry the measured values rather than the standard ones.
 */

var dreamProfile = &Profile{
	Name:        "dream",
	Description: "Shifted frequencies, dial tone contamination",

	RowFreqs: [4]float64{705, 779, 867, 950},
	ColFreqs: [4]float64{1232, 1358, 1500, 1658},

	FundamentalThreshold: 40.0,
	SummedThreshold:      100.0,
	FreqTolerance:        40.0,
	SummedFreqTolerance:  70.0,

	CoincidenceWindowMs: 30,
	ReleaseWindowMs:     150,
	RequiredConsecutive: 4,

	UseSummedFreq:    true,
	UseFundamentals:  true,
	SummedNeedsRow:   true,
	OmitFourthColumn: true,

	SummedFreqTable: []SummedFreqEntry{
		{2280.0, '1'},
		{2500.0, '2'},
		{2760.0, '3'},
	},
}

package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Report spectral peaks from a line capture, for building
 *		or checking a calibration profile.
 *
 * Description: Record each button held down on the new phone, run this
 *		over the capture, and read off where the energy actually
 *		lands.  Peaks near a known band of the chosen profile are
 *		labeled; the rest are candidates for a new frequency
 *		table or a summed-frequency entry.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	tonekey "github.com/retroline/tonekey/src"
)

func main() {
	var profileName = pflag.StringP("profile", "p", "standard", "Profile whose bands label the peaks.")
	var peakCount = pflag.IntP("peaks", "n", 10, "How many peaks to report.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] capture.wav\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tonekey-calibrate"})

	var profile, profErr = tonekey.ProfileByName(*profileName)
	if profErr != nil {
		logger.Fatal("bad profile", "err", profErr)
	}

	var samples, sampleRate, readErr = tonekey.ReadWAV(pflag.Arg(0))
	if readErr != nil {
		logger.Fatal("reading capture", "err", readErr)
	}

	var peaks = tonekey.ScanSpectrum(samples, sampleRate, *peakCount)
	tonekey.LabelPeaks(peaks, profile)

	fmt.Printf("%-10s %-12s %s\n", "freq (Hz)", "magnitude", "band")
	for _, peak := range peaks {
		fmt.Printf("%-10.1f %-12.1f %s\n", peak.Freq, peak.Magnitude, peak.Label)
	}
}

package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Render a dial string to a WAV file.
 *
 * Description: Produces clean tone pairs for the chosen profile's
 *		frequency tables.  Useful for exercising a decoder build
 *		without a phone on the line, and for regression
 *		recordings.
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
	var profileName = pflag.StringP("profile", "p", "standard", "Phone profile supplying the frequency tables.")
	var out = pflag.StringP("output", "o", "dial.wav", "Output WAV file.")
	var sampleRate = pflag.Int("rate", 44100, "Sample rate in Hz.")
	var toneMs = pflag.Int("tone", 120, "Tone duration per button, ms.")
	var gapMs = pflag.Int("gap", 180, "Silence after each button, ms.")
	var amplitude = pflag.Float64("amplitude", 0.35, "Per-tone amplitude, 0..0.5.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] digits\n\nDigits: 0-9, A-D, *, #.\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tonekey-gen"})

	var profile, profErr = tonekey.ProfileByName(*profileName)
	if profErr != nil {
		logger.Fatal("bad profile", "err", profErr)
	}

	var digits = pflag.Arg(0)
	var samples = tonekey.DialString(profile, digits, *toneMs, *gapMs, *sampleRate, *amplitude)

	if writeErr := tonekey.WriteWAV(*out, samples, *sampleRate); writeErr != nil {
		logger.Fatal("writing output", "err", writeErr)
	}
	logger.Info("wrote dial string", "file", *out, "digits", digits, "samples", len(samples))
}

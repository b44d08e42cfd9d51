package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Decode a WAV recording of line audio to the keypress
 *		sequence it contains.
 *
 * Description: Offline counterpart of tonekeyd, mostly used to replay
 *		captures taken from misbehaving phones.  The recording is
 *		pushed through the decoder with a synthetic clock that
 *		advances with the audio, so timing behavior (coincidence,
 *		release) matches a live run regardless of how fast the
 *		file is processed.
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
	var profileName = pflag.StringP("profile", "p", "standard", "Phone profile to decode with.")
	var debug = pflag.BoolP("debug", "d", false, "Decode-path diagnostics to stderr.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] recording.wav\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tonekey-wav"})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	var profile, profErr = tonekey.ProfileByName(*profileName)
	if profErr != nil {
		logger.Fatal("bad profile", "err", profErr)
	}

	var samples, sampleRate, readErr = tonekey.ReadWAV(pflag.Arg(0))
	if readErr != nil {
		logger.Fatal("reading recording", "err", readErr)
	}

	var keys = tonekey.DecodeSamples(profile, sampleRate, samples, logger)

	fmt.Println(string(keys))
}

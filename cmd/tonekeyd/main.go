package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Line monitor daemon: capture audio from the telephone
 *		line interface, decode keypresses, and hand each key to
 *		whatever consumes the stream (stdout here; a sequence
 *		processor in the full system).
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	tonekey "github.com/retroline/tonekey/src"
)

func main() {
	var configPath = pflag.StringP("config", "c", "", "Path to YAML config file.")
	var profileName = pflag.StringP("profile", "p", "", "Override the configured phone profile.")
	var keyLogDir = pflag.String("key-log", "", "Override the key log directory.")
	var debug = pflag.BoolP("debug", "d", false, "Decode-path diagnostics to stderr.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nDecodes keypresses from the default capture device.\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tonekeyd",
	})

	var cfg, cfgErr = tonekey.LoadConfig(*configPath)
	if cfgErr != nil {
		logger.Fatal("bad configuration", "err", cfgErr)
	}
	if *profileName != "" {
		cfg.Profile = *profileName
	}
	if *keyLogDir != "" {
		cfg.KeyLogDir = *keyLogDir
	}
	if *debug {
		cfg.Debug = true
	}
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	var profile, profErr = tonekey.ProfileByName(cfg.Profile)
	if profErr != nil {
		logger.Fatal("bad profile", "err", profErr)
	}

	var keyLog, klErr = tonekey.NewKeyLog(cfg.KeyLogDir)
	if klErr != nil {
		logger.Fatal("key log", "err", klErr)
	}
	defer keyLog.Close() //nolint:errcheck

	var decoder = tonekey.NewDecoder(profile, cfg.SampleRate, logger)
	var source = tonekey.NewCaptureSource(cfg.SampleRate, cfg.BlockSize)

	if startErr := decoder.Start(source); startErr != nil {
		logger.Fatal("starting capture", "err", startErr)
	}
	logger.Info("listening", "profile", profile.Name, "rate", cfg.SampleRate)

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Main loop: poll the decoder at its own cadence.  "none" is the
	// common case and costs one mutex round trip.
	var tick = time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-sigs:
			logger.Info("shutting down")
			if stopErr := decoder.Stop(); stopErr != nil {
				logger.Warn("stopping capture", "err", stopErr)
			}
			return

		case <-tick.C:
			var key, ok = decoder.PollKey()
			if !ok {
				continue
			}
			fmt.Printf("%c\n", key)
			if recErr := keyLog.Record(time.Now(), profile.Name, key); recErr != nil {
				logger.Warn("key log", "err", recErr)
			}
		}
	}
}

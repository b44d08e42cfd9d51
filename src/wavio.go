package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Read and write WAV recordings of line audio.
 *
 * Description: The offline tools work from ordinary WAV captures: decode
 *		a recording to keypresses, render a dial string to a
 *		file, or scan a capture for calibration.  Everything is
 *		mono float internally; multi-channel files are mixed
 *		down on read.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

/*------------------------------------------------------------------
 *
 * Name:	ReadWAV
 *
 * Purpose:	Load a WAV file as mono float samples.
 *
 * Inputs:	path	- File to read.
 *
 * Returns:	Samples normalized to -1.0 .. +1.0, the sample rate,
 *		and any error.
 *
 *----------------------------------------------------------------*/

func ReadWAV(path string) ([]float64, int, error) {
	var f, openErr = os.Open(path)
	if openErr != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, openErr)
	}
	defer f.Close() //nolint:errcheck

	var dec = wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", path)
	}

	var buf, readErr = dec.FullPCMBuffer()
	if readErr != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, readErr)
	}

	var chans = buf.Format.NumChannels
	if chans < 1 {
		return nil, 0, fmt.Errorf("%s has no audio channels", path)
	}

	var scale = float64(int(1) << (buf.SourceBitDepth - 1))

	// Mix down to mono by averaging channels.
	var samples = make([]float64, 0, len(buf.Data)/chans)
	for i := 0; i+chans <= len(buf.Data); i += chans {
		var s float64
		for c := 0; c < chans; c++ {
			s += float64(buf.Data[i+c])
		}
		samples = append(samples, s/float64(chans)/scale)
	}

	return samples, buf.Format.SampleRate, nil
}

/*------------------------------------------------------------------
 *
 * Name:	WriteWAV
 *
 * Purpose:	Write mono float samples as a 16 bit PCM WAV file.
 *
 * Inputs:	path		- File to create.
 *		samples		- Audio, nominal range -1.0 .. +1.0.
 *				  Out of range values are clipped.
 *		sampleRate	- Samples per second.
 *
 *----------------------------------------------------------------*/

func WriteWAV(path string, samples []float64, sampleRate int) error {
	var f, createErr = os.Create(path)
	if createErr != nil {
		return fmt.Errorf("creating %s: %w", path, createErr)
	}

	var buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		buf.Data[i] = int(s * 32767.0)
	}

	var enc = wav.NewEncoder(f, sampleRate, 16, 1, 1) // 1 = PCM

	if writeErr := enc.Write(buf); writeErr != nil {
		enc.Close() //nolint:errcheck
		f.Close()   //nolint:errcheck
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr := enc.Close(); closeErr != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("finishing %s: %w", path, closeErr)
	}
	return f.Close()
}

package tonekey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundTrip(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "ramp.wav")

	var in = []float64{0, 0.25, 0.5, -0.5, -0.25, 1.0, -1.0, 2.0, -2.0}
	require.NoError(t, WriteWAV(path, in, 8000))

	var out, rate, err = ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, rate)
	require.Len(t, out, len(in))

	// 16 bit quantization, with out-of-range input clipped.
	var q = 1.0 / 32768.0
	assert.InDelta(t, 0.0, out[0], q)
	assert.InDelta(t, 0.25, out[1], q)
	assert.InDelta(t, -0.5, out[3], q)
	assert.InDelta(t, 1.0, out[5], q)
	assert.InDelta(t, -1.0, out[6], q)
	assert.InDelta(t, 1.0, out[7], q, "clipped high")
	assert.InDelta(t, -1.0, out[8], q, "clipped low")
}

func TestReadWAVMissingFile(t *testing.T) {
	var _, _, err = ReadWAV(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestReadWAVGarbage(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file at all"), 0o644))

	var _, _, err = ReadWAV(path)
	assert.Error(t, err)
}

// A recording written to disk and read back decodes the same as the
// in-memory samples.
func TestWAVDecodeRoundTrip(t *testing.T) {
	var std, profErr = ProfileByName("standard")
	require.NoError(t, profErr)

	var samples = DialString(std, "8675309", 120, 180, 44100, 0.35)
	var path = filepath.Join(t.TempDir(), "dial.wav")
	require.NoError(t, WriteWAV(path, samples, 44100))

	var loaded, rate, readErr = ReadWAV(path)
	require.NoError(t, readErr)
	require.Equal(t, 44100, rate)

	var keys = DecodeSamples(std, rate, loaded, nil)
	assert.Equal(t, "8675309", string(keys))
}

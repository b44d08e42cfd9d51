package tonekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonPosition(t *testing.T) {
	var cases = []struct {
		button   byte
		row, col int
	}{
		{'1', 0, 0},
		{'5', 1, 1},
		{'9', 2, 2},
		{'D', 3, 3},
		{'d', 3, 3}, // lowercase letters accepted
		{'*', 3, 0},
		{'0', 3, 1},
		{'#', 3, 2},
	}
	for _, c := range cases {
		var row, col, ok = ButtonPosition(c.button)
		require.True(t, ok, "button %c", c.button)
		assert.Equal(t, c.row, row, "button %c row", c.button)
		assert.Equal(t, c.col, col, "button %c col", c.button)
	}

	var _, _, ok = ButtonPosition('x')
	assert.False(t, ok)
}

func TestAppendToneLength(t *testing.T) {
	var samples = AppendTone(nil, []float64{697}, 100, 8000, 0.5)
	assert.Len(t, samples, 800)

	samples = AppendSilence(samples, 50, 8000)
	assert.Len(t, samples, 1200)
	assert.Zero(t, samples[1000])
}

func TestAppendTonePeak(t *testing.T) {
	// A single sine must reach close to its amplitude and never exceed it.
	var samples = AppendTone(nil, []float64{697}, 100, 44100, 0.4)

	var peak float64
	for _, s := range samples {
		if s > peak {
			peak = s
		}
		require.LessOrEqual(t, s, 0.4)
		require.GreaterOrEqual(t, s, -0.4)
	}
	assert.InDelta(t, 0.4, peak, 0.01)
}

func TestAppendButtonUnknownIsSilence(t *testing.T) {
	var std, err = ProfileByName("standard")
	require.NoError(t, err)

	var samples = AppendButton(nil, std, '?', 10, 8000, 0.3)
	assert.Len(t, samples, 80)
	for _, s := range samples {
		assert.Zero(t, s)
	}
}

func TestDialStringLength(t *testing.T) {
	var std, err = ProfileByName("standard")
	require.NoError(t, err)

	// Three buttons, 120 ms tone + 180 ms gap each.
	var samples = DialString(std, "123", 120, 180, 8000, 0.3)
	assert.Len(t, samples, 3*(120+180)*8)
}

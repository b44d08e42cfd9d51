package tonekey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestKeypadLookup(t *testing.T) {
	assert.Equal(t, byte('1'), KeypadLookup(0, 0))
	assert.Equal(t, byte('5'), KeypadLookup(1, 1))
	assert.Equal(t, byte('9'), KeypadLookup(2, 2))
	assert.Equal(t, byte('D'), KeypadLookup(3, 3))
	assert.Equal(t, byte('*'), KeypadLookup(3, 0))
	assert.Equal(t, byte('#'), KeypadLookup(3, 2))

	assert.Equal(t, byte(0), KeypadLookup(-1, 0))
	assert.Equal(t, byte(0), KeypadLookup(0, 4))
	assert.Equal(t, byte(0), KeypadLookup(4, 4))
}

// The keypad is shared: looking up the same position must give the same
// button no matter which profile is active, and the lookup must agree
// with the reverse lookup used by the tone generator.
func TestKeypadLookup_PureAndShared(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var row = rapid.IntRange(0, 3).Draw(t, "row")
		var col = rapid.IntRange(0, 3).Draw(t, "col")

		var button = KeypadLookup(row, col)
		assert.NotEqual(t, byte(0), button)
		assert.Equal(t, button, KeypadLookup(row, col))

		var r2, c2, ok = ButtonPosition(button)
		require.True(t, ok)
		assert.Equal(t, row, r2)
		assert.Equal(t, col, c2)
	})
}

func TestProfileByName(t *testing.T) {
	for _, name := range []string{"standard", "bowie", "dream"} {
		var p, err = ProfileByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
	}

	var _, err = ProfileByName("nokia")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nokia")
}

func TestProfileNames_Sorted(t *testing.T) {
	var names = ProfileNames()
	assert.Contains(t, names, "standard")
	assert.Contains(t, names, "bowie")
	assert.Contains(t, names, "dream")
	assert.IsIncreasing(t, names)
}

func TestRegisterProfile(t *testing.T) {
	var err = RegisterProfile(&Profile{Name: "bowie"})
	assert.Error(t, err, "duplicate names must be rejected")
}

func TestProfileModes(t *testing.T) {
	var bowie, _ = ProfileByName("bowie")
	assert.True(t, bowie.UseSummedFreq)
	assert.True(t, bowie.SummedNeedsRow)
	assert.Len(t, bowie.SummedFreqTable, 3)
	assert.Equal(t, 3, bowie.activeColumns())

	var std, _ = ProfileByName("standard")
	assert.False(t, std.UseSummedFreq)
	assert.Equal(t, 4, std.activeColumns())
}

func TestNearestFreq(t *testing.T) {
	var table = []float64{697, 770, 852, 941}

	assert.Equal(t, 0, nearestFreq(700, table, 25))
	assert.Equal(t, 3, nearestFreq(955, table, 25))
	assert.Equal(t, -1, nearestFreq(733.5, table, 25), "equidistant but both out of tolerance")
	assert.Equal(t, -1, nearestFreq(1209, table, 25))

	// An exact tie within tolerance resolves to the earlier entry,
	// and must do so every time.
	var tie = []float64{2400, 2500}
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, nearestFreq(2450, tie, 60))
	}
}

func TestNearestFreq_PicksClosest(t *testing.T) {
	var bowie, _ = ProfileByName("bowie")

	rapid.Check(t, func(t *rapid.T) {
		var freq = rapid.Float64Range(2000, 3000).Draw(t, "freq")

		var got = bowie.nearestSummed(freq)
		if got < 0 {
			for _, e := range bowie.SummedFreqTable {
				assert.Greater(t, math.Abs(freq-e.Freq), bowie.SummedFreqTolerance)
			}
			return
		}

		var gotDiff = math.Abs(freq - bowie.SummedFreqTable[got].Freq)
		assert.LessOrEqual(t, gotDiff, bowie.SummedFreqTolerance)
		for _, e := range bowie.SummedFreqTable {
			assert.LessOrEqual(t, gotDiff, math.Abs(freq-e.Freq))
		}
	})
}

package domain

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	assert.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 30), tod)
	assert.Equal(t, "09:30", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("not a time")
	assert.Error(t, err)
}

func TestTimeOfDayJSON(t *testing.T) {
	data, err := json.Marshal(NewTimeOfDay(14, 5))
	assert.NoError(t, err)
	assert.Equal(t, `"14:05"`, string(data))

	var tod TimeOfDay
	assert.NoError(t, json.Unmarshal([]byte(`"23:59"`), &tod))
	assert.Equal(t, NewTimeOfDay(23, 59), tod)

	assert.Error(t, json.Unmarshal([]byte(`"24:30"`), &tod))
}

func TestTimeOfDayFrom(t *testing.T) {
	tod := TimeOfDayFrom(time.Date(2026, 1, 10, 16, 45, 59, 0, time.UTC))
	assert.Equal(t, NewTimeOfDay(16, 45), tod)
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd TimeOfDay
		expected                   bool
	}{
		{"identical intervals", NewTimeOfDay(10, 0), NewTimeOfDay(11, 0), NewTimeOfDay(10, 0), NewTimeOfDay(11, 0), true},
		{"partial overlap", NewTimeOfDay(10, 0), NewTimeOfDay(12, 0), NewTimeOfDay(11, 0), NewTimeOfDay(13, 0), true},
		{"containment", NewTimeOfDay(9, 0), NewTimeOfDay(18, 0), NewTimeOfDay(12, 0), NewTimeOfDay(13, 0), true},
		{"adjacent intervals do not overlap", NewTimeOfDay(10, 0), NewTimeOfDay(11, 0), NewTimeOfDay(11, 0), NewTimeOfDay(12, 0), false},
		{"adjacent the other way", NewTimeOfDay(11, 0), NewTimeOfDay(12, 0), NewTimeOfDay(10, 0), NewTimeOfDay(11, 0), false},
		{"disjoint", NewTimeOfDay(8, 0), NewTimeOfDay(9, 0), NewTimeOfDay(15, 0), NewTimeOfDay(16, 0), false},
		{"one minute shared", NewTimeOfDay(10, 0), NewTimeOfDay(11, 1), NewTimeOfDay(11, 0), NewTimeOfDay(12, 0), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.expected, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

// Randomized check against the naive minute-by-minute definition.
func TestOverlapsMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomInterval := func() (TimeOfDay, TimeOfDay) {
		start := TimeOfDay(rng.Intn(24 * 60))
		end := start + TimeOfDay(1+rng.Intn(180))
		if end > 24*60 {
			end = 24 * 60
		}
		return start, end
	}

	naive := func(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
		for m := aStart; m < aEnd; m++ {
			if m >= bStart && m < bEnd {
				return true
			}
		}
		return false
	}

	for i := 0; i < 1000; i++ {
		aStart, aEnd := randomInterval()
		bStart, bEnd := randomInterval()
		assert.Equal(t, naive(aStart, aEnd, bStart, bEnd), Overlaps(aStart, aEnd, bStart, bEnd),
			"a=[%s,%s) b=[%s,%s)", aStart, aEnd, bStart, bEnd)
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, At(8, 30), c)

	c, err = ParseClock(" 9:05 ")
	require.NoError(t, err)
	assert.Equal(t, "09:05", c.String())

	for _, bad := range []string{"9XX", "", "25:00", "10:7", "ab:cd", "10:60"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: At(8, 0), End: At(9, 40)}
	assert.True(t, a.Overlaps(Interval{Start: At(9, 0), End: At(10, 0)}))
	assert.False(t, a.Overlaps(Interval{Start: At(9, 40), End: At(10, 0)}), "half-open end")
	assert.False(t, a.Overlaps(Interval{Start: At(7, 0), End: At(8, 0)}))
	assert.Equal(t, "08:00-09:40", a.String())
	assert.Equal(t, 100, a.Minutes())
}

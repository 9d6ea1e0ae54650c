package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionNormalizes(t *testing.T) {
	s := NewSession(&SessionCSV{
		Lecturer:       " L1 ",
		Course:         "Algebra",
		Sections:       "ti21a, ti21b,,",
		Credits:        3,
		AvailableDays:  "",
		AvailableTimes: "  ",
	})
	assert.Equal(t, "L1", s.Lecturer)
	assert.Equal(t, []string{"TI21A", "TI21B"}, s.Sections)
	assert.Equal(t, Week, s.Days)
	assert.Equal(t, AllSentinel, s.AvailableTimes)
	assert.Equal(t, 150, s.Duration())
}

func TestParseDaysKeepsOrder(t *testing.T) {
	assert.Equal(t, []Day{Friday, Monday}, ParseDays("friday, MONDAY"))
	assert.Equal(t, Week, ParseDays("ALL"))
	assert.Equal(t, "FRIDAY, MONDAY", JoinDays([]Day{Friday, Monday}))
}

func TestDefaultRooms(t *testing.T) {
	rooms := DefaultRooms()
	assert.Len(t, rooms, 4*8+3*5)
	assert.Equal(t, "A2-1", rooms[0].ID)
	assert.Equal(t, "GD B", rooms[len(rooms)-1].Building)
	assert.Equal(t, "B5-5", rooms[len(rooms)-1].ID)
}

func TestOutcomeStatus(t *testing.T) {
	assert.Equal(t, StatusScheduled, OutcomeScheduled.Status())
	assert.Equal(t, StatusOnline, OutcomeOverflow.Status())
	assert.Equal(t, StatusOnline, OutcomeFallback.Status())
}

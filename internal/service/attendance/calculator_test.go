package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func ev(t attendance.EventType, when time.Time) attendance.Event {
	return attendance.Event{EventType: t, EventTime: when, Source: attendance.SourceRemote}
}

func TestCalculateWorkedMinutesBalancedPairs(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventCheckIn, at(9, 0)),
		ev(attendance.EventCheckOut, at(12, 0)),
		ev(attendance.EventCheckIn, at(13, 0)),
		ev(attendance.EventCheckOut, at(18, 0)),
	}
	assert.Equal(t, int64(480), CalculateWorkedMinutes(events))
}

func TestCalculateWorkedMinutesLastCheckInWins(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventCheckIn, at(9, 0)),
		ev(attendance.EventCheckIn, at(9, 30)),
		ev(attendance.EventCheckOut, at(18, 0)),
	}
	assert.Equal(t, int64(510), CalculateWorkedMinutes(events))
}

func TestCalculateWorkedMinutesDanglingCheckIn(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventCheckIn, at(9, 0)),
		ev(attendance.EventCheckOut, at(12, 0)),
		ev(attendance.EventCheckIn, at(13, 0)),
	}
	assert.Equal(t, int64(180), CalculateWorkedMinutes(events))
}

func TestCalculateWorkedMinutesCheckOutWithoutCheckIn(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventCheckOut, at(12, 0)),
	}
	assert.Equal(t, int64(0), CalculateWorkedMinutes(events))
}

func TestCalculateWorkedMinutesCheckOutBeforeCheckIn(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventCheckIn, at(12, 0)),
		ev(attendance.EventCheckOut, at(9, 0)),
	}
	assert.Equal(t, int64(0), CalculateWorkedMinutes(events))
}

func TestCalculateWorkedMinutesEmpty(t *testing.T) {
	assert.Equal(t, int64(0), CalculateWorkedMinutes(nil))
}

func TestCalculateWorkedMinutesFloorsPartialMinutes(t *testing.T) {
	in := at(9, 0)
	out := in.Add(90*time.Minute + 45*time.Second)
	events := []attendance.Event{
		ev(attendance.EventCheckIn, in),
		ev(attendance.EventCheckOut, out),
	}
	assert.Equal(t, int64(90), CalculateWorkedMinutes(events))
}

func TestSessionMinutes(t *testing.T) {
	assert.Equal(t, int64(510), SessionMinutes(at(9, 30), at(18, 0)))
	assert.Equal(t, int64(0), SessionMinutes(at(18, 0), at(9, 0)))
	assert.Equal(t, int64(0), SessionMinutes(at(9, 0), at(9, 0)))
}

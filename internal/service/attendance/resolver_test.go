package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
)

func TestResolveDailyStatusPrecedence(t *testing.T) {
	// Holiday wins even on a weekend with full-day work.
	day := DayContext{HolidayExists: true, IsWeekend: true, WorkedMinutes: 600}
	assert.Equal(t, attendance.StatusHoliday, ResolveDailyStatus(day))

	day = DayContext{IsWeekend: true, WorkedMinutes: 600}
	assert.Equal(t, attendance.StatusWeekOff, ResolveDailyStatus(day))

	day = DayContext{OnApprovedLeave: true, OnApprovedWfhLeave: true}
	assert.Equal(t, attendance.StatusPresent, ResolveDailyStatus(day))

	day = DayContext{OnApprovedLeave: true}
	assert.Equal(t, attendance.StatusOnLeave, ResolveDailyStatus(day))
}

func TestResolveDailyStatusFlatCut(t *testing.T) {
	assert.Equal(t, attendance.StatusAbsent, ResolveDailyStatus(DayContext{WorkedMinutes: 479}))
	assert.Equal(t, attendance.StatusPresent, ResolveDailyStatus(DayContext{WorkedMinutes: 480}))
	assert.Equal(t, attendance.StatusAbsent, ResolveDailyStatus(DayContext{WorkedMinutes: 0}))
}

func TestResolvePolicyStatusHalfDay(t *testing.T) {
	thresholds := Thresholds{
		MinimumWorkingMinutes:   480,
		HalfDayAllowed:          true,
		HalfDayThresholdMinutes: 240,
	}

	assert.Equal(t, attendance.StatusPresent, ResolvePolicyStatus(DayContext{WorkedMinutes: 480}, thresholds))
	assert.Equal(t, attendance.StatusHalfDay, ResolvePolicyStatus(DayContext{WorkedMinutes: 300}, thresholds))
	assert.Equal(t, attendance.StatusHalfDay, ResolvePolicyStatus(DayContext{WorkedMinutes: 240}, thresholds))
	assert.Equal(t, attendance.StatusAbsent, ResolvePolicyStatus(DayContext{WorkedMinutes: 239}, thresholds))

	// Zero minutes is always absent, even with a zero half-day threshold.
	zeroThreshold := Thresholds{MinimumWorkingMinutes: 480, HalfDayAllowed: true}
	assert.Equal(t, attendance.StatusAbsent, ResolvePolicyStatus(DayContext{WorkedMinutes: 0}, zeroThreshold))

	thresholds.HalfDayAllowed = false
	assert.Equal(t, attendance.StatusAbsent, ResolvePolicyStatus(DayContext{WorkedMinutes: 300}, thresholds))
}

func TestResolveMode(t *testing.T) {
	wfhDay := DayContext{OnApprovedWfhLeave: true}
	mode := ResolveMode(attendance.StatusPresent, wfhDay)
	require.NotNil(t, mode)
	assert.Equal(t, attendance.ModeWFH, *mode)

	assert.Nil(t, ResolveMode(attendance.StatusHoliday, DayContext{HolidayExists: true}))
	assert.Nil(t, ResolveMode(attendance.StatusOnLeave, DayContext{OnApprovedLeave: true}))
	assert.Nil(t, ResolveMode(attendance.StatusAbsent, DayContext{}))

	mode = ResolveMode(attendance.StatusPresent, DayContext{WorkedMinutes: 500, OfficePresent: true})
	require.NotNil(t, mode)
	assert.Equal(t, attendance.ModeOffice, *mode)

	mode = ResolveMode(attendance.StatusPresent, DayContext{WorkedMinutes: 500})
	require.NotNil(t, mode)
	assert.Equal(t, attendance.ModeWFH, *mode)

	mode = ResolveMode(attendance.StatusHalfDay, DayContext{WorkedMinutes: 300, OfficePresent: true})
	require.NotNil(t, mode)
	assert.Equal(t, attendance.ModeOffice, *mode)
}

func TestResolveThresholdsShiftOverridesPolicy(t *testing.T) {
	policy := &attendance.WorkPolicy{
		MinimumWorkingMinutes:   480,
		HalfDayAllowed:          true,
		HalfDayThresholdMinutes: 240,
	}

	fullDay := 420
	halfDay := 200
	emp := &employee.Employee{
		Shift: &shift.Shift{
			MinimumFullDayMinutes: &fullDay,
			MinimumHalfDayMinutes: &halfDay,
		},
	}

	got := ResolveThresholds(emp, policy)
	assert.Equal(t, int64(420), got.MinimumWorkingMinutes)
	assert.True(t, got.HalfDayAllowed)
	assert.Equal(t, int64(200), got.HalfDayThresholdMinutes)

	// A shift never switches the half-day rule on by itself.
	policy.HalfDayAllowed = false
	got = ResolveThresholds(emp, policy)
	assert.False(t, got.HalfDayAllowed)

	// No shift: policy values apply.
	policy.HalfDayAllowed = true
	got = ResolveThresholds(&employee.Employee{}, policy)
	assert.Equal(t, int64(480), got.MinimumWorkingMinutes)
	assert.Equal(t, int64(240), got.HalfDayThresholdMinutes)

	// Unset or nonsense policy values fall back to the default cut.
	got = ResolveThresholds(&employee.Employee{}, &attendance.WorkPolicy{MinimumWorkingMinutes: -1})
	assert.Equal(t, int64(attendance.DefaultMinimumWorkingMinutes), got.MinimumWorkingMinutes)

	// No shift, no policy: default full-day cut.
	got = ResolveThresholds(&employee.Employee{}, nil)
	assert.Equal(t, int64(attendance.DefaultMinimumWorkingMinutes), got.MinimumWorkingMinutes)
}

func TestIsWeekend(t *testing.T) {
	sat := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsWeekend(sat))
	assert.True(t, IsWeekend(sun))
	assert.False(t, IsWeekend(mon))
}

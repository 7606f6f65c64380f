package attendance

import (
	"time"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
)

// DayContext carries the per-employee, per-date inputs for status and mode
// resolution.
type DayContext struct {
	HolidayExists      bool
	IsWeekend          bool
	OnApprovedLeave    bool
	OnApprovedWfhLeave bool
	WorkedMinutes      int64
	OfficePresent      bool
}

// Thresholds are the full-day/half-day minute cuts in effect for an employee
// on a date, resolved from the assigned shift when configured and the company
// work policy otherwise.
type Thresholds struct {
	MinimumWorkingMinutes   int64
	HalfDayAllowed          bool
	HalfDayThresholdMinutes int64
}

// ResolveThresholds prefers the employee's shift cut-offs over the company
// policy. The half-day rule itself is enabled by policy only; a shift can
// override the thresholds but never switch the rule on.
func ResolveThresholds(emp *employee.Employee, policy *attendance.WorkPolicy) Thresholds {
	t := Thresholds{
		MinimumWorkingMinutes: attendance.DefaultMinimumWorkingMinutes,
	}
	if policy != nil {
		if policy.MinimumWorkingMinutes > 0 {
			t.MinimumWorkingMinutes = int64(policy.MinimumWorkingMinutes)
		}
		t.HalfDayAllowed = policy.HalfDayAllowed
		if policy.HalfDayThresholdMinutes > 0 {
			t.HalfDayThresholdMinutes = int64(policy.HalfDayThresholdMinutes)
		}
	}
	if emp != nil && emp.Shift != nil {
		if emp.Shift.MinimumFullDayMinutes != nil && *emp.Shift.MinimumFullDayMinutes > 0 {
			t.MinimumWorkingMinutes = int64(*emp.Shift.MinimumFullDayMinutes)
		}
		if emp.Shift.MinimumHalfDayMinutes != nil && *emp.Shift.MinimumHalfDayMinutes >= 0 {
			t.HalfDayThresholdMinutes = int64(*emp.Shift.MinimumHalfDayMinutes)
		}
	}
	return t
}

// ResolveDailyStatus is the coarse pass used at finalization: a flat full-day
// cut with no half-day rule.
func ResolveDailyStatus(day DayContext) attendance.Status {
	switch {
	case day.HolidayExists:
		return attendance.StatusHoliday
	case day.IsWeekend:
		return attendance.StatusWeekOff
	case day.OnApprovedWfhLeave:
		return attendance.StatusPresent
	case day.OnApprovedLeave:
		return attendance.StatusOnLeave
	case day.WorkedMinutes < attendance.DefaultMinimumWorkingMinutes:
		return attendance.StatusAbsent
	default:
		return attendance.StatusPresent
	}
}

// ResolvePolicyStatus is the fine-grained pass used at reconciliation: same
// precedence, but the worked-minutes comparison honours the half-day rule.
func ResolvePolicyStatus(day DayContext, t Thresholds) attendance.Status {
	switch {
	case day.HolidayExists:
		return attendance.StatusHoliday
	case day.IsWeekend:
		return attendance.StatusWeekOff
	case day.OnApprovedWfhLeave:
		return attendance.StatusPresent
	case day.OnApprovedLeave:
		return attendance.StatusOnLeave
	}
	if day.WorkedMinutes == 0 {
		return attendance.StatusAbsent
	}
	if day.WorkedMinutes < t.MinimumWorkingMinutes {
		if t.HalfDayAllowed && day.WorkedMinutes >= t.HalfDayThresholdMinutes {
			return attendance.StatusHalfDay
		}
		return attendance.StatusAbsent
	}
	return attendance.StatusPresent
}

// ResolveMode returns the attendance mode for an already-resolved status. Mode
// is nil for any day that is not effectively present.
func ResolveMode(status attendance.Status, day DayContext) *attendance.Mode {
	if day.OnApprovedWfhLeave {
		m := attendance.ModeWFH
		return &m
	}
	if status != attendance.StatusPresent && status != attendance.StatusHalfDay {
		return nil
	}
	if day.OfficePresent {
		m := attendance.ModeOffice
		return &m
	}
	m := attendance.ModeWFH
	return &m
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

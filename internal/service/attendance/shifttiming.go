package attendance

import (
	"time"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
)

// ShiftTimingResult carries lateness and early-exit metrics for one employee
// and one business date.
type ShiftTimingResult struct {
	LateMinutes      int64
	EarlyExitMinutes int64
	LateArrival      bool
	EarlyExit        bool
}

// ShiftWindow returns the absolute start/end instants of a shift on the given
// date in the given zone. An end at or before the start rolls to the next day.
func ShiftWindow(s *shift.Shift, date time.Time, loc *time.Location) (start, end time.Time, ok bool) {
	if !s.Configured() {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(date.Year(), date.Month(), date.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0, loc)
	end = time.Date(date.Year(), date.Month(), date.Day(),
		s.EndTime.Hour(), s.EndTime.Minute(), 0, 0, loc)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, true
}

// ShiftDuration returns the shift length, or zero for an unconfigured shift.
func ShiftDuration(s *shift.Shift, date time.Time, loc *time.Location) time.Duration {
	start, end, ok := ShiftWindow(s, date, loc)
	if !ok {
		return 0
	}
	return end.Sub(start)
}

// EvaluateShiftTiming computes late-arrival and early-exit minutes for a
// day's punches against the employee's shift. The punch search windows are
// widened by one shift duration on each side so that punches belonging to a
// midnight-crossing shift are still captured.
func EvaluateShiftTiming(s *shift.Shift, date time.Time, loc *time.Location, punches []attendance.Event) ShiftTimingResult {
	var result ShiftTimingResult
	if !s.Configured() || len(punches) == 0 {
		return result
	}

	start, end, _ := ShiftWindow(s, date, loc)
	duration := end.Sub(start)
	effectiveStart := start.Add(time.Duration(s.Grace()) * time.Minute)

	var firstIn, lastOut *time.Time
	for i := range punches {
		p := punches[i]
		switch p.EventType {
		case attendance.EventCheckIn:
			if p.EventTime.Before(start.Add(-duration)) || p.EventTime.After(end) {
				continue
			}
			if firstIn == nil || p.EventTime.Before(*firstIn) {
				t := p.EventTime
				firstIn = &t
			}
		case attendance.EventCheckOut:
			if p.EventTime.Before(start) || p.EventTime.After(end.Add(duration)) {
				continue
			}
			if lastOut == nil || p.EventTime.After(*lastOut) {
				t := p.EventTime
				lastOut = &t
			}
		}
	}

	if firstIn != nil && firstIn.After(effectiveStart) {
		result.LateMinutes = int64(firstIn.Sub(effectiveStart).Minutes())
		result.LateArrival = result.LateMinutes > 0
	}
	if lastOut != nil && lastOut.Before(end) {
		result.EarlyExitMinutes = int64(end.Sub(*lastOut).Minutes())
		result.EarlyExit = result.EarlyExitMinutes > 0
	}
	return result
}

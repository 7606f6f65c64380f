package attendance

import (
	"time"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
)

// CalculateWorkedMinutes pairs CHECK_IN/CHECK_OUT events chronologically and
// returns the total worked minutes. When several check-ins occur without an
// intervening check-out the latest one wins, and a check-in that is never
// closed contributes nothing.
func CalculateWorkedMinutes(events []attendance.Event) int64 {
	var total int64
	var open *time.Time

	for i := range events {
		ev := events[i]
		switch ev.EventType {
		case attendance.EventCheckIn:
			if open == nil || ev.EventTime.After(*open) {
				t := ev.EventTime
				open = &t
			}
		case attendance.EventCheckOut:
			if open != nil && ev.EventTime.After(*open) {
				total += int64(ev.EventTime.Sub(*open).Minutes())
				open = nil
			}
		}
	}

	if total < 0 {
		return 0
	}
	return total
}

// SessionMinutes returns the floored minute duration of a single closed
// session, clamped at zero.
func SessionMinutes(checkIn, checkOut time.Time) int64 {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int64(checkOut.Sub(checkIn).Minutes())
}

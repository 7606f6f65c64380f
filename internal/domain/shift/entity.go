package shift

import "time"

// Shift is a tenant-scoped working window. Start/End carry only a time of
// day (the date part is meaningless); End at or before Start means the shift
// rolls past midnight. Minute thresholds, when set, override the tenant work
// policy for employees on this shift.
type Shift struct {
	ID                    string
	CompanyID             string
	Name                  string
	StartTime             *time.Time
	EndTime               *time.Time
	GraceMinutes          *int
	MinimumHalfDayMinutes *int
	MinimumFullDayMinutes *int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Configured reports whether the shift has both boundary times set; an
// unconfigured shift never yields lateness or early-exit results.
func (s *Shift) Configured() bool {
	return s != nil && s.StartTime != nil && s.EndTime != nil
}

// Grace returns the grace minutes, treating unset or negative as zero.
func (s *Shift) Grace() int {
	if s == nil || s.GraceMinutes == nil || *s.GraceMinutes < 0 {
		return 0
	}
	return *s.GraceMinutes
}

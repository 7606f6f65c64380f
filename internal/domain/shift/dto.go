package shift

import (
	"time"

	"github.com/ksusheel25/hr-management-system/internal/pkg/validator"
)

type CreateRequest struct {
	Name                  string `json:"name"`
	StartTime             string `json:"start_time"` // "HH:MM"
	EndTime               string `json:"end_time"`
	GraceMinutes          *int   `json:"grace_minutes"`
	MinimumHalfDayMinutes *int   `json:"minimum_half_day_minutes"`
	MinimumFullDayMinutes *int   `json:"minimum_full_day_minutes"`
}

func (r CreateRequest) Validate() (start, end time.Time, err error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	start, okStart := parseClock(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	end, okEnd := parseClock(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}
	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_minutes", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type AssignRequest struct {
	ShiftID *string `json:"shift_id"`
}

type Response struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	GraceMinutes          *int   `json:"grace_minutes,omitempty"`
	MinimumHalfDayMinutes *int   `json:"minimum_half_day_minutes,omitempty"`
	MinimumFullDayMinutes *int   `json:"minimum_full_day_minutes,omitempty"`
}

func ToResponse(s Shift) Response {
	resp := Response{
		ID:                    s.ID,
		Name:                  s.Name,
		GraceMinutes:          s.GraceMinutes,
		MinimumHalfDayMinutes: s.MinimumHalfDayMinutes,
		MinimumFullDayMinutes: s.MinimumFullDayMinutes,
	}
	if s.StartTime != nil {
		resp.StartTime = s.StartTime.Format("15:04")
	}
	if s.EndTime != nil {
		resp.EndTime = s.EndTime.Format("15:04")
	}
	return resp
}

func parseClock(value string) (time.Time, bool) {
	t, err := time.Parse("15:04", value)
	return t, err == nil
}

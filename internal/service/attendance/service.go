package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/holiday"
	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
	"github.com/ksusheel25/hr-management-system/internal/repository/postgresql"
)

type SessionServiceImpl struct {
	db *database.DB
	attendance.EventRepository
	attendance.SummaryRepository
	attendance.WorkPolicyRepository
	employeeRepo employee.Repository
	holidayRepo  holiday.Repository
	leaveRepo    leave.RequestRepository
}

func NewSessionService(
	db *database.DB,
	eventRepo attendance.EventRepository,
	summaryRepo attendance.SummaryRepository,
	policyRepo attendance.WorkPolicyRepository,
	employeeRepo employee.Repository,
	holidayRepo holiday.Repository,
	leaveRepo leave.RequestRepository,
) attendance.SessionService {
	return &SessionServiceImpl{
		db:                   db,
		EventRepository:      eventRepo,
		SummaryRepository:    summaryRepo,
		WorkPolicyRepository: policyRepo,
		employeeRepo:         employeeRepo,
		holidayRepo:          holidayRepo,
		leaveRepo:            leaveRepo,
	}
}

func claimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return companyID, employeeID, nil
}

// CheckIn implements attendance.SessionService.
func (s *SessionServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.SessionResponse, error) {
	companyID, selfID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	if employeeID != selfID {
		return attendance.SessionResponse{}, attendance.ErrNotSelf
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	if !emp.Active {
		return attendance.SessionResponse{}, attendance.ErrEmployeeInactive
	}

	open, err := s.EventRepository.FindLatestOpenSession(ctx, companyID, employeeID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to find open session: %w", err)
	}
	if open != nil {
		return attendance.SessionResponse{}, attendance.ErrOpenSessionExists
	}

	now := time.Now().UTC()
	event, err := s.EventRepository.Create(ctx, attendance.Event{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		EventType:   attendance.EventCheckIn,
		Source:      attendance.SourceRemote,
		EventTime:   now,
		DeviceLogID: uuid.NewString(),
	})
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to create check-in event: %w", err)
	}

	checkIn := event.EventTime.Format(time.RFC3339)
	return attendance.SessionResponse{
		EmployeeID:  employeeID,
		State:       "OPEN",
		CheckInTime: &checkIn,
	}, nil
}

// CheckOut implements attendance.SessionService. The session's minutes are
// added to the running total on the UTC calendar date of the check-out,
// creating the summary row when absent.
func (s *SessionServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.SessionResponse, error) {
	companyID, selfID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	if employeeID != selfID {
		return attendance.SessionResponse{}, attendance.ErrNotSelf
	}

	open, err := s.EventRepository.FindLatestOpenSession(ctx, companyID, employeeID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to find open session: %w", err)
	}
	if open == nil {
		return attendance.SessionResponse{}, attendance.ErrNoOpenSession
	}

	now := time.Now().UTC()
	minutes := SessionMinutes(open.EventTime, now)
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.EventRepository.Create(ctx, attendance.Event{
			CompanyID:   companyID,
			EmployeeID:  employeeID,
			EventType:   attendance.EventCheckOut,
			Source:      attendance.SourceRemote,
			EventTime:   now,
			DeviceLogID: uuid.NewString(),
		}); err != nil {
			return fmt.Errorf("failed to create check-out event: %w", err)
		}

		summary, err := s.SummaryRepository.GetByEmployeeAndDate(ctx, companyID, employeeID, date)
		if err != nil {
			return fmt.Errorf("failed to load daily summary: %w", err)
		}
		if summary == nil {
			fresh := attendance.NewDailySummary(companyID, employeeID, date)
			summary = &fresh
		}
		summary.WorkedMinutes += minutes
		if _, err := s.SummaryRepository.Upsert(ctx, *summary); err != nil {
			return fmt.Errorf("failed to upsert daily summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	checkIn := open.EventTime.Format(time.RFC3339)
	checkOut := now.Format(time.RFC3339)
	return attendance.SessionResponse{
		EmployeeID:    employeeID,
		State:         "CLOSED",
		CheckInTime:   &checkIn,
		CheckOutTime:  &checkOut,
		WorkedMinutes: &minutes,
	}, nil
}

// MyAttendance implements attendance.SessionService. Dates with a stored
// summary use it as-is; dates without one get status and mode re-derived from
// raw events using the same precedence as the batch jobs.
func (s *SessionServiceImpl) MyAttendance(ctx context.Context, req attendance.RangeRequest) (attendance.RangeReport, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RangeReport{}, err
	}

	from, to, err := req.Validate()
	if err != nil {
		return attendance.RangeReport{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.RangeReport{}, err
	}

	policy, err := s.WorkPolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return attendance.RangeReport{}, fmt.Errorf("failed to load work policy: %w", err)
	}
	thresholds := ResolveThresholds(&emp, policy)

	summaries, err := s.SummaryRepository.ListByEmployeeBetween(ctx, companyID, employeeID, from, to)
	if err != nil {
		return attendance.RangeReport{}, fmt.Errorf("failed to load summaries: %w", err)
	}
	summaryByDate := make(map[string]attendance.DailySummary, len(summaries))
	for _, sum := range summaries {
		summaryByDate[sum.Date.Format("2006-01-02")] = sum
	}

	windowEnd := to.AddDate(0, 0, 1)
	events, err := s.EventRepository.ListByEmployeeAndTypesBetween(ctx, companyID, employeeID,
		[]attendance.EventType{attendance.EventCheckIn, attendance.EventCheckOut, attendance.EventOfficeEntry},
		from, windowEnd)
	if err != nil {
		return attendance.RangeReport{}, fmt.Errorf("failed to load events: %w", err)
	}
	punchesByDate := make(map[string][]attendance.Event)
	officeDates := make(map[string]bool)
	for _, ev := range events {
		key := ev.EventTime.UTC().Format("2006-01-02")
		switch ev.EventType {
		case attendance.EventCheckIn, attendance.EventCheckOut:
			punchesByDate[key] = append(punchesByDate[key], ev)
		}
		if ev.Source == attendance.SourceBiometric &&
			(ev.EventType == attendance.EventCheckIn || ev.EventType == attendance.EventOfficeEntry) {
			officeDates[key] = true
		}
	}

	holidays, err := s.holidayRepo.ListBetween(ctx, companyID, from, to)
	if err != nil {
		return attendance.RangeReport{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	holidayDates := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayDates[h.Date.Format("2006-01-02")] = true
	}

	leaves, err := s.leaveRepo.ListApprovedOverlappingForEmployee(ctx, companyID, employeeID, from, to)
	if err != nil {
		return attendance.RangeReport{}, fmt.Errorf("failed to load approved leaves: %w", err)
	}

	report := attendance.RangeReport{
		EmployeeCode: emp.EmployeeCode,
		From:         req.From,
		To:           req.To,
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		onLeave, onWfhLeave := leaveOnDate(leaves, d)

		var (
			status      attendance.Status
			mode        *attendance.Mode
			worked      int64
			lateArrival bool
		)
		if sum, ok := summaryByDate[key]; ok {
			status = sum.Status
			mode = sum.Mode
			worked = sum.WorkedMinutes
			lateArrival = sum.LateArrival
			if mode == nil && status == attendance.StatusPresent {
				mode = deriveStoredMode(worked, officeDates[key])
			}
		} else {
			worked = CalculateWorkedMinutes(punchesByDate[key])
			day := DayContext{
				HolidayExists:      holidayDates[key],
				IsWeekend:          IsWeekend(d),
				OnApprovedLeave:    onLeave,
				OnApprovedWfhLeave: onWfhLeave,
				WorkedMinutes:      worked,
				OfficePresent:      officeDates[key],
			}
			status = ResolvePolicyStatus(day, thresholds)
			mode = ResolveMode(status, day)
		}

		row := attendance.DailyReport{
			Date:          key,
			Status:        string(status),
			WorkedMinutes: worked,
			WorkedHours:   float64(worked) / 60.0,
			LateArrival:   lateArrival,
		}
		if mode != nil {
			m := string(*mode)
			row.Mode = &m
		}

		switch status {
		case attendance.StatusHoliday, attendance.StatusWeekOff:
		default:
			report.WorkingDays++
			row.RequiredMinutes = thresholds.MinimumWorkingMinutes
			if shortfall := row.RequiredMinutes - worked; shortfall > 0 {
				row.ShortfallMinutes = shortfall
			}
		}
		switch status {
		case attendance.StatusPresent, attendance.StatusHalfDay:
			report.TotalPresent++
			if mode != nil {
				switch *mode {
				case attendance.ModeOffice:
					report.TotalOfficeDays++
				case attendance.ModeWFH:
					report.TotalWfhDays++
				}
			}
		case attendance.StatusAbsent:
			report.TotalAbsent++
		}
		report.TotalWorkedMinutes += worked
		report.Days = append(report.Days, row)
	}

	return report, nil
}

func leaveOnDate(leaves []leave.Request, date time.Time) (onLeave, onWfhLeave bool) {
	for _, l := range leaves {
		if date.Before(l.FromDate) || date.After(l.ToDate) {
			continue
		}
		onLeave = true
		if leave.IsWfhLeaveType(l.LeaveType) {
			onWfhLeave = true
		}
	}
	return onLeave, onWfhLeave
}

func deriveStoredMode(workedMinutes int64, officePresent bool) *attendance.Mode {
	var m attendance.Mode
	switch {
	case workedMinutes == 0:
		m = attendance.ModeWFH
	case officePresent:
		m = attendance.ModeOffice
	default:
		m = attendance.ModeWFH
	}
	return &m
}

package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/company"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/holiday"
	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
	"github.com/ksusheel25/hr-management-system/internal/pkg/lock"
	"github.com/ksusheel25/hr-management-system/internal/repository/postgresql"
	attendancesvc "github.com/ksusheel25/hr-management-system/internal/service/attendance"
)

const (
	finalizationLockKey  = int64(810210011)
	finalizationDeadline = 30 * time.Minute
)

type AttendanceJobs struct {
	db           *database.DB
	companyRepo  company.Repository
	employeeRepo employee.Repository
	eventRepo    attendance.EventRepository
	summaryRepo  attendance.SummaryRepository
	policyRepo   attendance.WorkPolicyRepository
	presenceRepo attendance.OfficePresenceRepository
	holidayRepo  holiday.Repository
	leaveRepo    leave.RequestRepository
	lockManager  lock.Manager
	now          func() time.Time
}

func NewAttendanceJobs(
	db *database.DB,
	companyRepo company.Repository,
	employeeRepo employee.Repository,
	eventRepo attendance.EventRepository,
	summaryRepo attendance.SummaryRepository,
	policyRepo attendance.WorkPolicyRepository,
	presenceRepo attendance.OfficePresenceRepository,
	holidayRepo holiday.Repository,
	leaveRepo leave.RequestRepository,
	lockManager lock.Manager,
) *AttendanceJobs {
	return &AttendanceJobs{
		db:           db,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		summaryRepo:  summaryRepo,
		policyRepo:   policyRepo,
		presenceRepo: presenceRepo,
		holidayRepo:  holidayRepo,
		leaveRepo:    leaveRepo,
		lockManager:  lockManager,
		now:          time.Now,
	}
}

// RegisterJobs schedules reconciliation before finalization; the times are
// "HH:MM" UTC clock strings from config.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, reconcileAt, finalizeAt string) error {
	if err := scheduler.AddDailyJob("attendance_reconciliation", reconcileAt, j.ReconcileYesterday); err != nil {
		return err
	}
	return scheduler.AddDailyJob("attendance_finalization", finalizeAt, j.FinalizeDailyAttendance)
}

// FinalizeDailyAttendance freezes yesterday's summaries company by company.
// The whole pass runs under a single advisory lock; losing the acquisition
// race means another instance is already on it and this run skips silently.
func (j *AttendanceJobs) FinalizeDailyAttendance(ctx context.Context) error {
	startedAt := j.now()
	slog.Info("attendance_finalization_job_start",
		"lock_key", finalizationLockKey,
		"max_lock_minutes", int(finalizationDeadline.Minutes()))

	held, ok, err := j.lockManager.TryAcquire(ctx, finalizationLockKey)
	if err != nil {
		return err
	}
	if !ok {
		slog.Info("attendance_finalization_job_skip",
			"reason", "lock_not_acquired",
			"lock_key", finalizationLockKey)
		return nil
	}
	defer func() {
		if err := held.Release(ctx); err != nil {
			slog.Error("attendance_finalization_lock_release_failed", "error", err)
		}
	}()

	deadline := startedAt.Add(finalizationDeadline)
	companies, err := j.companyRepo.List(ctx)
	if err != nil {
		return err
	}

	processedEmployees := 0
	for _, c := range companies {
		if j.now().After(deadline) {
			slog.Warn("attendance_finalization_job_timeout",
				"processed_employees", processedEmployees,
				"max_lock_minutes", int(finalizationDeadline.Minutes()))
			break
		}

		var finalized int
		err := postgresql.WithTransaction(ctx, j.db, func(ctx context.Context) error {
			var txErr error
			finalized, txErr = j.finalizeCompanyDate(ctx, c)
			return txErr
		})
		if err != nil {
			slog.Error("attendance_finalization_company_failed", "company_id", c.ID, "error", err)
			continue
		}
		processedEmployees += finalized
	}

	slog.Info("attendance_finalization_job_end",
		"processed_employees", processedEmployees,
		"duration_ms", j.now().Sub(startedAt).Milliseconds())
	return nil
}

func (j *AttendanceJobs) finalizeCompanyDate(ctx context.Context, c company.Company) (int, error) {
	zone := resolveZone(c.Timezone)
	targetDate, dayStart, nextDayStart := yesterdayWindow(j.now(), zone)

	activeEmployees, err := j.employeeRepo.ListActive(ctx, c.ID)
	if err != nil {
		return 0, err
	}
	if len(activeEmployees) == 0 {
		return 0, nil
	}

	summaries, err := j.summaryRepo.ListByDate(ctx, c.ID, targetDate)
	if err != nil {
		return 0, err
	}
	summaryByEmployee := make(map[string]attendance.DailySummary, len(summaries))
	for _, s := range summaries {
		summaryByEmployee[s.EmployeeID] = s
	}

	holidayExists, err := j.holidayRepo.ExistsByDate(ctx, c.ID, targetDate)
	if err != nil {
		return 0, err
	}

	approvedLeaves, err := j.leaveRepo.ListApprovedForDate(ctx, c.ID, targetDate)
	if err != nil {
		return 0, err
	}
	leaveByEmployee := mapApprovedLeavesByEmployee(approvedLeaves)

	events, err := j.eventRepo.ListByTypesBetween(ctx, c.ID,
		[]attendance.EventType{
			attendance.EventCheckIn,
			attendance.EventCheckOut,
			attendance.EventOfficeEntry,
			attendance.EventOfficeExit,
		}, dayStart, nextDayStart)
	if err != nil {
		return 0, err
	}
	eventsByEmployee := groupEventsByEmployee(events)

	finalized := 0
	for _, emp := range activeEmployees {
		existing, hasExisting := summaryByEmployee[emp.ID]
		if hasExisting && existing.Finalized {
			continue
		}

		employeeEvents := eventsByEmployee[emp.ID]
		worked := attendancesvc.CalculateWorkedMinutes(employeeEvents)
		officePresent := anyBiometricPresence(employeeEvents)
		approvedLeave, onApprovedLeave := leaveByEmployee[emp.ID]
		onApprovedWfhLeave := onApprovedLeave && leave.IsWfhLeaveType(approvedLeave.LeaveType)

		day := attendancesvc.DayContext{
			HolidayExists:      holidayExists,
			IsWeekend:          attendancesvc.IsWeekend(targetDate),
			OnApprovedLeave:    onApprovedLeave,
			OnApprovedWfhLeave: onApprovedWfhLeave,
			WorkedMinutes:      worked,
			OfficePresent:      officePresent,
		}
		status := attendancesvc.ResolveDailyStatus(day)
		mode := attendancesvc.ResolveMode(status, day)

		summary := existing
		if !hasExisting {
			summary = attendance.NewDailySummary(c.ID, emp.ID, targetDate)
		}
		summary.WorkedMinutes = worked
		summary.Status = status
		summary.Mode = mode
		summary.OfficePresent = mode != nil && *mode == attendance.ModeOffice
		summary.RemoteDay = mode != nil && *mode == attendance.ModeWFH
		summary.OfficeWorkedMinutes = 0
		if summary.OfficePresent {
			summary.OfficeWorkedMinutes = worked
		}
		summary.Finalized = true

		if _, err := j.summaryRepo.Upsert(ctx, summary); err != nil {
			return 0, err
		}
		finalized++
	}

	return finalized, nil
}

// mapApprovedLeavesByEmployee keeps one leave per employee, preferring a WFH
// leave when the employee has overlapping approvals.
func mapApprovedLeavesByEmployee(approved []leave.Request) map[string]leave.Request {
	byEmployee := make(map[string]leave.Request, len(approved))
	for _, l := range approved {
		current, ok := byEmployee[l.EmployeeID]
		if !ok || (leave.IsWfhLeaveType(l.LeaveType) && !leave.IsWfhLeaveType(current.LeaveType)) {
			byEmployee[l.EmployeeID] = l
		}
	}
	return byEmployee
}

func groupEventsByEmployee(events []attendance.Event) map[string][]attendance.Event {
	grouped := make(map[string][]attendance.Event)
	for _, ev := range events {
		grouped[ev.EmployeeID] = append(grouped[ev.EmployeeID], ev)
	}
	return grouped
}

func anyBiometricPresence(events []attendance.Event) bool {
	for _, ev := range events {
		if ev.Source == attendance.SourceBiometric &&
			(ev.EventType == attendance.EventCheckIn || ev.EventType == attendance.EventOfficeEntry) {
			return true
		}
	}
	return false
}

// yesterdayWindow returns yesterday's calendar date in the zone plus its
// absolute day boundaries. The date itself is normalized to UTC midnight for
// use as a date-column key.
func yesterdayWindow(now time.Time, zone *time.Location) (targetDate, dayStart, nextDayStart time.Time) {
	local := now.In(zone).AddDate(0, 0, -1)
	dayStart = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
	nextDayStart = dayStart.AddDate(0, 0, 1)
	targetDate = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return targetDate, dayStart, nextDayStart
}

func resolveZone(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

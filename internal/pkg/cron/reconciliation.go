package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/company"
	"github.com/ksusheel25/hr-management-system/internal/repository/postgresql"
	attendancesvc "github.com/ksusheel25/hr-management-system/internal/service/attendance"
	workpolicysvc "github.com/ksusheel25/hr-management-system/internal/service/workpolicy"
)

// ReconcileYesterday enriches yesterday's summaries with shift timing,
// office presence and the policy-driven status, one company per transaction.
// It runs lock-free: every write recomputes and overwrites, so concurrent
// runs converge, and the WFH deduction is guarded at the storage layer.
func (j *AttendanceJobs) ReconcileYesterday(ctx context.Context) error {
	companies, err := j.companyRepo.List(ctx)
	if err != nil {
		return err
	}

	for _, c := range companies {
		err := postgresql.WithTransaction(ctx, j.db, func(ctx context.Context) error {
			return j.reconcileCompany(ctx, c)
		})
		if err != nil {
			slog.Error("attendance_reconciliation_company_failed", "company_id", c.ID, "error", err)
		}
	}
	return nil
}

func (j *AttendanceJobs) reconcileCompany(ctx context.Context, c company.Company) error {
	zone := resolveZone(c.Timezone)
	targetDate, dayStart, nextDayStart := yesterdayWindow(j.now(), zone)

	policy, err := workpolicysvc.GetOrCreate(ctx, j.policyRepo, c.ID)
	if err != nil {
		return err
	}

	employees, err := j.employeeRepo.ListWithShift(ctx, c.ID)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return nil
	}

	summaries, err := j.summaryRepo.ListByDate(ctx, c.ID, targetDate)
	if err != nil {
		return err
	}
	summaryByEmployee := make(map[string]attendance.DailySummary, len(summaries))
	for _, s := range summaries {
		summaryByEmployee[s.EmployeeID] = s
	}

	officeEntryIDs, err := j.eventRepo.ListOfficeEntryEmployeeIDs(ctx, c.ID, dayStart, nextDayStart)
	if err != nil {
		return err
	}
	officePresentSet := make(map[string]bool, len(officeEntryIDs))
	for _, id := range officeEntryIDs {
		officePresentSet[id] = true
	}

	// Widen the punch window by the longest configured shift so punches of
	// midnight-crossing shifts land inside the fetch.
	var maxShiftDuration time.Duration
	for _, emp := range employees {
		if d := attendancesvc.ShiftDuration(emp.Shift, targetDate, zone); d > maxShiftDuration {
			maxShiftDuration = d
		}
	}
	punches, err := j.eventRepo.ListByTypesBetween(ctx, c.ID,
		[]attendance.EventType{attendance.EventCheckIn, attendance.EventCheckOut},
		dayStart.Add(-maxShiftDuration), nextDayStart.Add(maxShiftDuration))
	if err != nil {
		return err
	}
	punchesByEmployee := groupEventsByEmployee(punches)

	officeMinutes, err := j.presenceRepo.WorkedMinutesByDate(ctx, c.ID, targetDate)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		summary, hasExisting := summaryByEmployee[emp.ID]
		if !hasExisting {
			summary = attendance.NewDailySummary(c.ID, emp.ID, targetDate)
		}
		if summary.Finalized {
			continue
		}

		worked := summary.WorkedMinutes
		officePresent := officePresentSet[emp.ID]
		remoteDay := !officePresent && worked > 0

		thresholds := attendancesvc.ResolveThresholds(&emp, &policy)
		status := attendancesvc.ResolvePolicyStatus(
			attendancesvc.DayContext{WorkedMinutes: worked, OfficePresent: officePresent},
			thresholds)
		timing := attendancesvc.EvaluateShiftTiming(emp.Shift, targetDate, zone, punchesByEmployee[emp.ID])

		summary.Date = targetDate
		summary.OfficeWorkedMinutes = officeMinutes[emp.ID]
		summary.OfficePresent = officePresent
		summary.RemoteDay = remoteDay
		summary.LateMinutes = timing.LateMinutes
		summary.EarlyExitMinutes = timing.EarlyExitMinutes
		summary.LateArrival = timing.LateArrival
		summary.EarlyExit = timing.EarlyExit
		summary.Status = status

		if _, err := j.summaryRepo.Upsert(ctx, summary); err != nil {
			return err
		}

		if status == attendance.StatusPresent && remoteDay && policy.AutoDeduct {
			deducted, err := j.employeeRepo.DeductWfhBalance(ctx, emp.ID, c.ID)
			if err != nil {
				return err
			}
			if deducted {
				slog.Info("attendance_reconciliation_wfh_deducted",
					"company_id", c.ID,
					"employee_id", emp.ID,
					"date", targetDate.Format("2006-01-02"))
			}
		}
	}

	return nil
}

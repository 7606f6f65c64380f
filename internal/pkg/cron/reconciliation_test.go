package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/company"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
)

func officeShift(grace int) *shift.Shift {
	start := time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, 18, 0, 0, 0, time.UTC)
	return &shift.Shift{StartTime: &start, EndTime: &end, GraceMinutes: &grace}
}

func TestReconcileCompanyEnrichesSummary(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true, Shift: officeShift(10)},
	}}
	events := &fakeEventRepo{events: []attendance.Event{
		punch("c1", "e1", attendance.EventOfficeEntry, attendance.SourceBiometric, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
		punch("c1", "e1", attendance.EventCheckIn, attendance.SourceBiometric, time.Date(2026, 3, 9, 9, 12, 0, 0, time.UTC)),
		punch("c1", "e1", attendance.EventCheckOut, attendance.SourceBiometric, time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC)),
	}}
	summaries := newFakeSummaryRepo()
	summaries.rows[key("c1", "e1", targetDate)] = attendance.DailySummary{
		CompanyID: "c1", EmployeeID: "e1", Date: targetDate,
		WorkedMinutes: 468, Status: attendance.StatusAbsent,
	}
	presence := &fakePresenceRepo{minutes: map[string]int64{"e1": 455}}

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, events, summaries,
		newFakePolicyRepo(), presence, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	err := jobs.reconcileCompany(context.Background(), c)
	require.NoError(t, err)

	s := summaries.rows[key("c1", "e1", targetDate)]
	assert.Equal(t, int64(2), s.LateMinutes)
	assert.True(t, s.LateArrival)
	assert.Equal(t, int64(60), s.EarlyExitMinutes)
	assert.True(t, s.EarlyExit)
	assert.True(t, s.OfficePresent)
	assert.False(t, s.RemoteDay)
	assert.Equal(t, int64(455), s.OfficeWorkedMinutes)
	// 468 worked < 480 default minimum, half-day rule off.
	assert.Equal(t, attendance.StatusAbsent, s.Status)
	assert.False(t, s.Finalized)
}

func TestReconcileCompanyHalfDayFromShiftThresholds(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	halfDay := 240
	fullDay := 480
	sh := officeShift(0)
	sh.MinimumHalfDayMinutes = &halfDay
	sh.MinimumFullDayMinutes = &fullDay
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true, Shift: sh},
	}}
	summaries := newFakeSummaryRepo()
	summaries.rows[key("c1", "e1", targetDate)] = attendance.DailySummary{
		CompanyID: "c1", EmployeeID: "e1", Date: targetDate, WorkedMinutes: 300,
	}
	policies := newFakePolicyRepo()
	policies.policies["c1"] = attendance.WorkPolicy{
		CompanyID: "c1", MinimumWorkingMinutes: 480, HalfDayAllowed: true, HalfDayThresholdMinutes: 400,
	}

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, &fakeEventRepo{}, summaries,
		policies, &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	err := jobs.reconcileCompany(context.Background(), c)
	require.NoError(t, err)

	// The shift's 240-minute half-day cut overrides the policy's 400.
	s := summaries.rows[key("c1", "e1", targetDate)]
	assert.Equal(t, attendance.StatusHalfDay, s.Status)
}

func TestReconcileCompanyCreatesDefaultPolicy(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true},
	}}
	policies := newFakePolicyRepo()

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, &fakeEventRepo{}, newFakeSummaryRepo(),
		policies, &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	err := jobs.reconcileCompany(context.Background(), c)
	require.NoError(t, err)

	created, ok := policies.policies["c1"]
	require.True(t, ok)
	assert.Equal(t, attendance.DefaultMinimumWorkingMinutes, created.MinimumWorkingMinutes)
	assert.False(t, created.AutoDeduct)
}

func TestReconcileCompanyWfhAutoDeduct(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true, RemainingWfhBalance: 2},
		{ID: "e2", CompanyID: "c1", Active: true, RemainingWfhBalance: 0},
	}}
	summaries := newFakeSummaryRepo()
	summaries.rows[key("c1", "e1", targetDate)] = attendance.DailySummary{
		CompanyID: "c1", EmployeeID: "e1", Date: targetDate, WorkedMinutes: 510,
	}
	summaries.rows[key("c1", "e2", targetDate)] = attendance.DailySummary{
		CompanyID: "c1", EmployeeID: "e2", Date: targetDate, WorkedMinutes: 510,
	}
	policies := newFakePolicyRepo()
	policies.policies["c1"] = attendance.WorkPolicy{
		CompanyID: "c1", MinimumWorkingMinutes: 480, AutoDeduct: true,
	}

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, &fakeEventRepo{}, summaries,
		policies, &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	err := jobs.reconcileCompany(context.Background(), c)
	require.NoError(t, err)

	// Only the employee with remaining balance is deducted, by exactly one.
	assert.Equal(t, []string{"e1"}, employees.deductions)
	assert.Equal(t, 1, employees.employees[0].RemainingWfhBalance)
	assert.Equal(t, 0, employees.employees[1].RemainingWfhBalance)
}

func TestReconcileCompanySkipsFinalizedRows(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true, Shift: officeShift(0)},
	}}
	frozen := attendance.DailySummary{
		CompanyID: "c1", EmployeeID: "e1", Date: targetDate,
		WorkedMinutes: 540, Status: attendance.StatusPresent, Finalized: true,
	}
	summaries := newFakeSummaryRepo()
	summaries.rows[key("c1", "e1", targetDate)] = frozen

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, &fakeEventRepo{}, summaries,
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	err := jobs.reconcileCompany(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, frozen, summaries.rows[key("c1", "e1", targetDate)])
}

func TestReconcileCompanyNoEmployees(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "not-a-zone"}
	jobs := newJobsForTest(&fakeCompanyRepo{}, &fakeEmployeeRepo{}, &fakeEventRepo{}, newFakeSummaryRepo(),
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	// Invalid zone falls back to UTC; no employees means nothing to write.
	err := jobs.reconcileCompany(context.Background(), c)
	require.NoError(t, err)
}

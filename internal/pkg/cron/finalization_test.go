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
	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
)

// jobNow pins the clock to Tuesday 2026-03-10 00:10 UTC; yesterday is Monday
// 2026-03-09.
var jobNow = time.Date(2026, 3, 10, 0, 10, 0, 0, time.UTC)

var targetDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func punch(companyID, employeeID string, t attendance.EventType, source attendance.Source, when time.Time) attendance.Event {
	return attendance.Event{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		EventType:  t,
		Source:     source,
		EventTime:  when,
	}
}

func newJobsForTest(
	companyRepo *fakeCompanyRepo,
	employeeRepo *fakeEmployeeRepo,
	eventRepo *fakeEventRepo,
	summaryRepo *fakeSummaryRepo,
	policyRepo *fakePolicyRepo,
	presenceRepo *fakePresenceRepo,
	holidayRepo *fakeHolidayRepo,
	leaveRepo *fakeLeaveRepo,
	lockManager *fakeLockManager,
) *AttendanceJobs {
	jobs := NewAttendanceJobs(nil, companyRepo, employeeRepo, eventRepo, summaryRepo,
		policyRepo, presenceRepo, holidayRepo, leaveRepo, lockManager)
	jobs.now = func() time.Time { return jobNow }
	return jobs
}

func TestFinalizeCompanyDateComputesAndFreezes(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true},
		{ID: "e2", CompanyID: "c1", Active: true},
	}}
	events := &fakeEventRepo{events: []attendance.Event{
		punch("c1", "e1", attendance.EventCheckIn, attendance.SourceRemote, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
		punch("c1", "e1", attendance.EventCheckOut, attendance.SourceRemote, time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)),
	}}
	summaries := newFakeSummaryRepo()

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, events, summaries,
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	count, err := jobs.finalizeCompanyDate(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	s1 := summaries.rows[key("c1", "e1", targetDate)]
	assert.Equal(t, int64(540), s1.WorkedMinutes)
	assert.Equal(t, attendance.StatusPresent, s1.Status)
	require.NotNil(t, s1.Mode)
	assert.Equal(t, attendance.ModeWFH, *s1.Mode)
	assert.True(t, s1.RemoteDay)
	assert.False(t, s1.OfficePresent)
	assert.Equal(t, int64(0), s1.OfficeWorkedMinutes)
	assert.True(t, s1.Finalized)

	s2 := summaries.rows[key("c1", "e2", targetDate)]
	assert.Equal(t, int64(0), s2.WorkedMinutes)
	assert.Equal(t, attendance.StatusAbsent, s2.Status)
	assert.Nil(t, s2.Mode)
	assert.True(t, s2.Finalized)
}

func TestFinalizeCompanyDateOfficeMode(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true},
	}}
	events := &fakeEventRepo{events: []attendance.Event{
		punch("c1", "e1", attendance.EventCheckIn, attendance.SourceBiometric, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
		punch("c1", "e1", attendance.EventCheckOut, attendance.SourceBiometric, time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)),
	}}
	summaries := newFakeSummaryRepo()

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, events, summaries,
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	_, err := jobs.finalizeCompanyDate(context.Background(), c)
	require.NoError(t, err)

	s := summaries.rows[key("c1", "e1", targetDate)]
	require.NotNil(t, s.Mode)
	assert.Equal(t, attendance.ModeOffice, *s.Mode)
	assert.True(t, s.OfficePresent)
	assert.False(t, s.RemoteDay)
	assert.Equal(t, int64(540), s.OfficeWorkedMinutes)
}

func TestFinalizeTwiceLeavesSummaryUnchanged(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true},
	}}
	events := &fakeEventRepo{events: []attendance.Event{
		punch("c1", "e1", attendance.EventCheckIn, attendance.SourceRemote, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
		punch("c1", "e1", attendance.EventCheckOut, attendance.SourceRemote, time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)),
	}}
	summaries := newFakeSummaryRepo()

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, events, summaries,
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeLockManager{})

	first, err := jobs.finalizeCompanyDate(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	frozen := summaries.rows[key("c1", "e1", targetDate)]

	// A later punch appears after the freeze; re-running must not pick it up.
	events.events = append(events.events,
		punch("c1", "e1", attendance.EventCheckIn, attendance.SourceRemote, time.Date(2026, 3, 9, 19, 0, 0, 0, time.UTC)),
		punch("c1", "e1", attendance.EventCheckOut, attendance.SourceRemote, time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)))

	second, err := jobs.finalizeCompanyDate(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	assert.Equal(t, frozen, summaries.rows[key("c1", "e1", targetDate)])
}

func TestFinalizeLeavePrecedence(t *testing.T) {
	c := company.Company{ID: "c1", Timezone: "UTC"}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "c1", Active: true},
		{ID: "e2", CompanyID: "c1", Active: true},
	}}
	leaves := &fakeLeaveRepo{approved: []leave.Request{
		{CompanyID: "c1", EmployeeID: "e1", LeaveType: "ANNUAL", Status: leave.StatusApproved, FromDate: targetDate, ToDate: targetDate},
		{CompanyID: "c1", EmployeeID: "e2", LeaveType: "wfh", Status: leave.StatusApproved, FromDate: targetDate, ToDate: targetDate},
	}}
	summaries := newFakeSummaryRepo()

	jobs := newJobsForTest(&fakeCompanyRepo{}, employees, &fakeEventRepo{}, summaries,
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, leaves, &fakeLockManager{})

	_, err := jobs.finalizeCompanyDate(context.Background(), c)
	require.NoError(t, err)

	s1 := summaries.rows[key("c1", "e1", targetDate)]
	assert.Equal(t, attendance.StatusOnLeave, s1.Status)
	assert.Nil(t, s1.Mode)

	// WFH leave counts as present with WFH mode, case-insensitively.
	s2 := summaries.rows[key("c1", "e2", targetDate)]
	assert.Equal(t, attendance.StatusPresent, s2.Status)
	require.NotNil(t, s2.Mode)
	assert.Equal(t, attendance.ModeWFH, *s2.Mode)
}

func TestFinalizeSkipsWhenLockUnavailable(t *testing.T) {
	companies := &fakeCompanyRepo{companies: []company.Company{{ID: "c1"}}}
	locks := &fakeLockManager{unavailable: true}

	jobs := newJobsForTest(companies, &fakeEmployeeRepo{}, &fakeEventRepo{}, newFakeSummaryRepo(),
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, locks)

	err := jobs.FinalizeDailyAttendance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, locks.acquires)
	assert.Equal(t, 0, companies.listCalls)
}

func TestFinalizeReleasesLock(t *testing.T) {
	locks := &fakeLockManager{}
	jobs := newJobsForTest(&fakeCompanyRepo{}, &fakeEmployeeRepo{}, &fakeEventRepo{}, newFakeSummaryRepo(),
		newFakePolicyRepo(), &fakePresenceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, locks)

	err := jobs.FinalizeDailyAttendance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, locks.releases)
}

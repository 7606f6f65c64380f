package cron

import (
	"context"
	"time"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/company"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/holiday"
	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/pkg/lock"
)

type fakeCompanyRepo struct {
	companies []company.Company
	listCalls int
}

func (f *fakeCompanyRepo) List(context.Context) ([]company.Company, error) {
	f.listCalls++
	return f.companies, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

type fakeEmployeeRepo struct {
	employees  []employee.Employee
	deductions []string
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListWithShift(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) AssignShift(context.Context, string, string, *string) error {
	return nil
}

func (f *fakeEmployeeRepo) DeductWfhBalance(_ context.Context, id, _ string) (bool, error) {
	for i := range f.employees {
		if f.employees[i].ID == id {
			if f.employees[i].RemainingWfhBalance <= 0 {
				return false, nil
			}
			f.employees[i].RemainingWfhBalance--
			f.deductions = append(f.deductions, id)
			return true, nil
		}
	}
	return false, employee.ErrEmployeeNotFound
}

type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) Create(_ context.Context, event attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) ExistsByDeviceLogID(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeEventRepo) FindLatestOpenSession(context.Context, string, string) (*attendance.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListByTypesBetween(_ context.Context, companyID string, types []attendance.EventType, from, to time.Time) ([]attendance.Event, error) {
	wanted := make(map[attendance.EventType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.CompanyID == companyID && wanted[ev.EventType] &&
			!ev.EventTime.Before(from) && ev.EventTime.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByEmployeeAndTypesBetween(_ context.Context, companyID, employeeID string, types []attendance.EventType, from, to time.Time) ([]attendance.Event, error) {
	all, _ := f.ListByTypesBetween(context.Background(), companyID, types, from, to)
	var out []attendance.Event
	for _, ev := range all {
		if ev.EmployeeID == employeeID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListOfficeEntryEmployeeIDs(_ context.Context, companyID string, from, to time.Time) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range f.events {
		if ev.CompanyID == companyID && ev.Source == attendance.SourceBiometric &&
			ev.EventType == attendance.EventOfficeEntry &&
			!ev.EventTime.Before(from) && ev.EventTime.Before(to) && !seen[ev.EmployeeID] {
			seen[ev.EmployeeID] = true
			out = append(out, ev.EmployeeID)
		}
	}
	return out, nil
}

type summaryKey struct {
	companyID  string
	employeeID string
	date       string
}

type fakeSummaryRepo struct {
	rows map[summaryKey]attendance.DailySummary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{rows: make(map[summaryKey]attendance.DailySummary)}
}

func key(companyID, employeeID string, date time.Time) summaryKey {
	return summaryKey{companyID: companyID, employeeID: employeeID, date: date.Format("2006-01-02")}
}

func (f *fakeSummaryRepo) GetByEmployeeAndDate(_ context.Context, companyID, employeeID string, date time.Time) (*attendance.DailySummary, error) {
	if s, ok := f.rows[key(companyID, employeeID, date)]; ok {
		copied := s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSummaryRepo) ListByDate(_ context.Context, companyID string, date time.Time) ([]attendance.DailySummary, error) {
	var out []attendance.DailySummary
	for k, s := range f.rows {
		if k.companyID == companyID && k.date == date.Format("2006-01-02") {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSummaryRepo) ListByEmployeeBetween(_ context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.DailySummary, error) {
	var out []attendance.DailySummary
	for k, s := range f.rows {
		if k.companyID == companyID && k.employeeID == employeeID &&
			!s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSummaryRepo) Upsert(_ context.Context, summary attendance.DailySummary) (attendance.DailySummary, error) {
	f.rows[key(summary.CompanyID, summary.EmployeeID, summary.Date)] = summary
	return summary, nil
}

type fakeHolidayRepo struct {
	dates map[string]bool
}

func (f *fakeHolidayRepo) ExistsByDate(_ context.Context, _ string, date time.Time) (bool, error) {
	return f.dates[date.Format("2006-01-02")], nil
}

func (f *fakeHolidayRepo) ListBetween(context.Context, string, time.Time, time.Time) ([]holiday.Holiday, error) {
	return nil, nil
}

type fakeLeaveRepo struct {
	approved []leave.Request
}

func (f *fakeLeaveRepo) Create(_ context.Context, r leave.Request) (leave.Request, error) {
	return r, nil
}

func (f *fakeLeaveRepo) GetByID(context.Context, string, string) (leave.Request, error) {
	return leave.Request{}, leave.ErrRequestNotFound
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, r leave.Request) (leave.Request, error) {
	return r, nil
}

func (f *fakeLeaveRepo) ListByEmployee(context.Context, string, string) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListPendingByManager(context.Context, string, string) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListApprovedForDate(_ context.Context, companyID string, date time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.approved {
		if r.CompanyID == companyID && !date.Before(r.FromDate) && !date.After(r.ToDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListApprovedOverlappingForEmployee(context.Context, string, string, time.Time, time.Time) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ExistsOverlapping(context.Context, string, string, time.Time, time.Time) (bool, error) {
	return false, nil
}

type fakePolicyRepo struct {
	policies map[string]attendance.WorkPolicy
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{policies: make(map[string]attendance.WorkPolicy)}
}

func (f *fakePolicyRepo) GetByCompanyID(_ context.Context, companyID string) (*attendance.WorkPolicy, error) {
	if p, ok := f.policies[companyID]; ok {
		copied := p
		return &copied, nil
	}
	return nil, nil
}

func (f *fakePolicyRepo) Create(_ context.Context, p attendance.WorkPolicy) (attendance.WorkPolicy, error) {
	f.policies[p.CompanyID] = p
	return p, nil
}

func (f *fakePolicyRepo) Update(_ context.Context, p attendance.WorkPolicy) (attendance.WorkPolicy, error) {
	f.policies[p.CompanyID] = p
	return p, nil
}

type fakePresenceRepo struct {
	minutes map[string]int64
}

func (f *fakePresenceRepo) Create(_ context.Context, s attendance.OfficePresenceSummary) (attendance.OfficePresenceSummary, error) {
	return s, nil
}

func (f *fakePresenceRepo) FindLatestOpen(context.Context, string, string) (*attendance.OfficePresenceSummary, error) {
	return nil, nil
}

func (f *fakePresenceRepo) Close(context.Context, attendance.OfficePresenceSummary) error {
	return nil
}

func (f *fakePresenceRepo) WorkedMinutesByDate(context.Context, string, time.Time) (map[string]int64, error) {
	if f.minutes == nil {
		return map[string]int64{}, nil
	}
	return f.minutes, nil
}

type fakeLockManager struct {
	unavailable bool
	acquires    int
	releases    int
}

func (f *fakeLockManager) TryAcquire(_ context.Context, lockKey int64) (*lock.Lock, bool, error) {
	f.acquires++
	if f.unavailable {
		return nil, false, nil
	}
	return lock.NewLock(lockKey, func(context.Context) error {
		f.releases++
		return nil
	}), true, nil
}

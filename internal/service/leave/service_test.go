package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
)

type fakeBalanceRepo struct {
	balances map[int]*leave.Balance
	saved    []leave.Balance
}

func (f *fakeBalanceRepo) GetForUpdate(_ context.Context, _, _, _ string, year int) (*leave.Balance, error) {
	b, ok := f.balances[year]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBalanceRepo) Save(_ context.Context, balance leave.Balance) error {
	f.saved = append(f.saved, balance)
	f.balances[balance.Year] = &balance
	return nil
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newTestService(balances *fakeBalanceRepo) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		balanceRepo: balances,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRequestedDaysByYear(t *testing.T) {
	days := requestedDaysByYear(date(2026, 3, 9), date(2026, 3, 11))
	assert.Equal(t, map[int]int{2026: 3}, days)

	days = requestedDaysByYear(date(2025, 12, 30), date(2026, 1, 2))
	assert.Equal(t, map[int]int{2025: 2, 2026: 2}, days)
}

func TestDeductBalanceInsufficientLeavesLedgerUntouched(t *testing.T) {
	repo := &fakeBalanceRepo{balances: map[int]*leave.Balance{
		2026: {Year: 2026, LeaveType: "ANNUAL", Allocated: 10, Used: 8, Remaining: 2},
	}}
	svc := newTestService(repo)

	request := leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  "ANNUAL",
		FromDate:   date(2026, 3, 9),
		ToDate:     date(2026, 3, 11),
	}

	err := svc.deductBalance(context.Background(), "company-1", request)
	require.ErrorIs(t, err, leave.ErrInsufficientLeaveBalance)
	assert.Empty(t, repo.saved)
	assert.Equal(t, 2, repo.balances[2026].Remaining)
	assert.Equal(t, 8, repo.balances[2026].Used)
}

func TestDeductBalanceSufficient(t *testing.T) {
	repo := &fakeBalanceRepo{balances: map[int]*leave.Balance{
		2026: {Year: 2026, LeaveType: "ANNUAL", Allocated: 10, Used: 2, Remaining: 8},
	}}
	svc := newTestService(repo)

	request := leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  "ANNUAL",
		FromDate:   date(2026, 3, 9),
		ToDate:     date(2026, 3, 11),
	}

	err := svc.deductBalance(context.Background(), "company-1", request)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.balances[2026].Used)
	assert.Equal(t, 5, repo.balances[2026].Remaining)
}

func TestDeductBalanceAcrossYearBoundaryChecksBothYearsFirst(t *testing.T) {
	// 2025 has plenty, 2026 has none: nothing in either year may change.
	repo := &fakeBalanceRepo{balances: map[int]*leave.Balance{
		2025: {Year: 2025, LeaveType: "ANNUAL", Allocated: 10, Used: 0, Remaining: 10},
		2026: {Year: 2026, LeaveType: "ANNUAL", Allocated: 2, Used: 2, Remaining: 0},
	}}
	svc := newTestService(repo)

	request := leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  "ANNUAL",
		FromDate:   date(2025, 12, 30),
		ToDate:     date(2026, 1, 2),
	}

	err := svc.deductBalance(context.Background(), "company-1", request)
	require.ErrorIs(t, err, leave.ErrInsufficientLeaveBalance)
	assert.Empty(t, repo.saved)
	assert.Equal(t, 10, repo.balances[2025].Remaining)
}

func TestDeductBalanceMissingYear(t *testing.T) {
	repo := &fakeBalanceRepo{balances: map[int]*leave.Balance{}}
	svc := newTestService(repo)

	request := leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  "ANNUAL",
		FromDate:   date(2026, 3, 9),
		ToDate:     date(2026, 3, 9),
	}

	err := svc.deductBalance(context.Background(), "company-1", request)
	require.ErrorIs(t, err, leave.ErrBalanceNotConfigured)
}

func TestRestoreBalance(t *testing.T) {
	repo := &fakeBalanceRepo{balances: map[int]*leave.Balance{
		2026: {Year: 2026, LeaveType: "ANNUAL", Allocated: 10, Used: 5, Remaining: 5},
	}}
	svc := newTestService(repo)

	request := leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  "ANNUAL",
		FromDate:   date(2026, 3, 9),
		ToDate:     date(2026, 3, 11),
	}

	err := svc.restoreBalance(context.Background(), "company-1", request)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.balances[2026].Used)
	assert.Equal(t, 8, repo.balances[2026].Remaining)
}

func TestRestoreBalanceNeverGoesNegative(t *testing.T) {
	repo := &fakeBalanceRepo{balances: map[int]*leave.Balance{
		2026: {Year: 2026, LeaveType: "ANNUAL", Allocated: 10, Used: 1, Remaining: 9},
	}}
	svc := newTestService(repo)

	request := leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  "ANNUAL",
		FromDate:   date(2026, 3, 9),
		ToDate:     date(2026, 3, 11),
	}

	err := svc.restoreBalance(context.Background(), "company-1", request)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.balances[2026].Used)
	assert.Equal(t, 10, repo.balances[2026].Remaining)
}

func TestIsWfhLeaveType(t *testing.T) {
	assert.True(t, leave.IsWfhLeaveType("WFH"))
	assert.True(t, leave.IsWfhLeaveType(" wfh "))
	assert.True(t, leave.IsWfhLeaveType("Wfh"))
	assert.False(t, leave.IsWfhLeaveType("ANNUAL"))
	assert.False(t, leave.IsWfhLeaveType(""))
}

type fakeRequestRepo struct {
	byEmployee       []leave.Request
	pendingByManager []leave.Request
	gotCompanyID     string
	gotEmployeeID    string
}

func (f *fakeRequestRepo) Create(_ context.Context, request leave.Request) (leave.Request, error) {
	return request, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, _, _ string) (leave.Request, error) {
	return leave.Request{}, leave.ErrRequestNotFound
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, request leave.Request) (leave.Request, error) {
	return request, nil
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, companyID, employeeID string) ([]leave.Request, error) {
	f.gotCompanyID = companyID
	f.gotEmployeeID = employeeID
	return f.byEmployee, nil
}

func (f *fakeRequestRepo) ListPendingByManager(_ context.Context, companyID, managerEmployeeID string) ([]leave.Request, error) {
	f.gotCompanyID = companyID
	f.gotEmployeeID = managerEmployeeID
	return f.pendingByManager, nil
}

func (f *fakeRequestRepo) ListApprovedForDate(_ context.Context, _ string, _ time.Time) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeRequestRepo) ListApprovedOverlappingForEmployee(_ context.Context, _, _ string, _, _ time.Time) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeRequestRepo) ExistsOverlapping(_ context.Context, _, _ string, _, _ time.Time) (bool, error) {
	return false, nil
}

func claimsContext(t *testing.T, companyID, employeeID string) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("company_id", companyID))
	require.NoError(t, token.Set("employee_id", employeeID))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestListMine(t *testing.T) {
	repo := &fakeRequestRepo{byEmployee: []leave.Request{
		{ID: "req-1", EmployeeID: "emp-1", LeaveType: "ANNUAL", FromDate: date(2026, 3, 9), ToDate: date(2026, 3, 11), Status: leave.StatusPending},
		{ID: "req-2", EmployeeID: "emp-1", LeaveType: "WFH", FromDate: date(2026, 2, 2), ToDate: date(2026, 2, 2), Status: leave.StatusApproved},
	}}
	svc := newTestService(&fakeBalanceRepo{})
	svc.RequestRepository = repo

	responses, err := svc.ListMine(claimsContext(t, "company-1", "emp-1"))
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "company-1", repo.gotCompanyID)
	assert.Equal(t, "emp-1", repo.gotEmployeeID)
	assert.Equal(t, "req-1", responses[0].ID)
	assert.Equal(t, "2026-03-09", responses[0].FromDate)
	assert.Equal(t, leave.StatusApproved, responses[1].Status)
}

func TestListMineEmpty(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc := newTestService(&fakeBalanceRepo{})
	svc.RequestRepository = repo

	responses, err := svc.ListMine(claimsContext(t, "company-1", "emp-1"))
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestListPendingForManager(t *testing.T) {
	repo := &fakeRequestRepo{pendingByManager: []leave.Request{
		{ID: "req-3", EmployeeID: "emp-2", LeaveType: "SICK", FromDate: date(2026, 3, 10), ToDate: date(2026, 3, 10), Status: leave.StatusPending},
	}}
	svc := newTestService(&fakeBalanceRepo{})
	svc.RequestRepository = repo

	responses, err := svc.ListPendingForManager(claimsContext(t, "company-1", "mgr-1"))
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "mgr-1", repo.gotEmployeeID)
	assert.Equal(t, "req-3", responses[0].ID)
	assert.Equal(t, leave.StatusPending, responses[0].Status)
}

package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/domain/notification"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
	"github.com/ksusheel25/hr-management-system/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.RequestRepository
	balanceRepo  leave.BalanceRepository
	employeeRepo employee.Repository
	notifier     notification.Service
	logger       *slog.Logger
}

func NewLeaveService(
	db *database.DB,
	requestRepo leave.RequestRepository,
	balanceRepo leave.BalanceRepository,
	employeeRepo employee.Repository,
	notifier notification.Service,
	logger *slog.Logger,
) leave.Service {
	return &LeaveServiceImpl{
		db:                db,
		RequestRepository: requestRepo,
		balanceRepo:       balanceRepo,
		employeeRepo:      employeeRepo,
		notifier:          notifier,
		logger:            logger,
	}
}

func selfFromContext(ctx context.Context) (companyID, employeeID string, err error) {
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

// Apply implements leave.Service.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Response, error) {
	companyID, employeeID, err := selfFromContext(ctx)
	if err != nil {
		return leave.Response{}, err
	}
	from, to, err := req.Validate()
	if err != nil {
		return leave.Response{}, err
	}

	overlapping, err := s.RequestRepository.ExistsOverlapping(ctx, companyID, employeeID, from, to)
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return leave.Response{}, leave.ErrOverlappingRequest
	}

	created, err := s.RequestRepository.Create(ctx, leave.Request{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		FromDate:   from,
		ToDate:     to,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.notifyManager(ctx, companyID, employeeID, created)

	return leave.ToResponse(created), nil
}

// Approve implements leave.Service.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string, req leave.DecisionRequest) (leave.Response, error) {
	return s.decide(ctx, requestID, leave.StatusApproved, req.Remarks)
}

// Reject implements leave.Service.
func (s *LeaveServiceImpl) Reject(ctx context.Context, requestID string, req leave.DecisionRequest) (leave.Response, error) {
	return s.decide(ctx, requestID, leave.StatusRejected, req.Remarks)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, requestID string, status leave.Status, remarks *string) (leave.Response, error) {
	companyID, managerID, err := selfFromContext(ctx)
	if err != nil {
		return leave.Response{}, err
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return leave.Response{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.Response{}, leave.ErrAlreadyProcessed
	}

	requester, err := s.employeeRepo.GetByID(ctx, request.EmployeeID, companyID)
	if err != nil {
		return leave.Response{}, err
	}
	if requester.ManagerID == nil || *requester.ManagerID != managerID {
		return leave.Response{}, leave.ErrNotReportingManager
	}

	var updated leave.Request
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if status == leave.StatusApproved && !leave.IsWfhLeaveType(request.LeaveType) {
			if err := s.deductBalance(ctx, companyID, request); err != nil {
				return err
			}
		}
		request.Status = status
		request.ApproverID = &managerID
		request.Remarks = remarks
		updated, err = s.RequestRepository.UpdateStatus(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.Response{}, err
	}

	s.logger.Info("leave_status_updated",
		slog.String("tenant_id", companyID),
		slog.String("leave_request_id", request.ID),
		slog.String("to_status", string(status)),
		slog.String("approver_employee_id", managerID))

	s.notifyRequesterOnDecision(ctx, companyID, updated, status)

	return leave.ToResponse(updated), nil
}

// Cancel implements leave.Service.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, requestID string) (leave.Response, error) {
	companyID, employeeID, err := selfFromContext(ctx)
	if err != nil {
		return leave.Response{}, err
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return leave.Response{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.Response{}, leave.ErrNotRequester
	}
	if request.Status != leave.StatusPending && request.Status != leave.StatusApproved {
		return leave.Response{}, leave.ErrNotCancellable
	}

	wasApproved := request.Status == leave.StatusApproved

	var updated leave.Request
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if wasApproved && !leave.IsWfhLeaveType(request.LeaveType) {
			if err := s.restoreBalance(ctx, companyID, request); err != nil {
				return err
			}
		}
		request.Status = leave.StatusCancelled
		updated, err = s.RequestRepository.UpdateStatus(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.Response{}, err
	}

	return leave.ToResponse(updated), nil
}

// ListMine implements leave.Service.
func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.Response, error) {
	companyID, employeeID, err := selfFromContext(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.RequestRepository.ListByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListPendingForManager implements leave.Service.
func (s *LeaveServiceImpl) ListPendingForManager(ctx context.Context) ([]leave.Response, error) {
	companyID, managerID, err := selfFromContext(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.RequestRepository.ListPendingByManager(ctx, companyID, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return toResponses(requests), nil
}

func toResponses(requests []leave.Request) []leave.Response {
	responses := make([]leave.Response, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses
}

// requestedDaysByYear counts calendar days per year across the request range;
// a request spanning a year boundary consumes balance from both years.
func requestedDaysByYear(from, to time.Time) map[int]int {
	days := make(map[int]int)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days[d.Year()]++
	}
	return days
}

// deductBalance checks every touched year under row locks before mutating any
// of them, so an insufficient year leaves the whole ledger untouched.
func (s *LeaveServiceImpl) deductBalance(ctx context.Context, companyID string, request leave.Request) error {
	daysByYear := requestedDaysByYear(request.FromDate, request.ToDate)
	balances := make(map[int]*leave.Balance, len(daysByYear))
	for year := range daysByYear {
		balance, err := s.balanceRepo.GetForUpdate(ctx, companyID, request.EmployeeID, request.LeaveType, year)
		if err != nil {
			return fmt.Errorf("failed to lock leave balance: %w", err)
		}
		if balance == nil {
			s.logger.Error("leave_balance_missing",
				slog.String("tenant_id", companyID),
				slog.String("employee_id", request.EmployeeID),
				slog.String("leave_type", request.LeaveType),
				slog.Int("year", year))
			return leave.ErrBalanceNotConfigured
		}
		balances[year] = balance
	}

	for year, requested := range daysByYear {
		if balances[year].Remaining < requested {
			s.logger.Error("leave_approve_failed",
				slog.String("reason", "insufficient_balance"),
				slog.String("tenant_id", companyID),
				slog.String("employee_id", request.EmployeeID),
				slog.String("leave_type", request.LeaveType),
				slog.Int("year", year),
				slog.Int("remaining", balances[year].Remaining),
				slog.Int("requested", requested))
			return leave.ErrInsufficientLeaveBalance
		}
	}

	for year, requested := range daysByYear {
		balance := balances[year]
		balance.Used += requested
		balance.Remaining = max(0, balance.Allocated-balance.Used)
		if err := s.balanceRepo.Save(ctx, *balance); err != nil {
			return fmt.Errorf("failed to save leave balance: %w", err)
		}
	}
	return nil
}

func (s *LeaveServiceImpl) restoreBalance(ctx context.Context, companyID string, request leave.Request) error {
	daysByYear := requestedDaysByYear(request.FromDate, request.ToDate)
	for year, requested := range daysByYear {
		balance, err := s.balanceRepo.GetForUpdate(ctx, companyID, request.EmployeeID, request.LeaveType, year)
		if err != nil {
			return fmt.Errorf("failed to lock leave balance: %w", err)
		}
		if balance == nil {
			return leave.ErrBalanceNotConfigured
		}
		balance.Used = max(0, balance.Used-requested)
		balance.Remaining = max(0, balance.Allocated-balance.Used)
		if err := s.balanceRepo.Save(ctx, *balance); err != nil {
			return fmt.Errorf("failed to save leave balance: %w", err)
		}
	}
	return nil
}

func (s *LeaveServiceImpl) notifyManager(ctx context.Context, companyID, employeeID string, request leave.Request) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil || emp.ManagerID == nil {
		return
	}
	message := fmt.Sprintf("Employee %s %s applied from %s to %s",
		emp.FirstName, emp.LastName,
		request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"))
	if err := s.notifier.Notify(ctx, companyID, *emp.ManagerID, "New Leave Request", message); err != nil {
		s.logger.Warn("leave_notification_failed", slog.String("tenant_id", companyID), slog.Any("error", err))
	}
}

func (s *LeaveServiceImpl) notifyRequesterOnDecision(ctx context.Context, companyID string, request leave.Request, status leave.Status) {
	var title string
	switch status {
	case leave.StatusApproved:
		title = "Leave Request Approved"
	case leave.StatusRejected:
		title = "Leave Request Rejected"
	default:
		return
	}
	message := fmt.Sprintf("Your %s request from %s to %s is %s",
		request.LeaveType,
		request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"),
		status)
	if err := s.notifier.Notify(ctx, companyID, request.EmployeeID, title, message); err != nil {
		s.logger.Warn("leave_notification_failed", slog.String("tenant_id", companyID), slog.Any("error", err))
	}
}

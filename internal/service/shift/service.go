package shift

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/company"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
)

type ShiftServiceImpl struct {
	shift.Repository
	employeeRepo employee.Repository
}

func NewShiftService(repo shift.Repository, employeeRepo employee.Repository) shift.Service {
	return &ShiftServiceImpl{
		Repository:   repo,
		employeeRepo: employeeRepo,
	}
}

// Create implements shift.Service.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateRequest) (shift.Response, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.Response{}, err
	}

	start, end, err := req.Validate()
	if err != nil {
		return shift.Response{}, err
	}

	created, err := s.Repository.Create(ctx, shift.Shift{
		CompanyID:             companyID,
		Name:                  req.Name,
		StartTime:             &start,
		EndTime:               &end,
		GraceMinutes:          req.GraceMinutes,
		MinimumHalfDayMinutes: req.MinimumHalfDayMinutes,
		MinimumFullDayMinutes: req.MinimumFullDayMinutes,
	})
	if err != nil {
		return shift.Response{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return shift.ToResponse(created), nil
}

// Get implements shift.Service.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.Response, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.Response{}, err
	}

	found, err := s.Repository.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.Response{}, err
	}
	return shift.ToResponse(found), nil
}

// List implements shift.Service.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.Response, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.Repository.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.Response, 0, len(shifts))
	for _, found := range shifts {
		responses = append(responses, shift.ToResponse(found))
	}
	return responses, nil
}

// Update implements shift.Service.
func (s *ShiftServiceImpl) Update(ctx context.Context, id string, req shift.CreateRequest) (shift.Response, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.Response{}, err
	}

	start, end, err := req.Validate()
	if err != nil {
		return shift.Response{}, err
	}

	existing, err := s.Repository.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.Response{}, err
	}

	existing.Name = req.Name
	existing.StartTime = &start
	existing.EndTime = &end
	existing.GraceMinutes = req.GraceMinutes
	existing.MinimumHalfDayMinutes = req.MinimumHalfDayMinutes
	existing.MinimumFullDayMinutes = req.MinimumFullDayMinutes

	updated, err := s.Repository.Update(ctx, existing)
	if err != nil {
		return shift.Response{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return shift.ToResponse(updated), nil
}

// Delete implements shift.Service.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.Repository.Delete(ctx, id, companyID)
}

// Assign implements shift.Service.
func (s *ShiftServiceImpl) Assign(ctx context.Context, employeeID string, req shift.AssignRequest) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	if req.ShiftID != nil {
		if _, err := s.Repository.GetByID(ctx, *req.ShiftID, companyID); err != nil {
			return err
		}
	}

	return s.employeeRepo.AssignShift(ctx, employeeID, companyID, req.ShiftID)
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", company.ErrCompanyContextMissing
	}
	return companyID, nil
}

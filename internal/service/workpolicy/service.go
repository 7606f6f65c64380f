package workpolicy

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/company"
)

type WorkPolicyServiceImpl struct {
	attendance.WorkPolicyRepository
}

func NewWorkPolicyService(repo attendance.WorkPolicyRepository) attendance.WorkPolicyService {
	return &WorkPolicyServiceImpl{WorkPolicyRepository: repo}
}

// DefaultPolicy returns the policy row a tenant gets on first access.
func DefaultPolicy(companyID string) attendance.WorkPolicy {
	return attendance.WorkPolicy{
		CompanyID:             companyID,
		MinimumWorkingMinutes: attendance.DefaultMinimumWorkingMinutes,
	}
}

// GetOrCreate loads the tenant policy, inserting the default row when the
// tenant has none yet. The batch jobs share this path with the API.
func GetOrCreate(ctx context.Context, repo attendance.WorkPolicyRepository, companyID string) (attendance.WorkPolicy, error) {
	policy, err := repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return attendance.WorkPolicy{}, fmt.Errorf("failed to load work policy: %w", err)
	}
	if policy != nil {
		return *policy, nil
	}
	created, err := repo.Create(ctx, DefaultPolicy(companyID))
	if err != nil {
		return attendance.WorkPolicy{}, fmt.Errorf("failed to create default work policy: %w", err)
	}
	return created, nil
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

// Get implements attendance.WorkPolicyService.
func (s *WorkPolicyServiceImpl) Get(ctx context.Context) (attendance.WorkPolicyResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.WorkPolicyResponse{}, err
	}
	policy, err := GetOrCreate(ctx, s.WorkPolicyRepository, companyID)
	if err != nil {
		return attendance.WorkPolicyResponse{}, err
	}
	return toResponse(policy), nil
}

// Update implements attendance.WorkPolicyService.
func (s *WorkPolicyServiceImpl) Update(ctx context.Context, req attendance.WorkPolicyUpdateRequest) (attendance.WorkPolicyResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.WorkPolicyResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.WorkPolicyResponse{}, err
	}

	policy, err := GetOrCreate(ctx, s.WorkPolicyRepository, companyID)
	if err != nil {
		return attendance.WorkPolicyResponse{}, err
	}

	if req.MinimumWorkingMinutes != nil {
		policy.MinimumWorkingMinutes = *req.MinimumWorkingMinutes
	}
	if req.HalfDayAllowed != nil {
		policy.HalfDayAllowed = *req.HalfDayAllowed
	}
	if req.HalfDayThresholdMinutes != nil {
		policy.HalfDayThresholdMinutes = *req.HalfDayThresholdMinutes
	}
	if req.AllowedWfhPerMonth != nil {
		policy.AllowedWfhPerMonth = *req.AllowedWfhPerMonth
	}
	if req.AutoDeduct != nil {
		policy.AutoDeduct = *req.AutoDeduct
	}

	updated, err := s.WorkPolicyRepository.Update(ctx, policy)
	if err != nil {
		return attendance.WorkPolicyResponse{}, fmt.Errorf("failed to update work policy: %w", err)
	}
	return toResponse(updated), nil
}

func toResponse(p attendance.WorkPolicy) attendance.WorkPolicyResponse {
	return attendance.WorkPolicyResponse{
		CompanyID:               p.CompanyID,
		MinimumWorkingMinutes:   p.MinimumWorkingMinutes,
		HalfDayAllowed:          p.HalfDayAllowed,
		HalfDayThresholdMinutes: p.HalfDayThresholdMinutes,
		AllowedWfhPerMonth:      p.AllowedWfhPerMonth,
		AutoDeduct:              p.AutoDeduct,
	}
}

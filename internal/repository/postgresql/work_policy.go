package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type workPolicyRepositoryImpl struct {
	db *database.DB
}

func NewWorkPolicyRepository(db *database.DB) attendance.WorkPolicyRepository {
	return &workPolicyRepositoryImpl{db: db}
}

// GetByCompanyID implements attendance.WorkPolicyRepository.
func (r *workPolicyRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) (*attendance.WorkPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, minimum_working_minutes, half_day_allowed, half_day_threshold_minutes,
		       allowed_wfh_per_month, auto_deduct, created_at, updated_at
		FROM work_policies
		WHERE company_id = $1
	`

	var policy attendance.WorkPolicy
	err := q.QueryRow(ctx, query, companyID).Scan(
		&policy.ID, &policy.CompanyID, &policy.MinimumWorkingMinutes, &policy.HalfDayAllowed,
		&policy.HalfDayThresholdMinutes, &policy.AllowedWfhPerMonth, &policy.AutoDeduct,
		&policy.CreatedAt, &policy.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

// Create implements attendance.WorkPolicyRepository.
func (r *workPolicyRepositoryImpl) Create(ctx context.Context, policy attendance.WorkPolicy) (attendance.WorkPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_policies (company_id, minimum_working_minutes, half_day_allowed,
			half_day_threshold_minutes, allowed_wfh_per_month, auto_deduct)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id) DO UPDATE SET company_id = EXCLUDED.company_id
		RETURNING id, company_id, minimum_working_minutes, half_day_allowed, half_day_threshold_minutes,
			allowed_wfh_per_month, auto_deduct, created_at, updated_at
	`

	var created attendance.WorkPolicy
	err := q.QueryRow(ctx, query,
		policy.CompanyID, policy.MinimumWorkingMinutes, policy.HalfDayAllowed,
		policy.HalfDayThresholdMinutes, policy.AllowedWfhPerMonth, policy.AutoDeduct,
	).Scan(
		&created.ID, &created.CompanyID, &created.MinimumWorkingMinutes, &created.HalfDayAllowed,
		&created.HalfDayThresholdMinutes, &created.AllowedWfhPerMonth, &created.AutoDeduct,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return attendance.WorkPolicy{}, err
	}
	return created, nil
}

// Update implements attendance.WorkPolicyRepository.
func (r *workPolicyRepositoryImpl) Update(ctx context.Context, policy attendance.WorkPolicy) (attendance.WorkPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_policies
		SET minimum_working_minutes = $1, half_day_allowed = $2, half_day_threshold_minutes = $3,
		    allowed_wfh_per_month = $4, auto_deduct = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.MinimumWorkingMinutes, policy.HalfDayAllowed, policy.HalfDayThresholdMinutes,
		policy.AllowedWfhPerMonth, policy.AutoDeduct, policy.ID, policy.CompanyID,
	).Scan(&policy.UpdatedAt)
	if err != nil {
		return attendance.WorkPolicy{}, err
	}
	return policy, nil
}

package leave

import "context"

type Service interface {
	// Apply files a PENDING request for the authenticated employee; fails on
	// an overlapping pending/approved request
	Apply(ctx context.Context, req ApplyRequest) (Response, error)

	// Approve moves a pending request to APPROVED, deducting per-year
	// balances under row locks. WFH-type leave never touches balances.
	Approve(ctx context.Context, requestID string, req DecisionRequest) (Response, error)

	// Reject moves a pending request to REJECTED
	Reject(ctx context.Context, requestID string, req DecisionRequest) (Response, error)

	// Cancel lets the requester withdraw a pending or approved request,
	// restoring balances when it was approved
	Cancel(ctx context.Context, requestID string) (Response, error)

	ListMine(ctx context.Context) ([]Response, error)

	ListPendingForManager(ctx context.Context) ([]Response, error)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/handler/http/response"
)

type WorkPolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type workPolicyHandlerImpl struct {
	policyService attendance.WorkPolicyService
}

func NewWorkPolicyHandler(policyService attendance.WorkPolicyService) WorkPolicyHandler {
	return &workPolicyHandlerImpl{policyService: policyService}
}

// Get implements WorkPolicyHandler.
func (h *workPolicyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.policyService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements WorkPolicyHandler.
func (h *workPolicyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.WorkPolicyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.policyService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work policy updated", result)
}

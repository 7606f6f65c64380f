package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/biometric"
	"github.com/ksusheel25/hr-management-system/internal/handler/http/response"
)

type BiometricHandler interface {
	ReceiveEvent(w http.ResponseWriter, r *http.Request)
}

type biometricHandlerImpl struct {
	biometricService biometric.Service
}

func NewBiometricHandler(biometricService biometric.Service) BiometricHandler {
	return &biometricHandlerImpl{biometricService: biometricService}
}

// ReceiveEvent implements BiometricHandler. The company comes from the URL so
// device gateways can push for any tenant they are provisioned for.
func (h *biometricHandlerImpl) ReceiveEvent(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var req biometric.ReceiveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.biometricService.ReceiveEvent(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Duplicate {
		response.SuccessWithMessage(w, "Event already processed", result)
		return
	}
	response.Created(w, "Event accepted", result)
}

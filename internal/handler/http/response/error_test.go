package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
	"github.com/ksusheel25/hr-management-system/internal/domain/user"
	"github.com/ksusheel25/hr-management-system/internal/pkg/validator"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"open session", attendance.ErrOpenSessionExists, http.StatusConflict},
		{"no open session", attendance.ErrNoOpenSession, http.StatusConflict},
		{"inactive employee", attendance.ErrEmployeeInactive, http.StatusForbidden},
		{"not self", attendance.ErrNotSelf, http.StatusForbidden},
		{"leave overlap", leave.ErrOverlappingRequest, http.StatusConflict},
		{"leave already processed", leave.ErrAlreadyProcessed, http.StatusConflict},
		{"insufficient balance", leave.ErrInsufficientLeaveBalance, http.StatusBadRequest},
		{"not reporting manager", leave.ErrNotReportingManager, http.StatusForbidden},
		{"leave not found", leave.ErrRequestNotFound, http.StatusNotFound},
		{"shift not found", shift.ErrShiftNotFound, http.StatusNotFound},
		{"bad credentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleErrorWrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.Join(errors.New("ctx"), attendance.ErrNoOpenSession))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleErrorValidation(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "from", Message: "must be a YYYY-MM-DD date"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "from")
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kriyahr/workforce-backend-go/internal/handler/http/response"
	attendanceService "github.com/kriyahr/workforce-backend-go/internal/service/attendance"
)

// AttendanceHandler exposes the regularization approval.
type AttendanceHandler interface {
	Regularize(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceSvc *attendanceService.Service
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceSvc *attendanceService.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceSvc: attendanceSvc}
}

type regularizeResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Date        time.Time `json:"date"`
	Regularized bool      `json:"regularized"`
}

// Regularize approves a regularization request for an attendance record
func (h *attendanceHandlerImpl) Regularize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		response.BadRequest(w, "company_id claim is missing or invalid", nil)
		return
	}

	att, err := h.attendanceSvc.ApproveRegularization(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance regularized", regularizeResponse{
		ID:          att.ID,
		EmployeeID:  att.EmployeeID,
		Date:        att.Date,
		Regularized: att.Regularized,
	})
}

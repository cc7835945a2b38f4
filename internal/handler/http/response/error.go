package response

import (
	"errors"
	"net/http"

	"github.com/kriyahr/workforce-backend-go/internal/domain/attendance"
	"github.com/kriyahr/workforce-backend-go/internal/domain/setting"
	"github.com/kriyahr/workforce-backend-go/internal/domain/task"
	"github.com/kriyahr/workforce-backend-go/internal/domain/user"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User / auth domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Setting domain errors
	case errors.Is(err, setting.ErrSettingNotFound):
		NotFound(w, "Setting not found")
	case errors.Is(err, setting.ErrUnknownValueType),
		errors.Is(err, setting.ErrValueNotNumber),
		errors.Is(err, setting.ErrValueNotBoolean),
		errors.Is(err, setting.ErrValueNotTime),
		errors.Is(err, setting.ErrValueNotJSON):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyRegularized):
		Conflict(w, "Attendance record already regularized")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

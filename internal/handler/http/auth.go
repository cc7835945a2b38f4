package http

import (
	"encoding/json"
	"net/http"

	"github.com/kriyahr/workforce-backend-go/internal/handler/http/response"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/validator"
	authService "github.com/kriyahr/workforce-backend-go/internal/service/auth"
)

// AuthHandler defines the auth handler interface
type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authSvc *authService.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *authService.Service) AuthHandler {
	return &authHandlerImpl{authSvc: authSvc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresAt int64  `json:"access_token_expires_at"`
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	var errs validator.ValidationErrors
	if !validator.IsValidEmail(req.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(req.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs.ToMap())
		return
	}

	tokens, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loginResponse{
		AccessToken:          tokens.AccessToken,
		AccessTokenExpiresAt: tokens.AccessTokenExpiresAt,
	})
}

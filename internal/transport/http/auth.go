package http

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/reservaya/api/internal/app"
)

type Authenticator interface {
	Login(ctx context.Context, in app.LoginInput) (app.AuthResult, error)
	Register(ctx context.Context, in app.RegisterInput) (app.AuthResult, error)
}

type PasswordResetter interface {
	RequestPasswordReset(ctx context.Context, email string)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

// legacyRegisterRequest is the shape posted by the first sign-up form.
type legacyRegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone"`
	Password  string `json:"password" validate:"required"`
}

func (r legacyRegisterRequest) displayName() string {
	if n := strings.TrimSpace(r.Name); n != "" {
		return n
	}
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

const legacyRegisterMessage = "¡Registro exitoso!"

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

func toAuthResponse(res app.AuthResult) authResponse {
	return authResponse{
		Success: true,
		User:    userResponse{ID: res.User.ID, Email: res.User.Email, Name: res.User.Name},
		Token:   res.Token,
	}
}

// HandleLogin accepts {email,password}. Missing credentials are a 401.
func HandleLogin(svc Authenticator, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeDecodeError(w, err)
			return
		}
		res, err := svc.Login(r.Context(), app.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toAuthResponse(res))
	}
}

func HandleRegister(svc Authenticator, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req registerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeDecodeError(w, err)
			return
		}
		res, err := svc.Register(r.Context(), app.RegisterInput{Email: req.Email, Password: req.Password, Name: req.Name})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAuthResponse(res))
	}
}

// HandleLegacyRegister serves /api/register. It takes either {name} or
// {firstName,lastName} and answers like HandleRegister plus a message.
func HandleLegacyRegister(svc Authenticator, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req legacyRegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeDecodeError(w, err)
			return
		}
		res, err := svc.Register(r.Context(), app.RegisterInput{Email: req.Email, Password: req.Password, Name: req.displayName()})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		resp := toAuthResponse(res)
		resp.Message = legacyRegisterMessage
		writeJSON(w, http.StatusCreated, resp)
	}
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// HandlePasswordReset always answers 200 so callers cannot tell whether an
// account exists.
func HandlePasswordReset(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req passwordResetRequest
		if err := decodeJSON(w, r, &req); err == nil {
			svc.RequestPasswordReset(r.Context(), req.Email)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Si el correo está registrado, recibirás instrucciones para restablecer tu contraseña.",
		})
	}
}

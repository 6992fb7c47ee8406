package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jobconnect/jobconnect-go/internal/metrics"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/service"
	"github.com/jobconnect/jobconnect-go/internal/session"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
	cookie  *session.Cookie
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, ck *session.Cookie) *AuthHandler {
	return &AuthHandler{service: svc, cookie: ck}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrPasswordRequired), errors.Is(err, service.ErrInvalidRole):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrAdminSignupDisabled):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			internalError(w, r, err)
		}
		return
	}

	metrics.RecordAuthEvent(metrics.EventRegister)
	slog.Info("user registered", "user_id", resp.User.ID, "role", resp.User.Role, "approved", resp.User.IsApproved)
	h.cookie.Set(w, resp.Token)
	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			metrics.RecordAuthEvent(metrics.EventLoginFailed)
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		case errors.Is(err, service.ErrAccountBlocked):
			metrics.RecordAuthEvent(metrics.EventLoginBlocked)
			slog.Info("blocked user attempted login", "email", req.Email)
			h.cookie.Clear(w)
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		default:
			internalError(w, r, err)
		}
		return
	}

	metrics.RecordAuthEvent(metrics.EventLogin)
	h.cookie.Set(w, resp.Token)
	writeJSON(w, http.StatusOK, resp)
}

// HandleLogout handles POST /api/auth/logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	metrics.RecordAuthEvent(metrics.EventLogout)
	h.cookie.Clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe handles GET /api/auth/me requests. It returns the live record,
// not the token snapshot.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetUser(r.Context(), actor.UserID)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRefresh handles POST /api/auth/refresh requests. It re-issues the
// session token from the live record so approval changes take effect.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Refresh(r.Context(), actor.UserID)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	metrics.RecordAuthEvent(metrics.EventRefresh)
	h.cookie.Set(w, resp.Token)
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAccountBlocked):
		h.cookie.Clear(w)
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		h.cookie.Clear(w)
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		internalError(w, r, err)
	}
}

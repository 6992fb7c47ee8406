package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/service"
)

// UserHandler handles HTTP requests for user administration and profiles.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleList handles GET /api/users requests. Optional query parameters
// role and isApproved narrow the result.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var filter model.UserFilter

	if v := r.URL.Query().Get("role"); v != "" {
		role, err := model.ParseRole(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		filter.Role = &role
	}
	if v := r.URL.Query().Get("isApproved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("isApproved must be true or false"))
			return
		}
		filter.IsApproved = &approved
	}

	users, err := h.service.List(r.Context(), filter)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleGet handles GET /api/users/{id} requests.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleUpdate handles PUT /api/users/{id} requests.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleApprove handles POST /api/users/{id}/approve requests.
func (h *UserHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	user, err := h.service.Approve(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleToggleBlock handles POST /api/users/{id}/block requests.
func (h *UserHandler) HandleToggleBlock(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	user, err := h.service.ToggleBlock(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrCannotBlockSelf), errors.Is(err, service.ErrNotAnEmployer):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	default:
		internalError(w, r, err)
	}
}

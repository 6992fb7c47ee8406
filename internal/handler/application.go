package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/service"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	service *service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: svc}
}

// HandleList handles GET /api/applications requests. jobId narrows the result.
func (h *ApplicationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := model.ApplicationFilter{
		JobID:      q.Get("jobId"),
		SeekerID:   q.Get("seekerId"),
		EmployerID: q.Get("employerId"),
	}

	apps, err := h.service.List(r.Context(), actor, filter)
	if err != nil {
		writeApplicationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// HandleCreate handles POST /api/applications requests.
func (h *ApplicationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req model.CreateApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := h.service.Apply(r.Context(), actor, req.JobID)
	if err != nil {
		writeApplicationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":     app.ID,
		"jobId":  app.JobID,
		"status": string(app.Status),
	})
}

// HandleCheck handles GET /api/applications/check?jobId= requests.
func (h *ApplicationHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("jobId is required"))
		return
	}

	resp, err := h.service.Check(r.Context(), actor, jobID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateStatus handles PATCH /api/applications/{id}/status requests.
func (h *ApplicationHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req model.UpdateApplicationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), req.Status); err != nil {
		writeApplicationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func writeApplicationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound), errors.Is(err, service.ErrJobNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrAlreadyApplied):
		writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrJobClosed), errors.Is(err, service.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	default:
		internalError(w, r, err)
	}
}

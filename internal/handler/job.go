package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/service"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service *service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{service: svc}
}

// HandleList handles GET /api/jobs requests. Supported query parameters are
// location, jobType, search, employerId and activeOnly (default true).
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.JobFilter{
		Location:   q.Get("location"),
		JobType:    model.JobType(q.Get("jobType")),
		Search:     q.Get("search"),
		EmployerID: q.Get("employerId"),
		ActiveOnly: true,
	}
	if filter.JobType != "" && !filter.JobType.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse(service.ErrInvalidJobType.Error()))
		return
	}
	if v := q.Get("activeOnly"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("activeOnly must be true or false"))
			return
		}
		filter.ActiveOnly = active
	}

	jobs, err := h.service.List(r.Context(), filter)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// HandleLocations handles GET /api/jobs/locations requests.
func (h *JobHandler) HandleLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.Locations(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

// HandleGet handles GET /api/jobs/{id} requests.
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJobError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// HandleCreate handles POST /api/jobs requests.
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		writeJobError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// HandleUpdate handles PUT /api/jobs/{id} requests.
func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		writeJobError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// HandleDelete handles DELETE /api/jobs/{id} requests.
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeJobError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJobError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrEmployerNotApproved),
		errors.Is(err, service.ErrAccountBlocked):
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidJobType), errors.Is(err, service.ErrJobFieldsRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		internalError(w, r, err)
	}
}
